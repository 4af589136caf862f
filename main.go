package main

import (
	"fmt"
	"os"

	"fjacquet/fin-ingest/cmd/batch"
	"fjacquet/fin-ingest/cmd/parse"
	"fjacquet/fin-ingest/cmd/root"
	"fjacquet/fin-ingest/cmd/sheets"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(sheets.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
