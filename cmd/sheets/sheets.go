// Package sheets implements the sheets command
package sheets

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"fjacquet/fin-ingest/cmd/common"
	"fjacquet/fin-ingest/cmd/root"
	"fjacquet/fin-ingest/internal/fileutils"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/parsererror"
	"fjacquet/fin-ingest/internal/sheetselector"
	"fjacquet/fin-ingest/internal/workbook"

	"github.com/spf13/cobra"
)

// Cmd represents the sheets command
var Cmd = &cobra.Command{
	Use:   "sheets",
	Short: "Show how each worksheet of a workbook scores",
	Long: `Score every worksheet of an xlsx or xls workbook and show which one would be parsed.

Example:
  fin-ingest sheets -i statement.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(root.SharedFlags.Input, root.GetLogger(), cmd.OutOrStdout())
	},
}

func run(input string, logger logging.Logger, w io.Writer) error {
	if input == "" {
		return fmt.Errorf("input file is required (--input)")
	}
	data, err := fileutils.ReadFile(input)
	if err != nil {
		return err
	}
	ft, err := common.FileType("", input, data)
	if err != nil {
		return err
	}
	decoder, err := workbook.ForFileType(ft)
	if err != nil {
		return err
	}
	sheets, err := decoder.Decode(data)
	if err != nil {
		return err
	}

	selected, err := sheetselector.New(logger).Select(sheets)
	var selErr *parsererror.SheetSelectionError
	if err != nil && !errors.As(err, &selErr) {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tSHEET\tSCORE\tSELECTED")
	for _, sc := range sheetselector.ScoreAll(sheets) {
		mark := ""
		if sc.Index == selected {
			mark = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", sc.Index, sc.Name, sc.Score, mark)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if selErr != nil {
		fmt.Fprintf(w, "\n%s (best: '%s', score %d, minimum %d)\n",
			selErr.Error(), selErr.BestSheet, selErr.BestScore, sheetselector.MinScore)
	}
	return nil
}
