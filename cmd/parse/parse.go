// Package parse implements the parse command
package parse

import (
	"fmt"
	"io"

	"fjacquet/fin-ingest/cmd/common"
	"fjacquet/fin-ingest/cmd/root"
	internalcommon "fjacquet/fin-ingest/internal/common"
	"fjacquet/fin-ingest/internal/container"
	"fjacquet/fin-ingest/internal/logging"

	"github.com/spf13/cobra"
)

var (
	fileType   string
	recordsCSV string
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse one financial document",
	Long: `Parse one financial document and print the parsing result as JSON.

The file type is detected from content and extension unless --type is given.

Example:
  fin-ingest parse -i statement.xlsx -r PROFIT_LOSS -o result.json --records-csv records.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, root.GetContainer(), options{
			input:      root.SharedFlags.Input,
			output:     root.SharedFlags.Output,
			reportType: root.SharedFlags.ReportType,
			fileType:   fileType,
			recordsCSV: recordsCSV,
		}, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVarP(&fileType, "type", "t", "", "File type (csv, xlsx, xls, pdf)")
	Cmd.Flags().StringVar(&recordsCSV, "records-csv", "", "Also write the classified records to this CSV file")
}

type options struct {
	input      string
	output     string
	reportType string
	fileType   string
	recordsCSV string
}

func run(cmd *cobra.Command, c *container.Container, opts options, stdout io.Writer) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	logger := c.GetLogger()

	rt, err := common.ReportType(opts.reportType)
	if err != nil {
		return err
	}
	in, err := common.ReadInput(opts.input, opts.fileType, rt)
	if err != nil {
		return err
	}

	result := c.GetEngine().Parse(cmd.Context(), in)

	if err := common.SaveResult(stdout, opts.output, result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	if !result.Success {
		return fmt.Errorf("parsing failed: %s", result.Error)
	}

	if opts.recordsCSV != "" {
		delimiter := internalcommon.DefaultDelimiter
		if d := []rune(c.GetConfig().CSV.Delimiter); len(d) > 0 {
			delimiter = d[0]
		}
		if err := internalcommon.WriteRecordsToCSV(result.Data.Records, opts.recordsCSV, delimiter, logger); err != nil {
			return err
		}
	}

	logger.Info("Parse completed successfully",
		logging.F(logging.FieldInputFile, opts.input),
		logging.F(logging.FieldCount, len(result.Data.Records)))
	return nil
}
