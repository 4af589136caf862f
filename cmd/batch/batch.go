// Package batch handles batch processing of files
package batch

import (
	"fmt"

	"fjacquet/fin-ingest/cmd/common"
	"fjacquet/fin-ingest/cmd/root"
	"fjacquet/fin-ingest/internal/container"
	"fjacquet/fin-ingest/internal/fileutils"
	"fjacquet/fin-ingest/internal/logging"
	"fjacquet/fin-ingest/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process files from a directory",
	Long: `Batch process files from an input directory and output them to another directory.

Every csv, xlsx, xls and pdf file in the input directory is parsed concurrently
as the given report type, and a <name>.json result is written for each one.

Example:
  fin-ingest batch -i input_dir/ -o output_dir/ -r BALANCE_SHEET`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := run(cmd, root.GetContainer(), root.SharedFlags.Input, root.SharedFlags.Output, root.SharedFlags.ReportType)
		return err
	},
}

func init() {
	// Override the usage text for the input/output flags in batch context
	Cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags (for batch, -i/-o refer to directories):
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`)
}

// run returns the number of files that parsed successfully.
func run(cmd *cobra.Command, c *container.Container, inputDir, outputDir, reportFlag string) (int, error) {
	if c == nil {
		return 0, fmt.Errorf("container not initialized")
	}
	logger := c.GetLogger()

	if inputDir == "" || outputDir == "" {
		return 0, fmt.Errorf("input and output directories must be specified")
	}
	rt, err := common.ReportType(reportFlag)
	if err != nil {
		return 0, err
	}
	if err := validation.InputDir(inputDir); err != nil {
		return 0, err
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return 0, err
	}

	files, err := fileutils.ListSupportedFiles(inputDir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		logger.Warn("No supported files found in input directory",
			logging.F(logging.FieldFile, inputDir))
		return 0, nil
	}

	logger.Info("Found files for processing", logging.F(logging.FieldCount, len(files)))

	succeeded := 0
	for _, fr := range c.GetBatchProcessor().ProcessFiles(cmd.Context(), files, rt) {
		out := fileutils.OutputPath(fr.File, outputDir, ".json")
		if err := fileutils.WriteJSON(out, fr.Result); err != nil {
			logger.WithError(err).Error("Failed to write result",
				logging.F(logging.FieldOutputFile, out))
			continue
		}
		if !fr.Result.Success {
			logger.Warn("File failed to parse",
				logging.F(logging.FieldInputFile, fr.File),
				logging.F(logging.FieldError, fr.Result.Error))
			continue
		}
		succeeded++
	}

	logger.Info(fmt.Sprintf("Batch processing completed. %d of %d files parsed.", succeeded, len(files)))
	return succeeded, nil
}
