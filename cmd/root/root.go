// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/fin-ingest/internal/config"
	"fjacquet/fin-ingest/internal/container"
	"fjacquet/fin-ingest/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	ReportType string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "fin-ingest",
		Short: "Parse financial statements and classify their accounts.",
		Long: `fin-ingest reads spreadsheet, CSV and PDF financial statements, classifies each
account line into a financial bucket and computes summary totals. With AI enabled,
a text-generation service adds a sheet type and insights to the summary.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initContainer()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer != nil {
				if err := appContainer.Close(); err != nil {
					appContainer.GetLogger().WithError(err).Warn("Failed to close container")
				}
			}
		},
	}

	// SharedFlags holds the flags accessible to all commands
	SharedFlags = CommonFlags{}

	// ConfigFile overrides the default configuration search
	ConfigFile string
	// LogLevel overrides log.level when set
	LogLevel string
	// LogFormat overrides log.format when set
	LogFormat string

	appContainer *container.Container
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&ConfigFile, "config", "", "Config file (default searches $HOME/.fin-ingest and ./.fin-ingest)")
	Cmd.PersistentFlags().StringVar(&LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&LogFormat, "log-format", "", "Log format (text, json)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file or directory")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ReportType, "report", "r", "", "Report type (PROFIT_LOSS, BALANCE_SHEET, CASH_FLOW, TRIAL_BALANCE, AR_AGING, AP_AGING)")
}

func initContainer() error {
	if _, err := config.LoadEnv(); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.InitializeConfigFile(ConfigFile)
	if err != nil {
		return err
	}
	if LogLevel != "" {
		cfg.Log.Level = LogLevel
	}
	if LogFormat != "" {
		cfg.Log.Format = LogFormat
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	appContainer = c
	return nil
}

// GetContainer returns the application container, nil before the root
// command's pre-run.
func GetContainer() *container.Container {
	return appContainer
}

// GetLogger returns the container's logger, or a default one before the
// container exists.
func GetLogger() logging.Logger {
	if appContainer != nil {
		return appContainer.GetLogger()
	}
	return logging.OrDefault(nil)
}
