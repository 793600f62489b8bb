// Package root contains the root command for the application.
package root

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/statement-verify/internal/config"
	"fjacquet/statement-verify/internal/container"
)

// CommonFlags represents the flags that are common to multiple commands.
type CommonFlags struct {
	Input  string
	Output string
	Format string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "statement-verify",
		Short: "A CLI tool to analyze bank statement PDFs for signs of fraud.",
		Long: `statement-verify analyzes business bank statement PDFs for signs of
tampering or falsification. It renders the statement pages, classifies the
document, extracts the financial data, reconciles the balances and fuses
the visual, structural and financial signals into one risk verdict.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to statement-verify!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.InitializeConfig()
			if err != nil {
				return err
			}
			if SharedFlags.Format != "" {
				loaded.Report.Format = SharedFlags.Format
			}
			if loaded.Report.Format != "json" && loaded.Report.Format != "yaml" {
				return fmt.Errorf("invalid report format: %s (must be 'json' or 'yaml')", loaded.Report.Format)
			}
			cfg = loaded
			Log = config.ConfigureLoggingFromConfig(cfg)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer != nil {
				if err := appContainer.Close(); err != nil {
					Log.WithError(err).Warn("Failed to close container")
				}
			}
		},
	}

	// SharedFlags holds the common flags accessible to all commands.
	SharedFlags = CommonFlags{}

	cfg          *config.Config
	appContainer *container.Container
)

// Init initializes the root command and all flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input PDF file (or directory for batch)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output report file (or directory for batch)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Format, "format", "f", "", "Report format: json or yaml (overrides config)")
}

// GetConfig returns the configuration loaded by PersistentPreRunE.
func GetConfig() *config.Config {
	return cfg
}

// RequireContainer returns the application container, creating it on first
// use. Container creation needs the Gemini API key, so only commands that
// actually analyze documents call this.
func RequireContainer(ctx context.Context) (*container.Container, error) {
	if appContainer != nil {
		return appContainer, nil
	}

	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	appContainer = c
	Log = c.GetLogger()
	return appContainer, nil
}
