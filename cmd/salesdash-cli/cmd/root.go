package cmd

import (
	"fmt"
	"os"

	"github.com/nfrund/salesdash/internal/app"
	"github.com/nfrund/salesdash/internal/config"
	"github.com/nfrund/salesdash/internal/logging"
	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ConfigLoader produces the configuration the commands run with.
type ConfigLoader func() (*config.Config, error)

// NewRootCmd builds the command tree over fs. Services are resolved lazily from
// an injector created before any subcommand runs.
func NewRootCmd(fs afero.Fs, load ConfigLoader) *cobra.Command {
	var injector *do.RootScope

	rootCmd := &cobra.Command{
		Use:   "salesdash-cli",
		Short: "Salesdash command-line tool",
		Long: `salesdash-cli runs the dashboard's operations without the web server.

Available commands:
  predict          Fit the sales model and predict for a slider triple
  report           Write the PDF prediction report
  users            Register, check and list dashboard accounts
  version          Print the version

Use "salesdash-cli [command] --help" for more information about a specific command.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logging.NewWithWriter(cmd.ErrOrStderr(), cfg.LogFormat, cfg.LogLevel)
			injector = app.NewInjector(cfg, fs)
			return nil
		},
	}

	resolve := func() do.Injector { return injector }
	rootCmd.AddCommand(
		newVersionCmd(),
		newPredictCmd(resolve),
		newReportCmd(resolve),
		newUsersCmd(resolve),
	)
	return rootCmd
}

// Execute runs the CLI against the OS filesystem and environment.
func Execute() {
	if err := NewRootCmd(afero.NewOsFs(), config.New).Execute(); err != nil {
		os.Exit(1)
	}
}
