package cli

import (
	"fmt"

	"tienda/internal/app"
	"tienda/internal/config"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile  string
	dbDriver string
	dsn      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "tienda",
		Short:         "Inventory for a second-hand store",
		Long:          "tienda keeps the catalog of a second-hand store: products, stock movements, sales and reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "dotenv file read before the environment (empty to skip)")
	cmd.PersistentFlags().StringVar(&opts.dbDriver, "db-driver", "", "storage driver: sqlite, postgres or memory (overrides DB_DRIVER)")
	cmd.PersistentFlags().StringVar(&opts.dsn, "dsn", "", "database DSN (overrides DATABASE_DSN)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newDemoCmd(opts))
	cmd.AddCommand(newProductsCmd(opts))
	cmd.AddCommand(newReportCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	cmd.AddCommand(newEventsCmd(opts))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

// loadConfig reads the configuration and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("db-driver") {
		cfg.DBDriver = opts.dbDriver
	}
	if cmd.Flags().Changed("dsn") {
		cfg.DatabaseDSN = opts.dsn
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openApp builds the application for one command run. Logs go to stderr so
// command output stays clean.
func openApp(cmd *cobra.Command, opts *rootOptions) (*app.App, error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return nil, err
	}
	logger := config.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
	logger.Debug("configuration loaded", "config", cfg.String())

	a, err := app.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return a, nil
}
