/*
Package cmd wires the timber CLI.

COMMANDS:
  timber serve    Run the HTTP API server
  timber export   Write the invoice journal to a CSV file
  timber seed     Seed the default wood type catalog

Configuration comes from the environment (TIMBER_* variables) with an
optional .env file; see the config package.
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alamer/timber-engine/config"
	"github.com/alamer/timber-engine/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:     "timber",
	Short:   "Timber trade engine - invoice journal with derived views",
	Long:    "Tracks trading invoices for a timber business and derives customer balances,\noutstanding debts and inventory stock levels from the invoice journal.",
	Version: version,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and builds the application logger.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	return cfg, log, nil
}
