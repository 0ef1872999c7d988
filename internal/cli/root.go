// Package cli implements the SomniFlow command-line interface.
//
// This package uses global variables to manage CLI state, which is the standard
// pattern for Cobra-based CLI applications. The globals are initialized in
// PersistentPreRunE and cleaned up in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/somniflow/somniflow"
	"github.com/somniflow/somniflow/internal/config"
	"github.com/somniflow/somniflow/internal/wallet"
	coreerr "github.com/somniflow/somniflow/pkg/errors"
)

var (
	// Global flags
	homeDir string
	rpcURL  string
	verbose bool

	// Global state initialized in PersistentPreRunE
	cfg            *config.Config
	logger         *config.Logger
	core           *somniflow.Core
	connectorStore wallet.ConnectorStore
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "somniflow",
	Short: "Inspect SomniFlow streams and marketplace listings",
	Long: `SomniFlow is the transaction core behind the Somnia streaming and NFT
marketplace product. This CLI exposes its read surface: stream state,
marketplace listings, and the configured token table on the Somnia
Shannon testnet.

Example:
  somniflow stream get 42
  somniflow stream next-id
  somniflow listing get 7
  somniflow tokens`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initGlobals()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", coreerr.Message(err))
		if ce := new(coreerr.CoreError); coreerr.As(err, &ce) && ce.Suggestion != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", ce.Suggestion)
		}
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return coreerr.ExitCode(err)
}

// initGlobals initializes global configuration, logger, and core.
func initGlobals() error {
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	var err error
	cfg, err = config.Load(config.Path(home))
	if err != nil {
		// Use defaults if config doesn't exist
		cfg = config.Defaults()
		cfg.Home = home
	}

	config.ApplyEnvironment(cfg)

	if homeDir != "" {
		cfg.Home = homeDir
	}
	if rpcURL != "" {
		cfg.Chain.RPC = rpcURL
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	logLevel := config.ParseLogLevel(cfg.Logging.Level)
	logger, err = config.NewLogger(logLevel, cfg.Logging.File)
	if err != nil {
		// Use null logger if we can't create the file
		logger = config.NullLogger()
	}

	connectorStore = wallet.NewFileConnectorStore(filepath.Join(home, "connector.json"))

	core = somniflow.New(somniflow.Options{
		Config: cfg,
		Logger: logger,
		Store:  connectorStore,
	})

	return nil
}

// cleanup releases resources.
func cleanup() {
	if core != nil {
		_ = core.Close()
	}
}

// Config returns the global configuration.
func Config() *config.Config {
	return cfg
}

// Core returns the global core facade.
func Core() *somniflow.Core {
	return core
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "somniflow data directory (default: ~/.somniflow)")
	rootCmd.PersistentFlags().StringVar(&rpcURL, "rpc", "", "JSON-RPC endpoint (default: Somnia Shannon)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
