package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"netaudit/internal/config"
	"netaudit/internal/logging"
	"netaudit/internal/repository/sqlite"
)

var (
	configPath string
	dbPath     string
	verbose    bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "netaudit",
	Short: "Data-quality audits for a network inventory snapshot",
	Long: `netaudit runs data-quality checks against a network inventory snapshot.

Import an inventory from YAML, then run checks over it:
  netaudit import inventory.yaml
  netaudit run hostname --regex '^[a-z]+-\d+$'
  netaudit runs
  netaudit records <run-id> --format yaml`,
	SilenceUsage: true,
}

// cliEnv bundles the pieces every command needs
type cliEnv struct {
	cfg  *config.Config
	log  *zap.Logger
	repo *sqlite.Repository
}

func (e *cliEnv) close() {
	e.repo.Close()
	e.log.Sync()
}

func newEnv() (*cliEnv, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, _, err = config.LoadFromPath(configPath)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	log, err := logging.New(level, true)
	if err != nil {
		return nil, err
	}

	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open database %s: %w", cfg.Database.Path, err)
	}

	return &cliEnv{cfg: cfg, log: log, repo: repo}, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: search standard locations)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(checksCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(recordsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
