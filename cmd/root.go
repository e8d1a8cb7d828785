package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"aiswarm/config"
	"aiswarm/internal/bundle"
	"aiswarm/internal/logging"
	"aiswarm/internal/pricing"
	"aiswarm/internal/providers"
)

// Version information
var (
	version string
	commit  string
	date    string
)

// SetVersionInfo sets the version information
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

// environment holds what every command needs, opened once per invocation
type environment struct {
	dir      string
	settings config.Settings
	log      *logging.Logger
	catalog  *providers.Catalog
	manager  *config.Manager
	store    *pricing.SQLiteStore
	service  *bundle.Service
}

var env *environment

var (
	configDirFlag string
	logLevelFlag  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "", "configuration directory (default $XDG_CONFIG_HOME/aiswarm)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error or silent")
}

var rootCmd = &cobra.Command{
	Use:           "aiswarm",
	Short:         "AI provider configuration manager",
	Long:          "A command line tool for managing AI provider keys, agents, flocks, swarms and parameter presets, and for moving them between machines as a single bundle file",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		env, err = openEnvironment(configDirFlag, logLevelFlag)
		return err
	},
}

// openEnvironment resolves settings and opens the state manager and pricing store
func openEnvironment(dir, logLevel string) (*environment, error) {
	if dir == "" {
		var err error
		if dir, err = config.Dir(); err != nil {
			return nil, err
		}
	}

	settings, err := config.LoadSettings(filepath.Join(dir, "settings.yaml"))
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		settings.LogLevel = logLevel
	}

	log := logging.New(nil, settings.LogLevel)
	catalog := providers.Default()

	manager, err := config.NewManager(dir, catalog, settings.Backups, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config manager: %w", err)
	}

	store, err := pricing.OpenSQLite(settings.PricingDBPath(dir), log)
	if err != nil {
		return nil, fmt.Errorf("failed to open pricing store: %w", err)
	}

	return &environment{
		dir:      dir,
		settings: settings,
		log:      log,
		catalog:  catalog,
		manager:  manager,
		store:    store,
		service:  bundle.NewService(catalog, store, log),
	}, nil
}

func closeEnvironment() {
	if env == nil {
		return
	}
	if err := env.store.Close(); err != nil {
		env.log.Warn().Err(err).Msg("failed to close pricing store")
	}
	env = nil
}

// Execute executes the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(`aiswarm {{.Version}}
Commit: ` + commit + `
Date: ` + date + `
`)

	defer closeEnvironment()
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln(errorStyle.Render("Error: " + err.Error()))
		return err
	}
	return nil
}
