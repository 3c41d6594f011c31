// Package root contains the root command for the application
package root

import (
	"time"

	"finanzas/txform/internal/appstate"
	"finanzas/txform/internal/client"
	"finanzas/txform/internal/config"
	"finanzas/txform/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags shared by multiple commands
type CommonFlags struct {
	APIBaseURL string
	DraftFile  string
	EditID     string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// Cfg is the loaded configuration, available after PersistentPreRun
	Cfg *config.Config

	// Backend is the REST client commands talk through
	Backend *client.Client

	// Store is the application state observed by commands, created for
	// the lifetime of one invocation
	Store *appstate.Store

	// SharedFlags holds flag values common to multiple commands
	SharedFlags = CommonFlags{}

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "txform",
		Short: "A CLI tool to compose and submit transactions against the Finanzas backend.",
		Long: `txform drives the transaction entry engine headlessly: it loads the
backend catalogs, replays a draft through the field-dependency rules,
reconciles splits and tags, and submits the result.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to txform!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.WithError(err).Fatal("failed to load configuration")
			}
			Cfg = cfg

			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

			baseURL := cfg.API.BaseURL
			if SharedFlags.APIBaseURL != "" {
				baseURL = SharedFlags.APIBaseURL
			}
			timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second
			Backend = client.New(baseURL, timeout, Log)
			Store = appstate.New(Log)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if Store != nil {
				Store.Close()
			}
		},
	}
)

// Init initializes the root command and all persistent flags
func Init() {
	Cmd.PersistentFlags().StringVar(&SharedFlags.APIBaseURL, "api", "", "Backend API base URL (overrides configuration)")
}
