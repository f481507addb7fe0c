// Package cli provides the cobra command tree for ncosearch.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ncosearch-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Options carries the persistent flag values to the service factory.
type Options struct {
	// APIURL overrides the configured base URL for this run only.
	APIURL string

	// Verbose enables debug logging.
	Verbose bool
}

// Services holds the core services the commands drive.
type Services struct {
	Search    driving.SearchSession
	Voice     driving.VoiceInput
	Admin     driving.AdminService
	SearchLog driving.SearchLogService

	// Settings writes to the config file. Env overrides never reach it.
	Settings driving.SettingsService

	// Config is the effective configuration view, env overrides applied.
	Config driven.ConfigStore

	// LogPath is where the TUI sends debug output.
	LogPath string
}

// ServiceFactory builds services once flags are parsed.
type ServiceFactory func(opts Options) (*Services, error)

var (
	serviceFactory ServiceFactory

	searchSession    driving.SearchSession
	voiceInput       driving.VoiceInput
	adminService     driving.AdminService
	searchLogService driving.SearchLogService
	settingsService  driving.SettingsService
	configView       driven.ConfigStore
	debugLogPath     string
)

var (
	flagVerbose bool
	flagAPIURL  string
)

var rootCmd = &cobra.Command{
	Use:   "ncosearch",
	Short: "Find NCO-2015 occupation codes",
	Long: `ncosearch looks up National Classification of Occupations (NCO-2015)
codes by free-text or spoken job descriptions, and manages the job-code
records and search log held by an NCO search service.

Run without a subcommand to open the interactive terminal UI.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	RunE:              runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "search service base URL (overrides config and environment)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServiceFactory registers the function that builds services for a run.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	if serviceFactory == nil {
		return nil
	}

	svc, err := serviceFactory(Options{APIURL: flagAPIURL, Verbose: flagVerbose})
	if err != nil {
		return fmt.Errorf("initialise services: %w", err)
	}
	useServices(svc)
	return nil
}

func useServices(svc *Services) {
	searchSession = svc.Search
	voiceInput = svc.Voice
	adminService = svc.Admin
	searchLogService = svc.SearchLog
	settingsService = svc.Settings
	configView = svc.Config
	debugLogPath = svc.LogPath
}
