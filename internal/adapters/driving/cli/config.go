package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/services"
)

// overrideReporter is implemented by config views that know which keys come
// from the environment.
type overrideReporter interface {
	Overridden(key string) bool
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit settings",
	Long: `Shows and edits the settings stored in ~/.ncosearch/config.toml.

Environment variables (NCO_API_URL, NCO_SEARCH_METHOD, ...) and the
--api-url flag override stored values for a single run and are never
written back to the file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store a setting",
	Example: `  ncosearch config set api.base_url http://localhost:8000
  ncosearch config set api.search_method get
  ncosearch config set voice.args -- -m models/ggml-base.en.bin --step 0`,
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completeSettingKeys,
	RunE:              runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:               "unset <key>",
	Short:             "Remove a stored setting so its default applies",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeSettingKeys,
	RunE:              runConfigUnset,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if configView == nil {
			return errors.New("config store not configured")
		}
		cmd.Println(configView.Path())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd, configUnsetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if configView == nil {
		return errors.New("config store not configured")
	}

	effective, err := services.NewSettingsService(configView).Get()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if flagAPIURL != "" {
		effective.API.BaseURL = flagAPIURL
	}

	values := settingValues(effective)
	reporter, _ := configView.(overrideReporter)

	rows := make([][]string, 0, len(values))
	for _, key := range services.SettingKeys() {
		rows = append(rows, []string{key, values[key], settingSource(key, reporter)})
	}
	cmd.Println(newTable("KEY", "VALUE", "SOURCE").Rows(rows...).String())
	return nil
}

func settingSource(key string, reporter overrideReporter) string {
	switch {
	case key == services.KeyAPIBaseURL && flagAPIURL != "":
		return "flag"
	case reporter != nil && reporter.Overridden(key):
		return "env"
	}
	if _, ok := configView.Get(key); ok {
		return "file"
	}
	return "default"
}

func settingValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		services.KeyAPIBaseURL:      s.API.BaseURL,
		services.KeyAPITimeout:      s.API.Timeout.String(),
		services.KeyAPISearchMethod: s.API.SearchMethod.String(),
		services.KeyAPIRateLimit:    strconv.FormatFloat(s.API.RateLimit, 'g', -1, 64),
		services.KeyVoiceCommand:    s.Voice.Command,
		services.KeyVoiceArgs:       strings.Join(s.Voice.Args, " "),
		services.KeyVoiceProbe:      s.Voice.ProbeCommand,
		services.KeyVoiceLanguage:   s.Voice.Language,
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key := args[0]
	if err := applySetting(key, args[1:]); err != nil {
		return err
	}

	cmd.Printf("Set %s\n", key)
	if reporter, ok := configView.(overrideReporter); ok && reporter.Overridden(key) {
		cmd.PrintErrf("Note: %s is currently overridden by an environment variable.\n", key)
	}
	return nil
}

func applySetting(key string, values []string) error {
	value := strings.Join(values, " ")

	switch key {
	case services.KeyAPIBaseURL:
		return settingsService.SetBaseURL(value)
	case services.KeyAPISearchMethod:
		return settingsService.SetSearchMethod(domain.SearchMethod(strings.ToLower(value)))
	case services.KeyVoiceCommand:
		current, err := settingsService.Get()
		if err != nil {
			return err
		}
		return settingsService.SetVoiceCommand(value, current.Voice.Args)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return err
	}

	switch key {
	case services.KeyAPITimeout:
		d, err := parseTimeout(value)
		if err != nil {
			return err
		}
		settings.API.Timeout = d
	case services.KeyAPIRateLimit:
		r, err := strconv.ParseFloat(value, 64)
		if err != nil || r < 0 {
			return fmt.Errorf("invalid rate limit %q: want a non-negative number", value)
		}
		settings.API.RateLimit = r
	case services.KeyVoiceArgs:
		settings.Voice.Args = values
	case services.KeyVoiceProbe:
		settings.Voice.ProbeCommand = value
	case services.KeyVoiceLanguage:
		settings.Voice.Language = value
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(services.SettingKeys(), ", "))
	}

	return settingsService.Save(settings)
}

// parseTimeout accepts a Go duration ("20s") or a whole number of seconds.
func parseTimeout(value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		secs, convErr := strconv.Atoi(value)
		if convErr != nil {
			return 0, fmt.Errorf("invalid timeout %q: %w", value, err)
		}
		d = time.Duration(secs) * time.Second
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q: must be positive", value)
	}
	return d, nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if configView == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	if !slices.Contains(services.SettingKeys(), key) {
		return fmt.Errorf("unknown setting %q", key)
	}
	if err := configView.Unset(key); err != nil {
		return fmt.Errorf("failed to unset %s: %w", key, err)
	}
	cmd.Printf("Unset %s\n", key)
	return nil
}

func completeSettingKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return services.SettingKeys(), cobra.ShellCompDirectiveNoFileComp
}
