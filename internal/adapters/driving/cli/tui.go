package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ncosearch-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/ncosearch-cli/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for ncosearch.

The TUI offers search with optional voice input, record management and the
search log viewer with keyboard navigation. Debug output goes to
~/.ncosearch/debug.log while it runs.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Search / Select
  Ctrl+V   - Toggle voice input
  Ctrl+X   - Dismiss a search error
  Esc      - Back
  ?        - Help (from the menu)
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	// Log lines on stderr would tear the alt screen.
	if debugLogPath != "" {
		closeLog, err := logger.ToFile(debugLogPath)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer func() { _ = closeLog() }()
	}

	ports := &tui.Ports{
		Search:    searchSession,
		Voice:     voiceInput,
		Admin:     adminService,
		SearchLog: searchLogService,
		Settings:  settingsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
