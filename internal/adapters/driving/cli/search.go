package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

var (
	searchJSON  bool
	searchVoice bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search NCO-2015 job codes",
	Long: `Sends a free-text job description to the search service and prints the
ranked occupation codes it returns.

The query is sent exactly as typed. Multiple arguments are joined with
spaces. Use --voice to speak the query instead.`,
	Example: `  ncosearch search "data analyst"
  ncosearch search tailor --json
  ncosearch search --voice`,
	Args: cobra.ArbitraryArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchVoice, "voice", false, "speak the query using the configured recogniser")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchSession == nil {
		return errors.New("search service not configured")
	}

	query := strings.Join(args, " ")
	if searchVoice {
		if len(args) > 0 {
			return errors.New("--voice cannot be combined with a typed query")
		}
		heard, err := listenForQuery(cmd)
		if err != nil {
			return err
		}
		query = heard
	}

	state, err := searchSession.Submit(cmd.Context(), query)
	if err != nil {
		return errors.New(domain.UserMessage(err))
	}

	if searchJSON {
		return outputSearchJSON(cmd, state.Results)
	}

	renderSearchState(cmd.OutOrStdout(), state)
	return nil
}

// listenForQuery runs one voice session. Ctrl+C ends it.
func listenForQuery(cmd *cobra.Command) (string, error) {
	if voiceInput == nil || !voiceInput.Available() {
		return "", errors.New(domain.UserMessage(domain.ErrVoiceUnavailable))
	}

	ctx := cmd.Context()
	if _, err := voiceInput.Toggle(ctx); err != nil {
		return "", errors.New(domain.UserMessage(err))
	}
	cmd.PrintErrln("Listening... press Ctrl+C to stop.")

	text, err := voiceInput.Listen(ctx)
	if err != nil {
		return "", errors.New(domain.UserMessage(err))
	}
	cmd.PrintErrf("Heard: %s\n", text)
	return text, nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	if results == nil {
		results = []domain.SearchResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// renderSearchState writes the plain-text rendering of state.
func renderSearchState(w io.Writer, state domain.SearchState) {
	switch state.Status {
	case domain.SearchIdle:
		return
	case domain.SearchSearching:
		fmt.Fprintln(w, "Searching...")
	case domain.SearchFailed:
		fmt.Fprintf(w, "Error: %s\n", state.Message)
	case domain.SearchSucceeded:
		if len(state.Results) == 0 {
			fmt.Fprintln(w, "No results found.")
			return
		}
		for i := range state.Results {
			writeResultCard(w, i+1, &state.Results[i])
		}
	}
}

func writeResultCard(w io.Writer, n int, r *domain.SearchResult) {
	fmt.Fprintf(w, "  [%d] %s\n", n, r.Title)
	fmt.Fprintf(w, "      Code: %s\n", r.NCOCode)
	fmt.Fprintf(w, "      Score: %.4f\n", r.Score)
	if r.HasDescription() {
		fmt.Fprintf(w, "      Description: %s\n", r.Description)
	}
	fmt.Fprintln(w)
}
