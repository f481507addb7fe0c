package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
	"github.com/custodia-labs/ncosearch-cli/internal/core/services"
)

var (
	logsJSON  bool
	logsSkip  int
	logsLimit int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the service's search log",
	Long: `Fetches recent queries recorded by the search service. Results are
paged with --skip and --limit; limit is capped at 100 and 0 uses the
service default.`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().BoolVar(&logsJSON, "json", false, "output entries as JSON")
	logsCmd.Flags().IntVar(&logsSkip, "skip", 0, "number of entries to skip")
	logsCmd.Flags().IntVarP(&logsLimit, "limit", "n", 0, "maximum entries to return (0 = service default)")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, _ []string) error {
	if searchLogService == nil {
		return errors.New("search log service not configured")
	}

	entries, err := searchLogService.List(cmd.Context(), domain.LogPage{Skip: logsSkip, Limit: logsLimit})
	if err != nil {
		return errors.New(services.MsgSearchLogsFailed)
	}

	if logsJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entries: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(entries) == 0 {
		cmd.Println("No searches logged yet.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		rows = append(rows, []string{
			strconv.FormatInt(e.ID, 10),
			formatLogTime(e.Timestamp),
			e.Query,
			e.Category,
		})
	}
	cmd.Println(newTable("ID", "TIME", "QUERY", "CATEGORY").Rows(rows...).String())
	return nil
}

func formatLogTime(ts domain.Timestamp) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(time.DateTime)
}
