package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ncosearch-cli/internal/core/domain"
)

var (
	adminJSON        bool
	adminCode        string
	adminTitle       string
	adminDescription string
	adminYes         bool
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage job-code records",
	Long: `Lists, adds, updates and deletes the NCO job-code records held by the
search service. Every change is followed by a fresh listing from the service.`,
}

var adminListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all job-code records",
	Args:  cobra.NoArgs,
	RunE:  runAdminList,
}

var adminAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Add a job-code record",
	Example: `  ncosearch admin add --code 2431.0201 --title "Data Analyst"`,
	Args:    cobra.NoArgs,
	RunE:    runAdminAdd,
}

var adminUpdateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Replace a job-code record",
	Example: `  ncosearch admin update 42 --code 7531.0100 --title "Master Tailor"`,
	Args:    cobra.ExactArgs(1),
	RunE:    runAdminUpdate,
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a job-code record",
	Long: `Deletes a job-code record after confirmation. Without --yes the command
asks on the terminal and refuses to run when stdin is not interactive.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdminDelete,
}

func init() {
	adminListCmd.Flags().BoolVar(&adminJSON, "json", false, "output records as JSON")

	for _, c := range []*cobra.Command{adminAddCmd, adminUpdateCmd} {
		c.Flags().StringVar(&adminCode, "code", "", "NCO-2015 code")
		c.Flags().StringVar(&adminTitle, "title", "", "occupation title")
		c.Flags().StringVar(&adminDescription, "description", "", "optional description")
	}

	adminDeleteCmd.Flags().BoolVarP(&adminYes, "yes", "y", false, "delete without asking")

	adminCmd.AddCommand(adminListCmd, adminAddCmd, adminUpdateCmd, adminDeleteCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminList(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	records, err := adminService.List(cmd.Context())
	if err != nil {
		return errors.New(domain.UserMessage(err))
	}

	if adminJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal records: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No job codes found.")
		return nil
	}
	cmd.Println(recordTable(records))
	return nil
}

func runAdminAdd(cmd *cobra.Command, _ []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	rec, err := adminService.Create(cmd.Context(), adminInput())
	if err != nil {
		return errors.New(domain.UserMessage(err))
	}

	printNotice(cmd)
	cmd.Printf("  [%d] %s  %s\n", rec.ID, rec.NCOCode, rec.Title)
	return nil
}

func runAdminUpdate(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	id, err := parseRecordID(args[0])
	if err != nil {
		return err
	}

	rec, err := adminService.Update(cmd.Context(), id, adminInput())
	if err != nil {
		return errors.New(domain.UserMessage(err))
	}

	printNotice(cmd)
	cmd.Printf("  [%d] %s  %s\n", rec.ID, rec.NCOCode, rec.Title)
	return nil
}

func runAdminDelete(cmd *cobra.Command, args []string) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}

	id, err := parseRecordID(args[0])
	if err != nil {
		return err
	}

	err = adminService.Delete(cmd.Context(), id, confirmerFor(adminYes, cmd.OutOrStdout()))
	switch {
	case errors.Is(err, errNotInteractive):
		return errNotInteractive
	case errors.Is(err, domain.ErrCancelled):
		cmd.Println("Delete cancelled.")
		return nil
	case err != nil:
		return errors.New(domain.UserMessage(err))
	}

	printNotice(cmd)
	return nil
}

func adminInput() domain.JobCodeInput {
	return domain.JobCodeInput{
		NCOCode:     adminCode,
		Title:       adminTitle,
		Description: adminDescription,
	}
}

func parseRecordID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid record id %q", s)
	}
	return id, nil
}

func printNotice(cmd *cobra.Command) {
	if n := adminService.Notice(); !n.IsZero() {
		cmd.Println(n.Text)
	}
}

var tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var tableCellStyle = lipgloss.NewStyle().Padding(0, 1)

func recordTable(records []domain.JobCodeRecord) string {
	rows := make([][]string, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, []string{strconv.FormatInt(r.ID, 10), r.NCOCode, r.Title, r.Description})
	}
	return newTable("ID", "NCO CODE", "TITLE", "DESCRIPTION").Rows(rows...).String()
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			return tableCellStyle
		})
}
