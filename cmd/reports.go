package cmd

import (
	"fmt"

	"github.com/abhisek/disha/internal/api"
	"github.com/abhisek/disha/internal/config"
	"github.com/abhisek/disha/internal/export"
	"github.com/abhisek/disha/internal/store"
	"github.com/spf13/cobra"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Work with saved assessment reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your saved reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st, err := reportsClient(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		reports, err := client.MyReports(cmd.Context())
		if err != nil {
			return fmt.Errorf("list reports: %w", err)
		}
		if len(reports) == 0 {
			fmt.Println("No saved reports.")
			return nil
		}
		for _, r := range reports {
			line := fmt.Sprintf("%s  %s  grade %s", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Level)
			if r.SelectedCareer != "" {
				line += "  " + r.SelectedCareer
			}
			fmt.Println(line)
		}
		return nil
	},
}

var reportsExportCmd = &cobra.Command{
	Use:   "export <report-id>",
	Short: "Export a saved report to an .xlsx workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, st, err := reportsClient(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		report, err := client.GetReport(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("fetch report: %w", err)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = "disha-report-" + report.ID + ".xlsx"
		}
		if err := export.WriteReport(report, out); err != nil {
			return err
		}
		fmt.Println("Wrote", out)
		return nil
	},
}

// reportsClient builds an authenticated reports client from the stored
// token. The caller owns closing the returned store.
func reportsClient(cmd *cobra.Command) (*api.ReportsClient, *store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	if st.Token() == "" {
		st.Close()
		return nil, nil, fmt.Errorf("not signed in; run disha and log in first")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	return api.NewReportsClient(cfg.ReportsURL, cfg.Timeout, st), st, nil
}

func init() {
	reportsExportCmd.Flags().String("out", "", "Output file path")

	reportsCmd.AddCommand(reportsListCmd)
	reportsCmd.AddCommand(reportsExportCmd)
}
