package cmd

import (
	"fmt"

	"github.com/abhisek/disha/internal/api"
	"github.com/abhisek/disha/internal/app"
	"github.com/abhisek/disha/internal/config"
	"github.com/abhisek/disha/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds the API clients, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return app.Run(app.Options{
		Store:   st,
		Assess:  api.NewAssessmentClient(cfg.AssessURL, cfg.Timeout),
		Reports: api.NewReportsClient(cfg.ReportsURL, cfg.Timeout, st),
	})
}
