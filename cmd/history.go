package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"order-reconciler/core/config"
	"order-reconciler/core/database"
	"order-reconciler/core/logger"
	"order-reconciler/feature/history"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	historyDate   string
	historyStatus string
	historyLimit  int
	historyJSON   bool
)

// historyCmd is the parent command for saved report operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved reconciliation reports",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved reports, newest first",
	RunE:  runHistoryList,
}

func init() {
	historyListCmd.Flags().StringVar(&historyDate, "date", "", "Only reports of this target date (YYYY-MM-DD)")
	historyListCmd.Flags().StringVar(&historyStatus, "status", "", "Only reports with this status (OPEN, REVIEWED, RESOLVED)")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of reports")
	historyListCmd.Flags().BoolVar(&historyJSON, "json", false, "Print the reports as JSON on stdout")

	historyCmd.AddCommand(historyListCmd)
	RootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}

	svc := history.NewService(history.NewRepository(db), l)
	reports, err := svc.List(context.Background(), history.Filter{
		TargetDate: historyDate,
		Status:     history.Status(historyStatus),
		Limit:      historyLimit,
	})
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		l.Info("Saved report",
			zap.String("id", r.ID),
			zap.String("date", r.TargetDate),
			zap.String("overall", string(r.Overall)),
			zap.String("status", string(r.Status)),
			zap.String("run_by", r.RunBy),
			zap.Time("run_at", r.RunAt),
		)
	}
	l.Info("Reports listed", zap.Int("count", len(reports)))
	return nil
}
