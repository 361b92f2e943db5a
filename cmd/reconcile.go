package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"order-reconciler/core/config"
	"order-reconciler/core/logger"
	"order-reconciler/core/reconcile"
	"order-reconciler/feature/fulfillment"
	"order-reconciler/feature/fulfillment/rules"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	reconcileDate      string
	reconcilePlatforms []string
	reconcileExport    string
	reconcileSave      bool
	reconcileRunBy     string
	reconcileJSON      bool
	reconcileStrict    bool
)

// reconcileCmd runs one reconciliation day from the command line.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile one day of shipments and returns",
	Long: `Reconcile the declared shipments and returns of a day against the
end-of-day feed and print one report per platform.

Examples:
  # Every configured platform
  reconcile --date 2024-05-01

  # Two platforms, written to a workbook and saved to the history
  reconcile --date 2024-05-01 --platform SHOPEE,MOMO --export may01.xlsx --save --run-by ops

  # Machine readable output, non-zero exit on ERROR
  reconcile --date 2024-05-01 --json --strict`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileDate, "date", "", "Target date (YYYY-MM-DD)")
	reconcileCmd.Flags().StringSliceVar(&reconcilePlatforms, "platform", nil, "Platforms to reconcile (default: configured platforms)")
	reconcileCmd.Flags().StringVar(&reconcileExport, "export", "", "Write the result as an XLSX workbook to this path")
	reconcileCmd.Flags().BoolVar(&reconcileSave, "save", false, "Record the run in the history database")
	reconcileCmd.Flags().StringVar(&reconcileRunBy, "run-by", "cli", "Operator recorded with a saved run")
	reconcileCmd.Flags().BoolVar(&reconcileJSON, "json", false, "Print the reports as JSON on stdout")
	reconcileCmd.Flags().BoolVar(&reconcileStrict, "strict", false, "Exit with an error when the overall status is ERROR")
	_ = reconcileCmd.MarkFlagRequired("date")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	date, err := fulfillment.ParseDate(reconcileDate)
	if err != nil {
		return err
	}
	platforms, err := rules.ParseList(reconcilePlatforms)
	if err != nil {
		return err
	}

	comps, err := setup(ctx, cfg, l)
	if err != nil {
		return err
	}
	defer comps.Close(l)

	l.Info("Starting reconciliation", zap.String("date", reconcileDate))
	reports, err := comps.reconciler.Run(ctx, fulfillment.RunRequest{
		Date:      date,
		Platforms: platforms,
		Progress: func(p rules.Platform, step, total int) {
			l.Info("Platform finished", zap.String("platform", string(p)), zap.Int("step", step), zap.Int("total", total))
		},
	})
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	printReports(l, reports)

	if reconcileExport != "" {
		data, err := fulfillment.ExportXLSX(reports)
		if err != nil {
			return err
		}
		if err := os.WriteFile(reconcileExport, data, 0o644); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		l.Info("Workbook written", zap.String("path", reconcileExport))
	}

	if reconcileSave {
		rec := comps.recorder()
		if rec == nil {
			l.Warn("History database unavailable, run not saved")
		} else if id, err := rec.Record(ctx, date, reconcileRunBy, reports); err != nil {
			l.Warn("Failed to save run", zap.Error(err))
		} else {
			l.Info("Run saved", zap.String("id", id))
		}
	}

	if reconcileJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
	}

	if overall := fulfillment.Overall(reports); reconcileStrict && overall == reconcile.SeverityError {
		return fmt.Errorf("overall status is %s", overall)
	}
	return nil
}

// printReports logs one line per platform and comparison.
func printReports(l *zap.Logger, reports []fulfillment.PlatformReport) {
	for _, r := range reports {
		if r.Failed() {
			l.Error("Platform failed", zap.String("platform", string(r.Platform)), zap.String("error", r.Error))
			continue
		}
		for _, c := range []struct {
			kind string
			res  reconcile.ComparisonResult
		}{
			{fulfillment.TypeShipment, r.Shipment},
			{fulfillment.TypeReturn, r.Return},
		} {
			l.Info("Reconciliation report",
				zap.String("platform", string(r.Platform)),
				zap.String("type", c.kind),
				zap.String("status", string(c.res.Status)),
				zap.Int("unmatched", c.res.UnmatchedCount),
				zap.Int("diffs", c.res.DiffCount),
				zap.Int64("eod_amount", c.res.SourceAmounts.EOD),
				zap.Int64("report_amount", c.res.SourceAmounts.Report),
			)
			for _, d := range c.res.Details {
				l.Debug("Difference",
					zap.String("key", d.Key),
					zap.String("status", string(d.Status)),
					zap.Int64("diff", d.Diff),
					zap.String("ts_ids", d.TSIDs),
				)
			}
		}
	}
	l.Info("Overall status", zap.String("status", string(fulfillment.Overall(reports))))
}
