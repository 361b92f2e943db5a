package fulfillment

import (
	"bytes"
	"fmt"

	"order-reconciler/core/reconcile"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	detailsSheet = "Details"
)

// Labels of the two comparisons in exported documents.
const (
	TypeShipment = "shipment"
	TypeReturn   = "return"
)

var (
	summaryHeader = []interface{}{
		"Platform", "Type", "Status", "Unmatched", "Diffs",
		"EOD Rows", "Report Rows", "EOD Amount", "Report Amount", "Processed At", "Error",
	}
	detailsHeader = []interface{}{
		"Platform", "Type", "Key", "EOD Value", "Report Value", "Diff", "Status", "TS IDs",
	}
)

// BuildWorkbook renders reports as a workbook with a Summary sheet (one row
// per platform and type) and a Details sheet (one row per discrepancy).
func BuildWorkbook(reports []PlatformReport) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with Sheet1; rename it instead of leaving it empty.
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(detailsSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(summarySheet, "A1", &summaryHeader); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(detailsSheet, "A1", &detailsHeader); err != nil {
		return nil, err
	}

	summaryRow, detailRow := 2, 2
	for _, r := range reports {
		for _, part := range []struct {
			label  string
			result reconcile.ComparisonResult
		}{
			{TypeShipment, r.Shipment},
			{TypeReturn, r.Return},
		} {
			res := part.result
			row := []interface{}{
				string(r.Platform), part.label, string(res.Status), res.UnmatchedCount, res.DiffCount,
				res.SourceCounts.EOD, res.SourceCounts.Report, res.SourceAmounts.EOD, res.SourceAmounts.Report,
				r.ProcessedAt, r.Error,
			}
			if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", summaryRow), &row); err != nil {
				return nil, err
			}
			summaryRow++

			for _, d := range res.Details {
				row := []interface{}{
					string(r.Platform), part.label, d.Key, d.LeftValue, d.RightValue, d.Diff, string(d.Status), d.TSIDs,
				}
				if err := f.SetSheetRow(detailsSheet, fmt.Sprintf("A%d", detailRow), &row); err != nil {
					return nil, err
				}
				detailRow++
			}
		}
	}

	return f, nil
}

// ExportXLSX renders reports as XLSX bytes.
func ExportXLSX(reports []PlatformReport) ([]byte, error) {
	f, err := BuildWorkbook(reports)
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
