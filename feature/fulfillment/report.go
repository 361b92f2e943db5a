package fulfillment

import (
	"order-reconciler/core/reconcile"
	"order-reconciler/feature/fulfillment/rules"
)

// PlatformReport is the outcome of one platform in a run.
type PlatformReport struct {
	Platform    rules.Platform             `json:"platform"`
	Shipment    reconcile.ComparisonResult `json:"shipment"`
	Return      reconcile.ComparisonResult `json:"return"`
	ProcessedAt string                     `json:"processedAt"`
	// Error is set only when failures are isolated per platform.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the platform could not be reconciled.
func (r PlatformReport) Failed() bool {
	return r.Error != ""
}

// Severity returns the worse of the shipment and return statuses.
func (r PlatformReport) Severity() reconcile.Severity {
	return worse(r.Shipment.Status, r.Return.Status)
}

// Overall returns the worst severity across reports.
func Overall(reports []PlatformReport) reconcile.Severity {
	out := reconcile.SeverityOK
	for _, r := range reports {
		out = worse(out, r.Severity())
	}
	return out
}

func worse(a, b reconcile.Severity) reconcile.Severity {
	rank := map[reconcile.Severity]int{
		reconcile.SeverityOK:      0,
		reconcile.SeverityWarning: 1,
		reconcile.SeverityError:   2,
	}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
