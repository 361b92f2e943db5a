package fulfillment

import (
	"order-reconciler/core/reconcile"
	"order-reconciler/core/utils"
	"order-reconciler/core/warehouse"
	"order-reconciler/feature/fulfillment/plan"
)

// toTable converts query rows into a keyed table. NULL keys become "" and
// NULL amounts 0. Repeated keys are summed and their traces joined.
func toTable(rows []warehouse.Row) reconcile.Table {
	table := make(reconcile.Table, len(rows))
	for _, row := range rows {
		key := utils.ToString(row[plan.KeyColumn])
		r := reconcile.Row{
			Amount: utils.ToInt64(row[plan.ValueColumn]),
			Trace:  utils.ToString(row[plan.TraceColumn]),
		}
		if prev, ok := table[key]; ok {
			r.Amount += prev.Amount
			r.Trace = joinTrace(prev.Trace, r.Trace)
		}
		table[key] = r
	}
	return table
}

func joinTrace(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + ", " + b
	}
}
