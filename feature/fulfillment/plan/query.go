package plan

import (
	x "order-reconciler/core/sqlexpr"
	"order-reconciler/core/warehouse"
)

// Kind names one of the four queries of a platform.
type Kind string

const (
	ShipDeclared   Kind = "ship_declared"
	ShipEndOfDay   Kind = "ship_eod"
	ReturnDeclared Kind = "return_declared"
	ReturnEndOfDay Kind = "return_eod"
)

// Output column names shared by every query.
const (
	KeyColumn   = "order_key"
	ValueColumn = "amount"
	TraceColumn = "ts_ids"
)

// Named parameters bound by every query.
const (
	ParamDate     = "date"
	ParamNextDay  = "next_day"
	ParamPlatform = "platform"
	ParamShopID   = "shop_id"
)

// Output is a selected expression and its column name.
type Output struct {
	Name string
	Expr x.Expr
}

// Aggregation pre-aggregates the declared records before the join:
// one row per GroupBy tuple with SumColumns summed.
type Aggregation struct {
	GroupBy    []string
	SumColumns []string
	Filters    []x.Expr
}

// Join attaches the end-of-day feed to the declared records.
type Join struct {
	Table string
	Alias string
	On    []x.Expr
}

// Query is one logical query. It only describes intent; rendering to SQL
// happens in SQL and execution is left to a warehouse.Executor.
type Query struct {
	Kind   Kind
	Source string
	Alias  string

	// Aggregate is set on declared queries.
	Aggregate *Aggregation
	// Join is set on declared queries.
	Join *Join
	// Filters apply to end-of-day queries.
	Filters []x.Expr

	Key   Output
	Value Output
	// Trace is set when the query reports correlated raw identifiers.
	Trace *Output

	Params []warehouse.Param
}

// Columns returns the output columns in select order.
func (q Query) Columns() []Output {
	cols := []Output{q.Key}
	if q.Trace != nil {
		cols = append(cols, *q.Trace)
	}
	return append(cols, q.Value)
}

// Set holds the four queries of one platform.
type Set struct {
	ShipDeclared   Query
	ShipEndOfDay   Query
	ReturnDeclared Query
	ReturnEndOfDay Query
}

// All returns the queries in execution order.
func (s Set) All() []Query {
	return []Query{s.ShipDeclared, s.ShipEndOfDay, s.ReturnDeclared, s.ReturnEndOfDay}
}
