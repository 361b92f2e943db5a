package warehouse

import "context"

// Param is a named query parameter, referenced as @Name in SQL.
type Param struct {
	Name  string
	Value any
}

// Row is one result row keyed by column name.
type Row map[string]any

// Executor runs parameterised queries against the warehouse.
type Executor interface {
	// Query runs sql with params bound and returns every row.
	Query(ctx context.Context, sql string, params []Param) ([]Row, error)
	// Ping verifies the warehouse is reachable.
	Ping(ctx context.Context) error
}
