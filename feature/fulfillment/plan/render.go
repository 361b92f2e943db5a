package plan

import (
	"strings"

	x "order-reconciler/core/sqlexpr"
)

// Scope qualifies table names with a project and dataset.
type Scope struct {
	Project string
	Dataset string
}

// Table returns the backtick-quoted fully qualified name of table.
func (s Scope) Table(table string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Project, s.Dataset, table} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return "`" + strings.Join(parts, ".") + "`"
}

// SQL renders the query as BigQuery Standard SQL. Inputs are referenced as
// named parameters; bind Params when executing.
func (q Query) SQL(scope Scope) string {
	var b strings.Builder

	from := scope.Table(q.Source) + " AS " + q.Alias
	if q.Aggregate != nil {
		cte := q.Alias + "_Agg"
		b.WriteString("WITH " + cte + " AS (\n")
		writeAggregate(&b, *q.Aggregate, scope.Table(q.Source))
		b.WriteString(")\n")
		from = cte + " AS " + q.Alias
	}

	b.WriteString("SELECT ")
	cols := q.Columns()
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Expr.SQL() + " AS " + c.Name)
	}
	b.WriteString("\nFROM " + from + "\n")

	if q.Join != nil {
		b.WriteString("LEFT JOIN " + scope.Table(q.Join.Table) + " AS " + q.Join.Alias + "\n")
		b.WriteString("ON " + joinTerms(q.Join.On) + "\n")
	}
	if len(q.Filters) > 0 {
		b.WriteString("WHERE " + joinTerms(q.Filters) + "\n")
	}
	b.WriteString("GROUP BY 1")
	return b.String()
}

func writeAggregate(b *strings.Builder, agg Aggregation, table string) {
	cols := make([]string, 0, len(agg.GroupBy)+len(agg.SumColumns))
	cols = append(cols, agg.GroupBy...)
	for _, c := range agg.SumColumns {
		cols = append(cols, "SUM("+c+") AS "+c)
	}
	b.WriteString("  SELECT " + strings.Join(cols, ", ") + "\n")
	b.WriteString("  FROM " + table + "\n")
	if len(agg.Filters) > 0 {
		b.WriteString("  WHERE " + joinTerms(agg.Filters) + "\n")
	}
	b.WriteString("  GROUP BY " + strings.Join(agg.GroupBy, ", ") + "\n")
}

func joinTerms(terms []x.Expr) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t == nil {
			continue
		}
		parts = append(parts, t.SQL())
	}
	return strings.Join(parts, "\n  AND ")
}
