package sqlexpr

import (
	"strconv"
	"strings"
)

// Expr is a node of a SQL expression tree.
// Nodes render to BigQuery Standard SQL.
type Expr interface {
	SQL() string
}

// Column references a column, optionally qualified by a table alias.
type Column struct {
	Table string
	Name  string
}

// Col builds a qualified column reference. An empty table yields a bare name.
func Col(table, name string) Column {
	return Column{Table: table, Name: name}
}

func (c Column) SQL() string {
	if c.Table == "" {
		return c.Name
	}
	return c.Table + "." + c.Name
}

// Param is a named query parameter (@name).
type Param string

func (p Param) SQL() string {
	return "@" + string(p)
}

// String is a quoted string literal.
type String string

func (s String) SQL() string {
	return "'" + strings.ReplaceAll(string(s), "'", "\\'") + "'"
}

// Int is an integer literal.
type Int int64

func (i Int) SQL() string {
	return strconv.FormatInt(int64(i), 10)
}

// Number is a numeric literal kept in its textual form (e.g. "1.05").
type Number string

func (n Number) SQL() string {
	return string(n)
}

// Call is a scalar or aggregate function call.
type Call struct {
	Fn       string
	Distinct bool
	Args     []Expr
}

func (c Call) SQL() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.SQL()
	}
	prefix := ""
	if c.Distinct {
		prefix = "DISTINCT "
	}
	return c.Fn + "(" + prefix + strings.Join(args, ", ") + ")"
}

// Binary is an infix operation. Arithmetic operators are parenthesised so the
// tree shape, not operator precedence, decides evaluation order.
type Binary struct {
	Op string
	L  Expr
	R  Expr
}

func (b Binary) SQL() string {
	switch b.Op {
	case "+", "-", "*", "/":
		return "(" + b.L.SQL() + " " + b.Op + " " + b.R.SQL() + ")"
	default:
		return b.L.SQL() + " " + b.Op + " " + b.R.SQL()
	}
}

// Logic joins terms with AND or OR inside parentheses.
type Logic struct {
	Op    string
	Terms []Expr
}

func (l Logic) SQL() string {
	if len(l.Terms) == 1 {
		return l.Terms[0].SQL()
	}
	parts := make([]string, len(l.Terms))
	for i, t := range l.Terms {
		parts[i] = t.SQL()
	}
	return "(" + strings.Join(parts, " "+l.Op+" ") + ")"
}

// Cast converts an expression to a SQL type.
type Cast struct {
	X    Expr
	Type string
}

func (c Cast) SQL() string {
	return "CAST(" + c.X.SQL() + " AS " + c.Type + ")"
}

// If is the BigQuery IF(cond, then, else) function.
type If struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (i If) SQL() string {
	return "IF(" + i.Cond.SQL() + ", " + i.Then.SQL() + ", " + i.Else.SQL() + ")"
}

// In tests membership of X in a literal set.
type In struct {
	X   Expr
	Set []Expr
}

func (in In) SQL() string {
	items := make([]string, len(in.Set))
	for i, s := range in.Set {
		items[i] = s.SQL()
	}
	return in.X.SQL() + " IN (" + strings.Join(items, ", ") + ")"
}

// Offset indexes an array expression with OFFSET(n).
type Offset struct {
	X Expr
	N int
}

func (o Offset) SQL() string {
	return o.X.SQL() + "[OFFSET(" + strconv.Itoa(o.N) + ")]"
}

// ExtractDate is EXTRACT(DATE FROM x).
type ExtractDate struct {
	X Expr
}

func (e ExtractDate) SQL() string {
	return "EXTRACT(DATE FROM " + e.X.SQL() + ")"
}
