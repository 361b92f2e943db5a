package sqlexpr

func Eq(l, r Expr) Expr  { return Binary{Op: "=", L: l, R: r} }
func Ne(l, r Expr) Expr  { return Binary{Op: "!=", L: l, R: r} }
func Lt(l, r Expr) Expr  { return Binary{Op: "<", L: l, R: r} }
func Gt(l, r Expr) Expr  { return Binary{Op: ">", L: l, R: r} }
func Gte(l, r Expr) Expr { return Binary{Op: ">=", L: l, R: r} }

func Add(l, r Expr) Expr { return Binary{Op: "+", L: l, R: r} }
func Sub(l, r Expr) Expr { return Binary{Op: "-", L: l, R: r} }
func Mul(l, r Expr) Expr { return Binary{Op: "*", L: l, R: r} }
func Div(l, r Expr) Expr { return Binary{Op: "/", L: l, R: r} }

// And joins terms with AND. Nil terms are skipped.
func And(terms ...Expr) Expr { return Logic{Op: "AND", Terms: compact(terms)} }

// Or joins terms with OR. Nil terms are skipped.
func Or(terms ...Expr) Expr { return Logic{Op: "OR", Terms: compact(terms)} }

// Left keeps the first n characters of x.
func Left(x Expr, n int) Expr { return Call{Fn: "LEFT", Args: []Expr{x, Int(n)}} }

func Concat(args ...Expr) Expr { return Call{Fn: "CONCAT", Args: args} }
func Abs(x Expr) Expr          { return Call{Fn: "ABS", Args: []Expr{x}} }
func Sum(x Expr) Expr          { return Call{Fn: "SUM", Args: []Expr{x}} }
func Round(x Expr) Expr        { return Call{Fn: "ROUND", Args: []Expr{x}} }
func Date(x Expr) Expr         { return Call{Fn: "DATE", Args: []Expr{x}} }
func Timestamp(x Expr) Expr    { return Call{Fn: "TIMESTAMP", Args: []Expr{x}} }
func Int64(x Expr) Expr        { return Cast{X: x, Type: "INT64"} }

// Replace removes or substitutes every occurrence of from in x.
func Replace(x Expr, from, to string) Expr {
	return Call{Fn: "REPLACE", Args: []Expr{x, String(from), String(to)}}
}

// StringAggDistinct concatenates distinct values separated by ", ".
func StringAggDistinct(x Expr) Expr {
	return Call{Fn: "STRING_AGG", Distinct: true, Args: []Expr{x, String(", ")}}
}

// BeforeHyphen keeps the part of x before the first hyphen, or x unchanged
// when it contains none. Sub-orders are written as "<code>-<n>".
func BeforeHyphen(x Expr) Expr {
	return If{
		Cond: Gt(Call{Fn: "INSTR", Args: []Expr{x, String("-")}}, Int(0)),
		Then: Offset{X: Call{Fn: "SPLIT", Args: []Expr{x, String("-")}}, N: 0},
		Else: x,
	}
}

func compact(terms []Expr) []Expr {
	out := make([]Expr, 0, len(terms))
	for _, t := range terms {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}
