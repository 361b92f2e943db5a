package rules

import (
	x "order-reconciler/core/sqlexpr"

	"github.com/shopspring/decimal"
)

// TaxFactor converts tax-inclusive amounts to tax-exclusive ones.
var TaxFactor = decimal.RequireFromString("1.05")

// Discount tells whether the end-of-day discount is subtracted from or added
// to the gross line amount.
type Discount int

const (
	// SubtractDiscount values a line as Qty*RRP - DiscountPrice (shipments).
	SubtractDiscount Discount = iota
	// AddDiscount values a line as Qty*RRP + DiscountPrice (returns).
	AddDiscount
)

// Formula values a group of end-of-day lines as one integer amount:
// round(sum(line) / TaxFactor).
type Formula struct {
	Discount Discount
	// DeclaredLineMagnitude makes the declared side round every line to an
	// integer and take its magnitude before summing.
	DeclaredLineMagnitude bool
	// Magnitude reports the absolute value of the final amount on both sides.
	Magnitude bool
	TaxFactor decimal.Decimal
}

// Line returns the per-line amount expression over the end-of-day alias.
func (f Formula) Line() x.Expr {
	gross := x.Mul(x.Col(AliasEndOfDay, ColQty), x.Col(AliasEndOfDay, ColRRP))
	discount := x.Col(AliasEndOfDay, ColDiscountPrice)
	if f.Discount == AddDiscount {
		return x.Add(gross, discount)
	}
	return x.Sub(gross, discount)
}

// EndOfDay returns the aggregate amount expression for the end-of-day query.
func (f Formula) EndOfDay() x.Expr {
	return f.aggregate(f.Line())
}

// Declared returns the aggregate amount expression for the declared query.
func (f Formula) Declared() x.Expr {
	line := f.Line()
	if f.DeclaredLineMagnitude {
		line = x.Abs(x.Int64(line))
	}
	return f.aggregate(line)
}

func (f Formula) aggregate(line x.Expr) x.Expr {
	amount := x.Int64(x.Round(x.Div(x.Sum(line), x.Number(f.taxFactor().String()))))
	if f.Magnitude {
		return x.Abs(amount)
	}
	return amount
}

func (f Formula) taxFactor() decimal.Decimal {
	if f.TaxFactor.IsZero() {
		return TaxFactor
	}
	return f.TaxFactor
}
