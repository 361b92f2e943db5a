package sqlexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	eod := func(name string) Expr { return Col("EODData", name) }

	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"bare column", Col("", "Qty"), "Qty"},
		{"qualified column", eod("Qty"), "EODData.Qty"},
		{"param", Param("date"), "@date"},
		{"string literal escapes quotes", String("it's"), `'it\'s'`},
		{"left", Left(eod("SalesOrderCode"), 18), "LEFT(EODData.SalesOrderCode, 18)"},
		{
			"arithmetic keeps tree shape",
			Sub(Mul(eod("Qty"), eod("RRP")), eod("DiscountPrice")),
			"((EODData.Qty * EODData.RRP) - EODData.DiscountPrice)",
		},
		{"comparison", Gt(eod("Qty"), Int(0)), "EODData.Qty > 0"},
		{"and", And(Eq(Int(1), Int(1)), nil, Ne(Int(2), Int(3))), "(1 = 1 AND 2 != 3)"},
		{"single term logic has no parens", Or(Eq(Int(1), Int(1))), "1 = 1"},
		{"in", In{X: Col("", "Status"), Set: []Expr{String("a"), String("b")}}, "Status IN ('a', 'b')"},
		{"cast", Int64(Round(Number("1.5"))), "CAST(ROUND(1.5) AS INT64)"},
		{"string agg", StringAggDistinct(Col("S", "Code")), "STRING_AGG(DISTINCT S.Code, ', ')"},
		{"extract date", Eq(ExtractDate{X: Col("", "ShippingDatetime")}, Date(Param("date"))), "EXTRACT(DATE FROM ShippingDatetime) = DATE(@date)"},
		{
			"before hyphen",
			BeforeHyphen(eod("TransactionCode")),
			"IF(INSTR(EODData.TransactionCode, '-') > 0, SPLIT(EODData.TransactionCode, '-')[OFFSET(0)], EODData.TransactionCode)",
		},
		{"replace", Replace(Col("", "Code"), "R", ""), "REPLACE(Code, 'R', '')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.expr.SQL())
		})
	}
}
