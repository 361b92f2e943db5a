package rules

import (
	x "order-reconciler/core/sqlexpr"
)

// Table aliases used by every rule expression.
const (
	AliasDeclared = "ShipData"
	AliasEndOfDay = "EODData"
)

// Column names of the declared shipment table and the end-of-day feed.
const (
	ColShopID           = "ShopId"
	ColPlatform         = "Platform"
	ColSalesOrderCode   = "SalesOrderCode"
	ColTgOrderCode      = "TgOrderCode"
	ColTransactionCode  = "TransactionCode"
	ColSkuID            = "SkuId"
	ColShippingDateTime = "ShippingDateTime"
	ColReturnUpdatedAt  = "ReturnStatusUpdatedDateTime"
	ColOrderCode        = "OrderCode"
	ColSalesOrderStatus = "SalesOrderStatus"
	ColTotalPayment     = "TotalPayment"
	ColQty              = "Qty"
	ColRRP              = "RRP"
	ColDiscountPrice    = "DiscountPrice"
	ColArticleNo        = "ArticleNo"
	ColSizeIndex        = "SizeIndex"
	ColUpdatedAt        = "BQUpdatedDateTime"
)

// ReturnMarker prefixes storefront return transaction codes in the
// end-of-day feed.
const ReturnMarker = "R"

// KeyRule derives the join key of a record on both sides.
type KeyRule struct {
	// DeclaredField is the declared-side column holding the raw code.
	DeclaredField string
	// EndOfDayField is the end-of-day column holding the raw code.
	EndOfDayField string
	// Length truncates the code to its first Length characters. Zero keeps it whole.
	Length int
}

// Declared returns the key expression over the declared alias.
func (k KeyRule) Declared() x.Expr {
	return k.wrap(x.Col(AliasDeclared, k.DeclaredField))
}

// EndOfDay returns the key expression over the end-of-day alias.
func (k KeyRule) EndOfDay() x.Expr {
	return k.wrap(x.Col(AliasEndOfDay, k.EndOfDayField))
}

func (k KeyRule) wrap(col x.Expr) x.Expr {
	if k.Length > 0 {
		return x.Left(col, k.Length)
	}
	return col
}

// Rule is the matching rule of one platform. All fields are data: the query
// planner renders them, nothing here executes.
type Rule struct {
	Platform Platform

	ShipmentKey KeyRule
	ReturnKey   KeyRule

	// ShipmentMatch and ReturnMatch are the platform-specific parts of the
	// join between a declared record and an end-of-day record.
	ShipmentMatch x.Expr
	ReturnMatch   x.Expr

	ShipmentValue Formula
	ReturnValue   Formula
}

// PlatformTag is the platform literal used in rule predicates.
func (r Rule) PlatformTag() x.Expr {
	return x.String(string(r.Platform))
}

func declared(col string) x.Expr { return x.Col(AliasDeclared, col) }
func endOfDay(col string) x.Expr { return x.Col(AliasEndOfDay, col) }

func shipmentValue() Formula {
	return Formula{Discount: SubtractDiscount, DeclaredLineMagnitude: true, TaxFactor: TaxFactor}
}

func returnValue() Formula {
	return Formula{Discount: AddDiscount, Magnitude: true, TaxFactor: TaxFactor}
}

// codeRule matches on the sales order code, truncated to length characters
// when length > 0.
func codeRule(p Platform, length int) Rule {
	key := KeyRule{DeclaredField: ColSalesOrderCode, EndOfDayField: ColSalesOrderCode, Length: length}
	r := Rule{
		Platform:      p,
		ShipmentKey:   key,
		ReturnKey:     key,
		ShipmentValue: shipmentValue(),
		ReturnValue:   returnValue(),
	}
	match := x.And(
		x.Eq(declared(ColPlatform), r.PlatformTag()),
		x.Eq(key.Declared(), key.EndOfDay()),
	)
	r.ShipmentMatch = match
	r.ReturnMatch = match
	return r
}

// storefrontRule keys shipments on the transaction group code and matches them
// on the exact amount; returns are keyed on the order code and matched on the
// transaction code with an amount tolerance below one unit.
func storefrontRule() Rule {
	r := Rule{
		Platform:      Storefront,
		ShipmentKey:   KeyRule{DeclaredField: ColTgOrderCode, EndOfDayField: ColSalesOrderCode},
		ReturnKey:     KeyRule{DeclaredField: ColSalesOrderCode, EndOfDayField: ColSalesOrderCode},
		ShipmentValue: shipmentValue(),
		ReturnValue:   returnValue(),
	}

	r.ShipmentMatch = x.And(
		x.Eq(declared(ColPlatform), r.PlatformTag()),
		x.Eq(declared(ColTotalPayment), r.ShipmentValue.Line()),
	)

	// TODO: confirm with the storefront owners whether the return marker can
	// also appear on marketplace return codes; it is only stripped here.
	baseCode := x.BeforeHyphen(endOfDay(ColTransactionCode))
	r.ReturnMatch = x.And(
		x.Eq(declared(ColPlatform), r.PlatformTag()),
		x.Or(
			x.Eq(declared(ColTransactionCode), x.Replace(baseCode, ReturnMarker, "")),
			x.Eq(declared(ColTransactionCode), baseCode),
		),
		x.Lt(x.Abs(x.Sub(declared(ColTotalPayment), r.ReturnValue.Line())), x.Int(1)),
	)
	return r
}
