package plan

import (
	"testing"
	"time"

	"order-reconciler/core/warehouse"
	"order-reconciler/feature/fulfillment/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scope = Scope{Project: "eis-prod", Dataset: "tw"}

func day(s string) time.Time {
	t, _ := time.Parse(DateLayout, s)
	return t
}

func TestPlan_Params(t *testing.T) {
	p := NewPlanner(rules.Default(), Sources{})

	set, err := p.Plan(rules.Shopee, day("2024-05-31"))
	require.NoError(t, err)

	want := []warehouse.Param{
		{Name: ParamDate, Value: "2024-05-31"},
		{Name: ParamNextDay, Value: "2024-06-01"},
		{Name: ParamPlatform, Value: "SHOPEE"},
		{Name: ParamShopID, Value: int64(41571)},
	}
	for _, q := range set.All() {
		assert.Equal(t, want, q.Params, q.Kind)
	}
}

func TestPlan_UnknownPlatform(t *testing.T) {
	p := NewPlanner(rules.Default(), Sources{})
	_, err := p.Plan(rules.Platform("EBAY"), day("2024-05-01"))
	assert.ErrorIs(t, err, rules.ErrUnknownPlatform)
}

func TestPlan_Kinds(t *testing.T) {
	p := NewPlanner(rules.Default(), Sources{})
	set, err := p.Plan(rules.Momo, day("2024-05-01"))
	require.NoError(t, err)

	kinds := make([]Kind, 0, 4)
	for _, q := range set.All() {
		kinds = append(kinds, q.Kind)
	}
	assert.Equal(t, []Kind{ShipDeclared, ShipEndOfDay, ReturnDeclared, ReturnEndOfDay}, kinds)

	assert.NotNil(t, set.ShipDeclared.Trace)
	assert.Nil(t, set.ReturnDeclared.Trace)
	assert.Nil(t, set.ShipEndOfDay.Trace)
	assert.Nil(t, set.ShipEndOfDay.Join)
	assert.NotNil(t, set.ReturnDeclared.Aggregate)
}

func TestQuery_SQL_ShipEndOfDay(t *testing.T) {
	p := NewPlanner(rules.Default(), Sources{})
	set, err := p.Plan(rules.Yahoo, day("2024-05-01"))
	require.NoError(t, err)

	want := "SELECT LEFT(EODData.SalesOrderCode, 15) AS order_key, " +
		"CAST(ROUND((SUM(((EODData.Qty * EODData.RRP) - EODData.DiscountPrice)) / 1.05)) AS INT64) AS amount\n" +
		"FROM `eis-prod.tw.Adidas_EOD_Data_ht` AS EODData\n" +
		"WHERE EODData.BQUpdatedDateTime >= TIMESTAMP(@date)\n" +
		"  AND EODData.BQUpdatedDateTime < TIMESTAMP(@next_day)\n" +
		"  AND EODData.Platform = @platform\n" +
		"  AND EODData.Qty > 0\n" +
		"GROUP BY 1"
	assert.Equal(t, want, set.ShipEndOfDay.SQL(scope))
}

func TestQuery_SQL_ShipDeclared(t *testing.T) {
	p := NewPlanner(rules.Default(), Sources{})
	set, err := p.Plan(rules.Shopee, day("2024-05-01"))
	require.NoError(t, err)

	sql := set.ShipDeclared.SQL(scope)

	assert.Contains(t, sql, "WITH ShipData_Agg AS (\n")
	assert.Contains(t, sql, "SUM(TotalPayment) AS TotalPayment, SUM(Qty) AS Qty")
	assert.Contains(t, sql, "FROM `eis-prod.tw.ShipData_ht`")
	assert.Contains(t, sql, "WHERE ShopId = @shop_id\n  AND Platform = @platform")
	assert.Contains(t, sql, "EXTRACT(DATE FROM ShippingDateTime) = DATE(@date)")
	assert.Contains(t, sql, "SalesOrderStatus = '已出貨'")
	assert.Contains(t, sql, "TotalPayment != 0")
	assert.Contains(t, sql, "GROUP BY ShopId, Platform, SalesOrderCode, TgOrderCode, TransactionCode, SkuId, ShippingDateTime, OrderCode")
	assert.Contains(t, sql, "SELECT ShipData.SalesOrderCode AS order_key, STRING_AGG(DISTINCT ShipData.SalesOrderCode, ', ') AS ts_ids, ")
	assert.Contains(t, sql, "FROM ShipData_Agg AS ShipData\nLEFT JOIN `eis-prod.tw.Adidas_EOD_Data_ht` AS EODData\n")
	assert.Contains(t, sql, "ON ShipData.SkuId = CONCAT(EODData.ArticleNo, EODData.SizeIndex)")
	assert.Contains(t, sql, "AND (ShipData.Platform = 'SHOPEE' AND ShipData.SalesOrderCode = EODData.SalesOrderCode)")
	assert.Contains(t, sql, "AND ShipData.TransactionCode = IF(INSTR(EODData.TransactionCode, '-') > 0, SPLIT(EODData.TransactionCode, '-')[OFFSET(0)], EODData.TransactionCode)")
	assert.Contains(t, sql, "AND EODData.Qty > 0")

	// Inputs are never interpolated.
	assert.NotContains(t, sql, "2024-05-01")
	assert.NotContains(t, sql, "41571")
}

func TestQuery_SQL_ReturnDeclared(t *testing.T) {
	p := NewPlanner(rules.Default(), Sources{})
	set, err := p.Plan(rules.Storefront, day("2024-05-01"))
	require.NoError(t, err)

	sql := set.ReturnDeclared.SQL(scope)

	assert.Contains(t, sql, "EXTRACT(DATE FROM ReturnStatusUpdatedDateTime) = DATE(@date)")
	assert.Contains(t, sql, "SalesOrderStatus IN ('退貨結案', '出貨失敗結案')")
	assert.Contains(t, sql, "SELECT ShipData.SalesOrderCode AS order_key, ABS(")
	assert.Contains(t, sql, "AND EODData.Qty < 0")
	assert.NotContains(t, sql, "ts_ids")
	// Sub-order clause belongs to shipments only.
	assert.NotContains(t, sql, "AND ShipData.TransactionCode = IF(")
}

func TestPlan_SubOrderClauseOnShipmentsOnly(t *testing.T) {
	const subOrder = "ShipData.TransactionCode = IF(INSTR(EODData.TransactionCode, '-') > 0, SPLIT(EODData.TransactionCode, '-')[OFFSET(0)], EODData.TransactionCode)"
	p := NewPlanner(rules.Default(), Sources{})

	for _, platform := range []rules.Platform{rules.Yahoo, rules.Momo, rules.Shopee, rules.Storefront} {
		t.Run(string(platform), func(t *testing.T) {
			set, err := p.Plan(platform, day("2024-05-01"))
			require.NoError(t, err)

			assert.Contains(t, set.ShipDeclared.SQL(scope), "AND "+subOrder)
			assert.NotContains(t, set.ReturnDeclared.SQL(scope), "AND "+subOrder)
		})
	}

	// The storefront return predicate compares the hyphen-stripped code itself.
	set, err := p.Plan(rules.Storefront, day("2024-05-01"))
	require.NoError(t, err)
	assert.Contains(t, set.ReturnDeclared.SQL(scope), "(ShipData.TransactionCode = REPLACE(IF(INSTR(EODData.TransactionCode, '-') > 0")
}

func TestNewPlanner_Sources(t *testing.T) {
	p := NewPlanner(rules.Default(), Sources{Shipments: "ShipData_test", ShopID: 7})
	set, err := p.Plan(rules.Momo, day("2024-05-01"))
	require.NoError(t, err)

	assert.Equal(t, "ShipData_test", set.ShipDeclared.Source)
	assert.Equal(t, "Adidas_EOD_Data_ht", set.ShipEndOfDay.Source)
	assert.Equal(t, int64(7), set.ShipDeclared.Params[3].Value)
}

func TestScope_Table(t *testing.T) {
	assert.Equal(t, "`p.d.t`", Scope{Project: "p", Dataset: "d"}.Table("t"))
	assert.Equal(t, "`d.t`", Scope{Dataset: "d"}.Table("t"))
}
