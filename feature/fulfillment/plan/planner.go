package plan

import (
	"fmt"
	"time"

	x "order-reconciler/core/sqlexpr"
	"order-reconciler/core/warehouse"
	"order-reconciler/feature/fulfillment/rules"
)

// DateLayout is the layout of the date parameters.
const DateLayout = "2006-01-02"

// Declared shipment statuses.
const (
	StatusShipped        = "已出貨"
	StatusReturnClosed   = "退貨結案"
	StatusDeliveryFailed = "出貨失敗結案"
)

// Sources names the warehouse tables the planner reads.
type Sources struct {
	Shipments string
	EndOfDay  string
	ShopID    int64
}

// DefaultSources returns the production table names.
func DefaultSources() Sources {
	return Sources{
		Shipments: "ShipData_ht",
		EndOfDay:  "Adidas_EOD_Data_ht",
		ShopID:    41571,
	}
}

// Planner builds the four logical queries of a platform for a date.
type Planner struct {
	registry *rules.Registry
	sources  Sources
}

// NewPlanner creates a planner over registry. Empty source fields fall back
// to DefaultSources.
func NewPlanner(registry *rules.Registry, sources Sources) *Planner {
	def := DefaultSources()
	if sources.Shipments == "" {
		sources.Shipments = def.Shipments
	}
	if sources.EndOfDay == "" {
		sources.EndOfDay = def.EndOfDay
	}
	if sources.ShopID == 0 {
		sources.ShopID = def.ShopID
	}
	return &Planner{registry: registry, sources: sources}
}

// Plan returns the query set of platform on date. Only the calendar day of
// date is used.
func (p *Planner) Plan(platform rules.Platform, date time.Time) (Set, error) {
	rule, err := p.registry.Rule(platform)
	if err != nil {
		return Set{}, err
	}

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	params := []warehouse.Param{
		{Name: ParamDate, Value: day.Format(DateLayout)},
		{Name: ParamNextDay, Value: day.AddDate(0, 0, 1).Format(DateLayout)},
		{Name: ParamPlatform, Value: string(platform)},
		{Name: ParamShopID, Value: p.sources.ShopID},
	}

	return Set{
		ShipDeclared:   p.shipDeclared(rule, params),
		ShipEndOfDay:   p.endOfDay(ShipEndOfDay, rule.ShipmentKey, rule.ShipmentValue, x.Gt(eod(rules.ColQty), x.Int(0)), params),
		ReturnDeclared: p.returnDeclared(rule, params),
		ReturnEndOfDay: p.endOfDay(ReturnEndOfDay, rule.ReturnKey, rule.ReturnValue, x.Lt(eod(rules.ColQty), x.Int(0)), params),
	}, nil
}

func eod(col string) x.Expr  { return x.Col(rules.AliasEndOfDay, col) }
func ship(col string) x.Expr { return x.Col(rules.AliasDeclared, col) }
func bare(col string) x.Expr { return x.Col("", col) }

// window restricts end-of-day rows to those loaded on the target day.
func window() []x.Expr {
	return []x.Expr{
		x.Gte(eod(rules.ColUpdatedAt), x.Timestamp(x.Param(ParamDate))),
		x.Lt(eod(rules.ColUpdatedAt), x.Timestamp(x.Param(ParamNextDay))),
	}
}

// joinOn is the part of the declared/end-of-day join shared by shipments and
// returns: same SKU, same platform, and the end-of-day row loaded that day.
func joinOn(qty x.Expr) []x.Expr {
	on := []x.Expr{
		x.Eq(ship(rules.ColSkuID), x.Concat(eod(rules.ColArticleNo), eod(rules.ColSizeIndex))),
		x.Eq(ship(rules.ColPlatform), eod(rules.ColPlatform)),
		qty,
	}
	return append(on, window()...)
}

func (p *Planner) shipDeclared(rule rules.Rule, params []warehouse.Param) Query {
	on := joinOn(x.Gt(eod(rules.ColQty), x.Int(0)))
	on = append(on,
		rule.ShipmentMatch,
		x.Eq(ship(rules.ColTransactionCode), x.BeforeHyphen(eod(rules.ColTransactionCode))),
	)

	return Query{
		Kind:   ShipDeclared,
		Source: p.sources.Shipments,
		Alias:  rules.AliasDeclared,
		Aggregate: &Aggregation{
			GroupBy: []string{
				rules.ColShopID, rules.ColPlatform, rules.ColSalesOrderCode, rules.ColTgOrderCode,
				rules.ColTransactionCode, rules.ColSkuID, rules.ColShippingDateTime, rules.ColOrderCode,
			},
			SumColumns: []string{rules.ColTotalPayment, rules.ColQty},
			Filters: []x.Expr{
				x.Eq(bare(rules.ColShopID), x.Param(ParamShopID)),
				x.Eq(bare(rules.ColPlatform), x.Param(ParamPlatform)),
				x.Eq(x.ExtractDate{X: bare(rules.ColShippingDateTime)}, x.Date(x.Param(ParamDate))),
				x.Eq(bare(rules.ColSalesOrderStatus), x.String(StatusShipped)),
				x.Ne(bare(rules.ColTotalPayment), x.Int(0)),
			},
		},
		Join:   &Join{Table: p.sources.EndOfDay, Alias: rules.AliasEndOfDay, On: on},
		Key:    Output{Name: KeyColumn, Expr: rule.ShipmentKey.Declared()},
		Value:  Output{Name: ValueColumn, Expr: rule.ShipmentValue.Declared()},
		Trace:  &Output{Name: TraceColumn, Expr: x.StringAggDistinct(ship(rules.ColSalesOrderCode))},
		Params: params,
	}
}

func (p *Planner) returnDeclared(rule rules.Rule, params []warehouse.Param) Query {
	on := joinOn(x.Lt(eod(rules.ColQty), x.Int(0)))
	on = append(on, rule.ReturnMatch)

	return Query{
		Kind:   ReturnDeclared,
		Source: p.sources.Shipments,
		Alias:  rules.AliasDeclared,
		Aggregate: &Aggregation{
			GroupBy: []string{
				rules.ColShopID, rules.ColPlatform, rules.ColSalesOrderCode,
				rules.ColTransactionCode, rules.ColSkuID, rules.ColShippingDateTime, rules.ColOrderCode,
			},
			SumColumns: []string{rules.ColTotalPayment, rules.ColQty},
			Filters: []x.Expr{
				x.Eq(bare(rules.ColShopID), x.Param(ParamShopID)),
				x.Eq(bare(rules.ColPlatform), x.Param(ParamPlatform)),
				x.Eq(x.ExtractDate{X: bare(rules.ColReturnUpdatedAt)}, x.Date(x.Param(ParamDate))),
				x.In{X: bare(rules.ColSalesOrderStatus), Set: []x.Expr{x.String(StatusReturnClosed), x.String(StatusDeliveryFailed)}},
				x.Ne(bare(rules.ColTotalPayment), x.Int(0)),
			},
		},
		Join:   &Join{Table: p.sources.EndOfDay, Alias: rules.AliasEndOfDay, On: on},
		Key:    Output{Name: KeyColumn, Expr: rule.ReturnKey.Declared()},
		Value:  Output{Name: ValueColumn, Expr: rule.ReturnValue.Declared()},
		Params: params,
	}
}

func (p *Planner) endOfDay(kind Kind, key rules.KeyRule, value rules.Formula, qty x.Expr, params []warehouse.Param) Query {
	filters := append(window(), x.Eq(eod(rules.ColPlatform), x.Param(ParamPlatform)), qty)
	return Query{
		Kind:    kind,
		Source:  p.sources.EndOfDay,
		Alias:   rules.AliasEndOfDay,
		Filters: filters,
		Key:     Output{Name: KeyColumn, Expr: key.EndOfDay()},
		Value:   Output{Name: ValueColumn, Expr: value.EndOfDay()},
		Params:  params,
	}
}

// String identifies the query in logs and errors.
func (q Query) String() string {
	return fmt.Sprintf("%s(%s)", q.Kind, q.Source)
}
