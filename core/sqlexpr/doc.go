// Package sqlexpr provides a small, typed SQL expression tree.
//
// Matching rules and query plans are written as values of this package rather
// than as string fragments, so they can be inspected and rendered in tests
// without a warehouse connection.
//
// # Usage
//
//	key := sqlexpr.Left(sqlexpr.Col("ShipData", "SalesOrderCode"), 15)
//	key.SQL() // LEFT(ShipData.SalesOrderCode, 15)
package sqlexpr
