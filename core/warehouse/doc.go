// Package warehouse runs read-only queries against the BigQuery data warehouse.
//
// Callers depend on the Executor interface; Client is the BigQuery
// implementation and core/warehouse/mocks provides a testify mock.
//
//	client, err := warehouse.NewClient(ctx, cfg.Warehouse, logger)
//	rows, err := client.Query(ctx, sql, []warehouse.Param{{Name: "date", Value: "2024-05-01"}})
package warehouse
