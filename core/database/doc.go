// Package database opens the relational database that stores saved
// reconciliation reports.
//
// It wraps GORM and supports MySQL for deployments and SQLite for local runs
// and tests.
//
// # Schema Inspection
//
// GetTableColumns lists the columns of a table with lower-cased names and
// types. The health check compares it with the history model.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
//
//	columns, err := database.GetTableColumns(db, "saved_reports")
package database
