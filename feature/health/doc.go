// Package health reports whether the backends of the reconciler are usable.
//
// # Checks Provided
//
//   - Warehouse: Runs a trivial query against BigQuery.
//   - Database: Pings the history database and compares the saved_reports
//     table with the history model (missing columns, declared types).
//   - Storage: Verifies the archive bucket exists. Supports ?fix=true.
//   - Cache: Pings the cache backend.
//
// Components that are not configured report "disabled" and never fail the
// overall status.
//
// # HTTP Endpoints
//
//   - GET /health : Runs all checks. Responds 503 when any check fails.
//   - GET /health/:component : Runs one check.
package health
