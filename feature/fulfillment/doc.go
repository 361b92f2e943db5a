// Package fulfillment reconciles a day of order fulfillment: for every
// platform it plans the four warehouse queries, runs them concurrently,
// compares the shipment and return pairs with core/reconcile and returns one
// PlatformReport per platform.
//
// # Run Semantics
//
// By default the first failing platform aborts the whole run. With
// IsolateFailures a failed platform is reported as ERROR with an error
// message instead. Identical concurrent runs share one execution, completed
// runs can be cached for CacheTTL, and a per-date lock keeps two instances
// from reconciling the same request at once.
//
// # HTTP
//
//   - GET /api/reconcile?date=YYYY-MM-DD[&platform=..][&save=true][&runBy=..]
//   - GET /api/reconcile/export?date=YYYY-MM-DD (XLSX)
//   - GET /api/reconcile/archive?date=YYYY-MM-DD
//   - GET /api/platforms
//
// Bad input answers 400, a run already in progress 409, and any warehouse
// failure 500 with {"error": "..."}.
package fulfillment
