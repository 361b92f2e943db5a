// Package plan turns a platform's matching rule into the four warehouse
// queries of a reconciliation day: declared and end-of-day shipments, and
// declared and end-of-day returns.
//
// Queries are plain values. Rendering (Query.SQL) produces BigQuery Standard
// SQL with every input bound as a named parameter, so the planner never
// touches the warehouse itself.
package plan
