// Package reconcile compares two keyed amount tables and classifies every key.
//
// The left table is the baseline (the end-of-day feed) and the right table is
// its counterpart (the declared side). Both are pre-aggregated: one row per
// key. The engine performs an explicit full outer join over the union of keys,
// filling a missing side with zero.
//
// # Classification
//
// Each key is classified exactly once, in this order:
//
//  1. MISSING_RIGHT: left != 0 and right == 0
//  2. MISSING_LEFT: left == 0 and right != 0
//  3. DIFF: both non-zero and |right - left| > Tolerance
//  4. MATCH: everything else, including 0/0
//
// MATCH keys are never materialized.
//
// # Severity
//
// OK when there are no discrepancies, ERROR when either the unmatched count or
// the diff count exceeds ErrorThreshold, WARNING otherwise. The defaults are a
// tolerance of 5 currency units and an error threshold of 10.
//
// # Usage
//
//	result := reconcile.Compare(eod, declared, reconcile.DefaultThresholds())
//	if result.Status != reconcile.SeverityOK {
//	    ...
//	}
package reconcile
