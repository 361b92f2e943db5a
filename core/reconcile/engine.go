package reconcile

import "sort"

// Compare reconciles a baseline table (left, end-of-day) against its
// counterpart (right, declared). Every key of either table is classified once;
// a key missing on one side counts as zero there. Only non-matching keys are
// returned in Details, ordered by key.
func Compare(left, right Table, th Thresholds) ComparisonResult {
	unionKeys := buildUnion(left, right)

	keys := make([]string, 0, len(unionKeys))
	for key := range unionKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	result := ComparisonResult{
		Details:       []DiffRecord{},
		SourceCounts:  SourceCounts{EOD: len(left), Report: len(right)},
		SourceAmounts: SourceAmounts{EOD: left.Total(), Report: right.Total()},
	}

	for _, key := range keys {
		record := buildRecord(key, left, right, th)
		switch record.Status {
		case StatusMatch:
			continue
		case StatusMissingLeft, StatusMissingRight:
			result.UnmatchedCount++
		case StatusDiff:
			result.DiffCount++
		}
		result.Details = append(result.Details, record)
	}

	result.Status = Rollup(result.UnmatchedCount, result.DiffCount, th)
	return result
}

// Classify returns the status of a single pair of amounts.
// The missing checks run before the tolerance check, so 0/0 is a match.
func Classify(left, right int64, th Thresholds) Status {
	switch {
	case left != 0 && right == 0:
		return StatusMissingRight
	case left == 0 && right != 0:
		return StatusMissingLeft
	case left != 0 && right != 0 && abs(right-left) > th.Tolerance:
		return StatusDiff
	default:
		return StatusMatch
	}
}

// Rollup maps discrepancy counts to a severity.
func Rollup(unmatched, diffs int, th Thresholds) Severity {
	if unmatched > th.ErrorThreshold || diffs > th.ErrorThreshold {
		return SeverityError
	}
	if unmatched > 0 || diffs > 0 {
		return SeverityWarning
	}
	return SeverityOK
}

// buildUnion creates the union of keys of both tables.
func buildUnion(left, right Table) map[string]struct{} {
	union := make(map[string]struct{}, len(left)+len(right))
	for key := range left {
		union[key] = struct{}{}
	}
	for key := range right {
		union[key] = struct{}{}
	}
	return union
}

// buildRecord creates the record for a single key.
func buildRecord(key string, left, right Table, th Thresholds) DiffRecord {
	l := left[key]
	r := right[key]

	return DiffRecord{
		Key:        key,
		LeftValue:  l.Amount,
		RightValue: r.Amount,
		Diff:       r.Amount - l.Amount,
		Status:     Classify(l.Amount, r.Amount, th),
		TSIDs:      r.Trace,
	}
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
