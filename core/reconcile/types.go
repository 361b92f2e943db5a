package reconcile

// Status classifies a single key of a comparison.
type Status string

const (
	// StatusMatch means both sides agree within tolerance. Never emitted.
	StatusMatch Status = "MATCH"
	// StatusMissingRight means the baseline has an amount the counterpart lacks.
	StatusMissingRight Status = "MISSING_RIGHT"
	// StatusMissingLeft means the counterpart has an amount the baseline lacks.
	StatusMissingLeft Status = "MISSING_LEFT"
	// StatusDiff means both sides have amounts that differ beyond tolerance.
	StatusDiff Status = "DIFF"
)

// Severity is the rollup of a whole comparison.
type Severity string

const (
	SeverityOK      Severity = "OK"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// Row is one pre-aggregated amount of a keyed table.
type Row struct {
	// Amount is the tax-adjusted valuation amount.
	Amount int64

	// Trace holds correlated raw identifiers (e.g. "A1, A2"), if any.
	Trace string
}

// Table maps a join key to its single aggregated row.
type Table map[string]Row

// Total returns the sum of all amounts in the table.
func (t Table) Total() int64 {
	var total int64
	for _, r := range t {
		total += r.Amount
	}
	return total
}

// DiffRecord is one discrepancy between the baseline and the counterpart.
type DiffRecord struct {
	Key        string `json:"key"`
	LeftValue  int64  `json:"leftValue"`
	RightValue int64  `json:"rightValue"`
	// Diff is always RightValue - LeftValue.
	Diff   int64  `json:"diff"`
	Status Status `json:"status"`
	TSIDs  string `json:"tsIds,omitempty"`
}

// SourceCounts holds the number of keys on each side.
type SourceCounts struct {
	EOD    int `json:"eod"`
	Report int `json:"report"`
}

// SourceAmounts holds the amount totals of each side.
type SourceAmounts struct {
	EOD    int64 `json:"eod"`
	Report int64 `json:"report"`
}

// ComparisonResult is the classified output of Compare.
type ComparisonResult struct {
	Status         Severity      `json:"status"`
	UnmatchedCount int           `json:"unmatchedCount"`
	DiffCount      int           `json:"diffCount"`
	Details        []DiffRecord  `json:"details"`
	SourceCounts   SourceCounts  `json:"sourceCounts"`
	SourceAmounts  SourceAmounts `json:"sourceAmounts"`
}

// Failed returns the result reported for a comparison that could not run.
func Failed() ComparisonResult {
	return ComparisonResult{Status: SeverityError, Details: []DiffRecord{}}
}
