package reconcile

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amounts(values map[string]int64) Table {
	t := make(Table, len(values))
	for k, v := range values {
		t[k] = Row{Amount: v}
	}
	return t
}

// TestClassify covers the tolerance and zero boundaries.
func TestClassify(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name  string
		left  int64
		right int64
		want  Status
	}{
		{"equal", 100, 100, StatusMatch},
		{"within tolerance", 100, 105, StatusMatch},
		{"within tolerance negative", 100, 95, StatusMatch},
		{"beyond tolerance", 100, 106, StatusDiff},
		{"beyond tolerance negative", 100, 94, StatusDiff},
		{"both zero", 0, 0, StatusMatch},
		{"missing right", 50, 0, StatusMissingRight},
		{"missing left", 0, 50, StatusMissingLeft},
		{"missing right small amount", 3, 0, StatusMissingRight},
		{"negative amounts", -10, -20, StatusDiff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.left, tt.right, th))
		})
	}
}

func TestRollup(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name      string
		unmatched int
		diffs     int
		want      Severity
	}{
		{"clean", 0, 0, SeverityOK},
		{"one unmatched", 1, 0, SeverityWarning},
		{"one diff", 0, 1, SeverityWarning},
		{"ten of each", 10, 10, SeverityWarning},
		{"eleven unmatched", 11, 0, SeverityError},
		{"eleven diffs", 0, 11, SeverityError},
		{"sum above threshold is still warning", 6, 6, SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rollup(tt.unmatched, tt.diffs, th))
		})
	}
}

// TestCompare_OuterJoin verifies that every key of either side is classified
// and that only non-matching keys are emitted.
func TestCompare_OuterJoin(t *testing.T) {
	left := amounts(map[string]int64{"A": 100, "B": 100, "C": 0, "D": 40})
	right := amounts(map[string]int64{"A": 103, "B": 200, "E": 0, "F": 70})

	result := Compare(left, right, DefaultThresholds())

	// A matches within tolerance, C/E are 0/0 matches.
	require.Len(t, result.Details, 3)
	assert.Equal(t, "B", result.Details[0].Key)
	assert.Equal(t, StatusDiff, result.Details[0].Status)
	assert.Equal(t, "D", result.Details[1].Key)
	assert.Equal(t, StatusMissingRight, result.Details[1].Status)
	assert.Equal(t, "F", result.Details[2].Key)
	assert.Equal(t, StatusMissingLeft, result.Details[2].Status)

	assert.Equal(t, 2, result.UnmatchedCount)
	assert.Equal(t, 1, result.DiffCount)
	assert.Equal(t, SeverityWarning, result.Status)

	for _, d := range result.Details {
		assert.Equal(t, d.RightValue-d.LeftValue, d.Diff, "diff must be right - left for %s", d.Key)
		assert.NotEqual(t, StatusMatch, d.Status)
	}
}

func TestCompare_SourceStatistics(t *testing.T) {
	left := amounts(map[string]int64{"A": 100, "B": 50})
	right := amounts(map[string]int64{"A": 100, "C": 25, "D": 5})

	result := Compare(left, right, DefaultThresholds())

	assert.Equal(t, SourceCounts{EOD: 2, Report: 3}, result.SourceCounts)
	assert.Equal(t, SourceAmounts{EOD: 150, Report: 130}, result.SourceAmounts)
}

func TestCompare_EmptyTables(t *testing.T) {
	result := Compare(Table{}, nil, DefaultThresholds())

	assert.Equal(t, SeverityOK, result.Status)
	assert.NotNil(t, result.Details)
	assert.Empty(t, result.Details)
}

// TestCompare_ErrorEscalation checks that eleven missing rows escalate to ERROR.
func TestCompare_ErrorEscalation(t *testing.T) {
	left := Table{}
	for i := 0; i < 11; i++ {
		left[fmt.Sprintf("K%02d", i)] = Row{Amount: 100}
	}

	result := Compare(left, Table{}, DefaultThresholds())

	assert.Equal(t, 11, result.UnmatchedCount)
	assert.Equal(t, 0, result.DiffCount)
	assert.Equal(t, SeverityError, result.Status)
}

// TestCompare_TraceFromRight verifies tsIds come from the declared side.
func TestCompare_TraceFromRight(t *testing.T) {
	left := Table{"K1": {Amount: 100, Trace: "ignored"}}
	right := Table{"K1": {Amount: 300, Trace: "TS-1, TS-2"}}

	result := Compare(left, right, DefaultThresholds())

	require.Len(t, result.Details, 1)
	assert.Equal(t, "TS-1, TS-2", result.Details[0].TSIDs)
}

func TestCompare_Idempotent(t *testing.T) {
	left := amounts(map[string]int64{"A": 1, "B": 2, "C": 3, "D": 400})
	right := amounts(map[string]int64{"B": 2, "C": 30, "E": 5, "D": 402})

	first, err := json.Marshal(Compare(left, right, DefaultThresholds()))
	require.NoError(t, err)
	second, err := json.Marshal(Compare(left, right, DefaultThresholds()))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestCompare_CustomThresholds(t *testing.T) {
	left := amounts(map[string]int64{"A": 100, "B": 100})
	right := amounts(map[string]int64{"A": 102, "B": 110})

	result := Compare(left, right, Thresholds{Tolerance: 1, ErrorThreshold: 1})

	assert.Equal(t, 2, result.DiffCount)
	assert.Equal(t, SeverityError, result.Status)
}

func TestConfig_Thresholds(t *testing.T) {
	assert.Equal(t, Thresholds{Tolerance: 2, ErrorThreshold: 3}, Config{Tolerance: 2, ErrorThreshold: 3}.Thresholds())
	assert.Equal(t, DefaultThresholds(), Config{Tolerance: -1, ErrorThreshold: -1}.Thresholds())
	assert.Equal(t, Thresholds{Tolerance: 0, ErrorThreshold: 10}, Config{Tolerance: 0, ErrorThreshold: 10}.Thresholds())
}

func TestConfig_ZeroToleranceIsExactMatch(t *testing.T) {
	th := Config{Tolerance: 0, ErrorThreshold: DefaultErrorThreshold}.Thresholds()

	assert.Equal(t, StatusDiff, Classify(100, 101, th))
	assert.Equal(t, StatusMatch, Classify(100, 100, th))
	assert.Equal(t, StatusMatch, Classify(100, 105, DefaultThresholds()))
}
