package reconcile

import "time"

const (
	// DefaultTolerance is the largest absolute difference still counted as a match.
	DefaultTolerance int64 = 5
	// DefaultErrorThreshold is the count of discrepancies above which a result is ERROR.
	DefaultErrorThreshold = 10
)

// Thresholds tunes classification and severity rollup.
type Thresholds struct {
	// Tolerance is compared with |right - left| using a strict greater-than.
	Tolerance int64
	// ErrorThreshold escalates WARNING to ERROR when either count exceeds it.
	ErrorThreshold int
}

// DefaultThresholds returns the production thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{Tolerance: DefaultTolerance, ErrorThreshold: DefaultErrorThreshold}
}

// Config holds reconciliation run settings.
type Config struct {
	// Platforms lists the platforms reconciled per run, in report order.
	Platforms []string `mapstructure:"platforms" default:"品牌官網,SHOPEE,MOMO,YAHOO"`
	// Tolerance is the amount tolerance in currency units. Zero demands an
	// exact match.
	Tolerance int64 `mapstructure:"tolerance" default:"5"`
	// ErrorThreshold is the discrepancy count above which a result is ERROR.
	ErrorThreshold int `mapstructure:"error_threshold" default:"10"`
	// Parallel processes platforms concurrently.
	Parallel bool `mapstructure:"parallel" default:"false"`
	// IsolateFailures reports a failed platform as ERROR instead of failing the run.
	IsolateFailures bool `mapstructure:"isolate_failures" default:"false"`
	// CacheTTL keeps run results for repeated requests. Zero disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"0s"`
	// LockTTL bounds how long a run holds the per-date lock.
	LockTTL time.Duration `mapstructure:"lock_ttl" default:"5m"`
	// Archive stores every run's JSON and XLSX in object storage.
	Archive bool `mapstructure:"archive" default:"false"`
}

// Thresholds returns the configured thresholds. Defaults come from the
// struct tags at load time, so zero is a real setting; only negative values
// fall back to the defaults.
func (c Config) Thresholds() Thresholds {
	th := DefaultThresholds()
	if c.Tolerance >= 0 {
		th.Tolerance = c.Tolerance
	}
	if c.ErrorThreshold >= 0 {
		th.ErrorThreshold = c.ErrorThreshold
	}
	return th
}
