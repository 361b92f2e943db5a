package fulfillment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"order-reconciler/feature/fulfillment/plan"
	"order-reconciler/feature/fulfillment/rules"
)

var (
	// ErrMissingParameter is returned when a required input is absent.
	ErrMissingParameter = errors.New("missing parameter")
	// ErrInvalidDate is returned when the date is not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrRunInProgress is returned when another instance is reconciling the same date.
	ErrRunInProgress = errors.New("reconciliation already in progress")
)

// QueryError reports a failed warehouse query.
type QueryError struct {
	Platform rules.Platform
	Query    plan.Kind
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("platform %s: query %s: %v", e.Platform, e.Query, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// ParseDate parses a YYYY-MM-DD date as a UTC calendar day.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date", ErrMissingParameter)
	}
	d, err := time.Parse(plan.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// IsClientError reports whether err was caused by bad input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrMissingParameter) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, rules.ErrUnknownPlatform)
}
