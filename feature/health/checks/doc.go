// Package checks holds the individual health probes used by the health
// feature.
package checks
