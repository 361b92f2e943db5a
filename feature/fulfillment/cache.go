package fulfillment

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"order-reconciler/core/cache"
	"order-reconciler/feature/fulfillment/rules"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// runCache collapses identical concurrent runs and, when a TTL is set, keeps
// completed runs in a shared store.
type runCache struct {
	store  cache.Store
	ttl    time.Duration
	sf     singleflight.Group
	logger *zap.Logger
}

func newRunCache(store cache.Store, ttl time.Duration, logger *zap.Logger) *runCache {
	return &runCache{store: store, ttl: ttl, logger: logger}
}

// runKey identifies a run by date and platform list.
func runKey(date time.Time, platforms []rules.Platform) string {
	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	return "run:" + date.Format("2006-01-02") + ":" + strings.Join(names, ",")
}

func (c *runCache) enabled() bool {
	return c.store != nil && c.ttl > 0
}

// get returns a cached run. Store failures count as a miss.
func (c *runCache) get(ctx context.Context, key string) ([]PlatformReport, bool) {
	if !c.enabled() {
		return nil, false
	}
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Run cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var reports []PlatformReport
	if err := json.Unmarshal(data, &reports); err != nil {
		c.logger.Warn("Discarding unreadable cached run", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return reports, true
}

func (c *runCache) put(ctx context.Context, key string, reports []PlatformReport) {
	if !c.enabled() {
		return
	}
	data, err := json.Marshal(reports)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Run cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// getOrRun returns the cached run for key or builds it. Concurrent callers
// with the same key share one build, which is not cancelled when any single
// caller gives up.
func (c *runCache) getOrRun(ctx context.Context, key string, build func(context.Context) ([]PlatformReport, bool, error)) ([]PlatformReport, error) {
	// Fast path
	if reports, ok := c.get(ctx, key); ok {
		return reports, nil
	}

	ch := c.sf.DoChan(key, func() (interface{}, error) {
		// The flight outlives the caller that started it.
		fctx := context.WithoutCancel(ctx)

		// Double-check after winning the flight
		if reports, ok := c.get(fctx, key); ok {
			return reports, nil
		}

		reports, complete, err := build(fctx)
		if err != nil {
			return nil, err
		}
		if complete {
			c.put(fctx, key, reports)
		}
		return reports, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		c.logger.Debug("Joined in-flight run", zap.String("key", key))
	}

	return cloneReports(res.Val.([]PlatformReport)), nil
}

// cloneReports copies the slice so callers sharing a flight never alias.
func cloneReports(in []PlatformReport) []PlatformReport {
	out := make([]PlatformReport, len(in))
	copy(out, in)
	return out
}
