package fulfillment

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"order-reconciler/core/cache"
	"order-reconciler/feature/fulfillment/rules"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunCache_JoinerOutlivesCancelledLeader(t *testing.T) {
	c := newRunCache(nil, 0, zap.NewNop())

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	var builds int32
	build := func(ctx context.Context) ([]PlatformReport, bool, error) {
		atomic.AddInt32(&builds, 1)
		once.Do(func() { close(started) })
		select {
		case <-release:
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
		return []PlatformReport{{Platform: rules.Yahoo}}, true, nil
	}

	leaderCtx, cancel := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := c.getOrRun(leaderCtx, "run:2024-05-01:YAHOO", build)
		leaderErr <- err
	}()
	<-started

	type outcome struct {
		reports []PlatformReport
		err     error
	}
	joined := make(chan outcome, 1)
	go func() {
		reports, err := c.getOrRun(context.Background(), "run:2024-05-01:YAHOO", build)
		joined <- outcome{reports, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-leaderErr, context.Canceled)

	close(release)
	got := <-joined
	require.NoError(t, got.err)
	require.Len(t, got.reports, 1)
	assert.Equal(t, rules.Yahoo, got.reports[0].Platform)
	assert.Equal(t, int32(1), atomic.LoadInt32(&builds))
}

func TestRunCache_StoresCompleteRunsOnly(t *testing.T) {
	c := newRunCache(cache.NewMemory("test:"), time.Minute, zap.NewNop())
	ctx := context.Background()

	partial := func(context.Context) ([]PlatformReport, bool, error) {
		return []PlatformReport{{Platform: rules.Momo, Error: "boom"}}, false, nil
	}
	_, err := c.getOrRun(ctx, "partial", partial)
	require.NoError(t, err)
	_, ok := c.get(ctx, "partial")
	assert.False(t, ok)

	complete := func(context.Context) ([]PlatformReport, bool, error) {
		return []PlatformReport{{Platform: rules.Momo}}, true, nil
	}
	_, err = c.getOrRun(ctx, "complete", complete)
	require.NoError(t, err)
	cached, ok := c.get(ctx, "complete")
	require.True(t, ok)
	assert.Equal(t, rules.Momo, cached[0].Platform)
}
