// Package cache provides the result cache and run lock shared by
// reconciliation runs.
//
// Two backends implement Backend: Redis (go-redis with bsm/redislock) for
// multi-instance deployments, and Memory (patrickmn/go-cache) when no Redis
// address is configured.
//
//	backend := cache.New(cfg.Cache)
//	release, err := backend.Obtain(ctx, "run:2024-05-01", time.Minute)
//	if errors.Is(err, cache.ErrNotObtained) {
//	    // another run holds the date
//	}
package cache
