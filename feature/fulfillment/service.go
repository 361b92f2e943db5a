package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"order-reconciler/core/cache"
	"order-reconciler/core/reconcile"
	"order-reconciler/core/warehouse"
	"order-reconciler/feature/fulfillment/plan"
	"order-reconciler/feature/fulfillment/rules"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called after each platform finishes. step counts finished
// platforms, starting at 1.
type ProgressFunc func(platform rules.Platform, step, total int)

// Options configures a Service.
type Options struct {
	// Platforms is the default platform list, in report order.
	Platforms []rules.Platform
	// Scope qualifies the warehouse tables.
	Scope plan.Scope
	// Thresholds tunes classification. Nil means reconcile.DefaultThresholds.
	Thresholds *reconcile.Thresholds
	// Parallel reconciles platforms concurrently. Report order is kept.
	Parallel bool
	// IsolateFailures turns a failed platform into an ERROR report instead of
	// failing the run.
	IsolateFailures bool
	// CacheTTL keeps completed runs in the cache backend. Zero disables it.
	CacheTTL time.Duration
	// LockTTL bounds the per-date run lock.
	LockTTL time.Duration
}

// OptionsFromConfig builds Options from the reconcile and warehouse settings.
func OptionsFromConfig(rc reconcile.Config, wc warehouse.Config) (Options, error) {
	platforms, err := rules.ParseList(rc.Platforms)
	if err != nil {
		return Options{}, err
	}
	th := rc.Thresholds()
	return Options{
		Platforms:       platforms,
		Scope:           plan.Scope{Project: wc.ProjectID, Dataset: wc.DatasetID},
		Thresholds:      &th,
		Parallel:        rc.Parallel,
		IsolateFailures: rc.IsolateFailures,
		CacheTTL:        rc.CacheTTL,
		LockTTL:         rc.LockTTL,
	}, nil
}

// RunRequest describes one reconciliation run.
type RunRequest struct {
	// Date is the reconciled calendar day. Required.
	Date time.Time
	// Platforms restricts the run. Empty means the configured platforms.
	Platforms []rules.Platform
	// Progress is optional. Callers joining an identical in-flight run do
	// not receive progress.
	Progress ProgressFunc
}

// Service runs reconciliations.
type Service struct {
	planner  *plan.Planner
	executor warehouse.Executor
	locker   cache.Locker
	archiver *Archiver
	opts     Options
	runs     *runCache
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a reconciliation service. backend may be nil, which
// disables result caching and cross-instance locking.
func NewService(planner *plan.Planner, executor warehouse.Executor, backend cache.Backend, opts Options, logger *zap.Logger) *Service {
	if opts.Thresholds == nil {
		th := reconcile.DefaultThresholds()
		opts.Thresholds = &th
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 5 * time.Minute
	}

	s := &Service{
		planner:  planner,
		executor: executor,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
	var store cache.Store
	if backend != nil {
		store = backend
		s.locker = backend
	}
	s.runs = newRunCache(store, opts.CacheTTL, logger)
	return s
}

// WithClock replaces the clock used for processedAt stamps.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithArchiver archives every fresh run. A nil archiver disables archiving.
func (s *Service) WithArchiver(a *Archiver) *Service {
	s.archiver = a
	return s
}

// Platforms returns the default platform list.
func (s *Service) Platforms() []rules.Platform {
	return s.opts.Platforms
}

// Run reconciles every requested platform for req.Date and returns one report
// per platform in request order.
func (s *Service) Run(ctx context.Context, req RunRequest) ([]PlatformReport, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date", ErrMissingParameter)
	}

	platforms := req.Platforms
	if len(platforms) == 0 {
		platforms = s.opts.Platforms
	}
	if len(platforms) == 0 {
		return nil, fmt.Errorf("%w: platforms", ErrMissingParameter)
	}

	key := runKey(req.Date, platforms)
	return s.runs.getOrRun(ctx, key, func(ctx context.Context) ([]PlatformReport, bool, error) {
		release, err := s.lock(ctx, key)
		if err != nil {
			return nil, false, err
		}
		defer release()

		reports, err := s.execute(ctx, req.Date, platforms, req.Progress)
		if err != nil {
			return nil, false, err
		}

		complete := true
		for _, r := range reports {
			if r.Failed() {
				complete = false
			}
		}
		if complete {
			s.archive(ctx, req.Date, reports)
		}
		return reports, complete, nil
	})
}

// lock takes the run lock when a locker is configured.
func (s *Service) lock(ctx context.Context, key string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	release, err := s.locker.Obtain(ctx, key, s.opts.LockTTL)
	if errors.Is(err, cache.ErrNotObtained) {
		return nil, ErrRunInProgress
	}
	if err != nil {
		// A broken lock backend must not stop reconciliation.
		s.logger.Warn("Run lock unavailable, continuing without it", zap.Error(err))
		return func() {}, nil
	}

	return func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("Failed to release run lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

func (s *Service) archive(ctx context.Context, date time.Time, reports []PlatformReport) {
	if s.archiver == nil {
		return
	}
	names, err := s.archiver.Archive(ctx, date, reports, s.now())
	if err != nil {
		s.logger.Warn("Failed to archive run", zap.Error(err))
		return
	}
	s.logger.Info("Run archived", zap.Strings("objects", names))
}

func (s *Service) execute(ctx context.Context, date time.Time, platforms []rules.Platform, progress ProgressFunc) ([]PlatformReport, error) {
	reports := make([]PlatformReport, len(platforms))
	total := len(platforms)
	var done atomic.Int32

	one := func(ctx context.Context, i int) error {
		p := platforms[i]
		report, err := s.runPlatform(ctx, p, date)
		if err != nil {
			if !s.opts.IsolateFailures || errors.Is(err, rules.ErrUnknownPlatform) {
				return err
			}
			s.logger.Error("Platform failed, continuing", zap.String("platform", string(p)), zap.Error(err))
			report = s.failedReport(p, err)
		}
		reports[i] = report
		if progress != nil {
			progress(p, int(done.Add(1)), total)
		}
		return nil
	}

	if !s.opts.Parallel {
		for i := range platforms {
			if err := one(ctx, i); err != nil {
				return nil, err
			}
		}
		return reports, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range platforms {
		g.Go(func() error { return one(gctx, i) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// runPlatform runs the four queries of one platform concurrently and compares
// the shipment and return pairs. The end-of-day side is the baseline.
func (s *Service) runPlatform(ctx context.Context, p rules.Platform, date time.Time) (PlatformReport, error) {
	set, err := s.planner.Plan(p, date)
	if err != nil {
		return PlatformReport{}, err
	}

	l := s.logger.With(zap.String("platform", string(p)), zap.String("date", date.Format(plan.DateLayout)))
	start := time.Now()

	queries := set.All()
	tables := make([]reconcile.Table, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			rows, err := s.executor.Query(gctx, q.SQL(s.opts.Scope), q.Params)
			if err != nil {
				return &QueryError{Platform: p, Query: q.Kind, Err: err}
			}
			tables[i] = toTable(rows)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return PlatformReport{}, err
	}

	shipDeclared, shipEOD, retDeclared, retEOD := tables[0], tables[1], tables[2], tables[3]
	report := PlatformReport{
		Platform:    p,
		Shipment:    reconcile.Compare(shipEOD, shipDeclared, *s.opts.Thresholds),
		Return:      reconcile.Compare(retEOD, retDeclared, *s.opts.Thresholds),
		ProcessedAt: s.now().Format(time.RFC3339),
	}

	l.Info("Platform reconciled",
		zap.String("shipment", string(report.Shipment.Status)),
		zap.Int("shipment_unmatched", report.Shipment.UnmatchedCount),
		zap.Int("shipment_diffs", report.Shipment.DiffCount),
		zap.String("return", string(report.Return.Status)),
		zap.Int("return_unmatched", report.Return.UnmatchedCount),
		zap.Int("return_diffs", report.Return.DiffCount),
		zap.Duration("duration", time.Since(start)),
	)
	return report, nil
}

func (s *Service) failedReport(p rules.Platform, err error) PlatformReport {
	return PlatformReport{
		Platform:    p,
		Shipment:    reconcile.Failed(),
		Return:      reconcile.Failed(),
		ProcessedAt: s.now().Format(time.RFC3339),
		Error:       err.Error(),
	}
}
