package health

import (
	"context"
	"errors"
	"sync"
	"time"

	"order-reconciler/core/cache"
	"order-reconciler/core/database"
	"order-reconciler/core/storage"
	"order-reconciler/core/warehouse"
	"order-reconciler/feature/health/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Component names.
const (
	Warehouse = "warehouse"
	Database  = "database"
	Storage   = "storage"
	Cache     = "cache"
)

// Component statuses.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusDisabled = "disabled"
)

var (
	// ErrUnknownComponent is returned for a component name that is not checked.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrDisabled is returned when acting on a component that is not configured.
	ErrDisabled = errors.New("component is disabled")
)

// ComponentReport is the result of one probe.
type ComponentReport struct {
	Status   string               `json:"status"`
	Error    string               `json:"error,omitempty"`
	Schema   *checks.SchemaReport `json:"schema,omitempty"`
	Duration int64                `json:"duration_ms"`
}

// Report is the result of a full health check.
type Report struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentReport `json:"components"`
}

// Healthy reports whether no component failed.
func (r Report) Healthy() bool {
	return r.Status == StatusOK
}

// Deps are the backends probed by the service. Nil members are reported as
// disabled.
type Deps struct {
	Warehouse warehouse.Executor
	DB        *gorm.DB
	// Model is the gorm model whose table the database check inspects.
	Model   interface{}
	Storage storage.Client
	Bucket  string
	Cache   cache.Store
}

// Service runs health checks.
type Service struct {
	deps   Deps
	logger *zap.Logger
}

// NewService creates a health service.
func NewService(deps Deps, logger *zap.Logger) *Service {
	return &Service{deps: deps, logger: logger}
}

// Components returns the names of every probe in report order.
func (s *Service) Components() []string {
	return []string{Warehouse, Database, Storage, Cache}
}

// Check runs every probe concurrently.
func (s *Service) Check(ctx context.Context) Report {
	names := s.Components()
	results := make([]ComponentReport, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = s.CheckComponent(ctx, name)
		}()
	}
	wg.Wait()

	report := Report{Status: StatusOK, Components: make(map[string]ComponentReport, len(names))}
	for i, name := range names {
		report.Components[name] = results[i]
		if results[i].Status == StatusError {
			report.Status = StatusError
		}
	}
	return report
}

// CheckComponent runs one probe.
func (s *Service) CheckComponent(ctx context.Context, name string) (ComponentReport, error) {
	start := time.Now()
	var (
		report ComponentReport
		err    error
	)

	switch name {
	case Warehouse:
		if s.deps.Warehouse == nil {
			return ComponentReport{Status: StatusDisabled}, nil
		}
		err = s.deps.Warehouse.Ping(ctx)
	case Database:
		if s.deps.DB == nil {
			return ComponentReport{Status: StatusDisabled}, nil
		}
		report.Schema, err = s.checkDatabase(ctx)
	case Storage:
		if s.deps.Storage == nil {
			return ComponentReport{Status: StatusDisabled}, nil
		}
		err = checks.CheckBucket(ctx, s.deps.Storage, s.deps.Bucket)
	case Cache:
		if s.deps.Cache == nil {
			return ComponentReport{Status: StatusDisabled}, nil
		}
		err = s.deps.Cache.Ping(ctx)
	default:
		return ComponentReport{}, ErrUnknownComponent
	}

	report.Duration = time.Since(start).Milliseconds()
	report.Status = StatusOK
	if err != nil {
		report.Status = StatusError
		report.Error = err.Error()
		s.logger.Warn("Health check failed", zap.String("component", name), zap.Error(err))
	}
	return report, nil
}

func (s *Service) checkDatabase(ctx context.Context) (*checks.SchemaReport, error) {
	if err := database.Ping(ctx, s.deps.DB); err != nil {
		return nil, err
	}
	if s.deps.Model == nil {
		return nil, nil
	}

	schema, err := checks.CheckSchema(s.deps.DB.WithContext(ctx), s.deps.Model)
	if err != nil {
		return nil, err
	}
	if !schema.Matched {
		return schema, errors.New("schema mismatch on table " + schema.Table)
	}
	return schema, nil
}

// FixStorage creates the archive bucket when it is missing.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.deps.Storage == nil {
		return ErrDisabled
	}
	return storage.EnsureBucket(ctx, s.deps.Storage, s.deps.Bucket)
}
