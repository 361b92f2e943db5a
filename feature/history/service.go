package history

import (
	"context"
	"time"

	"order-reconciler/feature/fulfillment"
	"order-reconciler/feature/fulfillment/plan"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SaveRequest is the body of a manual save.
type SaveRequest struct {
	TargetDate string                       `json:"targetDate" validate:"required,datetime=2006-01-02"`
	RunBy      string                       `json:"runBy" validate:"max=100"`
	Results    []fulfillment.PlatformReport `json:"results" validate:"required,min=1"`
	Note       string                       `json:"note" validate:"max=2000"`
}

// UpdateRequest changes the review fields of a report. Nil fields are kept.
type UpdateRequest struct {
	Note   *string `json:"note" validate:"omitempty,max=2000"`
	Status *Status `json:"status" validate:"omitempty,oneof=OPEN REVIEWED RESOLVED"`
}

// Service manages saved reports.
type Service struct {
	repo     *Repository
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewService creates a history service.
func NewService(repo *Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Save validates req and stores it as an OPEN report.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*SavedReport, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	report := &SavedReport{
		ID:         uuid.NewString(),
		TargetDate: req.TargetDate,
		RunBy:      req.RunBy,
		RunAt:      s.now().UTC(),
		Overall:    fulfillment.Overall(req.Results),
		Results:    req.Results,
		Note:       req.Note,
		Status:     StatusOpen,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("Report saved",
		zap.String("id", report.ID),
		zap.String("date", report.TargetDate),
		zap.String("overall", string(report.Overall)),
	)
	return report, nil
}

// Record saves a finished run. It satisfies fulfillment.Recorder.
func (s *Service) Record(ctx context.Context, date time.Time, runBy string, reports []fulfillment.PlatformReport) (string, error) {
	report, err := s.Save(ctx, SaveRequest{
		TargetDate: date.Format(plan.DateLayout),
		RunBy:      runBy,
		Results:    reports,
	})
	if err != nil {
		return "", err
	}
	return report.ID, nil
}

// List returns saved reports newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]SavedReport, error) {
	return s.repo.List(ctx, f)
}

// Get returns one saved report.
func (s *Service) Get(ctx context.Context, id string) (*SavedReport, error) {
	return s.repo.Get(ctx, id)
}

// Update applies req to report id and returns the updated report.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*SavedReport, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Note != nil {
		fields["note"] = *req.Note
	}
	if req.Status != nil {
		fields["status"] = string(*req.Status)
	}
	if len(fields) > 0 {
		if err := s.repo.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a saved report.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
