package fulfillment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"order-reconciler/core/logger"
	"order-reconciler/core/utils"
	"order-reconciler/feature/fulfillment/rules"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Recorder persists finished runs.
type Recorder interface {
	Record(ctx context.Context, date time.Time, runBy string, reports []PlatformReport) (string, error)
}

// Handler handles HTTP requests for reconciliation runs.
type Handler struct {
	service  *Service
	recorder Recorder
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler. recorder may be nil, which makes
// save=true a no-op.
func NewHandler(service *Service, recorder Recorder, logger *zap.Logger) *Handler {
	return &Handler{service: service, recorder: recorder, logger: logger}
}

// RegisterRoutes registers the reconciliation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api")
	group.Get("/platforms", h.HandlePlatforms)
	group.Get("/reconcile", h.HandleReconcile)
	group.Get("/reconcile/export", h.HandleExport)
	group.Get("/reconcile/archive", h.HandleArchive)
}

// HandleReconcile runs a reconciliation.
// @Summary Reconcile a Day
// @Description Reconciles declared shipments and returns against the end-of-day feed for every configured platform.
// @Tags reconcile
// @Produce json
// @Param date query string true "Target date (YYYY-MM-DD)"
// @Param platform query string false "Platform subset, repeatable or comma separated"
// @Param save query boolean false "Record the run in the history"
// @Param runBy query string false "Operator recorded with a saved run"
// @Success 200 {array} PlatformReport "Platform Reports"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Run In Progress"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/reconcile [get]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	req, err := h.parseRequest(c)
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Reconciliation requested",
		zap.String("date", c.Query("date")),
		zap.Int("platforms", len(req.Platforms)),
	)

	reports, err := h.service.Run(c.UserContext(), req)
	if err != nil {
		return h.fail(c, l, err)
	}

	if utils.ToBool(c.Query("save")) && h.recorder != nil {
		// A failed save does not fail the run.
		id, err := h.recorder.Record(c.UserContext(), req.Date, c.Query("runBy"), reports)
		if err != nil {
			l.Warn("Failed to save run", zap.Error(err))
		} else {
			c.Set("X-Report-ID", id)
		}
	}

	return c.JSON(reports)
}

// HandleExport runs a reconciliation and returns it as a workbook.
// @Summary Export a Day
// @Description Reconciles a day and downloads the result as an XLSX workbook with Summary and Details sheets.
// @Tags reconcile
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string true "Target date (YYYY-MM-DD)"
// @Param platform query string false "Platform subset, repeatable or comma separated"
// @Success 200 {file} file "Workbook"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/reconcile/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	req, err := h.parseRequest(c)
	if err != nil {
		return h.fail(c, l, err)
	}

	reports, err := h.service.Run(c.UserContext(), req)
	if err != nil {
		return h.fail(c, l, err)
	}

	data, err := ExportXLSX(reports)
	if err != nil {
		return h.fail(c, l, err)
	}

	c.Set(fiber.HeaderContentType, ContentTypeXLSX)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reconciliation-%s.xlsx"`, req.Date.Format("2006-01-02")))
	return c.Send(data)
}

// HandleArchive lists the archived runs of a day.
// @Summary List Archived Runs
// @Description Lists the archived JSON and XLSX objects of a day.
// @Tags reconcile
// @Produce json
// @Param date query string true "Target date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{} "Archived objects"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Archive Disabled"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/reconcile/archive [get]
func (h *Handler) HandleArchive(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if h.service.archiver == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Archive is disabled"})
	}

	date, err := ParseDate(c.Query("date"))
	if err != nil {
		return h.fail(c, l, err)
	}

	names, err := h.service.archiver.List(c.UserContext(), date)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(fiber.Map{"date": date.Format("2006-01-02"), "objects": names})
}

// HandlePlatforms lists the configured platforms.
// @Summary List Platforms
// @Description Returns the platforms reconciled by default, in report order.
// @Tags reconcile
// @Produce json
// @Success 200 {object} map[string]interface{} "Platforms"
// @Router /api/platforms [get]
func (h *Handler) HandlePlatforms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"platforms": h.service.Platforms()})
}

func (h *Handler) parseRequest(c *fiber.Ctx) (RunRequest, error) {
	date, err := ParseDate(c.Query("date"))
	if err != nil {
		return RunRequest{}, err
	}

	var values []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("platform") {
		values = append(values, strings.Split(string(raw), ",")...)
	}
	platforms, err := rules.ParseList(values)
	if err != nil {
		return RunRequest{}, err
	}

	return RunRequest{Date: date, Platforms: platforms}, nil
}

// fail maps err to a status code and writes the error body.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case IsClientError(err):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrRunInProgress):
		status = fiber.StatusConflict
	}

	if status == fiber.StatusInternalServerError {
		fields := []zap.Field{zap.Error(err)}
		var qe *QueryError
		if errors.As(err, &qe) {
			fields = append(fields, zap.String("platform", string(qe.Platform)), zap.String("query", string(qe.Query)))
		}
		l.Error("Reconciliation failed", fields...)
	} else {
		l.Warn("Reconciliation rejected", zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
