package history

import (
	"errors"

	"order-reconciler/core/logger"
	"order-reconciler/core/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for saved reports.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the history routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/history")
	group.Post("/", h.HandleSave)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Patch("/:id", h.HandleUpdate)
	group.Delete("/:id", h.HandleDelete)
}

// HandleSave stores a reconciliation result.
// @Summary Save a Report
// @Description Stores platform reports for later review. New reports start as OPEN.
// @Tags history
// @Accept json
// @Produce json
// @Param report body SaveRequest true "Report"
// @Success 201 {object} SavedReport "Saved Report"
// @Failure 400 {object} map[string]interface{} "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/history [post]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	report, err := h.service.Save(c.UserContext(), req)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// HandleList lists saved reports.
// @Summary List Reports
// @Description Lists saved reports, newest first.
// @Tags history
// @Produce json
// @Param date query string false "Target date (YYYY-MM-DD)"
// @Param status query string false "OPEN, REVIEWED or RESOLVED"
// @Param limit query int false "Maximum number of reports"
// @Success 200 {array} SavedReport "Reports"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/history [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	reports, err := h.service.List(c.UserContext(), Filter{
		TargetDate: c.Query("date"),
		Status:     Status(c.Query("status")),
		Limit:      utils.ToInt(c.Query("limit")),
	})
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(reports)
}

// HandleGet returns one saved report.
// @Summary Get a Report
// @Tags history
// @Produce json
// @Param id path string true "Report ID"
// @Success 200 {object} SavedReport "Report"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/history/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	report, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

// HandleUpdate changes the note or status of a report.
// @Summary Update a Report
// @Description Updates the review note and status of a saved report.
// @Tags history
// @Accept json
// @Produce json
// @Param id path string true "Report ID"
// @Param update body UpdateRequest true "Changes"
// @Success 200 {object} SavedReport "Updated Report"
// @Failure 400 {object} map[string]interface{} "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/history/{id} [patch]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	report, err := h.service.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(report)
}

// HandleDelete removes a report.
// @Summary Delete a Report
// @Tags history
// @Param id path string true "Report ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /api/history/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, l, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": ValidationFields(verrs),
		})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	l.Error("History request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// ValidationFields maps each invalid field to the failed rule.
func ValidationFields(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
