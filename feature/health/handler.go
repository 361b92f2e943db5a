package health

import (
	"errors"

	"order-reconciler/core/logger"
	"order-reconciler/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/health")
	group.Get("/", h.HandleHealth)
	group.Get("/:component", h.HandleComponent)
}

// HandleHealth runs every probe.
// @Summary Health Check
// @Description Probes the warehouse, the history database and its schema, the archive bucket and the cache.
// @Tags health
// @Produce json
// @Success 200 {object} Report "Healthy"
// @Failure 503 {object} Report "Unhealthy"
// @Router /health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	report := h.service.Check(c.UserContext())
	if !report.Healthy() {
		logger.WithRayID(h.service.logger, c).Warn("Unhealthy", zap.String("status", report.Status))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandleComponent runs one probe.
// @Summary Check One Component
// @Description Probes a single component. With fix=true on storage, a missing archive bucket is created first.
// @Tags health
// @Produce json
// @Param component path string true "warehouse, database, storage or cache"
// @Param fix query boolean false "Create the archive bucket when missing"
// @Success 200 {object} ComponentReport "Component Report"
// @Failure 404 {object} map[string]string "Unknown Component"
// @Failure 503 {object} ComponentReport "Unhealthy"
// @Router /health/{component} [get]
func (h *Handler) HandleComponent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("component")

	if name == Storage && utils.ToBool(c.Query("fix")) {
		l.Info("Ensuring archive bucket")
		if err := h.service.FixStorage(c.UserContext()); err != nil {
			if errors.Is(err, ErrDisabled) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
			}
			l.Error("Failed to create bucket", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	report, err := h.service.CheckComponent(c.UserContext(), name)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if report.Status == StatusError {
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}
