package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gracebotly/flowetic-pipeline/internal/classify"
	"github.com/gracebotly/flowetic-pipeline/internal/logger"
	"github.com/gracebotly/flowetic-pipeline/internal/override"
	"github.com/gracebotly/flowetic-pipeline/internal/sanitize"
	"github.com/gracebotly/flowetic-pipeline/internal/skills"
	"github.com/gracebotly/flowetic-pipeline/internal/transform"
	"github.com/gracebotly/flowetic-pipeline/pkg/errors"
	"github.com/gracebotly/flowetic-pipeline/pkg/logging"
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

type BaseHandler struct {
	Logger logger.Logger
}

func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	h.Logger.ErrorwCtx(c.Request.Context(), "Request error", "error", err, "path", c.Request.URL.Path)

	status := errors.ToHTTPStatus(err)
	response := errors.ToErrorResponse(err)

	c.JSON(status, response)
}

// Handler exposes the classification and dashboard pipeline over HTTP.
type Handler struct {
	BaseHandler

	loader    *skills.Loader
	overrides *override.Engine
	enricher  *transform.Engine
	sanitizer *sanitize.Sanitizer
	maxEvents int
}

func NewHandler(loader *skills.Loader, overrides *override.Engine, enricher *transform.Engine, sanitizer *sanitize.Sanitizer, maxEvents int, log logger.Logger) *Handler {
	return &Handler{
		BaseHandler: BaseHandler{Logger: log},
		loader:      loader,
		overrides:   overrides,
		enricher:    enricher,
		sanitizer:   sanitizer,
		maxEvents:   maxEvents,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		dashboards := v1.Group("/dashboards")
		{
			dashboards.POST("/classify", h.Classify)
			dashboards.POST("/build", h.BuildDashboard)
			dashboards.POST("/enrich", h.Enrich)
		}

		skillsGroup := v1.Group("/skills")
		{
			skillsGroup.GET("/:platform", h.GetSkillConfig)
			skillsGroup.DELETE("/cache", h.InvalidateSkillCache)
		}
	}
}

// Classify flattens and classifies a batch of events, applying the
// platform's field-semantics overrides to the heuristic baseline.
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, errors.ErrValidation.WithCause(err))
		return
	}

	ctx := logging.WithPlatform(c.Request.Context(), req.Platform)
	fields := h.classifyEvents(ctx, req.Platform, req.Events)

	c.JSON(http.StatusOK, ClassifyResponse{Platform: req.Platform, Fields: fields})
}

// BuildDashboard runs the full pipeline: classify, apply overrides, select
// components, sanitize their props and fill them with aggregated data.
func (h *Handler) BuildDashboard(c *gin.Context) {
	var req DashboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, errors.ErrValidation.WithCause(err))
		return
	}

	ctx := logging.WithPlatform(c.Request.Context(), req.Platform)
	events := h.capEvents(ctx, req.Events)
	fields := h.classifyEvents(ctx, req.Platform, events)

	spec := models.Spec{Components: override.BuildComponents(fields)}
	h.sanitizeSpec(&spec)
	spec = h.enricher.Enrich(ctx, spec, events)

	c.JSON(http.StatusOK, DashboardResponse{Platform: req.Platform, Fields: fields, Spec: spec})
}

// Enrich fills an existing dashboard spec with data computed from the
// submitted events. Props are sanitized before any aggregation runs.
func (h *Handler) Enrich(c *gin.Context) {
	var req EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleError(c, errors.ErrValidation.WithCause(err))
		return
	}

	if err := models.ValidateSpec(&req.Spec); err != nil {
		h.HandleError(c, errors.ErrValidation.WithCause(err))
		return
	}

	ctx := c.Request.Context()
	events := h.capEvents(ctx, req.Events)

	h.sanitizeSpec(&req.Spec)
	spec := h.enricher.Enrich(ctx, req.Spec, events)

	c.JSON(http.StatusOK, EnrichResponse{Spec: spec})
}

// GetSkillConfig returns the parsed field-semantics config for a platform.
func (h *Handler) GetSkillConfig(c *gin.Context) {
	platform := c.Param("platform")

	cfg, err := h.loader.Load(platform)
	if err != nil {
		h.HandleError(c, errors.Wrap(err, errors.ErrBadConfig.WithDetail("platform", platform)))
		return
	}
	if cfg == nil {
		h.HandleError(c, errors.ErrNotFound.WithDetail("platform", platform))
		return
	}

	c.JSON(http.StatusOK, cfg)
}

// InvalidateSkillCache drops cached skill configs. With a platform query
// parameter only that platform is dropped, otherwise the whole cache.
func (h *Handler) InvalidateSkillCache(c *gin.Context) {
	platform := c.Query("platform")
	if platform == "" {
		h.loader.Invalidate()
		c.JSON(http.StatusOK, InvalidateResponse{Invalidated: "all"})
		return
	}

	h.loader.Invalidate(platform)
	c.JSON(http.StatusOK, InvalidateResponse{Invalidated: platform})
}

func (h *Handler) classifyEvents(ctx context.Context, platform string, events []models.Event) []override.DashboardField {
	flat := make([]models.FlatEvent, 0, len(events))
	for _, ev := range events {
		flat = append(flat, transform.Flatten(ev))
	}

	baseline := classify.Classify(flat)
	return h.overrides.Apply(ctx, baseline, platform)
}

func (h *Handler) capEvents(ctx context.Context, events []models.Event) []models.Event {
	if h.maxEvents <= 0 || len(events) <= h.maxEvents {
		return events
	}
	h.Logger.WarnwCtx(ctx, "Event batch truncated", "received", len(events), "limit", h.maxEvents)
	return events[:h.maxEvents]
}

func (h *Handler) sanitizeSpec(spec *models.Spec) {
	for i := range spec.Components {
		spec.Components[i].Props = h.sanitizer.Sanitize(spec.Components[i].Type, spec.Components[i].Props)
	}
}
