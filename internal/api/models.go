package api

import (
	"github.com/gracebotly/flowetic-pipeline/internal/override"
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

// ClassifyRequest carries a batch of raw events to classify for one platform.
type ClassifyRequest struct {
	Platform string         `json:"platform" binding:"required"`
	Events   []models.Event `json:"events" binding:"required"`
}

// ClassifyResponse returns the per-field dashboard classification after
// platform overrides have been applied.
type ClassifyResponse struct {
	Platform string                    `json:"platform"`
	Fields   []override.DashboardField `json:"fields"`
}

// DashboardRequest asks for a complete dashboard built from raw events.
type DashboardRequest struct {
	Platform string         `json:"platform" binding:"required"`
	Events   []models.Event `json:"events" binding:"required"`
}

// DashboardResponse is the sanitized, data-filled dashboard spec plus the
// classification it was derived from.
type DashboardResponse struct {
	Platform string                    `json:"platform"`
	Fields   []override.DashboardField `json:"fields"`
	Spec     models.Spec               `json:"spec"`
}

// EnrichRequest carries an existing dashboard spec and the events to fill
// its components with.
type EnrichRequest struct {
	Spec   models.Spec    `json:"spec" binding:"required"`
	Events []models.Event `json:"events" binding:"required"`
}

// EnrichResponse returns the enriched spec.
type EnrichResponse struct {
	Spec models.Spec `json:"spec"`
}

// InvalidateResponse acknowledges a cache invalidation.
type InvalidateResponse struct {
	Invalidated string `json:"invalidated"`
}
