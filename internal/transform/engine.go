package transform

import (
	"context"
	"fmt"
	"time"

	"github.com/gracebotly/flowetic-pipeline/internal/constants"
	"github.com/gracebotly/flowetic-pipeline/internal/logger"
	"github.com/gracebotly/flowetic-pipeline/internal/skills"
	celeval "github.com/gracebotly/flowetic-pipeline/pkg/cel"
	"github.com/gracebotly/flowetic-pipeline/pkg/metrics"
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

// Engine computes the data payload each visualization component needs from a
// spec and a batch of events. Enrich is pure over its inputs: the same spec
// and events always produce the same output, and the input spec is never
// mutated.
type Engine struct {
	log           logger.Logger
	evaluator     *celeval.Evaluator
	tableRowLimit int
}

func NewEngine(log logger.Logger) (*Engine, error) {
	evaluator, err := celeval.NewEvaluator()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL evaluator: %w", err)
	}

	return &Engine{
		log:           log,
		evaluator:     evaluator,
		tableRowLimit: constants.DefaultTableRowLimit,
	}, nil
}

// SetTableRowLimit overrides the default DataTable row cap.
func (e *Engine) SetTableRowLimit(limit int) {
	if limit > 0 {
		e.tableRowLimit = limit
	}
}

// Enrich returns a new spec whose components carry computed data/value props.
func (e *Engine) Enrich(ctx context.Context, spec models.Spec, events []models.Event) models.Spec {
	start := time.Now()

	flat := make([]models.FlatEvent, 0, len(events))
	for _, ev := range events {
		flat = append(flat, Flatten(ev))
	}

	out := models.Spec{Components: make([]models.ComponentSpec, 0, len(spec.Components))}
	for _, comp := range spec.Components {
		out.Components = append(out.Components, e.enrichComponent(ctx, comp, flat))
	}

	metrics.ObserveEnrichmentDuration(time.Since(start), "ok")
	return out
}

func (e *Engine) enrichComponent(ctx context.Context, comp models.ComponentSpec, events []models.FlatEvent) models.ComponentSpec {
	c := comp.Clone()
	c.Type = models.NormalizeComponentType(c.Type)
	metrics.EnrichmentComponentsTotal.WithLabelValues(c.Type).Inc()

	if hasPrecomputedData(c.Props) {
		return c
	}

	events = e.filterEvents(ctx, c, events)

	switch c.Type {
	case models.ComponentMetricCard:
		c.Props["value"] = e.metricValue(c.Props, events)

	case models.ComponentLineChart, models.ComponentTimeseriesChart:
		xField, _ := c.Props["xField"].(string)
		yField, _ := c.Props["yField"].(string)
		interval, _ := c.Props["interval"].(string)
		aggregation, _ := c.Props["aggregation"].(string)
		c.Props["data"] = BuildTimeseries(events, xField, yField, interval, aggregation)

	case models.ComponentBarChart, models.ComponentPieChart, models.ComponentDonutChart:
		field, _ := c.Props["field"].(string)
		if field == "" {
			c.Props["data"] = BuildFallbackGroups(events)
			break
		}
		limit := 0
		if c.Type == models.ComponentPieChart || c.Type == models.ComponentDonutChart {
			limit = constants.PieCategoryLimit
		}
		c.Props["data"] = BuildGroups(events, field, limit)

	case models.ComponentDataTable:
		table := BuildTable(events, declaredColumns(c.Props), e.tableRowLimit)
		c.Props["columns"] = table.Columns
		c.Props["data"] = table.Rows
	}

	return c
}

// filterEvents applies an optional CEL filter prop. Broken expressions are
// logged and ignored; an evaluation error keeps the event (fallback: allow).
func (e *Engine) filterEvents(ctx context.Context, c models.ComponentSpec, events []models.FlatEvent) []models.FlatEvent {
	expression, _ := c.Props["filter"].(string)
	if expression == "" {
		return events
	}

	program, err := e.evaluator.CompileFilter(expression)
	if err != nil {
		e.log.WarnwCtx(ctx, "Component filter failed to compile, ignoring it",
			"component_id", c.ID,
			"component_type", c.Type,
			"error", err,
		)
		return events
	}

	filtered := make([]models.FlatEvent, 0, len(events))
	for _, ev := range events {
		match, err := program.Eval(ctx, ev)
		if err != nil {
			filtered = append(filtered, ev)
			continue
		}
		if match {
			filtered = append(filtered, ev)
		}
	}
	return filtered
}

func (e *Engine) metricValue(props map[string]interface{}, events []models.FlatEvent) string {
	valueField, _ := props["valueField"].(string)
	aggregation, _ := props["aggregation"].(string)
	unit, _ := props["unit"].(string)

	if valueField == "" {
		return FormatMetricValue(FallbackTotal(events), skills.AggCount, "")
	}

	var value float64
	switch aggregation {
	case skills.AggSum:
		value = Sum(events, valueField)
	case skills.AggAvg:
		value = Avg(events, valueField)
	case skills.AggPercentage:
		value = Percentage(events, valueField, conditionMatch(props))
	default:
		aggregation = skills.AggCount
		value = Count(events, valueField)
	}

	return FormatMetricValue(value, aggregation, unit)
}

// conditionMatch extracts condition.equals for percentage aggregations,
// defaulting to "success".
func conditionMatch(props map[string]interface{}) string {
	if condition, ok := props["condition"].(map[string]interface{}); ok {
		if equals, found := condition["equals"].(string); found && equals != "" {
			return equals
		}
	}
	return "success"
}

// hasPrecomputedData reports whether the component already carries a usable
// payload, in which case enrichment leaves it alone.
func hasPrecomputedData(props map[string]interface{}) bool {
	if data, ok := props["data"]; ok {
		switch d := data.(type) {
		case []interface{}:
			if len(d) > 0 {
				return true
			}
		case nil:
		default:
			return true
		}
	}

	if value, ok := props["value"]; ok && !models.IsEmpty(value) {
		if s, isString := value.(string); !isString || s != constants.MetricPlaceholder {
			return true
		}
	}

	return false
}
