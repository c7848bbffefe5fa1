package override

import (
	"context"
	"fmt"
	"strings"

	"github.com/gracebotly/flowetic-pipeline/internal/classify"
	"github.com/gracebotly/flowetic-pipeline/internal/logger"
	"github.com/gracebotly/flowetic-pipeline/internal/skills"
	"github.com/gracebotly/flowetic-pipeline/pkg/metrics"
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

// Engine applies a platform's field-semantics rules on top of the heuristic
// baseline. Apply never fails: a broken or missing config degrades the whole
// batch to heuristic passthrough, and a rule set that would blank out every
// field is reverted wholesale.
type Engine struct {
	loader *skills.Loader
	log    logger.Logger
}

func NewEngine(loader *skills.Loader, log logger.Logger) *Engine {
	return &Engine{loader: loader, log: log}
}

// Apply produces the final per-field decisions for one classification batch.
func (e *Engine) Apply(ctx context.Context, fields []classify.BaseClassifiedField, platform string) []DashboardField {
	cfg, err := e.loader.Load(platform)
	if err != nil {
		// Recovered locally: the batch runs heuristic-only.
		e.log.ErrorwCtx(ctx, "Field-semantics config failed to load, falling back to heuristics",
			"platform", platform,
			"error", err,
		)
		cfg = nil
	}

	names := make(map[string]bool, len(fields))
	for _, f := range fields {
		names[strings.ToLower(f.Name)] = true
	}

	result := make([]DashboardField, 0, len(fields))
	for _, base := range fields {
		out := e.applyField(ctx, base, cfg, names)

		outcome := "passthrough"
		if out.SemanticSource == SourceSkillOverride {
			outcome = "overridden"
		}
		metrics.OverrideFieldsTotal.WithLabelValues(outcome).Inc()

		result = append(result, out)
	}

	if blankedOut(fields, result) {
		e.log.WarnwCtx(ctx, "Overrides skipped every field, reverting batch to heuristic classification",
			"platform", platform,
			"fields", len(fields),
		)
		metrics.OverrideSafetyGuardTotal.Inc()
		return heuristicPassthrough(fields)
	}

	return result
}

func (e *Engine) applyField(ctx context.Context, base classify.BaseClassifiedField, cfg *skills.PlatformConfig, names map[string]bool) DashboardField {
	out := DashboardField{
		BaseClassifiedField: base,
		SemanticSource:      SourceHeuristic,
		PolicyActions:       []string{},
	}

	rule := cfg.Rule(base.Name)
	if rule == nil {
		return out
	}

	out.SemanticSource = SourceSkillOverride
	out.DisplayName = rule.DisplayName
	out.References = rule.References
	out.Unit = rule.Unit
	out.FilterValue = rule.FilterValue
	out.AppliedRule = &AppliedRule{
		SemanticType: string(rule.SemanticType),
		Reason:       rule.Reason,
		Version:      cfg.Version,
	}

	sc := &stepContext{
		ctx:       ctx,
		rule:      rule,
		names:     names,
		heuristic: base,
		log:       e.log,
	}

	// Later steps win: each may overwrite what an earlier step decided.
	for _, step := range overrideSteps {
		if step.apply(&out, sc) {
			out.PolicyActions = append(out.PolicyActions, step.name)
		}
	}

	return out
}

// blankedOut reports whether every field ended up skipped even though the
// heuristic baseline had at least one active field. Partial reduction is fine;
// only a total blank-out triggers the revert.
func blankedOut(baseline []classify.BaseClassifiedField, result []DashboardField) bool {
	baselineActive := 0
	for _, f := range baseline {
		if !f.Skip {
			baselineActive++
		}
	}
	if baselineActive == 0 {
		return false
	}

	for _, f := range result {
		if !f.Skip {
			return false
		}
	}
	return true
}

func heuristicPassthrough(fields []classify.BaseClassifiedField) []DashboardField {
	result := make([]DashboardField, 0, len(fields))
	for _, base := range fields {
		result = append(result, DashboardField{
			BaseClassifiedField: base,
			SemanticSource:      SourceHeuristic,
			PolicyActions:       []string{},
		})
	}
	return result
}

type stepContext struct {
	ctx       context.Context
	rule      *skills.FieldRule
	names     map[string]bool
	heuristic classify.BaseClassifiedField
	log       logger.Logger
}

type overrideStep struct {
	name  string
	apply func(*DashboardField, *stepContext) bool
}

// overrideSteps is the precedence chain. Order is load-bearing.
var overrideSteps = []overrideStep{
	{"role", stepRole},
	{"aggregation", stepAggregation},
	{"component_preference", stepComponentPreference},
	{"identifier", stepIdentifier},
	{"surrogate_key", stepSurrogateKey},
	{"constant", stepConstant},
	{"chart_eligibility", stepChartEligibility},
	{"cardinality_guard", stepCardinalityGuard},
}

func stepRole(f *DashboardField, sc *stepContext) bool {
	if sc.rule.Role == "" {
		return false
	}
	f.Role = sc.rule.Role
	return true
}

func stepAggregation(f *DashboardField, sc *stepContext) bool {
	if sc.rule.Aggregation == "" || sc.rule.Aggregation == skills.AggNone {
		return false
	}
	f.Aggregation = sc.rule.Aggregation
	return true
}

func stepComponentPreference(f *DashboardField, sc *stepContext) bool {
	if sc.rule.ComponentPreference == "" {
		return false
	}
	f.Component = models.NormalizeComponentType(sc.rule.ComponentPreference)
	return true
}

// stepIdentifier suppresses a machine identifier when its human-readable
// companion field is present in the batch. Without the companion the field is
// kept as a count-only card; that matches the original behavior, though the
// missing companion is a data-quality smell worth the warning.
func stepIdentifier(f *DashboardField, sc *stepContext) bool {
	if sc.rule.SemanticType != skills.SemanticIdentifier || sc.rule.References == "" {
		return false
	}

	f.Component = models.ComponentMetricCard
	f.Aggregation = skills.AggCount

	if sc.names[strings.ToLower(sc.rule.References)] {
		f.Skip = true
		f.SkipReason = fmt.Sprintf("Suppressed: companion field %q carries the readable value", sc.rule.References)
		return true
	}

	sc.log.WarnwCtx(sc.ctx, "Identifier references a companion field that is not in the batch",
		"field", f.Name,
		"references", sc.rule.References,
	)
	return true
}

func stepSurrogateKey(f *DashboardField, sc *stepContext) bool {
	if sc.rule.SemanticType != skills.SemanticSurrogateKey {
		return false
	}

	switch sc.heuristic.Component {
	case models.ComponentPieChart, models.ComponentBarChart, models.ComponentTimeseriesChart:
		// Informational only: the field stays active.
		f.SkipReason = fmt.Sprintf("Surrogate key downgraded from %s to count-only display", sc.heuristic.Component)
	}

	f.Component = models.ComponentMetricCard
	f.Aggregation = skills.AggCount
	f.Role = skills.RoleHero
	f.Skip = false
	return true
}

func stepConstant(f *DashboardField, sc *stepContext) bool {
	if sc.rule.SemanticType != skills.SemanticConstant {
		return false
	}

	f.Skip = true
	f.SkipReason = sc.rule.Reason
	if f.SkipReason == "" {
		f.SkipReason = "Constant value - no information content"
	}
	return true
}

func stepChartEligibility(f *DashboardField, sc *stepContext) bool {
	if sc.rule.ChartEligible == nil || *sc.rule.ChartEligible {
		return false
	}

	switch f.Component {
	case models.ComponentPieChart, models.ComponentBarChart,
		models.ComponentTimeseriesChart, models.ComponentLineChart:
		f.Component = models.ComponentMetricCard
		return true
	}
	return false
}

// stepCardinalityGuard downgrades an over-sliced pie to a bar chart, never to
// a metric card: bar charts tolerate higher cardinality.
func stepCardinalityGuard(f *DashboardField, sc *stepContext) bool {
	if sc.rule.MaxPieCardinality == 0 || f.Component != models.ComponentPieChart {
		return false
	}
	if f.UniqueValues <= sc.rule.MaxPieCardinality {
		return false
	}

	f.Component = models.ComponentBarChart
	return true
}
