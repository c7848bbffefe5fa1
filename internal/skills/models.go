package skills

import "strings"

// SemanticType is the meaning-role a field-semantics rule assigns to a field,
// independent of its storage type.
type SemanticType string

const (
	SemanticIdentifier    SemanticType = "identifier"
	SemanticSurrogateKey  SemanticType = "surrogate_key"
	SemanticDimension     SemanticType = "dimension"
	SemanticMeasure       SemanticType = "measure"
	SemanticTimeDimension SemanticType = "time_dimension"
	SemanticConstant      SemanticType = "constant"
	SemanticDetail        SemanticType = "detail"
)

var validSemanticTypes = map[SemanticType]bool{
	SemanticIdentifier:    true,
	SemanticSurrogateKey:  true,
	SemanticDimension:     true,
	SemanticMeasure:       true,
	SemanticTimeDimension: true,
	SemanticConstant:      true,
	SemanticDetail:        true,
}

const (
	RoleHero       = "hero"
	RoleSupporting = "supporting"
	RoleTrend      = "trend"
	RoleBreakdown  = "breakdown"
	RoleDetail     = "detail"
)

var validRoles = map[string]bool{
	RoleHero:       true,
	RoleSupporting: true,
	RoleTrend:      true,
	RoleBreakdown:  true,
	RoleDetail:     true,
}

const (
	AggCount      = "count"
	AggSum        = "sum"
	AggAvg        = "avg"
	AggPercentage = "percentage"
	AggNone       = "none"
)

var validAggregations = map[string]bool{
	AggCount:      true,
	AggSum:        true,
	AggAvg:        true,
	AggPercentage: true,
	AggNone:       true,
}

// FieldRule is one declarative per-field override from a platform's
// field-semantics file. Zero values mean "not specified": the override engine
// only applies the knobs a rule actually sets.
type FieldRule struct {
	SemanticType        SemanticType `json:"semantic_type"`
	References          string       `json:"references,omitempty"`
	ChartEligible       *bool        `json:"chart_eligible,omitempty"`
	Aggregation         string       `json:"aggregation,omitempty"`
	Role                string       `json:"role,omitempty"`
	DisplayName         string       `json:"display_name,omitempty"`
	ComponentPreference string       `json:"component_preference,omitempty"`
	MaxPieCardinality   int          `json:"max_pie_cardinality,omitempty"`
	Unit                string       `json:"unit,omitempty"`
	FilterValue         string       `json:"filter_value,omitempty"`
	Reason              string       `json:"reason,omitempty"`
}

// PlatformConfig is one platform's parsed and validated field-semantics file.
// Immutable after load.
type PlatformConfig struct {
	Version    int                   `json:"version"`
	EntityType string                `json:"entity_type,omitempty"`
	Platform   string                `json:"platform"`
	FieldRules map[string]*FieldRule `json:"field_rules"` // keyed by lowercased field name
}

// Rule resolves the rule for a field name: exact lowercase match first, then
// exact original-case match, then the alias table. Returns nil when no rule
// applies.
func (c *PlatformConfig) Rule(fieldName string) *FieldRule {
	if c == nil || len(c.FieldRules) == 0 {
		return nil
	}

	if rule, ok := c.FieldRules[strings.ToLower(fieldName)]; ok {
		return rule
	}

	if rule, ok := c.FieldRules[fieldName]; ok {
		return rule
	}

	if canonical, ok := CanonicalFieldName(fieldName); ok {
		if rule, found := c.FieldRules[string(canonical)]; found {
			return rule
		}
	}

	return nil
}
