package override

import (
	"github.com/gracebotly/flowetic-pipeline/internal/classify"
)

const (
	SourceHeuristic     = "heuristic"
	SourceSkillOverride = "skill_override"
)

// DashboardField is the final per-field decision: the heuristic baseline plus
// whatever the platform's field-semantics rules changed. Skipped fields are
// excluded from rendering but stay in the batch for audit.
type DashboardField struct {
	classify.BaseClassifiedField

	// SemanticSource records which path decided this field: "heuristic" when
	// no rule matched (or the safety guard reverted the batch),
	// "skill_override" when a rule was applied.
	SemanticSource string       `json:"semanticSource"`
	References     string       `json:"references,omitempty"`
	DisplayName    string       `json:"displayName,omitempty"`
	Unit           string       `json:"unit,omitempty"`
	FilterValue    string       `json:"filterValue,omitempty"`
	AppliedRule    *AppliedRule `json:"appliedRule,omitempty"`
	PolicyActions  []string     `json:"policyActions"`
}

// AppliedRule is the audit record of the rule that overrode a field.
type AppliedRule struct {
	SemanticType string `json:"semantic_type"`
	Reason       string `json:"reason,omitempty"`
	Version      int    `json:"version"`
}
