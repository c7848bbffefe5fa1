package skills

import "strings"

// CanonicalField is a field name the alias table resolves to. Typed so alias
// definitions can only point at the canonical names declared below.
type CanonicalField string

const (
	FieldWorkflowID   CanonicalField = "workflow_id"
	FieldWorkflowName CanonicalField = "workflow_name"
	FieldExecutionID  CanonicalField = "execution_id"
	FieldAgentID      CanonicalField = "agent_id"
	FieldCallID       CanonicalField = "call_id"
	FieldStatus       CanonicalField = "status"
	FieldDurationMS   CanonicalField = "duration_ms"
)

// fieldAliases maps known synonymous field names across the supported
// platforms (n8n, Make, Vapi, Retell) to their canonical name.
var fieldAliases = map[string]CanonicalField{
	"flow_id":         FieldWorkflowID,
	"scenario_id":     FieldWorkflowID,
	"flow_name":       FieldWorkflowName,
	"scenario_name":   FieldWorkflowName,
	"run_id":          FieldExecutionID,
	"exec_id":         FieldExecutionID,
	"assistant_id":    FieldAgentID,
	"conversation_id": FieldCallID,
	"call_state":      FieldStatus,
	"run_state":       FieldStatus,
	"duration":        FieldDurationMS,
	"elapsed_ms":      FieldDurationMS,
}

// CanonicalFieldName resolves a field name through the alias table.
func CanonicalFieldName(fieldName string) (CanonicalField, bool) {
	canonical, ok := fieldAliases[strings.ToLower(fieldName)]
	return canonical, ok
}
