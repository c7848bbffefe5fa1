package models

// Event is one row of semi-structured automation-platform data as delivered by
// the per-platform ingestion jobs. Events are untrusted input: any field may be
// absent, null, or carry an unexpected type. Nothing in the pipeline persists
// them.
type Event struct {
	ID         string                 `json:"id"`
	Type       string                 `json:"type"`
	Name       string                 `json:"name"`
	Value      interface{}            `json:"value"`
	Unit       string                 `json:"unit"`
	Text       string                 `json:"text"`
	DurationMS interface{}            `json:"duration_ms,omitempty"`
	State      map[string]interface{} `json:"state"`  // nested platform payload
	Labels     map[string]interface{} `json:"labels"` // flat user/tenant labels
	Timestamp  string                 `json:"timestamp"`
	CreatedAt  string                 `json:"created_at"`
}

// FlatEvent is an Event after normalization: top-level fields plus every key of
// State and Labels (nested objects expanded to dot notation) merged onto one
// level. See transform.Flatten for the merge precedence.
type FlatEvent map[string]interface{}

// Field returns the named value and whether it is present and non-empty.
func (f FlatEvent) Field(name string) (interface{}, bool) {
	v, ok := f[name]
	if !ok || IsEmpty(v) {
		return nil, false
	}
	return v, true
}
