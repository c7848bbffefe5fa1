package classify

// Shape is the low-level value shape detected for a field by sampling.
type Shape string

const (
	ShapeID                  Shape = "id"
	ShapeStatus              Shape = "status"
	ShapeBinary              Shape = "binary"
	ShapeTimestamp           Shape = "timestamp"
	ShapeDuration            Shape = "duration"
	ShapeMoney               Shape = "money"
	ShapeRate                Shape = "rate"
	ShapeLabel               Shape = "label"
	ShapeHighCardinalityText Shape = "high_cardinality_text"
	ShapeLongText            Shape = "long_text"
	ShapeNumeric             Shape = "numeric"
	ShapeUnknown             Shape = "unknown"
)

// BaseClassifiedField is the heuristic baseline classification for one field,
// produced fresh per run and consumed read-only by the override engine.
type BaseClassifiedField struct {
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	Shape        Shape       `json:"shape"`
	Component    string      `json:"component"`
	Aggregation  string      `json:"aggregation"`
	Role         string      `json:"role"`
	UniqueValues int         `json:"uniqueValues"`
	TotalRows    int         `json:"totalRows"`
	Nullable     bool        `json:"nullable"`
	Sample       interface{} `json:"sample"`
	Skip         bool        `json:"skip"`
	SkipReason   string      `json:"skipReason,omitempty"`
}
