package classify

import (
	"sort"
	"strings"
	"time"

	"github.com/gracebotly/flowetic-pipeline/internal/skills"
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

// Classify inspects flattened events and produces a baseline classification
// for every field that appears in them. Pure heuristics: field-name patterns
// first, then value types and cardinality. Output order is deterministic
// (sorted by field name).
func Classify(events []models.FlatEvent) []BaseClassifiedField {
	totalRows := len(events)
	if totalRows == 0 {
		return nil
	}

	names := collectFieldNames(events)
	fields := make([]BaseClassifiedField, 0, len(names))
	for _, name := range names {
		fields = append(fields, classifyField(name, events, totalRows))
	}
	return fields
}

func collectFieldNames(events []models.FlatEvent) []string {
	seen := make(map[string]bool)
	for _, ev := range events {
		for name := range ev {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func classifyField(name string, events []models.FlatEvent, totalRows int) BaseClassifiedField {
	field := BaseClassifiedField{
		Name:      name,
		TotalRows: totalRows,
	}

	var values []interface{}
	uniqueSet := make(map[string]bool)
	nullCount := 0

	for _, ev := range events {
		v, ok := ev.Field(name)
		if !ok {
			nullCount++
			continue
		}
		values = append(values, v)
		uniqueSet[models.StringOf(v)] = true
	}

	field.UniqueValues = len(uniqueSet)
	field.Nullable = nullCount > 0

	if len(values) == 0 {
		field.Shape = ShapeUnknown
		field.Type = "unknown"
		field.Skip = true
		field.SkipReason = "All values are empty or null"
		field.Component = models.ComponentDataTable
		field.Aggregation = skills.AggNone
		field.Role = skills.RoleDetail
		return field
	}

	field.Sample = values[0]
	field.Type = detectValueType(values)
	field.Shape = detectShape(name, values, field.Type, field.UniqueValues, totalRows)
	suggestVisual(&field)
	return field
}

func detectValueType(values []interface{}) string {
	numeric, boolean, str := 0, 0, 0
	for _, v := range values {
		switch v.(type) {
		case bool:
			boolean++
		case string:
			if _, ok := models.NumberOf(v); ok {
				numeric++
			} else {
				str++
			}
		default:
			if _, ok := models.NumberOf(v); ok {
				numeric++
			} else {
				str++
			}
		}
	}

	threshold := (len(values) * 4) / 5
	switch {
	case boolean > threshold:
		return "boolean"
	case numeric > threshold:
		return "number"
	case str > threshold:
		return "string"
	default:
		return "mixed"
	}
}

var statusVocabulary = map[string]bool{
	"success": true, "error": true, "failed": true, "failure": true,
	"running": true, "waiting": true, "completed": true, "canceled": true,
	"cancelled": true, "active": true, "inactive": true, "pending": true,
	"ok": true, "timeout": true,
}

func detectShape(name string, values []interface{}, valueType string, uniqueValues, totalRows int) Shape {
	lower := strings.ToLower(name)

	switch {
	case lower == "id" || strings.HasSuffix(lower, "_id") || strings.HasSuffix(lower, "uuid"):
		return ShapeID
	case lower == "timestamp" || lower == "created_at" || lower == "updated_at" ||
		strings.HasSuffix(lower, "_at") || strings.Contains(lower, "date"):
		return ShapeTimestamp
	case strings.Contains(lower, "duration") || strings.Contains(lower, "elapsed") ||
		strings.Contains(lower, "latency") || strings.HasSuffix(lower, "_ms"):
		return ShapeDuration
	case strings.Contains(lower, "cost") || strings.Contains(lower, "price") ||
		strings.Contains(lower, "amount") || strings.Contains(lower, "revenue"):
		return ShapeMoney
	case valueType == "number" && (strings.Contains(lower, "rate") ||
		strings.Contains(lower, "percent") || strings.Contains(lower, "ratio")):
		return ShapeRate
	}

	if valueType == "boolean" {
		return ShapeBinary
	}

	if valueType == "number" {
		return ShapeNumeric
	}

	if looksLikeStatus(lower, values, uniqueValues) {
		return ShapeStatus
	}

	if valueType == "string" {
		if parsesAsTime(values) {
			return ShapeTimestamp
		}
		if averageLength(values) > 80 {
			return ShapeLongText
		}
		if uniqueValues > 20 && uniqueValues*2 > totalRows {
			return ShapeHighCardinalityText
		}
		return ShapeLabel
	}

	return ShapeUnknown
}

func looksLikeStatus(lower string, values []interface{}, uniqueValues int) bool {
	if lower == "status" || lower == "state" || lower == "result" || lower == "outcome" {
		return true
	}
	if uniqueValues > 8 {
		return false
	}

	matches := 0
	for _, v := range values {
		if statusVocabulary[strings.ToLower(models.StringOf(v))] {
			matches++
		}
	}
	return matches*5 >= len(values)*4
}

var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parsesAsTime(values []interface{}) bool {
	matches := 0
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			return false
		}
		for _, layout := range timestampFormats {
			if _, err := time.Parse(layout, s); err == nil {
				matches++
				break
			}
		}
	}
	return matches*5 >= len(values)*4
}

func averageLength(values []interface{}) int {
	total := 0
	for _, v := range values {
		total += len(models.StringOf(v))
	}
	return total / len(values)
}

// suggestVisual picks the baseline component, aggregation, and role for a
// shape. The override engine may replace any of these.
func suggestVisual(field *BaseClassifiedField) {
	switch field.Shape {
	case ShapeID:
		field.Component = models.ComponentMetricCard
		field.Aggregation = skills.AggCount
		field.Role = skills.RoleSupporting
	case ShapeTimestamp:
		field.Component = models.ComponentTimeseriesChart
		field.Aggregation = skills.AggCount
		field.Role = skills.RoleTrend
	case ShapeDuration:
		field.Component = models.ComponentMetricCard
		field.Aggregation = skills.AggAvg
		field.Role = skills.RoleSupporting
	case ShapeMoney:
		field.Component = models.ComponentMetricCard
		field.Aggregation = skills.AggSum
		field.Role = skills.RoleHero
	case ShapeRate:
		field.Component = models.ComponentMetricCard
		field.Aggregation = skills.AggAvg
		field.Role = skills.RoleSupporting
	case ShapeNumeric:
		field.Component = models.ComponentMetricCard
		field.Aggregation = skills.AggSum
		field.Role = skills.RoleSupporting
	case ShapeStatus, ShapeBinary:
		field.Component = models.ComponentPieChart
		field.Aggregation = skills.AggCount
		field.Role = skills.RoleBreakdown
	case ShapeLabel:
		if field.UniqueValues <= 12 {
			field.Component = models.ComponentBarChart
			field.Aggregation = skills.AggCount
			field.Role = skills.RoleBreakdown
		} else {
			field.Component = models.ComponentDataTable
			field.Aggregation = skills.AggNone
			field.Role = skills.RoleDetail
		}
	case ShapeLongText:
		field.Component = models.ComponentDataTable
		field.Aggregation = skills.AggNone
		field.Role = skills.RoleDetail
		field.Skip = true
		field.SkipReason = "Long free text is not chartable"
	case ShapeHighCardinalityText:
		field.Component = models.ComponentDataTable
		field.Aggregation = skills.AggNone
		field.Role = skills.RoleDetail
		field.Skip = true
		field.SkipReason = "High cardinality text is not useful for grouping"
	default:
		field.Component = models.ComponentDataTable
		field.Aggregation = skills.AggNone
		field.Role = skills.RoleDetail
	}
}
