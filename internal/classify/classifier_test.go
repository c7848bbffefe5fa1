package classify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gracebotly/flowetic-pipeline/internal/skills"
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

func eventsFromRows(rows []map[string]interface{}) []models.FlatEvent {
	events := make([]models.FlatEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, models.FlatEvent(row))
	}
	return events
}

func fieldByName(t *testing.T, fields []BaseClassifiedField, name string) BaseClassifiedField {
	t.Helper()
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %q not classified", name)
	return BaseClassifiedField{}
}

func TestClassify_EmptyInput(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.Nil(t, Classify([]models.FlatEvent{}))
}

func TestClassify_OutputSortedByName(t *testing.T) {
	events := eventsFromRows([]map[string]interface{}{
		{"zeta": "a", "alpha": "b", "mid": "c"},
	})

	fields := Classify(events)
	require.Len(t, fields, 3)
	assert.Equal(t, "alpha", fields[0].Name)
	assert.Equal(t, "mid", fields[1].Name)
	assert.Equal(t, "zeta", fields[2].Name)
}

func TestClassify_IDFields(t *testing.T) {
	events := eventsFromRows([]map[string]interface{}{
		{"workflow_id": "wf-1", "id": "a"},
		{"workflow_id": "wf-2", "id": "b"},
	})

	fields := Classify(events)

	for _, name := range []string{"workflow_id", "id"} {
		f := fieldByName(t, fields, name)
		assert.Equal(t, ShapeID, f.Shape, name)
		assert.Equal(t, models.ComponentMetricCard, f.Component, name)
		assert.Equal(t, skills.AggCount, f.Aggregation, name)
	}
}

func TestClassify_StatusField(t *testing.T) {
	events := eventsFromRows([]map[string]interface{}{
		{"status": "success"},
		{"status": "error"},
		{"status": "success"},
	})

	f := fieldByName(t, Classify(events), "status")
	assert.Equal(t, ShapeStatus, f.Shape)
	assert.Equal(t, models.ComponentPieChart, f.Component)
	assert.Equal(t, skills.RoleBreakdown, f.Role)
	assert.Equal(t, 2, f.UniqueValues)
	assert.False(t, f.Skip)
}

func TestClassify_StatusVocabularyWithoutStatusName(t *testing.T) {
	events := eventsFromRows([]map[string]interface{}{
		{"phase": "running"},
		{"phase": "completed"},
		{"phase": "failed"},
		{"phase": "completed"},
	})

	f := fieldByName(t, Classify(events), "phase")
	assert.Equal(t, ShapeStatus, f.Shape)
}

func TestClassify_TimestampByNameAndByValue(t *testing.T) {
	events := eventsFromRows([]map[string]interface{}{
		{"timestamp": "2026-03-01T10:00:00Z", "started": "2026-03-01T09:59:58Z"},
		{"timestamp": "2026-03-01T11:00:00Z", "started": "2026-03-01T10:59:58Z"},
	})

	fields := Classify(events)

	byName := fieldByName(t, fields, "timestamp")
	assert.Equal(t, ShapeTimestamp, byName.Shape)
	assert.Equal(t, models.ComponentTimeseriesChart, byName.Component)
	assert.Equal(t, skills.RoleTrend, byName.Role)

	// "started" has no timestamp-ish name but its values parse as RFC3339
	byValue := fieldByName(t, fields, "started")
	assert.Equal(t, ShapeTimestamp, byValue.Shape)
}

func TestClassify_DurationAndMoney(t *testing.T) {
	events := eventsFromRows([]map[string]interface{}{
		{"duration_ms": float64(1200), "cost": 0.5},
		{"duration_ms": float64(900), "cost": 1.25},
	})

	fields := Classify(events)

	duration := fieldByName(t, fields, "duration_ms")
	assert.Equal(t, ShapeDuration, duration.Shape)
	assert.Equal(t, skills.AggAvg, duration.Aggregation)

	cost := fieldByName(t, fields, "cost")
	assert.Equal(t, ShapeMoney, cost.Shape)
	assert.Equal(t, skills.AggSum, cost.Aggregation)
	assert.Equal(t, skills.RoleHero, cost.Role)
}

func TestClassify_NumericStringsCountAsNumbers(t *testing.T) {
	events := eventsFromRows([]map[string]interface{}{
		{"items": "3"},
		{"items": "7"},
		{"items": "11"},
	})

	f := fieldByName(t, Classify(events), "items")
	assert.Equal(t, "number", f.Type)
	assert.Equal(t, ShapeNumeric, f.Shape)
	assert.Equal(t, skills.AggSum, f.Aggregation)
}

func TestClassify_LabelCardinalitySplit(t *testing.T) {
	small := eventsFromRows([]map[string]interface{}{
		{"mode": "trigger"}, {"mode": "manual"}, {"mode": "trigger"},
	})
	f := fieldByName(t, Classify(small), "mode")
	assert.Equal(t, ShapeLabel, f.Shape)
	assert.Equal(t, models.ComponentBarChart, f.Component)

	var rows []map[string]interface{}
	for i := 0; i < 30; i++ {
		rows = append(rows, map[string]interface{}{"caller": fmt.Sprintf("ext-%d", i)})
	}
	f = fieldByName(t, Classify(eventsFromRows(rows)), "caller")
	assert.Equal(t, ShapeHighCardinalityText, f.Shape)
	assert.True(t, f.Skip)
	assert.NotEmpty(t, f.SkipReason)
}

func TestClassify_LongTextSkipped(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "lorem "
	}
	events := eventsFromRows([]map[string]interface{}{
		{"error_message": long},
		{"error_message": long + "ipsum"},
	})

	f := fieldByName(t, Classify(events), "error_message")
	assert.Equal(t, ShapeLongText, f.Shape)
	assert.True(t, f.Skip)
	assert.Equal(t, models.ComponentDataTable, f.Component)
}

func TestClassify_AllValuesMissing(t *testing.T) {
	events := eventsFromRows([]map[string]interface{}{
		{"present": "x", "ghost": ""},
		{"present": "y"},
	})

	f := fieldByName(t, Classify(events), "ghost")
	assert.Equal(t, ShapeUnknown, f.Shape)
	assert.True(t, f.Skip)
	assert.True(t, f.Nullable)
	assert.Equal(t, 0, f.UniqueValues)
}

func TestClassify_NullableTracksMissingRows(t *testing.T) {
	events := eventsFromRows([]map[string]interface{}{
		{"a": "1", "b": "x"},
		{"a": "2"},
	})

	fields := Classify(events)
	assert.False(t, fieldByName(t, fields, "a").Nullable)
	assert.True(t, fieldByName(t, fields, "b").Nullable)
}

func TestClassify_BooleanShape(t *testing.T) {
	events := eventsFromRows([]map[string]interface{}{
		{"is_retry": true},
		{"is_retry": false},
		{"is_retry": false},
	})

	f := fieldByName(t, Classify(events), "is_retry")
	assert.Equal(t, ShapeBinary, f.Shape)
	assert.Equal(t, models.ComponentPieChart, f.Component)
}

func TestClassify_RateNeedsNumericValues(t *testing.T) {
	events := eventsFromRows([]map[string]interface{}{
		{"success_rate": 0.97},
		{"success_rate": 0.95},
	})

	f := fieldByName(t, Classify(events), "success_rate")
	assert.Equal(t, ShapeRate, f.Shape)
	assert.Equal(t, skills.AggAvg, f.Aggregation)
}
