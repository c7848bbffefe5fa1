package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeComponentType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"metric", ComponentMetricCard},
		{"KPI", ComponentMetricCard},
		{"MetricCard", ComponentMetricCard},
		{"pie_chart", ComponentPieChart},
		{"Pie-Chart", ComponentPieChart},
		{"  bar  ", ComponentBarChart},
		{"timeseries", ComponentTimeseriesChart},
		{"area", ComponentTimeseriesChart},
		{"doughnut", ComponentDonutChart},
		{"table", ComponentDataTable},
		{"Gauge", "Gauge"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeComponentType(tt.in), tt.in)
	}
}

func TestIsChartComponent(t *testing.T) {
	assert.True(t, IsChartComponent(ComponentPieChart))
	assert.True(t, IsChartComponent("bar"))
	assert.True(t, IsChartComponent(ComponentTimeseriesChart))
	assert.False(t, IsChartComponent(ComponentMetricCard))
	assert.False(t, IsChartComponent(ComponentDataTable))
	assert.False(t, IsChartComponent("Gauge"))
}

func TestComponentSpec_Clone(t *testing.T) {
	original := ComponentSpec{
		ID:    "c1",
		Type:  ComponentMetricCard,
		Props: map[string]interface{}{"title": "ok"},
	}

	clone := original.Clone()
	clone.Props["value"] = "42"

	assert.NotContains(t, original.Props, "value")
	assert.Equal(t, "ok", clone.Props["title"])
}

func TestNumberOf(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want float64
		ok   bool
	}{
		{"float64", float64(1.5), 1.5, true},
		{"int", 7, 7, true},
		{"int64", int64(9), 9, true},
		{"json number", json.Number("12.5"), 12.5, true},
		{"numeric string", "42", 42, true},
		{"padded string", "  3.14  ", 3.14, true},
		{"bool true", true, 1, true},
		{"bool false", false, 0, true},
		{"word", "fast", 0, false},
		{"nil", nil, 0, false},
		{"map", map[string]interface{}{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NumberOf(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestStringOf(t *testing.T) {
	assert.Equal(t, "", StringOf(nil))
	assert.Equal(t, "hello", StringOf("hello"))
	assert.Equal(t, "200", StringOf(float64(200)))
	assert.Equal(t, "1.5", StringOf(float64(1.5)))
	assert.Equal(t, "true", StringOf(true))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(nil))
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(float64(0)))
	assert.False(t, IsEmpty(false))
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Workflow Name", TitleCase("workflow_name"))
	assert.Equal(t, "Execution Retry Count", TitleCase("execution.retry_count"))
	assert.Equal(t, "Status", TitleCase("status"))
	assert.Equal(t, "", TitleCase(""))
}

func TestValidateSpec(t *testing.T) {
	assert.Error(t, ValidateSpec(nil))

	valid := &Spec{Components: []ComponentSpec{
		{ID: "c1", Type: ComponentMetricCard},
		{ID: "c2", Type: ComponentDataTable, Props: nil},
	}}
	assert.NoError(t, ValidateSpec(valid))

	invalid := &Spec{Components: []ComponentSpec{
		{ID: "c1", Type: ""},
	}}
	err := ValidateSpec(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "components[0].type")
}

func TestFlatEventJSONRoundTrip(t *testing.T) {
	raw := `{
		"id": "ev-1",
		"type": "workflow_execution",
		"value": 3,
		"duration_ms": 1250,
		"state": {"status": "success"},
		"labels": {"tenant": "acme"},
		"timestamp": "2026-03-01T10:00:00Z"
	}`

	var ev Event
	require.NoError(t, json.Unmarshal([]byte(raw), &ev))

	assert.Equal(t, "ev-1", ev.ID)
	assert.Equal(t, float64(3), ev.Value)
	assert.Equal(t, float64(1250), ev.DurationMS)
	assert.Equal(t, "success", ev.State["status"])
	assert.Equal(t, "acme", ev.Labels["tenant"])
}
