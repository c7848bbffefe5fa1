package models

import "strings"

// Canonical visualization component types. Everything the pipeline emits or
// consumes is normalized to one of these.
const (
	ComponentMetricCard      = "MetricCard"
	ComponentLineChart       = "LineChart"
	ComponentTimeseriesChart = "TimeseriesChart"
	ComponentBarChart        = "BarChart"
	ComponentPieChart        = "PieChart"
	ComponentDonutChart      = "DonutChart"
	ComponentDataTable       = "DataTable"
)

// componentAliases maps names seen in generated or hand-written specs to the
// canonical component type.
var componentAliases = map[string]string{
	"metric":     ComponentMetricCard,
	"metriccard": ComponentMetricCard,
	"kpi":        ComponentMetricCard,
	"line":       ComponentLineChart,
	"linechart":  ComponentLineChart,
	"timeseries": ComponentTimeseriesChart,
	"area":       ComponentTimeseriesChart,
	"bar":        ComponentBarChart,
	"barchart":   ComponentBarChart,
	"pie":        ComponentPieChart,
	"piechart":   ComponentPieChart,
	"donut":      ComponentDonutChart,
	"doughnut":   ComponentDonutChart,
	"table":      ComponentDataTable,
	"datatable":  ComponentDataTable,
}

// NormalizeComponentType resolves aliases to a canonical component type.
// Lookup ignores case, underscores, and hyphens, so "pie_chart" and
// "PieChart" both resolve. Unknown names are returned unchanged so
// downstream fallback tables can handle them.
func NormalizeComponentType(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	if canonical, ok := componentAliases[key]; ok {
		return canonical
	}
	return name
}

// IsChartComponent reports whether the component renders a chart, as opposed
// to a scalar card or a table.
func IsChartComponent(componentType string) bool {
	switch NormalizeComponentType(componentType) {
	case ComponentLineChart, ComponentTimeseriesChart, ComponentBarChart,
		ComponentPieChart, ComponentDonutChart:
		return true
	}
	return false
}

// ComponentSpec declares one visualization and its data requirements
// (valueField, aggregation, xField, columns, ...). The transform engine never
// mutates a spec in place; enrichment returns a new copy with computed
// data/value written into Props.
type ComponentSpec struct {
	ID    string                 `json:"id"`
	Type  string                 `json:"type"`
	Props map[string]interface{} `json:"props"`
}

// Clone returns a copy with its own Props map. Nested values are shared;
// enrichment only ever adds top-level keys.
func (c ComponentSpec) Clone() ComponentSpec {
	props := make(map[string]interface{}, len(c.Props)+2)
	for k, v := range c.Props {
		props[k] = v
	}
	return ComponentSpec{ID: c.ID, Type: c.Type, Props: props}
}

// Spec is an ordered set of components making up one dashboard.
type Spec struct {
	Components []ComponentSpec `json:"components"`
}
