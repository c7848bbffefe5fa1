package override

import (
	"github.com/google/uuid"

	"github.com/gracebotly/flowetic-pipeline/internal/skills"
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

// BuildComponents derives a default dashboard spec from final field
// decisions: hero metric cards first, then remaining cards, trend charts,
// breakdowns, and one detail table. Skipped fields contribute nothing except
// table columns for detail-role fields.
func BuildComponents(fields []DashboardField) []models.ComponentSpec {
	var heroes, cards, trends, breakdowns []models.ComponentSpec
	var tableColumns []string

	for _, f := range fields {
		if f.Role == skills.RoleDetail {
			tableColumns = append(tableColumns, f.Name)
		}
		if f.Skip {
			continue
		}

		switch f.Component {
		case models.ComponentMetricCard:
			spec := metricCardSpec(f)
			if f.Role == skills.RoleHero {
				heroes = append(heroes, spec)
			} else {
				cards = append(cards, spec)
			}
		case models.ComponentTimeseriesChart, models.ComponentLineChart:
			trends = append(trends, trendSpec(f))
		case models.ComponentPieChart, models.ComponentBarChart, models.ComponentDonutChart:
			breakdowns = append(breakdowns, breakdownSpec(f))
		}
	}

	components := make([]models.ComponentSpec, 0, len(fields)+1)
	components = append(components, heroes...)
	components = append(components, cards...)
	components = append(components, trends...)
	components = append(components, breakdowns...)
	components = append(components, tableSpec(tableColumns))
	return components
}

func metricCardSpec(f DashboardField) models.ComponentSpec {
	props := map[string]interface{}{
		"title":       fieldTitle(f),
		"valueField":  f.Name,
		"aggregation": f.Aggregation,
	}
	if f.Unit != "" {
		props["unit"] = f.Unit
	}
	if f.Aggregation == skills.AggPercentage && f.FilterValue != "" {
		props["condition"] = map[string]interface{}{"equals": f.FilterValue}
	}
	return newSpec(models.ComponentMetricCard, props)
}

func trendSpec(f DashboardField) models.ComponentSpec {
	return newSpec(f.Component, map[string]interface{}{
		"title":       fieldTitle(f),
		"xField":      f.Name,
		"interval":    "day",
		"aggregation": skills.AggCount,
	})
}

func breakdownSpec(f DashboardField) models.ComponentSpec {
	return newSpec(f.Component, map[string]interface{}{
		"title": fieldTitle(f),
		"field": f.Name,
	})
}

func tableSpec(columns []string) models.ComponentSpec {
	props := map[string]interface{}{
		"title": "Recent Activity",
	}
	if len(columns) > 0 {
		cols := make([]interface{}, 0, len(columns))
		for _, c := range columns {
			cols = append(cols, c)
		}
		props["columns"] = cols
	}
	return newSpec(models.ComponentDataTable, props)
}

func newSpec(componentType string, props map[string]interface{}) models.ComponentSpec {
	return models.ComponentSpec{
		ID:    uuid.New().String(),
		Type:  componentType,
		Props: props,
	}
}

func fieldTitle(f DashboardField) string {
	if f.DisplayName != "" {
		return f.DisplayName
	}
	return models.TitleCase(f.Name)
}
