package transform

import (
	"sort"

	"github.com/gracebotly/flowetic-pipeline/internal/constants"
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

// BuildGroups counts occurrences per distinct non-empty value of a
// categorical field, sorted descending by count (ties broken by label so the
// output is deterministic). A limit of 0 means unlimited.
func BuildGroups(events []models.FlatEvent, field string, limit int) []Point {
	counts := make(map[string]int)
	for _, ev := range events {
		v, ok := ev.Field(field)
		if !ok {
			continue
		}
		counts[models.StringOf(v)]++
	}

	points := make([]Point, 0, len(counts))
	for label, count := range counts {
		points = append(points, Point{Label: label, Value: float64(count)})
	}

	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Label < points[j].Label
	})

	if limit > 0 && len(points) > limit {
		points = points[:limit]
	}
	return points
}

// BuildFallbackGroups groups by the event name, or type when no event carries
// a name, for components that declared no grouping field.
func BuildFallbackGroups(events []models.FlatEvent) []Point {
	points := BuildGroups(events, "name", constants.FallbackGroupLimit)
	if len(points) == 0 {
		points = BuildGroups(events, "type", constants.FallbackGroupLimit)
	}
	return points
}
