package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

func flatEvents(rows ...map[string]interface{}) []models.FlatEvent {
	events := make([]models.FlatEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, models.FlatEvent(row))
	}
	return events
}

func TestCount(t *testing.T) {
	events := flatEvents(
		map[string]interface{}{"status": "success"},
		map[string]interface{}{"status": ""},
		map[string]interface{}{"other": "x"},
		map[string]interface{}{"status": "error"},
	)

	assert.Equal(t, float64(2), Count(events, "status"))
	assert.Equal(t, float64(0), Count(nil, "status"))
}

func TestSum_SkipsNonNumeric(t *testing.T) {
	events := flatEvents(
		map[string]interface{}{"duration_ms": float64(100)},
		map[string]interface{}{"duration_ms": "250"},
		map[string]interface{}{"duration_ms": "not a number"},
		map[string]interface{}{"duration_ms": nil},
		map[string]interface{}{"other": float64(999)},
	)

	assert.Equal(t, float64(350), Sum(events, "duration_ms"))
}

func TestAvg(t *testing.T) {
	events := flatEvents(
		map[string]interface{}{"duration_ms": float64(100)},
		map[string]interface{}{"duration_ms": float64(300)},
		map[string]interface{}{"duration_ms": "garbage"},
	)

	// only the numeric values participate in the mean
	assert.Equal(t, float64(200), Avg(events, "duration_ms"))
	assert.Equal(t, float64(0), Avg(nil, "duration_ms"))
	assert.Equal(t, float64(0), Avg(flatEvents(map[string]interface{}{"x": "y"}), "duration_ms"))
}

func TestPercentage(t *testing.T) {
	events := flatEvents(
		map[string]interface{}{"status": "success"},
		map[string]interface{}{"status": "SUCCESS"},
		map[string]interface{}{"status": "error"},
		map[string]interface{}{"other": "x"},
	)

	// 2 of 3 events carrying the field match, case-insensitively
	assert.Equal(t, float64(67), Percentage(events, "status", "success"))
}

func TestPercentage_NoEventsWithField(t *testing.T) {
	events := flatEvents(map[string]interface{}{"other": "x"})

	assert.Equal(t, float64(0), Percentage(events, "status", "success"))
	assert.Equal(t, float64(0), Percentage(nil, "status", "success"))
}

func TestPercentage_AllMatch(t *testing.T) {
	events := flatEvents(
		map[string]interface{}{"status": "success"},
		map[string]interface{}{"status": "success"},
	)

	assert.Equal(t, float64(100), Percentage(events, "status", "success"))
}

func TestFallbackTotal(t *testing.T) {
	withValues := flatEvents(
		map[string]interface{}{"value": float64(2)},
		map[string]interface{}{"value": float64(3)},
	)
	assert.Equal(t, float64(5), FallbackTotal(withValues))

	withoutValues := flatEvents(
		map[string]interface{}{"name": "a"},
		map[string]interface{}{"name": "b"},
		map[string]interface{}{"name": "c"},
	)
	assert.Equal(t, float64(3), FallbackTotal(withoutValues))

	assert.Equal(t, float64(0), FallbackTotal(nil))
}
