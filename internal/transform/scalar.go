package transform

import (
	"math"
	"strings"

	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

// Scalar aggregations over flattened events. All of them are total: malformed
// or missing values are skipped, empty inputs yield 0.

// Count returns the number of events where the field is present and non-empty.
func Count(events []models.FlatEvent, field string) float64 {
	n := 0
	for _, ev := range events {
		if _, ok := ev.Field(field); ok {
			n++
		}
	}
	return float64(n)
}

// Sum adds up every numeric-coercible value of the field. Non-numeric values
// are skipped, not zero-coerced.
func Sum(events []models.FlatEvent, field string) float64 {
	var total float64
	for _, ev := range events {
		v, ok := ev.Field(field)
		if !ok {
			continue
		}
		if n, numeric := models.NumberOf(v); numeric {
			total += n
		}
	}
	return total
}

// Avg is the mean over the field's numeric values, 0 when there are none.
func Avg(events []models.FlatEvent, field string) float64 {
	var total float64
	count := 0
	for _, ev := range events {
		v, ok := ev.Field(field)
		if !ok {
			continue
		}
		if n, numeric := models.NumberOf(v); numeric {
			total += n
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// Percentage computes round(100 * matching / withField) over the events where
// the field is present at all. No events with the field means 0, never a
// division by zero.
func Percentage(events []models.FlatEvent, field, match string) float64 {
	withField := 0
	matching := 0
	for _, ev := range events {
		v, ok := ev.Field(field)
		if !ok {
			continue
		}
		withField++
		if strings.EqualFold(models.StringOf(v), match) {
			matching++
		}
	}
	if withField == 0 {
		return 0
	}
	return math.Round(100 * float64(matching) / float64(withField))
}

// FallbackTotal is the generic scalar when no valueField was declared: the
// sum of the events' own value field, or the raw event count when that sum
// is zero.
func FallbackTotal(events []models.FlatEvent) float64 {
	total := Sum(events, "value")
	if total != 0 {
		return total
	}
	return float64(len(events))
}
