package transform

import (
	"sort"

	"github.com/gracebotly/flowetic-pipeline/internal/constants"
	"github.com/gracebotly/flowetic-pipeline/internal/skills"
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

// Point is one chart data point, for both time buckets and group-by buckets.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type bucket struct {
	count int
	total float64
}

// BuildTimeseries buckets events by hour or day along an x-field and
// accumulates per aggregation mode. Two phases: one pass accumulating into an
// ordered key set, one pass finalizing (avg divides total by count). Output is
// sorted ascending by bucket key, values rounded to 2 decimals.
func BuildTimeseries(events []models.FlatEvent, xField, yField, interval, aggregation string) []Point {
	if xField == "" {
		xField = "timestamp"
	}
	if interval != constants.IntervalHour {
		interval = constants.IntervalDay
	}
	if aggregation == "" {
		aggregation = skills.AggCount
	}

	buckets := make(map[string]*bucket)
	for _, ev := range events {
		raw, ok := ev.Field(xField)
		if !ok {
			continue
		}
		t, ok := parseEventTime(raw)
		if !ok {
			continue
		}

		key := t.UTC().Format("2006-01-02")
		if interval == constants.IntervalHour {
			key = t.UTC().Format("2006-01-02T15:00")
		}

		b := buckets[key]
		if b == nil {
			b = &bucket{}
			buckets[key] = b
		}

		switch aggregation {
		case skills.AggSum, skills.AggAvg:
			// The x-field itself as y means "count occurrences": every
			// bucketed event contributes 1.
			if yField == "timestamp" {
				b.total++
				b.count++
				continue
			}
			yv, present := ev.Field(yField)
			if !present {
				continue
			}
			n, numeric := models.NumberOf(yv)
			if !numeric {
				continue
			}
			b.total += n
			b.count++
		default:
			b.count++
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]Point, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]

		var value float64
		switch aggregation {
		case skills.AggSum:
			value = b.total
		case skills.AggAvg:
			if b.count > 0 {
				value = b.total / float64(b.count)
			}
		default:
			value = float64(b.count)
		}

		points = append(points, Point{
			Label: FormatBucketLabel(key, interval),
			Value: Round2(value),
		})
	}

	return points
}
