package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gracebotly/flowetic-pipeline/internal/constants"
	"github.com/gracebotly/flowetic-pipeline/internal/skills"
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

// FormatMetricValue renders a computed scalar by unit and aggregation
// convention. Average durations arrive in milliseconds; without an explicit
// unit they are shown as seconds.
func FormatMetricValue(v float64, aggregation, unit string) string {
	if aggregation == skills.AggPercentage {
		return strconv.Itoa(int(math.Round(v))) + "%"
	}

	if aggregation == skills.AggAvg {
		switch strings.ToLower(unit) {
		case "s", "sec", "seconds":
			return fmt.Sprintf("%.1fs", v/1000)
		case "ms", "milliseconds":
			return strconv.Itoa(int(math.Round(v))) + "ms"
		case "":
			return fmt.Sprintf("%.1fs", v/1000)
		}
	}

	if v == math.Trunc(v) {
		return formatThousands(int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func formatThousands(n int64) string {
	if n < 0 {
		return "-" + formatThousands(-n)
	}
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprintf("%s,%03d", formatThousands(n/1000), n%1000)
}

// Round2 rounds to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var eventTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseEventTime coerces an untrusted timestamp value: ISO strings in several
// spellings, or epoch seconds/milliseconds as numbers.
func parseEventTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range eventTimeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	case time.Time:
		return t, true
	default:
		n, ok := models.NumberOf(v)
		if !ok || n <= 0 {
			return time.Time{}, false
		}
		if n > 1e12 {
			return time.UnixMilli(int64(n)).UTC(), true
		}
		return time.Unix(int64(n), 0).UTC(), true
	}
}

// FormatBucketLabel renders a bucket key as a short human label:
// hour buckets as "Jan 2, 15:00", day buckets as "Jan 2".
func FormatBucketLabel(key, interval string) string {
	if interval == constants.IntervalHour {
		if t, err := time.Parse("2006-01-02T15:04", key); err == nil {
			return t.Format("Jan 2, 15:04")
		}
		return key
	}
	if t, err := time.Parse("2006-01-02", key); err == nil {
		return t.Format("Jan 2")
	}
	return key
}

// FormatCellValue applies light per-column formatting for table cells.
func FormatCellValue(column string, v interface{}) string {
	if models.IsEmpty(v) {
		return constants.MetricPlaceholder
	}

	switch column {
	case "timestamp", "created_at":
		if t, ok := parseEventTime(v); ok {
			return t.Format("Jan 2, 2006 3:04 PM")
		}
	case "id":
		s := models.StringOf(v)
		if len(s) > 8 {
			return s[:8]
		}
		return s
	case "duration_ms":
		if n, ok := models.NumberOf(v); ok {
			return strconv.Itoa(int(math.Round(n))) + "ms"
		}
	}

	return models.StringOf(v)
}
