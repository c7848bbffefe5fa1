package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gracebotly/flowetic-pipeline/internal/skills"
)

func TestFormatMetricValue(t *testing.T) {
	tests := []struct {
		name        string
		value       float64
		aggregation string
		unit        string
		want        string
	}{
		{"percentage", 97.4, skills.AggPercentage, "", "97%"},
		{"percentage rounds up", 66.5, skills.AggPercentage, "%", "67%"},
		{"avg default unit is seconds", 1250, skills.AggAvg, "", "1.2s"},
		{"avg explicit seconds", 2500, skills.AggAvg, "s", "2.5s"},
		{"avg milliseconds", 842.6, skills.AggAvg, "ms", "843ms"},
		{"count integer", 42, skills.AggCount, "", "42"},
		{"count with thousands separator", 1234567, skills.AggCount, "", "1,234,567"},
		{"sum fractional", 12.34, skills.AggSum, "", "12.3"},
		{"sum whole", 1000, skills.AggSum, "", "1,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMetricValue(tt.value, tt.aggregation, tt.unit))
		})
	}
}

func TestFormatThousands_Negative(t *testing.T) {
	assert.Equal(t, "-12,500", FormatMetricValue(-12500, skills.AggSum, ""))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 1.24, Round2(1.236))
	assert.Equal(t, 0.0, Round2(0))
}

func TestParseEventTime(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  time.Time
		ok    bool
	}{
		{"rfc3339", "2026-03-01T10:30:00Z", time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), true},
		{"no zone", "2026-03-01T10:30:00", time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), true},
		{"space separated", "2026-03-01 10:30:00", time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC), true},
		{"date only", "2026-03-01", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"epoch seconds", float64(1772361000), time.Unix(1772361000, 0).UTC(), true},
		{"epoch milliseconds", float64(1772361000123), time.UnixMilli(1772361000123).UTC(), true},
		{"garbage string", "yesterday", time.Time{}, false},
		{"negative number", float64(-5), time.Time{}, false},
		{"nil", nil, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseEventTime(tt.value)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %v got %v", tt.want, got)
			}
		})
	}
}

func TestFormatBucketLabel(t *testing.T) {
	assert.Equal(t, "Mar 1, 15:00", FormatBucketLabel("2026-03-01T15:00", "hour"))
	assert.Equal(t, "Mar 1", FormatBucketLabel("2026-03-01", "day"))
	// unparseable keys pass through untouched
	assert.Equal(t, "bogus", FormatBucketLabel("bogus", "day"))
	assert.Equal(t, "bogus", FormatBucketLabel("bogus", "hour"))
}

func TestFormatCellValue(t *testing.T) {
	tests := []struct {
		name   string
		column string
		value  interface{}
		want   string
	}{
		{"empty becomes placeholder", "status", "", "—"},
		{"nil becomes placeholder", "status", nil, "—"},
		{"id truncated to 8 chars", "id", "0123456789abcdef", "01234567"},
		{"short id kept", "id", "wf-1", "wf-1"},
		{"duration formatted", "duration_ms", float64(1250), "1250ms"},
		{"duration from string", "duration_ms", "90", "90ms"},
		{"timestamp formatted", "timestamp", "2026-03-01T15:04:00Z", "Mar 1, 2026 3:04 PM"},
		{"plain value", "status", "success", "success"},
		{"number rendered", "value", float64(7), "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCellValue(tt.column, tt.value))
		})
	}
}
