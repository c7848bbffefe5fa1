package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gracebotly/flowetic-pipeline/internal/logger"
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

func newSanitizer() *Sanitizer {
	return New(logger.NopLogger())
}

func TestSanitize_KeepsAllowedProps(t *testing.T) {
	props := map[string]interface{}{
		"title":       "Success Rate",
		"valueField":  "status",
		"aggregation": "percentage",
		"unit":        "%",
		"condition":   map[string]interface{}{"equals": "success"},
	}

	clean := newSanitizer().Sanitize(models.ComponentMetricCard, props)
	assert.Equal(t, props, clean)
}

func TestSanitize_DropsKeysOutsideAllowList(t *testing.T) {
	clean := newSanitizer().Sanitize(models.ComponentMetricCard, map[string]interface{}{
		"title":  "ok",
		"xField": "timestamp", // chart prop, not a card prop
		"random": true,
	})

	assert.Equal(t, map[string]interface{}{"title": "ok"}, clean)
}

func TestSanitize_DropsHandlerKeys(t *testing.T) {
	clean := newSanitizer().Sanitize(models.ComponentMetricCard, map[string]interface{}{
		"title":       "ok",
		"onClick":     "doEvil()",
		"onMouseOver": "alert(1)",
	})

	require.Len(t, clean, 1)
	assert.Contains(t, clean, "title")
}

func TestSanitize_HandlerPatternNeedsCapital(t *testing.T) {
	// "once" and "online" are ordinary words, not handlers; they still fall
	// to the allow-list check
	clean := newSanitizer().Sanitize(models.ComponentBarChart, map[string]interface{}{
		"once":  "x",
		"field": "mode",
	})

	assert.Equal(t, map[string]interface{}{"field": "mode"}, clean)
}

func TestSanitize_DropsDunderAndDangerouslyKeys(t *testing.T) {
	clean := newSanitizer().Sanitize(models.ComponentDataTable, map[string]interface{}{
		"__proto__":               "x",
		"dangerouslySetInnerHTML": "<div/>",
		"columns":                 []interface{}{"id"},
	})

	require.Len(t, clean, 1)
	assert.Contains(t, clean, "columns")
}

func TestSanitize_DropsScriptValues(t *testing.T) {
	clean := newSanitizer().Sanitize(models.ComponentMetricCard, map[string]interface{}{
		"title":       "<SCRIPT>alert(1)</SCRIPT>",
		"description": "javascript:alert(1)",
		"unit":        "ms",
	})

	assert.Equal(t, map[string]interface{}{"unit": "ms"}, clean)
}

func TestSanitize_UnknownComponentGetsUniversalListOnly(t *testing.T) {
	clean := newSanitizer().Sanitize("Gauge", map[string]interface{}{
		"title":      "ok",
		"filter":     `event.status == "success"`,
		"valueField": "x",
	})

	assert.Equal(t, map[string]interface{}{
		"title":  "ok",
		"filter": `event.status == "success"`,
	}, clean)
}

func TestSanitize_AliasTypeResolvesAllowList(t *testing.T) {
	clean := newSanitizer().Sanitize("pie_chart", map[string]interface{}{
		"field": "status",
		"limit": 6,
	})

	assert.Len(t, clean, 2)
}

func TestSanitize_EmptyProps(t *testing.T) {
	assert.Empty(t, newSanitizer().Sanitize(models.ComponentMetricCard, nil))
	assert.Empty(t, newSanitizer().Sanitize(models.ComponentMetricCard, map[string]interface{}{}))
}
