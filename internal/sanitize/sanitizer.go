package sanitize

import (
	"regexp"
	"strings"

	"github.com/gracebotly/flowetic-pipeline/internal/logger"
	"github.com/gracebotly/flowetic-pipeline/pkg/metrics"
	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

// Sanitizer filters component props through per-type allow-lists before they
// reach the transform or rendering layer. It never fails; unknown component
// types fall back to a minimal universal list.
type Sanitizer struct {
	log logger.Logger
}

func New(log logger.Logger) *Sanitizer {
	return &Sanitizer{log: log}
}

// universalAllowList applies to every component type, known or not.
var universalAllowList = []string{
	"title", "description", "filter",
}

var allowLists = map[string][]string{
	models.ComponentMetricCard: {
		"valueField", "aggregation", "unit", "condition", "icon", "format", "value",
	},
	models.ComponentLineChart: {
		"xField", "yField", "interval", "aggregation", "colors", "data",
	},
	models.ComponentTimeseriesChart: {
		"xField", "yField", "interval", "aggregation", "colors", "data",
	},
	models.ComponentBarChart: {
		"field", "limit", "colors", "stacked", "data",
	},
	models.ComponentPieChart: {
		"field", "limit", "colors", "data",
	},
	models.ComponentDonutChart: {
		"field", "limit", "colors", "data",
	},
	models.ComponentDataTable: {
		"columns", "limit", "data",
	},
}

var handlerKeyPattern = regexp.MustCompile(`^on[A-Z]`)

// Sanitize returns a cleaned copy of props for the component type. Keys
// outside the allow-list, handler-shaped or dunder/dangerously-prefixed keys,
// and string values carrying script-injection signatures are all dropped and
// logged.
func (s *Sanitizer) Sanitize(componentType string, props map[string]interface{}) map[string]interface{} {
	allowed := allowedKeys(componentType)

	clean := make(map[string]interface{}, len(props))
	for key, value := range props {
		if reason := blockedKey(key); reason != "" {
			s.drop(componentType, key, reason)
			continue
		}
		if !allowed[key] {
			s.drop(componentType, key, "not_in_allow_list")
			continue
		}
		if str, ok := value.(string); ok && unsafeValue(str) {
			s.drop(componentType, key, "unsafe_value")
			continue
		}
		clean[key] = value
	}
	return clean
}

func allowedKeys(componentType string) map[string]bool {
	keys := make(map[string]bool)
	for _, k := range universalAllowList {
		keys[k] = true
	}
	for _, k := range allowLists[models.NormalizeComponentType(componentType)] {
		keys[k] = true
	}
	return keys
}

// blockedKey returns a non-empty reason when the key must never pass,
// regardless of allow-list membership.
func blockedKey(key string) string {
	if handlerKeyPattern.MatchString(key) {
		return "event_handler_key"
	}
	if strings.HasPrefix(key, "__") {
		return "dunder_key"
	}
	if strings.HasPrefix(strings.ToLower(key), "dangerously") {
		return "dangerous_key"
	}
	return ""
}

func unsafeValue(value string) bool {
	lower := strings.ToLower(value)
	return strings.Contains(lower, "<script") || strings.Contains(lower, "javascript:")
}

func (s *Sanitizer) drop(componentType, key, reason string) {
	metrics.SanitizerDroppedPropsTotal.WithLabelValues(reason).Inc()
	s.log.Debugw("Dropped component prop",
		"component_type", componentType,
		"prop", key,
		"reason", reason,
	)
}
