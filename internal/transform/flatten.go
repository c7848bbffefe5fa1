package transform

import (
	"sort"

	"github.com/gracebotly/flowetic-pipeline/pkg/models"
)

// Flatten normalizes an event into a single flat record. The event's own
// top-level fields are written first, then every key of State (nested objects
// expanded to dot notation), then every key of Labels. A merge only fills
// keys that are currently absent or empty, so existing top-level values always
// win and State takes priority over Labels.
func Flatten(ev models.Event) models.FlatEvent {
	flat := make(models.FlatEvent)

	putNonEmpty(flat, "id", ev.ID)
	putNonEmpty(flat, "type", ev.Type)
	putNonEmpty(flat, "name", ev.Name)
	putNonEmpty(flat, "unit", ev.Unit)
	putNonEmpty(flat, "text", ev.Text)
	putNonEmpty(flat, "timestamp", ev.Timestamp)
	putNonEmpty(flat, "created_at", ev.CreatedAt)
	if ev.Value != nil {
		flat["value"] = ev.Value
	}
	if !models.IsEmpty(ev.DurationMS) {
		flat["duration_ms"] = ev.DurationMS
	}

	mergeInto(flat, "", ev.State)
	mergeInto(flat, "", ev.Labels)

	if raw, ok := flat["duration_ms"]; ok {
		if n, numeric := models.NumberOf(raw); numeric {
			flat["duration_ms"] = n
		}
	}

	return flat
}

func putNonEmpty(dst models.FlatEvent, key, value string) {
	if value != "" {
		dst[key] = value
	}
}

// mergeInto walks src in sorted key order so the merge is deterministic even
// when a literal dotted key collides with an expanded nested one.
func mergeInto(dst models.FlatEvent, prefix string, src map[string]interface{}) {
	if len(src) == 0 {
		return
	}

	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}

		if nested, ok := src[key].(map[string]interface{}); ok {
			mergeInto(dst, full, nested)
			continue
		}

		fillIfEmpty(dst, full, src[key])
	}
}

// fillIfEmpty writes only when the destination key is absent, nil, or an
// empty string. First non-empty value wins.
func fillIfEmpty(dst models.FlatEvent, key string, value interface{}) {
	if existing, ok := dst[key]; ok && !models.IsEmpty(existing) {
		return
	}
	if models.IsEmpty(value) {
		return
	}
	dst[key] = value
}
