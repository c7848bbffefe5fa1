package constants

import "time"

const (
	DefaultSkillsRoot   = "skills"
	SkillConfigFileName = "field-semantics"
)

const (
	DefaultTableRowLimit   = 50
	PieCategoryLimit       = 6
	FallbackGroupLimit     = 10
	DefaultMaxEventsPerRun = 1000
)

const (
	MetricPlaceholder = "—"
)

const (
	IntervalHour = "hour"
	IntervalDay  = "day"
)

const (
	ShutdownTimeout = 5 * time.Second
)
