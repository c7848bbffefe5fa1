package logging

import (
	"fmt"
	"os"
)

// StartupLog reports failures that happen before the structured logger
// exists, such as flag or config errors during boot.
type StartupLog struct {
	name string
}

func NewStartupLog(name string) *StartupLog {
	return &StartupLog{name: name}
}

func (l *StartupLog) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", l.name, fmt.Sprintf(format, args...))
}

func (l *StartupLog) Warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s: warning: %s\n", l.name, fmt.Sprintf(format, args...))
}
