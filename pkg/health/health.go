package health

import (
	"context"
	"fmt"
	"os"
	"time"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
)

type Checker interface {
	Check(ctx context.Context) error
	Name() string
}

type Health struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

type CheckResult struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

type CheckerRegistry struct {
	checkers []Checker
}

func NewCheckerRegistry() *CheckerRegistry {
	return &CheckerRegistry{}
}

func (r *CheckerRegistry) Register(c Checker) {
	r.checkers = append(r.checkers, c)
}

func (r *CheckerRegistry) Check(ctx context.Context) Health {
	h := Health{
		Status:    StatusHealthy,
		Timestamp: time.Now().UTC(),
		Checks:    make(map[string]CheckResult, len(r.checkers)),
	}

	for _, checker := range r.checkers {
		result := CheckResult{Status: StatusHealthy}
		if err := checker.Check(ctx); err != nil {
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			h.Status = StatusUnhealthy
		}
		h.Checks[checker.Name()] = result
	}

	return h
}

// DirectoryChecker verifies a directory the service depends on, such as the
// skills root, exists and is readable.
type DirectoryChecker struct {
	name string
	path string
}

func NewDirectoryChecker(name, path string) *DirectoryChecker {
	return &DirectoryChecker{name: name, path: path}
}

func (d *DirectoryChecker) Name() string {
	return d.name
}

func (d *DirectoryChecker) Check(_ context.Context) error {
	info, err := os.Stat(d.path)
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", d.path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", d.path)
	}
	return nil
}
