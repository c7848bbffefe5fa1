package skills

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gracebotly/flowetic-pipeline/internal/constants"
	"github.com/gracebotly/flowetic-pipeline/internal/logger"
	"github.com/gracebotly/flowetic-pipeline/pkg/metrics"
)

// Loader reads and memoizes per-platform field-semantics configs. A missing
// file is not an error: the platform simply runs heuristic-only, and the nil
// result is cached like any other. Parse or validation failures are returned
// loudly and never cached, so a fixed file is picked up on the next call.
//
// The cache lives for the process lifetime until Invalidate. It is safe for
// concurrent use; a first-load race at worst parses the same file twice.
type Loader struct {
	root  string
	log   logger.Logger
	mu    sync.RWMutex
	cache map[string]*cacheEntry
}

type cacheEntry struct {
	cfg *PlatformConfig
}

func NewLoader(root string, log logger.Logger) *Loader {
	if root == "" {
		root = constants.DefaultSkillsRoot
	}
	return &Loader{
		root:  root,
		log:   log,
		cache: make(map[string]*cacheEntry),
	}
}

// Load returns the platform's config, or (nil, nil) when no field-semantics
// file exists for it.
func (l *Loader) Load(platform string) (*PlatformConfig, error) {
	key := strings.ToLower(strings.TrimSpace(platform))
	if key == "" {
		return nil, nil
	}

	l.mu.RLock()
	entry, cached := l.cache[key]
	l.mu.RUnlock()
	if cached {
		metrics.SkillConfigLoadsTotal.WithLabelValues(key, "cached").Inc()
		return entry.cfg, nil
	}

	src, path, err := l.readConfigFile(key)
	if err != nil {
		metrics.SkillConfigLoadsTotal.WithLabelValues(key, "error").Inc()
		return nil, err
	}
	if src == nil {
		l.log.Debugw("No field-semantics config for platform, using heuristics only",
			"platform", key,
		)
		metrics.SkillConfigLoadsTotal.WithLabelValues(key, "missing").Inc()
		l.store(key, nil)
		return nil, nil
	}

	doc, err := parseDocument(string(src))
	if err != nil {
		metrics.SkillConfigLoadsTotal.WithLabelValues(key, "invalid").Inc()
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg, err := buildConfig(doc)
	if err != nil {
		metrics.SkillConfigLoadsTotal.WithLabelValues(key, "invalid").Inc()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.log.Infow("Loaded field-semantics config",
		"platform", key,
		"version", cfg.Version,
		"rules", len(cfg.FieldRules),
	)
	metrics.SkillConfigLoadsTotal.WithLabelValues(key, "loaded").Inc()
	l.store(key, cfg)
	return cfg, nil
}

// Invalidate clears cached configs. With no arguments the whole cache is
// dropped; otherwise only the named platforms.
func (l *Loader) Invalidate(platforms ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(platforms) == 0 {
		l.cache = make(map[string]*cacheEntry)
		return
	}

	for _, p := range platforms {
		delete(l.cache, strings.ToLower(strings.TrimSpace(p)))
	}
}

func (l *Loader) store(key string, cfg *PlatformConfig) {
	l.mu.Lock()
	l.cache[key] = &cacheEntry{cfg: cfg}
	l.mu.Unlock()
}

// readConfigFile tries the .yaml then .yml spelling. A nil byte slice with a
// nil error means no file exists.
func (l *Loader) readConfigFile(platform string) ([]byte, string, error) {
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(l.root, platform, constants.SkillConfigFileName+ext)
		src, err := os.ReadFile(path)
		if err == nil {
			return src, path, nil
		}
		if !os.IsNotExist(err) {
			return nil, path, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	return nil, "", nil
}
