package extractors

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.ExtractorRegistry = (*Registry)(nil)

// Registry maps extensions to extractors.
type Registry struct {
	mu          sync.RWMutex
	extractors  map[string]driven.Extractor
	unavailable map[string]string
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{
		extractors:  make(map[string]driven.Extractor),
		unavailable: make(map[string]string),
	}
}

// Register adds e for each extension it reports.
// A later registration for the same extension replaces the earlier one.
func (r *Registry) Register(e driven.Extractor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range e.Extensions() {
		ext = normalise(ext)
		r.extractors[ext] = e
		delete(r.unavailable, ext)
	}
}

// MarkUnavailable records ext as known but without a usable extractor.
func (r *Registry) MarkUnavailable(ext, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ext = normalise(ext)
	delete(r.extractors, ext)
	r.unavailable[ext] = reason
}

// Lookup returns the extractor for ext.
func (r *Registry) Lookup(ext string) (driven.Extractor, error) {
	ext = normalise(ext)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if e, ok := r.extractors[ext]; ok {
		return e, nil
	}
	if reason, ok := r.unavailable[ext]; ok {
		return nil, fmt.Errorf("%w: %s support is not available (%s)", domain.ErrExtractorUnavailable, ext, reason)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedExtension, ext)
}

// Has returns true if ext has an available extractor.
func (r *Registry) Has(ext string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.extractors[normalise(ext)]
	return ok
}

// Extensions returns every extension with an available extractor, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.extractors))
	for ext := range r.extractors {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Unavailable returns the known-but-unavailable extensions, sorted.
func (r *Registry) Unavailable() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.unavailable))
	for ext := range r.unavailable {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

func normalise(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
