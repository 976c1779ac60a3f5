package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
)

var fixedTime = time.Date(2026, 5, 6, 7, 8, 9, 123456000, time.UTC)

func fixedClock() time.Time { return fixedTime }

// stubExtractor returns the input bytes as text, or err when set.
type stubExtractor struct {
	exts []string
	err  error
}

func (e *stubExtractor) Name() string         { return "stub" }
func (e *stubExtractor) Extensions() []string { return e.exts }

func (e *stubExtractor) Extract(_ context.Context, raw []byte) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	return string(raw), nil
}

// stubExtractors maps extensions to extractors; missing entries are unavailable.
type stubExtractors struct {
	byExt       map[string]driven.Extractor
	unavailable map[string]bool
}

func newStubExtractors(exts ...string) *stubExtractors {
	r := &stubExtractors{
		byExt:       make(map[string]driven.Extractor),
		unavailable: make(map[string]bool),
	}
	for _, ext := range exts {
		r.byExt[ext] = &stubExtractor{exts: []string{ext}}
	}
	return r
}

func (r *stubExtractors) Lookup(ext string) (driven.Extractor, error) {
	if r.unavailable[ext] {
		return nil, fmt.Errorf("%w: %s", domain.ErrExtractorUnavailable, ext)
	}
	e, ok := r.byExt[ext]
	if !ok {
		return nil, domain.ErrUnsupportedExtension
	}
	return e, nil
}

func (r *stubExtractors) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// failingPacker always fails.
type failingPacker struct{}

func (failingPacker) Pack([]domain.Piece, *domain.Manifest) ([]byte, error) {
	return nil, errors.New("disk full")
}

func (failingPacker) ContentType() string { return "application/zip" }

// numberedLines returns n lines "line 1\n" ... "line n\n".
func numberedLines(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return b.String()
}
