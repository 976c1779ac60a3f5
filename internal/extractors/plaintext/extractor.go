// Package plaintext extracts text from .txt uploads.
package plaintext

import (
	"context"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor decodes UTF-8 text, replacing invalid byte sequences with U+FFFD.
type Extractor struct{}

// New creates a plain text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return "plaintext"
}

// Extensions returns the handled extensions.
func (e *Extractor) Extensions() []string {
	return []string{".txt"}
}

// Extract decodes raw as UTF-8.
func (e *Extractor) Extract(_ context.Context, raw []byte) (string, error) {
	return Decode(raw)
}

// Decode converts raw to valid UTF-8 with replacement characters.
func Decode(raw []byte) (string, error) {
	out, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrParseFailure, err)
	}
	return string(out), nil
}
