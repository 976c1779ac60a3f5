// Package subtitle extracts cue text from SubRip (.srt) and WebVTT (.vtt)
// subtitle files using go-astisub.
package subtitle

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/asticode/go-astisub"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
	"github.com/custodia-labs/split-engine/internal/extractors/plaintext"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

type parseFunc func(io.Reader) (*astisub.Subtitles, error)

// Extractor handles one subtitle format.
type Extractor struct {
	name  string
	ext   string
	parse parseFunc
}

// NewSRT creates a SubRip extractor.
func NewSRT() *Extractor {
	return &Extractor{name: "srt", ext: ".srt", parse: astisub.ReadFromSRT}
}

// NewVTT creates a WebVTT extractor.
func NewVTT() *Extractor {
	return &Extractor{name: "vtt", ext: ".vtt", parse: astisub.ReadFromWebVTT}
}

// Name returns the extractor name.
func (e *Extractor) Name() string {
	return e.name
}

// Extensions returns the handled extensions.
func (e *Extractor) Extensions() []string {
	return []string{e.ext}
}

// Extract returns cue text. Lines within a cue are joined by "\n" and cues
// by a blank line. Timing and styling are dropped.
func (e *Extractor) Extract(_ context.Context, raw []byte) (string, error) {
	text, err := plaintext.Decode(raw)
	if err != nil {
		return "", err
	}

	subs, err := e.parse(bytes.NewReader([]byte(text)))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrParseFailure, e.name, err)
	}
	if len(subs.Items) == 0 && strings.TrimSpace(stripHeader(text)) != "" {
		return "", fmt.Errorf("%w: %s: no cues found", domain.ErrParseFailure, e.name)
	}

	cues := make([]string, 0, len(subs.Items))
	for _, item := range subs.Items {
		cues = append(cues, cueText(item))
	}
	return strings.Join(cues, "\n\n"), nil
}

func cueText(item *astisub.Item) string {
	lines := make([]string, 0, len(item.Lines))
	for _, line := range item.Lines {
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// stripHeader drops a leading WEBVTT signature line so a header-only file
// counts as empty.
func stripHeader(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	if strings.HasPrefix(text, "WEBVTT") {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			return text[i+1:]
		}
		return ""
	}
	return text
}
