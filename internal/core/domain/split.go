package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mode selects the chunking algorithm.
type Mode string

// Available split modes.
const (
	// ModeLines splits on line boundaries.
	ModeLines Mode = "lines"

	// ModeSize splits on UTF-8 byte windows.
	ModeSize Mode = "size"
)

// IsValid returns true if the mode is recognised.
func (m Mode) IsValid() bool {
	switch m {
	case ModeLines, ModeSize:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m Mode) String() string {
	return string(m)
}

// Recognised parameter keys.
const (
	ParamLines        = "lines"
	ParamBytes        = "bytes"
	ParamDefaultLines = "default_lines"
	ParamDefaultBytes = "default_bytes"
)

// Built-in split defaults.
const (
	DefaultLines = 250
	DefaultBytes = 200_000

	// DefaultMultiplier is how many default-sized pieces a text must
	// span before splitting is attempted.
	DefaultMultiplier = 2
)

// SkippedBelowThreshold is the manifest reason recorded when splitting is suppressed.
const SkippedBelowThreshold = "file below minimum threshold for selected mode"

// Params holds split parameters exactly as the caller supplied them.
// Values may be Go integers, JSON numbers or numeric strings.
type Params map[string]any

// Int returns the positive integer stored under key, or def when the key is absent.
// A present value that is not a positive integer yields ErrInvalidParameter.
func (p Params) Int(key string, def int) (int, error) {
	raw, ok := p[key]
	if !ok || raw == nil {
		return def, nil
	}

	n, ok := toInt(raw)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidParameter, key, raw)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s must be > 0", ErrInvalidParameter, key)
	}
	return n, nil
}

// Clone returns a shallow copy; a nil Params clones to an empty map.
func (p Params) Clone() Params {
	dst := make(Params, len(p))
	for k, v := range p {
		dst[k] = v
	}
	return dst
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > 1<<53 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// SplitRequest asks for a registered document to be divided into pieces.
type SplitRequest struct {
	// DocumentID identifies the registered document.
	DocumentID string

	// Mode selects the chunking algorithm.
	Mode Mode

	// Params carries chunk sizes and threshold defaults.
	Params Params
}

// Piece is one contiguous fragment of a document's text.
type Piece struct {
	// Index is the 1-based position of the piece.
	Index int

	// ID is Index zero-padded to four digits (e.g. "0001").
	ID string

	// Text is the fragment content.
	Text string

	// LengthChars is the number of Unicode code points in Text.
	LengthChars int
}

// PieceID formats a 1-based index as a piece identifier.
func PieceID(index int) string {
	return fmt.Sprintf("%04d", index)
}
