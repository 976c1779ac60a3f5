// Package chunker divides text into ordered pieces by line count or byte size.
//
// Both algorithms are lossless: concatenating the returned pieces in order
// reproduces the input byte for byte. Empty input yields no pieces and no
// piece is ever empty.
package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/split-engine/internal/core/domain"
)

// Split divides text with the algorithm selected by mode.
// size is a line count for domain.ModeLines and a byte count for domain.ModeSize.
func Split(text string, mode domain.Mode, size int) ([]domain.Piece, error) {
	var (
		parts []string
		err   error
	)

	switch mode {
	case domain.ModeLines:
		parts, err = SplitByLines(text, size)
	case domain.ModeSize:
		parts, err = SplitBySize(text, size)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}
	if err != nil {
		return nil, err
	}

	return NewPieces(parts...), nil
}

// NewPieces numbers texts from 1 and counts their code points.
func NewPieces(texts ...string) []domain.Piece {
	pieces := make([]domain.Piece, len(texts))
	for i, text := range texts {
		pieces[i] = domain.Piece{
			Index:       i + 1,
			ID:          domain.PieceID(i + 1),
			Text:        text,
			LengthChars: utf8.RuneCountInString(text),
		}
	}
	return pieces
}

// SplitByLines groups consecutive lines, n per piece. Each line keeps its
// terminator. "\r\n" is one terminator; "\n", "\r", "\v", "\f", the
// separators 0x1C-0x1E, U+0085, U+2028 and U+2029 each end a line on their
// own. The last piece holds whatever lines remain.
func SplitByLines(text string, n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: lines must be > 0", domain.ErrInvalidParameter)
	}

	var pieces []string
	start, count := 0, 0

	for i := 0; i < len(text); i++ {
		end := terminatorEnd(text, i)
		if end < 0 {
			continue
		}
		i = end - 1

		count++
		if count == n {
			pieces = append(pieces, text[start:end])
			start, count = end, 0
		}
	}

	if start < len(text) {
		pieces = append(pieces, text[start:])
	}

	return pieces, nil
}

// terminatorEnd returns the offset just past the line terminator starting
// at text[i], or -1 if none starts there.
func terminatorEnd(text string, i int) int {
	switch text[i] {
	case '\r':
		if i+1 < len(text) && text[i+1] == '\n' {
			return i + 2
		}
		return i + 1
	case '\n', '\v', '\f', 0x1c, 0x1d, 0x1e:
		return i + 1
	case 0xc2:
		// U+0085
		if strings.HasPrefix(text[i:], "\u0085") {
			return i + 2
		}
	case 0xe2:
		if strings.HasPrefix(text[i:], "\u2028") || strings.HasPrefix(text[i:], "\u2029") {
			return i + 3
		}
	}
	return -1
}

// SplitBySize cuts the UTF-8 encoding of text into windows of at most size
// bytes. A window never ends inside a code point: the cut moves back to the
// start of the straddling code point instead. When a single code point is
// wider than size it becomes a piece of its own, so such a piece may exceed
// size by up to three bytes.
func SplitBySize(text string, size int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: bytes must be > 0", domain.ErrInvalidParameter)
	}

	pieces := make([]string, 0, len(text)/size+1)
	for start := 0; start < len(text); {
		end := start + size
		if end >= len(text) {
			pieces = append(pieces, text[start:])
			break
		}

		cut := boundary(text, start, end)
		pieces = append(pieces, text[start:cut])
		start = cut
	}

	return pieces, nil
}

// boundary returns the cut position nearest to end, at or before it, that
// does not split a valid code point. The result is always > start.
func boundary(text string, start, end int) int {
	lowest := end - (utf8.UTFMax - 1)
	if lowest < start {
		lowest = start
	}

	for r := end; r >= lowest; r-- {
		if !utf8.RuneStart(text[r]) {
			continue
		}
		if r == end {
			return end
		}

		_, width := utf8.DecodeRuneInString(text[r:])
		if r+width <= end {
			// text[end] is a stray continuation byte.
			return end
		}
		if r == start {
			return start + width
		}
		return r
	}

	return end
}
