package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/split-engine/internal/core/domain"
)

// ThresholdPolicy suppresses splitting for texts that would only produce a
// handful of pieces at the default chunk size.
type ThresholdPolicy struct {
	// Multiplier is how many default-sized pieces the text must span.
	Multiplier int

	// DefaultLines applies when the request has no default_lines.
	DefaultLines int

	// DefaultBytes applies when the request has no default_bytes.
	DefaultBytes int
}

// NewThresholdPolicy builds a policy from configured split settings.
func NewThresholdPolicy(cfg domain.SplitSettings) ThresholdPolicy {
	return ThresholdPolicy{
		Multiplier:   cfg.Multiplier,
		DefaultLines: cfg.DefaultLines,
		DefaultBytes: cfg.DefaultBytes,
	}
}

// DefaultThresholdPolicy uses the built-in multiplier and defaults.
func DefaultThresholdPolicy() ThresholdPolicy {
	return ThresholdPolicy{
		Multiplier:   domain.DefaultMultiplier,
		DefaultLines: domain.DefaultLines,
		DefaultBytes: domain.DefaultBytes,
	}
}

// ShouldSkip reports whether text is too small to split in mode.
// The thresholds come from default_lines/default_bytes in params, never
// from the lines/bytes values used for the split itself.
func (p ThresholdPolicy) ShouldSkip(text string, mode domain.Mode, params domain.Params) (bool, error) {
	switch mode {
	case domain.ModeLines:
		defaultLines, err := params.Int(domain.ParamDefaultLines, p.DefaultLines)
		if err != nil {
			return false, err
		}
		return CountLines(text) < p.Multiplier*defaultLines, nil
	case domain.ModeSize:
		defaultBytes, err := params.Int(domain.ParamDefaultBytes, p.DefaultBytes)
		if err != nil {
			return false, err
		}
		return len(text) < p.Multiplier*defaultBytes, nil
	default:
		return false, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}
}

// CountLines returns the number of "\n" terminators plus one.
func CountLines(text string) int {
	return strings.Count(text, "\n") + 1
}
