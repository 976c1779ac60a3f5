package domain

import (
	"fmt"
	"time"
)

// RegistryBackend selects the document registry implementation.
type RegistryBackend string

// Available registry backends.
const (
	// RegistryMemory keeps documents for the process lifetime only.
	RegistryMemory RegistryBackend = "memory"

	// RegistrySQLite persists documents in a local SQLite database.
	RegistrySQLite RegistryBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b RegistryBackend) IsValid() bool {
	switch b {
	case RegistryMemory, RegistrySQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b RegistryBackend) String() string {
	return string(b)
}

// ServerSettings holds HTTP transport configuration.
type ServerSettings struct {
	// Addr is the listen address (host:port).
	Addr string

	// RateLimit is the sustained request rate per second. Zero disables limiting.
	RateLimit float64

	// RateBurst is the token bucket size.
	RateBurst int

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// SplitSettings holds threshold and chunk size defaults.
type SplitSettings struct {
	// DefaultLines is used when a request omits lines or default_lines.
	DefaultLines int

	// DefaultBytes is used when a request omits bytes or default_bytes.
	DefaultBytes int

	// Multiplier is the threshold multiplier.
	Multiplier int

	// WatchMode is the split mode used by the directory watcher.
	WatchMode Mode
}

// RegistrySettings holds document registry configuration.
type RegistrySettings struct {
	Backend RegistryBackend

	// DataDir is where the SQLite database lives. Empty means ~/.splitengine/data.
	DataDir string
}

// ExtractorSettings holds extractor capability configuration.
type ExtractorSettings struct {
	// Disabled lists extensions whose extractor is switched off.
	Disabled []string
}

// LoggingSettings holds logging configuration.
type LoggingSettings struct {
	Verbose bool
}

// AppSettings holds all application configuration.
type AppSettings struct {
	Server     ServerSettings
	Split      SplitSettings
	Registry   RegistrySettings
	Extractors ExtractorSettings
	Logging    LoggingSettings
}

// DefaultAppSettings returns the built-in configuration.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			Addr:            "127.0.0.1:8080",
			RateLimit:       20,
			RateBurst:       40,
			ShutdownTimeout: 10 * time.Second,
		},
		Split: SplitSettings{
			DefaultLines: DefaultLines,
			DefaultBytes: DefaultBytes,
			Multiplier:   DefaultMultiplier,
			WatchMode:    ModeLines,
		},
		Registry: RegistrySettings{
			Backend: RegistryMemory,
		},
	}
}

// Validate checks that settings are usable.
func (s *AppSettings) Validate() error {
	if s.Split.DefaultLines <= 0 {
		return fmt.Errorf("%w: split.default_lines must be > 0", ErrInvalidParameter)
	}
	if s.Split.DefaultBytes <= 0 {
		return fmt.Errorf("%w: split.default_bytes must be > 0", ErrInvalidParameter)
	}
	if s.Split.Multiplier <= 0 {
		return fmt.Errorf("%w: split.multiplier must be > 0", ErrInvalidParameter)
	}
	if !s.Split.WatchMode.IsValid() {
		return fmt.Errorf("%w: watch.mode %q", ErrInvalidMode, s.Split.WatchMode)
	}
	if !s.Registry.Backend.IsValid() {
		return fmt.Errorf("%w: registry.backend %q", ErrInvalidParameter, s.Registry.Backend)
	}
	if s.Server.RateLimit < 0 || s.Server.RateBurst < 0 {
		return fmt.Errorf("%w: server rate limits must be >= 0", ErrInvalidParameter)
	}
	return nil
}
