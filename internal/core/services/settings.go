package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/split-engine/internal/core/domain"
	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
	"github.com/custodia-labs/split-engine/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyServerAddr       = "server.addr"
	KeyServerRateLimit  = "server.rate_limit"
	KeyServerRateBurst  = "server.rate_burst"
	KeyServerShutdown   = "server.shutdown_timeout"
	KeySplitLines       = "split.default_lines"
	KeySplitBytes       = "split.default_bytes"
	KeySplitMultiplier  = "split.multiplier"
	KeyWatchMode        = "watch.mode"
	KeyRegistryBackend  = "registry.backend"
	KeyRegistryDataDir  = "registry.data_dir"
	KeyDisabledExtracts = "extractors.disabled"
	KeyLoggingVerbose   = "logging.verbose"
)

type keyKind int

const (
	kindString keyKind = iota
	kindInt
	kindFloat
	kindBool
	kindDuration
	kindList
)

var knownKeys = map[string]keyKind{
	KeyServerAddr:       kindString,
	KeyServerRateLimit:  kindFloat,
	KeyServerRateBurst:  kindInt,
	KeyServerShutdown:   kindDuration,
	KeySplitLines:       kindInt,
	KeySplitBytes:       kindInt,
	KeySplitMultiplier:  kindInt,
	KeyWatchMode:        kindString,
	KeyRegistryBackend:  kindString,
	KeyRegistryDataDir:  kindString,
	KeyDisabledExtracts: kindList,
	KeyLoggingVerbose:   kindBool,
}

// KnownKeys returns every recognised configuration key, sorted.
func KnownKeys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or mistyped keys fall back to defaults; the result is validated.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			Addr:            s.getString(KeyServerAddr, defaults.Server.Addr),
			RateLimit:       s.getFloat(KeyServerRateLimit, defaults.Server.RateLimit),
			RateBurst:       s.getInt(KeyServerRateBurst, defaults.Server.RateBurst),
			ShutdownTimeout: s.getDuration(KeyServerShutdown, defaults.Server.ShutdownTimeout),
		},
		Split: domain.SplitSettings{
			DefaultLines: s.getInt(KeySplitLines, defaults.Split.DefaultLines),
			DefaultBytes: s.getInt(KeySplitBytes, defaults.Split.DefaultBytes),
			Multiplier:   s.getInt(KeySplitMultiplier, defaults.Split.Multiplier),
			WatchMode:    domain.Mode(s.getString(KeyWatchMode, defaults.Split.WatchMode.String())),
		},
		Registry: domain.RegistrySettings{
			Backend: domain.RegistryBackend(s.getString(KeyRegistryBackend, defaults.Registry.Backend.String())),
			DataDir: s.configStore.GetString(KeyRegistryDataDir),
		},
		Extractors: domain.ExtractorSettings{
			Disabled: normaliseExtensions(s.configStore.GetStringSlice(KeyDisabledExtracts)),
		},
		Logging: domain.LoggingSettings{
			Verbose: s.configStore.GetBool(KeyLoggingVerbose),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Set parses value according to the key's type and persists it.
func (s *SettingsService) Set(key string, value any) error {
	kind, ok := knownKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	parsed, err := parseValue(kind, value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Lookup returns the effective value of key as text.
func (s *SettingsService) Lookup(key string) (string, bool) {
	val, ok := s.configStore.Get(key)
	if !ok {
		return "", false
	}
	if list, ok := val.([]string); ok {
		return strings.Join(list, ","), true
	}
	return fmt.Sprintf("%v", val), true
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return def
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	val, ok := s.configStore.Get(key)
	if !ok {
		return def
	}
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return def
	}
}

func (s *SettingsService) getDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s.configStore.GetString(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// parseValue converts CLI or API input into the stored representation.
func parseValue(kind keyKind, value any) (any, error) {
	str, isString := value.(string)
	if !isString {
		return value, nil
	}

	switch kind {
	case kindInt:
		return strconv.ParseInt(strings.TrimSpace(str), 10, 64)
	case kindFloat:
		return strconv.ParseFloat(strings.TrimSpace(str), 64)
	case kindBool:
		return strconv.ParseBool(strings.TrimSpace(str))
	case kindDuration:
		if _, err := time.ParseDuration(str); err != nil {
			return nil, err
		}
		return str, nil
	case kindList:
		return normaliseExtensions(strings.Split(str, ",")), nil
	default:
		return str, nil
	}
}

// normaliseExtensions lowercases entries and ensures a leading dot.
func normaliseExtensions(in []string) []string {
	var out []string
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
