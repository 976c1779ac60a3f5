// Package envstore overlays SPLITENGINE_* environment variables on top of
// another configuration store.
//
// Variables map onto config keys by upper-casing and replacing dots with
// underscores: SPLITENGINE_SPLIT_DEFAULT_LINES overrides split.default_lines.
// Only variables that are set take effect. Writes go to the underlying store.
package envstore

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/custodia-labs/split-engine/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ConfigStore = (*Store)(nil)

// Prefix is prepended to every variable name.
const Prefix = "SPLITENGINE_"

// overrides lists every overridable key. Pointer fields stay nil when unset.
type overrides struct {
	ServerAddr      *string        `env:"SERVER_ADDR"`
	RateLimit       *float64       `env:"SERVER_RATE_LIMIT"`
	RateBurst       *int           `env:"SERVER_RATE_BURST"`
	ShutdownTimeout *time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT"`
	DefaultLines    *int           `env:"SPLIT_DEFAULT_LINES"`
	DefaultBytes    *int           `env:"SPLIT_DEFAULT_BYTES"`
	Multiplier      *int           `env:"SPLIT_MULTIPLIER"`
	WatchMode       *string        `env:"WATCH_MODE"`
	Backend         *string        `env:"REGISTRY_BACKEND"`
	DataDir         *string        `env:"REGISTRY_DATA_DIR"`
	Disabled        []string       `env:"EXTRACTORS_DISABLED" envSeparator:","`
	Verbose         *bool          `env:"LOGGING_VERBOSE"`
}

// Store is a driven.ConfigStore whose reads prefer environment values.
type Store struct {
	base        driven.ConfigStore
	environment map[string]string
	values      map[string]any
}

// Option configures a Store.
type Option func(*Store)

// WithEnvironment reads variables from env instead of the process environment.
func WithEnvironment(env map[string]string) Option {
	return func(s *Store) {
		s.environment = env
	}
}

// New wraps base with environment overrides.
func New(base driven.ConfigStore, opts ...Option) (*Store, error) {
	s := &Store{base: base}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.parse(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) parse() error {
	var o overrides
	if err := env.ParseWithOptions(&o, env.Options{
		Prefix:      Prefix,
		Environment: s.environment,
	}); err != nil {
		return fmt.Errorf("parsing %s* environment: %w", Prefix, err)
	}

	values := make(map[string]any)
	putString(values, "server.addr", o.ServerAddr)
	if o.RateLimit != nil {
		values["server.rate_limit"] = *o.RateLimit
	}
	putInt(values, "server.rate_burst", o.RateBurst)
	if o.ShutdownTimeout != nil {
		values["server.shutdown_timeout"] = o.ShutdownTimeout.String()
	}
	putInt(values, "split.default_lines", o.DefaultLines)
	putInt(values, "split.default_bytes", o.DefaultBytes)
	putInt(values, "split.multiplier", o.Multiplier)
	putString(values, "watch.mode", o.WatchMode)
	putString(values, "registry.backend", o.Backend)
	putString(values, "registry.data_dir", o.DataDir)
	if o.Disabled != nil {
		values["extractors.disabled"] = o.Disabled
	}
	if o.Verbose != nil {
		values["logging.verbose"] = *o.Verbose
	}

	s.values = values
	return nil
}

func putString(values map[string]any, key string, v *string) {
	if v != nil {
		values[key] = *v
	}
}

func putInt(values map[string]any, key string, v *int) {
	if v != nil {
		values[key] = int64(*v)
	}
}

// VariableName returns the environment variable that overrides key.
func VariableName(key string) string {
	return Prefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Overridden returns the keys currently set from the environment, sorted.
func (s *Store) Overridden() []string {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsOverridden reports whether key comes from the environment.
func (s *Store) IsOverridden(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Get retrieves a value, preferring the environment.
func (s *Store) Get(key string) (any, bool) {
	if v, ok := s.values[key]; ok {
		return v, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string configuration value.
func (s *Store) GetString(key string) string {
	if v, ok := s.values[key].(string); ok {
		return v
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (s *Store) GetInt(key string) int {
	if v, ok := s.values[key].(int64); ok {
		return int(v)
	}
	return s.base.GetInt(key)
}

// GetBool retrieves a boolean configuration value.
func (s *Store) GetBool(key string) bool {
	if v, ok := s.values[key].(bool); ok {
		return v
	}
	return s.base.GetBool(key)
}

// GetStringSlice retrieves a string slice configuration value.
func (s *Store) GetStringSlice(key string) []string {
	if v, ok := s.values[key].([]string); ok {
		return append([]string(nil), v...)
	}
	return s.base.GetStringSlice(key)
}

// Set writes to the underlying store. An environment override for key
// still takes precedence on subsequent reads.
func (s *Store) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Save persists the underlying store.
func (s *Store) Save() error {
	return s.base.Save()
}

// Load reloads the underlying store and re-reads the environment.
func (s *Store) Load() error {
	if err := s.base.Load(); err != nil {
		return err
	}
	return s.parse()
}

// Path returns the underlying configuration file path.
func (s *Store) Path() string {
	return s.base.Path()
}

// Describe renders a value for display, noting environment overrides.
func (s *Store) Describe(key string) string {
	v, ok := s.Get(key)
	if !ok {
		return ""
	}
	var text string
	switch val := v.(type) {
	case []string:
		text = strings.Join(val, ",")
	case float64:
		text = strconv.FormatFloat(val, 'f', -1, 64)
	default:
		text = fmt.Sprint(val)
	}
	if s.IsOverridden(key) {
		text += " (from " + VariableName(key) + ")"
	}
	return text
}
