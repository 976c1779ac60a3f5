package driving

import "github.com/custodia-labs/split-engine/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings with environment overrides applied.
	Get() (*domain.AppSettings, error)

	// Set stores a single configuration key.
	Set(key string, value any) error

	// Lookup returns the effective value of a single key as text.
	Lookup(key string) (string, bool)

	// Path returns the configuration file path.
	Path() string

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
