package driving

import "github.com/custodia-labs/askpdf/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get resolves current settings from configuration, falling back to defaults.
	Get() (domain.Settings, error)

	// Set validates and stores a single configuration key.
	Set(key, value string) error

	// Unset removes a key so its default applies again.
	Unset(key string) error

	// List returns every known key with its effective value.
	List() ([]SettingEntry, error)

	// GetDefaults returns default settings.
	GetDefaults() domain.Settings
}

// SettingEntry is one configuration key with its effective value.
type SettingEntry struct {
	Key     string `json:"key" yaml:"key"`
	Value   string `json:"value" yaml:"value"`
	Default bool   `json:"default" yaml:"default"`
}
