package driving

import "github.com/custodia-labs/webidl-updater/internal/core/domain"

// SettingsService provides access to application settings.
type SettingsService interface {
	// Get retrieves current settings, with defaults for unset keys.
	Get() (*domain.Settings, error)

	// GetDefaults returns the default settings.
	GetDefaults() domain.Settings
}
