package services

import (
	"os"
	"time"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyOutputDir        = "rewrite.output_dir"
	keyNoDiff           = "rewrite.no_diff"
	keyHTMLAllowList    = "rewrite.html_allowlist"
	keyBrokenSpecs      = "rewrite.broken_specs"
	keySourcesFile      = "sources.file"
	keyFetchTimeout     = "fetch.timeout_seconds"
	keyFetchConcurrency = "fetch.concurrency"
	keyGitHubToken      = "github.token"
)

// TokenEnv is the environment variable consulted when no token is configured.
const TokenEnv = "GH_TOKEN"

// SettingsService maps configuration keys to settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		OutputDir:        s.getString(keyOutputDir, defaults.OutputDir),
		NoDiff:           s.getBool(keyNoDiff, defaults.NoDiff),
		HTMLAllowList:    s.getStrings(keyHTMLAllowList, defaults.HTMLAllowList),
		BrokenSpecs:      s.getStrings(keyBrokenSpecs, defaults.BrokenSpecs),
		SourcesFile:      s.getString(keySourcesFile, defaults.SourcesFile),
		FetchTimeout:     defaults.FetchTimeout,
		FetchConcurrency: s.getInt(keyFetchConcurrency, defaults.FetchConcurrency),
		GitHubToken:      s.configStore.GetString(keyGitHubToken),
	}
	if secs := s.configStore.GetInt(keyFetchTimeout); secs > 0 {
		settings.FetchTimeout = time.Duration(secs) * time.Second
	}
	if settings.GitHubToken == "" {
		settings.GitHubToken = s.getenv(TokenEnv)
	}

	return settings, nil
}

// GetDefaults returns the default settings.
func (s *SettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getStrings(key string, defaultVal []string) []string {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetStringSlice(key)
}
