package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/webidl-updater/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

func TestSettingsService_Defaults(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore(nil))
	svc.getenv = func(string) string { return "" }

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), *settings)
	assert.Equal(t, domain.DefaultSettings(), svc.GetDefaults())
}

func TestSettingsService_Overrides(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		keyOutputDir:        "out",
		keyNoDiff:           true,
		keyHTMLAllowList:    []string{"html"},
		keyBrokenSpecs:      []string{},
		keySourcesFile:      "sources.json",
		keyFetchTimeout:     int64(5),
		keyFetchConcurrency: 4,
		keyGitHubToken:      "configured",
	})
	svc := NewSettingsService(store)
	svc.getenv = func(string) string { return "from-env" }

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "out", settings.OutputDir)
	assert.True(t, settings.NoDiff)
	assert.Equal(t, []string{"html"}, settings.HTMLAllowList)
	assert.Empty(t, settings.BrokenSpecs)
	assert.Equal(t, "sources.json", settings.SourcesFile)
	assert.Equal(t, 5*time.Second, settings.FetchTimeout)
	assert.Equal(t, 4, settings.FetchConcurrency)
	assert.Equal(t, "configured", settings.GitHubToken)
}

func TestSettingsService_TokenFromEnvironment(t *testing.T) {
	svc := NewSettingsService(memory.NewConfigStore(nil))
	svc.getenv = func(key string) string {
		if key == TokenEnv {
			return "from-env"
		}
		return ""
	}

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, "from-env", settings.GitHubToken)
}
