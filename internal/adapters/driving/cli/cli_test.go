package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driving"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		noDiff = false
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// --- Mock implementations of the driving ports ---

type mockRewriteService struct {
	summary *domain.RunSummary
	err     error
	got     driving.RewriteOptions
}

func (m *mockRewriteService) Rewrite(_ context.Context, opts driving.RewriteOptions) (*domain.RunSummary, error) {
	m.got = opts
	return m.summary, m.err
}

type mockSubmitService struct {
	summary *domain.SubmitSummary
	err     error
}

func (m *mockSubmitService) Submit(_ context.Context) (*domain.SubmitSummary, error) {
	return m.summary, m.err
}

type mockSettingsService struct {
	settings domain.Settings
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) GetDefaults() domain.Settings {
	return domain.DefaultSettings()
}

type mockExtractService struct {
	extraction domain.Extraction
	failure    *domain.SyntaxFailure
	got        domain.Document
}

func (m *mockExtractService) Extract(doc domain.Document) (domain.Extraction, *domain.SyntaxFailure, error) {
	m.got = doc
	return m.extraction, m.failure, nil
}

type mockResolver struct {
	sources map[string]*domain.SpecSource
}

func (m *mockResolver) Resolve(_ context.Context, url string) (*domain.SpecSource, error) {
	if s, ok := m.sources[url]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}
