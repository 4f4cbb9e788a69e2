package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

func TestReportStore_Reset(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "rewritten")
	store := NewReportStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Reset(ctx))
	require.NoError(t, store.SaveText(ctx, "dom", "old"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "stale"), 0755))

	require.NoError(t, store.Reset(ctx))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, dir, store.Dir())
}

func TestReportStore_ValidationReport(t *testing.T) {
	dir := t.TempDir()
	store := NewReportStore(dir)
	ctx := context.Background()

	report := domain.NewValidationReport("run-1", []domain.Validation{
		{Block: 0, Rule: "replace-void", Level: domain.LevelError, Message: "first", Autofixed: true},
		{Block: 1, Rule: "no-duplicate", Level: domain.LevelError, Message: "second"},
	}, true, false)

	require.NoError(t, store.SaveText(ctx, "dom", "rewritten"))
	require.NoError(t, store.SavePatch(ctx, "dom", "patch"))
	require.NoError(t, store.SaveReport(ctx, "dom", report))

	messages, err := os.ReadFile(filepath.Join(dir, "dom.validations.txt"))
	require.NoError(t, err)
	assert.Equal(t, "first\n\nsecond", string(messages))

	unresolved, err := os.ReadFile(filepath.Join(dir, "dom.unresolved.txt"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(unresolved))

	patch, err := os.ReadFile(filepath.Join(dir, "dom.patch"))
	require.NoError(t, err)
	assert.Equal(t, "patch", string(patch))

	got, err := store.Report(ctx, "dom")
	require.NoError(t, err)
	assert.Equal(t, report, got)

	text, err := store.Text(ctx, "dom")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", text)
}

func TestReportStore_SyntaxReport(t *testing.T) {
	dir := t.TempDir()
	store := NewReportStore(dir)
	ctx := context.Background()

	report := domain.NewSyntaxReport("run-1", domain.SyntaxFailure{Block: 2, Context: "ctx", BareMessage: "msg"})
	require.NoError(t, store.SaveReport(ctx, "css", report))

	_, err := os.Stat(filepath.Join(dir, "css.validations.txt"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "css.unresolved.txt"))
	assert.True(t, os.IsNotExist(err))

	got, err := store.Report(ctx, "css")
	require.NoError(t, err)
	require.True(t, got.IsSyntax())
	assert.Equal(t, "msg", got.Syntax.BareMessage)
}

func TestReportStore_RejectsEmptyReport(t *testing.T) {
	store := NewReportStore(t.TempDir())
	err := store.SaveReport(context.Background(), "dom", &domain.Report{})
	assert.ErrorIs(t, err, domain.ErrInvalidReport)
}

func TestReportStore_NotFound(t *testing.T) {
	store := NewReportStore(t.TempDir())
	ctx := context.Background()

	_, err := store.Report(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Text(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportStore_InvalidReportFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dom.report.json"), []byte(`{"diff": true}`), 0644))

	_, err := NewReportStore(dir).Report(context.Background(), "dom")
	assert.ErrorIs(t, err, domain.ErrInvalidReport)
}
