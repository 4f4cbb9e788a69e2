package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

func TestReportStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()

	require.NoError(t, store.SaveText(ctx, "dom", "text"))
	require.NoError(t, store.SavePatch(ctx, "dom", "patch"))
	require.NoError(t, store.SaveReport(ctx, "dom", domain.NewValidationReport("run", nil, true, false)))

	text, err := store.Text(ctx, "dom")
	require.NoError(t, err)
	assert.Equal(t, "text", text)

	patch, ok := store.Patch("dom")
	assert.True(t, ok)
	assert.Equal(t, "patch", patch)

	report, err := store.Report(ctx, "dom")
	require.NoError(t, err)
	assert.True(t, report.Diff)
	assert.Empty(t, report.Validations)
}

func TestReportStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()

	_, err := store.Report(ctx, "dom")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = store.Text(ctx, "dom")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportStore_RejectsEmptyReport(t *testing.T) {
	err := NewReportStore().SaveReport(context.Background(), "dom", &domain.Report{})
	assert.ErrorIs(t, err, domain.ErrInvalidReport)
}

func TestReportStore_Reset(t *testing.T) {
	ctx := context.Background()
	store := NewReportStore()
	require.NoError(t, store.SaveText(ctx, "dom", "text"))

	require.NoError(t, store.Reset(ctx))

	_, err := store.Text(ctx, "dom")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConfigStore(t *testing.T) {
	store := NewConfigStore(map[string]any{
		"a": "x",
		"b": 3,
		"c": int64(4),
		"d": true,
		"e": []string{"y"},
	})

	assert.Equal(t, "x", store.GetString("a"))
	assert.Equal(t, 3, store.GetInt("b"))
	assert.Equal(t, 4, store.GetInt("c"))
	assert.True(t, store.GetBool("d"))
	assert.Equal(t, []string{"y"}, store.GetStringSlice("e"))
	assert.Empty(t, store.GetString("b"))

	store.Set("a", "z")
	assert.Equal(t, "z", store.GetString("a"))
	assert.NoError(t, store.Load())
	assert.Empty(t, store.Path())
}
