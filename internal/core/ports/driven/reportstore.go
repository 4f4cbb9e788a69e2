package driven

import (
	"context"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// ReportStore persists the output of rewrite runs and serves it to submit runs.
type ReportStore interface {
	// Reset removes the output of any previous run.
	Reset(ctx context.Context) error

	// SaveText stores the rewritten document.
	SaveText(ctx context.Context, shortName, text string) error

	// SavePatch stores the unified diff of the rewrite.
	SavePatch(ctx context.Context, shortName, patch string) error

	// SaveReport stores the report together with its validation messages.
	// Reports with neither validations nor a syntax failure are rejected
	// with domain.ErrInvalidReport.
	SaveReport(ctx context.Context, shortName string, report *domain.Report) error

	// Report returns the stored report, or domain.ErrNotFound.
	Report(ctx context.Context, shortName string) (*domain.Report, error)

	// Text returns the stored rewritten document, or domain.ErrNotFound.
	Text(ctx context.Context, shortName string) (string, error)
}
