package driving

import (
	"context"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// RewriteService fetches spec sources and rewrites their Web IDL blocks.
type RewriteService interface {
	// Rewrite processes the selected specs and stores the rewritten
	// documents, patches and reports. Failures of single documents are
	// recorded in the summary; only setup failures are returned as errors.
	Rewrite(ctx context.Context, opts RewriteOptions) (*domain.RunSummary, error)
}

// RewriteOptions select and tune a rewrite run.
type RewriteOptions struct {
	// ShortNames limits the run to the named specs. Empty means all.
	ShortNames []string

	// NoDiff disables patch generation.
	NoDiff bool
}
