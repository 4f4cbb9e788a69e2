package driving

import (
	"context"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// SourceResolver guesses where the source of a published spec lives.
type SourceResolver interface {
	// Resolve returns the catalog entry for specURL, or domain.ErrNotFound.
	Resolve(ctx context.Context, specURL string) (*domain.SpecSource, error)
}
