package driven

import (
	"context"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// Fetcher retrieves spec sources.
type Fetcher interface {
	// Fetch downloads the raw source of a spec. Failures are reported as
	// *domain.FetchError.
	Fetch(ctx context.Context, source domain.SpecSource) (domain.Document, error)

	// Exists reports whether url answers a HEAD request successfully.
	Exists(ctx context.Context, url string) (bool, error)
}
