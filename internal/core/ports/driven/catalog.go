package driven

import (
	"context"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// SourceCatalog lists the specs known to the tool.
type SourceCatalog interface {
	// List returns every catalog entry, ordered by short name.
	List(ctx context.Context) ([]domain.SpecSource, error)
}
