package driving

import (
	"context"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// SubmitService proposes the output of a rewrite run upstream: pull
// requests for fixed documents and issues for syntax errors.
type SubmitService interface {
	Submit(ctx context.Context) (*domain.SubmitSummary, error)
}
