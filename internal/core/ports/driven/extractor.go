package driven

import "github.com/custodia-labs/webidl-updater/internal/core/domain"

// BlockExtractor finds the Web IDL blocks of a document.
type BlockExtractor interface {
	// Extract returns the blocks in document order.
	Extract(doc domain.Document) (domain.Extraction, error)
}
