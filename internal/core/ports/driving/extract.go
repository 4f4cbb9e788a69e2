package driving

import "github.com/custodia-labs/webidl-updater/internal/core/domain"

// ExtractService lists the Web IDL blocks of a local document.
type ExtractService interface {
	// Extract returns the blocks of the document together with the
	// syntax failure of the first block that does not parse, if any.
	Extract(doc domain.Document) (domain.Extraction, *domain.SyntaxFailure, error)
}
