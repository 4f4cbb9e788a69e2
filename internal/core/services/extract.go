package services

import (
	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driving"
)

// Ensure ExtractService implements the interface.
var _ driving.ExtractService = (*ExtractService)(nil)

// ExtractService lists and checks the blocks of a single document.
type ExtractService struct {
	extractor driven.BlockExtractor
	engine    driven.GrammarEngine
}

// NewExtractService creates a new extract service.
func NewExtractService(extractor driven.BlockExtractor, engine driven.GrammarEngine) *ExtractService {
	return &ExtractService{extractor: extractor, engine: engine}
}

// Extract returns the blocks of doc and the first syntax failure among them.
func (s *ExtractService) Extract(doc domain.Document) (domain.Extraction, *domain.SyntaxFailure, error) {
	extraction, err := s.extractor.Extract(doc)
	if err != nil {
		return domain.Extraction{}, nil, err
	}

	for _, block := range extraction.Blocks {
		if _, err := s.engine.Parse(block.Text, block.Tag(doc.ShortName)); err != nil {
			failure := syntaxFailure(err, block.Index)
			return extraction, &failure, nil
		}
	}
	return extraction, nil, nil
}
