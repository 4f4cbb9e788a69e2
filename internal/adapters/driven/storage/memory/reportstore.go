package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

// ReportStore is an in-memory implementation of driven.ReportStore.
type ReportStore struct {
	mu      sync.RWMutex
	texts   map[string]string
	patches map[string]string
	reports map[string]*domain.Report
}

// NewReportStore creates an empty report store.
func NewReportStore() *ReportStore {
	s := &ReportStore{}
	s.clear()
	return s
}

func (s *ReportStore) clear() {
	s.texts = make(map[string]string)
	s.patches = make(map[string]string)
	s.reports = make(map[string]*domain.Report)
}

// Reset removes everything stored.
func (s *ReportStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
	return nil
}

// SaveText stores the rewritten document.
func (s *ReportStore) SaveText(_ context.Context, shortName, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[shortName] = text
	return nil
}

// SavePatch stores the patch.
func (s *ReportStore) SavePatch(_ context.Context, shortName, patch string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.patches[shortName] = patch
	return nil
}

// SaveReport stores a copy of the report.
func (s *ReportStore) SaveReport(_ context.Context, shortName string, report *domain.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *report
	s.reports[shortName] = &cp
	return nil
}

// Report returns the stored report.
func (s *ReportStore) Report(_ context.Context, shortName string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[shortName]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

// Text returns the stored rewritten document.
func (s *ReportStore) Text(_ context.Context, shortName string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.texts[shortName]
	if !ok {
		return "", domain.ErrNotFound
	}
	return text, nil
}

// Patch returns the stored patch.
func (s *ReportStore) Patch(shortName string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patches[shortName]
	return p, ok
}
