package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
)

// Ensure ReportStore implements the interface.
var _ driven.ReportStore = (*ReportStore)(nil)

const (
	patchExt       = ".patch"
	validationsExt = ".validations.txt"
	unresolvedExt  = ".unresolved.txt"
	reportExt      = ".report.json"
)

// ReportStore writes run output to a directory.
type ReportStore struct {
	dir string
}

// NewReportStore creates a store writing to dir.
func NewReportStore(dir string) *ReportStore {
	return &ReportStore{dir: dir}
}

// Dir returns the output directory.
func (s *ReportStore) Dir() string {
	return s.dir
}

// Reset empties the output directory, creating it if needed.
func (s *ReportStore) Reset(_ context.Context) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read output dir: %w", err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(s.dir, e.Name())); err != nil {
			return fmt.Errorf("clear output dir: %w", err)
		}
	}
	return nil
}

// SaveText writes <name>.
func (s *ReportStore) SaveText(_ context.Context, shortName, text string) error {
	return s.write(shortName, text)
}

// SavePatch writes <name>.patch.
func (s *ReportStore) SavePatch(_ context.Context, shortName, patch string) error {
	return s.write(shortName+patchExt, patch)
}

// SaveReport writes <name>.report.json and, for reports with validations,
// <name>.validations.txt. Validations without an applied fix are also
// written to <name>.unresolved.txt.
func (s *ReportStore) SaveReport(_ context.Context, shortName string, report *domain.Report) error {
	if err := report.Validate(); err != nil {
		return fmt.Errorf("%s: %w", shortName, err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report %s: %w", shortName, err)
	}
	if err := s.write(shortName+reportExt, string(data)+"\n"); err != nil {
		return err
	}
	if report.IsSyntax() {
		return nil
	}
	if err := s.write(shortName+validationsExt, report.Messages()); err != nil {
		return err
	}
	if unresolved := report.Unresolved(); len(unresolved) > 0 {
		return s.write(shortName+unresolvedExt, domain.JoinMessages(unresolved))
	}
	return nil
}

// Report reads <name>.report.json.
func (s *ReportStore) Report(_ context.Context, shortName string) (*domain.Report, error) {
	data, err := s.read(shortName + reportExt)
	if err != nil {
		return nil, err
	}
	var report domain.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("parse report %s: %w", shortName, err)
	}
	return &report, nil
}

// Text reads <name>.
func (s *ReportStore) Text(_ context.Context, shortName string) (string, error) {
	return s.read(shortName)
}

func (s *ReportStore) write(name, content string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *ReportStore) read(name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}
