package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
)

// Ensure Catalog implements the interface.
var _ driven.SourceCatalog = (*Catalog)(nil)

// TestEnv selects the built-in test catalog when set to a non-empty value.
const TestEnv = "WEBIDL_UPDATER_TEST"

// TestSource is the only entry of the test catalog.
var TestSource = domain.SpecSource{
	ShortName: "test-spec",
	URL:       "https://raw.githubusercontent.com/saschanaz/test-spec/master/index.html",
	Source:    "https://github.com/saschanaz/test-spec/blob/HEAD/index.html",
	GitHub: &domain.GitHubInfo{
		Owner: "saschanaz",
		Repo:  "test-spec",
		Path:  "index.html",
	},
}

// Catalog reads spec sources from a JSON file.
type Catalog struct {
	path   string
	getenv func(string) string
}

// New creates a catalog reading path.
func New(path string) *Catalog {
	return &Catalog{path: path, getenv: os.Getenv}
}

// Path returns the catalog file path.
func (c *Catalog) Path() string {
	return c.path
}

// List returns every entry ordered by short name.
func (c *Catalog) List(_ context.Context) ([]domain.SpecSource, error) {
	if c.getenv(TestEnv) != "" {
		return []domain.SpecSource{TestSource}, nil
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog. Entries missing a URL take their key; entries
// missing GitHub information get it from a github.com source URL.
func Parse(data []byte) ([]domain.SpecSource, error) {
	var entries map[string]domain.SpecSource
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	sources := make([]domain.SpecSource, 0, len(entries))
	for key, s := range entries {
		if s.ShortName == "" {
			return nil, fmt.Errorf("catalog entry %s: missing shortName: %w", key, domain.ErrInvalidInput)
		}
		if s.URL == "" {
			s.URL = key
		}
		if s.GitHub == nil && s.Source != "" {
			if info, err := ParseGitHubURL(s.Source); err == nil && info.Path != "" {
				s.GitHub = info
			}
		}
		sources = append(sources, s)
	}

	slices.SortFunc(sources, func(a, b domain.SpecSource) int {
		return strings.Compare(a.ShortName, b.ShortName)
	})
	return sources, nil
}

// Select returns the sources with the given short names, in catalog order.
// No names selects everything. Unknown names are an error.
func Select(sources []domain.SpecSource, names []string) ([]domain.SpecSource, error) {
	if len(names) == 0 {
		return sources, nil
	}

	var selected []domain.SpecSource
	for _, s := range sources {
		if slices.Contains(names, s.ShortName) {
			selected = append(selected, s)
		}
	}
	for _, name := range names {
		if !slices.ContainsFunc(selected, func(s domain.SpecSource) bool { return s.ShortName == name }) {
			return nil, fmt.Errorf("spec %q: %w", name, domain.ErrNotFound)
		}
	}
	return selected, nil
}
