package domain

import (
	"slices"
	"time"
)

// Settings holds configuration for rewrite and submit runs.
type Settings struct {
	// OutputDir receives rewritten documents, patches and reports.
	OutputDir string

	// NoDiff disables patch generation.
	NoDiff bool

	// HTMLAllowList names specs whose blocks contain markup but are still rewritten.
	HTMLAllowList []string

	// BrokenSpecs lists spec URLs that are never processed.
	BrokenSpecs []string

	// SourcesFile is the path of the spec source catalog.
	SourcesFile string

	// FetchTimeout bounds a single document fetch.
	FetchTimeout time.Duration

	// FetchConcurrency limits outstanding fetches; zero means one per document.
	FetchConcurrency int

	// GitHubToken authenticates submit runs.
	GitHubToken string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		OutputDir: "rewritten",
		HTMLAllowList: []string{
			"is-input-pending",
			"css-counter-styles-3",
			"webgl1",
			"webgl2",
			"generic-sensor",
			"media-capabilities",
			"mst-content-hint",
		},
		BrokenSpecs: []string{
			"https://w3c.github.io/webappsec-trusted-types/dist/spec/",
			"https://immersive-web.github.io/layers/",
			"https://svgwg.org/specs/paths/",
			"https://svgwg.org/specs/animations/",
		},
		SourcesFile:  "spec-sources.json",
		FetchTimeout: 60 * time.Second,
	}
}

// IsAllowListed reports whether a spec with rich markup may still be rewritten.
func (s Settings) IsAllowListed(shortName string) bool {
	return slices.Contains(s.HTMLAllowList, shortName)
}

// IsBroken reports whether a spec URL is excluded from processing.
func (s Settings) IsBroken(url string) bool {
	return slices.Contains(s.BrokenSpecs, url)
}
