package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// mockFetcher answers HEAD probes from a set of existing URLs and serves
// fixed pages.
type mockFetcher struct {
	existing map[string]bool
	pages    map[string]string
	probed   []string
}

func (m *mockFetcher) Fetch(_ context.Context, source domain.SpecSource) (domain.Document, error) {
	text, ok := m.pages[source.URL]
	if !ok {
		return domain.Document{}, &domain.FetchError{URL: source.URL, StatusCode: 404}
	}
	return domain.Document{URL: source.URL, Text: text}, nil
}

func (m *mockFetcher) Exists(_ context.Context, url string) (bool, error) {
	m.probed = append(m.probed, url)
	return m.existing[url], nil
}

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		existing  string
		shortName string
	}{
		{
			name:      "drafts org",
			url:       "https://drafts.csswg.org/css-fonts-4/",
			existing:  "https://github.com/w3c/csswg-drafts/blob/master/css-fonts-4/Overview.bs",
			shortName: "css-fonts-4",
		},
		{
			name:      "drafts org adds level suffix",
			url:       "https://drafts.fxtf.org/geometry/",
			existing:  "https://github.com/w3c/fxtf-drafts/blob/master/geometry-1/Overview.bs",
			shortName: "geometry-1",
		},
		{
			name:      "drafts org drops level suffix",
			url:       "https://drafts.csswg.org/cssom-view-1/",
			existing:  "https://github.com/w3c/csswg-drafts/blob/master/cssom-view/Overview.src.html",
			shortName: "cssom-view",
		},
		{
			name:      "whatwg",
			url:       "https://dom.spec.whatwg.org/",
			existing:  "https://github.com/whatwg/dom/blob/master/dom.bs",
			shortName: "dom",
		},
		{
			name:      "khronos",
			url:       "https://www.khronos.org/registry/webgl/specs/latest/1.0/",
			existing:  "https://github.com/KhronosGroup/webgl/blob/master/specs/latest/1.0/index.html",
			shortName: "webgl",
		},
		{
			name:      "github.io root",
			url:       "https://w3c.github.io/paint-timing/",
			existing:  "https://github.com/w3c/paint-timing/blob/master/painttiming.bs",
			shortName: "paint-timing",
		},
		{
			name:      "github.io path",
			url:       "https://wicg.github.io/cookie-store/explainer.html",
			existing:  "https://github.com/wicg/cookie-store/blob/gh-pages/explainer.html",
			shortName: "cookie-store-explainer",
		},
		{
			name:      "cdn",
			url:       "https://rawgit.com/w3c/charter-drafts/gh-pages/spec/",
			existing:  "https://github.com/w3c/charter-drafts/blob/gh-pages/spec/index.html",
			shortName: "charter-drafts",
		},
		{
			name:      "w3c tr",
			url:       "https://www.w3.org/TR/webauthn/",
			existing:  "https://github.com/w3c/webauthn/blob/gh-pages/index.html",
			shortName: "webauthn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &mockFetcher{existing: map[string]bool{tt.existing: true}}
			r := NewResolver(f)

			got, err := r.Resolve(context.Background(), tt.url)

			require.NoError(t, err)
			assert.Equal(t, tt.shortName, got.ShortName)
			assert.Equal(t, tt.url, got.URL)
			assert.Equal(t, tt.existing, got.Source)
			require.NotNil(t, got.GitHub)
		})
	}
}

func TestResolver_EditLink(t *testing.T) {
	page := `<html><body><a href="https://example.org/">home</a>
<a href="https://github.com/example/spec/blob/main/spec.bs">edit</a></body></html>`
	f := &mockFetcher{
		existing: map[string]bool{"https://github.com/example/spec/blob/main/spec.bs": true},
		pages:    map[string]string{"https://example.org/spec/": page},
	}

	got, err := NewResolver(f).Resolve(context.Background(), "https://example.org/spec/")

	require.NoError(t, err)
	assert.Equal(t, "https://github.com/example/spec/blob/main/spec.bs", got.Source)
	assert.Equal(t, &domain.GitHubInfo{Owner: "example", Repo: "spec", Path: "spec.bs"}, got.GitHub)
}

func TestResolver_NotFound(t *testing.T) {
	f := &mockFetcher{pages: map[string]string{"https://example.org/spec/": "<p>nothing</p>"}}

	_, err := NewResolver(f).Resolve(context.Background(), "https://example.org/spec/")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolver_ProbesInOrder(t *testing.T) {
	f := &mockFetcher{existing: map[string]bool{
		"https://github.com/whatwg/fetch/blob/master/source": true,
	}}

	_, err := NewResolver(f).Resolve(context.Background(), "https://fetch.spec.whatwg.org/")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://github.com/whatwg/fetch/blob/master/index.bs",
		"https://github.com/whatwg/fetch/blob/master/fetch.bs",
		"https://github.com/whatwg/fetch/blob/master/source",
	}, f.probed)
}
