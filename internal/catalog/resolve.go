package catalog

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
	"github.com/custodia-labs/webidl-updater/internal/logger"
)

var (
	draftsOrg  = regexp.MustCompile(`https://drafts\.([-\w]+)\.org/([^/]+)/`)
	whatwg     = regexp.MustCompile(`https://(\w+)\.spec\.whatwg\.org/`)
	khronos    = regexp.MustCompile(`https://www\.khronos\.org/registry/(\w+)/(.+)/`)
	githubIO   = regexp.MustCompile(`https?://([-\w]+)\.github\.io/([^/]+)/(.*)`)
	cdnPath    = regexp.MustCompile(`^(\w+)/([-\w]+)/(.+)`)
	w3cTR      = regexp.MustCompile(`https://www\.w3\.org/TR/([^/]+)/`)
	cdnPrefix  = []string{"https://cdn.staticaly.com/gh/", "https://rawgit.com/"}
	trailingV1 = regexp.MustCompile(`-1$`)
)

// guess is a candidate source location. URL is empty when the pattern
// matched but none of its candidates exist.
type guess struct {
	shortName string
	url       string
}

// guesser returns nil when url does not match its pattern.
type guesser func(ctx context.Context, url string) (*guess, error)

// Resolver guesses where the source of a published spec lives by probing
// conventional repository layouts.
type Resolver struct {
	fetcher  driven.Fetcher
	guessers []guesser
}

// NewResolver creates a resolver probing candidates through fetcher.
func NewResolver(fetcher driven.Fetcher) *Resolver {
	r := &Resolver{fetcher: fetcher}
	r.guessers = []guesser{
		r.draftsOrg,
		r.whatwg,
		r.khronos,
		r.githubIO,
		r.cdn,
		r.w3cTR,
	}
	return r
}

// Resolve returns a catalog entry for the spec published at specURL.
// When no conventional layout matches, an edit link to a GitHub .bs file
// on the published page is used. domain.ErrNotFound is returned when
// nothing is found.
func (r *Resolver) Resolve(ctx context.Context, specURL string) (*domain.SpecSource, error) {
	var found *guess
	for _, g := range r.guessers {
		got, err := g(ctx, specURL)
		if err != nil {
			return nil, err
		}
		if got != nil {
			found = got
			break
		}
	}

	if found == nil || found.url == "" {
		logger.Debug("no conventional source for %s, looking for an edit link", specURL)
		link, err := r.editLink(ctx, specURL)
		if err != nil {
			return nil, err
		}
		if link == "" {
			return nil, fmt.Errorf("source of %s: %w", specURL, domain.ErrNotFound)
		}
		name := ""
		if found != nil {
			name = found.shortName
		}
		found = &guess{shortName: name, url: link}
	}

	source := &domain.SpecSource{
		ShortName: found.shortName,
		URL:       specURL,
		Source:    found.url,
	}
	if info, err := ParseGitHubURL(found.url); err == nil && info.Path != "" {
		source.GitHub = info
	}
	return source, nil
}

// firstExisting returns the first candidate answering a HEAD request.
func (r *Resolver) firstExisting(ctx context.Context, candidates ...string) (string, error) {
	for _, c := range candidates {
		ok, err := r.fetcher.Exists(ctx, c)
		if err != nil {
			logger.Debug("probe %s: %v", c, err)
			continue
		}
		if ok {
			return c, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "", nil
}

func (r *Resolver) overview(ctx context.Context, dir string) (string, error) {
	return r.firstExisting(ctx, dir+"Overview.bs", dir+"Overview.src.html")
}

func (r *Resolver) draftsOrg(ctx context.Context, specURL string) (*guess, error) {
	m := draftsOrg.FindStringSubmatch(specURL)
	if m == nil {
		return nil, nil
	}
	subOrg, shortName := m[1], m[2]
	branch := fmt.Sprintf("https://github.com/w3c/%s-drafts/blob/master", subOrg)

	found, err := r.overview(ctx, fmt.Sprintf("%s/%s/", branch, shortName))
	if err != nil || found != "" {
		return &guess{shortName: shortName, url: found}, err
	}

	// Level 1 specs live either with or without the -1 suffix.
	alt := shortName + "-1"
	if trailingV1.MatchString(shortName) {
		alt = trailingV1.ReplaceAllString(shortName, "")
	}
	found, err = r.overview(ctx, fmt.Sprintf("%s/%s/", branch, alt))
	return &guess{shortName: alt, url: found}, err
}

func (r *Resolver) whatwg(ctx context.Context, specURL string) (*guess, error) {
	m := whatwg.FindStringSubmatch(specURL)
	if m == nil {
		return nil, nil
	}
	shortName := m[1]
	dir := fmt.Sprintf("https://github.com/whatwg/%s/blob/master/", shortName)
	found, err := r.firstExisting(ctx,
		dir+"index.bs",
		dir+shortName+".bs",
		dir+"source",
		dir+"compatibility.bs",
	)
	return &guess{shortName: shortName, url: found}, err
}

func (r *Resolver) khronos(ctx context.Context, specURL string) (*guess, error) {
	m := khronos.FindStringSubmatch(specURL)
	if m == nil {
		return nil, nil
	}
	shortName, path := m[1], m[2]
	found, err := r.firstExisting(ctx,
		fmt.Sprintf("https://github.com/KhronosGroup/%s/blob/master/%s/index.html", shortName, path))
	return &guess{shortName: shortName, url: found}, err
}

func (r *Resolver) githubIO(ctx context.Context, specURL string) (*guess, error) {
	m := githubIO.FindStringSubmatch(specURL)
	if m == nil {
		return nil, nil
	}
	org, shortName, path := m[1], m[2], m[3]
	repo := fmt.Sprintf("https://github.com/%s/%s/blob", org, shortName)
	master, ghPages := repo+"/master/", repo+"/gh-pages/"

	if path != "" {
		file := path
		if strings.HasSuffix(file, "/") {
			file += "index.html"
		}
		name := shortName + "-" + strings.Replace(strings.ReplaceAll(file, "/", "-"), ".html", "", 1)
		found, err := r.firstExisting(ctx, master+file, ghPages+file)
		return &guess{shortName: name, url: found}, err
	}

	custom := strings.ReplaceAll(strings.ToLower(shortName), "-", "") + ".bs"
	found, err := r.firstExisting(ctx,
		master+"index.bs",
		master+"Overview.bs",
		master+custom,
		master+"index.src.html",
		master+"index.html",
		ghPages+"index.bs",
		ghPages+"index.html",
		master+"spec/index.bs",
		master+"spec/index.html",
	)
	return &guess{shortName: shortName, url: found}, err
}

func (r *Resolver) cdn(ctx context.Context, specURL string) (*guess, error) {
	var path string
	for _, prefix := range cdnPrefix {
		if rest, ok := strings.CutPrefix(specURL, prefix); ok {
			path = rest
			break
		}
	}
	m := cdnPath.FindStringSubmatch(path)
	if m == nil {
		return nil, nil
	}
	org, shortName, file := m[1], m[2], m[3]
	if strings.HasSuffix(file, "/") {
		file += "index.html"
	}
	found, err := r.firstExisting(ctx, fmt.Sprintf("https://github.com/%s/%s/blob/%s", org, shortName, file))
	return &guess{shortName: shortName, url: found}, err
}

func (r *Resolver) w3cTR(ctx context.Context, specURL string) (*guess, error) {
	m := w3cTR.FindStringSubmatch(specURL)
	if m == nil {
		return nil, nil
	}
	shortName := m[1]
	found, err := r.firstExisting(ctx, fmt.Sprintf("https://github.com/w3c/%s/blob/gh-pages/index.html", shortName))
	return &guess{shortName: shortName, url: found}, err
}

// editLink fetches the published page and returns the first existing link
// to a Bikeshed source on GitHub.
func (r *Resolver) editLink(ctx context.Context, specURL string) (string, error) {
	doc, err := r.fetcher.Fetch(ctx, domain.SpecSource{URL: specURL})
	if err != nil {
		return "", err
	}
	root, err := html.Parse(strings.NewReader(doc.Text))
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", specURL, err)
	}
	base, err := url.Parse(specURL)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", specURL, domain.ErrInvalidInput)
	}

	href := findSourceLink(root)
	if href == "" {
		return "", nil
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", nil
	}
	return r.firstExisting(ctx, base.ResolveReference(ref).String())
}

func findSourceLink(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "href" &&
				strings.HasSuffix(a.Val, ".bs") && strings.Contains(a.Val, "github") {
				return a.Val
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if href := findSourceLink(c); href != "" {
			return href
		}
	}
	return ""
}
