package domain

import "fmt"

// GitHubInfo locates a spec's source file in a GitHub repository.
type GitHubInfo struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Path  string `json:"path"`
}

// RepoKey returns owner/repo.
func (g GitHubInfo) RepoKey() string {
	return g.Owner + "/" + g.Repo
}

// Ref returns the repository reference.
func (g GitHubInfo) Ref() RepoRef {
	return RepoRef{Owner: g.Owner, Name: g.Repo}
}

// RawURL returns the raw-content URL of the file at the default branch head.
func (g GitHubInfo) RawURL() string {
	return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/HEAD/%s", g.Owner, g.Repo, g.Path)
}

// SpecSource is one catalog entry: a published spec and where its source lives.
type SpecSource struct {
	// ShortName identifies the spec in reports, branches and file names.
	ShortName string `json:"shortName"`

	// URL is the canonical (published) URL of the spec.
	URL string `json:"url"`

	// Source is the browsable location of the source file, if known.
	Source string `json:"source,omitempty"`

	// GitHub is set when the source lives in a GitHub repository.
	GitHub *GitHubInfo `json:"github,omitempty"`
}

// FetchURL returns the location to fetch the raw document from.
// The version-controlled raw endpoint is preferred over the published URL.
func (s SpecSource) FetchURL() string {
	if s.GitHub != nil {
		return s.GitHub.RawURL()
	}
	return s.URL
}

// RepoRef names a repository on the source hosting platform.
type RepoRef struct {
	Owner string
	Name  string
}

// String returns owner/name.
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// Issue is an issue on the source hosting platform.
type Issue struct {
	Number int
	Title  string
	Body   string
}

// Repository is a repository as reported by the hosting platform.
type Repository struct {
	Ref           RepoRef
	DefaultBranch string
}

// PullRequest is an open pull request.
type PullRequest struct {
	Number int
	URL    string

	// Mergeable is nil while the hosting platform is still computing it.
	Mergeable *bool
}

// PullRequestDraft describes a pull request to open.
type PullRequestDraft struct {
	// Head is the source branch in owner:branch form.
	Head  string
	Base  string
	Title string
	Body  string
}

// FileContent is a file at a specific revision.
type FileContent struct {
	Content string
	SHA     string
}
