package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

var githubURL = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+)(?:/blob/([^/]+)/(.+))?$`)

// ParseGitHubURL extracts the repository and file path from a github.com
// URL of the form https://github.com/{owner}/{repo}/blob/{branch}/{path}.
// Repository URLs without a file yield an empty path.
func ParseGitHubURL(url string) (*domain.GitHubInfo, error) {
	m := githubURL.FindStringSubmatch(url)
	if m == nil {
		return nil, fmt.Errorf("not a GitHub URL: %s: %w", url, domain.ErrInvalidInput)
	}
	return &domain.GitHubInfo{Owner: m[1], Repo: m[2], Path: m[4]}, nil
}

// RawURL converts a github.com blob or commits URL to its raw content URL.
func RawURL(url string) string {
	raw := strings.Replace(url, "github.com", "raw.githubusercontent.com", 1)
	raw = strings.Replace(raw, "/blob/", "/", 1)
	return strings.Replace(raw, "/commits/", "/", 1)
}
