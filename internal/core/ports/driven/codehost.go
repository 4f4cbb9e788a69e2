package driven

import (
	"context"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// CodeHost is the source hosting platform used to propose changes upstream.
// Lookups of missing branches and files return domain.ErrNotFound.
type CodeHost interface {
	// CurrentUser returns the login of the authenticated account.
	CurrentUser(ctx context.Context) (string, error)

	// Repository returns repository metadata.
	Repository(ctx context.Context, repo domain.RepoRef) (*domain.Repository, error)

	// Fork returns the fork of upstream owned by user, creating it if needed.
	Fork(ctx context.Context, upstream domain.RepoRef, user string) (domain.RepoRef, error)

	// BranchHead returns the commit SHA a branch points to.
	BranchHead(ctx context.Context, repo domain.RepoRef, branch string) (string, error)

	// CreateBranch creates a branch at sha.
	CreateBranch(ctx context.Context, repo domain.RepoRef, branch, sha string) error

	// ResetBranch force-moves a branch to sha.
	ResetBranch(ctx context.Context, repo domain.RepoRef, branch, sha string) error

	// Diverged reports whether head no longer contains base.
	Diverged(ctx context.Context, repo domain.RepoRef, base, head string) (bool, error)

	// File returns a file at ref.
	File(ctx context.Context, repo domain.RepoRef, path, ref string) (*domain.FileContent, error)

	// UpdateFile commits new content for a file on a branch. sha is the
	// blob being replaced.
	UpdateFile(ctx context.Context, repo domain.RepoRef, branch, path, message, content, sha string) error

	// OpenPullRequest returns the open pull request from head, or nil.
	OpenPullRequest(ctx context.Context, upstream domain.RepoRef, head string) (*domain.PullRequest, error)

	// CreatePullRequest opens a pull request against upstream.
	CreatePullRequest(ctx context.Context, upstream domain.RepoRef, draft domain.PullRequestDraft) (*domain.PullRequest, error)

	// FindIssue returns the open issue with the exact title created by author, or nil.
	FindIssue(ctx context.Context, repo domain.RepoRef, title, author string) (*domain.Issue, error)

	// CreateIssue opens an issue.
	CreateIssue(ctx context.Context, repo domain.RepoRef, title, body string) (*domain.Issue, error)

	// UpdateIssue replaces the body of an issue.
	UpdateIssue(ctx context.Context, repo domain.RepoRef, number int, body string) error

	// CloseIssue closes an issue.
	CloseIssue(ctx context.Context, repo domain.RepoRef, number int) error
}
