package github

import (
	"context"
	"errors"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.CodeHost = (*Host)(nil)

// Host implements driven.CodeHost on GitHub.
type Host struct {
	client *Client
}

// NewHost creates a code host backed by client.
func NewHost(client *Client) *Host {
	return &Host{client: client}
}

// CurrentUser returns the login of the authenticated account.
func (h *Host) CurrentUser(ctx context.Context) (string, error) {
	var user *gh.User
	err := h.client.call(ctx, "get user", func() (resp *gh.Response, err error) {
		user, resp, err = h.client.gh.Users.Get(ctx, "")
		return resp, err
	})
	if err != nil {
		return "", err
	}
	return user.GetLogin(), nil
}

// Repository returns repository metadata.
func (h *Host) Repository(ctx context.Context, repo domain.RepoRef) (*domain.Repository, error) {
	var r *gh.Repository
	err := h.client.call(ctx, "get repo", func() (resp *gh.Response, err error) {
		r, resp, err = h.client.gh.Repositories.Get(ctx, repo.Owner, repo.Name)
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return toRepository(r), nil
}

// Fork returns the fork of upstream owned by user, creating it if needed.
// GitHub creates forks asynchronously; the returned reference is usable
// once the fork finishes.
func (h *Host) Fork(ctx context.Context, upstream domain.RepoRef, user string) (domain.RepoRef, error) {
	existing, err := h.Repository(ctx, domain.RepoRef{Owner: user, Name: upstream.Name})
	switch {
	case err == nil:
		return existing.Ref, nil
	case !IsNotFound(err):
		return domain.RepoRef{}, err
	}

	var fork *gh.Repository
	err = h.client.call(ctx, "create fork", func() (*gh.Response, error) {
		r, resp, err := h.client.gh.Repositories.CreateFork(ctx, upstream.Owner, upstream.Name, &gh.RepositoryCreateForkOptions{})
		fork = r
		var accepted *gh.AcceptedError
		if errors.As(err, &accepted) {
			return resp, nil
		}
		return resp, err
	})
	if err != nil {
		return domain.RepoRef{}, err
	}
	if fork == nil || fork.GetName() == "" {
		return domain.RepoRef{Owner: user, Name: upstream.Name}, nil
	}
	return toRepository(fork).Ref, nil
}

// BranchHead returns the commit SHA a branch points to.
func (h *Host) BranchHead(ctx context.Context, repo domain.RepoRef, branch string) (string, error) {
	var ref *gh.Reference
	err := h.client.call(ctx, "get ref", func() (resp *gh.Response, err error) {
		ref, resp, err = h.client.gh.Git.GetRef(ctx, repo.Owner, repo.Name, "heads/"+branch)
		return resp, err
	})
	if err != nil {
		return "", err
	}
	return ref.GetObject().GetSHA(), nil
}

// CreateBranch creates a branch at sha.
func (h *Host) CreateBranch(ctx context.Context, repo domain.RepoRef, branch, sha string) error {
	return h.client.call(ctx, "create ref", func() (*gh.Response, error) {
		_, resp, err := h.client.gh.Git.CreateRef(ctx, repo.Owner, repo.Name, gh.CreateRef{
			Ref: "refs/heads/" + branch,
			SHA: sha,
		})
		return resp, err
	})
}

// ResetBranch force-moves a branch to sha.
func (h *Host) ResetBranch(ctx context.Context, repo domain.RepoRef, branch, sha string) error {
	return h.client.call(ctx, "update ref", func() (*gh.Response, error) {
		_, resp, err := h.client.gh.Git.UpdateRef(ctx, repo.Owner, repo.Name, "heads/"+branch, gh.UpdateRef{
			SHA:   sha,
			Force: gh.Ptr(true),
		})
		return resp, err
	})
}

// Diverged reports whether head no longer contains base. head may be a
// SHA, a branch or an owner:branch reference to a fork.
func (h *Host) Diverged(ctx context.Context, repo domain.RepoRef, base, head string) (bool, error) {
	var cmp *gh.CommitsComparison
	err := h.client.call(ctx, "compare commits", func() (resp *gh.Response, err error) {
		cmp, resp, err = h.client.gh.Repositories.CompareCommits(ctx, repo.Owner, repo.Name, base, head, nil)
		return resp, err
	})
	if err != nil {
		return false, err
	}
	return cmp.GetStatus() == "diverged", nil
}

// File returns a file at ref.
func (h *Host) File(ctx context.Context, repo domain.RepoRef, path, ref string) (*domain.FileContent, error) {
	var content *gh.RepositoryContent
	err := h.client.call(ctx, "get contents", func() (resp *gh.Response, err error) {
		content, _, resp, err = h.client.gh.Repositories.GetContents(ctx, repo.Owner, repo.Name, path,
			&gh.RepositoryContentGetOptions{Ref: ref})
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrNotAFile
	}

	decoded, err := content.GetContent()
	if err != nil {
		return nil, err
	}
	return &domain.FileContent{Content: decoded, SHA: content.GetSHA()}, nil
}

// UpdateFile commits new content for a file on a branch.
func (h *Host) UpdateFile(ctx context.Context, repo domain.RepoRef, branch, path, message, content, sha string) error {
	return h.client.call(ctx, "update file", func() (*gh.Response, error) {
		_, resp, err := h.client.gh.Repositories.UpdateFile(ctx, repo.Owner, repo.Name, path, &gh.RepositoryContentFileOptions{
			Message: gh.Ptr(message),
			Content: []byte(content),
			SHA:     gh.Ptr(sha),
			Branch:  gh.Ptr(branch),
		})
		return resp, err
	})
}

func toRepository(r *gh.Repository) *domain.Repository {
	return &domain.Repository{
		Ref:           domain.RepoRef{Owner: r.GetOwner().GetLogin(), Name: r.GetName()},
		DefaultBranch: r.GetDefaultBranch(),
	}
}
