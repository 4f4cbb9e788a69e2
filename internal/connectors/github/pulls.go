package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// OpenPullRequest returns the open pull request from head (owner:branch),
// or nil. Mergeability is read from the pull request itself because list
// results do not carry it.
func (h *Host) OpenPullRequest(ctx context.Context, upstream domain.RepoRef, head string) (*domain.PullRequest, error) {
	var prs []*gh.PullRequest
	err := h.client.call(ctx, "list pull requests", func() (resp *gh.Response, err error) {
		prs, resp, err = h.client.gh.PullRequests.List(ctx, upstream.Owner, upstream.Name, &gh.PullRequestListOptions{
			State: "open",
			Head:  head,
		})
		return resp, err
	})
	if err != nil || len(prs) == 0 {
		return nil, err
	}

	var pr *gh.PullRequest
	err = h.client.call(ctx, "get pull request", func() (resp *gh.Response, err error) {
		pr, resp, err = h.client.gh.PullRequests.Get(ctx, upstream.Owner, upstream.Name, prs[0].GetNumber())
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return toPullRequest(pr), nil
}

// CreatePullRequest opens a pull request against upstream.
func (h *Host) CreatePullRequest(ctx context.Context, upstream domain.RepoRef, draft domain.PullRequestDraft) (*domain.PullRequest, error) {
	var pr *gh.PullRequest
	err := h.client.call(ctx, "create pull request", func() (resp *gh.Response, err error) {
		pr, resp, err = h.client.gh.PullRequests.Create(ctx, upstream.Owner, upstream.Name, &gh.NewPullRequest{
			Title: gh.Ptr(draft.Title),
			Head:  gh.Ptr(draft.Head),
			Base:  gh.Ptr(draft.Base),
			Body:  gh.Ptr(draft.Body),
		})
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return toPullRequest(pr), nil
}

func toPullRequest(pr *gh.PullRequest) *domain.PullRequest {
	return &domain.PullRequest{
		Number:    pr.GetNumber(),
		URL:       pr.GetHTMLURL(),
		Mergeable: pr.Mergeable,
	}
}
