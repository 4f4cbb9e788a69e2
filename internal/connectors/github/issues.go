package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// FindIssue returns the open issue with the exact title created by author,
// or nil. Pull requests are skipped.
func (h *Host) FindIssue(ctx context.Context, repo domain.RepoRef, title, author string) (*domain.Issue, error) {
	opts := &gh.IssueListByRepoOptions{
		State:       "open",
		Creator:     author,
		ListOptions: gh.ListOptions{PerPage: 100},
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var issues []*gh.Issue
		var next int
		err := h.client.call(ctx, "list issues", func() (*gh.Response, error) {
			var resp *gh.Response
			var err error
			issues, resp, err = h.client.gh.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
			if resp != nil {
				next = resp.NextPage
			}
			return resp, err
		})
		if err != nil {
			return nil, err
		}

		for _, issue := range issues {
			if !issue.IsPullRequest() && issue.GetTitle() == title {
				return toIssue(issue), nil
			}
		}

		if next == 0 {
			return nil, nil
		}
		opts.ListOptions.Page = next
	}
}

// CreateIssue opens an issue.
func (h *Host) CreateIssue(ctx context.Context, repo domain.RepoRef, title, body string) (*domain.Issue, error) {
	var issue *gh.Issue
	err := h.client.call(ctx, "create issue", func() (resp *gh.Response, err error) {
		issue, resp, err = h.client.gh.Issues.Create(ctx, repo.Owner, repo.Name, &gh.IssueRequest{
			Title: gh.Ptr(title),
			Body:  gh.Ptr(body),
		})
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return toIssue(issue), nil
}

// UpdateIssue replaces the body of an issue.
func (h *Host) UpdateIssue(ctx context.Context, repo domain.RepoRef, number int, body string) error {
	return h.edit(ctx, repo, number, &gh.IssueRequest{Body: gh.Ptr(body)})
}

// CloseIssue closes an issue.
func (h *Host) CloseIssue(ctx context.Context, repo domain.RepoRef, number int) error {
	return h.edit(ctx, repo, number, &gh.IssueRequest{State: gh.Ptr("closed")})
}

func (h *Host) edit(ctx context.Context, repo domain.RepoRef, number int, req *gh.IssueRequest) error {
	return h.client.call(ctx, "edit issue", func() (*gh.Response, error) {
		_, resp, err := h.client.gh.Issues.Edit(ctx, repo.Owner, repo.Name, number, req)
		return resp, err
	})
}

func toIssue(issue *gh.Issue) *domain.Issue {
	return &domain.Issue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
	}
}
