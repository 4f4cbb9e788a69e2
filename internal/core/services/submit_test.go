package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/webidl-updater/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// fakeHost is an in-memory code host recording every mutation.
type fakeHost struct {
	user     string
	branches map[string]string // "owner/name:branch" -> sha
	files    map[string]*domain.FileContent
	issues   []*domain.Issue
	prs      map[string]*domain.PullRequest // head -> open PR
	diverged bool

	created []string
	resets  []string
	updates []string
	closed  []int
	edited  []int
	drafts  []domain.PullRequestDraft
	forkErr error
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		user:     "bot",
		branches: map[string]string{"w3c/spec:main": "latest"},
		files:    map[string]*domain.FileContent{},
		prs:      map[string]*domain.PullRequest{},
	}
}

func branchKey(repo domain.RepoRef, branch string) string {
	return repo.String() + ":" + branch
}

func (h *fakeHost) CurrentUser(_ context.Context) (string, error) { return h.user, nil }

func (h *fakeHost) Repository(_ context.Context, repo domain.RepoRef) (*domain.Repository, error) {
	return &domain.Repository{Ref: repo, DefaultBranch: "main"}, nil
}

func (h *fakeHost) Fork(_ context.Context, upstream domain.RepoRef, user string) (domain.RepoRef, error) {
	return domain.RepoRef{Owner: user, Name: upstream.Name}, h.forkErr
}

func (h *fakeHost) BranchHead(_ context.Context, repo domain.RepoRef, branch string) (string, error) {
	sha, ok := h.branches[branchKey(repo, branch)]
	if !ok {
		return "", domain.ErrNotFound
	}
	return sha, nil
}

func (h *fakeHost) CreateBranch(_ context.Context, repo domain.RepoRef, branch, sha string) error {
	h.branches[branchKey(repo, branch)] = sha
	h.created = append(h.created, branchKey(repo, branch))
	h.files[branchKey(repo, branch)] = &domain.FileContent{Content: "original", SHA: "blob0"}
	return nil
}

func (h *fakeHost) ResetBranch(_ context.Context, repo domain.RepoRef, branch, sha string) error {
	h.branches[branchKey(repo, branch)] = sha
	h.resets = append(h.resets, branchKey(repo, branch))
	return nil
}

func (h *fakeHost) Diverged(_ context.Context, _ domain.RepoRef, _, _ string) (bool, error) {
	return h.diverged, nil
}

func (h *fakeHost) File(_ context.Context, repo domain.RepoRef, _, ref string) (*domain.FileContent, error) {
	f, ok := h.files[branchKey(repo, ref)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func (h *fakeHost) UpdateFile(_ context.Context, repo domain.RepoRef, branch, _, _, content, _ string) error {
	h.files[branchKey(repo, branch)] = &domain.FileContent{Content: content, SHA: "blob1"}
	h.updates = append(h.updates, branchKey(repo, branch))
	return nil
}

func (h *fakeHost) OpenPullRequest(_ context.Context, _ domain.RepoRef, head string) (*domain.PullRequest, error) {
	return h.prs[head], nil
}

func (h *fakeHost) CreatePullRequest(_ context.Context, _ domain.RepoRef, draft domain.PullRequestDraft) (*domain.PullRequest, error) {
	pr := &domain.PullRequest{Number: len(h.drafts) + 1, URL: "https://github.com/w3c/spec/pull/" + draft.Head}
	h.drafts = append(h.drafts, draft)
	h.prs[draft.Head] = pr
	return pr, nil
}

func (h *fakeHost) FindIssue(_ context.Context, _ domain.RepoRef, title, author string) (*domain.Issue, error) {
	if author != h.user {
		return nil, nil
	}
	for _, issue := range h.issues {
		if issue.Title == title {
			return issue, nil
		}
	}
	return nil, nil
}

func (h *fakeHost) CreateIssue(_ context.Context, _ domain.RepoRef, title, body string) (*domain.Issue, error) {
	issue := &domain.Issue{Number: len(h.issues) + 1, Title: title, Body: body}
	h.issues = append(h.issues, issue)
	return issue, nil
}

func (h *fakeHost) UpdateIssue(_ context.Context, _ domain.RepoRef, number int, body string) error {
	h.issues[number-1].Body = body
	h.edited = append(h.edited, number)
	return nil
}

func (h *fakeHost) CloseIssue(_ context.Context, _ domain.RepoRef, number int) error {
	h.closed = append(h.closed, number)
	return nil
}

func githubSource(name, repo string) domain.SpecSource {
	return domain.SpecSource{
		ShortName: name,
		URL:       "https://w3c.github.io/" + name + "/",
		GitHub:    &domain.GitHubInfo{Owner: "w3c", Repo: repo, Path: name + ".bs"},
	}
}

func validationReport(includesHTML bool) *domain.Report {
	return domain.NewValidationReport("run", []domain.Validation{
		{Block: 0, Rule: "replace-void", Level: domain.LevelError, Message: "first", Autofixed: true},
		{Block: 1, Rule: "no-duplicate", Level: domain.LevelError, Message: "second"},
	}, true, includesHTML)
}

func TestSubmitService_RequiresHost(t *testing.T) {
	svc := NewSubmitService(&mockCatalog{}, memory.NewReportStore(), nil)
	_, err := svc.Submit(context.Background())
	assert.ErrorIs(t, err, domain.ErrAuthRequired)
}

func TestSubmitService_OpensPullRequest(t *testing.T) {
	ctx := context.Background()
	host := newFakeHost()
	reports := memory.NewReportStore()
	require.NoError(t, reports.SaveReport(ctx, "spec", validationReport(false)))
	require.NoError(t, reports.SaveText(ctx, "spec", "rewritten"))

	svc := NewSubmitService(&mockCatalog{sources: []domain.SpecSource{githubSource("spec", "spec")}}, reports, host)
	summary, err := svc.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"bot/spec:spec"}, host.created)
	assert.Equal(t, "latest", host.branches["bot/spec:spec"])
	assert.Equal(t, []string{"bot/spec:spec"}, host.updates)
	assert.Equal(t, "rewritten", host.files["bot/spec:spec"].Content)

	require.Len(t, host.drafts, 1)
	draft := host.drafts[0]
	assert.Equal(t, "bot:spec", draft.Head)
	assert.Equal(t, "main", draft.Base)
	assert.Equal(t, "Editorial: Align with Web IDL specification", draft.Title)
	assert.Contains(t, draft.Body, "```\nfirst\n\nsecond\n```")

	assert.Len(t, summary.PullRequests, 1)
	assert.Empty(t, summary.IssuesOpened)
}

func TestSubmitService_ExistingBranch(t *testing.T) {
	ctx := context.Background()
	unmergeable := false

	tests := []struct {
		name      string
		pr        *domain.PullRequest
		diverged  bool
		wantReset bool
	}{
		{name: "up to date", wantReset: false},
		{name: "diverged without pull request", diverged: true, wantReset: true},
		{name: "unmergeable pull request", pr: &domain.PullRequest{Number: 1, Mergeable: &unmergeable}, wantReset: true},
		{name: "mergeability unknown", pr: &domain.PullRequest{Number: 1}, diverged: true, wantReset: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost()
			host.branches["bot/spec:spec"] = "old"
			host.files["bot/spec:spec"] = &domain.FileContent{Content: "rewritten", SHA: "blob0"}
			host.diverged = tt.diverged
			if tt.pr != nil {
				host.prs["bot:spec"] = tt.pr
			}

			reports := memory.NewReportStore()
			require.NoError(t, reports.SaveReport(ctx, "spec", validationReport(false)))
			require.NoError(t, reports.SaveText(ctx, "spec", "rewritten"))

			svc := NewSubmitService(&mockCatalog{sources: []domain.SpecSource{githubSource("spec", "spec")}}, reports, host)
			_, err := svc.Submit(ctx)
			require.NoError(t, err)

			assert.Empty(t, host.created)
			if tt.wantReset {
				assert.Equal(t, []string{"bot/spec:spec"}, host.resets)
			} else {
				assert.Empty(t, host.resets)
			}
			// The file already holds the rewritten text.
			assert.Empty(t, host.updates)
			if tt.pr != nil {
				assert.Empty(t, host.drafts)
			} else {
				assert.Len(t, host.drafts, 1)
			}
		})
	}
}

func TestSubmitService_SyntaxIssues(t *testing.T) {
	ctx := context.Background()
	failure := domain.SyntaxFailure{Block: 0, Context: "Syntax error at line 1", BareMessage: "Missing name"}
	host := newFakeHost()
	reports := memory.NewReportStore()
	require.NoError(t, reports.SaveReport(ctx, "spec", domain.NewSyntaxReport("run", failure)))
	svc := NewSubmitService(&mockCatalog{sources: []domain.SpecSource{githubSource("spec", "spec")}}, reports, host)

	summary, err := svc.Submit(ctx)
	require.NoError(t, err)
	require.Len(t, host.issues, 1)
	assert.Equal(t, "Web IDL syntax error", host.issues[0].Title)
	assert.Equal(t, SyntaxIssueBody(failure), host.issues[0].Body)
	assert.Contains(t, host.issues[0].Body, "> WebIDLParseError: Missing name")
	assert.Equal(t, []string{"spec"}, summary.IssuesOpened)

	// A second run with the same failure leaves the issue alone.
	_, err = svc.Submit(ctx)
	require.NoError(t, err)
	assert.Len(t, host.issues, 1)
	assert.Empty(t, host.edited)

	// A different failure refreshes the body.
	failure.BareMessage = "Unterminated body"
	require.NoError(t, reports.SaveReport(ctx, "spec", domain.NewSyntaxReport("run", failure)))
	_, err = svc.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, host.edited)
	assert.Contains(t, host.issues[0].Body, "Unterminated body")

	// Once the document parses, the issue is closed.
	require.NoError(t, reports.SaveReport(ctx, "spec", validationReport(true)))
	summary, err = svc.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, host.closed)
	assert.Equal(t, []string{"spec"}, summary.IssuesClosed)
	assert.Equal(t, []string{"spec"}, summary.Skipped)
	assert.Empty(t, host.drafts)
}

func TestSubmitService_MonoRepoTitles(t *testing.T) {
	ctx := context.Background()
	host := newFakeHost()
	host.branches["w3c/drafts:main"] = "latest"
	reports := memory.NewReportStore()
	require.NoError(t, reports.SaveReport(ctx, "a", validationReport(false)))
	require.NoError(t, reports.SaveText(ctx, "a", "rewritten"))
	require.NoError(t, reports.SaveReport(ctx, "b", domain.NewSyntaxReport("run", domain.SyntaxFailure{BareMessage: "x"})))

	sources := []domain.SpecSource{githubSource("a", "drafts"), githubSource("b", "drafts")}
	svc := NewSubmitService(&mockCatalog{sources: sources}, reports, host)
	_, err := svc.Submit(ctx)
	require.NoError(t, err)

	require.Len(t, host.drafts, 1)
	assert.Equal(t, "[a] Align with Web IDL specification", host.drafts[0].Title)
	assert.Equal(t, "bot:a", host.drafts[0].Head)
	require.Len(t, host.issues, 1)
	assert.Equal(t, "[b] Web IDL syntax error", host.issues[0].Title)
}

func TestSubmitService_SkipsAndContinues(t *testing.T) {
	ctx := context.Background()
	host := newFakeHost()
	host.forkErr = errors.New("forbidden")
	reports := memory.NewReportStore()

	nonGitHub := domain.SpecSource{ShortName: "plain", URL: "https://example.org/plain/"}
	require.NoError(t, reports.SaveReport(ctx, "plain", validationReport(false)))
	require.NoError(t, reports.SaveReport(ctx, "spec", validationReport(false)))
	require.NoError(t, reports.SaveText(ctx, "spec", "rewritten"))
	require.NoError(t, reports.SaveReport(ctx, "other", domain.NewSyntaxReport("run", domain.SyntaxFailure{BareMessage: "x"})))

	sources := []domain.SpecSource{
		githubSource("other", "other"),
		nonGitHub,
		githubSource("spec", "spec"),
		githubSource("unreported", "unreported"),
	}
	svc := NewSubmitService(&mockCatalog{sources: sources}, reports, host)
	summary, err := svc.Submit(ctx)

	require.Error(t, err)
	assert.ErrorContains(t, err, "spec: fork: forbidden")
	assert.Equal(t, []string{"plain"}, summary.Skipped)
	assert.Equal(t, []string{"other"}, summary.IssuesOpened)
	assert.Empty(t, host.drafts)
}
