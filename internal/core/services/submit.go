package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driving"
	"github.com/custodia-labs/webidl-updater/internal/logger"
)

// Ensure SubmitService implements the interface.
var _ driving.SubmitService = (*SubmitService)(nil)

const fileAnIssue = "Please file an issue at https://github.com/custodia-labs/webidl-updater/issues/new " +
	"if you think this is invalid or should be enhanced."

// SubmitService turns stored reports into upstream pull requests and issues.
type SubmitService struct {
	catalog driven.SourceCatalog
	reports driven.ReportStore
	host    driven.CodeHost
}

// NewSubmitService creates a new submit service. A nil host makes every
// submission fail with domain.ErrAuthRequired.
func NewSubmitService(catalog driven.SourceCatalog, reports driven.ReportStore, host driven.CodeHost) *SubmitService {
	return &SubmitService{catalog: catalog, reports: reports, host: host}
}

// Submit walks the catalog and acts on every stored report. A failure on
// one spec does not stop the others; all failures are returned joined.
func (s *SubmitService) Submit(ctx context.Context) (*domain.SubmitSummary, error) {
	if s.host == nil {
		return nil, domain.ErrAuthRequired
	}

	sources, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	user, err := s.host.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	repoCounts := make(map[string]int)
	for _, source := range sources {
		if source.GitHub != nil {
			repoCounts[source.GitHub.RepoKey()]++
		}
	}

	summary := &domain.SubmitSummary{}
	var errs []error
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		report, err := s.reports.Report(ctx, source.ShortName)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("read report %s: %w", source.ShortName, err)
		}
		if source.GitHub == nil {
			logger.Debug("%s: not hosted on GitHub, skipping", source.ShortName)
			summary.Skipped = append(summary.Skipped, source.ShortName)
			continue
		}

		sub := &submission{
			SubmitService: s,
			source:        source,
			user:          user,
			monoRepo:      repoCounts[source.GitHub.RepoKey()] > 1,
			summary:       summary,
		}
		if err := sub.run(ctx, report); err != nil {
			logger.Error("%s: %v", source.ShortName, err)
			errs = append(errs, fmt.Errorf("%s: %w", source.ShortName, err))
		}
	}

	return summary, errors.Join(errs...)
}

// submission acts on the report of one spec.
type submission struct {
	*SubmitService
	source   domain.SpecSource
	user     string
	monoRepo bool
	summary  *domain.SubmitSummary
}

func (s *submission) run(ctx context.Context, report *domain.Report) error {
	if report.IsSyntax() {
		return s.reportSyntaxError(ctx, *report.Syntax)
	}

	if err := s.closeSyntaxIssue(ctx); err != nil {
		return err
	}
	if report.IncludesHTML {
		s.summary.Skipped = append(s.summary.Skipped, s.source.ShortName)
		return nil
	}

	text, err := s.reports.Text(ctx, s.source.ShortName)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.proposeFix(ctx, text, report.Messages())
}

// titlePrefix distinguishes specs that share a repository.
func (s *submission) titlePrefix() string {
	if s.monoRepo {
		return "[" + s.source.ShortName + "] "
	}
	return ""
}

func (s *submission) syntaxIssueTitle() string {
	return s.titlePrefix() + "Web IDL syntax error"
}

func (s *submission) pullRequestTitle() string {
	prefix := s.titlePrefix()
	if prefix == "" {
		prefix = "Editorial: "
	}
	return prefix + "Align with Web IDL specification"
}

// SyntaxIssueBody renders the body of the issue reporting a syntax failure.
func SyntaxIssueBody(failure domain.SyntaxFailure) string {
	return fmt.Sprintf("This is an automatic issue report for a Web IDL syntax error.\n\n"+
		"The Web IDL parser says:\n\n```\n%s\n```\n\n> WebIDLParseError: %s\n\n%s\n",
		failure.Context, failure.BareMessage, fileAnIssue)
}

// PullRequestBody renders the body of a pull request carrying validation messages.
func PullRequestBody(validations string) string {
	return fmt.Sprintf("This is an automated pull request to align the spec with the latest Web IDL specification.\n\n"+
		"The following is the Web IDL validation message, which may help understanding this PR:\n\n"+
		"```\n%s\n```\n\n"+
		"Currently this autofix might introduce awkward code formatting, and feel free to manually fix it whenever it happens.\n\n%s",
		validations, fileAnIssue)
}

// reportSyntaxError opens the syntax error issue, or refreshes its body.
func (s *submission) reportSyntaxError(ctx context.Context, failure domain.SyntaxFailure) error {
	repo := s.source.GitHub.Ref()
	title := s.syntaxIssueTitle()
	body := SyntaxIssueBody(failure)

	issue, err := s.host.FindIssue(ctx, repo, title, s.user)
	if err != nil {
		return fmt.Errorf("find issue: %w", err)
	}
	if issue == nil {
		if _, err := s.host.CreateIssue(ctx, repo, title, body); err != nil {
			return fmt.Errorf("create issue: %w", err)
		}
		logger.Info("%s: opened syntax error issue", s.source.ShortName)
		s.summary.IssuesOpened = append(s.summary.IssuesOpened, s.source.ShortName)
		return nil
	}
	if issue.Body != body {
		if err := s.host.UpdateIssue(ctx, repo, issue.Number, body); err != nil {
			return fmt.Errorf("update issue: %w", err)
		}
		logger.Info("%s: updated syntax error issue #%d", s.source.ShortName, issue.Number)
	}
	return nil
}

// closeSyntaxIssue closes a syntax error issue left from an earlier run.
func (s *submission) closeSyntaxIssue(ctx context.Context) error {
	repo := s.source.GitHub.Ref()
	issue, err := s.host.FindIssue(ctx, repo, s.syntaxIssueTitle(), s.user)
	if err != nil {
		return fmt.Errorf("find issue: %w", err)
	}
	if issue == nil {
		return nil
	}
	if err := s.host.CloseIssue(ctx, repo, issue.Number); err != nil {
		return fmt.Errorf("close issue: %w", err)
	}
	logger.Info("%s: closed syntax error issue #%d", s.source.ShortName, issue.Number)
	s.summary.IssuesClosed = append(s.summary.IssuesClosed, s.source.ShortName)
	return nil
}

// proposeFix pushes the rewritten document to a branch of the bot's fork
// and opens a pull request from it.
func (s *submission) proposeFix(ctx context.Context, text, validations string) error {
	upstream := s.source.GitHub.Ref()
	branch := s.source.ShortName
	title := s.pullRequestTitle()

	repo, err := s.host.Repository(ctx, upstream)
	if err != nil {
		return fmt.Errorf("get repository: %w", err)
	}
	fork, err := s.host.Fork(ctx, upstream, s.user)
	if err != nil {
		return fmt.Errorf("fork: %w", err)
	}
	latest, err := s.host.BranchHead(ctx, upstream, repo.DefaultBranch)
	if err != nil {
		return fmt.Errorf("get latest commit: %w", err)
	}
	head := fork.Owner + ":" + branch

	if err := s.ensureBranch(ctx, upstream, fork, branch, head, latest); err != nil {
		return err
	}

	file, err := s.host.File(ctx, fork, s.source.GitHub.Path, branch)
	if err != nil {
		return fmt.Errorf("get file: %w", err)
	}
	if file.Content != text {
		if err := s.host.UpdateFile(ctx, fork, branch, s.source.GitHub.Path, title, text, file.SHA); err != nil {
			return fmt.Errorf("update file: %w", err)
		}
	}

	// An earlier pull request may have been closed meanwhile.
	pr, err := s.host.OpenPullRequest(ctx, upstream, head)
	if err != nil {
		return fmt.Errorf("list pull requests: %w", err)
	}
	if pr == nil {
		pr, err = s.host.CreatePullRequest(ctx, upstream, domain.PullRequestDraft{
			Head:  head,
			Base:  repo.DefaultBranch,
			Title: title,
			Body:  PullRequestBody(validations),
		})
		if err != nil {
			return fmt.Errorf("create pull request: %w", err)
		}
		logger.Info("%s: opened %s", s.source.ShortName, pr.URL)
	}
	s.summary.PullRequests = append(s.summary.PullRequests, pr.URL)
	return nil
}

// ensureBranch creates the fork branch at latest, or resets it to latest
// when it can no longer be merged cleanly.
func (s *submission) ensureBranch(ctx context.Context, upstream, fork domain.RepoRef, branch, head, latest string) error {
	_, err := s.host.BranchHead(ctx, fork, branch)
	if errors.Is(err, domain.ErrNotFound) {
		if err := s.host.CreateBranch(ctx, fork, branch, latest); err != nil {
			return fmt.Errorf("create branch: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("get branch: %w", err)
	}

	pr, err := s.host.OpenPullRequest(ctx, upstream, head)
	if err != nil {
		return fmt.Errorf("list pull requests: %w", err)
	}

	reset := false
	if pr != nil {
		// Mergeability is unknown while it is being recomputed.
		reset = pr.Mergeable != nil && !*pr.Mergeable
	} else {
		reset, err = s.host.Diverged(ctx, upstream, latest, head)
		if err != nil {
			return fmt.Errorf("compare commits: %w", err)
		}
	}

	if reset {
		logger.Debug("%s: resetting %s to %s", s.source.ShortName, head, latest)
		if err := s.host.ResetBranch(ctx, fork, branch, latest); err != nil {
			return fmt.Errorf("reset branch: %w", err)
		}
	}
	return nil
}
