package domain

// Outcome is what happened to one document in a rewrite run.
type Outcome string

const (
	OutcomeWritten          Outcome = "written"
	OutcomeUnchanged        Outcome = "unchanged"
	OutcomeRichMarkup       Outcome = "skipped-rich-markup"
	OutcomeSyntaxError      Outcome = "syntax-error"
	OutcomeFetchFailed      Outcome = "fetch-failed"
	OutcomeExtractFailed    Outcome = "extract-failed"
	OutcomeRelocationFailed Outcome = "relocation-failed"
)

// IsFailure returns true for outcomes caused by an error.
func (o Outcome) IsFailure() bool {
	switch o {
	case OutcomeSyntaxError, OutcomeFetchFailed, OutcomeExtractFailed, OutcomeRelocationFailed:
		return true
	default:
		return false
	}
}

// DocumentOutcome records the outcome of one document.
type DocumentOutcome struct {
	ShortName   string
	Outcome     Outcome
	Validations int

	// Unresolved are the validations that still need a manual fix.
	Unresolved []Validation

	Err error
}

// RunSummary is returned by a rewrite run.
type RunSummary struct {
	RunID     string
	Documents []DocumentOutcome
}

// Count returns the number of documents with the given outcome.
func (s *RunSummary) Count(o Outcome) int {
	n := 0
	for _, d := range s.Documents {
		if d.Outcome == o {
			n++
		}
	}
	return n
}

// Find returns the outcome recorded for a spec.
func (s *RunSummary) Find(shortName string) (DocumentOutcome, bool) {
	for _, d := range s.Documents {
		if d.ShortName == shortName {
			return d, true
		}
	}
	return DocumentOutcome{}, false
}

// SubmitSummary is returned by a submit run.
type SubmitSummary struct {
	PullRequests []string
	IssuesOpened []string
	IssuesClosed []string
	Skipped      []string
}
