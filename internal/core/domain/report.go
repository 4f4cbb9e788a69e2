package domain

import (
	"encoding/json"
	"strings"
)

// Level is the severity of a validation.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// Validation is a diagnostic as persisted in a report.
type Validation struct {
	// Block is the index of the block the diagnostic concerns.
	Block int `json:"block"`

	// Rule is the validation rule name (e.g., "require-exposed").
	Rule string `json:"ruleName"`

	// Level is the severity.
	Level Level `json:"level"`

	// Message is the human-readable message, including source context.
	Message string `json:"message"`

	// Autofixed is set when the rule's correction was applied.
	Autofixed bool `json:"autofixed"`
}

// SyntaxFailure is a fatal parse failure for a document.
type SyntaxFailure struct {
	Block       int    `json:"block"`
	Context     string `json:"context"`
	BareMessage string `json:"bareMessage"`
}

// Report is the persisted summary of one document's rewrite.
// It holds either validations (with diff and markup flags) or a syntax
// failure, never both.
type Report struct {
	// RunID identifies the rewrite run that produced the report.
	RunID string

	Validations  []Validation
	Diff         bool
	IncludesHTML bool

	Syntax *SyntaxFailure
}

// NewValidationReport creates a report for a document that parsed.
func NewValidationReport(runID string, validations []Validation, diff, includesHTML bool) *Report {
	if validations == nil {
		validations = []Validation{}
	}
	return &Report{
		RunID:        runID,
		Validations:  validations,
		Diff:         diff,
		IncludesHTML: includesHTML,
	}
}

// NewSyntaxReport creates a report for a document that failed to parse.
func NewSyntaxReport(runID string, failure SyntaxFailure) *Report {
	return &Report{RunID: runID, Syntax: &failure}
}

// IsSyntax returns true for a fatal parse failure report.
func (r *Report) IsSyntax() bool {
	return r.Syntax != nil
}

// Validate checks that exactly one of validations and syntax is present.
func (r *Report) Validate() error {
	if r.Syntax == nil && r.Validations == nil {
		return ErrInvalidReport
	}
	if r.Syntax != nil && len(r.Validations) > 0 {
		return ErrInvalidReport
	}
	return nil
}

// Messages joins validation messages with blank lines.
func (r *Report) Messages() string {
	return JoinMessages(r.Validations)
}

// Unresolved returns the validations that were not fixed automatically.
func (r *Report) Unresolved() []Validation {
	return Unresolved(r.Validations)
}

// Unresolved filters vs down to the validations no correction was applied to.
func Unresolved(vs []Validation) []Validation {
	var out []Validation
	for _, v := range vs {
		if !v.Autofixed {
			out = append(out, v)
		}
	}
	return out
}

// JoinMessages joins the messages of vs with blank lines.
func JoinMessages(vs []Validation) string {
	msgs := make([]string, 0, len(vs))
	for _, v := range vs {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "\n\n")
}

type validationJSON struct {
	RunID        string       `json:"runId,omitempty"`
	Validations  []Validation `json:"validations"`
	Diff         bool         `json:"diff"`
	IncludesHTML bool         `json:"includesHTML"`
}

type syntaxJSON struct {
	RunID  string         `json:"runId,omitempty"`
	Syntax *SyntaxFailure `json:"syntax"`
}

// MarshalJSON writes one of the two mutually exclusive report shapes.
func (r Report) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	if r.Syntax != nil {
		return json.Marshal(syntaxJSON{RunID: r.RunID, Syntax: r.Syntax})
	}
	return json.Marshal(validationJSON{
		RunID:        r.RunID,
		Validations:  r.Validations,
		Diff:         r.Diff,
		IncludesHTML: r.IncludesHTML,
	})
}

// UnmarshalJSON reads either report shape and rejects reports with neither.
func (r *Report) UnmarshalJSON(data []byte) error {
	var raw struct {
		RunID        string         `json:"runId"`
		Validations  *[]Validation  `json:"validations"`
		Diff         bool           `json:"diff"`
		IncludesHTML bool           `json:"includesHTML"`
		Syntax       *SyntaxFailure `json:"syntax"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = Report{
		RunID:        raw.RunID,
		Diff:         raw.Diff,
		IncludesHTML: raw.IncludesHTML,
		Syntax:       raw.Syntax,
	}
	if raw.Validations != nil {
		r.Validations = *raw.Validations
		if r.Validations == nil {
			r.Validations = []Validation{}
		}
	}
	return r.Validate()
}

// RewriteResult is the in-memory output of rewriting one document.
type RewriteResult struct {
	ShortName string

	// Diff is set when at least one block changed and was spliced.
	Diff bool

	// Text is the rewritten document; only meaningful when Diff is set.
	Text string

	// Original is the fetched text, kept for patch generation.
	Original string

	// IncludesHTML is set when a block contains rich markup.
	IncludesHTML bool

	// Validations belong to this document.
	Validations []Validation
}
