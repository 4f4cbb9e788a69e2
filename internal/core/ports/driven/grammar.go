package driven

import "github.com/custodia-labs/webidl-updater/internal/core/domain"

// GrammarEngine parses, validates, corrects and serializes Web IDL.
//
// Serialize(Parse(text)) must reproduce text exactly, so that a block whose
// serialization differs from its original text is known to have changed.
type GrammarEngine interface {
	// Parse parses the text of one block. Malformed input returns an error
	// implementing SyntaxFailure.
	Parse(text string, source domain.SourceTag) (GrammarUnit, error)

	// Validate runs every rule across the union of units, so rules may
	// relate definitions from different documents.
	Validate(units []GrammarUnit) []Diagnostic

	// Serialize renders a unit back to text, including any corrections.
	Serialize(unit GrammarUnit) string
}

// GrammarUnit is the parsed form of one block.
type GrammarUnit interface {
	// Source returns the document and block the unit was parsed from.
	Source() domain.SourceTag
}

// Diagnostic is a validation finding about one unit.
type Diagnostic interface {
	Source() domain.SourceTag
	Rule() string
	Level() domain.Level
	Message() string

	// Fixable reports whether the diagnostic carries a correction.
	Fixable() bool

	// Autofix applies the correction to the owning unit. It is idempotent
	// and returns false when there is nothing (more) to apply.
	Autofix() bool
}

// SyntaxFailure is implemented by parse errors.
type SyntaxFailure interface {
	error

	// Failure returns the persisted form of the error.
	Failure() domain.SyntaxFailure
}
