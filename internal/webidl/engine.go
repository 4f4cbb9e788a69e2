package webidl

import (
	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.GrammarEngine = (*Engine)(nil)

// Engine implements driven.GrammarEngine.
type Engine struct{}

// NewEngine creates a new Web IDL grammar engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Parse parses the text of one block.
func (e *Engine) Parse(text string, source domain.SourceTag) (driven.GrammarUnit, error) {
	tree, err := Parse(text, source)
	if err != nil {
		return nil, err
	}
	return tree, nil
}

// Validate runs every rule across the given units. Units not produced by
// this engine are ignored.
func (e *Engine) Validate(units []driven.GrammarUnit) []driven.Diagnostic {
	trees := make([]*Tree, 0, len(units))
	for _, u := range units {
		if tree, ok := u.(*Tree); ok {
			trees = append(trees, tree)
		}
	}

	diags := Validate(trees)
	out := make([]driven.Diagnostic, len(diags))
	for i, d := range diags {
		out[i] = d
	}
	return out
}

// Serialize renders a unit back to text.
func (e *Engine) Serialize(unit driven.GrammarUnit) string {
	if tree, ok := unit.(*Tree); ok {
		return tree.String()
	}
	return ""
}
