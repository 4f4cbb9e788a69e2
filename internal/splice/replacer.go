package splice

import (
	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/relocate"
)

// Edit replaces one block of a document.
type Edit struct {
	// Target is the remembered block markup to relocate.
	Target string

	// Replacement is the normalized text produced by the grammar engine.
	Replacement string

	// Kind selects between aligning (preformatted) and reindenting.
	Kind domain.BlockKind

	// Indent is the formatting context of the original block.
	Indent domain.Indent

	// Merge re-applies the inline markup of Target to the replacement.
	Merge bool
}

// NewEdit builds the edit replacing block b with replacement.
func NewEdit(b domain.Block, replacement string, merge bool) Edit {
	return Edit{
		Target:      b.Markup,
		Replacement: replacement,
		Kind:        b.Kind,
		Indent:      b.Indent,
		Merge:       merge && b.RichMarkup,
	}
}

// Replacer applies edits to a document one after another. Each edit is
// relocated in the text produced by the previous one, starting after the
// last replaced span, so earlier replacements never shift later targets.
type Replacer struct {
	text   string
	cursor int
	table  *relocate.Table
}

// NewReplacer creates a replacer over text. A nil table selects the default
// equivalences.
func NewReplacer(text string, table *relocate.Table) *Replacer {
	if table == nil {
		table = relocate.DefaultTable()
	}
	return &Replacer{text: text, table: table}
}

// Replace relocates e.Target and splices in the formatted replacement.
// On failure the text is left as it was.
func (r *Replacer) Replace(e Edit) error {
	m, err := r.table.Find(r.text, e.Target, r.cursor)
	if err != nil {
		return err
	}

	replacement := r.format(e, r.text[m.Index:m.End()], m)
	r.text = Splice(r.text, m.Index, m.Length, replacement)
	r.cursor = m.Index + len(replacement)
	return nil
}

// Skip moves past an unchanged block so later edits cannot relocate into it.
// A block that cannot be found leaves the position unchanged.
func (r *Replacer) Skip(target string) {
	if m, err := r.table.Find(r.text, target, r.cursor); err == nil {
		r.cursor = m.End()
	}
}

// Text returns the current document text.
func (r *Replacer) Text() string {
	return r.text
}

func (r *Replacer) format(e Edit, span string, m *relocate.Match) string {
	out := e.Replacement
	if e.Kind == domain.BlockPreformatted {
		out = Align(out, e.Indent)
	} else {
		out = Reindent(out, e.Indent)
	}
	out = Escape(out, span, m, r.table)
	if e.Merge {
		out = MergeAnnotations(e.Target, out)
	}
	return out
}
