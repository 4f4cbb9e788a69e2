// Package relocate finds a remembered text span inside a document whose
// characters may have been encoded differently since the span was recorded.
//
// Only the substitutions listed in a Table are tolerated. Everything else must
// match byte for byte, so a span is never found "approximately".
package relocate

import "sort"

// Equivalence pairs a canonical substring with a raw substring that may stand
// in for it in document source (an entity, a quoting style, a line ending).
type Equivalence struct {
	// Canonical is the form found in normalized text, e.g. ">".
	Canonical string

	// Raw is the alternative source form, e.g. "&gt;". It may be empty
	// when the canonical form can be omitted entirely.
	Raw string

	// Escape marks pairs that describe an escaping convention. When such a
	// pair fires with the raw form on the document side, replacement text is
	// converted to the raw form before it is written back.
	Escape bool
}

func (e Equivalence) longest() int {
	return max(len(e.Canonical), len(e.Raw))
}

func (e Equivalence) longer() string {
	if len(e.Raw) > len(e.Canonical) {
		return e.Raw
	}
	return e.Canonical
}

func (e Equivalence) hasEmptyForm() bool {
	return e.Canonical == "" || e.Raw == ""
}

// Table is an ordered set of equivalences, most specific first.
type Table struct {
	pairs []Equivalence
}

// NewTable creates a table. Pairs are ordered longest first; pairs of equal
// length keep the order given.
func NewTable(pairs ...Equivalence) *Table {
	sorted := make([]Equivalence, 0, len(pairs))
	for _, p := range pairs {
		if p.Canonical == p.Raw {
			continue
		}
		sorted = append(sorted, p)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].longest() > sorted[j].longest()
	})
	return &Table{pairs: sorted}
}

// Pairs returns the equivalences in the order they are tried.
func (t *Table) Pairs() []Equivalence {
	out := make([]Equivalence, len(t.pairs))
	copy(out, t.pairs)
	return out
}

// DefaultTable returns the equivalences between a DOM serialization of a
// block and the hand-written source it was parsed from.
func DefaultTable() *Table {
	return NewTable(
		Equivalence{Canonical: "<", Raw: "&lt;", Escape: true},
		Equivalence{Canonical: ">", Raw: "&gt;", Escape: true},
		Equivalence{Canonical: "&", Raw: "&amp;", Escape: true},
		Equivalence{Canonical: "\u00a0", Raw: "&nbsp;", Escape: true},
		Equivalence{Canonical: `"`, Raw: "&quot;"},
		// Serializers write boolean attributes as hidden="", sources as hidden.
		Equivalence{Canonical: `=""`, Raw: ""},
		Equivalence{Canonical: `"`, Raw: "'"},
		Equivalence{Canonical: "\n", Raw: "\r\n", Escape: true},
	)
}
