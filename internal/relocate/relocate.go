package relocate

import (
	"errors"
	"strings"
)

var (
	// ErrNoMatch indicates the target is not present under the table's equivalences.
	ErrNoMatch = errors.New("relocate: no match")

	// ErrEmptyTarget indicates an empty search target.
	ErrEmptyTarget = errors.New("relocate: empty target")
)

var defaultTable = DefaultTable()

// Substitution records an equivalence that fired during a match.
type Substitution struct {
	Pair Equivalence

	// Haystack is the form found in the document.
	Haystack string

	// Target is the form found in the searched text.
	Target string
}

// HaystackRaw reports whether the document held the raw form of the pair.
func (s Substitution) HaystackRaw() bool {
	return s.Haystack == s.Pair.Raw
}

// Match is a span of the haystack equal to the target modulo equivalences.
type Match struct {
	// Index is the byte offset of the span in the haystack.
	Index int

	// Length is the byte length of the span in the haystack, which may
	// differ from the target's length.
	Length int

	// Substitutions lists each distinct equivalence that fired.
	Substitutions []Substitution
}

// End returns the offset just past the span.
func (m *Match) End() int {
	return m.Index + m.Length
}

// Find locates target in haystack using the default table.
func Find(haystack, target string) (*Match, error) {
	return defaultTable.Find(haystack, target, 0)
}

// Find returns the leftmost span of haystack at or after from that equals
// target modulo the table's equivalences.
//
// Candidate starts are tried left to right and never revisited. At each
// candidate the two strings are walked in lockstep; a position where they
// differ is accepted only if an equivalence accounts for it.
func (t *Table) Find(haystack, target string, from int) (*Match, error) {
	if target == "" {
		return nil, ErrEmptyTarget
	}
	if from < 0 {
		from = 0
	}

	anchors := t.anchorBytes(target)
	for p := from; p < len(haystack); p++ {
		if !anchors[haystack[p]] {
			continue
		}
		if m, ok := t.walk(haystack, target, p); ok {
			return m, nil
		}
	}
	return nil, ErrNoMatch
}

// anchorBytes returns the bytes a matching span can start with: the target's
// first byte, or the first byte of an alternative form of the target's prefix.
func (t *Table) anchorBytes(target string) *[256]bool {
	var set [256]bool
	set[target[0]] = true
	for _, p := range t.pairs {
		if p.hasEmptyForm() {
			continue
		}
		if strings.HasPrefix(target, p.Canonical) {
			set[p.Raw[0]] = true
		}
		if strings.HasPrefix(target, p.Raw) {
			set[p.Canonical[0]] = true
		}
	}
	return &set
}

func (t *Table) walk(haystack, target string, start int) (*Match, bool) {
	i, j := 0, start
	var subs []Substitution
	for i < len(target) {
		ti, hj, sub, ok := t.step(target[i:], haystack[j:])
		if !ok {
			return nil, false
		}
		if sub != nil && !containsSubstitution(subs, *sub) {
			subs = append(subs, *sub)
		}
		i += ti
		j += hj
	}
	return &Match{Index: start, Length: j - start, Substitutions: subs}, true
}

// step consumes one unit from both sides. Pairs whose two forms are both
// non-empty are tried before the exact comparison, so that "&amp;" in one
// string is not matched byte by byte against a bare "&" in the other. Pairs
// with an empty form only apply where the bytes actually differ.
func (t *Table) step(target, haystack string) (int, int, *Substitution, bool) {
	for _, p := range t.pairs {
		if p.hasEmptyForm() {
			continue
		}
		longer := p.longer()
		if strings.HasPrefix(target, longer) && strings.HasPrefix(haystack, longer) {
			continue
		}
		if strings.HasPrefix(target, p.Canonical) && strings.HasPrefix(haystack, p.Raw) {
			return len(p.Canonical), len(p.Raw), &Substitution{Pair: p, Haystack: p.Raw, Target: p.Canonical}, true
		}
		if strings.HasPrefix(target, p.Raw) && strings.HasPrefix(haystack, p.Canonical) {
			return len(p.Raw), len(p.Canonical), &Substitution{Pair: p, Haystack: p.Canonical, Target: p.Raw}, true
		}
	}

	if haystack != "" && target[0] == haystack[0] {
		return 1, 1, nil, true
	}

	for _, p := range t.pairs {
		if !p.hasEmptyForm() {
			continue
		}
		if p.Canonical != "" && strings.HasPrefix(target, p.Canonical) {
			return len(p.Canonical), 0, &Substitution{Pair: p, Haystack: "", Target: p.Canonical}, true
		}
		if p.Raw != "" && strings.HasPrefix(target, p.Raw) {
			return len(p.Raw), 0, &Substitution{Pair: p, Haystack: "", Target: p.Raw}, true
		}
		if p.Canonical != "" && strings.HasPrefix(haystack, p.Canonical) {
			return 0, len(p.Canonical), &Substitution{Pair: p, Haystack: p.Canonical, Target: ""}, true
		}
		if p.Raw != "" && strings.HasPrefix(haystack, p.Raw) {
			return 0, len(p.Raw), &Substitution{Pair: p, Haystack: p.Raw, Target: ""}, true
		}
	}
	return 0, 0, nil, false
}

func containsSubstitution(subs []Substitution, s Substitution) bool {
	for _, x := range subs {
		if x.Haystack == s.Haystack && x.Target == s.Target {
			return true
		}
	}
	return false
}
