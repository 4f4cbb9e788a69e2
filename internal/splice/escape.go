package splice

import (
	"slices"
	"strings"

	"github.com/custodia-labs/webidl-updater/internal/relocate"
)

// Escape converts replacement to the escaping convention of the matched span.
//
// An escaping pair applies when it fired with the raw form on the document
// side, or when its raw form appears literally in span. Applying a pair first
// folds any raw forms already in replacement back to canonical, so the result
// never double-escapes.
func Escape(replacement, span string, m *relocate.Match, table *relocate.Table) string {
	var active []relocate.Equivalence
	for _, p := range table.Pairs() {
		if !p.Escape || p.Canonical == "" || p.Raw == "" {
			continue
		}
		if firedRaw(m, p) || strings.Contains(span, p.Raw) {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return replacement
	}

	// A pair whose canonical form occurs inside another pair's raw form ("&"
	// in "&lt;") must run first, or it would re-escape the other's output.
	slices.SortStableFunc(active, func(a, b relocate.Equivalence) int {
		return nestedRank(b, active) - nestedRank(a, active)
	})

	for _, p := range active {
		replacement = strings.ReplaceAll(replacement, p.Raw, p.Canonical)
		replacement = strings.ReplaceAll(replacement, p.Canonical, p.Raw)
	}
	return replacement
}

func firedRaw(m *relocate.Match, p relocate.Equivalence) bool {
	if m == nil {
		return false
	}
	for _, s := range m.Substitutions {
		if s.Pair == p && s.HaystackRaw() {
			return true
		}
	}
	return false
}

func nestedRank(p relocate.Equivalence, set []relocate.Equivalence) int {
	n := 0
	for _, q := range set {
		if q != p && strings.Contains(q.Raw, p.Canonical) {
			n++
		}
	}
	return n
}
