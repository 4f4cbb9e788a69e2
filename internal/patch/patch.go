// Package patch renders unified diffs of rewritten documents.
package patch

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of unchanged lines around each hunk.
const DefaultContext = 4

const separator = "==================================================================="

// Create returns a unified diff turning before into after, headed by the
// file name. Identical inputs produce a header without hunks.
func Create(name, before, after string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        lines(before),
		B:        lines(after),
		FromFile: name,
		ToFile:   name,
		Context:  DefaultContext,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", name, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Index: %s\n%s\n", name, separator)
	if diff == "" {
		fmt.Fprintf(&b, "--- %s\n+++ %s\n", name, name)
		return b.String(), nil
	}
	b.WriteString(diff)
	return b.String(), nil
}

// lines splits text after each newline. A final line without a newline is
// marked the way diff tools mark it.
func lines(text string) []string {
	if text == "" {
		return nil
	}
	out := strings.SplitAfter(text, "\n")
	if last := out[len(out)-1]; last == "" {
		return out[:len(out)-1]
	}
	out[len(out)-1] += "\n\\ No newline at end of file\n"
	return out
}
