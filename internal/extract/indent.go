package extract

import (
	"strings"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/splice"
)

// indentOf returns the formatting context of a block: the indentation of
// its first non-blank line and the indentation of the line it opens on,
// taken from the text before it.
func indentOf(text, before string) domain.Indent {
	var ind domain.Indent
	ind.Width, ind.Char = splice.Detect(text)

	if i := strings.LastIndex(before, "\n"); i >= 0 {
		rest := before[i+1:]
		ind.Trailing = rest[:len(rest)-len(strings.TrimLeft(rest, " \t"))]
	}
	return ind
}
