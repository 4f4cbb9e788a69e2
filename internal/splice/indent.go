package splice

import (
	"strings"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// Reindent formats replacement text for a block whose surrounding whitespace
// does not render. Non-blank lines are shifted so the first one starts at
// ind.Width, blank lines are emptied, and the text ends with a newline
// followed by ind.Trailing so the closing markup keeps its column.
func Reindent(text string, ind domain.Indent) string {
	lines := strings.Split(text, "\n")
	delta, ok := indentDelta(lines, ind.Width)
	if !ok {
		return text
	}

	for i, line := range lines {
		if isBlank(line) {
			lines[i] = ""
			continue
		}
		lines[i] = shift(line, delta, indentChar(ind))
	}
	out := strings.TrimRight(strings.Join(lines, "\n"), " \t\r\n")
	return out + "\n" + ind.Trailing
}

// Align shifts the non-blank lines of a preformatted block so its first
// line starts at ind.Width. Everything else, blank lines included, is kept.
func Align(text string, ind domain.Indent) string {
	lines := strings.Split(text, "\n")
	delta, ok := indentDelta(lines, ind.Width)
	if !ok || delta == 0 {
		return text
	}

	for i, line := range lines {
		if !isBlank(line) {
			lines[i] = shift(line, delta, indentChar(ind))
		}
	}
	return strings.Join(lines, "\n")
}

// Detect returns the indentation of the first non-blank line of text.
func Detect(text string) (width int, char byte) {
	for _, line := range strings.Split(text, "\n") {
		if isBlank(line) {
			continue
		}
		width = leadingWidth(line)
		if width > 0 {
			char = line[0]
		}
		return width, char
	}
	return 0, 0
}

func indentDelta(lines []string, width int) (int, bool) {
	for _, line := range lines {
		if !isBlank(line) {
			return width - leadingWidth(line), true
		}
	}
	return 0, false
}

func shift(line string, delta int, char byte) string {
	if delta > 0 {
		return strings.Repeat(string(char), delta) + line
	}
	drop := min(-delta, leadingWidth(line))
	return line[drop:]
}

func indentChar(ind domain.Indent) byte {
	if ind.Char == 0 {
		return ' '
	}
	return ind.Char
}

func leadingWidth(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
