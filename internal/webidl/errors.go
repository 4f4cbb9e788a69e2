package webidl

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// SyntaxError describes malformed Web IDL.
type SyntaxError struct {
	Source domain.SourceTag
	Line   int

	// Context names the position and shows the offending line with a caret.
	Context string

	// BareMessage is the short description of the error.
	BareMessage string
}

func (e *SyntaxError) Error() string {
	return e.Context + " " + e.BareMessage
}

// Failure returns the persisted form of the error.
func (e *SyntaxError) Failure() domain.SyntaxFailure {
	return domain.SyntaxFailure{
		Block:       e.Source.Block,
		Context:     e.Context,
		BareMessage: e.BareMessage,
	}
}

// position returns the 1-based line and the source line containing offset.
func position(text string, offset int) (int, string, int) {
	offset = min(max(offset, 0), len(text))
	line := strings.Count(text[:offset], "\n") + 1
	start := strings.LastIndex(text[:offset], "\n") + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += offset
	}
	return line, text[start:end], offset - start
}

// snippet renders the line containing offset with a caret under it.
// Tabs before the caret are kept so it lines up.
func snippet(text string, offset int) (int, string) {
	line, src, col := position(text, offset)
	caret := make([]byte, 0, col+1)
	for i := 0; i < col; i++ {
		if src[i] == '\t' {
			caret = append(caret, '\t')
		} else {
			caret = append(caret, ' ')
		}
	}
	caret = append(caret, '^')
	return line, src + "\n" + string(caret)
}

func describe(kind, name string) string {
	if name == "" {
		return kind
	}
	return fmt.Sprintf("%s %s", kind, name)
}
