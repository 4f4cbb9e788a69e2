package splice

import (
	"regexp"
	"strings"
)

var (
	annotatedRun = regexp.MustCompile(`<[^>]+>.*?</[^>]+>`)
	anyTag       = regexp.MustCompile(`</?[^>]+>`)
)

// MergeAnnotations re-applies the inline markup of a block to its rewritten
// text. Each "<tag>text</tag>" run found in markup replaces the first
// occurrence of its text in the rewritten block, searching after the
// previously merged run so duplicates are annotated in order.
func MergeAnnotations(markup, text string) string {
	runs := annotatedRun.FindAllString(markup, -1)
	if len(runs) == 0 {
		return text
	}

	cursor := 0
	for _, run := range runs {
		inner := strings.TrimSpace(anyTag.ReplaceAllString(run, ""))
		if inner == "" {
			continue
		}
		i := strings.Index(text[cursor:], inner)
		if i < 0 {
			continue
		}
		at := cursor + i
		text = Splice(text, at, len(inner), run)
		cursor = at + len(run)
	}
	return text
}
