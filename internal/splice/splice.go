// Package splice writes normalized Web IDL text back into a document at the
// spans found by the relocate package, keeping the document's own escaping,
// line endings and indentation.
package splice

// Splice returns text with the length bytes at index replaced by replacement.
// It performs no validation; callers pass spans found by a relocator.
func Splice(text string, index, length int, replacement string) string {
	return text[:index] + replacement + text[index+length:]
}
