// Package file provides a directory-backed report store.
//
// Each document produces up to five files in the output directory:
//
//	<name>                  rewritten document
//	<name>.patch            unified diff against the fetched document
//	<name>.validations.txt  validation messages separated by blank lines
//	<name>.unresolved.txt   the subset of messages that need a manual fix
//	<name>.report.json      machine-readable report used by submit runs
package file
