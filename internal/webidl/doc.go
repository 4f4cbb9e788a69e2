// Package webidl is a concrete-syntax Web IDL engine.
//
// It keeps every token of its input, along with the whitespace and comments
// preceding it, so that serializing an unmodified tree returns the input
// byte for byte. Corrections edit the token stream in place, which keeps the
// author's formatting everywhere outside the corrected construct.
//
// # Components
//
//   - Lexer: participle lexer rules producing tokens and trivia
//   - Parser: recursive descent over the token stream, building a Tree
//   - Rules: validation rules producing Diagnostics, most with an Autofix
//   - Engine: the [driven.GrammarEngine] implementation
//
// # Rules
//
//   - no-duplicate: a definition name is defined more than once across all trees
//   - require-exposed: interface or namespace without [Exposed]
//   - replace-void: void type, fixed to undefined
//   - renamed-legacy: legacy extended attribute name, fixed to its Legacy* name
//   - constructor-member: [Constructor] attribute, fixed to a constructor() member
//   - dict-arg-default: optional dictionary argument without a default, fixed to = {}
package webidl
