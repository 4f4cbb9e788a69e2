package webidl

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// TokenKind classifies a token.
type TokenKind int

const (
	TokenIdentifier TokenKind = iota
	TokenInteger
	TokenFloat
	TokenString
	TokenOther
)

// idlLexer tokenizes Web IDL. Order matters: floats before integers and the
// ellipsis before single punctuation. Whitespace and comments are trivia.
var idlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{Name: "Whitespace", Pattern: `[\t\n\r ]+`},
	{Name: "Float", Pattern: `-?(?:(?:[0-9]+\.[0-9]*|[0-9]*\.[0-9]+)(?:[Ee][+-]?[0-9]+)?|[0-9]+[Ee][+-]?[0-9]+)`},
	{Name: "Integer", Pattern: `-?(?:[1-9][0-9]*|0[Xx][0-9A-Fa-f]+|0[0-7]*)`},
	{Name: "String", Pattern: `"[^"]*"`},
	{Name: "Identifier", Pattern: `[_-]?[A-Za-z][0-9A-Z_a-z-]*`},
	{Name: "Ellipsis", Pattern: `\.\.\.`},
	{Name: "Other", Pattern: `[^\t\n\r 0-9A-Za-z]`},
})

var (
	symbols        = idlLexer.Symbols()
	typeComment    = symbols["Comment"]
	typeWhitespace = symbols["Whitespace"]
	tokenKinds     = map[lexer.TokenType]TokenKind{
		symbols["Float"]:      TokenFloat,
		symbols["Integer"]:    TokenInteger,
		symbols["String"]:     TokenString,
		symbols["Identifier"]: TokenIdentifier,
		symbols["Ellipsis"]:   TokenOther,
		symbols["Other"]:      TokenOther,
	}
)

// Token is one significant token and the trivia preceding it.
type Token struct {
	Kind   TokenKind
	Value  string
	Trivia string

	// Offset is the byte offset of Value in the parsed text. Tokens inserted
	// by corrections have offset -1.
	Offset int
}

func newToken(kind TokenKind, value, trivia string) *Token {
	return &Token{Kind: kind, Value: value, Trivia: trivia, Offset: -1}
}

// tokenize splits text into tokens. Trivia after the last token is returned
// separately.
func tokenize(text string) ([]*Token, string, error) {
	lex, err := idlLexer.LexString("", text)
	if err != nil {
		return nil, "", err
	}
	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, "", err
	}

	var tokens []*Token
	var trivia strings.Builder
	for _, t := range raw {
		if t.EOF() {
			break
		}
		if t.Type == typeComment || t.Type == typeWhitespace {
			trivia.WriteString(t.Value)
			continue
		}
		tokens = append(tokens, &Token{
			Kind:   tokenKinds[t.Type],
			Value:  t.Value,
			Trivia: trivia.String(),
			Offset: t.Pos.Offset,
		})
		trivia.Reset()
	}
	return tokens, trivia.String(), nil
}
