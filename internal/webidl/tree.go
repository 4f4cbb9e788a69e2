package webidl

import (
	"slices"
	"strings"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// DefinitionKind is the kind of a top-level definition.
type DefinitionKind string

const (
	KindInterface         DefinitionKind = "interface"
	KindInterfaceMixin    DefinitionKind = "interface mixin"
	KindCallbackInterface DefinitionKind = "callback interface"
	KindCallback          DefinitionKind = "callback"
	KindDictionary        DefinitionKind = "dictionary"
	KindNamespace         DefinitionKind = "namespace"
	KindEnum              DefinitionKind = "enum"
	KindTypedef           DefinitionKind = "typedef"
	KindIncludes          DefinitionKind = "includes"
)

// MemberKind is the kind of a member of a definition body.
type MemberKind string

const (
	MemberOperation   MemberKind = "operation"
	MemberConstructor MemberKind = "constructor"
	MemberAttribute   MemberKind = "attribute"
	MemberConst       MemberKind = "const"
	MemberField       MemberKind = "field"
	MemberOther       MemberKind = "member"
)

// Tree is the parsed form of one block.
type Tree struct {
	Definitions []*Definition

	source   domain.SourceTag
	text     string
	tokens   []*Token
	trailing string
}

// Source returns the document and block the tree was parsed from.
func (t *Tree) Source() domain.SourceTag {
	return t.source
}

// String serializes the tree.
func (t *Tree) String() string {
	var b strings.Builder
	for _, tok := range t.tokens {
		b.WriteString(tok.Trivia)
		b.WriteString(tok.Value)
	}
	b.WriteString(t.trailing)
	return b.String()
}

func (t *Tree) indexOf(tok *Token) int {
	return slices.Index(t.tokens, tok)
}

func (t *Tree) insertBefore(at *Token, toks ...*Token) {
	if i := t.indexOf(at); i >= 0 {
		t.tokens = slices.Insert(t.tokens, i, toks...)
	}
}

func (t *Tree) insertAfter(at *Token, toks ...*Token) {
	if i := t.indexOf(at); i >= 0 {
		t.tokens = slices.Insert(t.tokens, i+1, toks...)
	}
}

func (t *Tree) remove(toks ...*Token) {
	t.tokens = slices.DeleteFunc(t.tokens, func(tok *Token) bool {
		return slices.Contains(toks, tok)
	})
}

// next returns the token following tok, or nil.
func (t *Tree) next(tok *Token) *Token {
	if i := t.indexOf(tok); i >= 0 && i+1 < len(t.tokens) {
		return t.tokens[i+1]
	}
	return nil
}

// Definition is a top-level definition.
type Definition struct {
	Kind     DefinitionKind
	Name     string
	Partial  bool
	ExtAttrs *ExtAttrList
	Members  []*Member

	// Args holds the arguments of a callback function.
	Args []*Argument

	// typeTokens holds the type of a typedef or the return type of a
	// callback function.
	typeTokens []*Token

	start *Token
	name  *Token
	open  *Token
	close *Token
}

// Member is a member of an interface, mixin, namespace or dictionary.
type Member struct {
	Kind     MemberKind
	Name     string
	Required bool
	ExtAttrs *ExtAttrList
	Args     []*Argument

	// tokens holds the member after its extended attributes, ";" included.
	tokens []*Token
}

func (m *Member) first() *Token {
	if m.ExtAttrs.Open != nil {
		return m.ExtAttrs.Open
	}
	return m.tokens[0]
}

func (m *Member) last() *Token {
	return m.tokens[len(m.tokens)-1]
}

// Argument is an operation, constructor or callback argument.
type Argument struct {
	ExtAttrs *ExtAttrList
	Optional bool
	Variadic bool
	Name     string

	typeTokens []*Token
	name       *Token
	defaults   []*Token
}

// TypeName returns the argument type when it is a single identifier.
func (a *Argument) TypeName() string {
	if len(a.typeTokens) == 1 && a.typeTokens[0].Kind == TokenIdentifier {
		return a.typeTokens[0].Value
	}
	return ""
}

// HasDefault reports whether the argument has a default value.
func (a *Argument) HasDefault() bool {
	return len(a.defaults) > 0
}

// ExtAttrList is a bracketed extended attribute list. Open and Close are
// nil when the list is absent.
type ExtAttrList struct {
	Open  *Token
	Close *Token
	Items []*ExtAttr
}

// Find returns the attribute with the given name.
func (l *ExtAttrList) Find(name string) *ExtAttr {
	for _, a := range l.Items {
		if a.Name.Value == name {
			return a
		}
	}
	return nil
}

// ExtAttr is one extended attribute.
type ExtAttr struct {
	Name      *Token
	Separator *Token

	// Args holds the parsed arguments of forms such as Constructor(...).
	Args []*Argument

	// tokens holds the attribute from its name up to its separator.
	tokens []*Token
}

// argTokens returns the parenthesized argument list following the name.
func (a *ExtAttr) argTokens() []*Token {
	if len(a.tokens) > 1 && a.tokens[1].Value == "(" {
		return a.tokens[1:]
	}
	return nil
}

// removeExtAttr removes attr from list and from the token stream, keeping
// the punctuation of the remaining list valid.
func (t *Tree) removeExtAttr(list *ExtAttrList, attr *ExtAttr) {
	i := slices.Index(list.Items, attr)
	if i < 0 {
		return
	}

	switch {
	case len(list.Items) == 1:
		following := t.next(list.Close)
		t.remove(append([]*Token{list.Open, list.Close}, attr.tokens...)...)
		if following != nil {
			following.Trivia = list.Open.Trivia
		}
		list.Open, list.Close = nil, nil

	case i == len(list.Items)-1:
		prev := list.Items[i-1]
		t.remove(append([]*Token{prev.Separator}, attr.tokens...)...)
		prev.Separator = nil

	default:
		t.remove(append([]*Token{attr.Separator}, attr.tokens...)...)
		next := list.Items[i+1]
		if strings.TrimSpace(next.Name.Trivia) == "" {
			next.Name.Trivia = attr.Name.Trivia
		}
	}
	list.Items = slices.Delete(list.Items, i, i+1)
}

// prependExtAttr adds an attribute in front of the list of def, creating
// the list on its own line when def has none.
func (t *Tree) prependExtAttr(def *Definition, toks ...*Token) {
	list := def.ExtAttrs
	attr := &ExtAttr{Name: toks[0], tokens: toks}

	if list.Open == nil {
		list.Open = newToken(TokenOther, "[", def.start.Trivia)
		list.Close = newToken(TokenOther, "]", "")
		t.insertBefore(def.start, append(append([]*Token{list.Open}, toks...), list.Close)...)
		def.start.Trivia = "\n" + lastIndentation(list.Open.Trivia)
		list.Items = []*ExtAttr{attr}
		return
	}

	attr.Separator = newToken(TokenOther, ",", "")
	first := list.Items[0]
	t.insertBefore(first.Name, append(toks, attr.Separator)...)
	if !strings.HasPrefix(first.Name.Trivia, " ") && !strings.HasPrefix(first.Name.Trivia, "\n") {
		first.Name.Trivia = " " + first.Name.Trivia
	}
	list.Items = slices.Insert(list.Items, 0, attr)
}

// lastIndentation returns the leading whitespace of the last line of trivia.
func lastIndentation(trivia string) string {
	line := trivia[strings.LastIndex(trivia, "\n")+1:]
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// memberIndentation returns the indentation of members of a body whose
// definition is indented by parent.
func memberIndentation(parent string) string {
	if strings.Contains(parent, "\t") {
		return parent + "\t"
	}
	return parent + "  "
}
