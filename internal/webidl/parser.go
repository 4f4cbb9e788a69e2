package webidl

import (
	"fmt"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// Parse parses the text of one block.
func Parse(text string, source domain.SourceTag) (*Tree, error) {
	tree := &Tree{source: source, text: text}

	tokens, trailing, err := tokenize(text)
	if err != nil {
		return nil, &SyntaxError{
			Source:      source,
			Line:        1,
			Context:     fmt.Sprintf("Syntax error in %s:", source),
			BareMessage: err.Error(),
		}
	}
	tree.tokens, tree.trailing = tokens, trailing

	p := &parser{tree: tree, toks: tokens}
	for !p.done() {
		def, err := p.definition()
		if err != nil {
			return nil, err
		}
		tree.Definitions = append(tree.Definitions, def)
	}
	return tree, nil
}

type parser struct {
	tree *Tree
	toks []*Token
	pos  int

	// last is the most recent definition, named in error context.
	last *Definition
}

func (p *parser) done() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) peek() *Token {
	if p.done() {
		return nil
	}
	return p.toks[p.pos]
}

func (p *parser) peekIs(value string) bool {
	t := p.peek()
	return t != nil && t.Value == value
}

func (p *parser) next() *Token {
	t := p.peek()
	if t != nil {
		p.pos++
	}
	return t
}

func (p *parser) expect(value, msg string) (*Token, error) {
	if !p.peekIs(value) {
		return nil, p.errorf(msg)
	}
	return p.next(), nil
}

func (p *parser) identifier(msg string) (*Token, error) {
	t := p.peek()
	if t == nil || t.Kind != TokenIdentifier {
		return nil, p.errorf(msg)
	}
	return p.next(), nil
}

func (p *parser) errorf(msg string) *SyntaxError {
	return p.errorAt(p.peek(), msg)
}

func (p *parser) errorAt(t *Token, msg string) *SyntaxError {
	offset := len(p.tree.text)
	switch {
	case t != nil && t.Offset >= 0:
		offset = t.Offset
	case len(p.toks) > 0:
		last := p.toks[len(p.toks)-1]
		offset = last.Offset + len(last.Value)
	}

	line, snip := snippet(p.tree.text, offset)
	var since string
	if p.last != nil {
		since = fmt.Sprintf(", since `%s`", describe(string(p.last.Kind), p.last.Name))
	}
	return &SyntaxError{
		Source:      p.tree.source,
		Line:        line,
		Context:     fmt.Sprintf("Syntax error at line %d in %s%s:\n%s", line, p.tree.source, since, snip),
		BareMessage: msg,
	}
}

func (p *parser) definition() (*Definition, error) {
	attrs, err := p.extAttrs()
	if err != nil {
		return nil, err
	}
	def := &Definition{ExtAttrs: attrs, start: p.peek()}
	if def.start == nil {
		return nil, p.errorf("Stray extended attributes")
	}

	switch {
	case p.peekIs("callback"):
		p.next()
		if p.peekIs("interface") {
			p.next()
			def.Kind = KindCallbackInterface
			return def, p.body(def, false)
		}
		def.Kind = KindCallback
		return def, p.callback(def)

	case p.peekIs("interface"):
		p.next()
		if p.peekIs("mixin") {
			p.next()
			def.Kind = KindInterfaceMixin
			return def, p.body(def, false)
		}
		def.Kind = KindInterface
		return def, p.body(def, true)

	case p.peekIs("partial"):
		p.next()
		def.Partial = true
		switch {
		case p.peekIs("interface"):
			p.next()
			def.Kind = KindInterface
			if p.peekIs("mixin") {
				p.next()
				def.Kind = KindInterfaceMixin
			}
		case p.peekIs("dictionary"):
			p.next()
			def.Kind = KindDictionary
		case p.peekIs("namespace"):
			p.next()
			def.Kind = KindNamespace
		default:
			return nil, p.errorf("Partial doesn't apply to anything")
		}
		return def, p.body(def, false)

	case p.peekIs("dictionary"):
		p.next()
		def.Kind = KindDictionary
		return def, p.body(def, true)

	case p.peekIs("namespace"):
		p.next()
		def.Kind = KindNamespace
		return def, p.body(def, false)

	case p.peekIs("enum"):
		p.next()
		def.Kind = KindEnum
		return def, p.enum(def)

	case p.peekIs("typedef"):
		p.next()
		def.Kind = KindTypedef
		return def, p.typedef(def)

	case def.start.Kind == TokenIdentifier:
		def.Kind = KindIncludes
		return def, p.includes(def)
	}
	return nil, p.errorf("Unrecognised tokens")
}

func (p *parser) name(def *Definition) error {
	name, err := p.identifier(fmt.Sprintf("Missing name in %s", def.Kind))
	if err != nil {
		return err
	}
	def.name, def.Name = name, name.Value
	p.last = def
	return nil
}

func (p *parser) body(def *Definition, inheritance bool) error {
	if err := p.name(def); err != nil {
		return err
	}
	if inheritance && p.peekIs(":") {
		p.next()
		if _, err := p.identifier("Inheritance lacks a type"); err != nil {
			return err
		}
	}

	open, err := p.expect("{", fmt.Sprintf("Bodyless %s", def.Kind))
	if err != nil {
		return err
	}
	def.open = open

	for !p.peekIs("}") {
		if p.done() {
			return p.errorf(fmt.Sprintf("Missing closing bracket after %s", def.Kind))
		}
		m, err := p.member(def)
		if err != nil {
			return err
		}
		def.Members = append(def.Members, m)
	}
	def.close = p.next()

	_, err = p.expect(";", fmt.Sprintf("Missing semicolon after %s", def.Kind))
	return err
}

func (p *parser) member(def *Definition) (*Member, error) {
	attrs, err := p.extAttrs()
	if err != nil {
		return nil, err
	}
	m := &Member{ExtAttrs: attrs}

	depth := 0
	for {
		t := p.peek()
		if t == nil || (depth == 0 && t.Value == "}") {
			return nil, p.errorf("Missing semicolon after member")
		}
		p.next()
		m.tokens = append(m.tokens, t)
		if depth == 0 && t.Value == ";" {
			break
		}
		switch t.Value {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		}
	}
	if len(m.tokens) == 1 {
		return nil, p.errorAt(m.tokens[0], "Unexpected semicolon")
	}
	return m, p.classify(def, m)
}

// classify determines the kind and name of a member and parses its arguments.
func (p *parser) classify(def *Definition, m *Member) error {
	toks := m.tokens[:len(m.tokens)-1]

	// The argument list is the group closing the member; earlier groups are
	// union types.
	paren := -1
	if last := len(toks) - 1; toks[last].Value == ")" {
		if paren = matchingOpen(toks, last); paren < 0 {
			return p.errorAt(toks[last], "Unbalanced parentheses")
		}
	}

	switch {
	case def.Kind == KindDictionary:
		m.Kind = MemberField
		m.Required = toks[0].Value == "required"
		m.Name = nameBefore(toks, "=")
		return nil
	case toks[0].Value == "const":
		m.Kind = MemberConst
		m.Name = nameBefore(toks, "=")
		return nil
	case countAtDepth(toks, "attribute") > 0:
		if countAtDepth(toks, "attribute") > 1 {
			return p.errorAt(toks[len(toks)-1], "Missing semicolon after member")
		}
		m.Kind = MemberAttribute
		m.Name = nameBefore(toks, "")
		return nil
	case toks[0].Value == "constructor" && paren == 1:
		m.Kind = MemberConstructor
		m.Name = "constructor"
	case paren >= 0:
		m.Kind = MemberOperation
		if paren > 0 && toks[paren-1].Kind == TokenIdentifier {
			m.Name = toks[paren-1].Value
		}
	default:
		m.Kind = MemberOther
		return nil
	}

	args, err := p.arguments(toks[paren+1 : len(toks)-1])
	if err != nil {
		return err
	}
	m.Args = args
	return nil
}

func (p *parser) callback(def *Definition) error {
	if err := p.name(def); err != nil {
		return err
	}
	if _, err := p.expect("=", "Callback lacks an assignment"); err != nil {
		return err
	}
	for !p.peekIs("(") {
		if p.done() || p.peekIs(";") {
			return p.errorf("Callback lacks parentheses for arguments")
		}
		def.typeTokens = append(def.typeTokens, p.next())
	}
	if len(def.typeTokens) == 0 {
		return p.errorf("Callback lacks a return type")
	}

	inner, err := p.group()
	if err != nil {
		return err
	}
	if def.Args, err = p.arguments(inner); err != nil {
		return err
	}
	_, err = p.expect(";", "Unterminated callback")
	return err
}

// group consumes a parenthesized group and returns the tokens inside it.
func (p *parser) group() ([]*Token, error) {
	open := p.next()
	start := p.pos
	depth := 1
	for depth > 0 {
		t := p.next()
		if t == nil {
			return nil, p.errorAt(open, "Unterminated parentheses")
		}
		switch t.Value {
		case "(":
			depth++
		case ")":
			depth--
		}
	}
	return p.toks[start : p.pos-1], nil
}

func (p *parser) enum(def *Definition) error {
	if err := p.name(def); err != nil {
		return err
	}
	open, err := p.expect("{", "Bodyless enum")
	if err != nil {
		return err
	}
	def.open = open

	for !p.peekIs("}") {
		t := p.peek()
		if t == nil {
			return p.errorf("Unexpected end of enum")
		}
		if t.Kind != TokenString && t.Value != "," {
			return p.errorf("Unexpected value in enum")
		}
		p.next()
	}
	def.close = p.next()

	_, err = p.expect(";", "Missing semicolon after enum")
	return err
}

func (p *parser) typedef(def *Definition) error {
	var toks []*Token
	depth := 0
	for depth > 0 || !p.peekIs(";") {
		t := p.next()
		if t == nil {
			return p.errorf("Missing semicolon after typedef")
		}
		toks = append(toks, t)
		switch t.Value {
		case "(", "[", "<":
			depth++
		case ")", "]", ">":
			depth--
		}
	}
	if len(toks) < 2 || toks[len(toks)-1].Kind != TokenIdentifier {
		return p.errorf("Typedef lacks a type or a name")
	}
	def.name = toks[len(toks)-1]
	def.Name = def.name.Value
	def.typeTokens = toks[:len(toks)-1]
	p.last = def
	p.next()
	return nil
}

func (p *parser) includes(def *Definition) error {
	def.name = p.next()
	def.Name = def.name.Value
	if _, err := p.expect("includes", "Unrecognised tokens"); err != nil {
		return err
	}
	if _, err := p.identifier("Incomplete includes statement"); err != nil {
		return err
	}
	p.last = def
	_, err := p.expect(";", "No terminating ; for includes statement")
	return err
}

func (p *parser) extAttrs() (*ExtAttrList, error) {
	list := &ExtAttrList{}
	if !p.peekIs("[") {
		return list, nil
	}
	list.Open = p.next()

	for {
		name, err := p.identifier("Extended attribute name expected")
		if err != nil {
			return nil, err
		}
		attr := &ExtAttr{Name: name, tokens: []*Token{name}}

		depth := 0
		for {
			t := p.peek()
			if t == nil {
				return nil, p.errorAt(list.Open, "Unterminated extended attribute list")
			}
			if depth == 0 && (t.Value == "," || t.Value == "]") {
				break
			}
			p.next()
			attr.tokens = append(attr.tokens, t)
			switch t.Value {
			case "(":
				depth++
			case ")":
				depth--
			}
		}

		if args := attr.argTokens(); args != nil {
			if args[len(args)-1].Value != ")" {
				return nil, p.errorAt(args[0], "Unterminated extended attribute arguments")
			}
			if attr.Args, err = p.arguments(args[1 : len(args)-1]); err != nil {
				return nil, err
			}
		}

		list.Items = append(list.Items, attr)
		if p.peekIs(",") {
			attr.Separator = p.next()
			continue
		}
		list.Close = p.next()
		return list, nil
	}
}

func (p *parser) arguments(toks []*Token) ([]*Argument, error) {
	if len(toks) == 0 {
		return nil, nil
	}

	var args []*Argument
	start, depth := 0, 0
	for i := 0; i <= len(toks); i++ {
		if i < len(toks) {
			switch toks[i].Value {
			case "(", "[", "{", "<":
				depth++
			case ")", "]", "}", ">":
				depth--
			}
			if depth > 0 || toks[i].Value != "," {
				continue
			}
		}
		if i == start {
			at := toks[min(i, len(toks)-1)]
			return nil, p.errorAt(at, "Trailing comma in arguments")
		}
		arg, err := p.argument(toks[start:i])
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		start = i + 1
	}
	return args, nil
}

func (p *parser) argument(toks []*Token) (*Argument, error) {
	sub := &parser{tree: p.tree, toks: toks, last: p.last}
	attrs, err := sub.extAttrs()
	if err != nil {
		return nil, err
	}
	a := &Argument{ExtAttrs: attrs}
	if sub.peekIs("optional") {
		sub.next()
		a.Optional = true
	}

	rest := toks[sub.pos:]
	head := rest
	if eq := indexAtDepth(rest, "="); eq >= 0 {
		head, a.defaults = rest[:eq], rest[eq:]
		if len(a.defaults) == 1 {
			return nil, p.errorAt(a.defaults[0], "No default value")
		}
	}
	if len(head) < 2 {
		return nil, sub.errorf("Missing argument type or name")
	}

	a.name = head[len(head)-1]
	if a.name.Kind != TokenIdentifier {
		return nil, p.errorAt(a.name, "No name in argument")
	}
	a.Name = a.name.Value

	a.typeTokens = head[:len(head)-1]
	if last := a.typeTokens[len(a.typeTokens)-1]; last.Value == "..." {
		a.Variadic = true
		a.typeTokens = a.typeTokens[:len(a.typeTokens)-1]
	}
	if len(a.typeTokens) == 0 {
		return nil, p.errorAt(a.name, "Missing argument type")
	}
	return a, nil
}

// indexAtDepth returns the index of the first value outside any brackets.
func indexAtDepth(toks []*Token, value string) int {
	depth := 0
	for i, t := range toks {
		if depth == 0 && t.Value == value {
			return i
		}
		switch t.Value {
		case "(", "[", "{", "<":
			depth++
		case ")", "]", "}", ">":
			depth--
		}
	}
	return -1
}

// matchingOpen returns the index of the parenthesis opening toks[close].
func matchingOpen(toks []*Token, close int) int {
	depth := 0
	for i := close; i >= 0; i-- {
		switch toks[i].Value {
		case ")":
			depth++
		case "(":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// nameBefore returns the identifier preceding the first value at depth
// zero, or preceding the end when value is empty or absent.
func nameBefore(toks []*Token, value string) string {
	end := len(toks)
	if value != "" {
		if i := indexAtDepth(toks, value); i >= 0 {
			end = i
		}
	}
	if end > 0 && toks[end-1].Kind == TokenIdentifier {
		return toks[end-1].Value
	}
	return ""
}

// countAtDepth counts the occurrences of value outside any brackets.
func countAtDepth(toks []*Token, value string) int {
	n, depth := 0, 0
	for _, t := range toks {
		if depth == 0 && t.Value == value {
			n++
		}
		switch t.Value {
		case "(", "[", "{", "<":
			depth++
		case ")", "]", "}", ">":
			depth--
		}
	}
	return n
}
