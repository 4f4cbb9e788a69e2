package webidl

import (
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

// Rule names.
const (
	RuleNoDuplicate       = "no-duplicate"
	RuleRequireExposed    = "require-exposed"
	RuleReplaceVoid       = "replace-void"
	RuleRenamedLegacy     = "renamed-legacy"
	RuleConstructorMember = "constructor-member"
	RuleDictArgDefault    = "dict-arg-default"
)

// legacyNames maps extended attributes to their Legacy* replacements.
var legacyNames = map[string]string{
	"TreatNullAs":          "LegacyNullToEmptyString",
	"NoInterfaceObject":    "LegacyNoInterfaceObject",
	"LenientThis":          "LegacyLenientThis",
	"Unforgeable":          "LegacyUnforgeable",
	"OverrideBuiltins":     "LegacyOverrideBuiltIns",
	"NamedConstructor":     "LegacyFactoryFunction",
	"LenientSetter":        "LegacyLenientSetter",
	"TreatNonObjectAsNull": "LegacyTreatNonObjectAsNull",
}

// Diagnostic is a finding of a validation rule about one tree.
type Diagnostic struct {
	source  domain.SourceTag
	rule    string
	level   domain.Level
	message string
	fix     func()
	fixed   bool
}

func (d *Diagnostic) Source() domain.SourceTag { return d.source }
func (d *Diagnostic) Rule() string             { return d.rule }
func (d *Diagnostic) Level() domain.Level      { return d.level }
func (d *Diagnostic) Message() string          { return d.message }

// Fixable reports whether the diagnostic carries a correction.
func (d *Diagnostic) Fixable() bool {
	return d.fix != nil
}

// Autofix applies the correction once. Later calls return false.
func (d *Diagnostic) Autofix() bool {
	if d.fix == nil || d.fixed {
		return false
	}
	d.fix()
	d.fixed = true
	return true
}

// Validate runs every rule over the union of trees.
func Validate(trees []*Tree) []*Diagnostic {
	v := &validator{
		seen:         make(map[string]bool),
		dictionaries: make(map[string]bool),
	}
	for _, tree := range trees {
		for _, def := range tree.Definitions {
			if def.Kind == KindDictionary {
				v.dictionaries[def.Name] = true
			}
		}
	}
	for _, tree := range trees {
		for _, def := range tree.Definitions {
			v.definition(tree, def)
		}
	}
	return v.diags
}

type validator struct {
	seen         map[string]bool
	dictionaries map[string]bool
	diags        []*Diagnostic
}

func (v *validator) report(tree *Tree, def *Definition, at *Token, rule, msg string, fix func()) {
	line, snip := snippet(tree.text, at.Offset)
	v.diags = append(v.diags, &Diagnostic{
		source: tree.source,
		rule:   rule,
		level:  domain.LevelError,
		message: fmt.Sprintf("Validation error at line %d in %s, inside `%s`:\n%s %s",
			line, tree.source, describe(string(def.Kind), def.Name), snip, msg),
		fix: fix,
	})
}

func (v *validator) definition(tree *Tree, def *Definition) {
	v.noDuplicate(tree, def)
	v.requireExposed(tree, def)
	v.replaceVoid(tree, def)
	v.renamedLegacy(tree, def)
	v.constructorMember(tree, def)
	v.dictArgDefault(tree, def)
}

func (v *validator) noDuplicate(tree *Tree, def *Definition) {
	if def.Partial || def.Kind == KindIncludes {
		return
	}
	if v.seen[def.Name] {
		v.report(tree, def, def.name, RuleNoDuplicate,
			fmt.Sprintf("The name %q of type %q was already seen", def.Name, def.Kind), nil)
		return
	}
	v.seen[def.Name] = true
}

func (v *validator) requireExposed(tree *Tree, def *Definition) {
	if def.Partial || (def.Kind != KindInterface && def.Kind != KindNamespace) {
		return
	}
	if def.ExtAttrs.Find("Exposed") != nil {
		return
	}
	v.report(tree, def, def.name, RuleRequireExposed,
		"Interfaces and namespaces must have [Exposed] extended attribute. "+
			"To fix, add, for example, [Exposed=Window]. "+
			"Please also consider carefully if your interface should also be exposed in a Worker scope.",
		func() {
			tree.prependExtAttr(def,
				newToken(TokenIdentifier, "Exposed", ""),
				newToken(TokenOther, "=", ""),
				newToken(TokenIdentifier, "Window", ""))
		})
}

func (v *validator) replaceVoid(tree *Tree, def *Definition) {
	var scan []*Token
	scan = append(scan, def.typeTokens...)
	for _, a := range def.Args {
		scan = append(scan, a.typeTokens...)
	}
	for _, m := range def.Members {
		scan = append(scan, m.tokens...)
	}
	for _, attr := range def.ExtAttrs.Items {
		for _, a := range attr.Args {
			scan = append(scan, a.typeTokens...)
		}
	}

	for _, tok := range scan {
		if tok.Kind != TokenIdentifier || tok.Value != "void" {
			continue
		}
		v.report(tree, def, tok, RuleReplaceVoid,
			"`void` is now replaced by `undefined`.",
			func() { tok.Value = "undefined" })
	}
}

func (v *validator) renamedLegacy(tree *Tree, def *Definition) {
	lists := []*ExtAttrList{def.ExtAttrs}
	for _, a := range def.Args {
		lists = append(lists, a.ExtAttrs)
	}
	for _, m := range def.Members {
		lists = append(lists, m.ExtAttrs)
		for _, a := range m.Args {
			lists = append(lists, a.ExtAttrs)
		}
	}

	for _, list := range lists {
		for _, attr := range list.Items {
			renamed, ok := legacyNames[attr.Name.Value]
			if !ok {
				continue
			}
			v.report(tree, def, attr.Name, RuleRenamedLegacy,
				fmt.Sprintf("`[%s]` extended attribute is a legacy feature that is now renamed to `[%s]`.",
					attr.Name.Value, renamed),
				func() { tree.renameExtAttr(attr, renamed) })
		}
	}
}

func (v *validator) constructorMember(tree *Tree, def *Definition) {
	if def.Kind != KindInterface {
		return
	}
	for _, attr := range def.ExtAttrs.Items {
		if attr.Name.Value != "Constructor" {
			continue
		}
		v.report(tree, def, attr.Name, RuleConstructorMember,
			"Constructors should now be represented as a `constructor()` operation on the interface "+
				"instead of `[Constructor]` extended attribute.",
			func() { tree.constructorToMember(def, attr) })
	}
}

func (v *validator) dictArgDefault(tree *Tree, def *Definition) {
	var args []*Argument
	for _, m := range def.Members {
		args = append(args, m.Args...)
	}
	for _, attr := range def.ExtAttrs.Items {
		args = append(args, attr.Args...)
	}

	for _, a := range args {
		if !a.Optional || a.HasDefault() || !v.dictionaries[a.TypeName()] {
			continue
		}
		v.report(tree, def, a.name, RuleDictArgDefault,
			"Optional dictionary arguments must have a default value of `{}`.",
			func() { tree.addEmptyDefault(a) })
	}
}

// renameExtAttr replaces the name of attr. TreatNullAs also loses its value.
func (t *Tree) renameExtAttr(attr *ExtAttr, renamed string) {
	if attr.Name.Value == "TreatNullAs" && len(attr.tokens) > 1 {
		t.remove(attr.tokens[1:]...)
		attr.tokens = attr.tokens[:1]
	}
	attr.Name.Value = renamed
}

// constructorToMember moves a [Constructor] attribute into the body of def
// as a constructor operation.
func (t *Tree) constructorToMember(def *Definition, attr *ExtAttr) {
	// The argument group is taken from the token stream so corrections
	// already applied to the arguments move with it.
	var params []*Token
	if args := attr.argTokens(); args != nil {
		i, j := t.indexOf(args[0]), t.indexOf(args[len(args)-1])
		if i >= 0 && j >= i {
			params = slices.Clone(t.tokens[i : j+1])
			t.tokens = slices.Delete(t.tokens, i, j+1)
		}
	}
	if params == nil {
		params = []*Token{newToken(TokenOther, "(", ""), newToken(TokenOther, ")", "")}
	}
	params[0].Trivia = ""
	t.removeExtAttr(def.ExtAttrs, attr)

	defIndent := lastIndentation(def.start.Trivia)
	if def.ExtAttrs.Open != nil {
		defIndent = lastIndentation(def.ExtAttrs.Open.Trivia)
	}
	indent := memberIndentation(defIndent)
	if len(def.Members) > 0 {
		indent = lastIndentation(def.Members[0].first().Trivia)
	}

	toks := []*Token{newToken(TokenIdentifier, "constructor", "\n"+indent)}
	toks = append(toks, params...)
	toks = append(toks, newToken(TokenOther, ";", ""))
	m := &Member{
		Kind:     MemberConstructor,
		Name:     "constructor",
		ExtAttrs: &ExtAttrList{},
		Args:     attr.Args,
		tokens:   toks,
	}

	at, pos := def.open, 0
	for i, existing := range def.Members {
		if existing.Kind == MemberConstructor {
			at, pos = existing.last(), i+1
		}
	}
	t.insertAfter(at, toks...)
	def.Members = slices.Insert(def.Members, pos, m)

	if !strings.Contains(def.close.Trivia, "\n") {
		def.close.Trivia = "\n" + defIndent
	}
}

// addEmptyDefault gives an optional argument the default value {}.
func (t *Tree) addEmptyDefault(a *Argument) {
	a.defaults = []*Token{
		newToken(TokenOther, "=", " "),
		newToken(TokenOther, "{", " "),
		newToken(TokenOther, "}", ""),
	}
	t.insertAfter(a.name, a.defaults...)
}
