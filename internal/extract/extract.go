// Package extract finds the Web IDL blocks embedded in a spec document.
//
// Blocks are selected by an ordered list of structural patterns evaluated
// over a single traversal of the parsed document, then filtered by a list of
// exclusions. A node matched by several patterns is returned once. Blocks
// are returned in document order; each is cleaned on a clone so the parsed
// document is never modified.
package extract

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
	"github.com/custodia-labs/webidl-updater/internal/logger"
)

// NonNormativeClasses mark regions whose IDL is explanatory, not authoritative.
var NonNormativeClasses = []string{
	"informative",
	"note",
	"issue",
	"example",
	"ednote",
	"practice",
	"introductory",
	"non-normative",
}

// Pattern selects block elements.
type Pattern struct {
	Name  string
	Match func(n *html.Node) bool
}

// Extractor extracts blocks from HTML and XML spec documents.
type Extractor struct {
	patterns     []Pattern
	nonNormative []string
}

// New creates an extractor with the patterns used by spec generators
// (Bikeshed, ReSpec, hand-written specs and WebGL extension registries).
func New() *Extractor {
	var patterns []Pattern
	for _, container := range []atom.Atom{atom.Pre, atom.Xmp} {
		patterns = append(patterns, containerPatterns(container)...)
	}
	patterns = append(patterns, Pattern{
		Name: "idl[xml:space=preserve]",
		Match: func(n *html.Node) bool {
			return n.Data == "idl" && attr(n, "xml:space") == "preserve"
		},
	})
	return &Extractor{patterns: patterns, nonNormative: NonNormativeClasses}
}

func containerPatterns(container atom.Atom) []Pattern {
	tag := container.String()
	return []Pattern{
		{
			Name: tag + ".idl",
			Match: func(n *html.Node) bool {
				return n.DataAtom == container && hasClass(n, "idl") && selectable(n) &&
					attr(n, "id") != "actual-idl-index"
			},
		},
		{
			Name: tag + " > code.idl-code",
			Match: func(n *html.Node) bool {
				return n.DataAtom == atom.Code && hasClass(n, "idl-code") && selectable(n) &&
					isElement(n.Parent, container) && selectable(n.Parent)
			},
		},
		{
			Name: tag + " > code.idl",
			Match: func(n *html.Node) bool {
				return n.DataAtom == atom.Code && hasClass(n, "idl") && selectable(n) &&
					isElement(n.Parent, container) && selectable(n.Parent)
			},
		},
		{
			Name: "div.idl-code > " + tag,
			Match: func(n *html.Node) bool {
				return n.DataAtom == container && selectable(n) &&
					isElement(n.Parent, atom.Div) && hasClass(n.Parent, "idl-code") && selectable(n.Parent)
			},
		},
		{
			Name: tag + ".widl",
			Match: func(n *html.Node) bool {
				return n.DataAtom == container && hasClass(n, "widl") && selectable(n)
			},
		},
	}
}

// selectable excludes elements explicitly opted out of extraction.
func selectable(n *html.Node) bool {
	return !hasClass(n, "exclude") && !hasClass(n, "extract")
}

// Extract returns the blocks of doc.
func (e *Extractor) Extract(doc domain.Document) (domain.Extraction, error) {
	if isXMLDocument(doc.Text) {
		if blocks, ok := e.extractXML(doc.Text); ok {
			return domain.Extraction{Blocks: blocks}, nil
		}
	}

	root, err := html.Parse(strings.NewReader(doc.Text))
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("extract %s: parse html: %w", doc.ShortName, err)
	}
	return domain.Extraction{Blocks: e.extractHTML(root)}, nil
}

func (e *Extractor) extractHTML(root *html.Node) []domain.Block {
	index := indexBlock(root)

	var blocks []domain.Block
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && e.selects(n) && !e.excluded(n, index) {
			blocks = append(blocks, newBlock(len(blocks), n))
			// Blocks nested in a selected block are part of it.
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return blocks
}

// selects folds the patterns: a node is selected once however many match.
func (e *Extractor) selects(n *html.Node) bool {
	for _, p := range e.patterns {
		if p.Match(n) {
			logger.Debug("IDL block matched %s", p.Name)
			return true
		}
	}
	return false
}

func (e *Extractor) excluded(n, index *html.Node) bool {
	if n == index {
		return true
	}
	if prev := previousElementSibling(n); prev != nil && attr(prev, "id") == "idl-index" {
		return true
	}
	return closest(n, func(a *html.Node) bool { return hasAnyClass(a, e.nonNormative) }) != nil
}

// indexBlock returns the generated IDL index appendix, if any.
func indexBlock(root *html.Node) *html.Node {
	firstPre := func(n *html.Node) bool { return n.DataAtom == atom.Pre }

	if section := find(root, func(n *html.Node) bool { return attr(n, "id") == "idl-index" }); section != nil {
		if pre := find(section, firstPre); pre != nil {
			return pre
		}
	}
	// SVG 2 drafts.
	if chapter := find(root, func(n *html.Node) bool { return hasClass(n, "chapter-idl") }); chapter != nil {
		return find(chapter, firstPre)
	}
	return nil
}

func newBlock(index int, n *html.Node) domain.Block {
	clone := cloneNode(n)
	removeFirst(clone, func(c *html.Node) bool { return hasClass(c, "idlHeader") })
	removeFirst(clone, func(c *html.Node) bool {
		return c.DataAtom == atom.Details && hasClass(c, "respec-tests-details")
	})

	text := textContent(clone)
	var before string
	if prev := n.PrevSibling; prev != nil && prev.Type == html.TextNode {
		before = prev.Data
	}

	kind := domain.BlockInline
	if closest(n, func(a *html.Node) bool { return a.DataAtom == atom.Pre || a.DataAtom == atom.Xmp }) != nil {
		kind = domain.BlockPreformatted
	}

	return domain.Block{
		Index:      index,
		Text:       text,
		Markup:     innerHTML(clone),
		Kind:       kind,
		RichMarkup: hasElementChild(clone),
		Indent:     indentOf(text, before),
	}
}
