package extract

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

var idlElements = xpath.MustCompile("//idl")

var xmlTextEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func isXMLDocument(text string) bool {
	return strings.HasPrefix(strings.TrimLeft(text, "\ufeff \t\r\n"), "<?xml")
}

// extractXML extracts the idl elements of an XML document such as a WebGL
// extension registry entry. It reports false for XHTML documents and for
// documents that are not well-formed, which are handled as HTML.
func (e *Extractor) extractXML(text string) ([]domain.Block, bool) {
	root, err := xmlquery.Parse(strings.NewReader(text))
	if err != nil {
		return nil, false
	}
	if el := rootElement(root); el == nil || el.Data == "html" {
		return nil, false
	}

	var blocks []domain.Block
	for _, n := range xmlquery.QuerySelectorAll(root, idlElements) {
		if !preservesSpace(n) || e.excludedXML(n) {
			continue
		}
		text := n.InnerText()
		var before string
		if prev := n.PrevSibling; prev != nil && prev.Type == xmlquery.TextNode {
			before = prev.Data
		}
		blocks = append(blocks, domain.Block{
			Index:      len(blocks),
			Text:       text,
			Markup:     innerXML(n),
			Kind:       domain.BlockInline,
			RichMarkup: hasXMLElementChild(n),
			Indent:     indentOf(text, before),
		})
	}
	return blocks, true
}

func rootElement(doc *xmlquery.Node) *xmlquery.Node {
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return c
		}
	}
	return nil
}

func preservesSpace(n *xmlquery.Node) bool {
	for _, a := range n.Attr {
		name := a.Name.Local
		if a.Name.Space == "xml" || a.Name.Space == xmlNamespace {
			name = "xml:" + name
		}
		if name == "xml:space" {
			return a.Value == "preserve"
		}
	}
	return false
}

func (e *Extractor) excludedXML(n *xmlquery.Node) bool {
	for ; n != nil; n = n.Parent {
		if n.Type != xmlquery.ElementNode {
			continue
		}
		classes := strings.Fields(n.SelectAttr("class"))
		for _, c := range e.nonNormative {
			for _, have := range classes {
				if c == have {
					return true
				}
			}
		}
	}
	return false
}

func hasXMLElementChild(n *xmlquery.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			return true
		}
	}
	return false
}

func innerXML(n *xmlquery.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeXMLNode(&b, c)
	}
	return b.String()
}

func writeXMLNode(b *strings.Builder, n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.TextNode:
		b.WriteString(xmlTextEscaper.Replace(n.Data))

	case xmlquery.CharDataNode:
		b.WriteString("<![CDATA[")
		b.WriteString(n.Data)
		b.WriteString("]]>")

	case xmlquery.CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")

	case xmlquery.ElementNode:
		name := n.Data
		if n.Prefix != "" {
			name = n.Prefix + ":" + n.Data
		}
		b.WriteByte('<')
		b.WriteString(name)
		for _, a := range n.Attr {
			b.WriteByte(' ')
			switch a.Name.Space {
			case "":
			case xmlNamespace:
				b.WriteString("xml:")
			default:
				b.WriteString(a.Name.Space)
				b.WriteByte(':')
			}
			b.WriteString(a.Name.Local)
			b.WriteString(`="`)
			b.WriteString(attrEscaper.Replace(a.Value))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeXMLNode(b, c)
		}
		b.WriteString("</")
		b.WriteString(name)
		b.WriteByte('>')
	}
}
