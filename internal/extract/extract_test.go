package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/webidl-updater/internal/core/domain"
)

func extract(t *testing.T, text string) []domain.Block {
	t.Helper()
	got, err := New().Extract(domain.Document{ShortName: "test", Text: text})
	require.NoError(t, err)
	return got.Blocks
}

func texts(blocks []domain.Block) []string {
	return domain.Extraction{Blocks: blocks}.Text()
}

func TestExtract_BikeshedDocument(t *testing.T) {
	doc := `<!doctype html><html><body>
<pre class="idl">interface A {};</pre>
<div class="note"><pre class="idl">interface InNote {};</pre></div>
<pre class="idl exclude">interface Excluded {};</pre>
<pre class="idl widl">interface Twice {};</pre>
<h2 id="idl-index">IDL Index</h2>
<pre class="idl">interface A {};
interface Twice {};</pre>
</body></html>`

	blocks := extract(t, doc)
	assert.Equal(t, []string{"interface A {};", "interface Twice {};"}, texts(blocks))
	assert.Equal(t, 0, blocks[0].Index)
	assert.Equal(t, 1, blocks[1].Index)
}

func TestExtract_DeduplicatesNodeMatchedTwice(t *testing.T) {
	blocks := extract(t, `<pre class="idl widl">interface A {};</pre>`)
	require.Len(t, blocks, 1)
	assert.Equal(t, "interface A {};", blocks[0].Text)
}

func TestExtract_NestedMatchIsPartOfOuterBlock(t *testing.T) {
	blocks := extract(t, `<pre class="idl"><code class="idl">interface A {};</code></pre>`)
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].RichMarkup)
}

func TestExtract_NonNormativeAncestors(t *testing.T) {
	for _, class := range NonNormativeClasses {
		t.Run(class, func(t *testing.T) {
			doc := `<section class="` + class + `"><div><pre class="idl">interface A {};</pre></div></section>`
			assert.Empty(t, extract(t, doc))
		})
	}

	assert.Empty(t, extract(t, `<pre class="idl example">interface A {};</pre>`))
}

func TestExtract_RespecDocument(t *testing.T) {
	doc := `<section><pre class="idl"><span class="idlHeader"><a href="#webidl">WebIDL</a></span>interface B {};` +
		`<details class="respec-tests-details"><summary>tests</summary><ul><li>t</li></ul></details></pre></section>
<section id="idl-index"><h2>IDL Index</h2><pre class="idl">interface B {};</pre></section>`

	blocks := extract(t, doc)
	require.Len(t, blocks, 1)
	assert.Equal(t, "interface B {};", blocks[0].Text)
	assert.Equal(t, "interface B {};", blocks[0].Markup)
	assert.False(t, blocks[0].RichMarkup)
}

func TestExtract_SVGChapterIndex(t *testing.T) {
	doc := `<pre class="idl">interface SVGA {};</pre><div class="chapter-idl"><pre class="idl">interface SVGA {};</pre></div>`
	assert.Len(t, extract(t, doc), 1)
}

func TestExtract_Patterns(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"pre > code.idl-code", `<pre><code class="idl-code">interface A {};</code></pre>`, []string{"interface A {};"}},
		{"pre > code.idl", `<pre><code class="idl">interface A {};</code></pre>`, []string{"interface A {};"}},
		{"excluded container", `<pre class="exclude"><code class="idl">interface A {};</code></pre>`, nil},
		{"div.idl-code > pre", `<div class="idl-code"><pre>interface A {};</pre></div>`, []string{"interface A {};"}},
		{"pre.widl", `<pre class="widl">interface A {};</pre>`, []string{"interface A {};"}},
		{"xmp.idl", `<xmp class="idl">interface A {};</xmp>`, []string{"interface A {};"}},
		{"actual index", `<pre class="idl" id="actual-idl-index">interface A {};</pre>`, nil},
		{"extract class", `<pre class="idl extract">interface A {};</pre>`, nil},
		{"plain pre", `<pre>interface A {};</pre>`, nil},
		{"html idl element", `<p><idl xml:space="preserve">interface A {};</idl></p>`, []string{"interface A {};"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := extract(t, tt.doc)
			if tt.want == nil {
				assert.Empty(t, blocks)
				return
			}
			assert.Equal(t, tt.want, texts(blocks))
		})
	}
}

func TestExtract_BlockKind(t *testing.T) {
	doc := `<pre><code class="idl">interface A {};</code></pre><p><idl xml:space="preserve">interface B {};</idl></p>`
	blocks := extract(t, doc)
	require.Len(t, blocks, 2)
	assert.Equal(t, domain.BlockPreformatted, blocks[0].Kind)
	assert.Equal(t, domain.BlockInline, blocks[1].Kind)
}

func TestExtract_MarkupEscaping(t *testing.T) {
	blocks := extract(t, `<pre class="idl">Promise&lt;any&gt; f(DOMString s = "&amp;");</pre>`)
	require.Len(t, blocks, 1)
	assert.Equal(t, `Promise<any> f(DOMString s = "&");`, blocks[0].Text)
	assert.Equal(t, `Promise&lt;any&gt; f(DOMString s = "&amp;");`, blocks[0].Markup)
}

func TestExtract_XmpIsRawText(t *testing.T) {
	blocks := extract(t, `<xmp class="idl">Promise<any> f();</xmp>`)
	require.Len(t, blocks, 1)
	assert.Equal(t, "Promise<any> f();", blocks[0].Text)
	assert.Equal(t, "Promise<any> f();", blocks[0].Markup)
}

func TestExtract_RichMarkup(t *testing.T) {
	blocks := extract(t, `<pre class="idl">interface <dfn data-x="d">D</dfn> {};</pre>`)
	require.Len(t, blocks, 1)
	assert.True(t, blocks[0].RichMarkup)
	assert.Equal(t, "interface D {};", blocks[0].Text)
	assert.Equal(t, `interface <dfn data-x="d">D</dfn> {};`, blocks[0].Markup)
}

func TestExtract_LeadingNewlineOfPre(t *testing.T) {
	blocks := extract(t, "<pre class=\"idl\">\ninterface A {};\n</pre>")
	require.Len(t, blocks, 1)
	assert.Equal(t, "interface A {};\n", blocks[0].Text)
}

func TestExtract_Indent(t *testing.T) {
	doc := "<div>\n  <idl xml:space=\"preserve\">\n    interface I {};\n  </idl>\n</div>"
	blocks := extract(t, doc)
	require.Len(t, blocks, 1)
	assert.Equal(t, domain.Indent{Width: 4, Char: ' ', Trailing: "  "}, blocks[0].Indent)

	blocks = extract(t, "<pre class=\"idl\">\n\t\tinterface T {};</pre>")
	require.Len(t, blocks, 1)
	assert.Equal(t, 2, blocks[0].Indent.Width)
	assert.Equal(t, byte('\t'), blocks[0].Indent.Char)
}

func TestExtract_XMLDocument(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<extension href="WEBGL_foo/">
  <name>WEBGL_foo</name>
  <idl xml:space="preserve">
[Exposed=(Window,Worker)]
interface WEBGL_foo {
  undefined f(sequence&lt;long&gt; s);
};
  </idl>
  <newfun><idl xml:space="preserve">undefined g(GLenum a);</idl></newfun>
  <idl>interface NotPreserved {};</idl>
  <div class="example"><idl xml:space="preserve">interface Example {};</idl></div>
</extension>`

	blocks := extract(t, doc)
	require.Len(t, blocks, 2)

	assert.Contains(t, blocks[0].Text, "sequence<long>")
	assert.Contains(t, blocks[0].Markup, "sequence&lt;long&gt;")
	assert.Equal(t, domain.BlockInline, blocks[0].Kind)
	assert.Equal(t, "  ", blocks[0].Indent.Trailing)

	assert.Equal(t, "undefined g(GLenum a);", blocks[1].Text)
	assert.Equal(t, 1, blocks[1].Index)
}

func TestExtract_XHTMLUsesHTMLRules(t *testing.T) {
	doc := `<?xml version="1.0"?>
<html xmlns="http://www.w3.org/1999/xhtml"><body><pre class="idl">interface X {};</pre></body></html>`

	assert.Equal(t, []string{"interface X {};"}, texts(extract(t, doc)))
}

func TestExtract_NoBlocks(t *testing.T) {
	assert.Empty(t, extract(t, "<p>No IDL here.</p>"))
	assert.Empty(t, extract(t, ""))
}

func TestExtractor_Patterns(t *testing.T) {
	patterns := New().patterns
	assert.Len(t, patterns, 11)
	assert.Equal(t, "pre.idl", patterns[0].Name)
	assert.Equal(t, "xmp.idl", patterns[5].Name)
}
