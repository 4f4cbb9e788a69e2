package domain

import "strconv"

// Document is the literal text of a fetched spec source.
// It is produced once by a fetch and never mutated; rewrites produce new strings.
type Document struct {
	// ShortName is the stable identifier of the spec (e.g., "dom").
	ShortName string

	// URL is the location the text was fetched from.
	URL string

	// Text is the raw document source.
	Text string
}

// BlockKind distinguishes blocks whose whitespace is significant from those where it is not.
type BlockKind int

const (
	// BlockPreformatted is a block inside pre or xmp; whitespace renders as-is.
	BlockPreformatted BlockKind = iota

	// BlockInline is any other block, such as an XML idl element.
	BlockInline
)

// String returns the string representation.
func (k BlockKind) String() string {
	switch k {
	case BlockPreformatted:
		return "preformatted"
	case BlockInline:
		return "inline"
	default:
		return "unknown"
	}
}

// Indent records the whitespace surrounding a block in its source.
type Indent struct {
	// Width is the leading width of the block's first non-blank line.
	Width int

	// Char is the indentation character, ' ' or '\t'.
	Char byte

	// Trailing is the whitespace after the last newline of the preceding sibling
	// text node, i.e. the indentation of the line the block element opens on.
	Trailing string
}

// Block is one extracted Web IDL fragment.
// A Block is positional: documents may contain identical blocks, so it is
// identified by its Index within the owning Document.
type Block struct {
	// Index is the position of the block within its document.
	Index int

	// Text is the literal text content handed to the grammar engine.
	Text string

	// Markup is the serialized inner markup of the cleaned block. It is the
	// span the relocator looks for in the document source.
	Markup string

	// Kind is the structural kind of the block.
	Kind BlockKind

	// RichMarkup is set when the block has element children (links, spans, ...).
	RichMarkup bool

	// Indent is the formatting context used when splicing.
	Indent Indent
}

// Tag returns the provenance tag of the block within the named document.
func (b Block) Tag(shortName string) SourceTag {
	return SourceTag{Document: shortName, Block: b.Index}
}

// Extraction is the result of extracting blocks from a document.
// Text()[i] is always the literal content of Blocks[i].
type Extraction struct {
	Blocks []Block
}

// Text returns the literal content of every block, in order.
func (e Extraction) Text() []string {
	texts := make([]string, len(e.Blocks))
	for i, b := range e.Blocks {
		texts[i] = b.Text
	}
	return texts
}

// IncludesHTML reports whether any block contains rich markup.
func (e Extraction) IncludesHTML() bool {
	for _, b := range e.Blocks {
		if b.RichMarkup {
			return true
		}
	}
	return false
}

// SourceTag traces a grammar unit back to its document and block.
type SourceTag struct {
	Document string
	Block    int
}

// String returns the tag as name[index].
func (t SourceTag) String() string {
	return t.Document + "[" + strconv.Itoa(t.Block) + "]"
}
