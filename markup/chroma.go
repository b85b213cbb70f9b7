package markup

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/iw2rmb/scribe/buffer"
)

// ChromaTokenizer finds markdown spans with chroma's markdown lexer.
type ChromaTokenizer struct {
	lexer chroma.Lexer
}

// NewChromaTokenizer returns a tokenizer for the named chroma lexer, falling
// back to markdown when the name is unknown.
func NewChromaTokenizer(language string) *ChromaTokenizer {
	lex := lexers.Get(language)
	if lex == nil {
		lex = lexers.Get("markdown")
	}
	if lex == nil {
		lex = lexers.Fallback
	}
	return &ChromaTokenizer{lexer: chroma.Coalesce(lex)}
}

// Tokenize returns spans in character offsets. Chroma reports token values
// as strings, so positions are tracked in bytes and converted once per span.
// Spans are clipped to text; the lexer may append a newline of its own.
func (t *ChromaTokenizer) Tokenize(text string) []Span {
	src := text
	if !strings.HasSuffix(src, "\n") {
		// Block rules such as headings only match whole lines.
		src += "\n"
	}
	it, err := t.lexer.Tokenise(nil, src)
	if err != nil {
		return nil
	}

	var spans []Span
	pos := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		kind := kindOf(tok.Type)
		// Trailing newlines belong to the line, not the construct.
		value := strings.TrimRight(tok.Value, "\n")
		from, to := pos, min(pos+len(value), len(text))
		pos += len(tok.Value)
		if kind == 0 || from >= to {
			continue
		}

		start := buffer.CharOffsetFromByte(text, from)
		end := buffer.CharOffsetFromByte(text, to)
		if last := len(spans) - 1; last >= 0 && spans[last].Kind == kind && spans[last].End == start {
			spans[last].End = end
			continue
		}
		spans = append(spans, Span{Start: start, End: end, Kind: kind})
	}
	return spans
}

func kindOf(tt chroma.TokenType) SpanKind {
	switch {
	case tt == chroma.GenericHeading || tt == chroma.GenericSubheading:
		return KindHeading
	case tt == chroma.GenericStrong:
		return KindStrong
	case tt == chroma.GenericEmph:
		return KindEmphasis
	case tt == chroma.GenericDeleted:
		return KindStrike
	case tt == chroma.LiteralStringBacktick:
		return KindCode
	case tt == chroma.NameTag || tt == chroma.NameAttribute:
		return KindLink
	case tt == chroma.Keyword:
		return KindMarker
	case tt.InCategory(chroma.LiteralString):
		return KindCode
	}
	return 0
}
