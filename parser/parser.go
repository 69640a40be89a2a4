// Package parser turns the rich text of one element into a [ParsedForm]: the
// text itself, the modifications needed to make it safe to combine with other
// elements, and the vertical space its line breaks take.
//
// Only the tags that affect vertical layout are interpreted: noparse, size,
// line-height and the closing forms of those, plus align when resolution
// alignment is enabled. Every other tag is left for the client to render.
// Malformed input never fails the parse. Tags the parser recognises but cannot
// read are "broken": a noparse toggle is inserted right after their '<' so the
// client shows them as literal text.
package parser

import (
	"slices"
	"sync"

	"github.com/Drolfothesgnir/hintstack/cumfloat"
)

const bom = "\uFEFF"

// Parser holds the scratch state of a parse. It can be reused for any number
// of sequential parses but must not be shared between goroutines.
type Parser struct {
	cur      cursor
	settings Settings
	warnings Warnings

	mods   []Modification
	offset cumfloat.Float

	// sizes is the stack of open size tags.
	sizes []cumfloat.AnimatableFloat

	// lineHeight overrides the height of line breaks while set.
	lineHeight    cumfloat.AnimatableFloat
	hasLineHeight bool

	noparse bool
	align   alignMode

	digits []byte
}

var parserPool = sync.Pool{
	New: func() any { return new(Parser) },
}

// Parse parses text with a pooled [Parser]. It is safe for concurrent use.
func Parse(text string, s Settings) ParsedForm {
	p := parserPool.Get().(*Parser)
	defer parserPool.Put(p)
	return p.Parse(text, s)
}

// Parse parses text. The result shares no memory with the parser.
func (p *Parser) Parse(text string, s Settings) ParsedForm {
	p.begin(text, s)

	if len(text) >= len(bom) && text[:len(bom)] == bom {
		p.mods = append(p.mods, Modification{Kind: KindSkip, Pos: 0, Skip: len(bom)})
		p.cur.seek(len(bom))
	}

	for !p.cur.eof() {
		p.step()
	}

	// an open noparse would swallow whatever is written after this element
	if p.noparse {
		p.mods = append(p.mods, Modification{Kind: KindCloseNoparse, Pos: len(text)})
		p.noparse = false
	}

	p.closeLine(len(text))

	return ParsedForm{
		Text:          text,
		Offset:        p.offset.Clone(),
		Modifications: cloneOrNil(p.mods),
		OpenSizes:     len(p.sizes),
		Warnings:      cloneOrNil(p.warnings.List()),
	}
}

func cloneOrNil[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return slices.Clone(s)
}

func (p *Parser) begin(text string, s Settings) {
	p.cur = cursor{text: text}
	p.settings = s

	w, err := NewWarnings(s.WarningPolicy, s.MaxWarnings)
	if err != nil {
		w, _ = NewWarnings(WarnNone, 0)
	}
	p.warnings = w

	p.mods = p.mods[:0]
	p.offset.Clear()
	p.sizes = p.sizes[:0]
	p.lineHeight = cumfloat.AnimatableFloat{}
	p.hasLineHeight = false
	p.noparse = false
	p.align = alignNone
}

func (p *Parser) step() {
	switch p.cur.peek() {
	case '{', '}':
		p.formatItem()
	case '\\':
		p.escape()
	case '<':
		p.tag()
	case '\n':
		p.linebreak(p.cur.pos, 1)
		p.cur.advance(1)
	default:
		p.cur.advance(1)
	}
}

func (p *Parser) warn(issue Issue, pos int, desc string) {
	p.warnings.Add(Warning{Issue: issue, Pos: pos, Description: desc})
}

// linebreak records a line break of skip source bytes at pos and adds its
// height to the offset.
func (p *Parser) linebreak(pos, skip int) {
	h := p.currentLineHeight()
	p.offset.AddAnimatable(h)

	// align padding is a tag, so it has to be written outside noparse
	padded := p.noparse && p.align != alignNone
	if padded {
		p.mods = append(p.mods, Modification{Kind: KindCloseNoparse, Pos: pos})
	}

	p.closeLine(pos)
	p.mods = append(p.mods, Modification{
		Kind:      KindLinebreak,
		Pos:       pos,
		Skip:      skip,
		Value:     h,
		InNoparse: p.noparse && !padded,
	})
	p.openLine(pos + skip)

	if padded {
		p.mods = append(p.mods, Modification{Kind: KindNoparse, Pos: pos + skip})
	}
}

// currentLineHeight is the explicit line height if one is set, otherwise the
// height derived from the innermost size, otherwise the default.
func (p *Parser) currentLineHeight() cumfloat.AnimatableFloat {
	if p.hasLineHeight {
		return p.lineHeight
	}
	if n := len(p.sizes); n > 0 {
		return p.sizes[n-1].Scale(DefaultLineHeight / EmSize)
	}
	return cumfloat.Scalar(DefaultLineHeight)
}
