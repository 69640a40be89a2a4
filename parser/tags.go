package parser

import (
	"github.com/Drolfothesgnir/hintstack/trie"
)

type tagKind uint8

const (
	tagNone tagKind = iota
	tagNoparse
	tagCloseNoparse
	tagLineHeight
	tagCloseLineHeight
	tagSize
	tagCloseSize
	tagVOffset
	tagCloseVOffset
	tagAlign
	tagCloseAlign
)

var tagTrie = trie.New([]trie.Entry[tagKind]{
	{Name: "noparse", Value: tagNoparse},
	{Name: "/noparse", Value: tagCloseNoparse},
	{Name: "line-height", Value: tagLineHeight},
	{Name: "/line-height", Value: tagCloseLineHeight},
	{Name: "size", Value: tagSize},
	{Name: "/size", Value: tagCloseSize},
	{Name: "voffset", Value: tagVOffset},
	{Name: "/voffset", Value: tagCloseVOffset},
	{Name: "align", Value: tagAlign},
	{Name: "/align", Value: tagCloseAlign},
})

// replacementTrie holds the tags the client replaces with a single character.
var replacementTrie = trie.New([]trie.Entry[rune]{
	{Name: "br", Value: '\n'},
	{Name: "cr", Value: '\r'},
	{Name: "nbsp", Value: '\u00A0'},
	{Name: "zwsp", Value: '\u200B'},
	{Name: "zwj", Value: '\u200D'},
	{Name: "shy", Value: '\u00AD'},
})

var tagNames = map[tagKind]string{
	tagLineHeight: "line-height",
	tagSize:       "size",
}

type tagEnd uint8

const (
	// endFound means the '>' closing the tag was found.
	endFound tagEnd = iota
	// endNotTag means the bytes never formed a tag, so there is nothing to break.
	endNotTag
	// endBroken means a tag was started but cannot be closed.
	endBroken
)

// walk follows the tag name starting after the '<' at start. It returns the
// node reached and the index of the first byte not in the trie.
func walk[T any](t *trie.Trie[T], text string, start int) (*trie.Node[T], int) {
	node := t.Root()
	i := start + 1
	for i < len(text) && i-start < MaxTagLength {
		next := node.Next(text[i])
		if next == nil {
			break
		}
		node = next
		i++
	}
	return node, i
}

// scanTagEnd finds the '>' of a tag whose name ends at i. Attributes after a
// space or '=' are skipped. A '<', brace or line break inside the tag, or a
// tag longer than [MaxTagLength], breaks it.
func (p *Parser) scanTagEnd(start, i int) (int, tagEnd) {
	text := p.cur.text

	switch text[i] {
	case '>':
		return i, endFound
	case ' ', '=':
	default:
		return 0, endNotTag
	}

	for j := i + 1; j < len(text); j++ {
		if j-start+1 > MaxTagLength {
			return 0, endBroken
		}

		switch text[j] {
		case '>':
			return j, endFound
		case '<', '{', '}', '\n':
			return 0, endBroken
		}
	}

	return 0, endNotTag
}

// tag handles the '<' under the cursor.
func (p *Parser) tag() {
	start := p.cur.pos
	m := p.mark()
	text := p.cur.text

	if !p.noparse && p.replacement(start) {
		return
	}

	node, i := walk(tagTrie, text, start)
	kind, ok := node.Value()

	// not a tag we care about: the client renders it, keep scanning inside it
	if !ok || i >= len(text) || (p.noparse && kind != tagCloseNoparse) {
		p.cur.seek(i)
		return
	}

	switch kind {
	case tagLineHeight, tagSize:
		if text[i] != '=' {
			p.cur.seek(i)
			return
		}
		p.valueTag(kind, start, i+1, m)

	case tagVOffset:
		p.cur.seek(i)

	case tagAlign:
		if !p.settings.ResolutionAlign || text[i] != '=' {
			p.cur.seek(i)
			return
		}
		p.alignTag(start, i+1)

	default:
		if kind == tagCloseAlign && !p.settings.ResolutionAlign {
			p.cur.seek(i)
			return
		}

		end, res := p.scanTagEnd(start, i)
		switch res {
		case endNotTag:
			p.cur.seek(i)
			return
		case endBroken:
			p.warn(IssueBrokenTag, start, "tag is not closed properly")
			p.breakTag(start, m)
			return
		}

		p.applySimple(kind, start, end)
		p.cur.seek(end + 1)
	}
}

func (p *Parser) applySimple(kind tagKind, start, end int) {
	switch kind {
	case tagNoparse:
		p.noparse = true
	case tagCloseNoparse:
		p.noparse = false
	case tagCloseSize:
		if n := len(p.sizes); n > 0 {
			p.sizes = p.sizes[:n-1]
		}
	case tagCloseLineHeight, tagCloseVOffset:
		p.hasLineHeight = false
	case tagCloseAlign:
		p.setAlign(alignNone, start, end+1)
	}
}

// valueTag handles size and line-height, whose value starts at valueStart.
func (p *Parser) valueTag(kind tagKind, start, valueStart int, m mark) {
	meas, end, ok := p.parseMeasurement(start, valueStart)
	if !ok {
		p.breakTag(start, m)
		return
	}

	v := meas.ToAnimatable(kind == tagSize)

	switch kind {
	case tagLineHeight:
		p.lineHeight = v
		p.hasLineHeight = true
	case tagSize:
		p.sizes = append(p.sizes, v)
	}

	p.mods = append(p.mods, Modification{
		Kind:  KindTag,
		Pos:   start,
		Skip:  end + 1 - start,
		Name:  tagNames[kind],
		Value: v,
	})
	p.cur.seek(end + 1)
}

// breakTag makes the client show the tag at start as text. Everything
// recorded since m is discarded and parsing resumes right after the '<'.
func (p *Parser) breakTag(start int, m mark) {
	p.reset(m)

	kind := KindCloseNoparse
	if p.noparse {
		kind = KindNoparse
	}

	p.mods = append(p.mods, Modification{Kind: kind, Pos: start + 1})
	p.cur.seek(start + 1)
}

// replacement handles tags like <br> that the client turns into a character.
// Only <br> changes the layout; the others are left as they are.
func (p *Parser) replacement(start int) bool {
	text := p.cur.text

	node, i := walk(replacementTrie, text, start)
	r, ok := node.Value()
	if !ok || i >= len(text) {
		return false
	}

	end, res := p.scanTagEnd(start, i)
	if res != endFound {
		return false
	}

	if r == '\n' {
		p.linebreak(start, end+1-start)
	}

	p.cur.seek(end + 1)
	return true
}
