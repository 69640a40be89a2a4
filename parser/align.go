package parser

import (
	"strings"
)

type alignMode uint8

const (
	alignNone alignMode = iota
	alignLeft
	alignRight
)

// alignTag handles <align=...> when resolution alignment is enabled. The tag
// itself is kept for the client.
func (p *Parser) alignTag(start, valueStart int) {
	text := p.cur.text

	j := valueStart
	for j < len(text) && j-start < MaxTagLength && isLetter(text[j]) {
		j++
	}

	if j >= len(text) || text[j] != '>' {
		p.cur.seek(valueStart)
		return
	}

	mode := alignNone
	switch strings.ToLower(text[valueStart:j]) {
	case "left":
		mode = alignLeft
	case "right":
		mode = alignRight
	}

	p.setAlign(mode, start, j+1)
	p.cur.seek(j + 1)
}

// setAlign ends the current line of the old alignment at tagStart and starts
// a line of the new one at tagEnd.
func (p *Parser) setAlign(mode alignMode, tagStart, tagEnd int) {
	p.closeLine(tagStart)
	p.align = mode
	p.openLine(tagEnd)
}

// closeLine pads the end of a right aligned line.
func (p *Parser) closeLine(pos int) {
	if p.align == alignRight {
		p.mods = append(p.mods, Modification{Kind: KindAlignSpace, Pos: pos, Right: true})
	}
}

// openLine pads the start of a left aligned line.
func (p *Parser) openLine(pos int) {
	if p.align == alignLeft {
		p.mods = append(p.mods, Modification{Kind: KindAlignSpace, Pos: pos})
	}
}

func isLetter(c byte) bool {
	c |= 0x20
	return c >= 'a' && c <= 'z'
}
