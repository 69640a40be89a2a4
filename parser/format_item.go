package parser

import "fmt"

// formatItem handles the '{' or '}' under the cursor.
//
// The client runs the content through a string formatter, so every brace
// must end up either in a placeholder or in an escape pair. Pairs and
// placeholders are recorded as no-break zones; lone braces are doubled.
func (p *Parser) formatItem() {
	pos := p.cur.pos
	text := p.cur.text
	c := text[pos]

	if p.noparse && !p.settings.parses(ParsesFormatItems) {
		p.doubleBrace(pos, c)
		return
	}

	if next, ok := p.cur.at(pos + 1); ok && next == c {
		p.mods = append(p.mods, Modification{Kind: KindNoBreak, Pos: pos, Zone: 2})
		p.cur.advance(2)
		return
	}

	if c == '{' {
		if n, end, ok := scanFormatIndex(text, pos); ok {
			skip := end + 1 - pos

			if n < len(p.settings.Parameters) {
				p.mods = append(p.mods, Modification{Kind: KindFormatItem, Pos: pos, Skip: skip, Index: n})
			} else {
				p.warn(IssueInvalidFormatItem, pos,
					fmt.Sprintf("placeholder {%d} has no parameter, element has %d", n, len(p.settings.Parameters)))
				p.mods = append(p.mods, Modification{Kind: KindInvalidFormatItem, Pos: pos, Skip: skip})
			}

			p.cur.seek(end + 1)
			return
		}
	}

	p.warn(IssueLoneBrace, pos, fmt.Sprintf("lone %q", c))
	p.doubleBrace(pos, c)
}

// doubleBrace makes the client render the brace at pos literally.
func (p *Parser) doubleBrace(pos int, c byte) {
	p.mods = append(p.mods, Modification{Kind: KindInsert, Pos: pos, Text: string(c), Zone: 2})
	p.cur.advance(1)
}

// scanFormatIndex reads {n} starting at the '{' at pos. It returns n and the
// index of the '}'.
func scanFormatIndex(text string, pos int) (int, int, bool) {
	n := 0
	j := pos + 1
	for j < len(text) && j-pos-1 < MaxFormatDigits && text[j] >= '0' && text[j] <= '9' {
		n = n*10 + int(text[j]-'0')
		j++
	}

	if j == pos+1 || j >= len(text) || text[j] != '}' {
		return 0, 0, false
	}

	return n, j, true
}
