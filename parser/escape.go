package parser

// escape handles the backslash under the cursor. Escapes are interpreted by
// the client; the parser only needs to know which of them break lines, and
// to neutralise the ones that must not be interpreted.
func (p *Parser) escape() {
	pos := p.cur.pos

	if p.noparse && !p.settings.parses(ParsesEscapeSequences) {
		// a second backslash keeps the client from reading the escape
		p.mods = append(p.mods, Modification{Kind: KindInsert, Pos: pos, Text: `\`})
		p.cur.advance(1)
		return
	}

	next, ok := p.cur.at(pos + 1)
	if !ok {
		p.cur.advance(1)
		return
	}

	switch next {
	case '\\', 't', 'r':
		p.cur.advance(2)

	case 'n', 'v':
		p.linebreak(pos, 2)
		p.cur.advance(2)

	case 'u':
		if isHex(p.cur.text, pos+2, 4) {
			p.cur.advance(6)
			return
		}
		p.cur.advance(1)

	case 'U':
		p.warn(IssueUnsupportedEscape, pos, `\U escapes are not supported`)
		p.mods = append(p.mods, Modification{Kind: KindInsert, Pos: pos, Text: `\`})
		p.cur.advance(1)

	default:
		p.cur.advance(1)
	}
}

func isHex(text string, start, n int) bool {
	if start+n > len(text) {
		return false
	}
	for i := start; i < start+n; i++ {
		c := text[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}
