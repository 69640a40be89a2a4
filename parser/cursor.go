package parser

// cursor is the read position over the source text.
type cursor struct {
	text string
	pos  int
}

func (c *cursor) eof() bool {
	return c.pos >= len(c.text)
}

func (c *cursor) peek() byte {
	return c.text[c.pos]
}

// at returns the byte at i, or false past the end.
func (c *cursor) at(i int) (byte, bool) {
	if i < 0 || i >= len(c.text) {
		return 0, false
	}
	return c.text[i], true
}

func (c *cursor) advance(n int) {
	c.pos += n
}

func (c *cursor) seek(i int) {
	c.pos = i
}

// mark is a point the parser can backtrack to: a read position together with
// the number of modifications recorded up to it.
type mark struct {
	pos  int
	mods int
}

func (p *Parser) mark() mark {
	return mark{pos: p.cur.pos, mods: len(p.mods)}
}

// reset rewinds the cursor and discards every modification recorded after m.
func (p *Parser) reset(m mark) {
	p.cur.pos = m.pos
	p.mods = p.mods[:m.mods]
}
