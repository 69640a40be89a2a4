package wire

// NoBreak marks Length bytes starting at Start that must stay in one chunk.
type NoBreak struct {
	Start  int
	Length int
}

// End is the exclusive end of the zone.
func (n NoBreak) End() int {
	return n.Start + n.Length
}

// NoBreaks is an ordered list of zones. Zones are appended in ascending Start
// order, which is the order content is written in.
type NoBreaks []NoBreak

// Add appends a zone. Empty zones are ignored, and a zone overlapping the
// previous one is merged into it.
func (z *NoBreaks) Add(start, length int) {
	if length <= 0 {
		return
	}

	list := *z
	if n := len(list); n > 0 && start < list[n-1].End() {
		last := &list[n-1]
		last.Length = max(last.End(), start+length) - last.Start
		return
	}

	*z = append(list, NoBreak{Start: start, Length: length})
}

// Bytes is the total length of the zones.
func (z NoBreaks) Bytes() int {
	n := 0
	for _, nb := range z {
		n += nb.Length
	}
	return n
}

// Shift moves every zone by delta bytes.
func (z NoBreaks) Shift(delta int) {
	for i := range z {
		z[i].Start += delta
	}
}
