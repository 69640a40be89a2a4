package combiner

import (
	"github.com/Drolfothesgnir/hintstack/cumfloat"
	"github.com/Drolfothesgnir/hintstack/parser"
)

// apply copies the element text into the content, applying every
// modification at its position.
func (s *scope) apply(pf parser.ParsedForm, base int) error {
	text := pf.Text
	w := s.content
	cursor := 0

	for _, m := range pf.Modifications {
		if m.Pos > cursor {
			w.WriteRaw(text[cursor:m.Pos])
		}

		switch m.Kind {
		case parser.KindInsert:
			start := w.Len()
			w.WriteRaw(m.Text)
			s.zones.Add(start, m.Zone)

		case parser.KindNoBreak:
			s.zones.Add(w.Len(), m.Zone)

		case parser.KindNoparse:
			w.WriteRaw("<noparse>")

		case parser.KindCloseNoparse:
			w.WriteRaw("</noparse>")

		case parser.KindLinebreak:
			if err := s.linebreak(m); err != nil {
				return err
			}

		case parser.KindTag:
			w.WriteUint8('<')
			w.WriteRaw(m.Name)
			w.WriteUint8('=')
			if err := s.writeValue(m.Value); err != nil {
				return err
			}
			w.WriteUint8('>')

		case parser.KindFormatItem:
			w.WriteFormatItemNoBreak(base+m.Index, &s.zones)

		case parser.KindInvalidFormatItem:
			w.WriteFormatItemNoBreak(parser.InvalidFormatIndex, &s.zones)

		case parser.KindAlignSpace:
			s.alignSpace(m.Right)

		case parser.KindSkip:
		}

		cursor = max(cursor, m.Pos+m.Skip)
	}

	if cursor < len(text) {
		w.WriteRaw(text[cursor:])
	}

	// sizes left open would resize the spacing and the next element
	for range pf.OpenSizes {
		w.WriteRaw("</size>")
	}

	return nil
}

func (s *scope) linebreak(m parser.Modification) error {
	w := s.content

	if m.InNoparse {
		w.WriteRaw("</noparse>")
	}

	if m.Value.IsAnimated() {
		w.WriteRaw("<line-height=")
		if err := s.writeValue(m.Value); err != nil {
			return err
		}
		w.WriteRaw(">\n<line-height=0>")
	} else {
		cumfloat.WriteLineHeight(w, m.Value.Addend)
	}

	if m.InNoparse {
		w.WriteRaw("<noparse>")
	}

	return nil
}

// writeValue writes a number, or the placeholder of a new curve parameter.
func (s *scope) writeValue(v cumfloat.AnimatableFloat) error {
	w := s.content

	if !v.IsAnimated() {
		w.WriteFloatAsString(float32(v.Addend))
		return nil
	}

	id, err := s.params.AddAnimated(v.Param, float32(v.Multiplier), float32(v.Addend))
	if err != nil {
		return err
	}

	if v.Absolute {
		if v.Multiplier < 0 {
			w.WriteUint8('-')
		} else {
			w.WriteUint8('A')
		}
	}

	w.WriteFormatItemNoBreak(id, &s.zones)
	return nil
}

// alignSpace pads an aligned line out to the viewer's screen edge. A
// trailing space needs a visible character after it or the client trims it.
func (s *scope) alignSpace(right bool) {
	offset := parser.EdgeOffset(s.viewer.AspectRatio)
	if offset == 0 {
		return
	}

	w := s.content
	w.WriteRaw("<space=")
	w.WriteFloatAsString(float32(offset))
	w.WriteRaw(">")
	if right {
		w.WriteRaw("<size=0>.</size>")
	}
}
