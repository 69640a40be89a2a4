package combiner

import (
	"fmt"
	"strings"

	"github.com/Drolfothesgnir/hintstack/param"
	"github.com/Drolfothesgnir/hintstack/wire"
)

// Frame is a decoded payload.
type Frame struct {
	MessageID  uint16
	HintType   uint8
	Duration   float32
	Parameters []param.Parameter
	Content    string
}

// Decode parses a payload built by [Combiner.Build].
func Decode(payload []byte) (Frame, error) {
	r := wire.NewReader(payload)

	var (
		f   Frame
		err error
	)

	if f.MessageID, err = r.ReadUint16(); err != nil {
		return Frame{}, fmt.Errorf("message id: %w", err)
	}
	if f.HintType, err = r.ReadUint8(); err != nil {
		return Frame{}, fmt.Errorf("hint type: %w", err)
	}
	if f.Duration, err = r.ReadFloat32(); err != nil {
		return Frame{}, fmt.Errorf("duration: %w", err)
	}

	count, err := r.ReadInt32()
	if err != nil {
		return Frame{}, fmt.Errorf("parameter count: %w", err)
	}
	if count < 0 || int(count) > r.Remaining() {
		return Frame{}, fmt.Errorf("parameter count %d is out of range", count)
	}

	f.Parameters = make([]param.Parameter, 0, count)
	for i := range int(count) {
		p, err := param.Decode(r)
		if err != nil {
			return Frame{}, fmt.Errorf("parameter %d: %w", i, err)
		}
		f.Parameters = append(f.Parameters, p)
	}

	if f.Content, err = r.ReadString(); err != nil {
		return Frame{}, fmt.Errorf("content: %w", err)
	}

	if n := r.Remaining(); n != 0 {
		return Frame{}, fmt.Errorf("%d trailing bytes", n)
	}

	return f, nil
}

// Expand formats the content the way the client does for text parameters:
// {n} is replaced by the value of string parameter n and escaped braces are
// unescaped. Placeholders of other parameter kinds are kept.
func (f Frame) Expand() string {
	c := f.Content

	var b strings.Builder
	b.Grow(len(c))

	for i := 0; i < len(c); i++ {
		ch := c[i]

		if (ch == '{' || ch == '}') && i+1 < len(c) && c[i+1] == ch {
			b.WriteByte(ch)
			i++
			continue
		}

		if ch == '{' {
			if n, end, ok := placeholder(c, i); ok && n < len(f.Parameters) {
				if s, ok := f.Parameters[n].(param.String); ok {
					b.WriteString(s.Value)
					i = end
					continue
				}
			}
		}

		b.WriteByte(ch)
	}

	return b.String()
}

// placeholder reads {n} at i and returns n and the index of the '}'.
func placeholder(s string, i int) (int, int, bool) {
	n := 0
	j := i + 1
	for j < len(s) && s[j] >= '0' && s[j] <= '9' && j-i <= 10 {
		n = n*10 + int(s[j]-'0')
		j++
	}
	if j == i+1 || j >= len(s) || s[j] != '}' {
		return 0, 0, false
	}
	return n, j, true
}
