package combiner

import (
	"fmt"
	"unicode/utf8"

	"github.com/Drolfothesgnir/hintstack/wire"
)

// rechunk writes content to out, moving breakable runs into string
// parameters until the result fits in limit bytes. No-break zones are always
// written inline. Runs are moved from the start of the content; once the
// projected size fits, the rest is copied as is.
func rechunk(content []byte, zones wire.NoBreaks, limit int, h *ParameterHandler, out *wire.Writer) error {
	out.Reset()

	size := len(content)
	pos := 0

	for i := 0; i <= len(zones); i++ {
		end := len(content)
		if i < len(zones) {
			end = zones[i].Start
		}

		if end > pos {
			run := content[pos:end]
			if size > limit {
				written, err := moveRun(run, h, out)
				if err != nil {
					return err
				}
				size -= len(run) - written
			} else {
				out.WriteRawBytes(run)
			}
		}

		if i < len(zones) {
			z := zones[i]
			out.WriteRawBytes(content[z.Start:z.End()])
			pos = z.End()
		}
	}

	if size > limit {
		return fmt.Errorf("%w: content needs %d bytes after chunking, limit is %d", ErrPayloadOverflow, size, limit)
	}

	return nil
}

// moveRun replaces run with placeholders of string parameters holding it,
// split on UTF-8 boundaries. A run no longer than its placeholder is written
// inline. It returns the number of bytes written to out.
func moveRun(run []byte, h *ParameterHandler, out *wire.Writer) (int, error) {
	if len(run) <= wire.FormatItemLength(h.Count()) {
		out.WriteRawBytes(run)
		return len(run), nil
	}

	written := 0
	for len(run) > 0 {
		n := chunkLength(run, wire.MaxStringLength)

		id, err := h.AddString(run[:n])
		if err != nil {
			return 0, err
		}

		out.WriteFormatItem(id)
		written += wire.FormatItemLength(id)
		run = run[n:]
	}

	return written, nil
}

// chunkLength returns the longest prefix of b no longer than limit that does
// not end inside a UTF-8 sequence.
func chunkLength(b []byte, limit int) int {
	if len(b) <= limit {
		return len(b)
	}

	n := limit
	for n > 0 && !utf8.RuneStart(b[n]) {
		n--
	}
	if n == 0 {
		// not valid UTF-8; split anywhere
		return limit
	}
	return n
}
