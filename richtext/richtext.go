// Package richtext builds element text.
package richtext

import (
	"strings"
	"unicode"
)

const (
	openNoparse  = "<noparse>"
	closeNoparse = "</noparse>"

	// zwnj breaks a closing noparse tag without changing how it looks
	zwnj = "\u200C"
)

// Sanitize wraps s in noparse so none of its tags are interpreted. Closing
// noparse tags inside s are broken up so s cannot leave the region.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(openNoparse) + len(closeNoparse))

	b.WriteString(openNoparse)
	for {
		i := indexFold(s, closeNoparse)
		if i < 0 {
			break
		}
		b.WriteString(s[:i+5])
		b.WriteString(zwnj)
		s = s[i+5:]
	}
	b.WriteString(s)
	b.WriteString(closeNoparse)

	return b.String()
}

// indexFold is strings.Index ignoring ASCII case. sub must be ASCII.
func indexFold(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if strings.EqualFold(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

// PreserveLowercase wraps runs of lowercase letters in <lowercase> so they
// survive an enclosing case tag such as <smallcaps>. Characters without case
// do not end a run.
func PreserveLowercase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lower := false
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			if !lower {
				b.WriteString("<lowercase>")
				lower = true
			}
		case unicode.IsUpper(r) && lower:
			b.WriteString("</lowercase>")
			lower = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
