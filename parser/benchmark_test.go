package parser

import (
	"strings"
	"testing"
)

const benchText = "<size=+10>Round {0}</size>\nPress {1} to <b>ready</b> up <noparse><size=5></noparse>\\n{{done}}"

func BenchmarkParse(b *testing.B) {
	s := Settings{Parameters: stringParams("3", "F")}

	for b.Loop() {
		Parse(benchText, s)
	}
}

func BenchmarkParse_ReusedParser(b *testing.B) {
	s := Settings{Parameters: stringParams("3", "F")}
	var p Parser

	for b.Loop() {
		p.Parse(benchText, s)
	}
}

func BenchmarkParse_LongInput(b *testing.B) {
	s := Settings{Parameters: stringParams("3", "F")}
	input := strings.Repeat(benchText, 64)

	for b.Loop() {
		Parse(input, s)
	}
}
