package parser

import "math"

const (
	// EmSize is the default font size of the client, in pixels.
	EmSize = 34.7

	// DefaultLineHeight is the height of one line at [EmSize].
	DefaultLineHeight = 40.6640648767

	// MaxTagLength is the longest tag, from '<' to '>' inclusive, the client
	// still parses as a tag.
	MaxTagLength = 129

	// MaxValueSize is the largest magnitude accepted in a numeric tag value.
	MaxValueSize = 32768

	// MaxFormatDigits is the maximum number of digits in a {n} placeholder.
	MaxFormatDigits = 5

	// InvalidFormatIndex is written in place of a placeholder that has no
	// matching parameter. The client renders it as nothing.
	InvalidFormatIndex = math.MaxInt32

	// ReferenceAspectRatio is the aspect ratio the canvas is laid out for.
	ReferenceAspectRatio = 16.0 / 9.0

	// CanvasHeight is the virtual canvas height, in pixels.
	CanvasHeight = 1080
)

// EdgeOffset returns the horizontal padding that moves aligned text from the
// reference canvas edge to the real screen edge of a viewer with the given
// aspect ratio.
func EdgeOffset(aspectRatio float64) float64 {
	return (ReferenceAspectRatio - aspectRatio) * CanvasHeight / 2
}
