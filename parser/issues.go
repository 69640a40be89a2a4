package parser

// Issue defines the kinds of anomalies the parser recovers from.
type Issue int

const (
	// IssueBrokenTag means a recognised tag was malformed and was turned into
	// literal text.
	IssueBrokenTag Issue = iota

	// IssueTagTooLong means a recognised tag did not close within [MaxTagLength].
	IssueTagTooLong

	// IssueInvalidMeasurement means a tag value is not a number with an
	// optional sign and unit.
	IssueInvalidMeasurement

	// IssueValueTooLarge means a tag value exceeds [MaxValueSize].
	IssueValueTooLarge

	// IssueInvalidParameter means a tag value references a parameter that is
	// missing, not animated, or carries its own format or rounding.
	IssueInvalidParameter

	// IssueInvalidFormatItem means a {n} placeholder has no matching parameter.
	IssueInvalidFormatItem

	// IssueLoneBrace means a '{' or '}' is not part of a placeholder or an
	// escape pair. It is doubled so the client renders it literally.
	IssueLoneBrace

	// IssueUnsupportedEscape means an escape sequence the parser does not
	// handle, like \U, was neutralised.
	IssueUnsupportedEscape

	// IssueWarningsTruncated occurs when there are too many Warnings recorded.
	IssueWarningsTruncated

	// IssueNegativeWarningsCap reports an invalid (negative) warnings capacity.
	IssueNegativeWarningsCap
)

func (i Issue) String() string {
	switch i {
	case IssueBrokenTag:
		return "broken_tag"
	case IssueTagTooLong:
		return "tag_too_long"
	case IssueInvalidMeasurement:
		return "invalid_measurement"
	case IssueValueTooLarge:
		return "value_too_large"
	case IssueInvalidParameter:
		return "invalid_parameter"
	case IssueInvalidFormatItem:
		return "invalid_format_item"
	case IssueLoneBrace:
		return "lone_brace"
	case IssueUnsupportedEscape:
		return "unsupported_escape"
	case IssueWarningsTruncated:
		return "warnings_truncated"
	case IssueNegativeWarningsCap:
		return "negative_warnings_cap"
	default:
		return "unknown"
	}
}
