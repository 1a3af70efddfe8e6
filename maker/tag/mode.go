package tag

// SearchMode selects how an operand is compared against a tag value.
type SearchMode int

const (
	// Literal requires exact equality (and enables the before/after year tags).
	Literal SearchMode = iota
	// Contains requires the operand to be a substring of the value.
	Contains
	// Regex requires the operand, compiled as a pattern, to match anywhere in the value.
	Regex
)

func (m SearchMode) String() string {
	switch m {
	case Literal:
		return "literal"
	case Contains:
		return "contains"
	case Regex:
		return "regex"
	default:
		return "unknown"
	}
}

// Prefix returns the query-language prefix that selects the mode.
func (m SearchMode) Prefix() string {
	switch m {
	case Contains:
		return "C_"
	case Regex:
		return "R_"
	default:
		return ""
	}
}
