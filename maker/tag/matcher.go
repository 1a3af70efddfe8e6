package tag

import (
	"regexp"
	"strconv"
	"strings"
)

// MatcherKind tells the compiled matcher variants apart.
type MatcherKind int

const (
	MatchRegex MatcherKind = iota
	MatchContains
	MatchLiteral
	MatchAfterDate
	MatchBeforeDate
)

// Matcher decides whether a single tag value satisfies an operand.
// A Matcher is immutable once built and safe for concurrent use.
type Matcher struct {
	Kind MatcherKind
	Text string
	Year int
	re   *regexp.Regexp
}

// BuildMatcher compiles operand for the given mode and tag name.
//
// Regex operands must compile. Literal operands on the before/after year
// tags must be integers.
func BuildMatcher(operand string, mode SearchMode, name string) (Matcher, error) {
	switch mode {
	case Regex:
		re, err := regexp.Compile(operand)
		if err != nil {
			return Matcher{}, &OperandError{Operand: operand, Err: ErrInvalidRegex, Cause: err}
		}
		return Matcher{Kind: MatchRegex, Text: operand, re: re}, nil
	case Contains:
		return Matcher{Kind: MatchContains, Text: operand}, nil
	}

	bound := boundOf(strings.ToLower(name))
	if bound == noBound {
		return Matcher{Kind: MatchLiteral, Text: operand}, nil
	}
	year, err := strconv.Atoi(operand)
	if err != nil {
		return Matcher{}, &OperandError{Operand: operand, Err: ErrInvalidYear, Cause: err}
	}
	if bound == before {
		return Matcher{Kind: MatchBeforeDate, Year: year}, nil
	}
	return Matcher{Kind: MatchAfterDate, Year: year}, nil
}

// Matches reports whether value satisfies the matcher.
//
// Date matchers compare value as an integer year; a value that is not an
// integer never matches.
func (m Matcher) Matches(value string) bool {
	switch m.Kind {
	case MatchRegex:
		return m.re != nil && m.re.MatchString(value)
	case MatchContains:
		return strings.Contains(value, m.Text)
	case MatchLiteral:
		return value == m.Text
	case MatchAfterDate:
		y, err := strconv.Atoi(value)
		return err == nil && y > m.Year
	case MatchBeforeDate:
		y, err := strconv.Atoi(value)
		return err == nil && y <= m.Year
	default:
		return false
	}
}
