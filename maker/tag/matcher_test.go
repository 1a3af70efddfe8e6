package tag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcherLiteral(t *testing.T) {
	m, err := BuildMatcher("Drake", Literal, "artist")
	require.NoError(t, err)
	assert.Equal(t, MatchLiteral, m.Kind)
	assert.True(t, m.Matches("Drake"))
	assert.False(t, m.Matches("drake"))
	assert.False(t, m.Matches("Drake "))
}

func TestMatcherContains(t *testing.T) {
	m, err := BuildMatcher("ak", Contains, "artist")
	require.NoError(t, err)
	assert.True(t, m.Matches("Drake"))
	assert.False(t, m.Matches("AK"))

	empty, err := BuildMatcher("", Contains, "artist")
	require.NoError(t, err)
	assert.True(t, empty.Matches("anything"))
}

func TestMatcherRegexSearchesAnywhere(t *testing.T) {
	m, err := BuildMatcher(`\d{4}`, Regex, "title")
	require.NoError(t, err)
	assert.True(t, m.Matches("Live 1999 edit"))
	assert.False(t, m.Matches("Live"))

	anchored, err := BuildMatcher("^A", Regex, "title")
	require.NoError(t, err)
	assert.True(t, anchored.Matches("Alright"))
	assert.False(t, anchored.Matches("bAlright"))
}

func TestMatcherDates(t *testing.T) {
	after, err := BuildMatcher("2000", Literal, "AfterDate")
	require.NoError(t, err)
	assert.Equal(t, MatchAfterDate, after.Kind)
	assert.Equal(t, 2000, after.Year)
	assert.True(t, after.Matches("2001"))
	assert.False(t, after.Matches("2000"))
	assert.False(t, after.Matches("1999"))

	before, err := BuildMatcher("2000", Literal, "beforeyear")
	require.NoError(t, err)
	assert.Equal(t, MatchBeforeDate, before.Kind)
	assert.True(t, before.Matches("2000"))
	assert.True(t, before.Matches("1999"))
	assert.False(t, before.Matches("2001"))
}

func TestMatcherMalformedYearNeverMatches(t *testing.T) {
	for _, name := range []string{"afteryear", "beforeyear"} {
		m, err := BuildMatcher("2000", Literal, name)
		require.NoError(t, err)
		assert.False(t, m.Matches("20xx"), name)
		assert.False(t, m.Matches(""), name)
	}
}

func TestBuildMatcherErrors(t *testing.T) {
	_, err := BuildMatcher("a|*", Regex, "album")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRegex))

	_, err = BuildMatcher("soon", Literal, "afterdate")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidYear))

	// Year only parses for the pseudo-tags.
	m, err := BuildMatcher("soon", Literal, "year")
	require.NoError(t, err)
	assert.Equal(t, MatchLiteral, m.Kind)
}
