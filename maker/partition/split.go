// Package partition splits a track collection into groups and evaluates
// a query expression over every group concurrently.
package partition

import (
	"fmt"
	"strings"
)

// Split names a splitting strategy.
type Split string

const (
	// SplitBalanced never drops a record.
	SplitBalanced Split = "balanced"
	// SplitReference reproduces Divide exactly, including the records it drops.
	SplitReference Split = "reference"
)

// ParseSplit accepts "balanced" or "reference" (any case). The empty string
// selects SplitBalanced.
func ParseSplit(s string) (Split, error) {
	switch Split(strings.ToLower(strings.TrimSpace(s))) {
	case "", SplitBalanced:
		return SplitBalanced, nil
	case SplitReference:
		return SplitReference, nil
	default:
		return "", fmt.Errorf("unknown split strategy %q (want balanced or reference)", s)
	}
}

// Divide splits items the way the reference implementation does.
//
// With base = len/divisions: when base is 0 every item becomes its own
// group. Otherwise the first len-len%divisions items are cut into
// divisions chunks of base items and the remaining len%divisions items are
// appended one per chunk, pairing them positionally. Only chunks that
// received a trailing item are returned, so when len is an exact multiple
// of divisions the result is empty.
func Divide[T any](items []T, divisions int) [][]T {
	if divisions < 1 {
		divisions = 1
	}
	n := len(items)
	base := n / divisions
	if base == 0 {
		groups := make([][]T, 0, n)
		for _, it := range items {
			groups = append(groups, []T{it})
		}
		return groups
	}

	rem := n % divisions
	at := n - rem
	head, tail := items[:at], items[at:]

	groups := make([][]T, 0, rem)
	for i, extra := range tail {
		g := make([]T, 0, base+1)
		g = append(g, head[i*base:(i+1)*base]...)
		g = append(g, extra)
		groups = append(groups, g)
	}
	return groups
}

// Balanced splits items into at most divisions contiguous groups whose
// sizes differ by at most one. Order is preserved and nothing is dropped.
func Balanced[T any](items []T, divisions int) [][]T {
	if divisions < 1 {
		divisions = 1
	}
	n := len(items)
	if n == 0 {
		return [][]T{}
	}
	if divisions > n {
		divisions = n
	}
	base, rem := n/divisions, n%divisions

	groups := make([][]T, 0, divisions)
	start := 0
	for i := 0; i < divisions; i++ {
		size := base
		if i < rem {
			size++
		}
		groups = append(groups, items[start:start+size:start+size])
		start += size
	}
	return groups
}
