// Package filter compiles user-supplied filter expressions and evaluates
// them against bookmarks. Expressions use the expr language and see the
// bookmark's fields plus a set of helper functions (hasLabel, daysSince,
// contains, ...).
package filter

import (
	"strings"

	"github.com/readeck-contrib/readeckctl/readeck"
)

// CompiledFilter is a pre-compiled filter ready for evaluation. Compiled
// filters are safe for concurrent use.
type CompiledFilter interface {
	// Evaluate checks if a bookmark matches the filter criteria.
	Evaluate(bookmark readeck.Bookmark) bool

	// Expression returns the original filter expression.
	Expression() string
}

// Compiler compiles filter expressions into executable filters.
type Compiler interface {
	Compile(expression string) (CompiledFilter, error)
}

// Apply returns the bookmarks matching the compiled filter, preserving
// input order.
func Apply(f CompiledFilter, bookmarks []readeck.Bookmark) []readeck.Bookmark {
	if f == nil {
		return bookmarks
	}
	matched := make([]readeck.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if f.Evaluate(b) {
			matched = append(matched, b)
		}
	}
	return matched
}

// ParseAndCreateFilter compiles an expression into a match function. An
// empty expression matches everything.
func ParseAndCreateFilter(expression string) (func(readeck.Bookmark) bool, error) {
	if strings.TrimSpace(expression) == "" {
		return func(readeck.Bookmark) bool { return true }, nil
	}

	compiled, err := NewExprCompiler().Compile(expression)
	if err != nil {
		return nil, err
	}
	return compiled.Evaluate, nil
}
