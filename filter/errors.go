package filter

import (
	"fmt"
	"sort"
	"strings"
)

// LexError reports an unrecognized character or malformed literal.
type LexError struct {
	Pos    int // byte offset in the filter string
	Reason string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("invalid filter: %s (at position %d)", e.Reason, e.Pos)
}

// ParseError reports a grammar violation: unmatched parenthesis,
// missing operand, dangling operator.
type ParseError struct {
	Pos      int
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid filter: expected %s, found %s (at position %d)", e.Expected, e.Found, e.Pos)
}

// CompileError reports an unknown field or a literal whose unit is
// incompatible with the field's domain.
type CompileError struct {
	Field   string
	Literal string
	Reason  string
}

func (e *CompileError) Error() string {
	if e.Literal == "" {
		return fmt.Sprintf("invalid filter: field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid filter: field %q: %s %q", e.Field, e.Reason, e.Literal)
}

// MissingFieldError reports a record that lacks a field the compiled
// filter references. This is a caller contract violation, not a user
// input error: compilation already verified the field vocabulary.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record has no field %q", e.Field)
}

// knownFieldList returns the field vocabulary for error messages.
func knownFieldList() string {
	names := make([]string, 0, len(fieldDomains))
	for name := range fieldDomains {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
