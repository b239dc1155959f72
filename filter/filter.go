// Package filter implements the boolean query language behind the
// options listing's --filter flag, e.g. "dte>10, dte<50" or
// "(dte>300 + dte<30), strike>150". ',' is AND, '+' is OR, AND binds
// tighter, parentheses group. Literals are plain numbers, percents
// (5%) and durations (2d15h), normalized at compile time to the
// compared field's natural unit.
package filter

import "strings"

// CompiledFilter is an immutable compiled filter expression. It holds
// no mutable state, so one compiled filter may be applied to any
// number of records, from any number of goroutines.
type CompiledFilter struct {
	expr   Expr // nil matches every record
	source string
}

// Compile lexes, parses and domain-checks a filter expression,
// returning the first Lex/Parse/Compile error encountered. An empty
// or blank expression compiles to a filter that keeps every record.
func Compile(input string) (*CompiledFilter, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return &CompiledFilter{}, nil
	}

	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	expr, err := parse(tokens)
	if err != nil {
		return nil, err
	}
	return &CompiledFilter{expr: expr, source: input}, nil
}

// Match reports whether the record passes the filter.
func (f *CompiledFilter) Match(rec Record) (bool, error) {
	if f.expr == nil {
		return true, nil
	}
	return f.expr.Eval(rec)
}

// Source returns the original expression text, "" for the
// match-everything filter.
func (f *CompiledFilter) Source() string {
	return f.source
}

// Apply returns the records the filter keeps, preserving input order.
// Applying the same filter twice yields the same result set.
func Apply[R Record](f *CompiledFilter, records []R) ([]R, error) {
	kept := make([]R, 0, len(records))
	for _, rec := range records {
		ok, err := f.Match(rec)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, rec)
		}
	}
	return kept, nil
}
