package filter

import (
	"fmt"
	"strconv"
)

// Tokenize turns a filter expression into a flat token sequence
// terminated by an explicit EOF token. Whitespace between tokens is
// skipped. Identifiers are tokenized without vocabulary checks; the
// parser rejects unknown fields so the error can name the known ones.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	prev := TokenEOF // type of the previously emitted token
	i := 0

	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
			continue

		case c == ',':
			tokens = append(tokens, Token{Type: TokenComma, Text: ",", Pos: i})
			i++

		case c == '(':
			tokens = append(tokens, Token{Type: TokenLParen, Text: "(", Pos: i})
			i++

		case c == ')':
			tokens = append(tokens, Token{Type: TokenRParen, Text: ")", Pos: i})
			i++

		case c == '+':
			// '+' is the OR operator except when it signs a literal
			// directly after a comparison operator.
			if prev == TokenOp && i+1 < len(input) && isDigit(input[i+1]) {
				tok, next, err := lexNumber(input, i)
				if err != nil {
					return nil, err
				}
				tokens = append(tokens, tok)
				i = next
			} else {
				tokens = append(tokens, Token{Type: TokenPlus, Text: "+", Pos: i})
				i++
			}

		case c == '-':
			if i+1 >= len(input) || !isDigit(input[i+1]) {
				return nil, &LexError{Pos: i, Reason: "'-' must be followed by a number"}
			}
			tok, next, err := lexNumber(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next

		case c == '>' || c == '<' || c == '=' || c == '!':
			tok, next, err := lexOperator(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next

		case isDigit(c) || c == '.':
			tok, next, err := lexNumber(input, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next

		case isIdentStart(c):
			start := i
			for i < len(input) && isIdentChar(input[i]) {
				i++
			}
			tokens = append(tokens, Token{Type: TokenIdent, Text: input[start:i], Pos: start})

		default:
			return nil, &LexError{Pos: i, Reason: fmt.Sprintf("unrecognized character %q", string(c))}
		}

		prev = tokens[len(tokens)-1].Type
	}

	tokens = append(tokens, Token{Type: TokenEOF, Pos: len(input)})
	return tokens, nil
}

// lexOperator matches comparison operators longest-first so ">=" is
// never split into ">" "=".
func lexOperator(input string, start int) (Token, int, error) {
	two := ""
	if start+2 <= len(input) {
		two = input[start : start+2]
	}
	switch two {
	case ">=", "<=", "!=":
		return Token{Type: TokenOp, Text: two, Pos: start}, start + 2, nil
	}
	switch input[start] {
	case '>', '<', '=':
		return Token{Type: TokenOp, Text: input[start : start+1], Pos: start}, start + 1, nil
	}
	return Token{}, start, &LexError{Pos: start, Reason: "'!' must be followed by '='"}
}

// lexNumber scans a numeric, percent, or duration literal starting at
// start. Durations are one or more <integer><unit> segments (units
// d, h, m, s) summed into total seconds.
func lexNumber(input string, start int) (Token, int, error) {
	i := start
	signed := false
	if input[i] == '+' || input[i] == '-' {
		signed = true
		i++
	}

	digits := 0
	for i < len(input) && isDigit(input[i]) {
		i++
		digits++
	}
	hasDot := false
	if i < len(input) && input[i] == '.' {
		hasDot = true
		i++
		for i < len(input) && isDigit(input[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return Token{}, start, &LexError{Pos: start, Reason: "malformed number"}
	}

	value, err := strconv.ParseFloat(input[start:i], 64)
	if err != nil {
		return Token{}, start, &LexError{Pos: start, Reason: fmt.Sprintf("malformed number %q", input[start:i])}
	}

	// Percent literal: number immediately followed by '%'.
	if i < len(input) && input[i] == '%' {
		i++
		return Token{Type: TokenPercent, Text: input[start:i], Num: value, Pos: start}, i, nil
	}

	// Duration literal: integer immediately followed by a unit letter.
	if i < len(input) && isDurationUnit(input[i]) {
		if hasDot {
			return Token{}, start, &LexError{Pos: start, Reason: "duration literal cannot contain a decimal point"}
		}
		if signed {
			return Token{}, start, &LexError{Pos: start, Reason: "duration literal cannot be signed"}
		}
		total := value * unitSeconds(input[i])
		i++
		for i < len(input) && isDigit(input[i]) {
			segStart := i
			for i < len(input) && isDigit(input[i]) {
				i++
			}
			if i >= len(input) || !isDurationUnit(input[i]) {
				return Token{}, start, &LexError{Pos: segStart, Reason: "duration segment missing unit (expected d, h, m or s)"}
			}
			seg, err := strconv.Atoi(input[segStart:i])
			if err != nil {
				return Token{}, start, &LexError{Pos: segStart, Reason: fmt.Sprintf("malformed duration segment %q", input[segStart:i])}
			}
			total += float64(seg) * unitSeconds(input[i])
			i++
		}
		if i < len(input) && isIdentChar(input[i]) {
			return Token{}, start, &LexError{Pos: i, Reason: fmt.Sprintf("malformed duration literal %q", input[start:i+1])}
		}
		return Token{Type: TokenDuration, Text: input[start:i], Num: total, Pos: start}, i, nil
	}

	if i < len(input) && isIdentChar(input[i]) {
		return Token{}, start, &LexError{Pos: i, Reason: fmt.Sprintf("malformed literal %q", input[start:i+1])}
	}
	return Token{Type: TokenNumber, Text: input[start:i], Num: value, Pos: start}, i, nil
}

func unitSeconds(unit byte) float64 {
	switch unit {
	case 'd':
		return 86400
	case 'h':
		return 3600
	case 'm':
		return 60
	case 's':
		return 1
	}
	return 0
}

func isDurationUnit(c byte) bool {
	return c == 'd' || c == 'h' || c == 'm' || c == 's'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
