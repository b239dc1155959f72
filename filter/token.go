package filter

import "fmt"

// TokenType identifies the kind of a lexed token.
type TokenType int

const (
	TokenIdent TokenType = iota
	TokenOp              // > < >= <= = !=
	TokenNumber
	TokenPercent
	TokenDuration
	TokenComma // structural AND
	TokenPlus  // structural OR
	TokenLParen
	TokenRParen
	TokenEOF
)

// Token is one lexical unit of a filter expression. Tokens are
// immutable once produced by Tokenize.
type Token struct {
	Type TokenType
	Text string  // raw text as written
	Num  float64 // Number/Percent: literal value; Duration: total seconds
	Pos  int     // byte offset in the filter string
}

// describe renders a token for parse error messages.
func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return "end of filter"
	case TokenComma:
		return "','"
	case TokenPlus:
		return "'+'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	default:
		return fmt.Sprintf("%q", tok.Text)
	}
}
