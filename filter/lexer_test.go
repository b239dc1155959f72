package filter

import (
	"errors"
	"testing"
)

func TestTokenizeBasics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		types []TokenType
	}{
		{
			name:  "simple comparison",
			input: "dte>10",
			types: []TokenType{TokenIdent, TokenOp, TokenNumber, TokenEOF},
		},
		{
			name:  "and chain with whitespace",
			input: "dte>10, dte<50",
			types: []TokenType{TokenIdent, TokenOp, TokenNumber, TokenComma, TokenIdent, TokenOp, TokenNumber, TokenEOF},
		},
		{
			name:  "or with parens",
			input: "(dte>300 + dte<30), strike>150",
			types: []TokenType{TokenLParen, TokenIdent, TokenOp, TokenNumber, TokenPlus, TokenIdent, TokenOp, TokenNumber, TokenRParen, TokenComma, TokenIdent, TokenOp, TokenNumber, TokenEOF},
		},
		{
			name:  "percent literal",
			input: "return>5%",
			types: []TokenType{TokenIdent, TokenOp, TokenPercent, TokenEOF},
		},
		{
			name:  "duration literal",
			input: "dte<2d15h",
			types: []TokenType{TokenIdent, TokenOp, TokenDuration, TokenEOF},
		},
		{
			name:  "empty input yields bare EOF",
			input: "",
			types: []TokenType{TokenEOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
			}
			if len(tokens) != len(tt.types) {
				t.Fatalf("Tokenize(%q) = %d tokens, want %d", tt.input, len(tokens), len(tt.types))
			}
			for i, typ := range tt.types {
				if tokens[i].Type != typ {
					t.Errorf("token %d: type = %v, want %v (text %q)", i, tokens[i].Type, typ, tokens[i].Text)
				}
			}
		})
	}
}

func TestTokenizeOperatorsLongestFirst(t *testing.T) {
	tests := []struct {
		input string
		op    string
	}{
		{"dte>=10", ">="},
		{"dte<=10", "<="},
		{"dte!=10", "!="},
		{"dte>10", ">"},
		{"dte<10", "<"},
		{"dte=10", "="},
	}

	for _, tt := range tests {
		tokens, err := Tokenize(tt.input)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
		}
		if tokens[1].Type != TokenOp || tokens[1].Text != tt.op {
			t.Errorf("Tokenize(%q) op = %q, want %q", tt.input, tokens[1].Text, tt.op)
		}
		if tokens[2].Type != TokenNumber || tokens[2].Num != 10 {
			t.Errorf("Tokenize(%q) literal = %v, want Number 10", tt.input, tokens[2])
		}
	}
}

func TestTokenizeDurations(t *testing.T) {
	tests := []struct {
		input   string
		seconds float64
	}{
		{"2d15h", 2*86400 + 15*3600},
		{"90m", 90 * 60},
		{"1d", 86400},
		{"45s", 45},
		{"2d15h30m", 2*86400 + 15*3600 + 30*60},
		{"15h2d", 15*3600 + 2*86400}, // units in any order
		{"1d1d", 2 * 86400},          // repeated units sum
	}

	for _, tt := range tests {
		tokens, err := Tokenize(tt.input)
		if err != nil {
			t.Fatalf("Tokenize(%q) error: %v", tt.input, err)
		}
		if tokens[0].Type != TokenDuration {
			t.Fatalf("Tokenize(%q) type = %v, want TokenDuration", tt.input, tokens[0].Type)
		}
		if tokens[0].Num != tt.seconds {
			t.Errorf("Tokenize(%q) = %v seconds, want %v", tt.input, tokens[0].Num, tt.seconds)
		}
	}
}

func TestTokenizeSignedLiterals(t *testing.T) {
	tokens, err := Tokenize("return>-0.05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[2].Type != TokenNumber || tokens[2].Num != -0.05 {
		t.Errorf("negative literal = %v, want -0.05", tokens[2].Num)
	}

	// '+' directly after a comparison operator signs the number
	tokens, err = Tokenize("return>+5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[2].Type != TokenNumber || tokens[2].Num != 5 {
		t.Errorf("signed literal = %v, want 5", tokens[2].Num)
	}

	// elsewhere '+' stays structural OR
	tokens, err = Tokenize("dte>5 + dte<2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[3].Type != TokenPlus {
		t.Errorf("token 3 = %v, want TokenPlus", tokens[3])
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unrecognized character", "dte>10 & dte<50"},
		{"bare exclamation", "dte!10"},
		{"decimal duration", "dte<2.5d"},
		{"duration segment without unit", "dte<2d15"},
		{"duration followed by letter", "dte<2dx"},
		{"number glued to letters", "strike>5x"},
		{"dangling minus", "dte>-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded, want lex error", tt.input)
			}
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Errorf("Tokenize(%q) error type = %T, want *LexError", tt.input, err)
			}
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := Tokenize("dte >= 10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantPos := []int{0, 4, 7, 9}
	for i, pos := range wantPos {
		if tokens[i].Pos != pos {
			t.Errorf("token %d pos = %d, want %d", i, tokens[i].Pos, pos)
		}
	}
}
