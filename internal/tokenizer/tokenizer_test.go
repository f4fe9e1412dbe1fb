package tokenizer

import (
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Helper function to collect all tokens from a tokenizer, whitespace included
func collectTokens(tok tokenizer.Tokenizer) []tokenizer.Token {
	var tokens []tokenizer.Token
	for {
		token, ok := tok.NextToken()
		if !ok {
			break
		}
		tokens = append(tokens, *token)
	}
	return tokens
}

func tokenize(input string) []tokenizer.Token {
	tok := NewTokenizer()
	tok.Initialize(input)
	return collectTokens(tok)
}

// TestTokenizer_QuotedString tests double-quoted string matching
func TestTokenizer_QuotedString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		kind     string
		expected string
	}{
		{"simple string", `"hello world"`, TokenString, `"hello world"`},
		{"empty string", `""`, TokenString, `""`},
		{"escaped quote", `"say \"hi\""`, TokenString, `"say \"hi\""`},
		{"escaped backslash before quote", `"a\\"`, TokenString, `"a\\"`},
		{"hex escape", `"\x41"`, TokenString, `"\x41"`},
		{"raw newline", "\"a\nb\"", TokenString, "\"a\nb\""},
		{"unterminated", `"abc`, TokenUnterminated, `"abc`},
		{"unterminated after escape", `"abc\"`, TokenUnterminated, `"abc\"`},
		{"trailing backslash", `"abc\`, TokenUnterminated, `"abc\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := NewTokenizer()
			tok.Initialize(tt.input)

			token, ok := tok.NextToken()
			if !ok {
				t.Fatal("Expected token")
			}
			if token.Kind() != tt.kind {
				t.Errorf("Expected %s, got %s", tt.kind, token.Kind())
			}
			if token.ValueString() != tt.expected {
				t.Errorf("Expected value %q, got %q", tt.expected, token.ValueString())
			}
		})
	}
}

// TestTokenizer_Symbol tests bare symbol matching
func TestTokenizer_Symbol(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple word", `hello`, `hello`},
		{"digits", `1023`, `1023`},
		{"punctuation", `a-1*b+c:d=e/f_g.h`, `a-1*b+c:d=e/f_g.h`},
		{"stops at space", `abc def`, `abc`},
		{"stops at paren", `abc)`, `abc`},
		{"stops at invalid", `ab$c`, `ab`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tokenize(tt.input)
			if len(tokens) == 0 {
				t.Fatal("Expected token")
			}
			if tokens[0].Kind() != TokenSymbol {
				t.Errorf("Expected TokenSymbol, got %s", tokens[0].Kind())
			}
			if tokens[0].ValueString() != tt.expected {
				t.Errorf("Expected value %q, got %q", tt.expected, tokens[0].ValueString())
			}
		})
	}
}

// TestTokenizer_Sequence tests the full token stream of a list
func TestTokenizer_Sequence(t *testing.T) {
	input := "(define \"x\"\n  (y $))"
	expected := []struct {
		kind  string
		value string
	}{
		{TokenLParen, "("},
		{TokenSymbol, "define"},
		{TokenWhitespace, " "},
		{TokenString, `"x"`},
		{TokenWhitespace, "\n  "},
		{TokenLParen, "("},
		{TokenSymbol, "y"},
		{TokenWhitespace, " "},
		{TokenInvalid, "$"},
		{TokenRParen, ")"},
		{TokenRParen, ")"},
	}

	tokens := tokenize(input)
	if len(tokens) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d", len(expected), len(tokens))
	}
	for i, want := range expected {
		if tokens[i].Kind() != want.kind || tokens[i].ValueString() != want.value {
			t.Errorf("token %d = %s %q, want %s %q",
				i, tokens[i].Kind(), tokens[i].ValueString(), want.kind, want.value)
		}
	}
}

// TestTokenizer_CoversInput checks that concatenated token values rebuild the input
func TestTokenizer_CoversInput(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"(a b (c))",
		"(a\t\"b\\\"c\"\r\n  #x ; [y])",
		"\"never closed (a b",
		"café (über)",
	}

	for _, input := range inputs {
		var sb strings.Builder
		for _, tok := range tokenize(input) {
			sb.WriteString(tok.ValueString())
		}
		if sb.String() != input {
			t.Errorf("tokens rebuild %q, want %q", sb.String(), input)
		}
	}
}
