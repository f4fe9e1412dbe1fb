package tokenizer

import (
	"github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-sexp/internal/fastparser"
)

// NewTokenizer creates a tokenizer for S-expressions.
//
// Every input character is covered by exactly one token, whitespace
// included, so a consumer can track byte offsets by summing token lengths.
// Escape sequences are not validated here; the parser checks them against
// the token text so that errors point at the offending backslash.
//
// Ordering:
// 1. Whitespace
// 2. Parentheses
// 3. Quoted strings (terminated or not)
// 4. Symbols
// 5. Invalid (last, matches any single character)
func NewTokenizer() tokenizer.Tokenizer {
	return tokenizer.NewTokenizerWithoutWhitespace(
		WhitespaceMatcher(),
		tokenizer.CharMatcherFunc(TokenLParen, '('),
		tokenizer.CharMatcherFunc(TokenRParen, ')'),
		QuotedStringMatcher(),
		SymbolMatcher(),
		InvalidMatcher(),
	)
}

// NewTokenizerWithStream creates an S-expression tokenizer over a pre-configured stream.
// This is used internally to support streaming from io.Reader.
func NewTokenizerWithStream(stream tokenizer.Stream) tokenizer.Tokenizer {
	tok := NewTokenizer()
	tok.InitializeFromStream(stream)
	return tok
}

// QuotedStringMatcher creates a matcher for double-quoted strings.
//
// Grammar:
//
//	String = '"' { Character } '"' ;
//	Character = [^"\\] | "\\" AnyChar ;
//
// A string that reaches end of input without its closing quote is returned
// as a TokenUnterminated token holding the rest of the input.
func QuotedStringMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if byteStream, ok := stream.(tokenizer.ByteStream); ok {
			return quotedStringMatcherByte(byteStream)
		}
		return quotedStringMatcherRune(stream)
	}
}

func quotedStringMatcherByte(stream tokenizer.ByteStream) *tokenizer.Token {
	b, ok := stream.PeekByte()
	if !ok || b != '"' {
		return nil
	}

	startPos := stream.BytePosition()
	stream.NextByte() // consume opening quote

	for {
		offset := tokenizer.FindEscapeOrQuote(stream.RemainingBytes())
		if offset == -1 {
			// no closing quote: swallow the rest of the input
			for {
				if _, ok := stream.NextByte(); !ok {
					break
				}
			}
			value := stream.SliceFrom(startPos)
			return tokenizer.NewToken(TokenUnterminated, []rune(string(value)))
		}

		for i := 0; i < offset; i++ {
			stream.NextByte()
		}

		b, ok := stream.NextByte()
		if !ok {
			value := stream.SliceFrom(startPos)
			return tokenizer.NewToken(TokenUnterminated, []rune(string(value)))
		}

		if b == '"' {
			value := stream.SliceFrom(startPos)
			return tokenizer.NewToken(TokenString, []rune(string(value)))
		}

		// backslash: the escaped byte can never close the string
		if _, ok := stream.NextByte(); !ok {
			value := stream.SliceFrom(startPos)
			return tokenizer.NewToken(TokenUnterminated, []rune(string(value)))
		}
	}
}

func quotedStringMatcherRune(stream tokenizer.Stream) *tokenizer.Token {
	r, ok := stream.PeekChar()
	if !ok || r != '"' {
		return nil
	}
	stream.NextChar()
	value := []rune{r}

	for {
		r, ok := stream.NextChar()
		if !ok {
			return tokenizer.NewToken(TokenUnterminated, value)
		}
		value = append(value, r)

		if r == '"' {
			return tokenizer.NewToken(TokenString, value)
		}

		if r == '\\' {
			r, ok := stream.NextChar()
			if !ok {
				return tokenizer.NewToken(TokenUnterminated, value)
			}
			value = append(value, r)
		}
	}
}

// SymbolMatcher creates a matcher for bare symbols: one or more ASCII
// letters, digits or "-./_:*+=".
func SymbolMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if byteStream, ok := stream.(tokenizer.ByteStream); ok {
			startPos := byteStream.BytePosition()
			for {
				b, ok := byteStream.PeekByte()
				if !ok || !fastparser.IsSymbolChar(b) {
					break
				}
				byteStream.NextByte()
			}
			if byteStream.BytePosition() == startPos {
				return nil
			}
			value := byteStream.SliceFrom(startPos)
			return tokenizer.NewToken(TokenSymbol, []rune(string(value)))
		}

		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || r > 0x7f || !fastparser.IsSymbolChar(byte(r)) {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(TokenSymbol, value)
	}
}

// WhitespaceMatcher creates a matcher for runs of whitespace, newlines
// included. Whitespace tokens are emitted, not dropped, so that positions
// can be reconstructed from the token stream.
func WhitespaceMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		var value []rune
		for {
			r, ok := stream.PeekChar()
			if !ok || r > 0x7f || !fastparser.IsSpace(byte(r)) {
				break
			}
			stream.NextChar()
			value = append(value, r)
		}
		if len(value) == 0 {
			return nil
		}
		return tokenizer.NewToken(TokenWhitespace, value)
	}
}

// InvalidMatcher matches any single character. It must come last so that it
// only fires when nothing else applies.
func InvalidMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.NextChar()
		if !ok {
			return nil
		}
		return tokenizer.NewToken(TokenInvalid, []rune{r})
	}
}
