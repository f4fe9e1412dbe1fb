// Package tokenizer provides S-expression tokenization using Shape's tokenizer framework.
package tokenizer

// Token type constants for the S-expression format.
const (
	// Structural tokens
	TokenLParen = "LParen" // (
	TokenRParen = "RParen" // )

	// Atom tokens
	TokenString       = "String"       // "..." including both quotes
	TokenUnterminated = "Unterminated" // "... running to end of input
	TokenSymbol       = "Symbol"       // run of symbol characters

	// Special tokens
	TokenWhitespace = "Whitespace" // space, \t, \n, \v, \f, \r
	TokenInvalid    = "Invalid"    // a single character no other matcher accepts
)
