// Package sexp provides S-expression parsing into a tree of lists and atoms.
//
// The accepted syntax is deliberately small:
//
//	sexpr   = { ws } ( list | qstring | symbol ) ;
//	list    = "(" { ws | sexpr } ")" ;
//	qstring = '"' { qchar } '"' ;
//	symbol  = symbolchar { symbolchar } ;
//
// Symbol characters are ASCII letters, digits and "-./_:*+=". Quoted atoms
// accept the escapes \b \t \v \n \f \r \" \' \\, three-digit octal \ooo,
// two-digit hex \xhh and a backslash-newline line continuation. An input
// holds exactly one top-level form.
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use by multiple goroutines.
// Each call creates its own parser over a private copy of the input.
//
//	// Safe: Concurrent parsing
//	go func() { sexp.Parse(input1) }()
//	go func() { sexp.Parse(input2) }()
//
// # Parsing APIs
//
//   - Parse(string) / ParseBytes([]byte) - parse a resident buffer into a Node tree
//   - ParseReader(io.Reader) - read everything, then parse
//   - ParseAST(string) / ParseASTReader(io.Reader) - parse into Shape's unified AST
//   - Validate(string) - check syntax without keeping a tree
//
// # Example usage with Parse:
//
//	node, err := sexp.Parse(`(server (port 8080) (name "api"))`)
//	if err != nil {
//	    // err is a *sexp.ParseError, e.g. "bad symbol at L1.14"
//	}
//	defer sexp.Free(node)
//	for _, child := range sexp.Children(node) {
//	    // ...
//	}
package sexp

import (
	"fmt"
	"io"

	"github.com/shapestone/shape-sexp/internal/fastparser"
)

// DefaultMaxDepth is the default limit on list nesting.
const DefaultMaxDepth = fastparser.DefaultMaxDepth

// Option configures parsing.
type Option = fastparser.Option

// WithMaxDepth limits list nesting; deeper input fails with TooDeep.
func WithMaxDepth(n int) Option {
	return fastparser.WithMaxDepth(n)
}

// Parse parses a single S-expression from a string.
//
// Returns a *List or an *Atom. On failure the error is a *ParseError and no
// tree is returned.
//
// Example:
//
//	node, err := sexp.Parse("(a b (c))")
//	// node is a *sexp.List with children a, b and (c)
func Parse(input string) (Node, error) {
	return ParseWithOptions([]byte(input))
}

// ParseBytes parses a single S-expression from a byte slice. The slice is
// not modified and may be reused once ParseBytes returns.
func ParseBytes(data []byte) (Node, error) {
	return ParseWithOptions(data)
}

// ParseWithOptions parses data with the given options.
func ParseWithOptions(data []byte, opts ...Option) (Node, error) {
	p := fastparser.NewParser(data, opts...)
	return p.Parse()
}

// ParseReader reads r to the end and parses the result as one S-expression.
// Read errors are returned wrapped; parse errors are returned as *ParseError.
func ParseReader(r io.Reader, opts ...Option) (Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return ParseWithOptions(data, opts...)
}

// Validate checks if a string is a syntactically valid S-expression.
//
// Returns nil if the input is valid, or a *ParseError describing the first
// problem with its line and column.
//
// Example:
//
//	if err := sexp.Validate("(a b"); err != nil {
//	    fmt.Println(err) // unterminated list at L1.5
//	}
func Validate(input string) error {
	n, err := Parse(input)
	if err != nil {
		return err
	}
	Free(n)
	return nil
}

// Free releases a tree returned by Parse. Children are released before
// their list. The tree must not be used afterwards. Free(nil) is a no-op.
func Free(n Node) {
	fastparser.Free(n)
}
