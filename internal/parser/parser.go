// Package parser implements LL(1) recursive descent parsing for S-expressions
// over Shape's tokenizer framework, producing Shape's unified AST.
//
// Lists become *ast.ObjectNode values with numeric keys "0", "1", "2", ...
// and atoms become *ast.LiteralNode values holding the decoded string. Errors
// are *fastparser.ParseError values with the same kinds and locations the
// byte-level parser reports.
package parser

import (
	"strconv"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-sexp/internal/fastparser"
	"github.com/shapestone/shape-sexp/internal/tokenizer"
)

// cursor is a source position. Offsets count bytes; columns restart at 1
// after each newline.
type cursor struct {
	offset int
	line   int
	column int
}

func (c cursor) advance(text string) cursor {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			c.line++
			c.column = 1
		} else {
			c.column++
		}
		c.offset++
	}
	return c
}

// Parser implements LL(1) recursive descent parsing for S-expressions.
// It maintains a single token lookahead.
type Parser struct {
	tokenizer shapetokenizer.Tokenizer
	current   *shapetokenizer.Token
	hasToken  bool
	pos       cursor // position of current
	depth     int
	maxDepth  int
}

// NewParser creates a new parser for the given input string.
// For parsing from io.Reader, use NewParserFromStream instead.
func NewParser(input string) *Parser {
	return newParserWithStream(shapetokenizer.NewStream(input))
}

// NewParserFromStream creates a new parser using a pre-configured stream.
// This allows parsing from io.Reader using tokenizer.NewStreamFromReader.
func NewParserFromStream(stream shapetokenizer.Stream) *Parser {
	return newParserWithStream(stream)
}

func newParserWithStream(stream shapetokenizer.Stream) *Parser {
	p := &Parser{
		tokenizer: tokenizer.NewTokenizerWithStream(stream),
		pos:       cursor{offset: 0, line: 1, column: 1},
		maxDepth:  fastparser.DefaultMaxDepth,
	}

	token, ok := p.tokenizer.NextToken()
	if ok {
		p.current = token
		p.hasToken = true
	}

	return p
}

// SetMaxDepth sets the maximum list nesting depth. Values below 1 are ignored.
func (p *Parser) SetMaxDepth(n int) {
	if n > 0 {
		p.maxDepth = n
	}
}

// Parse parses exactly one S-expression and returns its AST.
//
// Grammar:
//
//	Document = { ws } SExpr { ws } ;
//
// On error no AST is returned; nodes built before the failure are released.
func (p *Parser) Parse() (ast.SchemaNode, error) {
	node, err := p.parseNode()
	if err != nil {
		return nil, err
	}

	if p.peek() != nil {
		ReleaseTree(node)
		return nil, p.errorAt(fastparser.UnexpectedTrailing, p.pos)
	}

	return node, nil
}

// parseNode parses any S-expression.
//
// Grammar:
//
//	SExpr = List | String | Symbol ;
func (p *Parser) parseNode() (ast.SchemaNode, error) {
	token := p.peek()
	if token == nil {
		return nil, p.errorAt(fastparser.EmptySymbol, p.pos)
	}

	switch token.Kind() {
	case tokenizer.TokenLParen:
		return p.parseList()

	case tokenizer.TokenString, tokenizer.TokenUnterminated:
		return p.parseString()

	case tokenizer.TokenSymbol:
		return p.parseSymbol()

	case tokenizer.TokenRParen:
		// a close paren where a value starts is a symbol with no characters
		return nil, p.errorAt(fastparser.EmptySymbol, p.pos)

	default:
		return nil, p.errorAt(fastparser.BadSymbol, p.pos)
	}
}

// parseList parses a parenthesized list.
//
// Grammar:
//
//	List = "(" { ws | SExpr } ")" ;
//
// Returns *ast.ObjectNode with numeric keys "0", "1", "2", ...
func (p *Parser) parseList() (ast.SchemaNode, error) {
	start := p.pos
	if p.depth >= p.maxDepth {
		return nil, p.errorAt(fastparser.TooDeep, start)
	}
	p.depth++
	defer func() { p.depth-- }()

	p.advance() // consume '('

	properties := make(map[string]ast.SchemaNode, 8)
	for {
		token := p.peek()
		if token == nil {
			releaseProperties(properties)
			return nil, p.errorAt(fastparser.UnterminatedList, p.pos)
		}

		if token.Kind() == tokenizer.TokenRParen {
			p.advance()
			return ast.NewObjectNode(properties, p.position(start)), nil
		}

		child, err := p.parseNode()
		if err != nil {
			releaseProperties(properties)
			return nil, err
		}
		properties[strconv.Itoa(len(properties))] = child
	}
}

// parseString parses a quoted atom, validating and decoding its escapes.
//
// Returns *ast.LiteralNode with the decoded string value.
func (p *Parser) parseString() (ast.SchemaNode, error) {
	start := p.pos
	raw := p.current.ValueString()
	terminated := p.current.Kind() == tokenizer.TokenString

	content := raw[1:]
	if terminated {
		content = raw[1 : len(raw)-1]
	}

	if i := fastparser.CheckEscapes([]byte(content)); i >= 0 {
		return nil, p.errorAt(fastparser.BadEscape, start.advance(raw[:1+i]))
	}

	p.advance()
	if !terminated {
		return nil, p.errorAt(fastparser.UnterminatedString, p.pos)
	}

	text := fastparser.Unescape([]byte(content))
	return ast.NewLiteralNode(string(text), p.position(start)), nil
}

// parseSymbol parses a bare atom. The token after it must be whitespace, a
// close paren or end of input.
//
// Returns *ast.LiteralNode with the symbol text.
func (p *Parser) parseSymbol() (ast.SchemaNode, error) {
	start := p.pos
	text := p.current.ValueString()
	p.advance()

	if p.hasToken {
		switch p.current.Kind() {
		case tokenizer.TokenWhitespace, tokenizer.TokenRParen:
		default:
			return nil, p.errorAt(fastparser.BadSymbol, p.pos)
		}
	}

	return ast.NewLiteralNode(text, p.position(start)), nil
}

// Helper methods

// peek returns the current token without advancing, skipping whitespace.
func (p *Parser) peek() *shapetokenizer.Token {
	for p.hasToken && p.current.Kind() == tokenizer.TokenWhitespace {
		p.advance()
	}
	if !p.hasToken {
		return nil
	}
	return p.current
}

// advance moves to the next token, moving the cursor past the current one.
func (p *Parser) advance() {
	if p.hasToken {
		p.pos = p.pos.advance(p.current.ValueString())
	}

	token, ok := p.tokenizer.NextToken()
	if ok {
		p.current = token
		p.hasToken = true
	} else {
		p.current = nil
		p.hasToken = false
	}
}

// position converts a cursor into an AST position.
func (p *Parser) position(c cursor) ast.Position {
	return ast.NewPosition(c.offset, c.line, c.column)
}

func (p *Parser) errorAt(kind fastparser.ErrorKind, c cursor) *fastparser.ParseError {
	return &fastparser.ParseError{
		Kind:   kind,
		Offset: c.offset,
		Line:   c.line,
		Column: c.column,
	}
}

func releaseProperties(properties map[string]ast.SchemaNode) {
	for _, child := range properties {
		ReleaseTree(child)
	}
}

// ReleaseTree recursively releases all nodes in an AST tree back to their pools.
func ReleaseTree(node ast.SchemaNode) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *ast.LiteralNode:
		ast.ReleaseLiteralNode(n)

	case *ast.ObjectNode:
		// Release children first
		for _, child := range n.Properties() {
			ReleaseTree(child)
		}
		ast.ReleaseObjectNode(n)
	}
}
