// Package fastparser implements the S-expression reader over a resident byte
// buffer.
//
// It scans bytes directly, with no tokenizer and no intermediate AST, and
// builds the List/Atom tree bottom-up. Parsing happens in two passes: a
// recursive-descent pass that validates grammar and escape sequences and
// records raw atom spans, then a touch-up pass that decodes quoted atoms.
//
// Grammar:
//
//	sexpr   = { ws } ( list | qstring | symbol ) ;
//	list    = "(" { ws | sexpr } ")" ;
//	qstring = '"' { qchar } '"' ;
//	symbol  = symbolchar { symbolchar } ;
package fastparser

// DefaultMaxDepth bounds list nesting.
const DefaultMaxDepth = 10000

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the maximum list nesting depth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// Parser reads exactly one S-expression from a buffer.
type Parser struct {
	data     []byte
	pos      int
	length   int
	depth    int
	maxDepth int
}

// NewParser creates a parser over a private copy of data. The caller's slice
// is never modified.
func NewParser(data []byte, opts ...Option) *Parser {
	buf := make([]byte, len(data))
	copy(buf, data)
	p := &Parser{
		data:     buf,
		pos:      0,
		length:   len(buf),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses the single top-level form and returns its tree. On failure
// the returned error is a *ParseError and no tree is returned.
func (p *Parser) Parse() (Node, error) {
	p.skipWhitespace()

	n, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()
	if p.pos < p.length {
		Free(n)
		return nil, p.errorAt(UnexpectedTrailing, p.pos)
	}

	p.touchUp(n)
	return n, nil
}

// parseValue dispatches on the byte at the cursor.
func (p *Parser) parseValue() (Node, error) {
	c, _ := p.peek()
	switch c {
	case '(':
		return p.parseList()
	case '"':
		return p.parseString()
	default:
		return p.parseSymbol()
	}
}

// parseList parses a list. The cursor is on the opening paren.
func (p *Parser) parseList() (Node, error) {
	open := p.pos
	if p.depth >= p.maxDepth {
		return nil, p.errorAt(TooDeep, open)
	}
	p.depth++
	defer func() { p.depth-- }()

	p.pos++ // skip '('
	list := newList(open)

	for {
		p.skipWhitespace()
		if p.pos >= p.length {
			Free(list)
			return nil, p.errorAt(UnterminatedList, p.length)
		}
		if p.data[p.pos] == ')' {
			p.pos++
			return list, nil
		}

		child, err := p.parseValue()
		if err != nil {
			Free(list)
			return nil, err
		}
		list.Children = append(list.Children, child)
	}
}

// parseString validates a quoted atom and records its raw content span.
// Decoding is deferred to touchUp.
func (p *Parser) parseString() (Node, error) {
	start := p.pos
	p.pos++ // skip opening quote

	escaped := false
	for p.pos < p.length {
		switch p.data[p.pos] {
		case '"':
			a := newAtom(start)
			a.Quoted = true
			a.start = start + 1
			a.end = p.pos
			a.escaped = escaped
			p.pos++
			return a, nil
		case '\\':
			n := escapeLen(p.data[p.pos:p.length])
			if n == 0 {
				return nil, p.errorAt(BadEscape, p.pos)
			}
			escaped = true
			p.pos += n
		default:
			p.pos++
		}
	}

	return nil, p.errorAt(UnterminatedString, p.length)
}

// parseSymbol parses a bare atom. It ends at whitespace, ')' or end of input;
// any other byte outside the symbol alphabet is an error.
func (p *Parser) parseSymbol() (Node, error) {
	start := p.pos

scan:
	for p.pos < p.length {
		switch Classify(p.data[p.pos]) {
		case ClassSymbol:
			p.pos++
		case ClassSpace, ClassClose:
			break scan
		default:
			return nil, p.errorAt(BadSymbol, p.pos)
		}
	}

	if p.pos == start {
		return nil, p.errorAt(EmptySymbol, start)
	}

	a := newAtom(start)
	a.start = start
	a.end = p.pos
	return a, nil
}

// touchUp fills in the text of every atom, decoding escapes in place in the
// parser's private buffer.
func (p *Parser) touchUp(n Node) {
	switch n := n.(type) {
	case *List:
		for _, c := range n.Children {
			p.touchUp(c)
		}
	case *Atom:
		raw := p.data[n.start:n.end]
		if n.escaped {
			raw = Unescape(raw)
		}
		n.Text = string(raw)
	}
}

func (p *Parser) errorAt(kind ErrorKind, offset int) *ParseError {
	return NewParseError(kind, p.data, offset)
}
