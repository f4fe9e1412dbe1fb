package fastparser

// Class is the lexical class of a single input byte.
type Class int

const (
	ClassOther Class = iota
	ClassOpen
	ClassClose
	ClassQuote
	ClassSpace
	ClassSymbol
)

var classTable [256]Class

func init() {
	for c := 'a'; c <= 'z'; c++ {
		classTable[c] = ClassSymbol
	}
	for c := 'A'; c <= 'Z'; c++ {
		classTable[c] = ClassSymbol
	}
	for c := '0'; c <= '9'; c++ {
		classTable[c] = ClassSymbol
	}
	for _, c := range []byte("-./_:*+=") {
		classTable[c] = ClassSymbol
	}
	for _, c := range []byte(" \t\n\v\f\r") {
		classTable[c] = ClassSpace
	}
	classTable['('] = ClassOpen
	classTable[')'] = ClassClose
	classTable['"'] = ClassQuote
}

// Classify returns the lexical class of b.
func Classify(b byte) Class {
	return classTable[b]
}

// IsSymbolChar reports whether b may appear in a bare symbol: ASCII letters,
// digits and one of "-./_:*+=".
func IsSymbolChar(b byte) bool {
	return classTable[b] == ClassSymbol
}

// IsSpace reports whether b is whitespace.
func IsSpace(b byte) bool {
	return classTable[b] == ClassSpace
}

// skipWhitespace advances past contiguous whitespace and returns the number
// of bytes skipped.
func (p *Parser) skipWhitespace() int {
	start := p.pos
	for p.pos < p.length && IsSpace(p.data[p.pos]) {
		p.pos++
	}
	return p.pos - start
}

// peek returns the byte at the cursor without consuming it.
func (p *Parser) peek() (byte, bool) {
	if p.pos >= p.length {
		return 0, false
	}
	return p.data[p.pos], true
}
