package sexp

import "github.com/shapestone/shape-sexp/internal/fastparser"

// ParseError reports malformed input: its kind, the byte offset of the
// offending byte, and the 1-based line and column of that offset. Its
// message has the form "<message> at L<line>.<col>".
type ParseError = fastparser.ParseError

// ErrorKind classifies a ParseError.
type ErrorKind = fastparser.ErrorKind

// Error kinds.
const (
	OutOfMemory        = fastparser.OutOfMemory
	BadEscape          = fastparser.BadEscape
	UnterminatedString = fastparser.UnterminatedString
	BadSymbol          = fastparser.BadSymbol
	EmptySymbol        = fastparser.EmptySymbol
	UnexpectedTrailing = fastparser.UnexpectedTrailing
	UnterminatedList   = fastparser.UnterminatedList
	TooDeep            = fastparser.TooDeep
)

// Sentinel errors matched by errors.Is against a *ParseError of that kind.
var (
	ErrOutOfMemory        = fastparser.ErrOutOfMemory
	ErrBadEscape          = fastparser.ErrBadEscape
	ErrUnterminatedString = fastparser.ErrUnterminatedString
	ErrBadSymbol          = fastparser.ErrBadSymbol
	ErrEmptySymbol        = fastparser.ErrEmptySymbol
	ErrUnexpectedTrailing = fastparser.ErrUnexpectedTrailing
	ErrUnterminatedList   = fastparser.ErrUnterminatedList
	ErrTooDeep            = fastparser.ErrTooDeep
)

// Locate maps a byte offset in input to a 1-based line and column.
func Locate(input []byte, offset int) (line, col int) {
	return fastparser.Locate(input, offset)
}
