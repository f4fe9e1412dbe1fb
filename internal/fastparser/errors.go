package fastparser

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// OutOfMemory is kept for completeness of the taxonomy. The Go runtime
	// aborts on allocation failure, so the parser never reports it.
	OutOfMemory ErrorKind = iota + 1
	BadEscape
	UnterminatedString
	BadSymbol
	EmptySymbol
	UnexpectedTrailing
	UnterminatedList
	TooDeep
)

// Sentinel errors, one per kind. A *ParseError unwraps to the sentinel of its
// kind so callers can use errors.Is.
var (
	ErrOutOfMemory        = errors.New("out of memory")
	ErrBadEscape          = errors.New("bad escape")
	ErrUnterminatedString = errors.New("unterminated string")
	ErrBadSymbol          = errors.New("bad symbol")
	ErrEmptySymbol        = errors.New("empty symbol")
	ErrUnexpectedTrailing = errors.New("unexpected char")
	ErrUnterminatedList   = errors.New("unterminated list")
	ErrTooDeep            = errors.New("nesting too deep")
)

var sentinels = map[ErrorKind]error{
	OutOfMemory:        ErrOutOfMemory,
	BadEscape:          ErrBadEscape,
	UnterminatedString: ErrUnterminatedString,
	BadSymbol:          ErrBadSymbol,
	EmptySymbol:        ErrEmptySymbol,
	UnexpectedTrailing: ErrUnexpectedTrailing,
	UnterminatedList:   ErrUnterminatedList,
	TooDeep:            ErrTooDeep,
}

// Err returns the sentinel error for k, or nil for an unknown kind.
func (k ErrorKind) Err() error {
	return sentinels[k]
}

func (k ErrorKind) String() string {
	if err := k.Err(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ParseError reports a malformed input. Offset is the byte offset of the
// offending byte in the original input; Line and Column are 1-based.
type ParseError struct {
	Kind   ErrorKind
	Offset int
	Line   int
	Column int
}

// Error renders "<message> at L<line>.<col>".
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at L%d.%d", e.Kind, e.Line, e.Column)
}

func (e *ParseError) Unwrap() error {
	return e.Kind.Err()
}

// NewParseError builds a ParseError for offset, computing its location in buf.
func NewParseError(kind ErrorKind, buf []byte, offset int) *ParseError {
	line, col := Locate(buf, offset)
	return &ParseError{
		Kind:   kind,
		Offset: offset,
		Line:   line,
		Column: col,
	}
}

// Locate maps a byte offset in buf to a 1-based line and column. The line is
// one plus the number of '\n' bytes strictly before offset; the column restarts
// at 1 right after each newline. Offsets outside buf are clamped.
func Locate(buf []byte, offset int) (line, col int) {
	if offset > len(buf) {
		offset = len(buf)
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		if buf[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
