package sexp

import (
	"io"
	"sync"
)

// Printer renders trees as text. The zero value prints the indented form
// with no indentation; use DefaultPrinter for two-space indentation.
//
// Indented form puts every atom and every paren on its own line:
//
//	(
//	  define
//	  "x\x0a"
//	  (
//	    y
//	  )
//	)
//
// Compact form prints on one line: (define "x\x0a" (y))
//
// Quoted atoms are written between double quotes with '\\' and '"' escaped
// and every byte outside printable ASCII written as \xhh. Bare atoms are
// written as is. Output of either form parses back into an equal tree.
type Printer struct {
	Indent  string
	Compact bool
}

// DefaultPrinter prints the indented form with two spaces per level.
var DefaultPrinter = Printer{Indent: "  "}

// printBufPool pools []byte slices for Fprint.
var printBufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 1024)
		return &b
	},
}

// Fprint writes n to w using DefaultPrinter.
func Fprint(w io.Writer, n Node) error {
	return DefaultPrinter.Fprint(w, n)
}

// Sprint returns n rendered by DefaultPrinter.
func Sprint(n Node) string {
	return string(DefaultPrinter.Append(nil, n))
}

// String returns n in compact form.
func String(n Node) string {
	return string(Printer{Compact: true}.Append(nil, n))
}

// maxPooledPrintBuf caps the capacity of buffers returned to printBufPool.
const maxPooledPrintBuf = 64 << 10

// putPrintBuf returns bp to printBufPool unless it grew past
// maxPooledPrintBuf, and reports whether it was kept.
func putPrintBuf(bp *[]byte) bool {
	if cap(*bp) > maxPooledPrintBuf {
		return false
	}
	*bp = (*bp)[:0]
	printBufPool.Put(bp)
	return true
}

// Fprint writes n to w.
func (pr Printer) Fprint(w io.Writer, n Node) error {
	bp := printBufPool.Get().(*[]byte)
	buf := pr.Append((*bp)[:0], n)
	_, err := w.Write(buf)
	*bp = buf
	putPrintBuf(bp)
	return err
}

// Append appends the rendering of n to buf and returns the extended buffer.
func (pr Printer) Append(buf []byte, n Node) []byte {
	if n == nil {
		return buf
	}
	if pr.Compact {
		return appendCompact(buf, n)
	}
	return pr.appendIndented(buf, n, 0)
}

func (pr Printer) appendIndented(buf []byte, n Node, level int) []byte {
	switch n := n.(type) {
	case *List:
		buf = pr.appendIndent(buf, level)
		buf = append(buf, '(', '\n')
		for _, c := range n.Children {
			buf = pr.appendIndented(buf, c, level+1)
		}
		buf = pr.appendIndent(buf, level)
		buf = append(buf, ')', '\n')
	case *Atom:
		buf = pr.appendIndent(buf, level)
		buf = appendAtom(buf, n)
		buf = append(buf, '\n')
	}
	return buf
}

func (pr Printer) appendIndent(buf []byte, level int) []byte {
	for i := 0; i < level; i++ {
		buf = append(buf, pr.Indent...)
	}
	return buf
}

func appendCompact(buf []byte, n Node) []byte {
	switch n := n.(type) {
	case *List:
		buf = append(buf, '(')
		for i, c := range n.Children {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = appendCompact(buf, c)
		}
		buf = append(buf, ')')
	case *Atom:
		buf = appendAtom(buf, n)
	}
	return buf
}

func appendAtom(buf []byte, a *Atom) []byte {
	if !a.Quoted {
		return append(buf, a.Text...)
	}
	return appendQuoted(buf, a.Text)
}

const hexDigits = "0123456789abcdef"

// appendQuoted appends s as a quoted atom.
func appendQuoted(buf []byte, s string) []byte {
	buf = append(buf, '"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' || c == '"':
			buf = append(buf, '\\', c)
		case c < 0x20 || c >= 0x7f:
			buf = append(buf, '\\', 'x', hexDigits[c>>4], hexDigits[c&0xf])
		default:
			buf = append(buf, c)
		}
	}
	return append(buf, '"')
}
