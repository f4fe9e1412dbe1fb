package sexp

import "github.com/shapestone/shape-sexp/internal/fastparser"

// Node is a parsed S-expression: a *List or an *Atom.
type Node = fastparser.Node

// List is an ordered sequence of child nodes in source order.
type List = fastparser.List

// Atom is a symbol or a quoted string with its escapes decoded.
type Atom = fastparser.Atom

// NewList builds a list from children.
func NewList(children ...Node) *List {
	return fastparser.NewList(children...)
}

// NewAtom builds an atom. A bare (unquoted) atom should only hold symbol
// characters if it is meant to be printed and parsed again.
func NewAtom(text string, quoted bool) *Atom {
	return fastparser.NewAtom(text, quoted)
}

// IsList reports whether n is a list.
func IsList(n Node) bool {
	_, ok := n.(*List)
	return ok
}

// IsAtom reports whether n is an atom.
func IsAtom(n Node) bool {
	_, ok := n.(*Atom)
	return ok
}

// Children returns the children of a list in source order, or nil for an atom.
func Children(n Node) []Node {
	if l, ok := n.(*List); ok {
		return l.Children
	}
	return nil
}

// WasQuoted reports whether n is an atom written between double quotes.
func WasQuoted(n Node) bool {
	if a, ok := n.(*Atom); ok {
		return a.Quoted
	}
	return false
}

// Text returns the decoded text of an atom, or "" for a list.
func Text(n Node) string {
	if a, ok := n.(*Atom); ok {
		return a.Text
	}
	return ""
}

// IsSymbol reports whether s is a valid bare symbol: non-empty and made only
// of ASCII letters, digits and "-./_:*+=".
func IsSymbol(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !fastparser.IsSymbolChar(s[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether a and b have the same shape, text and quoting.
// Source offsets are ignored.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *List:
		y, ok := b.(*List)
		if !ok || len(x.Children) != len(y.Children) {
			return false
		}
		for i := range x.Children {
			if !Equal(x.Children[i], y.Children[i]) {
				return false
			}
		}
		return true
	case *Atom:
		y, ok := b.(*Atom)
		return ok && x.Text == y.Text && x.Quoted == y.Quoted
	}
	return a == nil && b == nil
}
