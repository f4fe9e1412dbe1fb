package fastparser

// Node is a parsed S-expression: either a *List or an *Atom.
type Node interface {
	// Pos returns the byte offset of the first source byte of the node.
	Pos() int
	node()
}

// List is a parenthesized sequence. Children are in source order and owned
// exclusively by the list.
type List struct {
	Children []Node
	Offset   int

	released bool
}

// Atom is a symbol or a quoted string. Text is fully decoded; Quoted records
// whether the atom was written between double quotes.
type Atom struct {
	Text   string
	Quoted bool
	Offset int

	// raw content span in the parser's buffer, decoded by touchUp
	start, end int
	escaped    bool
	released   bool
}

func (l *List) Pos() int { return l.Offset }
func (a *Atom) Pos() int { return a.Offset }

func (*List) node() {}
func (*Atom) node() {}

// releaseHook, when set, observes every node released by Free.
var releaseHook func(Node)

// Nodes handed to callers are owned, never recycled. A stale handle freed a
// second time can only touch its own detached node.
func newList(offset int) *List {
	return &List{Children: make([]Node, 0, 8), Offset: offset}
}

func newAtom(offset int) *Atom {
	return &Atom{Offset: offset}
}

// NewList returns a list holding children, for building trees by hand.
func NewList(children ...Node) *List {
	l := newList(0)
	l.Children = append(l.Children, children...)
	return l
}

// NewAtom returns an atom with the given decoded text.
func NewAtom(text string, quoted bool) *Atom {
	a := newAtom(0)
	a.Text = text
	a.Quoted = quoted
	return a
}

// Free releases n and all of its descendants, dropping every child
// reference so the tree can be collected. Children are released before
// their list. Free(nil) and repeated calls on the same node are no-ops. A
// freed node reads as an empty list or an empty bare atom.
func Free(n Node) {
	switch n := n.(type) {
	case *List:
		if n == nil || n.released {
			return
		}
		for i, c := range n.Children {
			Free(c)
			n.Children[i] = nil
		}
		n.Children = nil
		n.Offset = 0
		n.released = true
		if releaseHook != nil {
			releaseHook(n)
		}
	case *Atom:
		if n == nil || n.released {
			return
		}
		*n = Atom{released: true}
		if releaseHook != nil {
			releaseHook(n)
		}
	}
}
