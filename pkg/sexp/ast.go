package sexp

import (
	"io"
	"strconv"

	"github.com/shapestone/shape-core/pkg/ast"
	"github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-sexp/internal/parser"
)

// ParseAST parses an S-expression into Shape's unified AST.
//
// Returns an ast.SchemaNode:
//   - *ast.ObjectNode for lists (numeric string keys "0", "1", "2", ...)
//   - *ast.LiteralNode for atoms, holding the decoded string
//
// Errors are *ParseError values identical to those of Parse.
//
// Example:
//
//	node, err := sexp.ParseAST(`(a "b")`)
//	obj := node.(*ast.ObjectNode)
//	first := obj.Properties()["0"].(*ast.LiteralNode).Value().(string) // "a"
func ParseAST(input string) (ast.SchemaNode, error) {
	p := parser.NewParser(input)
	return p.Parse()
}

// ParseASTReader parses an S-expression from an io.Reader into Shape's
// unified AST, reading through Shape's buffered stream instead of loading
// the whole input first. The input must be UTF-8.
//
// Example:
//
//	file, err := os.Open("config.sexp")
//	if err != nil {
//	    return err
//	}
//	defer file.Close()
//
//	node, err := sexp.ParseASTReader(file)
func ParseASTReader(reader io.Reader) (ast.SchemaNode, error) {
	stream := tokenizer.NewStreamFromReader(reader)
	p := parser.NewParserFromStream(stream)
	return p.Parse()
}

// ToAST converts a Node tree into Shape's unified AST. The quoting flag of
// atoms is not carried over.
func ToAST(n Node) ast.SchemaNode {
	switch n := n.(type) {
	case *List:
		props := make(map[string]ast.SchemaNode, len(n.Children))
		for i, c := range n.Children {
			props[strconv.Itoa(i)] = ToAST(c)
		}
		return ast.NewObjectNode(props, ast.ZeroPosition())
	case *Atom:
		return ast.NewLiteralNode(n.Text, ast.ZeroPosition())
	}
	return nil
}

// ReleaseTree recursively releases all nodes in an AST tree back to their pools.
// This should be called when you're completely done with an AST (after conversion,
// rendering, etc.) to enable node reuse and reduce memory pressure.
//
// Example:
//
//	node, _ := sexp.ParseAST("(a b)")
//	data := sexp.NodeToInterface(node)
//	sexp.ReleaseTree(node)  // Release nodes back to pool
func ReleaseTree(node ast.SchemaNode) {
	parser.ReleaseTree(node)
}

// NodeToInterface converts an AST node to native Go types.
//
// Converts:
//   - *ast.LiteralNode → its value (string for parsed atoms)
//   - *ast.ObjectNode → []interface{} ordered by numeric key
//
// Example:
//
//	node, _ := sexp.ParseAST("(a (b c))")
//	data := sexp.NodeToInterface(node)
//	// data is []interface{}{"a", []interface{}{"b", "c"}}
func NodeToInterface(node ast.SchemaNode) interface{} {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return n.Value()

	case *ast.ObjectNode:
		props := n.Properties()
		arr := make([]interface{}, len(props))
		for i := range arr {
			if propNode, ok := props[strconv.Itoa(i)]; ok {
				arr[i] = NodeToInterface(propNode)
			}
		}
		return arr

	default:
		return nil
	}
}
