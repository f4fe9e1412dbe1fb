package parser

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"
	"github.com/shapestone/shape-sexp/internal/fastparser"
)

// Test helpers

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func assertObjectNode(t *testing.T, node ast.SchemaNode) *ast.ObjectNode {
	t.Helper()
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		t.Fatalf("expected *ast.ObjectNode, got %T", node)
	}
	return obj
}

func assertLiteralValue(t *testing.T, node ast.SchemaNode, expected interface{}) {
	t.Helper()
	lit, ok := node.(*ast.LiteralNode)
	if !ok {
		t.Fatalf("expected *ast.LiteralNode, got %T", node)
	}
	if lit.Value() != expected {
		t.Errorf("expected value %v (%T), got %v (%T)", expected, expected, lit.Value(), lit.Value())
	}
}

func assertPropertyCount(t *testing.T, obj *ast.ObjectNode, expected int) {
	t.Helper()
	if len(obj.Properties()) != expected {
		t.Errorf("expected %d properties, got %d", expected, len(obj.Properties()))
	}
}

// plain converts an AST into nested []interface{} and string values.
func plain(node ast.SchemaNode) interface{} {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return n.Value()
	case *ast.ObjectNode:
		props := n.Properties()
		out := make([]interface{}, len(props))
		for i := range out {
			out[i] = plain(props[strconv.Itoa(i)])
		}
		return out
	}
	return nil
}

// plainFast converts a byte-parser tree into the same shape as plain.
func plainFast(node fastparser.Node) interface{} {
	switch n := node.(type) {
	case *fastparser.Atom:
		return n.Text
	case *fastparser.List:
		out := make([]interface{}, len(n.Children))
		for i, c := range n.Children {
			out[i] = plainFast(c)
		}
		return out
	}
	return nil
}

func TestParseEmptyList(t *testing.T) {
	node, err := NewParser("()").Parse()
	assertNoError(t, err)
	obj := assertObjectNode(t, node)
	assertPropertyCount(t, obj, 0)
}

func TestParseNestedList(t *testing.T) {
	node, err := NewParser("(a b (c))").Parse()
	assertNoError(t, err)

	obj := assertObjectNode(t, node)
	assertPropertyCount(t, obj, 3)
	assertLiteralValue(t, obj.Properties()["0"], "a")
	assertLiteralValue(t, obj.Properties()["1"], "b")

	inner := assertObjectNode(t, obj.Properties()["2"])
	assertPropertyCount(t, inner, 1)
	assertLiteralValue(t, inner.Properties()["0"], "c")
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"symbol", "abc", "abc"},
		{"symbol with whitespace", "\n\t abc \r\n", "abc"},
		{"quoted", `"hello world"`, "hello world"},
		{"hex escape", `"a\x41b"`, "aAb"},
		{"octal escape", `"\101\102"`, "AB"},
		{"line continuation", "\"a\\\r\nb\"", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := NewParser(tt.input).Parse()
			assertNoError(t, err)
			assertLiteralValue(t, node, tt.expected)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   fastparser.ErrorKind
		offset int
		line   int
		column int
	}{
		{"unterminated string", `"unterminated`, fastparser.UnterminatedString, 13, 1, 14},
		{"missing close paren", "(a b", fastparser.UnterminatedList, 4, 1, 5},
		{"bad symbol", "sym$bol", fastparser.BadSymbol, 3, 1, 4},
		{"paren glued to symbol", "(a(b))", fastparser.BadSymbol, 2, 1, 3},
		{"trailing form", "a b", fastparser.UnexpectedTrailing, 2, 1, 3},
		{"empty input", "", fastparser.EmptySymbol, 0, 1, 1},
		{"lone close paren", ")", fastparser.EmptySymbol, 0, 1, 1},
		{"bad escape", "(x\n \"a\\qb\")", fastparser.BadEscape, 6, 2, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := NewParser(tt.input).Parse()
			if node != nil {
				t.Errorf("expected nil node, got %T", node)
			}
			var pe *fastparser.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *fastparser.ParseError, got %T: %v", err, err)
			}
			if pe.Kind != tt.kind || pe.Offset != tt.offset || pe.Line != tt.line || pe.Column != tt.column {
				t.Errorf("got %s at offset %d L%d.%d, want %s at offset %d L%d.%d",
					pe.Kind, pe.Offset, pe.Line, pe.Column, tt.kind, tt.offset, tt.line, tt.column)
			}
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	p := NewParser("(((a)))")
	p.SetMaxDepth(2)
	_, err := p.Parse()
	if !errors.Is(err, fastparser.ErrTooDeep) {
		t.Fatalf("expected ErrTooDeep, got %v", err)
	}
}

// TestParseMatchesFastParser checks that both parsers agree on trees and errors
func TestParseMatchesFastParser(t *testing.T) {
	inputs := []string{
		"()",
		"(a b (c))",
		`(define "name" (x "y\tz" "\x41\101"))`,
		"(\n  a\n  (b c)\n  \"multi\nline\"\n)",
		`("abc"def)`,
		"(a\"b\")",
		"(a b",
		"sym$bol",
		"a b",
		"",
		")",
		"( $)",
		`"abc\`,
		`"a\qb"`,
		`"\x4"`,
		`"\400"`,
		"(x\n (y\n  z%))",
		"(a (b (c \"d",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			astNode, astErr := NewParser(input).Parse()
			fastNode, fastErr := fastparser.NewParser([]byte(input)).Parse()

			if (astErr == nil) != (fastErr == nil) {
				t.Fatalf("ast err = %v, fast err = %v", astErr, fastErr)
			}
			if astErr != nil {
				if !reflect.DeepEqual(astErr, fastErr) {
					t.Errorf("ast err = %#v, fast err = %#v", astErr, fastErr)
				}
				return
			}

			if got, want := plain(astNode), plainFast(fastNode); !reflect.DeepEqual(got, want) {
				t.Errorf("ast tree = %v, fast tree = %v", got, want)
			}
		})
	}
}

func TestParseFromStream(t *testing.T) {
	stream := shapetokenizer.NewStreamFromReader(strings.NewReader("(a \"b c\" (d))"))
	node, err := NewParserFromStream(stream).Parse()
	assertNoError(t, err)

	want := []interface{}{"a", "b c", []interface{}{"d"}}
	if got := plain(node); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReleaseTree(t *testing.T) {
	node, err := NewParser("(a (b c) \"d\")").Parse()
	assertNoError(t, err)

	// should not panic
	ReleaseTree(node)
	ReleaseTree(nil)
}
