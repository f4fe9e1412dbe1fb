package sexp

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

// Unmarshal parses the S-expression in data and stores the result in the
// value pointed to by v.
//
// Values map to nodes as follows:
//
//   - strings, numbers and booleans are atoms; numbers and booleans are read
//     with strconv from the atom text, whether quoted or not
//   - slices and arrays are lists with one node per element
//   - structs and string-keyed maps are lists of entries. An entry is a list
//     whose first node is the key atom. The rest of the entry is the value:
//     one node for a scalar, or the elements or entries of a slice, array,
//     struct or map written inline
//   - interface{} receives []interface{} for lists and string for atoms
//
// Struct fields are matched by the name given in a "sexp" tag, or else the
// lowercased field name; an exact match is preferred but a case-insensitive
// one is accepted. Unknown keys are ignored.
//
// Example:
//
//	type Server struct {
//	    Name string
//	    Port int
//	    Tags []string
//	}
//	var s Server
//	err := sexp.Unmarshal([]byte(`((name "api") (port 8080) (tags web grpc))`), &s)
func Unmarshal(data []byte, v interface{}) error {
	n, err := ParseBytes(data)
	if err != nil {
		return err
	}
	defer Free(n)
	return UnmarshalNode(n, v)
}

// UnmarshalNode stores the value described by n in the value pointed to by v.
func UnmarshalNode(n Node, v interface{}) error {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || v == nil {
		return errors.New("sexp: Unmarshal(nil)")
	}

	if rv.Kind() != reflect.Ptr {
		return errors.New("sexp: Unmarshal(non-pointer " + rv.Type().String() + ")")
	}

	if rv.IsNil() {
		return errors.New("sexp: Unmarshal(nil " + rv.Type().String() + ")")
	}

	return unmarshalValue(n, rv.Elem())
}

// Unmarshaler is the interface implemented by types that can unmarshal a
// tree describing themselves. The node is released after Unmarshal returns
// and must not be retained.
type Unmarshaler interface {
	UnmarshalSexp(Node) error
}

var unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()

// unmarshalValue stores a single node into rv.
func unmarshalValue(n Node, rv reflect.Value) error {
	if rv.CanAddr() && rv.Addr().Type().Implements(unmarshalerType) {
		return rv.Addr().Interface().(Unmarshaler).UnmarshalSexp(n)
	}

	// Handle interface{} specially
	if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
		rv.Set(reflect.ValueOf(nodeToValue(n)))
		return nil
	}

	// Handle pointers
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return unmarshalValue(n, rv.Elem())
	}

	switch n := n.(type) {
	case *Atom:
		return unmarshalAtom(n, rv)
	case *List:
		if !isComposite(rv.Kind()) {
			return fmt.Errorf("sexp: cannot unmarshal list at offset %d into Go value of type %s", n.Offset, rv.Type())
		}
		return unmarshalSeq(n.Children, rv)
	default:
		return fmt.Errorf("sexp: unsupported node type %T", n)
	}
}

// unmarshalSeq stores a sequence of nodes into a slice, array, struct or map.
func unmarshalSeq(nodes []Node, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Slice:
		slice := reflect.MakeSlice(rv.Type(), len(nodes), len(nodes))
		for i, c := range nodes {
			if err := unmarshalValue(c, slice.Index(i)); err != nil {
				return err
			}
		}
		rv.Set(slice)
		return nil

	case reflect.Array:
		if len(nodes) > rv.Len() {
			return fmt.Errorf("sexp: list length %d exceeds target array length %d", len(nodes), rv.Len())
		}
		for i, c := range nodes {
			if err := unmarshalValue(c, rv.Index(i)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Struct:
		return unmarshalStruct(nodes, rv)

	case reflect.Map:
		return unmarshalMap(nodes, rv)

	default:
		return fmt.Errorf("sexp: cannot unmarshal list into Go value of type %s", rv.Type())
	}
}

// entry splits an entry list into its key and value nodes.
func entry(n Node) (string, []Node, error) {
	l, ok := n.(*List)
	if !ok || len(l.Children) == 0 {
		return "", nil, fmt.Errorf("sexp: expected (key value...) entry at offset %d", n.Pos())
	}
	key, ok := l.Children[0].(*Atom)
	if !ok {
		return "", nil, fmt.Errorf("sexp: entry key at offset %d is not an atom", l.Children[0].Pos())
	}
	return key.Text, l.Children[1:], nil
}

// unmarshalEntryValue stores the value part of an entry into rv.
func unmarshalEntryValue(key string, values []Node, rv reflect.Value) error {
	target := rv
	for target.Kind() == reflect.Ptr {
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		target = target.Elem()
	}

	if isComposite(target.Kind()) && !(target.CanAddr() && target.Addr().Type().Implements(unmarshalerType)) {
		return unmarshalSeq(values, target)
	}
	if len(values) != 1 {
		return fmt.Errorf("sexp: entry %q has %d values, want 1", key, len(values))
	}
	return unmarshalValue(values[0], rv)
}

// unmarshalStruct stores entries into struct fields
func unmarshalStruct(nodes []Node, rv reflect.Value) error {
	fields := structFields(rv.Type())

	for _, n := range nodes {
		key, values, err := entry(n)
		if err != nil {
			return err
		}
		f, ok := lookupField(fields, key)
		if !ok {
			continue
		}
		if err := unmarshalEntryValue(key, values, rv.Field(f.index)); err != nil {
			return err
		}
	}
	return nil
}

// unmarshalMap stores entries into a string-keyed map
func unmarshalMap(nodes []Node, rv reflect.Value) error {
	mapType := rv.Type()

	// Only support string keys
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("sexp: unsupported map key type %s", mapType.Key())
	}

	// Create the map if nil
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	}

	for _, n := range nodes {
		key, values, err := entry(n)
		if err != nil {
			return err
		}
		elemVal := reflect.New(mapType.Elem()).Elem()
		if err := unmarshalEntryValue(key, values, elemVal); err != nil {
			return err
		}
		rv.SetMapIndex(reflect.ValueOf(key).Convert(mapType.Key()), elemVal)
	}
	return nil
}

// unmarshalAtom parses atom text into a scalar
func unmarshalAtom(a *Atom, rv reflect.Value) error {
	text := a.Text

	switch rv.Kind() {
	case reflect.String:
		rv.SetString(text)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil || rv.OverflowInt(v) {
			return atomError(a, rv)
		}
		rv.SetInt(v)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil || rv.OverflowUint(v) {
			return atomError(a, rv)
		}
		rv.SetUint(v)
		return nil

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(text, rv.Type().Bits())
		if err != nil {
			return atomError(a, rv)
		}
		rv.SetFloat(v)
		return nil

	case reflect.Bool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return atomError(a, rv)
		}
		rv.SetBool(v)
		return nil

	default:
		if isComposite(rv.Kind()) {
			return fmt.Errorf("sexp: cannot unmarshal atom %q into Go value of type %s", text, rv.Type())
		}
		return fmt.Errorf("sexp: unsupported type %s", rv.Type())
	}
}

func atomError(a *Atom, rv reflect.Value) error {
	return fmt.Errorf("sexp: cannot unmarshal %q at offset %d into Go value of type %s", a.Text, a.Offset, rv.Type())
}

// nodeToValue converts a tree into []interface{} and string values.
func nodeToValue(n Node) interface{} {
	switch n := n.(type) {
	case *List:
		out := make([]interface{}, len(n.Children))
		for i, c := range n.Children {
			out[i] = nodeToValue(c)
		}
		return out
	case *Atom:
		return n.Text
	}
	return nil
}
