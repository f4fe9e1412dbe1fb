package sexp

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Marshal returns the compact S-expression encoding of v.
//
// Marshal is the inverse of Unmarshal. Strings encode as quoted atoms;
// integers, floats and booleans as bare atoms. Slices and arrays encode as
// lists. Structs and string-keyed maps encode as lists of (key value...)
// entries, with map keys sorted and struct fields in declaration order; a
// slice, array, struct or map held in an entry is written inline after the
// key.
//
// The encoding of each struct field can be customized by the format string
// stored under the "sexp" key in the struct field's tag. The format string
// gives the name of the field, possibly followed by a comma-separated list
// of options. The "omitempty" option omits the entry if the field has an
// empty value. As a special case, if the field tag is "-", the field is
// always omitted. Entries for nil pointers and nil interfaces are always
// omitted, since there is no null atom.
//
// Example:
//
//	type Server struct {
//	    Name string
//	    Port int
//	    Tags []string
//	}
//	data, err := sexp.Marshal(Server{Name: "api", Port: 8080, Tags: []string{"web"}})
//	// data is []byte(`((name "api") (port 8080) (tags "web"))`)
func Marshal(v interface{}) ([]byte, error) {
	return MarshalWith(Printer{Compact: true}, v)
}

// MarshalIndent is like Marshal but uses DefaultPrinter's indented layout.
func MarshalIndent(v interface{}) ([]byte, error) {
	return MarshalWith(DefaultPrinter, v)
}

// MarshalWith encodes v and renders it with pr.
func MarshalWith(pr Printer, v interface{}) ([]byte, error) {
	n, err := MarshalNode(v)
	if err != nil {
		return nil, err
	}
	defer Free(n)
	return pr.Append(nil, n), nil
}

// MarshalNode encodes v as a tree. The caller owns the tree and may Free it.
func MarshalNode(v interface{}) (Node, error) {
	return marshalValue(reflect.ValueOf(v))
}

// Marshaler is the interface implemented by types that can marshal
// themselves into a tree.
type Marshaler interface {
	MarshalSexp() (Node, error)
}

var marshalerType = reflect.TypeOf((*Marshaler)(nil)).Elem()

// marshalValue encodes a single value as one node.
func marshalValue(rv reflect.Value) (Node, error) {
	if !rv.IsValid() {
		return nil, fmt.Errorf("sexp: cannot marshal nil value")
	}

	if rv.Type().Implements(marshalerType) {
		if rv.Kind() == reflect.Ptr && rv.IsNil() {
			return nil, fmt.Errorf("sexp: cannot marshal nil %s", rv.Type())
		}
		return rv.Interface().(Marshaler).MarshalSexp()
	}

	// Dereference pointers and interfaces
	if rv.Kind() == reflect.Interface || rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("sexp: cannot marshal nil %s", rv.Type())
		}
		return marshalValue(rv.Elem())
	}

	switch rv.Kind() {
	case reflect.String:
		return NewAtom(rv.String(), true), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewAtom(strconv.FormatInt(rv.Int(), 10), false), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewAtom(strconv.FormatUint(rv.Uint(), 10), false), nil

	case reflect.Float32, reflect.Float64:
		return NewAtom(strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits()), false), nil

	case reflect.Bool:
		return NewAtom(strconv.FormatBool(rv.Bool()), false), nil

	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		children, err := marshalSeq(rv)
		if err != nil {
			return nil, err
		}
		return NewList(children...), nil

	default:
		return nil, fmt.Errorf("sexp: unsupported type %s", rv.Type())
	}
}

// marshalSeq encodes a slice, array, struct or map as a sequence of nodes.
func marshalSeq(rv reflect.Value) ([]Node, error) {
	switch rv.Kind() {
	case reflect.Struct:
		return marshalStruct(rv)
	case reflect.Map:
		return marshalMap(rv)
	}

	nodes := make([]Node, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		n, err := marshalValue(rv.Index(i))
		if err != nil {
			freeAll(nodes)
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// marshalEntry encodes one (key value...) entry, or returns nil for a nil
// pointer or interface.
func marshalEntry(key string, rv reflect.Value) (Node, error) {
	target := rv
	for target.Kind() == reflect.Ptr || target.Kind() == reflect.Interface {
		if target.IsNil() {
			return nil, nil
		}
		if target.Type().Implements(marshalerType) {
			break
		}
		target = target.Elem()
	}

	entry := NewList(NewAtom(key, !IsSymbol(key)))
	if isComposite(target.Kind()) && !target.Type().Implements(marshalerType) {
		values, err := marshalSeq(target)
		if err != nil {
			Free(entry)
			return nil, err
		}
		entry.Children = append(entry.Children, values...)
		return entry, nil
	}

	value, err := marshalValue(target)
	if err != nil {
		Free(entry)
		return nil, err
	}
	entry.Children = append(entry.Children, value)
	return entry, nil
}

// marshalStruct encodes struct fields as entries in declaration order
func marshalStruct(rv reflect.Value) ([]Node, error) {
	fields := structFields(rv.Type())
	nodes := make([]Node, 0, len(fields))

	for _, f := range fields {
		fieldVal := rv.Field(f.index)

		// Handle omitempty
		if f.omitEmpty && isEmptyValue(fieldVal) {
			continue
		}

		n, err := marshalEntry(f.name, fieldVal)
		if err != nil {
			freeAll(nodes)
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// marshalMap encodes map entries sorted by key
func marshalMap(rv reflect.Value) ([]Node, error) {
	mapType := rv.Type()

	// Only support string keys
	if mapType.Key().Kind() != reflect.String {
		return nil, fmt.Errorf("sexp: unsupported map key type %s", mapType.Key())
	}

	// Get keys and sort them for deterministic output
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].String() < keys[j].String()
	})

	nodes := make([]Node, 0, len(keys))
	for _, key := range keys {
		n, err := marshalEntry(key.String(), rv.MapIndex(key))
		if err != nil {
			freeAll(nodes)
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

func freeAll(nodes []Node) {
	for _, n := range nodes {
		Free(n)
	}
}
