package sexp

import (
	"reflect"
	"strings"
	"sync"
)

// fieldInfo describes how a struct field maps to an entry.
type fieldInfo struct {
	index     int
	name      string
	omitEmpty bool
}

// fieldCache caches the entry layout of struct types.
var fieldCache sync.Map // map[reflect.Type][]fieldInfo

// structFields returns the exported, non-skipped fields of t in order.
func structFields(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}

	fields := make([]fieldInfo, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // Skip unexported fields
			continue
		}
		info, skip := getFieldInfo(field)
		if skip {
			continue
		}
		info.index = i
		fields = append(fields, info)
	}

	cached, _ := fieldCache.LoadOrStore(t, fields)
	return cached.([]fieldInfo)
}

// getFieldInfo extracts field information from a struct field tag.
func getFieldInfo(field reflect.StructField) (fieldInfo, bool) {
	tag := field.Tag.Get("sexp")

	// No tag - use lowercase field name
	if tag == "" {
		return fieldInfo{name: strings.ToLower(field.Name)}, false
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "-" {
		return fieldInfo{}, true
	}
	if name == "" {
		name = strings.ToLower(field.Name)
	}

	info := fieldInfo{name: name}
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == "omitempty" {
			info.omitEmpty = true
		}
	}
	return info, false
}

// lookupField finds the field for an entry key, preferring an exact match
// but also accepting a case-insensitive one.
func lookupField(fields []fieldInfo, key string) (fieldInfo, bool) {
	for _, f := range fields {
		if f.name == key {
			return f, true
		}
	}
	for _, f := range fields {
		if strings.EqualFold(f.name, key) {
			return f, true
		}
	}
	return fieldInfo{}, false
}

// isEmptyValue checks if a reflect.Value is considered empty
func isEmptyValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return rv.IsNil()
	}
	return false
}

// isComposite reports whether values of kind k are written as a sequence of
// nodes rather than a single atom.
func isComposite(k reflect.Kind) bool {
	switch k {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return true
	}
	return false
}
