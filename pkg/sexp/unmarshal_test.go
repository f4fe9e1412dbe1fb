package sexp

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestUnmarshal_Struct(t *testing.T) {
	input := `(
  (name "api")
  (PORT 8080)
  (ratio 2.5)
  (tags web grpc)
  (tls (enabled true) (cert "/c.pem"))
  (limits (rps 100))
  (unknown whatever)
)`

	var s Server
	if err := Unmarshal([]byte(input), &s); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	want := Server{
		Name:   "api",
		Port:   8080,
		Ratio:  2.5,
		Tags:   []string{"web", "grpc"},
		TLS:    &TLS{Enabled: true, Cert: "/c.pem"},
		Limits: map[string]int{"rps": 100},
	}
	if !reflect.DeepEqual(s, want) {
		t.Errorf("Unmarshal() = %+v, want %+v", s, want)
	}
}

func TestUnmarshal_Values(t *testing.T) {
	t.Run("slice", func(t *testing.T) {
		var v []int
		if err := Unmarshal([]byte("(1 2 3)"), &v); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(v, []int{1, 2, 3}) {
			t.Errorf("got %v", v)
		}
	})

	t.Run("array", func(t *testing.T) {
		var v [3]string
		if err := Unmarshal([]byte(`(a "b")`), &v); err != nil {
			t.Fatal(err)
		}
		if v != [3]string{"a", "b", ""} {
			t.Errorf("got %v", v)
		}
	})

	t.Run("interface", func(t *testing.T) {
		var v interface{}
		if err := Unmarshal([]byte(`(a ("b" c))`), &v); err != nil {
			t.Fatal(err)
		}
		want := []interface{}{"a", []interface{}{"b", "c"}}
		if !reflect.DeepEqual(v, want) {
			t.Errorf("got %#v", v)
		}
	})

	t.Run("map of slices", func(t *testing.T) {
		var v map[string][]string
		if err := Unmarshal([]byte(`((dev a b) (ops))`), &v); err != nil {
			t.Fatal(err)
		}
		want := map[string][]string{"dev": {"a", "b"}, "ops": {}}
		if !reflect.DeepEqual(v, want) {
			t.Errorf("got %#v", v)
		}
	})

	t.Run("pointer", func(t *testing.T) {
		var v *uint16
		if err := Unmarshal([]byte("65535"), &v); err != nil {
			t.Fatal(err)
		}
		if v == nil || *v != 65535 {
			t.Errorf("got %v", v)
		}
	})

	t.Run("quoted bool", func(t *testing.T) {
		var v bool
		if err := Unmarshal([]byte(`"true"`), &v); err != nil {
			t.Fatal(err)
		}
		if !v {
			t.Error("got false")
		}
	})
}

func TestUnmarshal_Errors(t *testing.T) {
	var s Server
	var i int8
	var arr [1]int
	var m map[int]string

	tests := []struct {
		name    string
		input   string
		v       interface{}
		wantErr string
	}{
		{"nil target", "a", nil, "Unmarshal(nil)"},
		{"non-pointer", "a", s, "non-pointer"},
		{"nil pointer", "a", (*Server)(nil), "Unmarshal(nil *sexp.Server)"},
		{"overflow", "300", &i, `cannot unmarshal "300" at offset 0`},
		{"not a number", "(x)", &[]int{}, `cannot unmarshal "x" at offset 1`},
		{"list into scalar", "(a)", &i, "cannot unmarshal list at offset 0"},
		{"atom into struct", "a", &s, `cannot unmarshal atom "a"`},
		{"entry not a list", "(name)", &s, "expected (key value...) entry at offset 1"},
		{"entry key is a list", "(((a) b))", &s, "entry key at offset 2 is not an atom"},
		{"too many values", `((name "a" "b"))`, &s, `entry "name" has 2 values, want 1`},
		{"array too short", "(1 2)", &arr, "list length 2 exceeds target array length 1"},
		{"map key type", "((1 a))", &m, "unsupported map key type int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Unmarshal([]byte(tt.input), tt.v)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Unmarshal() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestUnmarshal_ParseError(t *testing.T) {
	var v []string
	err := Unmarshal([]byte("(a b"), &v)
	if !errors.Is(err, ErrUnterminatedList) {
		t.Errorf("err = %v, want unterminated list", err)
	}
}

func TestUnmarshalNode(t *testing.T) {
	n := NewList(NewList(NewAtom("name", false), NewAtom("x", true)))
	defer Free(n)

	var s Server
	if err := UnmarshalNode(n, &s); err != nil {
		t.Fatalf("UnmarshalNode() error: %v", err)
	}
	if s.Name != "x" {
		t.Errorf("Name = %q", s.Name)
	}
}
