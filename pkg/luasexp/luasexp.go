// Package luasexp exposes the S-expression parser to gopher-lua scripts.
//
// Parsed trees become plain Lua tables. A list is {list={...}} holding its
// children in order; an atom is {atom="text", quoted=true|false}.
//
//	L := lua.NewState()
//	defer L.Close()
//	luasexp.Open(L)
//	L.DoString(`local t, err = sexp.parse("(a \"b\")")`)
//
// Functions in the module:
//
//	sexp.parse(s)            -> tree | nil, errmsg
//	sexp.validate(s)         -> true | false, errmsg
//	sexp.format(s [,compact]) -> string | nil, errmsg
package luasexp

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/shapestone/shape-sexp/pkg/sexp"
)

// ModuleName is the global and preload name of the module.
const ModuleName = "sexp"

var exports = map[string]lua.LGFunction{
	"parse":    parse,
	"validate": validate,
	"format":   format,
}

// Loader builds the module table. Use it with L.PreloadModule so scripts
// can require it:
//
//	L.PreloadModule("sexp", luasexp.Loader)
func Loader(L *lua.LState) int {
	L.Push(newModule(L))
	return 1
}

// Open installs the module as the global table "sexp".
func Open(L *lua.LState) {
	L.SetGlobal(ModuleName, newModule(L))
}

func newModule(L *lua.LState) *lua.LTable {
	return L.SetFuncs(L.NewTable(), exports)
}

// ToLua converts a tree into Lua tables.
func ToLua(L *lua.LState, n sexp.Node) lua.LValue {
	switch n := n.(type) {
	case *sexp.List:
		list := L.CreateTable(len(n.Children), 0)
		for _, c := range n.Children {
			list.Append(ToLua(L, c))
		}
		t := L.CreateTable(0, 1)
		t.RawSetString("list", list)
		return t
	case *sexp.Atom:
		t := L.CreateTable(0, 2)
		t.RawSetString("atom", lua.LString(n.Text))
		t.RawSetString("quoted", lua.LBool(n.Quoted))
		return t
	}
	return lua.LNil
}

func parse(L *lua.LState) int {
	n, err := sexp.Parse(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	defer sexp.Free(n)

	L.Push(ToLua(L, n))
	return 1
}

func validate(L *lua.LState) int {
	if err := sexp.Validate(L.CheckString(1)); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func format(L *lua.LState) int {
	n, err := sexp.Parse(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	defer sexp.Free(n)

	pr := sexp.DefaultPrinter
	pr.Compact = L.OptBool(2, false)
	L.Push(lua.LString(pr.Append(nil, n)))
	return 1
}
