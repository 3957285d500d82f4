// printer_test.go
package infer

import "testing"

func Test_Printer_Values(t *testing.T) {
	m := NewMapObject()
	m.Set(Str("key"), Int(2))
	m.Set(List([]Value{Int(1)}), Int(3))

	cases := []struct {
		v    Value
		want string
	}{
		{Bool(true), "true"},
		{Int(42), "42"},
		{Str("hi"), `"hi"`},
		{List([]Value{Int(1), Str("a"), Bool(false)}), `[1, "a", false]`},
		{List(nil), "[]"},
		{Map(NewMapObject()), "{}"},
		{Map(m), `{"key": 2, [1]: 3}`},
	}
	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Fatalf("String() = %q, want %q", got, c.want)
		}
	}
}

func Test_Printer_Exprs(t *testing.T) {
	e := VarExpr("x", []Type{BoolType, StrType}, ValueExpr(Bool(false)))
	if got := e.String(); got != `let x: bool | str = false` {
		t.Fatalf("Var rendering = %q", got)
	}
	if got := ValueExpr(Int(7)).String(); got != "7" {
		t.Fatalf("Value rendering = %q", got)
	}
	cond := IfExpr(ValueExpr(Bool(true)), ValueExpr(Int(1)))
	if got := cond.String(); got != "if true then 1" {
		t.Fatalf("If rendering = %q", got)
	}
}

func Test_Printer_RoundTrip_ThroughParser(t *testing.T) {
	// Rendering a parsed value re-parses to an equal value.
	srcs := []string{`[1, [2, "three"], true]`, `{"k": [1], 2: false}`}
	for _, src := range srcs {
		v := mustParseOne(t, src).Value
		back := mustParseOne(t, v.String()).Value
		if !v.Equal(back) {
			t.Fatalf("round trip changed value: %s vs %s", v, back)
		}
	}
}
