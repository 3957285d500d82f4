// parser_test.go
package infer

import (
	"errors"
	"testing"
)

// --- helpers ---------------------------------------------------------------

func mustParse(t *testing.T, src string) []Expr {
	t.Helper()
	exprs, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v\nsource:\n%s", err, src)
	}
	return exprs
}

func mustParseOne(t *testing.T, src string) Expr {
	t.Helper()
	exprs := mustParse(t, src)
	if len(exprs) != 1 {
		t.Fatalf("want 1 expression, got %d\nsource:\n%s", len(exprs), src)
	}
	return exprs[0]
}

func mustFailParse(t *testing.T, src string) error {
	t.Helper()
	_, err := Parse(src)
	if err == nil {
		t.Fatalf("expected parse error, got nil\nsource:\n%s", src)
	}
	return err
}

func wantVar(t *testing.T, e Expr, name string, types []Type, bound Value) {
	t.Helper()
	if e.Tag != EVar {
		t.Fatalf("want Var, got %#v", e)
	}
	if e.Name != name {
		t.Fatalf("want name %q, got %q", name, e.Name)
	}
	if !TypeSlicesEqual(e.Types, types) {
		t.Fatalf("want types %s, got %s", FormatTypes(types), FormatTypes(e.Types))
	}
	if e.Bound.Tag != EValue || !e.Bound.Value.Equal(bound) {
		t.Fatalf("want bound value %s, got %s", bound, e.Bound)
	}
}

// --- declarations ----------------------------------------------------------

func Test_Parser_IntDecl(t *testing.T) {
	e := mustParseOne(t, `let x = 10;`)
	wantVar(t, e, "x", []Type{IntType}, Int(10))
}

func Test_Parser_StringDecl(t *testing.T) {
	e := mustParseOne(t, `let s = "hello";`)
	wantVar(t, e, "s", []Type{StrType}, Str("hello"))
}

func Test_Parser_BoolDecls(t *testing.T) {
	wantVar(t, mustParseOne(t, `let a = true;`), "a", []Type{BoolType}, Bool(true))
	wantVar(t, mustParseOne(t, `let b = false;`), "b", []Type{BoolType}, Bool(false))
}

func Test_Parser_ListDecl(t *testing.T) {
	e := mustParseOne(t, `let x = [1,2,3];`)
	wantVar(t, e, "x", []Type{ListType(IntType)}, List([]Value{Int(1), Int(2), Int(3)}))
}

func Test_Parser_SublistDecl(t *testing.T) {
	e := mustParseOne(t, `let x = [[1],2,3];`)
	wantVar(t, e, "x",
		[]Type{ListType(IntType, ListType(IntType))},
		List([]Value{List([]Value{Int(1)}), Int(2), Int(3)}))
}

func Test_Parser_AnnotationStoredNotValidated(t *testing.T) {
	// Deliberate permissiveness: the annotation is stored as written even
	// when it cannot match the bound value.
	e := mustParseOne(t, `let x: bool | str = false;`)
	wantVar(t, e, "x", []Type{BoolType, StrType}, Bool(false))

	e2 := mustParseOne(t, `let x: bool = 10;`)
	wantVar(t, e2, "x", []Type{BoolType}, Int(10))
}

func Test_Parser_Annotation_AtomNames(t *testing.T) {
	// "i64" has digits after the alphabetic start; the type-name scanner
	// must take the whole word, not stop at "i".
	e := mustParseOne(t, `let x: i64 = 10;`)
	wantVar(t, e, "x", []Type{IntType}, Int(10))

	wantVar(t, mustParseOne(t, `let x: bool = true;`), "x", []Type{BoolType}, Bool(true))
	wantVar(t, mustParseOne(t, `let x: str = "s";`), "x", []Type{StrType}, Str("s"))
}

func Test_Parser_AnnotationUnion_StopsWithoutAtomStart(t *testing.T) {
	// The union loop ends when the character after '|' is not an alphabetic
	// type-name start; the declaration still parses.
	e := mustParseOne(t, `let x: i64 | = 5;`)
	wantVar(t, e, "x", []Type{IntType}, Int(5))

	e2 := mustParseOne(t, `let x: list[i64|] = [1];`)
	if !TypeSlicesEqual(e2.Types, []Type{ListType(IntType)}) {
		t.Fatalf("nested union with dangling '|': %s", FormatTypes(e2.Types))
	}
}

func Test_Parser_AnnotationUnion_OrderIndependent(t *testing.T) {
	a := mustParseOne(t, `let x: i64 | bool | str = 1;`)
	b := mustParseOne(t, `let x: bool | str | i64 = 1;`)
	if !TypeSlicesEqual(a.Types, b.Types) {
		t.Fatalf("union order leaked into the type list: %s vs %s",
			FormatTypes(a.Types), FormatTypes(b.Types))
	}
	if !TypeSlicesEqual(a.Types, []Type{BoolType, IntType, StrType}) {
		t.Fatalf("canonical order broken: %s", FormatTypes(a.Types))
	}
}

func Test_Parser_AnnotationUnion_Deduplicates(t *testing.T) {
	e := mustParseOne(t, `let x: i64 | i64 | i64 = 1;`)
	if !TypeSlicesEqual(e.Types, []Type{IntType}) {
		t.Fatalf("duplicate atoms must collapse: %s", FormatTypes(e.Types))
	}
}

func Test_Parser_Annotation_ListAndMapAtoms(t *testing.T) {
	e := mustParseOne(t, `let x: list[i64|str] = [1];`)
	if !TypeSlicesEqual(e.Types, []Type{ListType(IntType, StrType)}) {
		t.Fatalf("list atom: %s", FormatTypes(e.Types))
	}

	e2 := mustParseOne(t, `let x: map[i64|str|bool, i64|str|bool] = {10: false};`)
	wantU := []Type{BoolType, IntType, StrType}
	if !TypeSlicesEqual(e2.Types, []Type{MapType(wantU, wantU)}) {
		t.Fatalf("map atom: %s", FormatTypes(e2.Types))
	}
	m := NewMapObject()
	m.Set(Int(10), Bool(false))
	if e2.Bound.Tag != EValue || !e2.Bound.Value.Equal(Map(m)) {
		t.Fatalf("bound value mismatch: %s", e2.Bound)
	}
}

func Test_Parser_Annotation_NestedAtoms(t *testing.T) {
	e := mustParseOne(t, `let x: list[map[str, i64 | bool]] | bool = true;`)
	want := []Type{
		BoolType,
		ListType(MapType([]Type{StrType}, []Type{BoolType, IntType})),
	}
	if !TypeSlicesEqual(e.Types, want) {
		t.Fatalf("nested annotation: got %s, want %s", FormatTypes(e.Types), FormatTypes(want))
	}
}

// --- bare values -----------------------------------------------------------

func Test_Parser_BareValues(t *testing.T) {
	exprs := mustParse(t, `10; "s"; [true, false]`)
	if len(exprs) != 3 {
		t.Fatalf("want 3 expressions, got %d", len(exprs))
	}
	for i, want := range []Value{Int(10), Str("s"), List([]Value{Bool(true), Bool(false)})} {
		if exprs[i].Tag != EValue || !exprs[i].Value.Equal(want) {
			t.Fatalf("expr %d: want %s, got %s", i, want, exprs[i])
		}
	}
}

func Test_Parser_SemicolonsOptional(t *testing.T) {
	a := mustParse(t, `let x = 1; let y = 2;`)
	b := mustParse(t, `let x = 1 let y = 2`)
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("want 2 expressions each, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			t.Fatalf("terminator must not change the parse: %s vs %s", a[i], b[i])
		}
	}
}

func Test_Parser_EmptyInput(t *testing.T) {
	if exprs := mustParse(t, ""); len(exprs) != 0 {
		t.Fatalf("empty input: want 0 expressions, got %d", len(exprs))
	}
	if exprs := mustParse(t, "  \n\t "); len(exprs) != 0 {
		t.Fatalf("whitespace input: want 0 expressions, got %d", len(exprs))
	}
}

// --- value grammar ---------------------------------------------------------

func Test_Parser_List_CommaTolerance(t *testing.T) {
	want := List([]Value{Int(1), Int(2), Int(3)})
	for _, src := range []string{`[1,2,3]`, `[1,2,3,]`, `[ 1 , 2 , 3 ]`, `[1 2 3]`} {
		e := mustParseOne(t, src)
		if e.Tag != EValue || !e.Value.Equal(want) {
			t.Fatalf("%q: got %s", src, e)
		}
	}
}

func Test_Parser_EmptyCollections(t *testing.T) {
	if e := mustParseOne(t, `[]`); !e.Value.Equal(List(nil)) {
		t.Fatalf("empty list: %s", e)
	}
	if e := mustParseOne(t, `{}`); !e.Value.Equal(Map(NewMapObject())) {
		t.Fatalf("empty map: %s", e)
	}
}

func Test_Parser_Map_StructuralKeys(t *testing.T) {
	e := mustParseOne(t, `{ "key": 2, [1]: 3 }`)
	if e.Tag != EValue || e.Value.Tag != VTMap {
		t.Fatalf("want map value, got %s", e)
	}
	m := e.Value.Data.(*MapObject)
	if got, ok := m.Get(Str("key")); !ok || !got.Equal(Int(2)) {
		t.Fatalf(`m["key"] = %v, %v`, got, ok)
	}
	if got, ok := m.Get(List([]Value{Int(1)})); !ok || !got.Equal(Int(3)) {
		t.Fatalf("m[[1]] = %v, %v", got, ok)
	}

	want := MapType([]Type{StrType, ListType(IntType)}, []Type{IntType})
	if got := TypeOf(e.Value); !got.Equal(want) {
		t.Fatalf("TypeOf: got %s, want %s", got, want)
	}
}

func Test_Parser_Map_DuplicateKeys_LastWriteWins(t *testing.T) {
	e := mustParseOne(t, `{1: 2, 1: 3}`)
	m := e.Value.Data.(*MapObject)
	if m.Len() != 1 {
		t.Fatalf("duplicate key kept both entries: len=%d", m.Len())
	}
	if got, _ := m.Get(Int(1)); !got.Equal(Int(3)) {
		t.Fatalf("last write must win: %v", got)
	}
}

func Test_Parser_Integer_Bounds(t *testing.T) {
	e := mustParseOne(t, `9223372036854775807`)
	if !e.Value.Equal(Int(9223372036854775807)) {
		t.Fatalf("max int64: %s", e)
	}

	err := mustFailParse(t, `9223372036854775808`)
	var ovf *IntegerOverflowError
	if !errors.As(err, &ovf) {
		t.Fatalf("want IntegerOverflowError, got %v", err)
	}
}

func Test_Parser_String_Verbatim(t *testing.T) {
	// No escape processing: backslashes come through untouched.
	e := mustParseOne(t, `"a\nb"`)
	if !e.Value.Equal(Str(`a\nb`)) {
		t.Fatalf("string must be copied verbatim, got %s", e)
	}
}

// --- errors ----------------------------------------------------------------

func Test_Parser_FailFast_TrailingInput(t *testing.T) {
	err := mustFailParse(t, `10; garbage`)
	var te *TrailingInputError
	if !errors.As(err, &te) {
		t.Fatalf("want TrailingInputError, got %v", err)
	}
	if te.Pos != 4 {
		t.Fatalf("want position 4 (start of 'garbage'), got %d", te.Pos)
	}
}

func Test_Parser_UnterminatedString(t *testing.T) {
	err := mustFailParse(t, `let x = "abc`)
	var eof *UnexpectedEOFError
	if !errors.As(err, &eof) {
		t.Fatalf("want UnexpectedEOFError, got %v", err)
	}
}

func Test_Parser_UnknownTypeName(t *testing.T) {
	err := mustFailParse(t, `let x: int = 5;`)
	var ut *UnknownTypeNameError
	if !errors.As(err, &ut) {
		t.Fatalf("want UnknownTypeNameError, got %v", err)
	}
	if ut.Name != "int" {
		t.Fatalf("want name %q, got %q", "int", ut.Name)
	}
}

func Test_Parser_MissingEquals(t *testing.T) {
	err := mustFailParse(t, `let x 10;`)
	var uc *UnexpectedCharError
	if !errors.As(err, &uc) {
		t.Fatalf("want UnexpectedCharError, got %v", err)
	}
	if uc.Found != '1' {
		t.Fatalf("want found '1', got %q", uc.Found)
	}
}

func Test_Parser_MapMissingColon(t *testing.T) {
	err := mustFailParse(t, `{1 2}`)
	var uc *UnexpectedCharError
	if !errors.As(err, &uc) {
		t.Fatalf("want UnexpectedCharError, got %v", err)
	}
}

func Test_Parser_UnclosedList(t *testing.T) {
	err := mustFailParse(t, `[1, 2`)
	var eof *UnexpectedEOFError
	if !errors.As(err, &eof) {
		t.Fatalf("want UnexpectedEOFError, got %v", err)
	}
}

func Test_Parser_NoPartialResult(t *testing.T) {
	exprs, err := Parse(`let x = 1; let y = "unterminated`)
	if err == nil {
		t.Fatalf("expected error")
	}
	if exprs != nil {
		t.Fatalf("failed parse must not return a partial tree, got %v", exprs)
	}
}
