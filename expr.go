// expr.go — the expression model produced by the parser.
package infer

// ExprTag discriminates the active case of an Expr.
type ExprTag int

const (
	EValue ExprTag = iota
	EVar
	EIf
)

// Expr is one top-level expression: a bare literal, a variable declaration,
// or a conditional. The conditional form is constructible for completeness
// but no grammar rule currently produces it.
type Expr struct {
	Tag ExprTag

	Value Value // EValue: the literal

	Name  string // EVar: declared name
	Types []Type // EVar: declared or inferred type list, canonical order
	Bound *Expr  // EVar: the bound expression

	Cond   *Expr // EIf
	Branch *Expr // EIf
}

// ValueExpr wraps a literal Value as an expression.
func ValueExpr(v Value) Expr { return Expr{Tag: EValue, Value: v} }

// VarExpr builds a variable declaration binding value under name with the
// given type list.
func VarExpr(name string, types []Type, value Expr) Expr {
	return Expr{Tag: EVar, Name: name, Types: types, Bound: &value}
}

// IfExpr builds a conditional expression.
func IfExpr(cond, branch Expr) Expr {
	return Expr{Tag: EIf, Cond: &cond, Branch: &branch}
}

// Equal compares expressions structurally, with one deliberate exception:
// two variable declarations are equal when they declare the same name with
// the same type list, independent of the value actually bound. Callers that
// need value-sensitive comparison must compare Bound themselves.
func (e Expr) Equal(o Expr) bool {
	if e.Tag != o.Tag {
		return false
	}
	switch e.Tag {
	case EValue:
		return e.Value.Equal(o.Value)
	case EVar:
		return e.Name == o.Name && TypeSlicesEqual(e.Types, o.Types)
	case EIf:
		return e.Cond.Equal(*o.Cond) && e.Branch.Equal(*o.Branch)
	default:
		return false
	}
}
