// infer.go — structural type inference over Values and Exprs.
//
// TypeOf is a pure function from a Value to its canonical Type. Collections
// fold their members into deduplicated, sorted unions: [1,2,2,3] and [3,2,1]
// both infer list[i64]. Multiplicity and position are discarded — the result
// describes which types occur, not how many or where. Recursion depth equals
// the nesting depth of the Value; Values are acyclic by construction.
package infer

// TypeOf infers the canonical structural Type of a Value.
func TypeOf(v Value) Type {
	switch v.Tag {
	case VTBool:
		return BoolType
	case VTInt:
		return IntType
	case VTStr:
		return StrType
	case VTList:
		xs := v.Data.([]Value)
		members := make([]Type, 0, len(xs))
		for _, x := range xs {
			members = append(members, TypeOf(x))
		}
		return ListType(members...)
	case VTMap:
		mo := v.Data.(*MapObject)
		keys := make([]Type, 0, mo.Len())
		vals := make([]Type, 0, mo.Len())
		for _, e := range mo.Entries() {
			keys = append(keys, TypeOf(e.Key))
			vals = append(vals, TypeOf(e.Val))
		}
		return MapType(keys, vals)
	default:
		panic("infer: unknown value tag")
	}
}

// TypesOf returns the type list of an expression: the singleton inferred
// type for a bare value, the stored (declared or defaulted) list for a
// variable declaration, and the concatenation of both branches' lists for a
// conditional.
func TypesOf(e Expr) []Type {
	switch e.Tag {
	case EValue:
		return []Type{TypeOf(e.Value)}
	case EVar:
		return e.Types
	case EIf:
		return append(append([]Type{}, TypesOf(*e.Cond)...), TypesOf(*e.Branch)...)
	default:
		return nil
	}
}
