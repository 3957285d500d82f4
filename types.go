// types.go — the structural Type model.
//
// A Type is either atomic (bool / i64 / str) or a collection over canonical
// union sets: list[T1|T2|...] and map[K1|K2|..., V1|V2|...]. The member sets
// are always deduplicated and sorted under a fixed total order, so two Types
// describing the same union are structurally identical no matter how their
// members were discovered or declared. That canonical-form invariant is what
// lets Equal stand in for "is the same union type".
//
// All collection Types must be built through ListType / MapType (which
// canonicalize); call sites never assemble member slices by hand.
package infer

// TypeKind discriminates the active case of a Type. The declaration order is
// also the canonical sort order for union members.
type TypeKind int

const (
	KBool TypeKind = iota
	KInt
	KStr
	KList
	KMap
)

// Type is a structural description of the shape of one or more Values.
type Type struct {
	Kind    TypeKind
	Members []Type // KList: canonical element union
	Keys    []Type // KMap: canonical key union
	Vals    []Type // KMap: canonical value union
}

// The atomic types.
var (
	BoolType = Type{Kind: KBool}
	IntType  = Type{Kind: KInt}
	StrType  = Type{Kind: KStr}
)

// ListType builds a canonical list type from the given member types.
func ListType(members ...Type) Type {
	return Type{Kind: KList, Members: canonicalTypes(members)}
}

// MapType builds a canonical map type from the given key and value unions.
func MapType(keys, vals []Type) Type {
	return Type{Kind: KMap, Keys: canonicalTypes(keys), Vals: canonicalTypes(vals)}
}

// canonicalTypes deduplicates and sorts a union's members into canonical
// order. The input slice is not modified.
func canonicalTypes(ts []Type) []Type {
	out := make([]Type, 0, len(ts))
	for _, t := range ts {
		dup := false
		for _, have := range out {
			if have.Equal(t) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	// Insertion sort; unions are tiny.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Compare(out[j-1]) < 0; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Compare imposes the canonical total order over Types: atoms and collection
// kinds order by TypeKind, and equal kinds order by recursive member
// comparison. Returns <0, 0, >0.
func (t Type) Compare(o Type) int {
	if t.Kind != o.Kind {
		return int(t.Kind) - int(o.Kind)
	}
	switch t.Kind {
	case KList:
		return compareTypeSlices(t.Members, o.Members)
	case KMap:
		if c := compareTypeSlices(t.Keys, o.Keys); c != 0 {
			return c
		}
		return compareTypeSlices(t.Vals, o.Vals)
	default:
		return 0
	}
}

func compareTypeSlices(a, b []Type) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

// Equal reports whether two Types are structurally identical. Because all
// collection Types are canonical, this is exactly union equality.
func (t Type) Equal(o Type) bool { return t.Compare(o) == 0 }

// TypeSlicesEqual compares two ordered type lists elementwise.
func TypeSlicesEqual(a, b []Type) bool { return compareTypeSlices(a, b) == 0 }
