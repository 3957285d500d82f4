// value.go — the runtime Value model: a tagged union over the literal space
// (bool / integer / string / list / map) with structural equality and a
// structural hash.
//
// Invariants:
//   - When Tag==VTList, Data is []Value (order-sensitive).
//   - When Tag==VTMap, Data is *MapObject; keys are arbitrary Values, unique
//     by structural equality, and insertion order is preserved for iteration
//     only — equality and hashing are order-independent.
//   - Two structurally-equal maps hash identically regardless of the order
//     their entries were inserted (the map combiner is commutative).
package infer

// ValueTag discriminates the active case of a Value.
type ValueTag int

const (
	VTBool ValueTag = iota
	VTInt
	VTStr
	VTList
	VTMap
)

// Value is a parsed literal datum.
type Value struct {
	Tag  ValueTag
	Data interface{}
}

// Primitive constructors for convenience.
func Bool(b bool) Value     { return Value{Tag: VTBool, Data: b} }
func Int(n int64) Value     { return Value{Tag: VTInt, Data: n} }
func Str(s string) Value    { return Value{Tag: VTStr, Data: s} }
func List(xs []Value) Value { return Value{Tag: VTList, Data: xs} }
func Map(m *MapObject) Value {
	if m == nil {
		m = NewMapObject()
	}
	return Value{Tag: VTMap, Data: m}
}

// MapEntry is one key/value pair of a MapObject.
type MapEntry struct {
	Key Value
	Val Value
}

// MapObject stores key/value pairs with structural-equality key semantics.
// Lookup is by key hash with an equality scan, so composite keys (lists,
// nested maps) work. Entries keeps insertion order for predictable iteration.
type MapObject struct {
	entries []MapEntry
	index   map[uint64][]int // key hash -> indexes into entries
}

// NewMapObject creates an empty map.
func NewMapObject() *MapObject {
	return &MapObject{index: map[uint64][]int{}}
}

// MapOf builds a MapObject from pairs, in order, with last-write-wins
// semantics for duplicate keys.
func MapOf(pairs ...MapEntry) *MapObject {
	m := NewMapObject()
	for _, p := range pairs {
		m.Set(p.Key, p.Val)
	}
	return m
}

// Len returns the number of distinct keys.
func (m *MapObject) Len() int { return len(m.entries) }

// Entries returns the live entries in insertion order. The slice is shared;
// callers must not mutate it.
func (m *MapObject) Entries() []MapEntry { return m.entries }

// Get looks a key up by structural equality.
func (m *MapObject) Get(key Value) (Value, bool) {
	h := key.Hash()
	for _, i := range m.index[h] {
		if m.entries[i].Key.Equal(key) {
			return m.entries[i].Val, true
		}
	}
	return Value{}, false
}

// Set inserts or overwrites the value for key. Overwriting keeps the key's
// original insertion position (last write wins for the value).
func (m *MapObject) Set(key, val Value) {
	h := key.Hash()
	for _, i := range m.index[h] {
		if m.entries[i].Key.Equal(key) {
			m.entries[i].Val = val
			return
		}
	}
	m.index[h] = append(m.index[h], len(m.entries))
	m.entries = append(m.entries, MapEntry{Key: key, Val: val})
}

// Equal reports structural equality: same tag and same contents, recursively.
// List comparison is order-sensitive; map comparison is key-based and ignores
// insertion order.
func (v Value) Equal(o Value) bool {
	if v.Tag != o.Tag {
		return false
	}
	switch v.Tag {
	case VTBool:
		return v.Data.(bool) == o.Data.(bool)
	case VTInt:
		return v.Data.(int64) == o.Data.(int64)
	case VTStr:
		return v.Data.(string) == o.Data.(string)
	case VTList:
		a := v.Data.([]Value)
		b := o.Data.([]Value)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case VTMap:
		a := v.Data.(*MapObject)
		b := o.Data.(*MapObject)
		if a.Len() != b.Len() {
			return false
		}
		for _, e := range a.entries {
			bv, ok := b.Get(e.Key)
			if !ok || !e.Val.Equal(bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FNV-1a parameters, used for the scalar and sequence cases.
const (
	fnvOffset uint64 = 14695981039346656037
	fnvPrime  uint64 = 1099511628211
)

func hashMix(h, x uint64) uint64 {
	h ^= x
	h *= fnvPrime
	return h
}

func hashString(seed uint64, s string) uint64 {
	h := seed
	for i := 0; i < len(s); i++ {
		h = hashMix(h, uint64(s[i]))
	}
	return h
}

// Per-tag seeds so that e.g. Int(0) and Bool(false) hash apart.
var tagSeed = [...]uint64{
	VTBool: hashMix(fnvOffset, 1),
	VTInt:  hashMix(fnvOffset, 2),
	VTStr:  hashMix(fnvOffset, 3),
	VTList: hashMix(fnvOffset, 4),
	VTMap:  hashMix(fnvOffset, 5),
}

// Hash returns a structural hash consistent with Equal: equal Values hash
// equal. List hashing folds elements in order; map hashing sums per-pair
// hashes, a commutative combiner, so enumeration order cannot leak into the
// result.
func (v Value) Hash() uint64 {
	seed := tagSeed[v.Tag]
	switch v.Tag {
	case VTBool:
		if v.Data.(bool) {
			return hashMix(seed, 1)
		}
		return hashMix(seed, 0)
	case VTInt:
		return hashMix(seed, uint64(v.Data.(int64)))
	case VTStr:
		return hashString(seed, v.Data.(string))
	case VTList:
		h := seed
		for _, x := range v.Data.([]Value) {
			h = hashMix(h, x.Hash())
		}
		return h
	case VTMap:
		var sum uint64
		for _, e := range v.Data.(*MapObject).entries {
			sum += hashMix(hashMix(seed, e.Key.Hash()), e.Val.Hash())
		}
		return hashMix(seed, sum)
	default:
		return seed
	}
}
