package infer

import (
	"strconv"
	"strings"
)

/* ---------- Value rendering ---------- */

// String renders the literal in source syntax. Maps print in insertion
// order; rendering is deterministic for a given construction history but is
// not part of any equality contract.
func (v Value) String() string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.Tag {
	case VTBool:
		if v.Data.(bool) {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case VTInt:
		b.WriteString(strconv.FormatInt(v.Data.(int64), 10))
	case VTStr:
		// Strings are raw: no escape processing on the way in, none on the
		// way out.
		b.WriteByte('"')
		b.WriteString(v.Data.(string))
		b.WriteByte('"')
	case VTList:
		b.WriteByte('[')
		for i, x := range v.Data.([]Value) {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, x)
		}
		b.WriteByte(']')
	case VTMap:
		b.WriteByte('{')
		for i, e := range v.Data.(*MapObject).Entries() {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(b, e.Key)
			b.WriteString(": ")
			writeValue(b, e.Val)
		}
		b.WriteByte('}')
	}
}

/* ---------- Type rendering ---------- */

// String renders the type in annotation syntax: bool, i64, str,
// list[i64|str], map[bool,str]. Because collection Types are canonical, the
// rendering is a faithful witness of the canonical form.
func (t Type) String() string {
	var b strings.Builder
	writeType(&b, t)
	return b.String()
}

// FormatTypes joins a type list with " | ", the way a declaration writes it.
func FormatTypes(ts []Type) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, " | ")
}

func writeType(b *strings.Builder, t Type) {
	switch t.Kind {
	case KBool:
		b.WriteString("bool")
	case KInt:
		b.WriteString("i64")
	case KStr:
		b.WriteString("str")
	case KList:
		b.WriteString("list[")
		writeUnion(b, t.Members)
		b.WriteByte(']')
	case KMap:
		b.WriteString("map[")
		writeUnion(b, t.Keys)
		b.WriteByte(',')
		writeUnion(b, t.Vals)
		b.WriteByte(']')
	}
}

func writeUnion(b *strings.Builder, ts []Type) {
	for i, t := range ts {
		if i > 0 {
			b.WriteByte('|')
		}
		writeType(b, t)
	}
}

/* ---------- Expr rendering ---------- */

// String renders an expression roughly as it was written.
func (e Expr) String() string {
	switch e.Tag {
	case EValue:
		return e.Value.String()
	case EVar:
		return "let " + e.Name + ": " + FormatTypes(e.Types) + " = " + e.Bound.String()
	case EIf:
		return "if " + e.Cond.String() + " then " + e.Branch.String()
	default:
		return "<unknown>"
	}
}
