// parser.go — character-level recursive-descent parser for the literal
// language.
//
// OVERVIEW
// --------
// A program is a whitespace-separated sequence of statements, each optionally
// terminated by ';'. A statement is either a variable declaration or a bare
// value expression:
//
//	let x = 10;
//	let y: bool | str = false;
//	[1, [2], "three"];
//	{ "key": 2, [1]: 3 }
//
// Values are booleans, unsigned decimal integers, raw strings (no escape
// processing), lists, and maps whose keys may themselves be any value.
// Declarations may carry a type annotation: one or more type atoms joined
// by '|', where an atom is i64, bool, str, list[<union>], or
// map[<union>, <union>]. Annotation unions are deduplicated and canonically
// sorted as they are parsed, so `i64|bool` and `bool|i64` produce identical
// type lists. When the annotation is omitted, the declared type list
// defaults to the single inferred type of the parsed value.
//
// An annotation is stored as written and never checked against the value's
// inferred type: `let x: bool = 10;` parses successfully. See DESIGN.md.
//
// The parser drives a forward-only Cursor (cursor.go) and needs only fixed,
// word-length lookahead at every decision point. Errors are the typed
// fail-fast taxonomy from errors.go; the first error aborts the whole parse
// and no partial result is returned. After the statement loop the cursor
// must sit exactly at end of input, otherwise the parse fails with
// *TrailingInputError.
//
// Dependencies
// ------------
//   - cursor.go (Cursor)
//   - value.go, types.go, expr.go (the models being built)
//   - infer.go (TypeOf, to default omitted annotations)
//   - errors.go (error taxonomy)
package infer

import "math"

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

// Parse parses a complete source string and returns its ordered top-level
// expressions, or the first error encountered.
func Parse(src string) ([]Expr, error) {
	return NewParser(src).Parse()
}

// Parser owns one Cursor for one parse session. Create it from input text,
// call Parse exactly once, then discard it. Independent Parser instances
// share nothing and may run concurrently.
type Parser struct {
	cur *Cursor
}

// NewParser creates a parser over src.
func NewParser(src string) *Parser {
	return &Parser{cur: NewCursor(src)}
}

// Parse consumes the whole input and returns the top-level expression
// sequence. The statement terminator ';' is optional; trailing unconsumed
// input is an error.
func (p *Parser) Parse() ([]Expr, error) {
	exprs := []Expr{}
	p.cur.SkipWhitespace()
	for {
		if p.isVarDecl() {
			e, err := p.parseVarDecl()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, e)
		} else if p.startsValue() {
			v, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, ValueExpr(v))
		} else {
			break
		}
		p.cur.SkipWhitespace()
		p.cur.ConsumeChar(';') // terminator is optional
		p.cur.SkipWhitespace()
	}
	if !p.cur.AtEnd() {
		return nil, &TrailingInputError{Pos: p.cur.Pos()}
	}
	return exprs, nil
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
///////////////////////////// PRIVATE IMPLEMENTATION ///////////////////////////
////////////////////////////////////////////////////////////////////////////////

func isDigit(b byte) bool    { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool    { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

// ─────────────────────────── lookahead predicates ───────────────────────────

func (p *Parser) isVarDecl() bool {
	w, ok := p.cur.Peek(3)
	return ok && w == "let"
}

func (p *Parser) isTrue() bool {
	w, ok := p.cur.Peek(4)
	return ok && w == "true"
}

func (p *Parser) isFalse() bool {
	w, ok := p.cur.Peek(5)
	return ok && w == "false"
}

func (p *Parser) startsValue() bool {
	ch, ok := p.cur.CurrentChar()
	if !ok {
		return false
	}
	switch {
	case isDigit(ch), ch == '"', ch == '[', ch == '{':
		return true
	default:
		return p.isTrue() || p.isFalse()
	}
}

// need consumes ch or fails with the appropriate taxonomy error.
func (p *Parser) need(ch byte, what string) error {
	if p.cur.ConsumeChar(ch) {
		return nil
	}
	found, ok := p.cur.CurrentChar()
	if !ok {
		return &UnexpectedEOFError{Pos: p.cur.Pos()}
	}
	return &UnexpectedCharError{Expected: what, Found: found, Pos: p.cur.Pos()}
}

// ─────────────────────────── statements ─────────────────────────────────────

// parseVarDecl parses: "let" ws ident ws (":" typeUnion)? "=" ws value.
// Without an annotation the type list defaults to [TypeOf(value)]. With one,
// the annotation is stored as-is — it is never validated against the value.
func (p *Parser) parseVarDecl() (Expr, error) {
	p.cur.Advance(3) // "let"
	p.cur.SkipWhitespace()
	name := p.parseIdent()
	p.cur.SkipWhitespace()

	var types []Type
	if p.cur.ConsumeChar(':') {
		var err error
		types, err = p.parseTypeUnion()
		if err != nil {
			return Expr{}, err
		}
		p.cur.SkipWhitespace()
	}

	if err := p.need('=', "'='"); err != nil {
		return Expr{}, err
	}
	p.cur.SkipWhitespace()

	v, err := p.parseValue()
	if err != nil {
		return Expr{}, err
	}
	if types == nil {
		types = []Type{TypeOf(v)}
	}
	return VarExpr(name, types, ValueExpr(v)), nil
}

// parseIdent consumes a maximal run of ASCII letters.
func (p *Parser) parseIdent() string {
	start := p.cur.Pos()
	for {
		ch, ok := p.cur.CurrentChar()
		if !ok || !isAlpha(ch) {
			break
		}
		p.cur.Advance(1)
	}
	return p.cur.src[start:p.cur.Pos()]
}

// ─────────────────────────── type annotations ───────────────────────────────

// parseTypeName consumes a type name: an alphabetic start followed by letters
// or digits. Variable identifiers stay strictly alphabetic (parseIdent); the
// wider rule exists only for "i64".
func (p *Parser) parseTypeName() string {
	if ch, ok := p.cur.CurrentChar(); !ok || !isAlpha(ch) {
		return ""
	}
	start := p.cur.Pos()
	for {
		ch, ok := p.cur.CurrentChar()
		if !ok || !isAlphaNum(ch) {
			break
		}
		p.cur.Advance(1)
	}
	return p.cur.src[start:p.cur.Pos()]
}

// parseTypeUnion parses one or more '|'-separated type atoms and returns
// them deduplicated in canonical order. It stops as soon as no '|' follows
// the current atom, or the character after a '|' is not an alphabetic
// type-name start (the '|' stays consumed; the cursor never rewinds).
func (p *Parser) parseTypeUnion() ([]Type, error) {
	var members []Type
	for {
		p.cur.SkipWhitespace()
		t, err := p.parseTypeAtom()
		if err != nil {
			return nil, err
		}
		members = append(members, t)
		p.cur.SkipWhitespace()
		if !p.cur.ConsumeChar('|') {
			break
		}
		p.cur.SkipWhitespace()
		if ch, ok := p.cur.CurrentChar(); !ok || !isAlpha(ch) {
			break
		}
	}
	return canonicalTypes(members), nil
}

// parseTypeAtom parses i64 | bool | str | list[...] | map[...,...].
func (p *Parser) parseTypeAtom() (Type, error) {
	start := p.cur.Pos()
	name := p.parseTypeName()
	switch name {
	case "i64":
		return IntType, nil
	case "bool":
		return BoolType, nil
	case "str":
		return StrType, nil
	case "list":
		p.cur.SkipWhitespace()
		if err := p.need('[', "'['"); err != nil {
			return Type{}, err
		}
		members, err := p.parseTypeUnion()
		if err != nil {
			return Type{}, err
		}
		p.cur.SkipWhitespace()
		if err := p.need(']', "']'"); err != nil {
			return Type{}, err
		}
		return ListType(members...), nil
	case "map":
		p.cur.SkipWhitespace()
		if err := p.need('[', "'['"); err != nil {
			return Type{}, err
		}
		keys, err := p.parseTypeUnion()
		if err != nil {
			return Type{}, err
		}
		p.cur.SkipWhitespace()
		if err := p.need(',', "','"); err != nil {
			return Type{}, err
		}
		vals, err := p.parseTypeUnion()
		if err != nil {
			return Type{}, err
		}
		p.cur.SkipWhitespace()
		if err := p.need(']', "']'"); err != nil {
			return Type{}, err
		}
		return MapType(keys, vals), nil
	default:
		if name == "" && p.cur.AtEnd() {
			return Type{}, &UnexpectedEOFError{Pos: p.cur.Pos()}
		}
		return Type{}, &UnknownTypeNameError{Name: name, Pos: start}
	}
}

// ─────────────────────────── values ─────────────────────────────────────────

// parseValue dispatches on the current character: digit → integer, '"' →
// string, true/false keyword → boolean, '[' → list, '{' → map.
func (p *Parser) parseValue() (Value, error) {
	ch, ok := p.cur.CurrentChar()
	if !ok {
		return Value{}, &UnexpectedEOFError{Pos: p.cur.Pos()}
	}
	switch {
	case isDigit(ch):
		return p.parseInteger()
	case ch == '"':
		return p.parseString()
	case p.isTrue():
		p.cur.Advance(4)
		return Bool(true), nil
	case p.isFalse():
		p.cur.Advance(5)
		return Bool(false), nil
	case ch == '[':
		return p.parseList()
	case ch == '{':
		return p.parseMap()
	default:
		return Value{}, &UnexpectedCharError{Expected: "value", Found: ch, Pos: p.cur.Pos()}
	}
}

// parseInteger consumes a maximal digit run, accumulating acc = acc*10 +
// digit. Accumulation past int64 range is an error, not a silent wrap.
func (p *Parser) parseInteger() (Value, error) {
	start := p.cur.Pos()
	var n int64
	for {
		ch, ok := p.cur.CurrentChar()
		if !ok || !isDigit(ch) {
			break
		}
		d := int64(ch - '0')
		if n > (math.MaxInt64-d)/10 {
			return Value{}, &IntegerOverflowError{Pos: start}
		}
		n = n*10 + d
		p.cur.Advance(1)
	}
	return Int(n), nil
}

// parseString consumes '"', copies bytes verbatim (no escape processing)
// until the closing '"'. Reaching end of input first is an error.
func (p *Parser) parseString() (Value, error) {
	p.cur.Advance(1) // opening '"'
	start := p.cur.Pos()
	for {
		ch, ok := p.cur.CurrentChar()
		if !ok {
			return Value{}, &UnexpectedEOFError{Pos: p.cur.Pos()}
		}
		if ch == '"' {
			break
		}
		p.cur.Advance(1)
	}
	s := p.cur.src[start:p.cur.Pos()]
	p.cur.Advance(1) // closing '"'
	return Str(s), nil
}

// parseList parses '[' (value ','?)* ']'. The loop re-checks for ']' after
// each optional comma, so a trailing or missing final comma both parse.
func (p *Parser) parseList() (Value, error) {
	p.cur.Advance(1) // '['
	var items []Value
	for {
		p.cur.SkipWhitespace()
		ch, ok := p.cur.CurrentChar()
		if !ok {
			return Value{}, &UnexpectedEOFError{Pos: p.cur.Pos()}
		}
		if ch == ']' {
			p.cur.Advance(1)
			break
		}
		v, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		items = append(items, v)
		p.cur.SkipWhitespace()
		p.cur.ConsumeChar(',')
	}
	return List(items), nil
}

// parseMap parses '{' (value ':' value ','?)* '}'. Keys may be any value,
// including lists and maps; duplicate keys resolve last-write-wins.
func (p *Parser) parseMap() (Value, error) {
	p.cur.Advance(1) // '{'
	m := NewMapObject()
	for {
		p.cur.SkipWhitespace()
		ch, ok := p.cur.CurrentChar()
		if !ok {
			return Value{}, &UnexpectedEOFError{Pos: p.cur.Pos()}
		}
		if ch == '}' {
			p.cur.Advance(1)
			break
		}
		key, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		p.cur.SkipWhitespace()
		if err := p.need(':', "':'"); err != nil {
			return Value{}, err
		}
		p.cur.SkipWhitespace()
		val, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		m.Set(key, val)
		p.cur.SkipWhitespace()
		p.cur.ConsumeChar(',')
	}
	return Map(m), nil
}
