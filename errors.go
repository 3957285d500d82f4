// errors.go: parse-error taxonomy and caret-snippet rendering
//
// Every malformed-input condition the parser can hit maps to one concrete
// error type carrying the byte offset where it was detected:
//
//   - *UnexpectedEOFError    — input exhausted while a token was expected.
//   - *UnexpectedCharError   — a specific literal/keyword failed to match.
//   - *UnknownTypeNameError  — a type atom was not recognized.
//   - *TrailingInputError    — the top-level loop stopped before end of input.
//   - *IntegerOverflowError  — decimal accumulation overflowed int64.
//
// Propagation is strictly fail-fast: every parse routine returns the first
// error upward unchanged, and the top-level parse yields either the complete
// expression sequence or that first error. No recovery, no partial trees,
// no multi-error accumulation.
//
// WrapErrorWithSource turns any of the above into a readable snippet with a
// caret pointing at the offending column:
//
//	PARSE ERROR at 2:7: unexpected character 'g' (expected value)
//
//	   1 | let x = 10;
//	   2 | let y garbage
//	       |      ^
//
// Offsets are byte positions into the original source; line/column are
// derived on demand and rendered 1-based. Other error kinds pass through
// WrapErrorWithSource unchanged.
package infer

import (
	"fmt"
	"strings"
)

/* ===========================
   PUBLIC API
   =========================== */

// UnexpectedEOFError reports that the cursor was exhausted while a token was
// still expected.
type UnexpectedEOFError struct {
	Pos int
}

func (e *UnexpectedEOFError) Error() string {
	return "unexpected end of input"
}

// UnexpectedCharError reports that a specific literal or keyword failed to
// match at Pos. Expected is a short human description ("value", "'='", ...).
type UnexpectedCharError struct {
	Expected string
	Found    byte
	Pos      int
}

func (e *UnexpectedCharError) Error() string {
	return fmt.Sprintf("unexpected character %q (expected %s)", e.Found, e.Expected)
}

// UnknownTypeNameError reports an unrecognized type atom in an annotation.
type UnknownTypeNameError struct {
	Name string
	Pos  int
}

func (e *UnknownTypeNameError) Error() string {
	if e.Name == "" {
		return "expected a type name"
	}
	return fmt.Sprintf("unknown type name %q", e.Name)
}

// TrailingInputError reports that the parse loop terminated before the end
// of input.
type TrailingInputError struct {
	Pos int
}

func (e *TrailingInputError) Error() string {
	return "trailing input after last statement"
}

// IntegerOverflowError reports that an integer literal does not fit in int64.
type IntegerOverflowError struct {
	Pos int
}

func (e *IntegerOverflowError) Error() string {
	return "integer literal overflows int64"
}

// ErrorPos returns the byte offset carried by any of this package's parse
// errors, or -1 for foreign errors.
func ErrorPos(err error) int {
	if pe, ok := err.(posError); ok {
		return pe.position()
	}
	return -1
}

// WrapErrorWithSource returns an error whose message is a caret-annotated
// snippet of src, if err is one of this package's parse errors. Any other
// error is returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	pe, ok := err.(posError)
	if !ok {
		return err
	}
	line, col := posAt(src, pe.position())
	return fmt.Errorf("%s", prettyErrorString(src, "PARSE ERROR", line, col, err.Error()))
}

//// END_OF_PUBLIC

/* ===========================
   PRIVATE: helpers & rendering
   =========================== */

type posError interface {
	error
	position() int
}

func (e *UnexpectedEOFError) position() int   { return e.Pos }
func (e *UnexpectedCharError) position() int  { return e.Pos }
func (e *UnknownTypeNameError) position() int { return e.Pos }
func (e *TrailingInputError) position() int   { return e.Pos }
func (e *IntegerOverflowError) position() int { return e.Pos }

// posAt converts a byte offset into 1-based line/column coordinates,
// clamping the offset to the source bounds.
func posAt(src string, pos int) (line, col int) {
	if pos < 0 {
		pos = 0
	}
	if pos > len(src) {
		pos = len(src)
	}
	line = 1 + strings.Count(src[:pos], "\n")
	lastNL := strings.LastIndex(src[:pos], "\n")
	if lastNL < 0 {
		return line, pos + 1
	}
	return line, pos - lastNL
}

// prettyErrorString builds a Python-like snippet with a header and a caret.
// It shows at most one previous and one next line when available.
// Coordinates are treated as 1-based and clamped to the source bounds.
func prettyErrorString(src, header string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := col - 1
	if caretPad > len(lineTxt) {
		caretPad = len(lineTxt)
	}
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
