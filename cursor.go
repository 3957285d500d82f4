// cursor.go — sequential, non-rewinding reader over the input text.
package infer

// Cursor is a forward-only scanner over the full input. The position index
// only ever increases; the grammar is designed so every decision point needs
// only fixed, small lookahead (word-length for keywords like "let" or "false").
type Cursor struct {
	src string
	pos int
}

// NewCursor creates a cursor positioned at the start of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src}
}

// Pos returns the current byte offset into the input.
func (c *Cursor) Pos() int { return c.pos }

// AtEnd reports whether the entire input has been consumed.
func (c *Cursor) AtEnd() bool { return c.pos >= len(c.src) }

// Peek returns the n bytes starting at the current position. The second
// result is false when fewer than n bytes remain; the cursor never moves.
func (c *Cursor) Peek(n int) (string, bool) {
	if c.pos+n > len(c.src) {
		return "", false
	}
	return c.src[c.pos : c.pos+n], true
}

// CurrentChar returns the byte at the current position, or false at end of
// input.
func (c *Cursor) CurrentChar() (byte, bool) {
	if c.AtEnd() {
		return 0, false
	}
	return c.src[c.pos], true
}

// Advance moves the position forward by k without validation.
func (c *Cursor) Advance(k int) { c.pos += k }

// ConsumeChar advances past the current byte and returns true only if it
// equals ch; otherwise the position is unchanged and the result is false.
func (c *Cursor) ConsumeChar(ch byte) bool {
	if cur, ok := c.CurrentChar(); ok && cur == ch {
		c.pos++
		return true
	}
	return false
}

// SkipWhitespace advances past any run of ASCII whitespace.
func (c *Cursor) SkipWhitespace() {
	for !c.AtEnd() {
		switch c.src[c.pos] {
		case ' ', '\t', '\r', '\n':
			c.pos++
		default:
			return
		}
	}
}
