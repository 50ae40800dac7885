package internal

// Cursor walks a flat token slice with lookahead that does not consume.
type Cursor struct {
	tokens []Token
	pos    int
}

// NewCursor creates a cursor over tokens
func NewCursor(tokens []Token) *Cursor {
	return &Cursor{tokens: tokens}
}

// Done reports whether every token has been consumed
func (c *Cursor) Done() bool {
	return c.pos >= len(c.tokens)
}

// Next consumes and returns the current token
func (c *Cursor) Next() (Token, bool) {
	if c.Done() {
		return Token{}, false
	}
	t := c.tokens[c.pos]
	c.pos++
	return t, true
}

// Peek returns the token n positions ahead of the current one without
// consuming anything. Peek(0) is the next token Next would return.
func (c *Cursor) Peek(n int) (Token, bool) {
	i := c.pos + n
	if n < 0 || i >= len(c.tokens) {
		return Token{}, false
	}
	return c.tokens[i], true
}

// Skip consumes n tokens
func (c *Cursor) Skip(n int) {
	c.pos += n
	if c.pos > len(c.tokens) {
		c.pos = len(c.tokens)
	}
}

// Rest returns the unconsumed tokens
func (c *Cursor) Rest() []Token {
	return c.tokens[c.pos:]
}
