package parser

import (
	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/lexer"
)

// A Cursor reads a token sequence front to back with one token of
// lookahead. It never moves backward.
type Cursor struct {
	toks lexer.Tokens
	pos  int
}

// NewCursor returns a cursor positioned at the first of toks.
func NewCursor(toks lexer.Tokens) *Cursor { return &Cursor{toks: toks} }

// Peek returns the current token without consuming it.
func (c *Cursor) Peek() (lexer.Token, error) {
	if c.pos >= len(c.toks) {
		return lexer.Token{}, c.endOfInput()
	}
	return c.toks[c.pos], nil
}

// Advance consumes and returns the current token.
func (c *Cursor) Advance() (lexer.Token, error) {
	tok, err := c.Peek()
	if err != nil {
		return tok, err
	}
	c.pos++
	return tok, nil
}

// Done reports whether every token has been consumed.
func (c *Cursor) Done() bool { return c.pos >= len(c.toks) }

// Pos reports the index of the current token.
func (c *Cursor) Pos() int { return c.pos }

func (c *Cursor) endOfInput() *errors.SyntaxError {
	se := &errors.SyntaxError{
		Kind:    errors.MissingEndOfInput,
		Index:   len(c.toks),
		Lexeme:  "end of input",
		Message: "unexpected end of input",
	}
	if n := len(c.toks); n > 0 {
		last := c.toks[n-1]
		se.Offset = last.Span.End
		se.Line = last.First.Line
		se.Column = last.First.Column + (last.Span.End - last.Span.Pos)
	}
	return se
}
