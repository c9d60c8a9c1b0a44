// Package lexer implements the deterministic finite automaton that splits a
// document into tokens.
//
// The automaton has four states. From the start state, punctuation is
// emitted immediately, a double quote enters the string state, a digit or one
// of "-+.eE" enters the number state, and one of "tfn" enters the keyword
// state. A number ends at the first rune that cannot continue it; that rune is
// pushed back and re-examined from the start state.
//
// Tokenize keeps no state between calls and is safe for concurrent use.
package lexer

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/jsontree/internal/errors"

	"go4.org/mem"
)

type state int

const (
	stateStart state = iota
	stateString
	stateNumber
	stateKeyword
)

var keywords = [...]string{"true", "false", "null"}

// Tokenize converts input into an ordered token sequence, or reports the
// first lexical error as an *errors.SyntaxError.
func Tokenize(input string) (Tokens, error) {
	lx := &lexer{src: input, line: 1}
	for lx.pos < len(lx.src) {
		ch, n := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if ch == utf8.RuneError && n == 1 {
			b := lx.src[lx.pos]
			return nil, lx.failAt(errors.UnexpectedCharacter, lx.pos, lx.here(), fmt.Sprintf(`\x%02x`, b),
				"invalid UTF-8 byte 0x%02x at offset %d", b, lx.pos)
		}
		ok, err := lx.step(ch, n)
		if err != nil {
			return nil, err
		}
		if ok {
			lx.advance(ch, n)
		}
	}
	if err := lx.finish(); err != nil {
		return nil, err
	}
	return lx.toks, nil
}

type lexer struct {
	src   string
	state state
	esc   bool         // a backslash is awaiting its target
	buf   bytes.Buffer // current token text
	toks  Tokens

	pos       int // offset of the next unread rune
	line, col int // location of the next unread rune

	// Start of the token in progress.
	start int
	first LineCol
}

func (lx *lexer) here() LineCol { return LineCol{Line: lx.line, Column: lx.col} }

func (lx *lexer) advance(ch rune, n int) {
	lx.pos += n
	if ch == '\n' {
		lx.line++
		lx.col = 0
	} else {
		lx.col += n
	}
}

// begin records the start of a multi-rune token and switches to st.
func (lx *lexer) begin(st state) {
	lx.state = st
	lx.buf.Reset()
	lx.start = lx.pos
	lx.first = lx.here()
}

// step processes one rune in the current state. It reports false if the rune
// was not consumed and must be examined again.
func (lx *lexer) step(ch rune, n int) (bool, error) {
	switch lx.state {
	case stateString:
		lx.stepString(ch, n)
		return true, nil

	case stateNumber:
		if isNumRune(ch) {
			lx.buf.WriteRune(ch)
			return true, nil
		}
		if err := lx.emitNumber(lx.pos); err != nil {
			return false, err
		}
		return false, nil // pushback

	case stateKeyword:
		lx.buf.WriteRune(ch)
		return true, lx.checkKeyword(lx.pos + n)
	}
	return true, lx.stepStart(ch, n)
}

func (lx *lexer) stepStart(ch rune, n int) error {
	if k, ok := selfDelim(ch); ok {
		lx.toks = append(lx.toks, Token{
			Kind:  k,
			Text:  string(ch),
			Span:  Span{Pos: lx.pos, End: lx.pos + n},
			First: lx.here(),
		})
		return nil
	}
	switch {
	case ch == '"':
		lx.begin(stateString)
	case isNumStart(ch):
		lx.begin(stateNumber)
		lx.buf.WriteRune(ch)
	case ch == 't' || ch == 'f' || ch == 'n':
		lx.begin(stateKeyword)
		lx.buf.WriteRune(ch)
	case isSpace(ch):
		// skip
	default:
		return lx.failAt(errors.UnexpectedCharacter, lx.pos, lx.here(), string(ch),
			"unexpected character %q at offset %d", ch, lx.pos)
	}
	return nil
}

func (lx *lexer) stepString(ch rune, n int) {
	if lx.esc {
		lx.buf.WriteRune(ch)
		lx.esc = false
		return
	}
	switch ch {
	case '"':
		lx.emit(String, lx.pos+n)
	case '\\':
		lx.esc = true
	default:
		lx.buf.WriteRune(ch)
	}
}

func (lx *lexer) emitNumber(end int) error {
	text := lx.buf.String()
	if _, err := strconv.ParseFloat(text, 64); err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return lx.failAt(errors.InvalidNumber, lx.start, lx.first, text, "invalid number %q", text)
	}
	lx.emit(Number, end)
	return nil
}

func (lx *lexer) checkKeyword(end int) error {
	got := mem.B(lx.buf.Bytes())
	for _, kw := range keywords {
		if got.Equal(mem.S(kw)) {
			if kw == "null" {
				lx.emit(Null, end)
			} else {
				lx.emit(Bool, end)
			}
			return nil
		}
	}
	for _, kw := range keywords {
		if mem.HasPrefix(mem.S(kw), got) {
			return nil // keep reading
		}
	}
	text := got.StringCopy()
	return lx.failAt(errors.InvalidKeyword, lx.start, lx.first, text, "invalid keyword %q", text)
}

// emit appends the buffered token of kind k ending at offset end and returns
// to the start state.
func (lx *lexer) emit(k Kind, end int) {
	lx.toks = append(lx.toks, Token{
		Kind:  k,
		Text:  lx.buf.String(),
		Span:  Span{Pos: lx.start, End: end},
		First: lx.first,
	})
	lx.buf.Reset()
	lx.state = stateStart
}

// finish handles a token still in progress at the end of the input.
func (lx *lexer) finish() error {
	switch lx.state {
	case stateNumber:
		return lx.emitNumber(lx.pos)
	case stateString:
		if lx.esc {
			return lx.failAt(errors.UnterminatedEscape, lx.start, lx.first, lx.buf.String(),
				"input ends after escape character in string")
		}
		return lx.failAt(errors.UnterminatedString, lx.start, lx.first, lx.buf.String(),
			"unterminated string literal")
	case stateKeyword:
		text := lx.buf.String()
		return lx.failAt(errors.InvalidKeyword, lx.start, lx.first, text,
			"invalid keyword %q at end of input", text)
	}
	return nil
}

func (lx *lexer) failAt(k errors.Kind, offset int, lc LineCol, lexeme, msg string, args ...any) error {
	return &errors.SyntaxError{
		Kind:    k,
		Index:   -1,
		Offset:  offset,
		Line:    lc.Line,
		Column:  lc.Column,
		Lexeme:  lexeme,
		Message: fmt.Sprintf(msg, args...),
	}
}

var self = [...]Kind{LBrace, RBrace, LBracket, RBracket, Colon, Comma}

func selfDelim(ch rune) (Kind, bool) {
	i := strings.IndexRune("{}[]:,", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch rune) bool    { return '0' <= ch && ch <= '9' }
func isNumRune(ch rune) bool  { return isDigit(ch) || strings.ContainsRune(".eE+-", ch) }
func isNumStart(ch rune) bool { return isNumRune(ch) }
