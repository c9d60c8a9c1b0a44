package parser

import (
	"fmt"
	"log/slog"

	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/lexer"
	"github.com/mcncl/jsontree/internal/logutil"
	"github.com/mcncl/jsontree/internal/tree"
	"github.com/mcncl/jsontree/internal/validator"
)

// state is the per-document parse state. Every method peeks before it
// inserts anything, so the builder only ever grows.
type state struct {
	cur *Cursor
	b   *tree.Builder
	max int
	log *slog.Logger
}

// document := object | array
func (s *state) document() error {
	tok, err := s.cur.Peek()
	if err != nil {
		return s.fail(errors.IllegalStart, tok, "document is empty: expected '{' or '['")
	}
	switch tok.Kind {
	case lexer.LBrace:
		err = s.object()
	case lexer.LBracket:
		err = s.array()
	default:
		return s.fail(errors.IllegalStart, tok, "document must start with '{' or '[', found %s", tok.Lexeme())
	}
	if err != nil {
		return err
	}
	if !s.cur.Done() {
		tok, _ := s.cur.Peek()
		return s.fail(errors.TrailingTokens, tok, "unexpected %s after the top-level %s", tok.Lexeme(), s.b.AST().Kind)
	}
	return nil
}

// open consumes the opening token of a container of the given kind.
func (s *state) open(kind tree.ContainerKind) error {
	tok, _ := s.cur.Peek()
	if s.b.Depth() >= s.max {
		return s.fail(errors.NestingTooDeep, tok, "containers nested deeper than %d", s.max)
	}
	s.cur.Advance()
	s.b.Open(kind, tok)
	logutil.Trace(s.log, "open container", "kind", kind, "depth", s.b.Depth(), "at", tok.First)
	return nil
}

// object := '{' '}' | '{' member (',' member)* '}'
func (s *state) object() error {
	if err := s.open(tree.Dict); err != nil {
		return err
	}
	if done, err := s.closeIfEmpty(lexer.RBrace); done || err != nil {
		return err
	}

	scope := validator.NewScope()
	for {
		if err := s.member(scope); err != nil {
			return err
		}
		done, err := s.next(lexer.RBrace)
		if err != nil {
			return err
		}
		if done {
			logutil.Trace(s.log, "object keys", "count", scope.Len(), "keys", scope.Keys())
			return nil
		}
	}
}

// member := STRING ':' value
func (s *state) member(scope *validator.Scope) error {
	key, err := s.cur.Peek()
	if err != nil {
		return err
	}
	if key.Kind != lexer.String {
		return s.fail(errors.UnexpectedToken, key, "expected a string key, found %s", key.Lexeme())
	}
	if se := validator.CheckKey(key); se != nil {
		return s.at(se)
	}
	if se := scope.Claim(key); se != nil {
		return s.at(se)
	}
	s.cur.Advance()
	s.b.Key(key)

	colon, err := s.cur.Peek()
	if err != nil {
		return err
	}
	if colon.Kind != lexer.Colon {
		return s.fail(errors.ExpectedColon, colon, "expected ':' after key %q, found %s", key.Text, colon.Lexeme())
	}
	s.cur.Advance()
	s.b.Punct(colon)

	return s.value()
}

// array := '[' ']' | '[' value (',' value)* ']'
func (s *state) array() error {
	if err := s.open(tree.List); err != nil {
		return err
	}
	if done, err := s.closeIfEmpty(lexer.RBracket); done || err != nil {
		return err
	}

	var first lexer.Kind
	for i := 0; ; i++ {
		tok, err := s.cur.Peek()
		if err != nil {
			return err
		}
		if !tok.Kind.IsValue() {
			return s.fail(errors.UnexpectedToken, tok, "expected a list element, found %s", tok.Lexeme())
		}
		if i == 0 {
			first = tok.Kind
		} else if se := validator.CheckElementKind(first, tok); se != nil {
			return s.at(se)
		}
		if err := s.value(); err != nil {
			return err
		}
		if done, err := s.next(lexer.RBracket); done || err != nil {
			return err
		}
	}
}

// value := STRING | NUMBER | BOOL | NULL | object | array
func (s *state) value() error {
	tok, err := s.cur.Peek()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case lexer.LBrace:
		return s.object()
	case lexer.LBracket:
		return s.array()
	case lexer.String:
		if se := validator.CheckString(tok); se != nil {
			return s.at(se)
		}
	case lexer.Number:
		if se := validator.CheckNumber(tok); se != nil {
			return s.at(se)
		}
	case lexer.Bool, lexer.Null:
	default:
		return s.fail(errors.UnexpectedToken, tok, "expected a value, found %s", tok.Lexeme())
	}
	s.cur.Advance()
	s.b.Value(tok)
	return nil
}

// closeIfEmpty closes the innermost container if the next token is its
// closing token.
func (s *state) closeIfEmpty(end lexer.Kind) (bool, error) {
	tok, err := s.cur.Peek()
	if err != nil {
		return false, err
	}
	if tok.Kind != end {
		return false, nil
	}
	s.close(tok)
	return true, nil
}

// next consumes the separator after a member or element. It reports true
// once the container is closed.
func (s *state) next(end lexer.Kind) (bool, error) {
	tok, err := s.cur.Peek()
	if err != nil {
		return false, err
	}
	switch tok.Kind {
	case end:
		s.close(tok)
		return true, nil
	case lexer.Comma:
		s.cur.Advance()
		s.b.Punct(tok)
		after, err := s.cur.Peek()
		if err != nil {
			return false, err
		}
		if after.Kind == end {
			se := s.fail(errors.TrailingComma, tok, "trailing comma before %s", after.Text)
			se.Index-- // point at the comma, not the closing token
			return false, se
		}
		return false, nil
	}
	return false, s.fail(errors.UnexpectedToken, tok, "expected ',' or %s, found %s", end, tok.Lexeme())
}

func (s *state) close(tok lexer.Token) {
	s.cur.Advance()
	s.b.Close(tok)
	logutil.Trace(s.log, "close container", "depth", s.b.Depth()+1, "at", tok.First)
}

// fail reports an error of kind k at tok, which is the token at the cursor.
func (s *state) fail(k errors.Kind, tok lexer.Token, msg string, args ...any) *errors.SyntaxError {
	lexeme := tok.Lexeme()
	if s.cur.Done() {
		lexeme = "end of input"
	}
	return &errors.SyntaxError{
		Kind:    k,
		Index:   s.cur.Pos(),
		Offset:  tok.Span.Pos,
		Line:    tok.First.Line,
		Column:  tok.First.Column,
		Lexeme:  lexeme,
		Message: fmt.Sprintf(msg, args...),
	}
}

// at fills in the token index of a validator error.
func (s *state) at(se *errors.SyntaxError) *errors.SyntaxError {
	se.Index = s.cur.Pos()
	return se
}
