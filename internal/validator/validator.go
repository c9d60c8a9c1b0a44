// Package validator holds the semantic rules the parser applies to keys,
// values and array elements as it inserts them.
//
// Every check returns nil when the token is acceptable, or an
// *errors.SyntaxError positioned at the token. The token index is left at -1
// for the caller to fill in, since only the parser knows it.
package validator

import (
	"fmt"
	"strings"

	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/lexer"
)

var reserved = map[string]bool{"true": true, "false": true, "null": true}

// IsReservedWord reports whether s is one of the keywords true, false, null.
func IsReservedWord(s string) bool { return reserved[s] }

// CheckKey validates an object key. Duplicates are checked by Scope.
func CheckKey(tok lexer.Token) *errors.SyntaxError {
	switch {
	case strings.TrimSpace(tok.Text) == "":
		return fail(errors.EmptyKey, tok, "object key is empty")
	case IsReservedWord(tok.Text):
		return fail(errors.ReservedWordAsKey, tok, "reserved word %q used as a key", tok.Text)
	}
	return nil
}

// CheckString rejects string values spelling a reserved word.
func CheckString(tok lexer.Token) *errors.SyntaxError {
	if IsReservedWord(tok.Text) {
		return fail(errors.ReservedWordAsString, tok, "reserved word %q used as a string value", tok.Text)
	}
	return nil
}

// CheckNumber applies the dialect's format rules to a number the tokenizer
// already accepted: no leading or trailing decimal point, and no leading
// zero or plus sign.
func CheckNumber(tok lexer.Token) *errors.SyntaxError {
	s := tok.Text
	switch {
	case strings.HasPrefix(s, ".") || strings.HasSuffix(s, "."):
		return fail(errors.InvalidDecimal, tok, "invalid decimal %q", s)
	case strings.HasPrefix(s, "0") || strings.HasPrefix(s, "+"):
		return fail(errors.InvalidNumberLeadingChar, tok, "number %q has a leading %q", s, s[:1])
	}
	return nil
}

// CheckElementKind requires tok to have the same kind as the first element
// of its array. Nested containers compare by their opening token only.
func CheckElementKind(first lexer.Kind, tok lexer.Token) *errors.SyntaxError {
	if tok.Kind != first {
		return fail(errors.InconsistentListType, tok,
			"list element of type %s does not match first element type %s", tok.Kind, first)
	}
	return nil
}

func fail(k errors.Kind, tok lexer.Token, msg string, args ...any) *errors.SyntaxError {
	return &errors.SyntaxError{
		Kind:    k,
		Index:   -1,
		Offset:  tok.Span.Pos,
		Line:    tok.First.Line,
		Column:  tok.First.Column,
		Lexeme:  tok.Lexeme(),
		Message: fmt.Sprintf(msg, args...),
	}
}
