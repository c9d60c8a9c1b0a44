package validator

import (
	"github.com/creachadair/mds/mapset"
	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/lexer"
)

// A Scope records the keys seen so far in one object literal. Each object
// gets its own; nested objects never see their parent's keys.
type Scope struct {
	seen  mapset.Set[string]
	order []string
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{seen: mapset.New[string]()}
}

// Claim adds the key to s, or reports DuplicateKey if it is already present.
func (s *Scope) Claim(tok lexer.Token) *errors.SyntaxError {
	if s.seen.Has(tok.Text) {
		return fail(errors.DuplicateKey, tok, "duplicate key %q", tok.Text)
	}
	s.seen.Add(tok.Text)
	s.order = append(s.order, tok.Text)
	return nil
}

// Keys returns the claimed keys in the order they were claimed.
func (s *Scope) Keys() []string { return s.order }

// Len reports the number of claimed keys.
func (s *Scope) Len() int { return s.seen.Len() }
