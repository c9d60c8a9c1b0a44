package errors

import (
	"errors"
	"fmt"

	"github.com/iancoleman/strcase"
)

// Kind identifies the rule a document violated.
type Kind int

// Lexical, structural and semantic error kinds.
const (
	Unknown Kind = iota

	// Tokenizer
	UnexpectedCharacter
	UnterminatedString
	UnterminatedEscape
	InvalidNumber
	InvalidKeyword

	// Grammar
	MissingEndOfInput
	IllegalStart
	TrailingTokens
	UnexpectedToken
	TrailingComma
	ExpectedColon

	// Semantic rules
	EmptyKey
	ReservedWordAsKey
	DuplicateKey
	ReservedWordAsString
	InvalidDecimal
	InvalidNumberLeadingChar
	InconsistentListType

	NestingTooDeep
)

var kindStr = [...]string{
	Unknown:                  "Unknown",
	UnexpectedCharacter:      "UnexpectedCharacter",
	UnterminatedString:       "UnterminatedString",
	UnterminatedEscape:       "UnterminatedEscape",
	InvalidNumber:            "InvalidNumber",
	InvalidKeyword:           "InvalidKeyword",
	MissingEndOfInput:        "MissingEndOfInput",
	IllegalStart:             "IllegalStart",
	TrailingTokens:           "TrailingTokens",
	UnexpectedToken:          "UnexpectedToken",
	TrailingComma:            "TrailingComma",
	ExpectedColon:            "ExpectedColon",
	EmptyKey:                 "EmptyKey",
	ReservedWordAsKey:        "ReservedWordAsKey",
	DuplicateKey:             "DuplicateKey",
	ReservedWordAsString:     "ReservedWordAsString",
	InvalidDecimal:           "InvalidDecimal",
	InvalidNumberLeadingChar: "InvalidNumberLeadingChar",
	InconsistentListType:     "InconsistentListType",
	NestingTooDeep:           "NestingTooDeep",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindStr) {
		return kindStr[Unknown]
	}
	return kindStr[k]
}

// Code returns a stable snake_case identifier for k, e.g. "duplicate_key".
func (k Kind) Code() string { return strcase.ToSnake(k.String()) }

// Sentinels for use with errors.Is. Any *SyntaxError matches the sentinel of
// its kind regardless of position or message.
var (
	ErrUnexpectedCharacter      = &SyntaxError{Kind: UnexpectedCharacter}
	ErrUnterminatedString       = &SyntaxError{Kind: UnterminatedString}
	ErrUnterminatedEscape       = &SyntaxError{Kind: UnterminatedEscape}
	ErrInvalidNumber            = &SyntaxError{Kind: InvalidNumber}
	ErrInvalidKeyword           = &SyntaxError{Kind: InvalidKeyword}
	ErrMissingEndOfInput        = &SyntaxError{Kind: MissingEndOfInput}
	ErrIllegalStart             = &SyntaxError{Kind: IllegalStart}
	ErrTrailingTokens           = &SyntaxError{Kind: TrailingTokens}
	ErrUnexpectedToken          = &SyntaxError{Kind: UnexpectedToken}
	ErrTrailingComma            = &SyntaxError{Kind: TrailingComma}
	ErrExpectedColon            = &SyntaxError{Kind: ExpectedColon}
	ErrEmptyKey                 = &SyntaxError{Kind: EmptyKey}
	ErrReservedWordAsKey        = &SyntaxError{Kind: ReservedWordAsKey}
	ErrDuplicateKey             = &SyntaxError{Kind: DuplicateKey}
	ErrReservedWordAsString     = &SyntaxError{Kind: ReservedWordAsString}
	ErrInvalidDecimal           = &SyntaxError{Kind: InvalidDecimal}
	ErrInvalidNumberLeadingChar = &SyntaxError{Kind: InvalidNumberLeadingChar}
	ErrInconsistentListType     = &SyntaxError{Kind: InconsistentListType}
	ErrNestingTooDeep           = &SyntaxError{Kind: NestingTooDeep}
)

// SyntaxError is the concrete type of errors reported by the tokenizer and
// the parser. Index is the position of the offending token in the token
// sequence, or -1 for errors raised before tokenization completed.
type SyntaxError struct {
	Kind    Kind
	Index   int
	Offset  int // byte offset, 0-based
	Line    int // 1-based
	Column  int // byte offset within the line, 0-based
	Lexeme  string
	Message string
}

// Error satisfies the error interface.
func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at %d:%d: %s", e.Kind, e.Line, e.Column, e.Message)
}

// Is reports whether target is a *SyntaxError of the same kind.
func (e *SyntaxError) Is(target error) bool {
	t, ok := target.(*SyntaxError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindOf reports the kind of the first *SyntaxError in err's chain.
func KindOf(err error) (Kind, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return Unknown, false
}
