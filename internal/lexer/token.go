package lexer

import (
	"fmt"
	"strings"
)

// Kind is the type of a lexical token in the document grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid  Kind = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LBracket             // left square bracket "["
	RBracket             // right square bracket "]"
	Colon                // colon ":"
	Comma                // comma ","
	String               // quoted string
	Number               // numeric literal
	Bool                 // constant: true or false
	Null                 // constant: null
)

var kindStr = [...]string{
	Invalid:  "INVALID",
	LBrace:   "LBRACE",
	RBrace:   "RBRACE",
	LBracket: "LBRACKET",
	RBracket: "RBRACKET",
	Colon:    "COLON",
	Comma:    "COMMA",
	String:   "STRING",
	Number:   "NUMBER",
	Bool:     "BOOL",
	Null:     "NULL",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

// IsPunct reports whether k is a structural token.
func (k Kind) IsPunct() bool { return k >= LBrace && k <= Comma }

// IsValue reports whether k can begin a value.
func (k Kind) IsValue() bool {
	switch k {
	case LBrace, LBracket, String, Number, Bool, Null:
		return true
	}
	return false
}

// A Span describes a contiguous span of the input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Token is a single classified lexical unit. Text holds the literal value:
// the punctuation character, the string content between the quotes (escapes
// kept verbatim minus the backslash), the number text, or the keyword.
type Token struct {
	Kind  Kind
	Text  string
	Span  Span
	First LineCol
}

// Lexeme returns the token in KIND:value form, e.g. "STRING:abc",
// "NUMBER:12", "BOOL:TRUE". Punctuation and null render as the bare kind.
func (t Token) Lexeme() string {
	switch t.Kind {
	case String, Number:
		return t.Kind.String() + ":" + t.Text
	case Bool:
		return t.Kind.String() + ":" + strings.ToUpper(t.Text)
	default:
		return t.Kind.String()
	}
}

func (t Token) String() string { return t.Lexeme() }

// Tokens is an ordered token sequence as produced by Tokenize.
type Tokens []Token

// Kinds returns the kind of each token, indexed like ts.
func (ts Tokens) Kinds() []Kind {
	out := make([]Kind, len(ts))
	for i, t := range ts {
		out[i] = t.Kind
	}
	return out
}

// Lexemes returns the lexeme of each token, indexed like ts.
func (ts Tokens) Lexemes() []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Lexeme()
	}
	return out
}
