// Package parser implements the recursive-descent parser that turns a token
// sequence into a parse tree and an abstract syntax tree, enforcing the
// dialect's semantic rules as each node is inserted.
package parser

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/lexer"
	"github.com/mcncl/jsontree/internal/logutil"
	"github.com/mcncl/jsontree/internal/tree"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultMaxDepth is the deepest container nesting accepted unless
// overridden with WithMaxDepth. The top-level container has depth 1.
const DefaultMaxDepth = 512

// Result is the outcome of a successful parse.
type Result struct {
	Tokens    lexer.Tokens
	ParseTree *tree.Node
	AST       *tree.Container
}

// Parser holds parse options. It carries no per-document state and may be
// shared between goroutines.
type Parser struct {
	maxDepth int
	log      *slog.Logger
}

// An Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the maximum container nesting depth. Values below 1
// leave the default in place.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithLogger sets the logger for debug and trace output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.log = l
		}
	}
}

// New returns a parser with the given options applied.
func New(opts ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth, log: logutil.Discard()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MaxDepth reports the configured nesting limit.
func (p *Parser) MaxDepth() int { return p.maxDepth }

// Parse reads the whole of r and parses it. A leading UTF-8 byte order mark
// is dropped.
func (p *Parser) Parse(r io.Reader) (Result, error) {
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return Result{}, errors.NewInputError("failed to read input", err)
	}
	return p.ParseString(string(data))
}

// ParseString tokenizes and parses s.
func (p *Parser) ParseString(s string) (Result, error) {
	if strings.TrimSpace(s) == "" {
		return Result{}, errors.NewInputError("input is empty", errors.ErrEmptyInput)
	}
	toks, err := lexer.Tokenize(s)
	if err != nil {
		return Result{}, errors.NewParsingError("tokenization failed", err)
	}
	p.log.Debug("tokenized input", "bytes", len(s), "tokens", len(toks))
	return p.ParseTokens(toks)
}

// ParseFile parses the document stored at filePath.
func (p *Parser) ParseFile(filePath string) (Result, error) {
	if strings.TrimSpace(filePath) == "" {
		return Result{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, errors.NewInputError(fmt.Sprintf("file '%s' not found", filePath), errors.ErrFileNotFound)
		}
		return Result{}, errors.NewInputError(fmt.Sprintf("failed to open file '%s'", filePath), err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.log.Warn("error closing input file", "path", filePath, "error", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return Result{}, errors.NewInputError(fmt.Sprintf("failed to get file stats for '%s'", filePath), err)
	}
	if stat.Size() == 0 {
		return Result{}, errors.NewInputError(fmt.Sprintf("input file '%s' is empty", filePath), errors.ErrFileEmpty)
	}
	return p.Parse(file)
}

// ParseTokens parses an already tokenized document.
func (p *Parser) ParseTokens(toks lexer.Tokens) (Result, error) {
	s := &state{
		cur: NewCursor(toks),
		b:   tree.NewBuilder(),
		max: p.maxDepth,
		log: p.log,
	}
	if err := s.document(); err != nil {
		return Result{}, errors.NewParsingError("document rejected", err)
	}
	p.log.Debug("parsed document", "tokens", len(toks), "root", s.b.AST().Kind)
	return Result{Tokens: toks, ParseTree: s.b.ParseTree(), AST: s.b.AST()}, nil
}

var std = New()

// Parse parses the document read from r with default options.
func Parse(r io.Reader) (Result, error) { return std.Parse(r) }

// ParseString parses s with default options.
func ParseString(s string) (Result, error) { return std.ParseString(s) }

// ParseFile parses the file at path with default options.
func ParseFile(path string) (Result, error) { return std.ParseFile(path) }

// MustParse is like ParseString but panics on error. It is meant for
// fixtures known to be valid.
func MustParse(s string) Result {
	res, err := ParseString(s)
	if err != nil {
		panic(fmt.Sprintf("parser.MustParse: %v", err))
	}
	return res
}
