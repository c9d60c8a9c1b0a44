package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mcncl/jsontree/internal/config"
	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/formatter"
	"github.com/mcncl/jsontree/internal/parser"
)

// Artifact is one rendered output file.
type Artifact struct {
	Name    string // file name within the output directory
	Content string
}

// Generator turns a parse result into the token list, parse tree and AST
// artifacts.
type Generator struct {
	cfg       *config.Config
	formatter *formatter.Formatter
}

// NewGenerator creates a new Generator with the default configuration
func NewGenerator() *Generator {
	return NewGeneratorWithConfig(config.NewConfig())
}

// NewGeneratorWithConfig creates a new Generator with custom configuration
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	return &Generator{
		cfg:       cfg,
		formatter: formatter.NewFormatterWithConfig(cfg),
	}
}

// Generate renders the three artifacts of res, in the order tokens, parse
// tree, AST.
func (g *Generator) Generate(res parser.Result) ([]Artifact, error) {
	if res.ParseTree == nil || res.AST == nil {
		return nil, errors.NewRenderError("parse result has no trees", nil)
	}

	return []Artifact{
		{Name: g.cfg.Output.TokensFile, Content: g.formatter.FormatTokens(res.Tokens)},
		{Name: g.cfg.Output.ParseTreeFile, Content: g.formatter.FormatTree(res.ParseTree)},
		{Name: g.cfg.Output.ASTFile, Content: g.formatter.FormatTree(res.AST)},
	}, nil
}

// WriteArtifacts writes arts into dir, creating it if needed, and returns
// the paths written.
func (g *Generator) WriteArtifacts(dir string, arts []Artifact) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewOutputError(fmt.Sprintf("failed to create output directory '%s'", dir), err)
	}

	paths := make([]string, 0, len(arts))
	for _, art := range arts {
		path := filepath.Join(dir, art.Name)
		if err := os.WriteFile(path, []byte(art.Content), 0o644); err != nil {
			return paths, errors.NewOutputError(fmt.Sprintf("failed to write '%s'", path), err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// GenerateFiles renders res and writes the artifacts into dir.
func (g *Generator) GenerateFiles(res parser.Result, dir string) ([]string, error) {
	arts, err := g.Generate(res)
	if err != nil {
		return nil, err
	}
	return g.WriteArtifacts(dir, arts)
}
