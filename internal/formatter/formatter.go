// Package formatter renders token sequences and trees as text for the
// console and for the output artifacts.
package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcncl/jsontree/internal/config"
	"github.com/mcncl/jsontree/internal/lexer"
	"github.com/mcncl/jsontree/internal/tree"
	"github.com/olekukonko/tablewriter"
)

// Formatter renders trees one node per line, indented by depth, with a
// prefix marking leaves and interior nodes.
type Formatter struct {
	indent     int
	nodePrefix string
	leafPrefix string
}

// NewFormatter creates a new Formatter with the default layout
func NewFormatter() *Formatter {
	return NewFormatterWithConfig(config.NewConfig())
}

// NewFormatterWithConfig creates a new Formatter using the format settings of cfg
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{
		indent:     cfg.Format.Indent,
		nodePrefix: cfg.Format.NodePrefix,
		leafPrefix: cfg.Format.LeafPrefix,
	}
}

// FormatTree renders t in pre-order.
func (f *Formatter) FormatTree(t tree.Walker) string {
	var sb strings.Builder
	_ = f.WriteTree(&sb, t)
	return sb.String()
}

// WriteTree writes t to w in pre-order, one node per line.
func (f *Formatter) WriteTree(w io.Writer, t tree.Walker) error {
	for e := range t.Walk() {
		prefix := f.nodePrefix
		if e.Leaf {
			prefix = f.leafPrefix
		}
		line := strings.Repeat(" ", e.Depth*f.indent) + prefix + e.Label + "\n"
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("failed to write tree: %w", err)
		}
	}
	return nil
}

// FormatTokens renders one lexeme per line.
func (f *Formatter) FormatTokens(toks lexer.Tokens) string {
	if len(toks) == 0 {
		return ""
	}
	return strings.Join(toks.Lexemes(), "\n") + "\n"
}

// WriteTokenTable writes toks to w as an aligned table with each token's
// index, kind, text and source position.
func (f *Formatter) WriteTokenTable(w io.Writer, toks lexer.Tokens) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "KIND", "TEXT", "POSITION"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")

	for i, tok := range toks {
		table.Append([]string{
			strconv.Itoa(i),
			tok.Kind.String(),
			tok.Text,
			tok.First.String(),
		})
	}
	table.Render()
}
