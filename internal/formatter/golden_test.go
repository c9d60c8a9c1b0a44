package formatter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mcncl/jsontree/internal/parser"
	"github.com/stretchr/testify/require"
)

func TestGolden_Samples(t *testing.T) {
	tests := []struct {
		sample string
		golden string
		parse  bool
	}{
		{"user.json", "user.ast.txt", false},
		{"matrix.json", "matrix.ast.txt", false},
		{"matrix.json", "matrix.parsetree.txt", true},
	}

	dir := filepath.Join("..", "..", "testdata", "samples")
	f := NewFormatter()
	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			res, err := parser.ParseFile(filepath.Join(dir, tt.sample))
			require.NoError(t, err)

			want, err := os.ReadFile(filepath.Join(dir, tt.golden))
			require.NoError(t, err)

			var got string
			if tt.parse {
				got = f.FormatTree(res.ParseTree)
			} else {
				got = f.FormatTree(res.AST)
			}
			if diff := cmp.Diff(string(want), got); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", tt.golden, diff)
			}
		})
	}
}
