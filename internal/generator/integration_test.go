package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcncl/jsontree/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_ParserGeneratorFiles(t *testing.T) {
	input := `{"a":[1,2,3],"b":{"c":"d"}}`
	res, err := parser.ParseString(input)
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := NewGenerator().GenerateFiles(res, dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	read := func(name string) string {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return string(data)
	}

	tokens := read("tokenizedOutput.txt")
	assert.Equal(t, 19, strings.Count(tokens, "\n"))

	parseTree := read("parsetree.txt")
	assert.Equal(t, 19, strings.Count(parseTree, "- Leaf: "))
	assert.Equal(t, 3, strings.Count(parseTree, "- Node: "))

	expectedAST := `- Node: dict
  - Node: a : list
    - Leaf: 1
    - Leaf: 2
    - Leaf: 3
  - Node: b : dict
    - Leaf: c : d
`
	assert.Equal(t, expectedAST, read("AST.txt"))
}

func TestIntegration_ArrayOfObjects(t *testing.T) {
	res, err := parser.ParseString(`[{"id": 1}, {"id": 2, "tags": []}]`)
	require.NoError(t, err)

	arts, err := NewGenerator().Generate(res)
	require.NoError(t, err)

	expectedAST := `- Node: list
  - Node: [0] : dict
    - Leaf: id : 1
  - Node: [1] : dict
    - Leaf: id : 2
    - Node: tags : list
`
	assert.Equal(t, expectedAST, arts[2].Content)
}
