package e2e_test

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEndToEnd_ComplexNestedStructures runs the CLI on a deeply structured
// document and checks all three artifacts
func TestEndToEnd_ComplexNestedStructures(t *testing.T) {
	tempDir := t.TempDir()

	content := `{
		"id": 12345,
		"uuid": "550e8400-e29b-41d4-a716-446655440000",
		"updated_at": null,
		"config": {
			"enabled": true,
			"timeout_seconds": 30,
			"features": ["logging", "metrics", "alerting"],
			"rate_limits": {
				"per_second": 100,
				"burst": 1.5e2
			},
			"environments": {
				"development": {"debug": true, "log_level": "debug"},
				"production": {"debug": false, "log_level": "info"}
			}
		},
		"users": [
			{
				"id": 1,
				"name": "Alice",
				"roles": ["admin", "user"],
				"metadata": {"login_count": 42}
			},
			{
				"id": 2,
				"name": "Bob",
				"roles": [],
				"metadata": {}
			}
		],
		"matrix": [[1, 2], [3, 4]],
		"empty": {}
	}`
	inputFile := filepath.Join(tempDir, "complex.json")
	require.NoError(t, os.WriteFile(inputFile, []byte(content), 0o644))
	outputDir := filepath.Join(tempDir, "out")

	cmd := exec.Command("go", "run", "../../main.go", "-i", inputFile, "-o", outputDir)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	read := func(name string) string {
		data, err := os.ReadFile(filepath.Join(outputDir, name))
		require.NoError(t, err)
		return string(data)
	}

	// Every token is written on its own line and appears once in the parse tree
	tokens := read("tokenizedOutput.txt")
	parseTree := read("parsetree.txt")
	tokenCount := strings.Count(tokens, "\n")
	assert.Equal(t, tokenCount, strings.Count(parseTree, "- Leaf: "))
	assert.Contains(t, tokens, "STRING:550e8400-e29b-41d4-a716-446655440000\n")
	assert.Contains(t, tokens, "NUMBER:1.5e2\n")
	assert.Contains(t, tokens, "BOOL:FALSE\n")

	ast := read("AST.txt")
	assert.True(t, strings.HasPrefix(ast, "- Node: dict\n  - Leaf: id : 12345\n"))
	assert.Contains(t, ast, "  - Leaf: updated_at : null\n")
	assert.Contains(t, ast, "  - Node: config : dict\n    - Leaf: enabled : true\n")
	assert.Contains(t, ast, "    - Node: features : list\n      - Leaf: logging\n")
	assert.Contains(t, ast, "      - Node: development : dict\n        - Leaf: debug : true\n")
	assert.Contains(t, ast, "  - Node: users : list\n    - Node: [0] : dict\n      - Leaf: id : 1\n")
	assert.Contains(t, ast, "    - Node: [1] : dict\n      - Leaf: id : 2\n")
	assert.Contains(t, ast, "      - Node: roles : list\n      - Node: metadata : dict\n")
	assert.Contains(t, ast, "  - Node: matrix : list\n    - Node: [0] : list\n      - Leaf: 1\n")
	assert.True(t, strings.HasSuffix(ast, "  - Node: empty : dict\n"))
	assert.NotContains(t, ast, "- Leaf: {")
	assert.NotContains(t, ast, "- Leaf: ,")
}

// TestEndToEnd_HomogeneousArrays checks the list typing rule through the CLI
func TestEndToEnd_HomogeneousArrays(t *testing.T) {
	// Objects of different shapes share one element type
	cmd := exec.Command("go", "run", "../../main.go", "--tree", "ast")
	cmd.Stdin = strings.NewReader(`{
		"mixed_objects": [
			{"type": "user", "id": 1, "name": "Alice"},
			{"type": "group", "id": 2, "members": 5},
			{"type": "user", "id": 3, "name": "Bob", "active": true}
		]
	}`)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run())
	assert.Contains(t, stdout.String(), "    - Node: [2] : dict\n")
	assert.Contains(t, stdout.String(), "      - Leaf: active : true\n")

	// Scalars of different kinds do not
	cmd = exec.Command("go", "run", "../../main.go")
	cmd.Stdin = strings.NewReader(`{"mixed_array": [1, "string", true, null]}`)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	assert.Error(t, cmd.Run())
	assert.Contains(t, stderr.String(), "[inconsistent_list_type]")
	assert.Contains(t, stderr.String(), "1:20")
}

// generateLargeDocument writes a list of itemCount records to filePath. Every
// number is written without a leading zero.
func generateLargeDocument(t testing.TB, filePath string, itemCount int) {
	rng := rand.New(rand.NewSource(42))

	var sb strings.Builder
	sb.WriteString("[\n")
	for i := 0; i < itemCount; i++ {
		if i > 0 {
			sb.WriteString(",\n")
		}
		tags := []string{`"tag1"`, `"tag2"`, `"tag3"`}[:rng.Intn(3)+1]
		fmt.Fprintf(&sb, `  {
    "id": %d,
    "guid": "%08x-%04x",
    "name": "Item %d",
    "description": "This is item number %d in the test dataset",
    "price": %d.%02d,
    "quantity": %d,
    "active": %t,
    "tags": [%s],
    "metadata": {"source": "test", "priority": %d, "score": -%d.5}
  }`,
			i+1,
			rng.Uint32(), rng.Uint32()&0xffff,
			i+1,
			i+1,
			rng.Intn(999)+1, rng.Intn(100),
			rng.Intn(99)+1,
			rng.Intn(2) == 1,
			strings.Join(tags, ", "),
			rng.Intn(5)+1,
			rng.Intn(9)+1,
		)
	}
	sb.WriteString("\n]\n")

	require.NoError(t, os.WriteFile(filePath, []byte(sb.String()), 0o644))
}

// TestEndToEnd_LargeDocument runs the CLI on a generated document
func TestEndToEnd_LargeDocument(t *testing.T) {
	tempDir := t.TempDir()
	inputFile := filepath.Join(tempDir, "large.json")
	generateLargeDocument(t, inputFile, 500)

	cmd := exec.Command("go", "run", "../../main.go", "-i", inputFile, "-o", filepath.Join(tempDir, "out"))
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "CLI command failed: %s", string(output))

	ast, err := os.ReadFile(filepath.Join(tempDir, "out", "AST.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(ast), "  - Node: [499] : dict\n")
}

// BenchmarkLargeDocument benchmarks the CLI with large documents
func BenchmarkLargeDocument(b *testing.B) {
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir := b.TempDir()

	sizes := []struct {
		name      string
		itemCount int
	}{
		{"100Items", 100},
		{"1000Items", 1000},
		{"10000Items", 10000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			inputFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", size.name))
			generateLargeDocument(b, inputFile, size.itemCount)
			outputDir := filepath.Join(tempDir, size.name+"_out")

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				cmd := exec.Command("go", "run", "../../main.go", "-i", inputFile, "-o", outputDir)
				output, err := cmd.CombinedOutput()
				require.NoError(b, err, "CLI command failed: %s", string(output))

				_, err = os.Stat(filepath.Join(outputDir, "AST.txt"))
				require.NoError(b, err, "Output file was not created")

				_ = os.RemoveAll(outputDir)
			}
		})
	}
}

// TestEndToEnd_EdgeCases tests various edge cases
func TestEndToEnd_EdgeCases(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
		isError  bool
	}{
		{
			name:     "EmptyObject",
			input:    `{}`,
			expected: "AST:\n- Node: dict\n",
		},
		{
			name:     "EmptyArray",
			input:    `[]`,
			expected: "Parse tree:\n- Node: list\n  - Leaf: [\n  - Leaf: ]\n",
		},
		{
			name:     "SingleValue",
			input:    `"just a string"`,
			expected: "[illegal_start]",
			isError:  true,
		},
		{
			name:     "SingleNumber",
			input:    `42`,
			expected: "[illegal_start]",
			isError:  true,
		},
		{
			name:     "TrailingComma",
			input:    `{"name": "Invalid",}`,
			expected: "[trailing_comma]",
			isError:  true,
		},
		{
			name:     "TrailingTokens",
			input:    `{} {}`,
			expected: "[trailing_tokens]",
			isError:  true,
		},
		{
			name:     "MissingEnd",
			input:    `{"a": [1, 2`,
			expected: "[missing_end_of_input]",
			isError:  true,
		},
		{
			name:     "ReservedWordKey",
			input:    `{"null": 1}`,
			expected: "[reserved_word_as_key]",
			isError:  true,
		},
		{
			name:     "ReservedWordString",
			input:    `["false"]`,
			expected: "[reserved_word_as_string]",
			isError:  true,
		},
		{
			name:     "BareDecimal",
			input:    `{"a": .5}`,
			expected: "[invalid_decimal]",
			isError:  true,
		},
		{
			name:     "UppercaseKeyword",
			input:    `[TRUE]`,
			expected: "[unexpected_character]",
			isError:  true,
		},
		{
			name:     "DeeplyNestedObject",
			input:    `{"level1":{"level2":{"level3":{"level4":{"level5":{"value":42}}}}}}`,
			expected: "          - Node: level5 : dict\n            - Leaf: value : 42\n",
		},
		{
			name:     "DeeplyNestedArray",
			input:    `[[[[[[42]]]]]]`,
			expected: "          - Node: [0] : list\n            - Leaf: 42\n",
		},
		{
			name:     "EscapedQuote",
			input:    `{"say": "a \"quoted\" word"}`,
			expected: `  - Leaf: say : a "quoted" word` + "\n",
		},
		{
			name:     "UnicodeText",
			input:    `{"greeting": "héllo wörld"}`,
			expected: "  - Leaf: greeting : héllo wörld\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := exec.Command("go", "run", "../../main.go")
			cmd.Stdin = strings.NewReader(tc.input)
			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr

			err := cmd.Run()
			if tc.isError {
				assert.Error(t, err, "expected an error for %s", tc.name)
				assert.Contains(t, stderr.String(), tc.expected)
				return
			}
			require.NoError(t, err, "CLI command failed: %s", stderr.String())
			assert.Contains(t, stdout.String(), tc.expected)
		})
	}
}
