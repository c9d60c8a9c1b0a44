package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	apperrors "github.com/mcncl/jsontree/internal/errors"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Default values used by NewConfig.
const (
	DefaultMaxDepth      = 512
	DefaultOutputDir     = "output"
	DefaultTokensFile    = "tokenizedOutput.txt"
	DefaultParseTreeFile = "parsetree.txt"
	DefaultASTFile       = "AST.txt"
	DefaultIndent        = 2
	DefaultNodePrefix    = "- Node: "
	DefaultLeafPrefix    = "- Leaf: "
)

// Tree selection values for OutputConfig.Trees.
const (
	TreesParse = "parse"
	TreesAST   = "ast"
	TreesBoth  = "both"
)

// Config represents the complete configuration for jsontree
type Config struct {
	Parser ParserConfig `yaml:"parser" json:"parser"`
	Output OutputConfig `yaml:"output" json:"output"`
	Format FormatConfig `yaml:"format" json:"format"`
	Dev    DevConfig    `yaml:"dev" json:"dev"`
}

// ParserConfig controls parsing limits
type ParserConfig struct {
	MaxDepth int `yaml:"max_depth" json:"max_depth"`
}

// OutputConfig controls where artifacts are written and which trees are shown
type OutputConfig struct {
	Dir           string `yaml:"dir" json:"dir"`
	TokensFile    string `yaml:"tokens_file" json:"tokens_file"`
	ParseTreeFile string `yaml:"parse_tree_file" json:"parse_tree_file"`
	ASTFile       string `yaml:"ast_file" json:"ast_file"`
	Trees         string `yaml:"trees" json:"trees"`
}

// FormatConfig controls how trees are rendered as text
type FormatConfig struct {
	Indent     int    `yaml:"indent" json:"indent"`
	NodePrefix string `yaml:"node_prefix" json:"node_prefix"`
	LeafPrefix string `yaml:"leaf_prefix" json:"leaf_prefix"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug    bool   `yaml:"debug" json:"debug"`
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			MaxDepth: DefaultMaxDepth,
		},
		Output: OutputConfig{
			Dir:           DefaultOutputDir,
			TokensFile:    DefaultTokensFile,
			ParseTreeFile: DefaultParseTreeFile,
			ASTFile:       DefaultASTFile,
			Trees:         TreesBoth,
		},
		Format: FormatConfig{
			Indent:     DefaultIndent,
			NodePrefix: DefaultNodePrefix,
			LeafPrefix: DefaultLeafPrefix,
		},
		Dev: DevConfig{
			Debug:    false,
			LogLevel: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file, or from a JSON file that
// may contain comments and trailing commas when the extension is .json or
// .hujson.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".hujson":
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if err := json.Unmarshal(std, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var configNames = []string{
	".jsontree.yml", ".jsontree.yaml", ".jsontree.json",
	"jsontree.yml", "jsontree.yaml",
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.Parser.MaxDepth < 1:
		return fmt.Errorf("%w: parser.max_depth must be at least 1, got %d", apperrors.ErrInvalidConfig, c.Parser.MaxDepth)
	case c.Format.Indent < 0:
		return fmt.Errorf("%w: format.indent must not be negative, got %d", apperrors.ErrInvalidConfig, c.Format.Indent)
	case !slices.Contains([]string{TreesParse, TreesAST, TreesBoth}, c.Output.Trees):
		return fmt.Errorf("%w: output.trees must be one of parse, ast, both; got %q", apperrors.ErrInvalidConfig, c.Output.Trees)
	}
	for name, file := range map[string]string{
		"tokens_file":     c.Output.TokensFile,
		"parse_tree_file": c.Output.ParseTreeFile,
		"ast_file":        c.Output.ASTFile,
	} {
		if strings.TrimSpace(file) == "" || filepath.Base(file) != file {
			return fmt.Errorf("%w: output.%s must be a plain file name, got %q", apperrors.ErrInvalidConfig, name, file)
		}
	}
	return nil
}

// ShowParseTree reports whether the parse tree is selected for display.
func (c *Config) ShowParseTree() bool { return c.Output.Trees != TreesAST }

// ShowAST reports whether the AST is selected for display.
func (c *Config) ShowAST() bool { return c.Output.Trees != TreesParse }

// MergeConfigs merges CLI overrides into a base config.
// Non-zero values from override take precedence over base values.
func MergeConfigs(base, override *Config) *Config {
	merged := *base

	if override.Parser.MaxDepth > 0 {
		merged.Parser.MaxDepth = override.Parser.MaxDepth
	}
	if override.Output.Dir != "" {
		merged.Output.Dir = override.Output.Dir
	}
	if override.Output.Trees != "" {
		merged.Output.Trees = override.Output.Trees
	}
	if override.Dev.LogLevel != "" {
		merged.Dev.LogLevel = override.Dev.LogLevel
	}
	// A debug flag can only switch debugging on.
	merged.Dev.Debug = base.Dev.Debug || override.Dev.Debug

	return &merged
}

// LoadConfigWithCLI loads config with CLI argument precedence: CLI flags,
// then the config file, then defaults. Zero values leave the file's setting
// in place.
func LoadConfigWithCLI(configPath string, cliMaxDepth int, cliOutputDir string, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	cfg = MergeConfigs(cfg, &Config{
		Parser: ParserConfig{MaxDepth: cliMaxDepth},
		Output: OutputConfig{Dir: cliOutputDir},
		Dev:    DevConfig{Debug: cliDebug},
	})
	if cfg.Dev.Debug && cfg.Dev.LogLevel == "info" {
		cfg.Dev.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
