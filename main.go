package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsontree/internal/config"
	"github.com/mcncl/jsontree/internal/errors"
	"github.com/mcncl/jsontree/internal/formatter"
	"github.com/mcncl/jsontree/internal/generator"
	"github.com/mcncl/jsontree/internal/logutil"
	"github.com/mcncl/jsontree/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input document. If not specified, reads from stdin." short:"i" type:"path"`
	OutputDir   string `help:"Directory to write the token, parse tree and AST files to. Implies --write." short:"o" type:"path"`
	Write       bool   `help:"Write the output files to the configured output directory instead of printing trees." short:"w"`
	Config      string `help:"Path to config file. If not specified, searches for .jsontree.yml in the current and parent directories." short:"c" type:"path"`
	MaxDepth    int    `help:"Maximum container nesting depth (0 uses the config value)." short:"m"`
	Tokens      bool   `help:"Print the token table before the trees." short:"t"`
	Tree        string `help:"Which trees to print: parse, ast or both. If not specified, uses the config value."`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing a document to be pasted with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger *slog.Logger
	Stdout io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("jsontree"),
		kong.Description("A tool to tokenize a JSON-like document and print its parse tree and AST"),
		kong.UsageOnError(),
	)

	// No arguments on a terminal means the user wants to paste a document
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage has already been shown by kong.UsageOnError()
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsontree version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	ctx := &Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Logger: logutil.NewLogger(os.Stderr, logutil.ParseLevel(cfg.Dev.LogLevel)),
		Stdout: os.Stdout,
	}
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		if ctx.Debug {
			fmt.Fprintf(os.Stderr, "Details: %v\n", err)
		}
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsontree --help\n")
		os.Exit(1)
	}
}

// loadConfig resolves the configuration from the config file, if any, and
// the command line.
func loadConfig() (*config.Config, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, CLI.MaxDepth, CLI.OutputDir, CLI.Debug)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to load config '%s'", configPath), err)
	}
	if CLI.Tree != "" {
		cfg.Output.Trees = CLI.Tree
		if err := cfg.Validate(); err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("invalid --tree value %q", CLI.Tree), err)
		}
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Logger == nil {
		ctx.Logger = logutil.Discard()
		if ctx.Debug {
			ctx.Logger = logutil.NewLogger(os.Stderr, slog.LevelDebug)
		}
	}
	if ctx.Stdout == nil {
		ctx.Stdout = os.Stdout
	}

	// 1. Tokenize and parse the input
	res, err := parseInput(ctx)
	if err != nil {
		return err
	}
	ctx.Logger.Debug("document accepted", "tokens", len(res.Tokens), "root", res.AST.Kind)

	// 2. Write the artifacts or print the trees
	return writeOutput(ctx, res)
}

func newParser(ctx *Context) *parser.Parser {
	return parser.New(
		parser.WithMaxDepth(ctx.Config.Parser.MaxDepth),
		parser.WithLogger(ctx.Logger),
	)
}

// parseInput reads the document from file or stdin
func parseInput(ctx *Context) (parser.Result, error) {
	p := newParser(ctx)

	if CLI.Input != "" {
		return p.ParseFile(CLI.Input)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return parser.Result{}, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput(ctx)
		}
		return parser.Result{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	return p.Parse(os.Stdin)
}

// writeOutput writes the artifacts to the output directory when requested,
// and prints the selected trees to stdout otherwise
func writeOutput(ctx *Context, res parser.Result) error {
	cfg := ctx.Config

	if CLI.Tokens {
		formatter.NewFormatterWithConfig(cfg).WriteTokenTable(ctx.Stdout, res.Tokens)
		fmt.Fprintln(ctx.Stdout)
	}

	if CLI.Write || CLI.OutputDir != "" {
		paths, err := generator.NewGeneratorWithConfig(cfg).GenerateFiles(res, cfg.Output.Dir)
		if err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", path)
		}
		return nil
	}

	f := formatter.NewFormatterWithConfig(cfg)
	if cfg.ShowParseTree() {
		if err := printTree(ctx.Stdout, "Parse tree:", func(w io.Writer) error { return f.WriteTree(w, res.ParseTree) }); err != nil {
			return err
		}
	}
	if cfg.ShowAST() {
		if cfg.ShowParseTree() {
			fmt.Fprintln(ctx.Stdout)
		}
		if err := printTree(ctx.Stdout, "AST:", func(w io.Writer) error { return f.WriteTree(w, res.AST) }); err != nil {
			return err
		}
	}
	return nil
}

func printTree(w io.Writer, title string, write func(io.Writer) error) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	if err := write(w); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste a
// document and signal completion with Ctrl+D (EOF)
func readInteractiveInput(ctx *Context) (parser.Result, error) {
	fmt.Fprintln(os.Stderr, "jsontree Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your document below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return parser.Result{}, errors.NewInputError("error reading input", err)
	}
	if len(data) == 0 {
		return parser.Result{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing document...")
	return newParser(ctx).Parse(bytes.NewReader(data))
}
