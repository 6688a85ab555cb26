package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/mcncl/jsonnorm/internal/config"
	"github.com/mcncl/jsonnorm/internal/errors"
	"github.com/mcncl/jsonnorm/internal/formatter"
	"github.com/mcncl/jsonnorm/internal/logger"
	"github.com/mcncl/jsonnorm/internal/models"
	"github.com/mcncl/jsonnorm/internal/normalizer"
	"github.com/mcncl/jsonnorm/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	SortKeys      bool   `help:"Sort object keys." short:"s"`
	SortArrays    string `help:"Sort arrays of objects comparing by given attributes, comma separated (e.g. \"id,name\")." short:"a" placeholder:"ATTRS"`
	RemoveNulls   bool   `help:"Remove attributes with null values." short:"n"`
	InputFile     string `help:"Input from given file rather than from stdin." short:"f" type:"path"`
	OutputFile    string `help:"Output to given file rather than to stdout." short:"o" type:"path"`
	Config        string `help:"Path to a YAML config file. Defaults to the nearest .jsonnorm.yml." short:"c" type:"path"`
	Locale        string `help:"Locale used to compare string attributes (BCP 47, default \"en\")." short:"l"`
	StrictCompare bool   `help:"Fail instead of treating sort attributes of different types as equal."`
	Indent        string `help:"Indentation for each nesting level, spaces or tabs (default two spaces)."`
	Compact       bool   `help:"Write the output on a single line."`
	Debug         bool   `help:"Enable debug logging." short:"d"`
	Version       bool   `help:"Show version information." short:"v"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Log    logger.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonnorm"),
		kong.Description("Normalize JSON for deterministic comparison and diffing.\n\nOutput always ends with a trailing newline."),
		kong.UsageOnError(),
	)

	_, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if CLI.Version {
		fmt.Printf("jsonnorm version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err == nil {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonnorm --help\n")
		os.Exit(1)
	}
}

// newContext resolves the configuration from the config file and CLI flags
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, cliOverrides())
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{Debug: cfg.Dev.Debug})
	if configPath != "" {
		log.Debug("loaded config file", "path", configPath)
	}
	for _, w := range cfg.Warnings() {
		log.Warn(w)
	}
	return &Context{Debug: cfg.Dev.Debug, Config: cfg, Log: log}, nil
}

func cliOverrides() config.Overrides {
	return config.Overrides{
		SortKeys:      CLI.SortKeys,
		SortArrays:    CLI.SortArrays,
		RemoveNulls:   CLI.RemoveNulls,
		Locale:        CLI.Locale,
		StrictCompare: CLI.StrictCompare,
		Indent:        CLI.Indent,
		Compact:       CLI.Compact,
		Debug:         CLI.Debug,
	}
}

// run executes the main program logic
func run(ctx *Context) error {
	if ctx.Config == nil {
		ctx.Config = config.NewConfig()
	}
	if ctx.Log == nil {
		ctx.Log = logger.Discard()
	}

	// 1. Parse JSON input
	doc, err := parseInput(ctx)
	if err != nil {
		// Error is already wrapped by parseInput
		return err
	}
	ctx.Log.Debug("parsed input", "root", doc.RootKind)

	// 2. Normalize
	opts, err := ctx.Config.NormalizerOptions()
	if err != nil {
		return err
	}
	ctx.Log.Debug("normalizing",
		"sort_keys", opts.SortKeys,
		"sort_arrays", strings.Join(opts.SortArraysBy, ","),
		"locale", opts.Locale,
		"strict", opts.StrictCompare,
	)
	normalized, err := normalizer.New(opts).Normalize(doc.Root)
	if err != nil {
		return err
	}

	// 3. Serialize
	fmtOpts := ctx.Config.FormatterOptions()
	out, err := formatter.NewFormatterWithOptions(fmtOpts).Format(normalized)
	if err != nil {
		return errors.NewFormatError("failed to encode JSON", err)
	}
	ctx.Log.Debug("formatted output", "bytes", len(out), "remove_nulls", fmtOpts.RemoveNulls)

	// 4. Output the result
	return writeOutput(ctx, out)
}

// parseInput reads JSON from file or stdin
func parseInput(ctx *Context) (models.Document, error) {
	if CLI.InputFile != "" {
		ctx.Log.Debug("reading input", "file", CLI.InputFile)
		return parser.ParseFile(CLI.InputFile)
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return readInteractiveInput()
	}

	ctx.Log.Debug("reading input", "file", "stdin")
	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return models.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	return parser.ParseString(string(jsonData))
}

// writeOutput writes the normalized JSON to file or stdout
func writeOutput(ctx *Context, data []byte) error {
	if CLI.OutputFile != "" {
		err := os.WriteFile(CLI.OutputFile, data, 0644)
		if err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.OutputFile), err)
		}
		ctx.Log.Debug("wrote output", "file", CLI.OutputFile)
		return nil
	}

	if _, err := os.Stdout.Write(data); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// readInteractiveInput lets users paste JSON into a terminal and signal
// completion with Ctrl+D (EOF)
func readInteractiveInput() (models.Document, error) {
	fmt.Fprintln(os.Stderr, "jsonnorm interactive mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Document{}, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if strings.TrimSpace(jsonData) == "" {
		return models.Document{}, errors.NewInputError("nothing was entered; pass a file with -f or pipe JSON to stdin", errors.ErrNoInput)
	}

	fmt.Fprintln(os.Stderr)
	return parser.ParseString(jsonData)
}
