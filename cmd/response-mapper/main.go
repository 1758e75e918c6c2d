// Package main provides the CLI entrypoint for response-mapper.
//
// response-mapper reshapes JSON or YAML documents with declarative mapping
// tables:
//   - transform applies a table to a document
//   - check validates YAML table files
//   - thera fetches EVE Scout connections and prints the mapped response
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"

	"response-mapper/internal/config"
	"response-mapper/internal/evescout"
	"response-mapper/internal/formatters"
	"response-mapper/internal/logging"
	"response-mapper/internal/mapper"
	"response-mapper/internal/mapping"
	"response-mapper/internal/node"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) error {
	if len(args) == 0 {
		printUsage(stderr)
		return errors.New("missing command")
	}

	switch args[0] {
	case "transform":
		return runTransform(args[1:], stdin, stdout, stderr, getenv)
	case "check":
		return runCheck(args[1:], stdout, stderr)
	case "thera":
		return runThera(ctx, args[1:], stdout, stderr, getenv)
	case "-h", "-help", "--help", "help":
		printUsage(stdout)
		return nil
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `response-mapper - reshape API responses with mapping tables

Usage:
  response-mapper transform -table <name> [options] [file]
  response-mapper check <file|dir>...
  response-mapper thera [options]

Commands:
  transform   Apply a mapping table to a JSON or YAML document (stdin if no file)
  check       Validate YAML mapping table files
  thera       Fetch EVE Scout Thera connections and print the mapped response

Common options:
  -config <file>   Configuration file
  -tables <dir>    Extra YAML mapping tables (overrides tables_dir)
  -pretty          Indent JSON output (default when stdout is a terminal)
  -compact         Never indent JSON output

Transform options:
  -table <name>    Mapping table to apply (required)
  -yaml            Read the input as YAML (implied by .yaml/.yml files)
  -output <fmt>    json (default) or yaml
`)
}

// common holds the flags and state shared by transform and thera.
type common struct {
	configPath string
	tablesDir  string
	pretty     bool
	compact    bool

	cfg     *config.Config
	log     logging.Logger
	catalog *mapping.Catalog
}

func (c *common) register(flags *flag.FlagSet) {
	flags.StringVar(&c.configPath, "config", "", "Configuration file")
	flags.StringVar(&c.tablesDir, "tables", "", "Directory of extra YAML mapping tables")
	flags.BoolVar(&c.pretty, "pretty", false, "Indent JSON output")
	flags.BoolVar(&c.compact, "compact", false, "Never indent JSON output")
}

// setup loads the config, the logger and the table catalog.
func (c *common) setup(stderr io.Writer, getenv func(string) string) error {
	cfg, err := config.Load(c.configPath, getenv)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	c.cfg = cfg
	c.log = logging.New(cfg.Level(), stderr)
	c.catalog = evescout.Tables()

	dir := c.tablesDir
	if dir == "" {
		dir = cfg.TablesDir
	}

	if dir == "" {
		return nil
	}

	extra, err := mapping.LoadDir(dir, formatters.Default())
	if err != nil {
		return fmt.Errorf("loading tables: %w", err)
	}

	c.catalog = c.catalog.With(extra.Tables()...)
	c.log.Debugf("loaded tables %s from %s", strings.Join(extra.Names(), ", "), dir)

	return nil
}

func (c *common) indent(stdout io.Writer) string {
	switch {
	case c.compact:
		return ""
	case c.pretty || isTerminal(stdout):
		return "  "
	default:
		return ""
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func parseFlags(flags *flag.FlagSet, args []string, stderr io.Writer) (bool, error) {
	flags.SetOutput(stderr)

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}

		return false, err
	}

	return false, nil
}

func runTransform(args []string, stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) error {
	flags := flag.NewFlagSet("response-mapper transform", flag.ContinueOnError)

	var (
		c         common
		tableName = flags.String("table", "", "Mapping table to apply")
		asYAML    = flags.Bool("yaml", false, "Read the input as YAML")
		output    = flags.String("output", "json", "Output format: json or yaml")
	)

	c.register(flags)

	if help, err := parseFlags(flags, args, stderr); help || err != nil {
		return err
	}

	if *tableName == "" {
		return errors.New("transform: -table is required")
	}

	if flags.NArg() > 1 {
		return errors.New("transform: at most one input file")
	}

	if err := c.setup(stderr, getenv); err != nil {
		return err
	}

	table, err := c.catalog.Lookup(*tableName)
	if err != nil {
		return err
	}

	in, err := readInput(flags.Arg(0), *asYAML, stdin)
	if err != nil {
		return err
	}

	engine := mapper.New(mapper.WithLogger(c.log))

	var out any
	if _, isList := in.([]any); isList {
		out, err = engine.TransformEach(in, table)
	} else {
		out, err = engine.Transform(in, table)
	}

	if err != nil {
		return err
	}

	if c.log.Enabled(logging.LevelDebug) {
		c.log.Debugf("result:\n%s", logging.Dump(node.ToGo(out)))
	}

	switch *output {
	case "json":
		return node.EncodeJSON(stdout, out, c.indent(stdout))
	case "yaml":
		return node.EncodeYAML(stdout, out)
	default:
		return fmt.Errorf("transform: unknown output format %q", *output)
	}
}

// readInput decodes the document at path, or stdin for "" and "-". YAML is
// chosen by flag or by a .yaml/.yml extension.
func readInput(path string, asYAML bool, stdin io.Reader) (any, error) {
	r := stdin

	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		defer f.Close()

		r = f
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !asYAML && ext != ".yaml" && ext != ".yml" {
		return node.ReadJSON(r)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return node.DecodeYAML(data)
}

func runCheck(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("response-mapper check", flag.ContinueOnError)

	if help, err := parseFlags(flags, args, stderr); help || err != nil {
		return err
	}

	if flags.NArg() == 0 {
		return errors.New("check: no table files given")
	}

	var files []string

	for _, arg := range flags.Args() {
		fi, err := os.Stat(arg)
		if err != nil {
			return fmt.Errorf("check: %w", err)
		}

		if !fi.IsDir() {
			files = append(files, arg)
			continue
		}

		found, err := mapping.TableFiles(arg)
		if err != nil {
			return err
		}

		files = append(files, found...)
	}

	reg := formatters.Default()
	failed := 0

	for _, f := range files {
		tf, err := mapping.LoadFile(f)
		if err != nil {
			fmt.Fprintf(stdout, "%s: error: %v\n", f, err)
			failed++

			continue
		}

		diags := mapping.Validate(tf, reg)
		for _, d := range diags.All() {
			fmt.Fprintf(stdout, "%s: %s: %s\n", f, d.Severity, d)
		}

		if diags.HasErrors() {
			failed++
			continue
		}

		fmt.Fprintf(stdout, "%s: ok (%d tables)\n", f, len(tf.Tables))
	}

	if failed > 0 {
		return fmt.Errorf("check: %d of %d files failed", failed, len(files))
	}

	return nil
}

func runThera(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	flags := flag.NewFlagSet("response-mapper thera", flag.ContinueOnError)

	var (
		c     common
		input = flags.String("input", "", "Build from a saved signatures JSON file instead of fetching")
	)

	c.register(flags)

	if help, err := parseFlags(flags, args, stderr); help || err != nil {
		return err
	}

	if err := c.setup(stderr, getenv); err != nil {
		return err
	}

	table, err := c.catalog.Lookup(evescout.ConnectionTableName)
	if err != nil {
		return err
	}

	var out *node.Record

	if *input != "" {
		data, err := os.ReadFile(*input)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		body, err := node.DecodeJSON(data)
		if err != nil {
			return err
		}

		b := evescout.Builder{Engine: mapper.New(mapper.WithLogger(c.log)), Table: table, Log: c.log}
		if out, err = b.Build(body); err != nil {
			return err
		}
	} else {
		opts := append(c.cfg.ClientOptions(), evescout.WithLogger(c.log), evescout.WithConnectionTable(table))

		client, err := evescout.New(c.cfg.EveScout.BaseURL, opts...)
		if err != nil {
			return err
		}

		if out, err = client.TheraConnections(ctx); err != nil {
			return err
		}
	}

	return node.EncodeJSON(stdout, out, c.indent(stdout))
}
