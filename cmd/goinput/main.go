package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	j "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/reoring/goinput"
	"github.com/reoring/goinput/config"
	"github.com/reoring/goinput/internal/logger"
	"github.com/reoring/goinput/schemafile"
	"github.com/reoring/goinput/source"
)

// Exit statuses.
const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "check":
		return checkCmd(args[1:], stdout, stderr)
	case "bind":
		return bindCmd(args[1:], stdin, stdout, stderr)
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "goinput CLI\n\nUsage:\n  goinput check -schema schema.yaml [-config goinput.yaml] [-strict]\n  goinput bind -schema schema.yaml -input in.json [-format json|yaml] [-config goinput.yaml] [-strict] [-dump] [-reject-dups] [-max-depth N] [-log-dir dir] [-v]\n\nNotes:\n  - -input - reads the document from stdin.\n  - Exit status is 1 when the input is invalid and 2 on usage or configuration errors.")
}

type common struct {
	schema string
	config string
	strict bool
	logDir string
	debug  bool
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.schema, "schema", "", "YAML schema definition")
	fs.StringVar(&c.config, "config", "", "YAML configuration (namespace, enabled)")
	fs.BoolVar(&c.strict, "strict", false, "reject unknown type aliases")
	fs.StringVar(&c.logDir, "log-dir", "", "write JSON logs to this directory")
	fs.BoolVar(&c.debug, "v", false, "log at debug level to stderr")
}

// build loads configuration and the schema file and compiles the schema.
func (c *common) build(stderr io.Writer) (*goinput.Schema, func(), error) {
	log, closeLog, err := logger.New(logger.Options{Dir: c.logDir, Console: c.debug, Stderr: stderr, Debug: c.debug})
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}

	cfg := config.Config{Namespace: goinput.DefaultNamespace}
	if c.config != "" {
		loaded, err := config.Load(c.config)
		if err != nil {
			closeLog()
			return nil, nil, err
		}
		cfg = *loaded
	}
	reg, err := goinput.Setup(cfg)
	if err != nil {
		closeLog()
		return nil, nil, err
	}

	b, err := schemafile.LoadFile(c.schema)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	opts := []goinput.BuildOption{goinput.WithRegistry(reg), goinput.WithLogger(log)}
	if c.strict {
		opts = append(opts, goinput.WithUnknownAliases(goinput.UnknownAliasStrict))
	}
	s, err := b.Build(opts...)
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	log.Info("schema ready", zap.String("schema", c.schema), zap.String("namespace", cfg.Namespace), zap.Int("fields", len(s.Fields())))
	return s, closeLog, nil
}

func checkCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	if err := fs.Parse(args); err != nil || c.schema == "" {
		fs.Usage()
		return exitUsage
	}
	s, closeLog, err := c.build(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer closeLog()
	for _, f := range s.Fields() {
		printField(stdout, f, "")
	}
	return exitOK
}

func printField(w io.Writer, f *goinput.Field, indent string) {
	req := "optional"
	if f.Required() {
		req = "required"
	}
	fmt.Fprintf(w, "%s%s: %s (%s, %s)\n", indent, f.Name(), f.Alias(), f.Kind(), req)
	for _, c := range f.Children() {
		printField(w, c, indent+"  ")
	}
}

func bindCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bind", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var c common
	c.register(fs)
	var input, format string
	var dump, rejectDups bool
	var maxDepth int
	fs.StringVar(&input, "input", "", "input document, or - for stdin")
	fs.StringVar(&format, "format", "", "json or yaml (default: from the input extension, else json)")
	fs.BoolVar(&dump, "dump", false, "print bound values with go-spew instead of JSON")
	fs.BoolVar(&rejectDups, "reject-dups", false, "reject duplicate keys in JSON input")
	fs.IntVar(&maxDepth, "max-depth", 0, "maximum JSON nesting depth (0 = unlimited)")
	if err := fs.Parse(args); err != nil || c.schema == "" || input == "" {
		fs.Usage()
		return exitUsage
	}

	fmtName := format
	if fmtName == "" && input != "-" {
		fmtName = filepath.Ext(input)
	}
	f := source.FormatJSON
	if fmtName != "" {
		var err error
		if f, err = source.ParseFormat(fmtName); err != nil {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
	}

	data, err := readInput(input, stdin)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	raw, err := source.Decode(data, f, source.Options{RejectDuplicateKeys: rejectDups, MaxDepth: maxDepth})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	s, closeLog, err := c.build(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	defer closeLog()

	r := s.Bind(context.Background(), raw)
	zap.L().Info("bind finished", zap.String("bind_id", r.ID()), zap.Bool("valid", r.IsValid()), zap.Int("errors", len(r.Issues())))
	if !r.IsValid() {
		fmt.Fprintln(stderr, r.ErrorsAsString())
		return exitInvalid
	}
	if dump {
		spew.Fdump(stdout, r.Values())
		return exitOK
	}
	out, err := j.MarshalIndent(r.Values(), "", "  ")
	if err != nil {
		fmt.Fprintln(stderr, fmt.Errorf("encode result: %w", err))
		return exitUsage
	}
	fmt.Fprintln(stdout, string(out))
	return exitOK
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		if stdin == nil {
			return nil, errors.New("no stdin available")
		}
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
