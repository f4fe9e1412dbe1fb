// Command sexp-pprint parses S-expressions and pretty-prints them.
//
// Usage:
//
//	sexp-pprint [flags] [file ...]
//
// With no files, standard input is read. Each input must hold exactly one
// form. On a syntax error the command prints "error: <message>" with the
// line and column of the problem and exits with status 1.
//
// Flags:
//
//	-config path    YAML settings file (see internal/config)
//	-compact        print each form on one line
//	-indent s       indentation per nesting level
//	-check          only check syntax
//	-ast            print the tree as nested Go values
//	-i              interactive mode
//	-max-depth n    nesting limit
//	-max-input n    input size limit in bytes
//	-encoding name  IANA charset of the input
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shapestone/shape-sexp/internal/config"
	"github.com/shapestone/shape-sexp/internal/input"
	"github.com/shapestone/shape-sexp/pkg/sexp"
)

const appName = "sexp-pprint"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type options struct {
	cfg   config.Config
	check bool
	ast   bool
	repl  bool
	files []string
}

// run executes the command and returns its exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "error: ", 0)

	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		logger.Print(err)
		return 2
	}

	if opts.repl {
		return runREPL(opts.cfg, stdout, logger)
	}

	if len(opts.files) == 0 {
		opts.files = []string{"-"}
	}

	status := 0
	for _, name := range opts.files {
		if err := process(name, stdin, stdout, opts); err != nil {
			if len(opts.files) > 1 {
				logger.Printf("%s: %v", name, err)
			} else {
				logger.Print(err)
			}
			status = 1
		}
	}
	return status
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet(appName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML settings file")
	compact := fs.Bool("compact", false, "print each form on one line")
	indent := fs.String("indent", "", "indentation per nesting level")
	check := fs.Bool("check", false, "only check syntax")
	astOut := fs.Bool("ast", false, "print the tree as nested Go values")
	interactive := fs.Bool("i", false, "interactive mode")
	maxDepth := fs.Int("max-depth", 0, "nesting limit")
	maxInput := fs.Int64("max-input", 0, "input size limit in bytes")
	encoding := fs.String("encoding", "", "IANA charset of the input")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return options{}, err
		}
	}

	// Flags given on the command line override the settings file.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "compact":
			cfg.Compact = *compact
		case "indent":
			cfg.Indent = *indent
		case "max-depth":
			cfg.MaxDepth = *maxDepth
		case "max-input":
			cfg.MaxInputBytes = *maxInput
		case "encoding":
			cfg.Encoding = *encoding
		}
	})
	if err := cfg.Validate(); err != nil {
		return options{}, err
	}

	return options{
		cfg:   cfg,
		check: *check,
		ast:   *astOut,
		repl:  *interactive,
		files: fs.Args(),
	}, nil
}

// process parses one input and writes its rendering to stdout.
func process(name string, stdin io.Reader, stdout io.Writer, opts options) error {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	data, err := input.ReadAll(r, opts.cfg.MaxInputBytes, opts.cfg.Encoding)
	if err != nil {
		return err
	}

	if opts.ast {
		return printAST(data, stdout, opts)
	}

	n, err := sexp.ParseWithOptions(data, opts.cfg.ParseOptions()...)
	if err != nil {
		return err
	}
	defer sexp.Free(n)

	if opts.check {
		return nil
	}
	pr := opts.cfg.Printer()
	if err := pr.Fprint(stdout, n); err != nil {
		return err
	}
	if pr.Compact {
		_, err = io.WriteString(stdout, "\n")
	}
	return err
}

func printAST(data []byte, stdout io.Writer, opts options) error {
	tree, err := sexp.ParseASTReader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer sexp.ReleaseTree(tree)

	if opts.check {
		return nil
	}
	_, err = fmt.Fprintf(stdout, "%#v\n", sexp.NodeToInterface(tree))
	return err
}
