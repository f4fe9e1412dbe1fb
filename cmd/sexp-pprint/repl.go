package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/shapestone/shape-sexp/internal/config"
	"github.com/shapestone/shape-sexp/pkg/sexp"
)

const (
	promptMain = "sexp> "
	promptCont = "  ... "
)

// lineReader is the part of *liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runREPL(cfg config.Config, stdout io.Writer, logger *log.Logger) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	sigc := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigc, syscall.SIGTERM, syscall.SIGHUP)
	defer func() {
		signal.Stop(sigc)
		close(done)
	}()
	go watchSignals(sigc, done, func() {
		ln.Close()
		os.Exit(130)
	})

	repl(ln, cfg, stdout, logger)
	return 0
}

// watchSignals calls onSignal when a signal arrives on sigc, and returns
// without calling it once done is closed.
func watchSignals(sigc <-chan os.Signal, done <-chan struct{}, onSignal func()) {
	select {
	case <-sigc:
		onSignal()
	case <-done:
	}
}

// repl reads forms until end of input or :quit, printing each one.
func repl(lr lineReader, cfg config.Config, stdout io.Writer, logger *log.Logger) {
	pr := cfg.Printer()
	opts := cfg.ParseOptions()

	for {
		f, ok := readForm(lr, opts)
		if !ok {
			fmt.Fprintln(stdout)
			return
		}

		switch strings.TrimSpace(f.src) {
		case "":
			continue
		case ":quit", ":q":
			return
		}

		lr.AppendHistory(strings.ReplaceAll(f.src, "\n", " "))

		if f.err != nil {
			logger.Print(f.err)
			continue
		}
		if err := pr.Fprint(stdout, f.node); err != nil {
			logger.Print(err)
		}
		if pr.Compact {
			fmt.Fprintln(stdout)
		}
		sexp.Free(f.node)
	}
}

// form is one unit of REPL input: a parsed tree, a parse error, or a
// command line (neither set).
type form struct {
	src  string
	node sexp.Node
	err  error
}

// readForm reads lines until they hold a complete form or a definite error.
// Input that ends inside a list or a quoted atom continues on the next line,
// as does a quoted atom ending in a backslash. It reports false at end of
// input.
func readForm(lr lineReader, opts []sexp.Option) (form, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := lr.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			if b.Len() > 0 && errors.Is(err, io.EOF) {
				src := b.String()
				n, err := sexp.ParseWithOptions([]byte(src), opts...)
				return form{src: src, node: n, err: err}, true
			}
			return form{}, false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" || strings.HasPrefix(strings.TrimSpace(src), ":") {
			return form{src: src}, true
		}
		n, err := sexp.ParseWithOptions([]byte(src), opts...)
		if !incomplete(src, err) {
			return form{src: src, node: n, err: err}, true
		}
	}
}

// incomplete reports whether a parse of src failed only because input ran
// out.
func incomplete(src string, err error) bool {
	if errors.Is(err, sexp.ErrUnterminatedList) || errors.Is(err, sexp.ErrUnterminatedString) {
		return true
	}
	// a trailing backslash inside a quoted atom starts a line continuation
	var pe *sexp.ParseError
	return errors.As(err, &pe) && pe.Kind == sexp.BadEscape && pe.Offset == len(src)-1
}
