// Package repl drives the read-parse-optimize-execute-print loop, wiring
// internal/parser, internal/optimizer and internal/cam together with a
// per-line error-recovery scope. Grounded on cmd/dwscript/cmd/run.go for
// the pipeline-wiring shape and original_source/src/main.c's
// Evaluate/TRY/CATCH for the exact order of operations and the halt exit
// path.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/arnobastenhof/camrepl/internal/ast"
	"github.com/arnobastenhof/camrepl/internal/cam"
	"github.com/arnobastenhof/camrepl/internal/diag"
	"github.com/arnobastenhof/camrepl/internal/env"
	"github.com/arnobastenhof/camrepl/internal/optimizer"
	"github.com/arnobastenhof/camrepl/internal/parser"
)

// MaxLine is the hard cap on a REPL input line, in bytes, before the
// trailing newline.
const MaxLine = 255

// DefaultPoolSize is the element count of each of the two bounded pools
// (IR and env) when no override is given.
const DefaultPoolSize = 1024

// ErrHalt is returned by readLine when the line is exactly "halt"; Run
// exits with status 0 in response, same as a clean EOF.
var ErrHalt = fmt.Errorf("halt")

// REPL holds the I/O streams and pool sizing for one run of the loop. Its
// two Allocators are rebuilt fresh for every line, so that a bulk Clear on
// error can never leak state into the next evaluation.
type REPL struct {
	in       *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	poolSize int
}

// New returns a REPL reading from in and writing results/diagnostics to
// out/errOut. poolSize <= 0 is treated as DefaultPoolSize.
func New(in io.Reader, out, errOut io.Writer, poolSize int) *REPL {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	return &REPL{in: bufio.NewReader(in), out: out, errOut: errOut, poolSize: poolSize}
}

// Run reads lines until halt or end of input, evaluating each and
// printing its result or diagnostic. It returns nil on a clean halt or
// EOF.
func (r *REPL) Run() error {
	for {
		line, err := r.readLine()
		if err == io.EOF {
			return nil
		}
		if err == ErrHalt {
			return nil
		}
		if err != nil {
			fmt.Fprintln(r.errOut, err.Error())
			continue
		}
		n, err := r.evalLine(line)
		if err != nil {
			fmt.Fprintln(r.errOut, err.Error())
			continue
		}
		fmt.Fprintln(r.out, n)
	}
}

// readLine reads one line of up to MaxLine bytes. A longer line is
// reported as diag.InputTooLong; unlike original_source/src/main.c, whose
// byte-at-a-time overflow branch leaves the line's unread remainder to be
// reparsed as the next line, ReadString always consumes through the
// delimiter first, so the next call correctly starts at the following
// newline regardless of length (see DESIGN.md's Open Questions).
func (r *REPL) readLine() (string, error) {
	raw, err := r.in.ReadString('\n')
	if err != nil && raw == "" {
		return "", io.EOF
	}
	line := trimNewline(raw)

	if len(line) > MaxLine {
		return "", diag.InputTooLong()
	}
	if line == "halt" {
		return "", ErrHalt
	}
	return line, nil
}

func trimNewline(s string) string {
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}
	if n := len(s); n > 0 && s[n-1] == '\r' {
		s = s[:n-1]
	}
	return s
}

// evalLine runs one line through parse -> optimize -> execute, recovering
// any *diag.Diagnostic panic raised along the way and bulk-resetting both
// pools before returning, so the next line starts from a clean state
// regardless of success or failure.
func (r *REPL) evalLine(line string) (result int, err error) {
	astAlloc := ast.NewAllocator(r.poolSize)
	envAlloc := env.NewAllocator(r.poolSize)
	defer func() {
		astAlloc.Clear()
		envAlloc.Clear()
	}()
	defer diag.Recover(&err)

	tree := parser.Parse(astAlloc, line)
	tree = optimizer.Run(astAlloc, tree)
	result = cam.Run(envAlloc, tree)
	return result, nil
}
