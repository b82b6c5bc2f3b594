package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func runTranscript(t *testing.T, lines ...string) (stdout, stderr string) {
	t.Helper()
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out, errOut bytes.Buffer
	r := New(in, &out, &errOut, 0)
	if err := r.Run(); err != nil {
		t.Fatalf("Run returned %v", err)
	}
	return out.String(), errOut.String()
}

func TestRunSeedScenariosTranscript(t *testing.T) {
	// A representative sweep of literal, sum, abstraction, application and
	// higher-order scenarios, run back to back through one REPL.
	stdout, stderr := runTranscript(t,
		"42",
		"(+ 1 2)",
		"(+ 1 2 3 4)",
		"((lambda (x) x) 7)",
		"((lambda (x y) (+ x y)) 3 4)",
		"((lambda (f x) (f x x)) (lambda (a b) (+ a b)) 5)",
	)
	if stderr != "" {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
	snaps.MatchSnapshot(t, "seed_scenarios_stdout", stdout)
}

func TestRunMalformedInputScenariosTranscript(t *testing.T) {
	stdout, stderr := runTranscript(t,
		"(",
		"foo",
		"(+ 1)",
	)
	if stdout != "" {
		t.Fatalf("unexpected stdout: %q", stdout)
	}
	snaps.MatchSnapshot(t, "malformed_input_stderr", stderr)
}

func TestRunRecoversAfterErrorAndContinues(t *testing.T) {
	// After a malformed input, a subsequent well-formed one still
	// evaluates correctly.
	stdout, stderr := runTranscript(t, "foo", "(+ 1 2)")
	if !strings.Contains(stderr, "Unbound variable: foo.") {
		t.Fatalf("stderr = %q, want it to contain the unbound-variable diagnostic", stderr)
	}
	if stdout != "3\n" {
		t.Fatalf("stdout = %q, want %q", stdout, "3\n")
	}
}

func TestRunHaltStopsTheLoopWithoutOutput(t *testing.T) {
	stdout, stderr := runTranscript(t, "42", "halt", "(+ 1 2)")
	if stdout != "42\n" {
		t.Fatalf("stdout = %q, want only the line before halt to be evaluated", stdout)
	}
	if stderr != "" {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
}

func TestRunOverlongLineReportsInputTooLong(t *testing.T) {
	long := strings.Repeat("1", MaxLine+1)
	stdout, stderr := runTranscript(t, long, "42")
	if !strings.Contains(stderr, "Input too long.") {
		t.Fatalf("stderr = %q, want it to contain Input too long.", stderr)
	}
	if stdout != "42\n" {
		t.Fatalf("stdout = %q, want the next line to still evaluate cleanly", stdout)
	}
}

func TestRunScopeShadowing(t *testing.T) {
	stdout, _ := runTranscript(t, "((lambda (x) (lambda (x) x)) 1 2)")
	if stdout != "2\n" {
		t.Fatalf("stdout = %q, want %q (innermost binding shadows outer)", stdout, "2\n")
	}
}
