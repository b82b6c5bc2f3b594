// Package cmd wires the cobra command surface of cmd/cam: a REPL by
// default, plus eval/lex/parse debugging subcommands and a version
// banner, grounded on cmd/dwscript/cmd/root.go's command-structure shape.
package cmd

import (
	"fmt"
	"os"

	"github.com/arnobastenhof/camrepl/internal/repl"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var poolSize int

var rootCmd = &cobra.Command{
	Use:   "cam",
	Short: "A combinator-calculus REPL",
	Long: `cam reads a tiny untyped lambda calculus extended with integer
literals and a variadic '+', lowers each program to a point-free
combinator term, optimizes it to a fixed point, and runs it on a
single-register stack machine.

With no subcommand, cam starts an interactive read-eval-print loop over
stdin/stdout/stderr.`,
	Version: Version,
	RunE:    runREPL,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().IntVar(&poolSize, "pool-size", repl.DefaultPoolSize,
		"element capacity of each of the IR/env pools")
}

func runREPL(cmd *cobra.Command, args []string) error {
	r := repl.New(os.Stdin, os.Stdout, os.Stderr, poolSize)
	return r.Run()
}
