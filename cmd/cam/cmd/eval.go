package cmd

import (
	"fmt"

	"github.com/arnobastenhof/camrepl/internal/ast"
	"github.com/arnobastenhof/camrepl/internal/cam"
	"github.com/arnobastenhof/camrepl/internal/diag"
	"github.com/arnobastenhof/camrepl/internal/env"
	"github.com/arnobastenhof/camrepl/internal/optimizer"
	"github.com/arnobastenhof/camrepl/internal/parser"
	"github.com/spf13/cobra"
)

var evalExpr string

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate a single inline program and exit",
	Long: `Evaluate a single program given with -e, print its result, and exit.

Examples:
  cam eval -e "(+ 1 2)"
  cam eval -e "((lambda (x) x) 7)"`,
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "the program to evaluate")
	evalCmd.MarkFlagRequired("eval")
}

func runEval(cmd *cobra.Command, args []string) (err error) {
	astAlloc := ast.NewAllocator(poolSize)
	envAlloc := env.NewAllocator(poolSize)
	defer diag.Recover(&err)

	tree := parser.Parse(astAlloc, evalExpr)
	tree = optimizer.Run(astAlloc, tree)
	result := cam.Run(envAlloc, tree)
	fmt.Println(result)
	return nil
}
