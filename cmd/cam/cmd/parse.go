package cmd

import (
	"fmt"

	"github.com/arnobastenhof/camrepl/internal/ast"
	"github.com/arnobastenhof/camrepl/internal/diag"
	"github.com/arnobastenhof/camrepl/internal/optimizer"
	"github.com/arnobastenhof/camrepl/internal/parser"
	"github.com/spf13/cobra"
)

var (
	parseExpr     string
	parseOptimize bool
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Lower a program to combinator IR and print it",
	Long: `Parse a program given with -e, lower it to combinator IR, and print the
resulting tree as an s-expression. Pass --optimize to print the tree after
running it through the peephole optimizer's fixed-point pass instead.

Examples:
  cam parse -e "(+ 1 2)"
  cam parse -e "((lambda (x) x) 7)" --optimize`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseExpr, "eval", "e", "", "the program to parse")
	parseCmd.Flags().BoolVar(&parseOptimize, "optimize", false, "print the optimized tree instead of the raw lowering")
	parseCmd.MarkFlagRequired("eval")
}

func runParse(cmd *cobra.Command, args []string) (err error) {
	astAlloc := ast.NewAllocator(poolSize)
	defer diag.Recover(&err)

	tree := parser.Parse(astAlloc, parseExpr)
	if parseOptimize {
		tree = optimizer.Run(astAlloc, tree)
	}
	fmt.Println(tree.String())
	return nil
}
