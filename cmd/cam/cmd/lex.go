package cmd

import (
	"fmt"

	"github.com/arnobastenhof/camrepl/internal/diag"
	"github.com/arnobastenhof/camrepl/internal/lexer"
	"github.com/arnobastenhof/camrepl/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexExpr  string
	showType bool
)

var lexCmd = &cobra.Command{
	Use:   "lex",
	Short: "Tokenize a program and print its token stream",
	Long: `Tokenize (lex) a program given with -e and print the resulting tokens,
one per line. Useful for debugging the lexer.

Examples:
  cam lex -e "(+ 1 2)"
  cam lex -e "(+ 1 2)" --show-type=false`,
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
	lexCmd.Flags().StringVarP(&lexExpr, "eval", "e", "", "the program to tokenize")
	lexCmd.Flags().BoolVar(&showType, "show-type", true, "show each token's kind alongside its lexeme")
	lexCmd.MarkFlagRequired("eval")
}

func runLex(cmd *cobra.Command, args []string) (err error) {
	defer diag.Recover(&err)

	l := lexer.New(lexExpr)
	for {
		tok := l.Next()

		var out string
		if showType {
			out = fmt.Sprintf("%-8s", tok.Kind)
		}
		switch {
		case tok.Lexeme != "" && out != "":
			out += fmt.Sprintf(" %q", tok.Lexeme)
		case tok.Lexeme != "":
			out = fmt.Sprintf("%q", tok.Lexeme)
		case out == "":
			out = tok.Kind.String()
		}
		fmt.Println(out)

		if tok.Kind == token.END {
			break
		}
	}
	return nil
}
