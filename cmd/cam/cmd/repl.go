package cmd

import (
	"os"

	"github.com/arnobastenhof/camrepl/internal/repl"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive read-eval-print loop (default)",
	Long:  `Explicit alias for running cam with no subcommand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r := repl.New(os.Stdin, os.Stdout, os.Stderr, poolSize)
		return r.Run()
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
