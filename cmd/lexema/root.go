package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lexema",
	Short: "Generate portable DFAs from a lexical specification",
	Long: `lexema provides three features:
* Compiles a lexical specification into one portable DFA per token rule.
* Tokenizes a text stream according to a compiled lexical specification.
  This feature is primarily aimed at debugging the lexical specification.
* Computes the FIRST and FOLLOW sets of a context-free grammar.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
