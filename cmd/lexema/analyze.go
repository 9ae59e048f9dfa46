package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/MoisesAGC/lexema/grammar"
	"github.com/MoisesAGC/lexema/syntax"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze grammar",
		Short: "Compute the FIRST and FOLLOW sets of a grammar",
		Long: `analyze takes a context-free grammar and computes the FIRST set of every symbol
and the FOLLOW set of every non-terminal. A grammar is a sequence of rules:

  E  -> T Ep ;
  Ep -> plus T Ep | ε ;
  T  -> id ;

The first rule's left-hand side is the start symbol.`,
		Example: `  lexema analyze grammar.txt`,
		Args:    cobra.ExactArgs(1),
		RunE:    runAnalyze,
	}
	rootCmd.AddCommand(cmd)
}

type analysisReport struct {
	First  map[string][]string `json:"first"`
	Follow map[string][]string `json:"follow"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a grammar: %w", err)
	}
	g, err := grammar.Parse(string(src))
	if err != nil {
		return fmt.Errorf("Cannot parse the grammar: %w", err)
	}

	analyzer := syntax.NewAnalyzer(g)
	firsts := analyzer.FirstSets()
	follows, err := analyzer.FollowSets()
	if err != nil {
		return err
	}

	report := &analysisReport{
		First:  map[string][]string{},
		Follow: map[string][]string{},
	}
	for sym, set := range firsts {
		report.First[sym.Name] = symbolNames(set)
	}
	for sym, set := range follows {
		report.Follow[sym.Name] = symbolNames(set)
	}
	out, err := json.Marshal(report)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%v\n", string(out))

	return nil
}

func symbolNames(set syntax.SymbolSet) []string {
	names := make([]string, 0, len(set))
	for sym := range set {
		names = append(names, sym.Name)
	}
	sort.Strings(names)
	return names
}
