package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MoisesAGC/lexema/compiler"
	"github.com/MoisesAGC/lexema/spec"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile a lexical specification into DFAs",
		Long:  `compile takes a lexical specification and generates a minimized DFA per token rule described in the specification.`,
		Example: `  Read from/Write to the specified file:
    lexema compile lexspec.json -o clexspec.json
  Read from stdin and write to stdout:
    cat lexspec.json | lexema compile`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	lspec, err := readLexSpec(path)
	if err != nil {
		return fmt.Errorf("Cannot read a lexical specification: %w", err)
	}

	var w io.Writer
	{
		fileName := "lexema-compile.log"
		f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("Cannot open the log file %s: %w", fileName, err)
		}
		defer f.Close()
		w = f
	}
	fmt.Fprintf(w, `lexema compile starts.
Date time: %v
---
`, time.Now().Format(time.RFC3339))
	defer func() {
		fmt.Fprintf(w, "---\n")
		if retErr != nil {
			fmt.Fprintf(w, "lexema compile failed: %v\n", retErr)
		} else {
			fmt.Fprintf(w, "lexema compile succeeded.\n")
		}
	}()

	clspec, err := compiler.Compile(lspec, compiler.EnableLogging(w))
	if err != nil {
		return err
	}
	err = writeCompiledLexSpec(clspec, *compileFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot write a compiled lexical specification: %w", err)
	}

	return nil
}

func readLexSpec(path string) (*spec.LexSpec, error) {
	r := os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lspec := &spec.LexSpec{}
	err = json.Unmarshal(data, lspec)
	if err != nil {
		return nil, err
	}
	return lspec, nil
}

func writeCompiledLexSpec(clspec *spec.CompiledLexSpec, path string) error {
	out, err := json.Marshal(clspec)
	if err != nil {
		return err
	}
	w := os.Stdout
	if path != "" {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	fmt.Fprintf(w, "%v\n", string(out))
	return nil
}
