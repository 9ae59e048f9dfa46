package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/MoisesAGC/lexema/driver"
	"github.com/MoisesAGC/lexema/spec"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "lex clexspec",
		Short: "Tokenize a text stream",
		Long: `lex takes a text stream and tokenizes it according to a compiled lexical specification.
As use ` + "`lexema compile`" + `, you can generate the specification.`,
		Example: `  cat src | lexema lex clexspec.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runLex,
	}
	rootCmd.AddCommand(cmd)
}

func runLex(cmd *cobra.Command, args []string) (retErr error) {
	clspec, err := readCompiledLexSpec(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a compiled lexical specification: %w", err)
	}

	var w io.Writer
	{
		fileName := "lexema-lex.log"
		f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("Cannot open the log file %s: %w", fileName, err)
		}
		defer f.Close()
		w = f
	}
	fmt.Fprintf(w, `lexema lex starts.
Date time: %v
---
`, time.Now().Format(time.RFC3339))
	defer func() {
		fmt.Fprintf(w, "---\n")
		if retErr != nil {
			fmt.Fprintf(w, "lexema lex failed: %v\n", retErr)
		} else {
			fmt.Fprintf(w, "lexema lex succeeded.\n")
		}
	}()

	tokenizer, err := driver.NewTokenizer(clspec, driver.EnableLogging(w))
	if err != nil {
		return err
	}
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	tokens, err := tokenizer.Tokenize(string(src))
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		data, err := json.Marshal(tok)
		if err != nil {
			return fmt.Errorf("failed to marshal a token; token: %v, error: %v", tok, err)
		}
		fmt.Fprintf(os.Stdout, "%v\n", string(data))
	}

	return nil
}

func readCompiledLexSpec(path string) (*spec.CompiledLexSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	clspec := &spec.CompiledLexSpec{}
	err = json.Unmarshal(data, clspec)
	if err != nil {
		return nil, err
	}
	return clspec, nil
}
