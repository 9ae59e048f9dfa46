package compiler

import (
	"fmt"
	"io"
	"sort"

	"github.com/MoisesAGC/lexema/log"
	"github.com/MoisesAGC/lexema/spec"
)

type compilerOption func(c *compilerConfig) error

func EnableLogging(w io.Writer) compilerOption {
	return func(c *compilerConfig) error {
		logger, err := log.NewLogger(w)
		if err != nil {
			return err
		}
		c.logger = logger
		return nil
	}
}

type compilerConfig struct {
	logger log.Logger
}

// initialPriority is where the descending priority counter starts. Entry
// order in the specification is precedence order, so earlier entries win ties
// against later ones.
const initialPriority = 1000

// Compile turns a lexical specification into its portable form: one
// minimized DFA per entry, each paired with the entry's kind and priority.
func Compile(lexspec *spec.LexSpec, opts ...compilerOption) (*spec.CompiledLexSpec, error) {
	err := lexspec.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid lexical specification:\n%w", err)
	}

	config := &compilerConfig{
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		err := opt(config)
		if err != nil {
			return nil, err
		}
	}

	alphabet := normalizeAlphabet(lexspec.Alphabet)
	var entries []*spec.CompiledLexEntry
	for i, e := range lexspec.Entries {
		config.logger.Log("Compile #%v %v: %v", i+1, e.Kind, e.Pattern)
		tranTab, err := compile(string(e.Pattern), alphabet, config)
		if err != nil {
			return nil, fmt.Errorf("failed to compile the pattern for %v: %w", e.Kind, err)
		}
		entries = append(entries, &spec.CompiledLexEntry{
			Kind:     e.Kind,
			Priority: initialPriority - i,
			DFA:      tranTab,
		})
	}

	return &spec.CompiledLexSpec{
		Entries: entries,
	}, nil
}

// CompilePattern compiles a single pattern into a minimized DFA over the
// given alphabet.
func CompilePattern(pattern string, alphabet string) (*spec.TransitionTable, error) {
	config := &compilerConfig{
		logger: log.NewNopLogger(),
	}
	return compile(pattern, normalizeAlphabet(alphabet), config)
}

func compile(pattern string, alphabet []rune, config *compilerConfig) (*spec.TransitionTable, error) {
	if pattern == "" {
		return nil, synErrNullPattern
	}

	postfix, err := toPostfix(pattern)
	if err != nil {
		return nil, err
	}
	config.logger.Log("  Postfix: %v", postfix)

	b := &nfaBuilder{}
	n, err := b.build(postfix)
	if err != nil {
		return nil, err
	}
	config.logger.Log("  NFA: %v states", b.stateCount)

	d := genDFA(n, alphabet)
	m := minimizeDFA(d, alphabet)
	config.logger.Log("  DFA: %v states (%v before minimization)", len(m.states), len(d.states))

	return genTransitionTable(m, alphabet), nil
}

// normalizeAlphabet deduplicates and sorts the alphabet characters. The
// sorted order fixes the column layout of the transition tables.
func normalizeAlphabet(alphabet string) []rune {
	seen := map[rune]struct{}{}
	var symbols []rune
	for _, c := range alphabet {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		symbols = append(symbols, c)
	}
	sort.Slice(symbols, func(i, j int) bool {
		return symbols[i] < symbols[j]
	})
	return symbols
}

func genTransitionTable(d *dfa, alphabet []rune) *spec.TransitionTable {
	states := make([]*dfaState, len(d.states))
	copy(states, d.states)
	sort.Slice(states, func(i, j int) bool {
		return states[i].id < states[j].id
	})

	// Since 0 represents an invalid value in a transition table, assign a
	// number greater than or equal to 1 to states.
	stateNum := map[*dfaState]int{}
	for i, s := range states {
		stateNum[s] = i + 1
	}

	rowCount := len(states) + 1
	colCount := len(alphabet)
	acc := make([]bool, rowCount)
	tran := make([]int, rowCount*colCount)
	for _, s := range states {
		acc[stateNum[s]] = s.final
		for col, symbol := range alphabet {
			if to, ok := s.tran[symbol]; ok {
				tran[stateNum[s]*colCount+col] = stateNum[to]
			}
		}
	}

	return &spec.TransitionTable{
		Alphabet:        string(alphabet),
		InitialState:    stateNum[d.start],
		AcceptingStates: acc,
		RowCount:        rowCount,
		ColCount:        colCount,
		Transition:      tran,
	}
}
