package driver

import (
	"fmt"
	"io"
	"sort"

	"github.com/MoisesAGC/lexema/log"
	"github.com/MoisesAGC/lexema/spec"
)

// Token is an immutable record produced by the tokenizer. Position is the
// zero-based character offset of the lexeme in the input.
type Token struct {
	Kind     string `json:"kind"`
	Value    string `json:"value"`
	Position int    `json:"position"`
}

func newToken(kind string, value string, position int) *Token {
	return &Token{
		Kind:     kind,
		Value:    value,
		Position: position,
	}
}

type tokenRule struct {
	tab      *spec.TransitionTable
	cols     map[rune]int
	kind     string
	priority int
}

// match walks the rule's DFA from the given position and reports the length
// of the longest prefix that ends in an accepting state. The walk halts as
// soon as the current state has no transition on the current character.
func (r *tokenRule) match(src []rune, pos int) int {
	state := r.tab.InitialState
	length := 0
	for i := pos; i < len(src); i++ {
		col, ok := r.cols[src[i]]
		if !ok {
			break
		}
		next := r.tab.Transition[state*r.tab.ColCount+col]
		if next == 0 {
			break
		}
		state = next
		if r.tab.AcceptingStates[state] {
			length = i - pos + 1
		}
	}
	return length
}

type tokenizerOption func(t *Tokenizer) error

func EnableLogging(w io.Writer) tokenizerOption {
	return func(t *Tokenizer) error {
		logger, err := log.NewLogger(w)
		if err != nil {
			return err
		}
		t.logger = logger
		return nil
	}
}

// Tokenizer scans input text according to a set of rules under the
// longest-match discipline. It retains only the immutable rule list, so one
// instance may serve any number of Tokenize calls.
type Tokenizer struct {
	rules  []*tokenRule
	logger log.Logger
}

func NewTokenizer(clspec *spec.CompiledLexSpec, opts ...tokenizerOption) (*Tokenizer, error) {
	t := &Tokenizer{
		logger: log.NewNopLogger(),
	}
	for _, opt := range opts {
		err := opt(t)
		if err != nil {
			return nil, err
		}
	}
	for _, e := range clspec.Entries {
		t.AddRule(e.DFA, e.Kind.String(), e.Priority)
	}
	return t, nil
}

// AddRule registers a rule and resorts the rule list by descending priority.
// The sort is stable, so registration order breaks ties between rules that
// share a priority.
func (t *Tokenizer) AddRule(tab *spec.TransitionTable, kind string, priority int) {
	cols := map[rune]int{}
	for i, c := range []rune(tab.Alphabet) {
		cols[c] = i
	}
	t.rules = append(t.rules, &tokenRule{
		tab:      tab,
		cols:     cols,
		kind:     kind,
		priority: priority,
	})
	sort.SliceStable(t.rules, func(i, j int) bool {
		return t.rules[i].priority > t.rules[j].priority
	})
}

// Tokenize scans the whole input left to right. At each position every rule
// runs against the remaining input; the longest match wins and priority
// breaks length ties. A position where no rule matches is an error.
func (t *Tokenizer) Tokenize(input string) ([]*Token, error) {
	src := []rune(input)
	var tokens []*Token
	pos := 0
	for pos < len(src) {
		var best *tokenRule
		bestLen := 0
		for _, r := range t.rules {
			length := r.match(src, pos)
			// The rules are ordered by descending priority, so a strict
			// comparison keeps the highest-priority rule among equal
			// lengths.
			if length > bestLen {
				best = r
				bestLen = length
			}
		}
		if best == nil {
			return nil, fmt.Errorf("no valid token found at position %v for character '%v'", pos, string(src[pos]))
		}
		tok := newToken(best.kind, string(src[pos:pos+bestLen]), pos)
		t.logger.Log("%v: %v %#v", tok.Position, tok.Kind, tok.Value)
		tokens = append(tokens, tok)
		pos += bestLen
	}
	return tokens, nil
}
