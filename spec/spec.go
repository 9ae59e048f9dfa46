package spec

import (
	"fmt"
	"regexp"
	"strings"
)

const lexKindPattern = "[A-Za-z_][0-9A-Za-z_]*"

var lexKindRE = regexp.MustCompile("^" + lexKindPattern + "$")

type LexKind string

const LexKindNil = LexKind("")

func (k LexKind) String() string {
	return string(k)
}

func (k LexKind) validate() error {
	if k == "" {
		return fmt.Errorf("kind doesn't allow to be the empty string")
	}
	if !lexKindRE.MatchString(string(k)) {
		return fmt.Errorf("kind must be %v", lexKindPattern)
	}
	return nil
}

type LexPattern string

func (p LexPattern) validate() error {
	if p == "" {
		return fmt.Errorf("pattern doesn't allow to be the empty string")
	}
	return nil
}

type LexEntry struct {
	Kind    LexKind    `json:"kind"`
	Pattern LexPattern `json:"pattern"`
}

func NewLexEntry(kind string, pattern string) *LexEntry {
	return &LexEntry{
		Kind:    LexKind(kind),
		Pattern: LexPattern(pattern),
	}
}

func (e *LexEntry) validate() error {
	err := e.Kind.validate()
	if err != nil {
		return err
	}
	err = e.Pattern.validate()
	if err != nil {
		return err
	}
	return nil
}

// LexSpec is the source form of a lexical specification: the input alphabet
// and the token entries in descending order of precedence. The entry order is
// meaningful; the compiler assigns priorities from it.
type LexSpec struct {
	Alphabet string      `json:"alphabet"`
	Entries  []*LexEntry `json:"entries"`
}

func (s *LexSpec) Validate() error {
	if s.Alphabet == "" {
		return fmt.Errorf("the lexical specification must have a non-empty alphabet")
	}
	if len(s.Entries) <= 0 {
		return fmt.Errorf("the lexical specification must have at least one entry")
	}
	{
		var errs []error
		for i, e := range s.Entries {
			err := e.validate()
			if err != nil {
				errs = append(errs, fmt.Errorf("entry #%v: %w", i+1, err))
			}
		}
		if len(errs) > 0 {
			var b strings.Builder
			fmt.Fprintf(&b, "%v", errs[0])
			for _, err := range errs[1:] {
				fmt.Fprintf(&b, "\n%v", err)
			}
			return fmt.Errorf("%s", b.String())
		}
	}
	{
		ks := map[string]struct{}{}
		for _, e := range s.Entries {
			if _, exist := ks[e.Kind.String()]; exist {
				return fmt.Errorf("kinds `%v` are duplicates", e.Kind)
			}
			ks[e.Kind.String()] = struct{}{}
		}
	}
	return nil
}

// TransitionTable is the portable form of a minimized DFA. State numbers
// start at 1 because 0 represents the invalid state in the transition array.
// Rows are states, columns are the symbols of Alphabet in order, and the cell
// at row*ColCount+col holds the next state.
type TransitionTable struct {
	Alphabet        string `json:"alphabet"`
	InitialState    int    `json:"initial_state"`
	AcceptingStates []bool `json:"accepting_states"`
	RowCount        int    `json:"row_count"`
	ColCount        int    `json:"col_count"`
	Transition      []int  `json:"transition"`
}

type CompiledLexEntry struct {
	Kind     LexKind          `json:"kind"`
	Priority int              `json:"priority"`
	DFA      *TransitionTable `json:"dfa"`
}

type CompiledLexSpec struct {
	Entries []*CompiledLexEntry `json:"entries"`
}
