package syntax

import (
	"sort"
	"testing"

	"github.com/MoisesAGC/lexema/grammar"
)

const arithGrammar = `
E  -> T Ep ;
Ep -> plus T Ep | ε ;
T  -> F Tp ;
Tp -> star F Tp | ε ;
F  -> lparen E rparen | id ;
`

func parseGrammar(t *testing.T, src string) *grammar.Grammar {
	t.Helper()
	g, err := grammar.Parse(src)
	if err != nil {
		t.Fatalf("unexpected error occurred: %v", err)
	}
	return g
}

func names(set SymbolSet) []string {
	var ns []string
	for sym := range set {
		ns = append(ns, sym.Name)
	}
	sort.Strings(ns)
	return ns
}

func assertSet(t *testing.T, caption string, set SymbolSet, want []string) {
	t.Helper()
	got := names(set)
	sort.Strings(want)
	if len(got) != len(want) {
		t.Errorf("unexpected %v; want: %v, got: %v", caption, want, got)
		return
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("unexpected %v; want: %v, got: %v", caption, want, got)
			return
		}
	}
}

func TestAnalyzer_FirstSets(t *testing.T) {
	g := parseGrammar(t, arithGrammar)
	firsts := NewAnalyzer(g).FirstSets()

	nonTerm := func(name string) grammar.Symbol {
		return grammar.Symbol{Name: name, Type: grammar.SymbolTypeNonTerminal}
	}
	assertSet(t, "FIRST(E)", firsts[nonTerm("E")], []string{"lparen", "id"})
	assertSet(t, "FIRST(T)", firsts[nonTerm("T")], []string{"lparen", "id"})
	assertSet(t, "FIRST(F)", firsts[nonTerm("F")], []string{"lparen", "id"})
	assertSet(t, "FIRST(Ep)", firsts[nonTerm("Ep")], []string{"plus", grammar.EpsilonName})
	assertSet(t, "FIRST(Tp)", firsts[nonTerm("Tp")], []string{"star", grammar.EpsilonName})

	// FIRST of a terminal is the terminal itself.
	term := grammar.Symbol{Name: "plus", Type: grammar.SymbolTypeTerminal}
	assertSet(t, "FIRST(plus)", firsts[term], []string{"plus"})
}

func TestAnalyzer_FollowSets(t *testing.T) {
	g := parseGrammar(t, arithGrammar)
	follows, err := NewAnalyzer(g).FollowSets()
	if err != nil {
		t.Fatalf("unexpected error occurred: %v", err)
	}

	nonTerm := func(name string) grammar.Symbol {
		return grammar.Symbol{Name: name, Type: grammar.SymbolTypeNonTerminal}
	}
	assertSet(t, "FOLLOW(E)", follows[nonTerm("E")], []string{"rparen", "$"})
	assertSet(t, "FOLLOW(Ep)", follows[nonTerm("Ep")], []string{"rparen", "$"})
	assertSet(t, "FOLLOW(T)", follows[nonTerm("T")], []string{"plus", "rparen", "$"})
	assertSet(t, "FOLLOW(Tp)", follows[nonTerm("Tp")], []string{"plus", "rparen", "$"})
	assertSet(t, "FOLLOW(F)", follows[nonTerm("F")], []string{"star", "plus", "rparen", "$"})
}

// A nullable symbol in the suffix lets FIRST of the symbol after it into
// FOLLOW; a terminal at the end keeps FOLLOW of the left-hand side out.
func TestAnalyzer_FollowSets_nullableSuffix(t *testing.T) {
	g := parseGrammar(t, `
S -> A B c ;
A -> a ;
B -> b | ε ;
`)
	follows, err := NewAnalyzer(g).FollowSets()
	if err != nil {
		t.Fatalf("unexpected error occurred: %v", err)
	}
	nonTerm := func(name string) grammar.Symbol {
		return grammar.Symbol{Name: name, Type: grammar.SymbolTypeNonTerminal}
	}
	// b is in FOLLOW(A) directly; c joins it because B may derive ε.
	assertSet(t, "FOLLOW(A)", follows[nonTerm("A")], []string{"b", "c"})
	assertSet(t, "FOLLOW(B)", follows[nonTerm("B")], []string{"c"})
	assertSet(t, "FOLLOW(S)", follows[nonTerm("S")], []string{"$"})
}

func TestAnalyzer_FollowSets_missingStartSymbol(t *testing.T) {
	g := parseGrammar(t, `A -> a ;`)
	g.Start = grammar.Symbol{Name: "Z", Type: grammar.SymbolTypeNonTerminal}
	_, err := NewAnalyzer(g).FollowSets()
	if err == nil {
		t.Fatalf("expected error didn't occur")
	}
}

// FIRST of a nullable concatenation keeps ε only when every factor is
// nullable.
func TestAnalyzer_FirstSets_nullableConcatenation(t *testing.T) {
	g := parseGrammar(t, `
S -> A B ;
A -> a | ε ;
B -> b | ε ;
`)
	firsts := NewAnalyzer(g).FirstSets()
	nonTerm := func(name string) grammar.Symbol {
		return grammar.Symbol{Name: name, Type: grammar.SymbolTypeNonTerminal}
	}
	assertSet(t, "FIRST(S)", firsts[nonTerm("S")], []string{"a", "b", grammar.EpsilonName})
}
