package syntax

import (
	"fmt"

	"github.com/MoisesAGC/lexema/grammar"
)

// SymbolSet is a set over a grammar's finite symbol universe. FIRST and
// FOLLOW iterate set unions to a fixed point, which the finite lattice
// guarantees to terminate.
type SymbolSet map[grammar.Symbol]struct{}

func (s SymbolSet) add(sym grammar.Symbol) bool {
	if _, ok := s[sym]; ok {
		return false
	}
	s[sym] = struct{}{}
	return true
}

func (s SymbolSet) Has(sym grammar.Symbol) bool {
	_, ok := s[sym]
	return ok
}

func (s SymbolSet) hasEpsilon() bool {
	for sym := range s {
		if sym.IsEpsilon() {
			return true
		}
	}
	return false
}

// Analyzer computes the FIRST and FOLLOW sets of a grammar. Both
// computations are pure; the analyzer caches their results.
type Analyzer struct {
	g       *grammar.Grammar
	firsts  map[grammar.Symbol]SymbolSet
	follows map[grammar.Symbol]SymbolSet
}

func NewAnalyzer(g *grammar.Grammar) *Analyzer {
	return &Analyzer{
		g: g,
	}
}

// FirstSets returns FIRST for every symbol of the grammar. FIRST of a
// terminal is the terminal itself; FIRST of a non-terminal accumulates until
// no production adds a symbol.
func (a *Analyzer) FirstSets() map[grammar.Symbol]SymbolSet {
	if a.firsts != nil {
		return a.firsts
	}

	firsts := map[grammar.Symbol]SymbolSet{}
	for _, sym := range a.g.NonTerminals {
		firsts[sym] = SymbolSet{}
	}
	for _, sym := range a.g.Terminals {
		firsts[sym] = SymbolSet{sym: {}}
	}

	changed := true
	for changed {
		changed = false
		for _, prod := range a.g.Productions {
			firstA := firsts[prod.Left]

			if len(prod.Right) == 1 && prod.Right[0].IsEpsilon() {
				if firstA.add(grammar.Epsilon) {
					changed = true
				}
				continue
			}

			allDeriveEpsilon := true
			for _, sym := range prod.Right {
				firstSym := firsts[sym]
				for s := range firstSym {
					if s.IsEpsilon() {
						continue
					}
					if firstA.add(s) {
						changed = true
					}
				}
				if !firstSym.hasEpsilon() {
					allDeriveEpsilon = false
					break
				}
			}
			if allDeriveEpsilon {
				if firstA.add(grammar.Epsilon) {
					changed = true
				}
			}
		}
	}

	a.firsts = firsts
	return firsts
}

// FollowSets returns FOLLOW for every non-terminal. The end marker $ seeds
// FOLLOW of the start symbol, which therefore must be a non-terminal of the
// grammar.
func (a *Analyzer) FollowSets() (map[grammar.Symbol]SymbolSet, error) {
	if a.follows != nil {
		return a.follows, nil
	}

	firsts := a.FirstSets()

	follows := map[grammar.Symbol]SymbolSet{}
	for _, sym := range a.g.NonTerminals {
		follows[sym] = SymbolSet{}
	}
	startFollow, ok := follows[a.g.Start]
	if !ok {
		return nil, fmt.Errorf("the start symbol %v is not a non-terminal of the grammar", a.g.Start.Name)
	}
	startFollow.add(grammar.EndMarker)

	changed := true
	for changed {
		changed = false
		for _, prod := range a.g.Productions {
			followLeft := follows[prod.Left]

			for i, sym := range prod.Right {
				if sym.Type != grammar.SymbolTypeNonTerminal {
					continue
				}
				followSym := follows[sym]

				allDeriveEpsilon := true
				for _, next := range prod.Right[i+1:] {
					firstNext := firsts[next]
					for s := range firstNext {
						if s.IsEpsilon() {
							continue
						}
						if followSym.add(s) {
							changed = true
						}
					}
					if !firstNext.hasEpsilon() {
						allDeriveEpsilon = false
						break
					}
				}
				if allDeriveEpsilon {
					for s := range followLeft {
						if followSym.add(s) {
							changed = true
						}
					}
				}
			}
		}
	}

	a.follows = follows
	return follows, nil
}
