package compiler

import (
	"sort"
	"strconv"
	"strings"
)

type nfaStateSet map[*nfaState]struct{}

// key canonicalizes a set of NFA states as a sorted id vector. Set equality
// drives the deduplication of DFA states during subset construction, so the
// key must not depend on insertion order or pointer identity.
func (s nfaStateSet) key() string {
	ids := make([]int, 0, len(s))
	for st := range s {
		ids = append(ids, st.id)
	}
	sort.Ints(ids)
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

func (s nfaStateSet) hasFinal() bool {
	for st := range s {
		if st.final {
			return true
		}
	}
	return false
}

type dfaState struct {
	id    int
	final bool
	tran  map[rune]*dfaState
	// names is the set of NFA states this state represents. It identifies
	// the state during subset construction only.
	names nfaStateSet
}

type dfa struct {
	start  *dfaState
	states []*dfaState
}

// epsilonClosure expands a seed set along ε transitions. The seed set itself
// belongs to the closure.
func epsilonClosure(states nfaStateSet) nfaStateSet {
	closure := nfaStateSet{}
	var stack []*nfaState
	for s := range states {
		closure[s] = struct{}{}
		stack = append(stack, s)
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range s.transitions {
			if t.symbol != epsilon {
				continue
			}
			if _, ok := closure[t.to]; !ok {
				closure[t.to] = struct{}{}
				stack = append(stack, t.to)
			}
		}
	}
	return closure
}

// move returns the states directly reachable from any member of the set via a
// transition on the symbol.
func move(states nfaStateSet, symbol rune) nfaStateSet {
	result := nfaStateSet{}
	for s := range states {
		for _, t := range s.transitions {
			if t.symbol == symbol {
				result[t.to] = struct{}{}
			}
		}
	}
	return result
}

// genDFA converts an NFA into a DFA over the given alphabet using subset
// construction. Missing transitions denote rejection; no dead state is
// materialized.
func genDFA(n *nfa, alphabet []rune) *dfa {
	var states []*dfaState
	stateMap := map[string]*dfaState{}
	newState := func(names nfaStateSet) *dfaState {
		s := &dfaState{
			id:    len(states),
			tran:  map[rune]*dfaState{},
			names: names,
		}
		states = append(states, s)
		stateMap[names.key()] = s
		return s
	}

	startClosure := epsilonClosure(nfaStateSet{n.start: {}})
	start := newState(startClosure)
	unmarked := []*dfaState{start}
	for len(unmarked) > 0 {
		current := unmarked[0]
		unmarked = unmarked[1:]
		for _, symbol := range alphabet {
			closure := epsilonClosure(move(current.names, symbol))
			if len(closure) == 0 {
				continue
			}
			target, ok := stateMap[closure.key()]
			if !ok {
				target = newState(closure)
				unmarked = append(unmarked, target)
			}
			current.tran[symbol] = target
		}
	}

	for _, s := range states {
		s.final = s.names.hasFinal()
	}

	return &dfa{
		start:  start,
		states: states,
	}
}
