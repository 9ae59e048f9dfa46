package compiler

import "testing"

func buildNFA(t *testing.T, pattern string) *nfa {
	t.Helper()
	postfix, err := toPostfix(pattern)
	if err != nil {
		t.Fatalf("unexpected error occurred: %v", err)
	}
	n, err := (&nfaBuilder{}).build(postfix)
	if err != nil {
		t.Fatalf("unexpected error occurred: %v", err)
	}
	return n
}

func buildDFA(t *testing.T, pattern string, alphabet string) *dfa {
	t.Helper()
	return genDFA(buildNFA(t, pattern), []rune(alphabet))
}

// nfaAccepts simulates the NFA on the input via ε-closure and move.
func nfaAccepts(n *nfa, input string) bool {
	states := epsilonClosure(nfaStateSet{n.start: {}})
	for _, c := range input {
		states = epsilonClosure(move(states, c))
		if len(states) == 0 {
			return false
		}
	}
	return states.hasFinal()
}

func dfaAccepts(d *dfa, input string) bool {
	state := d.start
	for _, c := range input {
		next, ok := state.tran[c]
		if !ok {
			return false
		}
		state = next
	}
	return state.final
}

// enumStrings lists every string over the alphabet up to the given length,
// the empty string included.
func enumStrings(alphabet string, maxLen int) []string {
	results := []string{""}
	prev := []string{""}
	for l := 1; l <= maxLen; l++ {
		var next []string
		for _, p := range prev {
			for _, c := range alphabet {
				next = append(next, p+string(c))
			}
		}
		results = append(results, next...)
		prev = next
	}
	return results
}
