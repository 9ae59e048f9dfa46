package compiler

import "sort"

// statePair keys the distinguishability table. The lower id always comes
// first so that {p,q} and {q,p} share an entry.
type statePair struct {
	first  int
	second int
}

func newStatePair(p, q int) statePair {
	if p > q {
		p, q = q, p
	}
	return statePair{
		first:  p,
		second: q,
	}
}

// minimizeDFA collapses behaviorally equivalent states using the
// table-filling algorithm. The input DFA is left untouched; the result is a
// fresh automaton.
func minimizeDFA(d *dfa, alphabet []rune) *dfa {
	states := make([]*dfaState, len(d.states))
	copy(states, d.states)
	sort.Slice(states, func(i, j int) bool {
		return states[i].id < states[j].id
	})

	// A pair starts out distinguishable iff exactly one member is final.
	table := map[statePair]bool{}
	for i := 0; i < len(states); i++ {
		for j := i + 1; j < len(states); j++ {
			p := newStatePair(states[i].id, states[j].id)
			table[p] = states[i].final != states[j].final
		}
	}

	// Sweep until the table reaches a fixed point. A pair becomes
	// distinguishable when some symbol leads it to a distinguishable pair,
	// or when only one member has a transition on the symbol.
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(states); i++ {
			for j := i + 1; j < len(states); j++ {
				p := newStatePair(states[i].id, states[j].id)
				if table[p] {
					continue
				}
				for _, symbol := range alphabet {
					t1, ok1 := states[i].tran[symbol]
					t2, ok2 := states[j].tran[symbol]
					if ok1 && ok2 {
						if table[newStatePair(t1.id, t2.id)] {
							table[p] = true
							changed = true
							break
						}
					} else if ok1 || ok2 {
						table[p] = true
						changed = true
						break
					}
				}
			}
		}
	}

	partitions := genPartitions(states, table)

	// The member with the lowest id represents its partition; the fresh
	// state inherits its name set and final flag. Partitions are ordered by
	// representative id so the output is deterministic.
	sort.Slice(partitions, func(i, j int) bool {
		return partitions[i][0].id < partitions[j][0].id
	})
	stateMap := map[*dfaState]*dfaState{}
	var newStates []*dfaState
	for i, part := range partitions {
		rep := part[0]
		s := &dfaState{
			id:    i,
			final: rep.final,
			tran:  map[rune]*dfaState{},
			names: rep.names,
		}
		newStates = append(newStates, s)
		for _, old := range part {
			stateMap[old] = s
		}
	}

	// Equivalent states agree on where each symbol leads modulo the
	// partition, so collapsing transitions through stateMap is conflict-free.
	for _, old := range states {
		mapped := stateMap[old]
		for symbol, target := range old.tran {
			mapped.tran[symbol] = stateMap[target]
		}
	}

	return &dfa{
		start:  stateMap[d.start],
		states: newStates,
	}
}

// genPartitions groups unmarked pairs into equivalence classes with a
// union-find over state ids. Members of each class come back sorted by id.
func genPartitions(states []*dfaState, table map[statePair]bool) [][]*dfaState {
	parent := map[int]int{}
	for _, s := range states {
		parent[s.id] = s.id
	}
	var find func(id int) int
	find = func(id int) int {
		if parent[id] == id {
			return id
		}
		root := find(parent[id])
		parent[id] = root
		return root
	}
	union := func(p, q int) {
		rootP := find(p)
		rootQ := find(q)
		if rootP != rootQ {
			parent[rootQ] = rootP
		}
	}

	for i := 0; i < len(states); i++ {
		for j := i + 1; j < len(states); j++ {
			if !table[newStatePair(states[i].id, states[j].id)] {
				union(states[i].id, states[j].id)
			}
		}
	}

	groups := map[int][]*dfaState{}
	for _, s := range states {
		root := find(s.id)
		groups[root] = append(groups[root], s)
	}
	var partitions [][]*dfaState
	for _, part := range groups {
		sort.Slice(part, func(i, j int) bool {
			return part[i].id < part[j].id
		})
		partitions = append(partitions, part)
	}
	return partitions
}
