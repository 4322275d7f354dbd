package graph

// State is the shared register file of a running automaton.
type State struct {
	Bits []bool
	Ints []int
}

// NewState returns a state holding every variable's initial value.
func (g *Graph) NewState() (st *State) {
	st = &State{
		Bits: make([]bool, len(g.Bits)),
		Ints: make([]int, len(g.Ints)),
	}

	for n, v := range g.Bits {
		st.Bits[n] = v.Init != 0
	}
	for n, v := range g.Ints {
		st.Ints[n] = v.Init
	}

	return
}

// Apply commits a set of writes as a parallel assignment.
func (st *State) Apply(writes []Write) {
	if len(writes) == 0 {
		return
	}

	values := make([]int, len(writes))
	for n, w := range writes {
		switch w.Op {
		case WRITE_SET_BIT, WRITE_SET_INT:
			values[n] = w.Value
		case WRITE_COPY_BIT:
			if st.Bits[w.Src] {
				values[n] = 1
			}
		case WRITE_COPY_INT:
			values[n] = st.Ints[w.Src]
		}
	}

	for n, w := range writes {
		switch w.Op {
		case WRITE_SET_BIT, WRITE_COPY_BIT:
			st.Bits[w.Dst] = values[n] != 0
		case WRITE_SET_INT, WRITE_COPY_INT:
			st.Ints[w.Dst] = values[n]
		}
	}
}

// Holds returns true if a single test holds.
func (st *State) Holds(test Test) bool {
	if test.Int {
		return st.Ints[test.Var] == test.Value
	}

	return st.Bits[test.Var] == (test.Value != 0)
}

// Satisfies returns true if the guard holds. An automatic guard never holds.
func (st *State) Satisfies(guard Guard) bool {
	for _, clause := range guard {
		ok := true
		for _, test := range clause {
			if !st.Holds(test) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}

	return false
}

// Select picks the edge of a node that fires, given how many ticks the node
// has been active. Guarded edges are tested before automatic edges.
// It returns nil and waiting=true if only a dwell edge is still pending.
func (st *State) Select(node *Node, dwell int) (edge *Edge, waiting bool) {
	for n := range node.Edges {
		e := &node.Edges[n]
		if !e.Automatic() && st.Satisfies(e.Guard) {
			return e, false
		}
	}

	for n := range node.Edges {
		e := &node.Edges[n]
		if !e.Automatic() {
			continue
		}
		if dwell < e.Dwell {
			waiting = true
			continue
		}
		return e, false
	}

	return nil, waiting
}
