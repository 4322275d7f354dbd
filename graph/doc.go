// Package graph implements the guarded-transition automaton that gtac
// programs compile into.
//
// An automaton is an arena of nodes. Each node performs a fixed set of
// writes to the shared state when it is entered, and owns an ordered list of
// outgoing edges. Guarded edges are tested first, in insertion order; the
// automatic (unguarded) edges are the lowest priority fallback. Exactly one
// edge fires per tick.
//
// The state is a flat set of boolean bits and integer variables. Writes
// attached to a single node or edge behave as a parallel assignment: every
// source is read before any destination is committed.
package graph
