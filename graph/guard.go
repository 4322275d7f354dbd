package graph

import (
	"fmt"
	"strings"
)

// Test is a single equality test against a state variable.
type Test struct {
	Int   bool // If set, Var is an Int, otherwise a Bit.
	Var   int
	Value int
}

// BitIs tests a bit for a value.
func BitIs(b Bit, value bool) Test {
	v := 0
	if value {
		v = 1
	}
	return Test{Var: int(b), Value: v}
}

// IntIs tests an integer for a value.
func IntIs(i Int, value int) Test {
	return Test{Int: true, Var: int(i), Value: value}
}

// Clause is a conjunction of tests.
type Clause []Test

// Guard is a disjunction of clauses. A nil guard never holds; it marks an
// automatic edge instead.
type Guard []Clause

// When returns a guard holding when all tests hold.
func When(tests ...Test) Guard {
	return Guard{Clause(tests)}
}

// Either returns a guard holding when any of the clauses hold.
func Either(clauses ...Clause) Guard {
	return Guard(clauses)
}

// String returns a readable form of the guard, for listings.
func (guard Guard) String() string {
	if len(guard) == 0 {
		return "auto"
	}

	var ors []string
	for _, clause := range guard {
		var ands []string
		for _, test := range clause {
			if test.Int {
				ands = append(ands, fmt.Sprintf("i%d==%d", test.Var, test.Value))
			} else {
				ands = append(ands, fmt.Sprintf("b%d==%d", test.Var, test.Value))
			}
		}
		ors = append(ors, strings.Join(ands, "&&"))
	}

	return strings.Join(ors, " || ")
}
