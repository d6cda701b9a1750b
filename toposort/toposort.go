// Package toposort linearizes dependency graphs of integer-indexed nodes.
//
// The single entry point, Greedy, produces a deterministic topological
// order with a delay bias: nodes in the delay set are scheduled as late as
// the partial order allows, using a greedy (not globally optimal) rule.
package toposort

import (
	"fmt"
	"slices"
	"sort"
)

// CorruptScheduleError reports a cyclic or malformed dependency graph.
// Callers that construct their graphs from disjoint linear chains should
// treat it as a fatal programming error.
type CorruptScheduleError struct {
	Remaining []int
}

func (e *CorruptScheduleError) Error() string {
	return fmt.Sprintf("toposort: dependency graph is not acyclic, %d node(s) unschedulable: %v",
		len(e.Remaining), e.Remaining)
}

// Greedy returns a permutation of the keys of deps that is a valid
// topological order: for every node, all of its predecessors appear before
// it. deps maps each node to the set of nodes it depends on; every node in
// the graph must appear as a key.
//
// Among the nodes ready at each step, the lowest-index node not in delay is
// picked first; a delayed node is emitted only when nothing else is ready.
// The result is fully deterministic for a given input.
func Greedy(deps map[int][]int, delay map[int]bool) ([]int, error) {
	indeg := make(map[int]int, len(deps))
	succ := make(map[int][]int, len(deps))
	for n := range deps {
		indeg[n] = 0
	}
	for n, preds := range deps {
		seen := make(map[int]bool, len(preds))
		for _, p := range preds {
			if seen[p] {
				continue
			}
			seen[p] = true
			if _, ok := indeg[p]; !ok {
				return nil, &CorruptScheduleError{Remaining: []int{n}}
			}
			succ[p] = append(succ[p], n)
			indeg[n]++
		}
	}

	// Two sorted ready queues, preferred and deferred.
	var ready, deferred []int
	push := func(n int) {
		q := &ready
		if delay[n] {
			q = &deferred
		}
		i, _ := slices.BinarySearch(*q, n)
		*q = slices.Insert(*q, i, n)
	}
	for n, d := range indeg {
		if d == 0 {
			push(n)
		}
	}

	order := make([]int, 0, len(deps))
	for len(ready) > 0 || len(deferred) > 0 {
		var n int
		if len(ready) > 0 {
			n, ready = ready[0], ready[1:]
		} else {
			n, deferred = deferred[0], deferred[1:]
		}
		order = append(order, n)

		next := succ[n]
		sort.Ints(next)
		for _, m := range next {
			indeg[m]--
			if indeg[m] == 0 {
				push(m)
			}
		}
	}

	if len(order) != len(deps) {
		remaining := make([]int, 0, len(deps)-len(order))
		scheduled := make(map[int]bool, len(order))
		for _, n := range order {
			scheduled[n] = true
		}
		for n := range deps {
			if !scheduled[n] {
				remaining = append(remaining, n)
			}
		}
		sort.Ints(remaining)
		return nil, &CorruptScheduleError{Remaining: remaining}
	}
	return order, nil
}
