package chain

import (
	"iter"
	"slices"

	"github.com/bastiangx/wordchain/pkg/dictionary"
)

// Enumerate yields every chain of exactly maxLen words that starts at start.
// maxLen must equal LongestChain(start); only successors whose memoized
// length continues a maximal path are followed. Chains come out in
// ascending order of the byte inserted at each branch, and each yielded
// slice is a fresh copy the caller may keep.
func (s *Solver) Enumerate(start *dictionary.Entry, maxLen int) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		if maxLen < 1 {
			return
		}
		w := walker{s: s, path: make([]string, 0, maxLen), yield: yield}
		w.walk(start, maxLen)
	}
}

type walker struct {
	s     *Solver
	path  []string
	yield func([]string) bool
}

// walk returns false once the consumer stops the iteration.
func (w *walker) walk(e *dictionary.Entry, remaining int) bool {
	w.path = append(w.path, e.Original)
	defer func() { w.path = w.path[:len(w.path)-1] }()

	if remaining == 1 {
		return w.yield(slices.Clone(w.path))
	}
	for next := range w.s.Successors(e) {
		if w.s.longest(next) != remaining-1 {
			continue
		}
		if !w.walk(next, remaining-1) {
			return false
		}
	}
	return true
}
