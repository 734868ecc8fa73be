// Package chain finds the longest derived anagram chains in a dictionary.
//
// An edge runs from word w to word w′ when w′ holds all of w's letters plus
// one more. Edges always add a byte, so the graph is a DAG whose depth is
// bounded by anagram.MaxWordLen. A Solver memoizes the longest chain length
// per entry and uses those lengths to walk only the maximal paths.
package chain

import (
	"iter"

	"github.com/bastiangx/wordchain/pkg/anagram"
	"github.com/bastiangx/wordchain/pkg/dictionary"
	"github.com/charmbracelet/log"
)

// Result holds every maximal chain starting from one word.
type Result struct {
	Start     string
	MaxLen    int
	Chains    [][]string
	Truncated bool
}

// Solver answers chain queries over one index.
//
// LongestChain and Enumerate fill the memo lazily and are not safe for
// concurrent use. Once Precompute has returned nil the memo is complete and
// read-only, and queries may run from any number of goroutines.
type Solver struct {
	idx         *dictionary.Index
	memo        []int32 // 0 = not computed yet
	precomputed bool
}

// NewSolver returns a solver with an empty memo store for idx.
func NewSolver(idx *dictionary.Index) *Solver {
	return &Solver{
		idx:  idx,
		memo: make([]int32, idx.Len()),
	}
}

// Index returns the index the solver runs on.
func (s *Solver) Index() *dictionary.Index {
	return s.idx
}

// Precomputed reports whether Precompute has completed.
func (s *Solver) Precomputed() bool {
	return s.precomputed
}

// Successors yields the entries reachable from e by inserting one byte,
// in ascending order of the inserted byte.
func (s *Solver) Successors(e *dictionary.Entry) iter.Seq[*dictionary.Entry] {
	return func(yield func(*dictionary.Entry) bool) {
		buf := make([]byte, 0, e.Len()+1)
		for c := byte(anagram.MinChar); c <= anagram.MaxChar; c++ {
			buf = anagram.Insert(buf, e.Key, c)
			if next, ok := s.idx.LookupBytes(buf); ok {
				if !yield(next) {
					return
				}
			}
		}
	}
}

// LongestChain returns the number of words in the longest chain starting
// at e, counting e itself.
func (s *Solver) LongestChain(e *dictionary.Entry) int {
	return s.longest(s.representative(e))
}

// longest expects a representative entry; Successors only yields those.
func (s *Solver) longest(e *dictionary.Entry) int {
	if n := s.memo[e.ID]; n > 0 {
		return int(n)
	}

	best := 1
	for next := range s.Successors(e) {
		if n := 1 + s.longest(next); n > best {
			best = n
		}
	}
	s.memo[e.ID] = int32(best)
	return best
}

// representative maps a duplicate spelling onto the entry that owns its key,
// so each key has exactly one memo cell.
func (s *Solver) representative(e *dictionary.Entry) *dictionary.Entry {
	if rep, ok := s.idx.Lookup(e.Key); ok {
		return rep
	}
	return e
}

// Find resolves word and collects its maximal chains. A limit above zero
// stops collection after that many chains and marks the result Truncated.
//
// When word itself is in the dictionary it heads every chain; otherwise the
// first dictionary word with the same letters does.
func (s *Solver) Find(word string, limit int) (*Result, error) {
	start, err := s.idx.LookupWord(word)
	if err != nil {
		return nil, err
	}
	for _, v := range s.idx.Variants(start.Key) {
		if v.Original == word {
			start = v
			break
		}
	}

	maxLen := s.LongestChain(start)
	res := &Result{Start: start.Original, MaxLen: maxLen}
	for chain := range s.Enumerate(start, maxLen) {
		if limit > 0 && len(res.Chains) == limit {
			res.Truncated = true
			break
		}
		res.Chains = append(res.Chains, chain)
	}

	log.Debugf("Chains for %q: length=[%d], count=[%d], truncated=[%t]",
		word, res.MaxLen, len(res.Chains), res.Truncated)
	return res, nil
}

// FindLongestChain runs a one-off query with a fresh memo store.
func FindLongestChain(idx *dictionary.Index, word string) (*Result, error) {
	return NewSolver(idx).Find(word, 0)
}

// Longest returns the greatest chain length in the whole dictionary and the
// entries that start such chains, in construction order.
func (s *Solver) Longest() (int, []*dictionary.Entry) {
	best := 0
	var starts []*dictionary.Entry
	for e := range s.idx.Representatives() {
		n := s.LongestChain(e)
		switch {
		case n > best:
			best = n
			starts = append(starts[:0], e)
		case n == best:
			starts = append(starts, e)
		}
	}
	return best, starts
}
