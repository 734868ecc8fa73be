package chain

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/bastiangx/wordchain/pkg/anagram"
	"github.com/bastiangx/wordchain/pkg/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildIndex(t testing.TB, words ...string) *dictionary.Index {
	t.Helper()
	idx, err := dictionary.Build(words)
	require.NoError(t, err)
	return idx
}

func TestFindLongestChainScenarios(t *testing.T) {
	testCases := []struct {
		name   string
		words  []string
		start  string
		maxLen int
		chains [][]string
	}{
		{
			name:   "straight line",
			words:  []string{"abc", "abcd", "abcde"},
			start:  "abc",
			maxLen: 3,
			chains: [][]string{{"abc", "abcd", "abcde"}},
		},
		{
			name:   "branching",
			words:  []string{"abc", "abcd", "abce"},
			start:  "abc",
			maxLen: 2,
			chains: [][]string{{"abc", "abcd"}, {"abc", "abce"}},
		},
		{
			name:   "duplicate letters",
			words:  []string{"aab", "aabb"},
			start:  "aab",
			maxLen: 2,
			chains: [][]string{{"aab", "aabb"}},
		},
		{
			name:   "sail nails aliens",
			words:  []string{"sail", "nails", "aliens", "snail", "salient", "lanes"},
			start:  "sail",
			maxLen: 4,
			chains: [][]string{{"sail", "nails", "aliens", "salient"}},
		},
		{
			name:   "lone word",
			words:  []string{"xyz", "abcd"},
			start:  "xyz",
			maxLen: 1,
			chains: [][]string{{"xyz"}},
		},
		{
			name:   "branch then merge",
			words:  []string{"a", "ab", "ac", "abc"},
			start:  "a",
			maxLen: 3,
			chains: [][]string{{"a", "ab", "abc"}, {"a", "ac", "abc"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := FindLongestChain(buildIndex(t, tc.words...), tc.start)
			require.NoError(t, err)
			assert.Equal(t, tc.start, res.Start)
			assert.Equal(t, tc.maxLen, res.MaxLen)
			assert.Equal(t, tc.chains, res.Chains)
			assert.False(t, res.Truncated)
		})
	}
}

func TestFindAbsentWord(t *testing.T) {
	_, err := FindLongestChain(buildIndex(t, "abc", "abcd"), "xyz")
	assert.ErrorIs(t, err, dictionary.ErrWordNotFound)

	_, err = FindLongestChain(buildIndex(t, "abc"), "")
	assert.ErrorIs(t, err, anagram.ErrMalformedWord)

	_, err = FindLongestChain(buildIndex(t, "abc"), strings.Repeat("a", 300))
	assert.ErrorIs(t, err, anagram.ErrMalformedWord)
}

// A start word that is only an anagram of a dictionary word resolves to the
// first word with its letters; an exact variant heads its own chains.
func TestFindStartResolution(t *testing.T) {
	idx := buildIndex(t, "listen", "silent", "glisten")
	s := NewSolver(idx)

	res, err := s.Find("silent", 0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"silent", "glisten"}}, res.Chains)

	res, err = s.Find("inlets", 0)
	require.NoError(t, err)
	assert.Equal(t, "listen", res.Start)
	assert.Equal(t, [][]string{{"listen", "glisten"}}, res.Chains)
}

func TestFindLimit(t *testing.T) {
	idx := buildIndex(t, "ab", "abc", "abd", "abe", "abf")
	s := NewSolver(idx)

	res, err := s.Find("ab", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, res.MaxLen)
	assert.Equal(t, [][]string{{"ab", "abc"}, {"ab", "abd"}}, res.Chains)
	assert.True(t, res.Truncated)

	res, err = s.Find("ab", 4)
	require.NoError(t, err)
	assert.Len(t, res.Chains, 4)
	assert.False(t, res.Truncated)
}

func TestLongestChainRecurrence(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	idx := buildIndex(t, randomDictionary(rng, 300, "abcde", 7)...)
	s := NewSolver(idx)

	for e := range idx.Representatives() {
		n := s.LongestChain(e)
		require.GreaterOrEqual(t, n, 1)

		expected := 1
		for next := range s.Successors(e) {
			require.Equal(t, e.Len()+1, next.Len())
			require.True(t, anagram.IsDerived(e.Original, next.Original))
			expected = max(expected, 1+s.LongestChain(next))
		}
		require.Equal(t, expected, n, "recurrence broken at %q", e.Original)
	}
}

func TestEnumerateStopsEarly(t *testing.T) {
	idx := buildIndex(t, "a", "ab", "ac", "ad", "abc", "abd", "acd")
	s := NewSolver(idx)
	start, ok := idx.Lookup("a")
	require.True(t, ok)

	maxLen := s.LongestChain(start)
	require.Equal(t, 3, maxLen)

	var got [][]string
	for chain := range s.Enumerate(start, maxLen) {
		got = append(got, chain)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, [][]string{{"a", "ab", "abc"}, {"a", "ab", "abd"}}, got)

	// a fresh walk after an early stop sees the full set
	var all [][]string
	for chain := range s.Enumerate(start, maxLen) {
		all = append(all, chain)
	}
	assert.Len(t, all, 6)

	for range s.Enumerate(start, 0) {
		t.Fatal("no chains expected for maxLen 0")
	}
}

// Yielded chains are copies; mutating one must not leak into the next.
func TestEnumerateYieldsCopies(t *testing.T) {
	idx := buildIndex(t, "a", "ab", "ac")
	s := NewSolver(idx)
	start, _ := idx.Lookup("a")

	var all [][]string
	for chain := range s.Enumerate(start, s.LongestChain(start)) {
		all = append(all, chain)
		chain[0] = "mutated"
	}
	assert.Equal(t, [][]string{{"mutated", "ab"}, {"mutated", "ac"}}, all)

	res, err := s.Find("a", 0)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "ab"}, {"a", "ac"}}, res.Chains)
}

// Chains from the solver match an exhaustive search that only uses
// anagram.IsDerived over the raw words.
func TestAgainstBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 99))
	for round := 0; round < 40; round++ {
		words := randomDictionary(rng, 40+rng.IntN(40), "abcd", 6)
		idx := buildIndex(t, words...)
		reps := representativeWords(idx)

		start := reps[rng.IntN(len(reps))]
		res, err := FindLongestChain(idx, start)
		require.NoError(t, err)

		maxLen, chains := bruteForce(reps, start)
		require.Equal(t, maxLen, res.MaxLen, "round %d start %q", round, start)
		require.ElementsMatch(t, chains, res.Chains, "round %d start %q", round, start)

		for _, chain := range res.Chains {
			require.Len(t, chain, res.MaxLen)
			require.Equal(t, start, chain[0])
			for i := 1; i < len(chain); i++ {
				require.True(t, anagram.IsDerived(chain[i-1], chain[i]), "%q -> %q", chain[i-1], chain[i])
			}
		}
	}
}

func TestLongest(t *testing.T) {
	idx := buildIndex(t, "x", "xy", "b", "ab", "abc", "q", "aq", "aqz")
	s := NewSolver(idx)

	n, starts := s.Longest()
	assert.Equal(t, 3, n)
	var words []string
	for _, e := range starts {
		words = append(words, e.Original)
	}
	assert.Equal(t, []string{"b", "q"}, words)
}

func TestPrecomputeMatchesLazy(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 8))
	words := randomDictionary(rng, 3000, "abcdef", 9)
	idx := buildIndex(t, words...)

	lazy := NewSolver(idx)
	eager := NewSolver(idx)
	require.False(t, eager.Precomputed())
	require.NoError(t, eager.Precompute(context.Background(), 4))
	require.True(t, eager.Precomputed())

	for e := range idx.Representatives() {
		require.NotZero(t, eager.memo[e.ID], "memo missing for %q", e.Original)
		require.Equal(t, lazy.LongestChain(e), int(eager.memo[e.ID]), "mismatch at %q", e.Original)
	}
}

// After Precompute the memo is read-only, so queries can run concurrently.
func TestConcurrentQueriesAfterPrecompute(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	words := randomDictionary(rng, 1000, "abcde", 8)
	idx := buildIndex(t, words...)
	s := NewSolver(idx)
	require.NoError(t, s.Precompute(context.Background(), 0))

	reps := representativeWords(idx)
	done := make(chan error, 8)
	for w := 0; w < 8; w++ {
		go func(w int) {
			for i := w; i < len(reps); i += 8 {
				if _, err := s.Find(reps[i], 10); err != nil {
					done <- err
					return
				}
			}
			done <- nil
		}(w)
	}
	for w := 0; w < 8; w++ {
		require.NoError(t, <-done)
	}
}

func TestPrecomputeCancelled(t *testing.T) {
	idx := buildIndex(t, "a", "ab", "abc")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSolver(idx).Precompute(ctx, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeepChain(t *testing.T) {
	words := make([]string, 0, anagram.MaxWordLen)
	var sb strings.Builder
	for i := 0; i < anagram.MaxWordLen; i++ {
		sb.WriteByte(byte(anagram.MinChar + i%anagram.Alphabet))
		words = append(words, sb.String())
	}
	idx := buildIndex(t, words...)

	res, err := FindLongestChain(idx, words[0])
	require.NoError(t, err)
	assert.Equal(t, anagram.MaxWordLen, res.MaxLen)
	require.Len(t, res.Chains, 1)
	assert.Equal(t, words, res.Chains[0])

	eager := NewSolver(idx)
	require.NoError(t, eager.Precompute(context.Background(), 3))
	assert.Equal(t, anagram.MaxWordLen, eager.LongestChain(idx.Entry(0)))
}

func randomDictionary(rng *rand.Rand, n int, alphabet string, maxLen int) []string {
	words := make([]string, n)
	for i := range words {
		b := make([]byte, 1+rng.IntN(maxLen))
		for j := range b {
			b[j] = alphabet[rng.IntN(len(alphabet))]
		}
		words[i] = string(b)
	}
	return words
}

func representativeWords(idx *dictionary.Index) []string {
	var out []string
	for e := range idx.Representatives() {
		out = append(out, e.Original)
	}
	return out
}

// bruteForce enumerates every path from start over the representative
// words and keeps the longest ones.
func bruteForce(words []string, start string) (int, [][]string) {
	best := 0
	var chains [][]string
	var dfs func(path []string)
	dfs = func(path []string) {
		last := path[len(path)-1]
		extended := false
		for _, w := range words {
			if anagram.IsDerived(last, w) {
				extended = true
				dfs(append(path, w))
			}
		}
		if extended {
			return
		}
		switch {
		case len(path) > best:
			best = len(path)
			chains = [][]string{slices.Clone(path)}
		case len(path) == best:
			chains = append(chains, slices.Clone(path))
		}
	}
	dfs([]string{start})
	return best, chains
}
