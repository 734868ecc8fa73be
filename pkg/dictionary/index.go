/*
Package dictionary builds the canonical-key index that chain searches run on.

Every loaded word becomes an Entry holding its original text and its sorted
key. The Index maps each key to the first word that produced it, so lookups
stay deterministic when a dictionary holds several anagrams of each other;
the later words are still kept and reachable through Variants.

	idx, err := dictionary.Build([]string{"sail", "nails", "aliens"})
	e, ok := idx.Lookup("ailns") // e.Original == "nails"

Original words are also kept in a Patricia trie so callers can offer prefix
suggestions when a requested start word is missing.

An Index is immutable once built and safe for concurrent readers.
*/
package dictionary

import (
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/bastiangx/wordchain/pkg/anagram"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

var (
	// ErrWordNotFound is returned when a word's key has no entry in the index.
	ErrWordNotFound = errors.New("word not found in dictionary")
	// ErrResourceExhausted is returned when a build exceeds the configured limits.
	ErrResourceExhausted = errors.New("dictionary resource limit exceeded")
)

// Entry is one dictionary word.
type Entry struct {
	ID       int32
	Original string
	Key      string
}

// Len returns the word length in bytes.
func (e *Entry) Len() int {
	return len(e.Original)
}

// Stats summarizes an index.
type Stats struct {
	Words       int
	Keys        int
	Duplicates  int
	LongestWord int
}

// Index maps canonical keys to entries.
type Index struct {
	entries  []Entry
	byKey    map[string]int32
	variants map[string][]int32
	byLength [anagram.MaxWordLen + 1][]int32
	words    *patricia.Trie
	longest  int
}

// Option configures a build.
type Option func(*options)

type options struct {
	maxWords  int
	skipBlank bool
}

// WithMaxWords caps the number of words accepted. Zero means no cap.
func WithMaxWords(n int) Option {
	return func(o *options) {
		o.maxWords = n
	}
}

// WithSkipBlank drops empty words instead of rejecting them.
func WithSkipBlank(skip bool) Option {
	return func(o *options) {
		o.skipBlank = skip
	}
}

// Builder accumulates words into an Index.
type Builder struct {
	opts  options
	idx   *Index
	added int
	err   error
}

// NewBuilder returns an empty builder.
func NewBuilder(opts ...Option) *Builder {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{
		opts: o,
		idx: &Index{
			byKey:    make(map[string]int32),
			variants: make(map[string][]int32),
			words:    patricia.NewTrie(),
		},
	}
}

// Add validates word and appends it. After the first failure every call
// returns that same error.
func (b *Builder) Add(word string) error {
	if b.err != nil {
		return b.err
	}
	b.added++

	if word == "" && b.opts.skipBlank {
		return nil
	}
	if err := anagram.Validate(word); err != nil {
		b.err = fmt.Errorf("word %d: %w", b.added, err)
		return b.err
	}

	idx := b.idx
	if b.opts.maxWords > 0 && len(idx.entries) >= b.opts.maxWords {
		b.err = fmt.Errorf("%w: more than %d words", ErrResourceExhausted, b.opts.maxWords)
		return b.err
	}

	key, _ := anagram.Canonicalize(word)
	id := int32(len(idx.entries))
	idx.entries = append(idx.entries, Entry{ID: id, Original: word, Key: key})

	if first, exists := idx.byKey[key]; exists {
		if idx.variants[key] == nil {
			idx.variants[key] = []int32{first}
		}
		idx.variants[key] = append(idx.variants[key], id)
	} else {
		idx.byKey[key] = id
		idx.byLength[len(key)] = append(idx.byLength[len(key)], id)
	}

	// keep the first spelling when the exact word repeats
	idx.words.Insert(patricia.Prefix(word), id)

	if len(word) > idx.longest {
		idx.longest = len(word)
	}
	return nil
}

// Index returns the built index, or the first error seen by Add.
// The builder must not be used afterwards.
func (b *Builder) Index() (*Index, error) {
	if b.err != nil {
		return nil, b.err
	}
	idx := b.idx
	b.idx = nil
	log.Debugf("Index built: words=[%d], keys=[%d]", len(idx.entries), len(idx.byKey))
	return idx, nil
}

// Build indexes words in order. A malformed word aborts the whole build.
func Build(words []string, opts ...Option) (*Index, error) {
	b := NewBuilder(opts...)
	for _, w := range words {
		if err := b.Add(w); err != nil {
			return nil, err
		}
	}
	return b.Index()
}

// BuildSeq is Build for lazily produced words.
func BuildSeq(words iter.Seq[string], opts ...Option) (*Index, error) {
	b := NewBuilder(opts...)
	for w := range words {
		if err := b.Add(w); err != nil {
			return nil, err
		}
	}
	return b.Index()
}

// Lookup returns the representative entry for a canonical key: the first
// word with that key in construction order.
func (idx *Index) Lookup(key string) (*Entry, bool) {
	id, ok := idx.byKey[key]
	if !ok {
		return nil, false
	}
	return &idx.entries[id], true
}

// LookupBytes is Lookup for a key held in a scratch buffer.
func (idx *Index) LookupBytes(key []byte) (*Entry, bool) {
	id, ok := idx.byKey[string(key)]
	if !ok {
		return nil, false
	}
	return &idx.entries[id], true
}

// LookupWord validates word and returns the representative entry of its key.
func (idx *Index) LookupWord(word string) (*Entry, error) {
	if err := anagram.Validate(word); err != nil {
		return nil, err
	}
	key, _ := anagram.Canonicalize(word)
	e, ok := idx.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrWordNotFound, word)
	}
	return e, nil
}

// Variants returns every entry sharing key, representative first.
func (idx *Index) Variants(key string) []*Entry {
	if ids, ok := idx.variants[key]; ok {
		out := make([]*Entry, len(ids))
		for i, id := range ids {
			out[i] = &idx.entries[id]
		}
		return out
	}
	if e, ok := idx.Lookup(key); ok {
		return []*Entry{e}
	}
	return nil
}

// Entry returns the entry with the given ID.
func (idx *Index) Entry(id int32) *Entry {
	return &idx.entries[id]
}

// Len returns the number of words, duplicates included.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// LongestWord returns the length of the longest indexed word.
func (idx *Index) LongestWord() int {
	return idx.longest
}

// ByLength returns the IDs of representative entries of length n.
// The returned slice must not be modified.
func (idx *Index) ByLength(n int) []int32 {
	if n < 0 || n > anagram.MaxWordLen {
		return nil
	}
	return idx.byLength[n]
}

// Representatives yields the representative entry of every key in
// construction order.
func (idx *Index) Representatives() iter.Seq[*Entry] {
	return func(yield func(*Entry) bool) {
		for i := range idx.entries {
			e := &idx.entries[i]
			if idx.byKey[e.Key] != e.ID {
				continue
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Stats returns word and key counts.
func (idx *Index) Stats() Stats {
	return Stats{
		Words:       len(idx.entries),
		Keys:        len(idx.byKey),
		Duplicates:  len(idx.entries) - len(idx.byKey),
		LongestWord: idx.longest,
	}
}

// Complete returns up to limit indexed words starting with prefix, sorted.
// A limit of zero or less returns every match.
func (idx *Index) Complete(prefix string, limit int) []string {
	var matches []string
	err := idx.words.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		matches = append(matches, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting word trie: %v", err)
		return nil
	}

	sort.Strings(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Suggest offers words sharing the longest possible prefix with word.
// It is meant for "did you mean" hints after ErrWordNotFound.
func (idx *Index) Suggest(word string, limit int) []string {
	for n := len(word); n > 0; n-- {
		if matches := idx.Complete(word[:n], limit); len(matches) > 0 {
			return matches
		}
	}
	return nil
}
