/*
Package anagram maps words onto their letter multiset.

A word's canonical key is its bytes sorted ascending. Two words are anagrams
exactly when their keys are equal, and a word w′ is derived from w when w′'s
key is w's key with one extra byte inserted:

	Canonicalize("sail")  // "ails"
	Canonicalize("nails") // "ailns"

Dictionary words are restricted to printable ASCII without space (33–126)
and to at most MaxWordLen bytes, so byte order and code point order agree.
*/
package anagram

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// MinChar is the lowest byte a dictionary word may contain ('!').
	MinChar = 33
	// MaxChar is the highest byte a dictionary word may contain ('~').
	MaxChar = 126
	// MaxWordLen caps word length. Longer input is rejected, never truncated.
	MaxWordLen = 255
	// Alphabet is the number of candidate bytes tried per insertion.
	Alphabet = MaxChar - MinChar + 1
)

// ErrMalformedWord matches every *MalformedWordError through errors.Is.
var ErrMalformedWord = errors.New("malformed word")

// Reason tells why a word was rejected.
type Reason int

const (
	ReasonEmpty Reason = iota + 1
	ReasonTooLong
	ReasonBadChar
)

func (r Reason) String() string {
	switch r {
	case ReasonEmpty:
		return "empty word"
	case ReasonTooLong:
		return fmt.Sprintf("longer than %d bytes", MaxWordLen)
	case ReasonBadChar:
		return fmt.Sprintf("byte outside %d-%d", MinChar, MaxChar)
	default:
		return "unknown"
	}
}

// MalformedWordError reports a word outside the accepted input domain.
// Offset is the index of the offending byte for ReasonBadChar, else -1.
type MalformedWordError struct {
	Word   string
	Reason Reason
	Offset int
}

func (e *MalformedWordError) Error() string {
	word := e.Word
	if len(word) > 32 {
		word = word[:32] + "..."
	}
	if e.Reason == ReasonBadChar {
		return fmt.Sprintf("malformed word %q: %s (0x%02x at offset %d)",
			word, e.Reason, e.Word[e.Offset], e.Offset)
	}
	return fmt.Sprintf("malformed word %q: %s", word, e.Reason)
}

// Is lets callers match any malformed word with errors.Is(err, ErrMalformedWord).
func (e *MalformedWordError) Is(target error) bool {
	return target == ErrMalformedWord
}

// Validate checks that word is 1–MaxWordLen bytes of printable ASCII.
func Validate(word string) error {
	if len(word) == 0 {
		return &MalformedWordError{Word: word, Reason: ReasonEmpty, Offset: -1}
	}
	if len(word) > MaxWordLen {
		return &MalformedWordError{Word: word, Reason: ReasonTooLong, Offset: -1}
	}
	for i := 0; i < len(word); i++ {
		if c := word[i]; c < MinChar || c > MaxChar {
			return &MalformedWordError{Word: word, Reason: ReasonBadChar, Offset: i}
		}
	}
	return nil
}

// Canonicalize returns the bytes of word sorted ascending.
// Words of 0–MaxWordLen bytes are accepted; longer words return a
// *MalformedWordError.
func Canonicalize(word string) (string, error) {
	if len(word) > MaxWordLen {
		return "", &MalformedWordError{Word: word, Reason: ReasonTooLong, Offset: -1}
	}
	if len(word) < 2 {
		return word, nil
	}
	b := []byte(word)
	slices.Sort(b)
	return string(b), nil
}

// Insert writes key with c merged in at its sorted position into dst and
// returns the result. c lands before the first byte that is >= c. dst is
// reused when it has room, so callers can keep one scratch buffer per walk.
func Insert(dst []byte, key string, c byte) []byte {
	dst = dst[:0]
	i := 0
	for i < len(key) && key[i] < c {
		i++
	}
	dst = append(dst, key[:i]...)
	dst = append(dst, c)
	return append(dst, key[i:]...)
}

// IsDerived reports whether to's letters are exactly from's letters plus
// one inserted byte. Both arguments are raw words, not keys.
func IsDerived(from, to string) bool {
	if len(to) != len(from)+1 || len(to) > MaxWordLen {
		return false
	}
	fk, _ := Canonicalize(from)
	tk, _ := Canonicalize(to)

	// walk both keys, allowing exactly one skip in tk
	skipped := false
	i, j := 0, 0
	for j < len(tk) {
		if i < len(fk) && fk[i] == tk[j] {
			i++
			j++
			continue
		}
		if skipped {
			return false
		}
		skipped = true
		j++
	}
	return i == len(fk)
}
