package dictionary

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/wordchain/pkg/anagram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadText(t *testing.T) {
	idx, err := Load(strings.NewReader("sail\r\nnails\naliens\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())

	e, ok := idx.Lookup("ailns")
	require.True(t, ok)
	assert.Equal(t, "nails", e.Original)
}

func TestLoadTextBlankLines(t *testing.T) {
	_, err := Load(strings.NewReader("sail\n\nnails\n"))
	var malformed *anagram.MalformedWordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, anagram.ReasonEmpty, malformed.Reason)
	assert.Contains(t, err.Error(), "word 2")

	idx, err := Load(strings.NewReader("sail\n\nnails\n"), WithSkipBlank(true))
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
}

func TestLoadFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc\nabcd\nabcde\n"), 0644))

	format, err := DetectFileFormat(path)
	require.NoError(t, err)
	assert.Equal(t, FormatText, format)

	idx, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, idx.Len())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestChunkRoundTrip(t *testing.T) {
	words := []string{"sail", "nails", "aliens", "salient"}
	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, words))

	b := NewBuilder()
	require.NoError(t, readChunk(&buf, b))
	idx, err := b.Index()
	require.NoError(t, err)
	require.Equal(t, len(words), idx.Len())
	for i, w := range words {
		assert.Equal(t, w, idx.Entry(int32(i)).Original)
	}
}

func TestChunkTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChunk(&buf, []string{"alpha", "beta"}))
	data := buf.Bytes()[:buf.Len()-3]

	b := NewBuilder()
	assert.Error(t, readChunk(bytes.NewReader(data), b))
}

func TestLoadChunkDir(t *testing.T) {
	dir := t.TempDir()
	writeChunkFile(t, dir, 2, []string{"abcd", "abcde"})
	writeChunkFile(t, dir, 1, []string{"abc", "cab"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dict_xx.bin"), []byte{0, 0, 0, 0}, 0644))

	chunks, err := GetAvailableChunks(dir)
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, 1, chunks[0].ID)
	assert.Equal(t, 2, chunks[0].WordCount)

	format, err := DetectFileFormat(dir)
	require.NoError(t, err)
	assert.Equal(t, FormatChunkDir, format)

	idx, err := LoadFile(dir)
	require.NoError(t, err)
	assert.Equal(t, 4, idx.Len())

	// chunk 1 loads first, so "abc" wins over "cab"
	e, ok := idx.Lookup("abc")
	require.True(t, ok)
	assert.Equal(t, "abc", e.Original)
	assert.Equal(t, int32(0), e.ID)
}

func TestLoadSingleChunkFile(t *testing.T) {
	dir := t.TempDir()
	path := writeChunkFile(t, dir, 7, []string{"one", "two"})

	format, err := DetectFileFormat(path)
	require.NoError(t, err)
	assert.Equal(t, FormatChunk, format)

	idx, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())
}

func TestDetectRejectsShortChunk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict_0001.bin")
	require.NoError(t, os.WriteFile(path, []byte{1}, 0644))
	_, err := DetectFileFormat(path)
	assert.Error(t, err)
}

func TestEmptyChunkDir(t *testing.T) {
	_, err := LoadFile(t.TempDir())
	assert.Error(t, err)
}

func writeChunkFile(t *testing.T, dir string, id int, words []string) string {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("dict_%04d.bin", id))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, WriteChunk(f, words))
	return path
}
