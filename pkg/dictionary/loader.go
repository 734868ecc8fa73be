package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

// LoadFile reads a dictionary from path in whatever format it is stored.
func LoadFile(path string, opts ...Option) (*Index, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loading %s as %s", path, format)

	b := NewBuilder(opts...)
	switch format {
	case FormatChunkDir:
		err = loadChunkDir(path, b)
	case FormatChunk:
		err = loadChunkFile(path, b)
	default:
		err = loadTextFile(path, b)
	}
	if err != nil {
		return nil, err
	}
	return b.Index()
}

// Load reads a plain text dictionary, one word per line.
func Load(r io.Reader, opts ...Option) (*Index, error) {
	b := NewBuilder(opts...)
	if err := readText(r, b); err != nil {
		return nil, err
	}
	return b.Index()
}

func loadTextFile(path string, b *Builder) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open dictionary %s: %w", path, err)
	}
	defer file.Close()

	if err := readText(file, b); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// readText adds one word per line. Line endings (\n or \r\n) are stripped
// and nothing else is trimmed.
func readText(r io.Reader, b *Builder) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		if err := b.Add(scanner.Text()); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read dictionary: %w", err)
	}
	return nil
}

// GetAvailableChunks scans dir for dict_NNNN.bin files, sorted by ID
func GetAvailableChunks(dir string) ([]ChunkInfo, error) {
	pattern := filepath.Join(dir, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		// dict_0001.bin -> 1
		idStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(file), "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			log.Warnf("Skipping chunk with unexpected name: %s", file)
			continue
		}
		wordCount, err := chunkWordCount(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			wordCount = 0
		}
		chunks = append(chunks, ChunkInfo{
			ID:        chunkID,
			Filename:  file,
			WordCount: wordCount,
		})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ID < chunks[j].ID
	})
	return chunks, nil
}

// chunkWordCount reads the word count from a chunk file's header
func chunkWordCount(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return 0, err
	}
	return int(wordCount), nil
}

func loadChunkDir(dir string, b *Builder) error {
	chunks, err := GetAvailableChunks(dir)
	if err != nil {
		return err
	}
	if len(chunks) == 0 {
		return fmt.Errorf("no chunk files found in %s", dir)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	for _, chunk := range chunks {
		if err := loadChunkFile(chunk.Filename, b); err != nil {
			return err
		}
	}
	return nil
}

func loadChunkFile(path string, b *Builder) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open chunk file %s: %w", path, err)
	}
	defer file.Close()

	if err := readChunk(bufio.NewReader(file), b); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// readChunk decodes one chunk: an int32 word count, then per word a uint16
// length, the word bytes and a uint16 rank. Ranks are not used here.
func readChunk(r io.Reader, b *Builder) error {
	var totalEntries int32
	if err := binary.Read(r, binary.LittleEndian, &totalEntries); err != nil {
		return fmt.Errorf("failed to read chunk header: %w", err)
	}
	if totalEntries < 0 {
		return fmt.Errorf("invalid word count %d", totalEntries)
	}

	for count := 0; count < int(totalEntries); count++ {
		var wordLen uint16
		if err := binary.Read(r, binary.LittleEndian, &wordLen); err != nil {
			return fmt.Errorf("failed to read word length: %w", err)
		}
		wordBytes := make([]byte, wordLen)
		if _, err := io.ReadFull(r, wordBytes); err != nil {
			return fmt.Errorf("failed to read word: %w", err)
		}
		var rank uint16
		if err := binary.Read(r, binary.LittleEndian, &rank); err != nil {
			return fmt.Errorf("failed to read rank: %w", err)
		}
		if err := b.Add(string(wordBytes)); err != nil {
			return err
		}
	}
	return nil
}

// WriteChunk encodes words in the chunk format, ranked by position.
func WriteChunk(w io.Writer, words []string) error {
	if len(words) > math.MaxInt32 {
		return fmt.Errorf("too many words for one chunk: %d", len(words))
	}
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	for i, word := range words {
		if len(word) > math.MaxUint16 {
			return fmt.Errorf("word %d too long for chunk format", i+1)
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word))); err != nil {
			return err
		}
		if _, err := bw.WriteString(word); err != nil {
			return err
		}
		rank := uint16(min(i+1, math.MaxUint16))
		if err := binary.Write(bw, binary.LittleEndian, rank); err != nil {
			return err
		}
	}
	return bw.Flush()
}
