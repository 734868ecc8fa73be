package dictionary

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// FileFormat represents different dictionary file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // Plain text, one word per line
	FormatChunk              // Chunked binary format
	FormatChunkDir           // Directory of dict_NNNN.bin chunks
)

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary",
		Extensions:  []string{".txt", ".dic", ".lst", ""},
		MinSize:     0,
	},
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4, // At least word count header
	},
	FormatChunkDir: {
		Format:      FormatChunkDir,
		Description: "Chunk Directory",
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "Unknown"
}

// DetectFileFormat picks the reader for path. Directories are chunk sets,
// .bin files are single chunks and anything else is read as text.
func DetectFileFormat(path string) (FileFormat, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if stat.IsDir() {
		return FormatChunkDir, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".bin" {
		if err := validateBinaryFormat(path, stat.Size()); err != nil {
			return FormatUnknown, err
		}
		return FormatChunk, nil
	}
	return FormatText, nil
}

// validateBinaryFormat checks the chunk header before a full read
func validateBinaryFormat(filename string, size int64) error {
	if size < supportedFormats[FormatChunk].MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s",
			filename, size, FormatChunk)
	}

	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var wordCount int32
	if err := binary.Read(file, binary.LittleEndian, &wordCount); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if wordCount < 0 {
		return fmt.Errorf("invalid word count in %s: %d (negative)", filename, wordCount)
	}

	log.Debugf("Binary file %s validated: %d words", filename, wordCount)
	return nil
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
