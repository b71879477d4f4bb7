// Package chunker provides fixed-size text splitting with overlap.
package chunker

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 100

// Chunker splits extracted text into fixed-size spans. Consecutive
// spans share an overlap so sentences cut at a boundary still appear
// whole in one of them.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkSize returns the configured chunk size.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Split divides text into chunks of at most chunkSize bytes with the
// configured overlap. Boundaries are pulled back to the nearest rune
// start so a multibyte character is never cut in half; every chunk is
// valid UTF-8. Whitespace-only input produces no chunks.
func (c *Chunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	textLen := len(text)
	estimated := (textLen / (c.chunkSize - c.overlap)) + 1
	chunks := make([]string, 0, estimated)

	start := 0
	for start < textLen {
		end := start + c.chunkSize
		if end >= textLen {
			end = textLen
		} else {
			end = backToRuneStart(text, end)
			if end <= start {
				// chunk size smaller than one rune; keep the rune whole
				_, size := utf8.DecodeRuneInString(text[start:])
				end = start + size
			}
		}

		chunks = append(chunks, text[start:end])
		if end == textLen {
			break
		}

		next := backToRuneStart(text, start+c.chunkSize-c.overlap)
		if next <= start {
			_, size := utf8.DecodeRuneInString(text[start:])
			next = start + size
		}
		start = next
	}

	return chunks
}

// backToRuneStart returns the largest offset <= i at which a rune starts.
func backToRuneStart(text string, i int) int {
	for i > 0 && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}
