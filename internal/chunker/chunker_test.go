package chunker

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultChunkSize, c.ChunkSize())
	assert.Equal(t, DefaultChunkOverlap, c.Overlap())
}

func TestNew_OverlapClampedBelowChunkSize(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(100))
	assert.Equal(t, 25, c.Overlap())
}

func TestSplit_EmptyText(t *testing.T) {
	c := New()
	assert.Nil(t, c.Split(""))
	assert.Nil(t, c.Split("   \n\t "))
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(10))
	chunks := c.Split("short text")
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplit_RespectsSizeAndOverlap(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(3))
	text := "abcdefghijklmnopqrstuvwxyz"

	chunks := c.Split(text)
	require.Len(t, chunks, 4)
	assert.Equal(t, "abcdefghij", chunks[0])
	assert.Equal(t, "hijklmnopq", chunks[1])
	assert.Equal(t, "opqrstuvwx", chunks[2])
	assert.Equal(t, "vwxyz", chunks[3])

	// Each chunk starts with the last 3 characters of its predecessor
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		assert.True(t, strings.HasPrefix(chunks[i], prev[len(prev)-3:]))
	}
}

func TestSplit_NoChunkExceedsSize(t *testing.T) {
	c := New(WithChunkSize(50), WithOverlap(5))
	text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 30)

	for _, chunk := range c.Split(text) {
		assert.LessOrEqual(t, len(chunk), 50)
	}
}

func TestSplit_CoversAllText(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(0))
	text := "0123456789abcdefghij"

	chunks := c.Split(text)
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplit_NeverCutsRunes(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(3))
	// 2-byte runes land on every boundary a byte-offset split would pick
	text := strings.Repeat("configuración y señalización ", 10)

	chunks := c.Split(text)
	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d is not valid UTF-8: %q", i, chunk)
		assert.LessOrEqual(t, len(chunk), 10)
	}
}

func TestSplit_MultibyteCoversAllText(t *testing.T) {
	c := New(WithChunkSize(7), WithOverlap(0))
	text := "áéíóúñü¿¡€…—αβγδε"

	chunks := c.Split(text)
	assert.Equal(t, text, strings.Join(chunks, ""))
	for _, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk))
	}
}

func TestSplit_ChunkSmallerThanRuneStillProgresses(t *testing.T) {
	c := New(WithChunkSize(1), WithOverlap(0))
	text := "€€€" // 3-byte runes, chunk budget of 1 byte

	chunks := c.Split(text)
	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.Equal(t, "€", chunk)
	}
}
