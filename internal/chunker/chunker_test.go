package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	s := New(500, 50)
	chunks := s.Split("A short paragraph about work.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short paragraph about work.", chunks[0])
}

func TestSplit_EmptyInput(t *testing.T) {
	s := New(500, 50)
	assert.Nil(t, s.Split(""))
	assert.Nil(t, s.Split("   \n\n  "))
}

func TestSplit_RespectsSizeBound(t *testing.T) {
	s := New(100, 20)
	text := strings.Repeat("one two three four five six seven eight. ", 30)
	chunks := s.Split(text)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 100, "chunk %q exceeds size", c)
	}
}

func TestSplit_PrefersParagraphBoundaries(t *testing.T) {
	para1 := strings.Repeat("alpha beta. ", 7)
	para2 := strings.Repeat("gamma delta. ", 7)
	s := New(100, 0)
	chunks := s.Split(para1 + "\n\n" + para2)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.True(t, strings.HasPrefix(chunks[0], "alpha"))
	for _, c := range chunks {
		assert.False(t, strings.Contains(c, "delta") && strings.Contains(c, "beta"),
			"chunk %q mixes paragraphs", c)
	}
}

func TestSplit_OverlapCarriesContext(t *testing.T) {
	text := strings.Repeat("word ", 80)
	s := New(100, 30)
	chunks := s.Split(strings.TrimSpace(text))
	require.GreaterOrEqual(t, len(chunks), 2)
	// consecutive chunks share a tail/head
	tail := chunks[0][len(chunks[0])-10:]
	assert.Contains(t, chunks[1], strings.TrimSpace(tail))
}

func TestSplit_HardCutForUnbrokenText(t *testing.T) {
	text := strings.Repeat("x", 1200)
	s := New(500, 50)
	chunks := s.Split(text)
	require.GreaterOrEqual(t, len(chunks), 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 500)
	}
	assert.Equal(t, text[:500], chunks[0])
}

func TestSplit_Deterministic(t *testing.T) {
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 40)
	s := New(500, 50)
	assert.Equal(t, s.Split(text), s.Split(text))
}
