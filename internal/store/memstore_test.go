package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sayedabdulkarim/sarim-ai/internal/model"
)

func chunksFor(source string, contents ...string) ([]model.Chunk, [][]float32) {
	chunks := make([]model.Chunk, len(contents))
	vectors := make([][]float32, len(contents))
	for i, c := range contents {
		chunks[i] = model.Chunk{
			ID:       fmt.Sprintf("%s_chunk_%d", source, i),
			Content:  c,
			Source:   source,
			Sequence: i,
		}
		// spread vectors around the unit circle so scores differ
		vectors[i] = []float32{1, float32(i) * 0.5, 0}
	}
	return chunks, vectors
}

func TestMemStore_SearchOrderedAndBounded(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	chunks, vectors := chunksFor("resume", "a", "b", "c", "d")
	require.NoError(t, s.Replace(ctx, "resume", chunks, vectors))

	res, err := s.Search(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, res, 3)
	for i := 1; i < len(res); i++ {
		assert.GreaterOrEqual(t, res[i-1].Score, res[i].Score)
	}
	for _, r := range res {
		assert.GreaterOrEqual(t, r.Score, -1.0)
		assert.LessOrEqual(t, r.Score, 1.0)
	}
	// the identical vector ranks first with similarity ~1
	assert.Equal(t, "a", res[0].Chunk.Content)
	assert.InDelta(t, 1.0, res[0].Score, 1e-9)
}

func TestMemStore_ReplaceRemovesStaleChunks(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	d1, v1 := chunksFor("resume", "old fact one", "old fact two")
	require.NoError(t, s.Replace(ctx, "resume", d1, v1))

	d2, v2 := chunksFor("resume", "new fact")
	require.NoError(t, s.Replace(ctx, "resume", d2, v2))

	res, err := s.Search(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	for _, r := range res {
		assert.NotContains(t, r.Chunk.Content, "old fact")
	}
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemStore_ReplaceKeepsOtherSources(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	rc, rv := chunksFor("resume", "resume fact")
	require.NoError(t, s.Replace(ctx, "resume", rc, rv))
	bc, bv := chunksFor("blog", "blog fact")
	require.NoError(t, s.Replace(ctx, "blog", bc, bv))

	rc2, rv2 := chunksFor("resume", "fresh resume fact")
	require.NoError(t, s.Replace(ctx, "resume", rc2, rv2))

	res, err := s.Search(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	var contents []string
	for _, r := range res {
		contents = append(contents, r.Chunk.Content)
	}
	assert.Contains(t, contents, "blog fact")
	assert.Contains(t, contents, "fresh resume fact")
	assert.NotContains(t, contents, "resume fact")
}

func TestMemStore_EmptyIndexReturnsEmpty(t *testing.T) {
	s := NewMemStore()
	res, err := s.Search(context.Background(), []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestMemStore_LengthMismatch(t *testing.T) {
	s := NewMemStore()
	chunks, _ := chunksFor("resume", "a", "b")
	err := s.Replace(context.Background(), "resume", chunks, [][]float32{{1, 0, 0}})
	assert.Error(t, err)
}

func TestVectorLiteral(t *testing.T) {
	assert.Equal(t, "[1.000000,-0.500000]", vectorLiteral([]float32{1, -0.5}))
	assert.Equal(t, "[]", vectorLiteral(nil))
}
