package store

import (
	"context"

	"github.com/sayedabdulkarim/sarim-ai/internal/model"
)

// VectorStore persists chunk embeddings and answers nearest-neighbour
// queries by cosine similarity.
type VectorStore interface {
	// Replace atomically swaps every chunk carrying the given source tag
	// for the new set. Concurrent searches see either the old generation
	// or the new one, never a mix.
	Replace(ctx context.Context, source string, chunks []model.Chunk, vectors [][]float32) error

	// Search returns up to k results ordered by descending similarity.
	// Score is 1 - cosine distance.
	Search(ctx context.Context, vector []float32, k int) ([]model.SearchResult, error)

	// Count reports the number of indexed chunks.
	Count(ctx context.Context) (int, error)
}
