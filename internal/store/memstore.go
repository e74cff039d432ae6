package store

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/sayedabdulkarim/sarim-ai/internal/model"
)

type memEntry struct {
	chunk  model.Chunk
	vector []float32
}

// MemStore is an in-memory VectorStore using brute-force cosine similarity.
// It backs tests and single-process deployments without Postgres.
type MemStore struct {
	mu      sync.RWMutex
	entries []memEntry
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Replace(_ context.Context, source string, chunks []model.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("replace %q: %d chunks, %d vectors", source, len(chunks), len(vectors))
	}
	next := make([]memEntry, 0, len(chunks))
	for i, c := range chunks {
		next = append(next, memEntry{chunk: c, vector: vectors[i]})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0:0]
	for _, e := range s.entries {
		if e.chunk.Source != source {
			kept = append(kept, e)
		}
	}
	s.entries = append(kept, next...)
	return nil
}

func (s *MemStore) Search(_ context.Context, vector []float32, k int) ([]model.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if k <= 0 || len(s.entries) == 0 {
		return nil, nil
	}
	res := make([]model.SearchResult, 0, len(s.entries))
	for _, e := range s.entries {
		res = append(res, model.SearchResult{Chunk: e.chunk, Score: cosine(e.vector, vector)})
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Score > res[j].Score })
	if k < len(res) {
		res = res[:k]
	}
	return res, nil
}

func (s *MemStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
