package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sayedabdulkarim/sarim-ai/internal/embedding"
	"github.com/sayedabdulkarim/sarim-ai/internal/model"
	"github.com/sayedabdulkarim/sarim-ai/internal/store"
)

// Retriever embeds a query and finds the most similar indexed chunks.
type Retriever struct {
	store    store.VectorStore
	embedder embedding.Embedder
	log      *zap.Logger
}

func NewRetriever(s store.VectorStore, e embedding.Embedder, log *zap.Logger) *Retriever {
	return &Retriever{store: s, embedder: e, log: log}
}

// Search returns up to k results in descending score order. An empty
// index or an unavailable backend yields an empty result set, not an
// error: callers treat it as "no grounding available".
func (r *Retriever) Search(ctx context.Context, query string, k int) []model.SearchResult {
	vectors, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		r.log.Warn("query embedding unavailable", zap.Error(err))
		return nil
	}
	results, err := r.store.Search(ctx, vectors[0], k)
	if err != nil {
		r.log.Warn("similarity search unavailable", zap.Error(err))
		return nil
	}
	return results
}
