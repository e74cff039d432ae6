package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sayedabdulkarim/sarim-ai/internal/chunker"
	"github.com/sayedabdulkarim/sarim-ai/internal/embedding"
	"github.com/sayedabdulkarim/sarim-ai/internal/model"
	"github.com/sayedabdulkarim/sarim-ai/internal/pdf"
	"github.com/sayedabdulkarim/sarim-ai/internal/profile"
	"github.com/sayedabdulkarim/sarim-ai/internal/store"
)

// ErrNoContent means indexing produced no chunks at all, even after the
// fallback profile text.
var ErrNoContent = errors.New("no content to index")

// Indexer turns a resume document plus the structured profile record into
// embedded chunks and swaps them into the vector store.
type Indexer struct {
	store    store.VectorStore
	embedder embedding.Embedder
	splitter *chunker.Splitter
	profile  *profile.Record
	log      *zap.Logger
}

func NewIndexer(s store.VectorStore, e embedding.Embedder, sp *chunker.Splitter, rec *profile.Record, log *zap.Logger) *Indexer {
	return &Indexer{store: s, embedder: e, splitter: sp, profile: rec, log: log}
}

// Index extracts text from the document at path, chunks it together with
// one sentence-chunk per structured fact, embeds everything in one batch
// and transactionally replaces all chunks tagged with source. It returns
// the number of chunks indexed.
func (ix *Indexer) Index(ctx context.Context, source, path string) (int, error) {
	text, err := pdf.ExtractText(path)
	if err != nil {
		ix.log.Warn("extraction failed, falling back to canonical profile text",
			zap.String("path", path), zap.Error(err))
		text = ix.profile.FallbackText()
	}

	texts := ix.splitter.Split(pdf.Sanitize(text))
	texts = append(texts, ix.profile.Chunks()...)
	if len(texts) == 0 {
		return 0, fmt.Errorf("index %q: %w", source, ErrNoContent)
	}

	vectors, err := ix.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed %d chunks: %w", len(texts), err)
	}

	chunks := make([]model.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = model.Chunk{
			ID:       fmt.Sprintf("%s_chunk_%d", source, i),
			Content:  t,
			Source:   source,
			Sequence: i,
		}
	}
	if err := ix.store.Replace(ctx, source, chunks, vectors); err != nil {
		return 0, fmt.Errorf("replace source %q: %w", source, err)
	}

	ix.log.Info("source indexed", zap.String("source", source), zap.Int("chunks", len(chunks)))
	return len(chunks), nil
}
