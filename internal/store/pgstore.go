package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"github.com/sayedabdulkarim/sarim-ai/internal/model"
)

// PgStore is a pgvector-backed VectorStore.
type PgStore struct {
	db *sql.DB
}

func NewPgStore(conn string, dim int) (*PgStore, error) {
	db, err := sql.Open("postgres", conn)
	if err != nil {
		return nil, err
	}
	if err := ensureSchema(db, dim); err != nil {
		return nil, err
	}
	return &PgStore{db: db}, nil
}

// Replace deletes and re-inserts all chunks for a source inside one
// transaction, so queries never observe a half-replaced source.
func (s *PgStore) Replace(ctx context.Context, source string, chunks []model.Chunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("replace %q: %d chunks, %d vectors", source, len(chunks), len(vectors))
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE source = $1`, source); err != nil {
		return err
	}
	for i, c := range chunks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (source, chunk_id, content, seq, embedding)
			VALUES ($1, $2, $3, $4, $5::vector)
		`, source, c.ID, c.Content, c.Sequence, vectorLiteral(vectors[i]))
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PgStore) Search(ctx context.Context, vector []float32, k int) ([]model.SearchResult, error) {
	vec := vectorLiteral(vector)
	rows, err := s.db.QueryContext(ctx, `
		SELECT chunk_id, content, source, seq, 1 - (embedding <=> $1::vector) AS score
		FROM chunks
		ORDER BY embedding <=> $1::vector
		LIMIT $2
	`, vec, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.SearchResult
	for rows.Next() {
		var r model.SearchResult
		if err := rows.Scan(&r.Chunk.ID, &r.Chunk.Content, &r.Chunk.Source, &r.Chunk.Sequence, &r.Score); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

func (s *PgStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks`).Scan(&n)
	return n, err
}

func (s *PgStore) Close() error { return s.db.Close() }

func vectorLiteral(v []float32) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, f := range v {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(fmt.Sprintf("%.6f", float64(f)))
	}
	sb.WriteString("]")
	return sb.String()
}
