package store

import (
	"database/sql"
	"fmt"
)

// ensureSchema creates the pgvector extension, the chunks table and a
// cosine-distance index.
func ensureSchema(db *sql.DB, dim int) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS chunks (
			id SERIAL PRIMARY KEY,
			source TEXT NOT NULL,
			chunk_id TEXT NOT NULL,
			content TEXT NOT NULL,
			seq INT NOT NULL,
			embedding vector(%d)
		)`, dim),
		`CREATE INDEX IF NOT EXISTS chunks_source_idx ON chunks (source)`,
		`DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_class c
				JOIN pg_namespace n ON n.oid=c.relnamespace
				WHERE c.relname='chunks_embedding_ivfflat_idx'
			) THEN
				EXECUTE 'CREATE INDEX chunks_embedding_ivfflat_idx ON chunks USING ivfflat (embedding vector_cosine_ops) WITH (lists=100)';
			END IF;
		END $$;`,
	}

	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}

	// ivfflat needs statistics to plan sensibly
	_, _ = db.Exec(`ANALYZE chunks`)
	return nil
}
