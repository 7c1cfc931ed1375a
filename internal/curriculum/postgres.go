package curriculum

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 10 * time.Second

const createDocumentsTable = `CREATE TABLE IF NOT EXISTS curriculum_documents (
	board       TEXT        NOT NULL,
	class_level TEXT        NOT NULL,
	subject     TEXT        NOT NULL,
	document    JSON        NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (board, class_level, subject)
)`

// PostgresSource reads curriculum documents from the curriculum_documents table.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a PostgreSQL-backed curriculum source.
func NewPostgresSource(pool *pgxpool.Pool) (*PostgresSource, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresSource{pool: pool}, nil
}

func (s *PostgresSource) Name() string { return "postgres" }

// Migrate creates the curriculum_documents table when it does not exist.
func (s *PostgresSource) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if _, err := s.pool.Exec(ctx, createDocumentsTable); err != nil {
		return fmt.Errorf("create curriculum_documents: %w", err)
	}
	return nil
}

// Put validates a curriculum document and stores it, replacing any document
// with the same key.
func (s *PostgresSource) Put(ctx context.Context, data []byte) (Key, error) {
	entry, err := ParseDocument(data)
	if err != nil {
		return Key{}, err
	}
	doc, err := DocumentJSON(data)
	if err != nil {
		return Key{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err = s.pool.Exec(ctx,
		`INSERT INTO curriculum_documents (board, class_level, subject, document, updated_at)
		 VALUES ($1, $2, $3, $4::json, NOW())
		 ON CONFLICT (board, class_level, subject)
		 DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`,
		entry.Key.Board,
		entry.Key.ClassLevel,
		entry.Key.Subject,
		string(doc),
	)
	if err != nil {
		return Key{}, fmt.Errorf("store curriculum %s: %w", entry.Key, err)
	}
	return entry.Key, nil
}

func (s *PostgresSource) Entries(ctx context.Context) ([]Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT board, class_level, subject, document::text
		 FROM curriculum_documents
		 ORDER BY board, class_level, subject`,
	)
	if err != nil {
		return nil, fmt.Errorf("query curriculum documents: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var board, classLevel, subject, doc string
		if err := rows.Scan(&board, &classLevel, &subject, &doc); err != nil {
			return nil, fmt.Errorf("scan curriculum document: %w", err)
		}

		entry, err := ParseDocument([]byte(doc))
		if err != nil {
			return nil, fmt.Errorf("curriculum %s/%s/%s: %w", board, classLevel, subject, err)
		}
		if entry.Key != NewKey(board, classLevel, subject) {
			return nil, fmt.Errorf("curriculum %s/%s/%s: document is keyed %s", board, classLevel, subject, entry.Key)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate curriculum documents: %w", err)
	}

	return entries, nil
}
