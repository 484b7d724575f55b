// Package sqlite stores items and evaluations in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/review-queue/internal/domain"
	"github.com/bnema/review-queue/internal/ports"
	"github.com/spf13/viper"
	_ "modernc.org/sqlite"
)

const (
	dbPathKey    = "sqlite.path"
	dbConfigDir  = ".rq"
	dbConfigFile = "items.db"
	memoryPath   = ":memory:"
)

// ItemStore is the SQLite backed ports.ItemStore.
// All methods are safe for concurrent use.
type ItemStore struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ ports.ItemStore = (*ItemStore)(nil)

// NewItemStore opens the database named by the sqlite.path key, defaulting
// to ~/.rq/items.db.
func NewItemStore(cfg *viper.Viper) (*ItemStore, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(dbPathKey)
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(homeDir, dbConfigDir, dbConfigFile)
	}

	return Open(path)
}

// Open creates the schema if needed. File databases run in WAL mode;
// ":memory:" uses a single shared-cache connection.
func Open(path string) (*ItemStore, error) {
	connStr := path
	if path == memoryPath {
		connStr = "file::memory:?cache=shared"
	} else if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if path == memoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if path != memoryPath {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &ItemStore{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

func (s *ItemStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS items (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		payload_ref TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS evaluations (
		item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
		evaluator_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		rating INTEGER NOT NULL DEFAULT 0,
		text TEXT NOT NULL DEFAULT '',
		reaction TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (item_id, evaluator_id)
	);

	CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner_id);
	CREATE INDEX IF NOT EXISTS idx_evaluations_evaluator ON evaluations(evaluator_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database. It waits for in-flight operations.
func (s *ItemStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// FetchCandidatePool returns every item with a payload that excluding
// neither owns nor has evaluated, in insertion order, with its evaluation
// count.
func (s *ItemStore) FetchCandidatePool(ctx context.Context, excluding domain.UserID) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT i.id, i.owner_id, i.payload_ref, i.created_at,
			(SELECT COUNT(*) FROM evaluations c WHERE c.item_id = i.id)
		FROM items i
		WHERE i.owner_id != ?
			AND i.payload_ref != ''
			AND NOT EXISTS (
				SELECT 1 FROM evaluations e
				WHERE e.item_id = i.id AND e.evaluator_id = ?
			)
		ORDER BY i.rowid
	`, string(excluding), string(excluding))
	if err != nil {
		return nil, fmt.Errorf("query candidate pool: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		var (
			item      domain.Item
			id, owner string
			createdAt string
		)
		if err := rows.Scan(&id, &owner, &item.PayloadRef, &createdAt, &item.EvaluationCount); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		item.ID = domain.ItemID(id)
		item.OwnerID = domain.UserID(owner)
		item.CreatedAt = parseTime(createdAt)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate candidates: %w", err)
	}

	return items, nil
}

// RecordEvaluation upserts the evaluator's verdict on an item.
func (s *ItemStore) RecordEvaluation(ctx context.Context, evaluation domain.Evaluation) error {
	if err := evaluation.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var owner string
	err = tx.QueryRowContext(ctx, "SELECT owner_id FROM items WHERE id = ?", string(evaluation.ItemID)).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, evaluation.ItemID)
	}
	if err != nil {
		return fmt.Errorf("load item owner: %w", err)
	}
	if owner == string(evaluation.EvaluatorID) {
		return domain.ErrSelfEvaluation
	}
	if owner != string(evaluation.OwnerID) {
		return fmt.Errorf("%w: item %s is not owned by %s", domain.ErrInvalidEvaluation, evaluation.ItemID, evaluation.OwnerID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO evaluations (item_id, evaluator_id, kind, rating, text, reaction, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(item_id, evaluator_id) DO UPDATE SET
			kind = excluded.kind,
			rating = excluded.rating,
			text = excluded.text,
			reaction = excluded.reaction,
			recorded_at = excluded.recorded_at
	`,
		string(evaluation.ItemID),
		string(evaluation.EvaluatorID),
		string(evaluation.Kind),
		evaluation.Rating,
		evaluation.Text,
		string(evaluation.Reaction),
		formatTime(evaluation.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert evaluation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit evaluation: %w", err)
	}
	return nil
}

// SaveItem inserts or updates item metadata. Evaluations are kept.
func (s *ItemStore) SaveItem(ctx context.Context, item domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO items (id, owner_id, payload_ref, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			owner_id = excluded.owner_id,
			payload_ref = excluded.payload_ref,
			created_at = excluded.created_at
	`, string(item.ID), string(item.OwnerID), item.PayloadRef, formatTime(item.CreatedAt))
	if err != nil {
		return fmt.Errorf("save item: %w", err)
	}
	return nil
}

// ItemStats summarises the evaluations of every item owned by owner.
func (s *ItemStore) ItemStats(ctx context.Context, owner domain.UserID) ([]domain.ItemStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items, err := s.ownedItems(ctx, owner)
	if err != nil {
		return nil, err
	}

	byItem, err := s.ownedEvaluations(ctx, owner)
	if err != nil {
		return nil, err
	}

	stats := make([]domain.ItemStats, 0, len(items))
	for _, item := range items {
		stats = append(stats, domain.NewItemStats(item, byItem[item.ID]))
	}
	return stats, nil
}

func (s *ItemStore) ownedItems(ctx context.Context, owner domain.UserID) ([]domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, payload_ref, created_at FROM items WHERE owner_id = ? ORDER BY rowid
	`, string(owner))
	if err != nil {
		return nil, fmt.Errorf("query owned items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var id, payloadRef, createdAt string
		if err := rows.Scan(&id, &payloadRef, &createdAt); err != nil {
			return nil, fmt.Errorf("scan owned item: %w", err)
		}
		items = append(items, domain.Item{
			OwnerID:    owner,
			ID:         domain.ItemID(id),
			PayloadRef: payloadRef,
			CreatedAt:  parseTime(createdAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate owned items: %w", err)
	}
	return items, nil
}

func (s *ItemStore) ownedEvaluations(ctx context.Context, owner domain.UserID) (map[domain.ItemID][]domain.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.item_id, e.evaluator_id, e.kind, e.rating, e.text, e.reaction, e.recorded_at
		FROM evaluations e
		JOIN items i ON i.id = e.item_id
		WHERE i.owner_id = ?
		ORDER BY e.rowid
	`, string(owner))
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}
	defer rows.Close()

	byItem := make(map[domain.ItemID][]domain.Evaluation)
	for rows.Next() {
		var itemID, evaluator, kind, text, reaction, recordedAt string
		var rating int
		if err := rows.Scan(&itemID, &evaluator, &kind, &rating, &text, &reaction, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		byItem[domain.ItemID(itemID)] = append(byItem[domain.ItemID(itemID)], domain.Evaluation{
			OwnerID:     owner,
			ItemID:      domain.ItemID(itemID),
			EvaluatorID: domain.UserID(evaluator),
			Kind:        domain.EvaluationKind(kind),
			Rating:      rating,
			Text:        text,
			Reaction:    domain.Reaction(reaction),
			RecordedAt:  parseTime(recordedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return byItem, nil
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339Nano)
}
