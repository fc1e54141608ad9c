package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/iliyamo/cinereserve/internal/model"
)

const snapshotSchema = `CREATE TABLE IF NOT EXISTS store_snapshots (
    id         VARCHAR(64) NOT NULL PRIMARY KEY,
    payload    LONGTEXT    NOT NULL,
    updated_at DATETIME    NOT NULL
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// SQL stores the snapshot as one row of the store_snapshots table (MySQL).
type SQL struct {
	db  *sqlx.DB
	key string
	log *zap.Logger
}

// NewSQL returns a provider that reads and writes the row identified by key.
func NewSQL(db *sqlx.DB, key string, log *zap.Logger) *SQL {
	if db == nil {
		panic("nil db passed to NewSQL")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SQL{db: db, key: key, log: log}
}

// EnsureSchema creates the snapshot table when it does not exist.
func (s *SQL) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("create store_snapshots: %w", err)
	}
	return nil
}

func (s *SQL) Load(ctx context.Context) (model.Snapshot, error) {
	const q = `SELECT payload FROM store_snapshots WHERE id = ?`
	var payload string
	if err := s.db.GetContext(ctx, &payload, q, s.key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Snapshot{}, ErrNotExist
		}
		return model.Snapshot{}, fmt.Errorf("select snapshot %s: %w", s.key, err)
	}
	return Decode([]byte(payload))
}

func (s *SQL) Save(ctx context.Context, snap model.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	const q = `INSERT INTO store_snapshots (id, payload, updated_at) VALUES (?, ?, ?)
               ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = VALUES(updated_at)`
	if _, err := s.db.ExecContext(ctx, q, s.key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert snapshot %s: %w", s.key, err)
	}
	s.log.Debug("snapshot saved", zap.String("id", s.key), zap.Int("bytes", len(data)))
	return nil
}
