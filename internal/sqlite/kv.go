package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// KV is the key-value view of a Backend. It implements types.Store.
type KV struct {
	b *Backend
}

// KV returns the key-value store backed by the kv table.
func (b *Backend) KV() *KV {
	return &KV{b: b}
}

// Get returns the value stored under key. A detached backend or a failed
// query reports the key as absent.
func (s *KV) Get(key string) (string, bool) {
	b := s.b
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return "", false
	}

	var value string
	err := b.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false
	}
	if err != nil {
		b.log.Warn("reading kv", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return value, true
}

// Set stores value under key and rewrites kv.jsonl.
func (s *KV) Set(key, value string) error {
	b := s.b
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	_, err := b.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, now(),
	)
	if err != nil {
		return fmt.Errorf("writing kv %s: %w", key, err)
	}
	return b.persistKV()
}

// persistKV rewrites kv.jsonl from the table. The caller must hold b.mu.
func (b *Backend) persistKV() error {
	rows, err := b.db.Query("SELECT key, value, updated_at FROM kv ORDER BY key")
	if err != nil {
		return fmt.Errorf("querying kv for JSONL: %w", err)
	}
	defer rows.Close()

	var recs []kvJSON
	for rows.Next() {
		var r kvJSON
		if err := rows.Scan(&r.Key, &r.Value, &r.UpdatedAt); err != nil {
			return fmt.Errorf("scanning kv for JSONL: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating kv for JSONL: %w", err)
	}
	rows.Close()

	records, err := marshalRecords(recs)
	if err != nil {
		return fmt.Errorf("marshaling kv: %w", err)
	}
	return writeJSONL(filepath.Join(b.config.DataDir, kvJSONL), records)
}

// KVPath returns the path of kv.jsonl, the file every Set rewrites.
func (b *Backend) KVPath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	dir := b.config.DataDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, kvJSONL)
}
