package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// Move directions.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

const selectCheckpoints = `SELECT checkpoint_id, title, url, branch, order_index, x, y, unit FROM checkpoints`

// listOrder sorts main first, then other branches by name, then by order.
// rowid keeps ties in insertion order.
const listOrder = ` ORDER BY CASE WHEN branch = 'main' THEN 0 ELSE 1 END, branch, order_index, rowid`

// Checkpoints returns every checkpoint, main branch first, then the other
// branches by name, each ordered by Order. It implements types.Catalog.
func (b *Backend) Checkpoints() ([]types.Checkpoint, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrDetached
	}

	rows, err := b.db.Query(selectCheckpoints + listOrder)
	if err != nil {
		return nil, fmt.Errorf("querying checkpoints: %w", err)
	}
	defer rows.Close()

	var out []types.Checkpoint
	for rows.Next() {
		cp, err := scanCheckpoint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checkpoints: %w", err)
	}
	return out, nil
}

// Get returns the checkpoint with the given id.
func (b *Backend) Get(id string) (types.Checkpoint, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return types.Checkpoint{}, types.ErrDetached
	}
	if strings.TrimSpace(id) == "" {
		return types.Checkpoint{}, types.ErrInvalidID
	}
	return b.getLocked(b.db, id)
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
}

func (b *Backend) getLocked(q queryer, id string) (types.Checkpoint, error) {
	row := q.QueryRow(selectCheckpoints+" WHERE checkpoint_id = ?", id)
	cp, err := scanCheckpoint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Checkpoint{}, types.ErrNotFound
	}
	return cp, err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCheckpoint(s scanner) (types.Checkpoint, error) {
	var cp types.Checkpoint
	err := s.Scan(&cp.ID, &cp.Title, &cp.URL, &cp.Branch, &cp.Order,
		&cp.Position.X, &cp.Position.Y, &cp.Position.Unit)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cp, err
		}
		return cp, fmt.Errorf("scanning checkpoint: %w", err)
	}
	return cp, nil
}

// Add creates a checkpoint at the end of its branch. Title and URL are
// required; an empty branch means main.
func (b *Backend) Add(title, url, branch string) (types.Checkpoint, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	branch = strings.TrimSpace(branch)
	if title == "" {
		return types.Checkpoint{}, types.ErrInvalidName
	}
	if url == "" {
		return types.Checkpoint{}, types.ErrInvalidURL
	}
	if branch == "" {
		branch = types.MainBranch
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.Checkpoint{}, types.ErrDetached
	}

	var order int
	err := b.db.QueryRow(
		"SELECT COALESCE(MAX(order_index) + 1, 0) FROM checkpoints WHERE branch = ?", branch,
	).Scan(&order)
	if err != nil {
		return types.Checkpoint{}, fmt.Errorf("finding next order: %w", err)
	}

	cp := types.Checkpoint{
		ID:     generateUUID(),
		Title:  title,
		URL:    url,
		Branch: branch,
		Order:  order,
	}
	if err := insertCheckpoint(b.db, cp); err != nil {
		return types.Checkpoint{}, err
	}
	if err := b.persistCheckpoints(); err != nil {
		return types.Checkpoint{}, err
	}

	b.log.Info("checkpoint added",
		zap.String("id", cp.ID), zap.String("branch", cp.Branch), zap.Int("order", cp.Order))
	return cp, nil
}

// Import inserts checkpoints as declared, keeping their ids and orders.
// Checkpoints without an id get a new one. An id that already exists, in
// the backend or earlier in cps, fails the whole import with
// ErrDuplicateID.
func (b *Backend) Import(cps []types.Checkpoint) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return 0, types.ErrDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	for _, raw := range cps {
		cp := raw.Normalize()
		if cp.Title == "" {
			return 0, fmt.Errorf("checkpoint %q: %w", cp.ID, types.ErrInvalidName)
		}
		if cp.URL == "" {
			return 0, fmt.Errorf("checkpoint %q: %w", cp.ID, types.ErrInvalidURL)
		}
		if cp.ID == "" {
			cp.ID = generateUUID()
		} else if _, err := b.getLocked(tx, cp.ID); err == nil {
			return 0, fmt.Errorf("checkpoint %q: %w", cp.ID, types.ErrDuplicateID)
		} else if !errors.Is(err, types.ErrNotFound) {
			return 0, err
		}
		if err := insertCheckpoint(tx, cp); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing import: %w", err)
	}
	if err := b.persistCheckpoints(); err != nil {
		return 0, err
	}

	b.log.Info("checkpoints imported", zap.Int("count", len(cps)))
	return len(cps), nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertCheckpoint(ex execer, cp types.Checkpoint) error {
	_, err := ex.Exec(
		`INSERT INTO checkpoints (checkpoint_id, title, url, branch, order_index, x, y, unit, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cp.ID, cp.Title, cp.URL, cp.Branch, cp.Order,
		cp.Position.X, cp.Position.Y, cp.Position.Unit, now(),
	)
	if err != nil {
		return fmt.Errorf("inserting checkpoint: %w", err)
	}
	return nil
}

// Delete removes a checkpoint and closes the gap it leaves in its branch.
func (b *Backend) Delete(id string) error {
	if strings.TrimSpace(id) == "" {
		return types.ErrInvalidID
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning delete: %w", err)
	}
	defer tx.Rollback()

	cp, err := b.getLocked(tx, id)
	if err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM checkpoints WHERE checkpoint_id = ?", id); err != nil {
		return fmt.Errorf("deleting checkpoint: %w", err)
	}
	_, err = tx.Exec(
		"UPDATE checkpoints SET order_index = order_index - 1 WHERE branch = ? AND order_index > ?",
		cp.Branch, cp.Order,
	)
	if err != nil {
		return fmt.Errorf("shifting branch %s: %w", cp.Branch, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	if err := b.persistCheckpoints(); err != nil {
		return err
	}

	b.log.Info("checkpoint deleted", zap.String("id", id), zap.String("branch", cp.Branch))
	return nil
}

// Move swaps a checkpoint with its neighbour in the branch. Moving the first
// checkpoint up or the last one down changes nothing.
func (b *Backend) Move(id, direction string) error {
	if strings.TrimSpace(id) == "" {
		return types.ErrInvalidID
	}
	var neighbourSQL string
	switch direction {
	case DirectionUp:
		neighbourSQL = "SELECT checkpoint_id, order_index FROM checkpoints WHERE branch = ? AND order_index < ? ORDER BY order_index DESC, rowid DESC LIMIT 1"
	case DirectionDown:
		neighbourSQL = "SELECT checkpoint_id, order_index FROM checkpoints WHERE branch = ? AND order_index > ? ORDER BY order_index ASC, rowid ASC LIMIT 1"
	default:
		return types.ErrInvalidDirection
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning move: %w", err)
	}
	defer tx.Rollback()

	cp, err := b.getLocked(tx, id)
	if err != nil {
		return err
	}

	var otherID string
	var otherOrder int
	err = tx.QueryRow(neighbourSQL, cp.Branch, cp.Order).Scan(&otherID, &otherOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("finding neighbour: %w", err)
	}

	update := "UPDATE checkpoints SET order_index = ? WHERE checkpoint_id = ?"
	if _, err := tx.Exec(update, otherOrder, cp.ID); err != nil {
		return fmt.Errorf("moving checkpoint: %w", err)
	}
	if _, err := tx.Exec(update, cp.Order, otherID); err != nil {
		return fmt.Errorf("moving neighbour: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing move: %w", err)
	}
	if err := b.persistCheckpoints(); err != nil {
		return err
	}

	b.log.Info("checkpoint moved", zap.String("id", id), zap.String("direction", direction))
	return nil
}

// persistCheckpoints rewrites checkpoints.jsonl from the table.
// The caller must hold b.mu.
func (b *Backend) persistCheckpoints() error {
	rows, err := b.db.Query(
		"SELECT checkpoint_id, title, url, branch, order_index, x, y, unit, created_at FROM checkpoints ORDER BY rowid",
	)
	if err != nil {
		return fmt.Errorf("querying checkpoints for JSONL: %w", err)
	}
	defer rows.Close()

	var recs []checkpointJSON
	for rows.Next() {
		var r checkpointJSON
		if err := rows.Scan(&r.CheckpointID, &r.Title, &r.URL, &r.Branch, &r.OrderIndex,
			&r.X, &r.Y, &r.Unit, &r.CreatedAt); err != nil {
			return fmt.Errorf("scanning checkpoint for JSONL: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating checkpoints for JSONL: %w", err)
	}
	rows.Close()

	records, err := marshalRecords(recs)
	if err != nil {
		return fmt.Errorf("marshaling checkpoints: %w", err)
	}
	return writeJSONL(filepath.Join(b.config.DataDir, checkpointsJSONL), records)
}
