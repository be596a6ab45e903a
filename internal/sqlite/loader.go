// This file implements JSONL loading for startup.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTableMapping maps JSONL filenames to their SQLite tables and column lists.
// defaults fills columns that a record omits; a column without a default
// must be present.
var jsonlTableMapping = []struct {
	file     string
	table    string
	columns  []string
	defaults map[string]any
}{
	{
		checkpointsJSONL, "checkpoints",
		[]string{"checkpoint_id", "title", "url", "branch", "order_index", "x", "y", "unit", "created_at"},
		map[string]any{"branch": "main", "order_index": 0, "x": 0, "y": 0, "unit": "", "created_at": ""},
	},
	{
		kvJSONL, "kv",
		[]string{"key", "value", "updated_at"},
		map[string]any{"updated_at": ""},
	},
}

// loadAllJSONL reads each JSONL file from dataDir and inserts records into
// the corresponding SQLite tables. Loading is transactional: all succeed or
// the database remains empty. Malformed lines and unknown fields are
// ignored.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range jsonlTableMapping {
		path := filepath.Join(dataDir, mapping.file)
		records, err := readJSONL(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", mapping.file, err)
		}

		if len(records) == 0 {
			continue
		}

		if err := insertRecords(tx, mapping.table, mapping.columns, mapping.defaults, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}

	return nil
}

// insertRecords inserts parsed JSONL records into a SQLite table. Only
// columns listed in the mapping are extracted. Records that violate a
// constraint, such as a repeated primary key, are skipped.
func insertRecords(tx *sql.Tx, table string, columns []string, defaults map[string]any, records []json.RawMessage) error {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			val, ok := obj[col]
			if !ok || val == nil {
				val = defaults[col]
			}
			args[i] = val
		}

		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
	}

	return nil
}
