// Package sqlite implements the managed checkpoint catalog and key-value
// progress store. SQLite is the query engine; JSONL files in the data
// directory are the source of truth, loaded on Attach and rewritten after
// every mutation.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// dbFile is the SQLite database file name inside the data directory. It is
// rebuilt from JSONL on every Attach.
const dbFile = "roadmap.db"

// Backend stores checkpoints and key-value pairs.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	log      *zap.Logger
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
// A nil logger discards log output.
func NewBackend(log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}
	return &Backend{log: log}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, initializes the SQLite schema, and
// loads the JSONL files.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	config.DataDir = dataDir

	dbPath := filepath.Join(dataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := initJSONLFiles(dataDir); err != nil {
		db.Close()
		return err
	}

	if err := loadAllJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true

	b.log.Debug("sqlite backend attached", zap.String("data_dir", dataDir))
	return nil
}

// Detach closes the SQLite connection. After Detach, all operations return
// ErrDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	b.log.Debug("sqlite backend detached")
	return nil
}

// generateUUID generates a new UUID v7 for checkpoint IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// now returns the current time in the format stored in created_at columns.
func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
