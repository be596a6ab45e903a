package sqlite

// Schema DDL. SQLite is rebuilt from the JSONL files on every Attach, so the
// schema carries no migrations.
const (
	createCheckpoints = `CREATE TABLE checkpoints (
    checkpoint_id TEXT PRIMARY KEY NOT NULL,
    title TEXT NOT NULL,
    url TEXT NOT NULL,
    branch TEXT NOT NULL DEFAULT 'main',
    order_index INTEGER NOT NULL,
    x REAL NOT NULL DEFAULT 0,
    y REAL NOT NULL DEFAULT 0,
    unit TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);`

	createKV = `CREATE TABLE kv (
    key TEXT PRIMARY KEY NOT NULL,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Index DDL for common queries.
const (
	idxCheckpointsBranchOrder = `CREATE INDEX idx_checkpoints_branch_order ON checkpoints(branch, order_index);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createCheckpoints,
	createKV,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxCheckpointsBranchOrder,
}
