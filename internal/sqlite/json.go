package sqlite

// JSONL file names in the data directory.
const (
	checkpointsJSONL = "checkpoints.jsonl"
	kvJSONL          = "kv.jsonl"
)

// checkpointJSON is one line of checkpoints.jsonl.
type checkpointJSON struct {
	CheckpointID string  `json:"checkpoint_id"`
	Title        string  `json:"title"`
	URL          string  `json:"url"`
	Branch       string  `json:"branch"`
	OrderIndex   int     `json:"order_index"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Unit         string  `json:"unit"`
	CreatedAt    string  `json:"created_at"`
}

// kvJSON is one line of kv.jsonl.
type kvJSON struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
}
