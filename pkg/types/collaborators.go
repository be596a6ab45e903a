package types

// Catalog supplies the checkpoint descriptors. The engine reads it once at
// start and never again.
type Catalog interface {
	// Checkpoints returns the descriptors in declaration order.
	Checkpoints() ([]Checkpoint, error)
}

// Store is synchronous key-value storage for string blobs. A missing key
// reports ok == false.
type Store interface {
	Get(key string) (value string, ok bool)
	Set(key, value string) error
}

// Button describes the completion affordance of one checkpoint.
type Button struct {
	Label   string  `json:"label"`
	Enabled bool    `json:"enabled"`
	Opacity float64 `json:"opacity"`
}

// Surface receives the derived presentation state. It owns rendering; the
// engine only writes to it.
type Surface interface {
	// SetLocked toggles the locked presentation of a checkpoint.
	SetLocked(id string, locked bool)

	// SetButton sets the completion button of a checkpoint.
	SetButton(id string, b Button)

	// SetGlowOffset sets the gradient stop offset, a percentage 0-100.
	SetGlowOffset(pct float64)

	// SetFogReveal sets the fog reveal percentage.
	SetFogReveal(pct float64)

	// ScrollTo brings the checkpoint into view.
	ScrollTo(id string)
}
