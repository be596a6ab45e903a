// Package roadmap wires the progression engine to its catalog, progress
// store, layout, and board recorder from a single Config.
//
// Example:
//
//	cfg := types.DefaultConfig()
//	cfg.DataDir = ".roadmap-db"
//	rm, err := roadmap.Open(cfg, zap.NewNop())
//	if err != nil {
//	    return err
//	}
//	defer rm.Close()
//	rm.Complete("intro")
package roadmap

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/roadmap/internal/catalog"
	"github.com/mesh-intelligence/roadmap/internal/engine"
	"github.com/mesh-intelligence/roadmap/internal/layout"
	"github.com/mesh-intelligence/roadmap/internal/render"
	"github.com/mesh-intelligence/roadmap/internal/sqlite"
	"github.com/mesh-intelligence/roadmap/internal/store"
	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// Version is the roadmap release.
const Version = "0.1.0"

// Roadmap is an opened roadmap: an engine with its collaborators attached.
type Roadmap struct {
	config    types.Config
	log       *zap.Logger
	backend   *sqlite.Backend // nil when neither catalog nor store needs it
	store     types.Store
	storePath string
	layout    layout.Layout
	recorder  *render.Recorder
	engine    *engine.Engine
}

// Open validates cfg, attaches the storage it names, and starts the engine.
// A catalog file that does not exist or declares nothing leaves the engine
// inactive; a malformed one is an error.
func Open(cfg types.Config, log *zap.Logger) (*Roadmap, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r := &Roadmap{config: cfg, log: log, recorder: render.NewRecorder()}

	if cfg.Catalog == "" || cfg.Store == types.StoreSQLite {
		r.backend = sqlite.NewBackend(log)
		if err := r.backend.Attach(cfg); err != nil {
			return nil, fmt.Errorf("attach backend: %w", err)
		}
	}

	cps, root, canvasWidth, err := r.loadCatalog()
	if err != nil {
		r.Close()
		return nil, err
	}
	if cfg.Root != "" {
		root = cfg.Root
	}
	if cfg.CanvasWidth > 0 {
		canvasWidth = cfg.CanvasWidth
	}

	r.layout = layout.Place(cps, layout.DefaultParams())
	cps = r.layout.Apply(cps)
	if canvasWidth <= 0 {
		canvasWidth = r.layout.Width
	}

	switch cfg.Store {
	case types.StoreSQLite:
		r.store = r.backend.KV()
		r.storePath = r.backend.KVPath()
	default:
		fileStore := store.NewFile(cfg.DataDir, log)
		r.store = fileStore
		if r.storePath, err = fileStore.Path(cfg.StorageKey); err != nil {
			r.Close()
			return nil, fmt.Errorf("storage key: %w", err)
		}
	}

	opts := append(engine.FromConfig(cfg),
		engine.WithRoot(root),
		engine.WithCanvasWidth(canvasWidth),
		engine.WithSurface(r.recorder),
		engine.WithLogger(log),
	)
	var cat types.Catalog
	if len(cps) > 0 {
		cat = catalog.Static(cps)
	}
	r.engine = engine.New(cat, r.store, opts...)
	return r, nil
}

// loadCatalog reads the checkpoints from the catalog file or, without one,
// from the managed catalog.
func (r *Roadmap) loadCatalog() ([]types.Checkpoint, string, float64, error) {
	if r.config.Catalog == "" {
		cps, err := r.backend.Checkpoints()
		if err != nil {
			return nil, "", 0, fmt.Errorf("read managed catalog: %w", err)
		}
		return cps, "", 0, nil
	}

	c, err := catalog.Load(r.config.Catalog)
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, catalog.ErrNoCheckpoints):
		r.log.Warn("no checkpoints to track, roadmap inactive",
			zap.String("catalog", r.config.Catalog), zap.Error(err))
		return nil, "", 0, nil
	case err != nil:
		return nil, "", 0, err
	}
	cps, _ := c.Checkpoints()
	return cps, c.Root(), c.CanvasWidth(), nil
}

// Close detaches the backend, if one is attached.
func (r *Roadmap) Close() error {
	if r.backend == nil {
		return nil
	}
	return r.backend.Detach()
}

// Engine returns the running engine.
func (r *Roadmap) Engine() *engine.Engine {
	return r.engine
}

// Backend returns the attached SQLite backend, or nil.
func (r *Roadmap) Backend() *sqlite.Backend {
	return r.backend
}

// Checkpoints returns the tracked checkpoints in declaration order with
// every position filled in.
func (r *Roadmap) Checkpoints() []types.Checkpoint {
	return r.engine.Checkpoints()
}

// Layout returns the placed roadmap.
func (r *Roadmap) Layout() layout.Layout {
	return r.layout
}

// Board returns the state the engine last pushed to its surface.
func (r *Roadmap) Board() render.Board {
	return r.recorder.Board()
}

// StorePath returns the file that changes whenever progress is saved.
func (r *Roadmap) StorePath() string {
	return r.storePath
}

// Complete marks id as completed. See engine.Engine.Complete.
func (r *Roadmap) Complete(id string) bool {
	return r.engine.Complete(id)
}

// WriteText prints the board as a table.
func (r *Roadmap) WriteText(w io.Writer) error {
	return render.WriteText(w, r.engine.Checkpoints(), r.Board())
}

// WriteSVG renders the board as an SVG document.
func (r *Roadmap) WriteSVG(w io.Writer) error {
	return render.WriteSVG(w, r.layout, r.Board())
}
