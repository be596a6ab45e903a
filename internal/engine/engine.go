// Package engine implements the roadmap progression engine. It groups
// checkpoints into ordered branches, derives which checkpoints are locked,
// records completions in a persisted progress set, and pushes the derived
// presentation state onto a render surface.
//
// The engine never reports errors to its caller. A missing catalog leaves it
// inactive, unreadable progress is treated as empty, and completing a locked
// or already completed checkpoint is ignored.
package engine

import (
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// Status is the derived state of one checkpoint.
type Status string

// Checkpoint statuses.
const (
	StatusLocked    Status = "locked"
	StatusUnlocked  Status = "unlocked"
	StatusCompleted Status = "completed"
)

// Engine tracks completion of a fixed checkpoint catalog.
type Engine struct {
	mu    sync.Mutex
	opts  options
	log   *zap.Logger
	store types.Store

	// Immutable after New.
	checkpoints []types.Checkpoint  // declaration order, first declaration of each id
	index       map[string]int      // id -> declaration index
	branchNames []string            // main first
	branches    map[string][]string // branch -> ids sorted by (order, declaration index)
	branchPos   map[string]int      // id -> index within its branch
	root        string              // empty when the root gate is inactive
	canvasWidth float64

	progress []string
	done     map[string]bool
}

// New builds an engine from the catalog and loads progress from the store.
// A nil catalog, a failing catalog, or an empty one yields an inactive
// engine. A nil store keeps progress in memory only.
func New(catalog types.Catalog, store types.Store, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		opts:      o,
		log:       o.logger,
		store:     store,
		index:     make(map[string]int),
		branches:  make(map[string][]string),
		branchPos: make(map[string]int),
		done:      make(map[string]bool),
	}

	if catalog == nil {
		e.log.Debug("no checkpoint catalog, roadmap inactive")
		return e
	}
	cps, err := catalog.Checkpoints()
	if err != nil {
		e.log.Warn("reading checkpoint catalog, roadmap inactive", zap.Error(err))
		return e
	}
	if len(cps) == 0 {
		e.log.Debug("empty checkpoint catalog, roadmap inactive")
		return e
	}

	e.build(cps)
	e.resolveRoot()
	e.resolveCanvasWidth()
	e.load()
	e.refresh()

	e.log.Debug("roadmap started",
		zap.Int("checkpoints", len(e.checkpoints)),
		zap.Int("branches", len(e.branchNames)),
		zap.String("root", e.root),
		zap.Int("completed", len(e.progress)))
	return e
}

// build records the catalog in declaration order and derives the branches.
func (e *Engine) build(cps []types.Checkpoint) {
	for _, raw := range cps {
		cp := raw.Normalize()
		if cp.ID == "" {
			e.log.Warn("skipping checkpoint without id")
			continue
		}
		if _, dup := e.index[cp.ID]; dup {
			e.log.Warn("skipping duplicate checkpoint", zap.String("id", cp.ID))
			continue
		}
		e.index[cp.ID] = len(e.checkpoints)
		e.checkpoints = append(e.checkpoints, cp)
	}

	names, groups := types.GroupBranches(e.checkpoints)
	e.branchNames = names
	for name, group := range groups {
		ids := make([]string, len(group))
		for i, cp := range group {
			ids[i] = cp.ID
			e.branchPos[cp.ID] = i
		}
		e.branches[name] = ids
	}
}

// resolveRoot picks the checkpoint that gates non-main branches.
func (e *Engine) resolveRoot() {
	if e.opts.root != "" {
		i, ok := e.index[e.opts.root]
		if !ok {
			e.log.Warn("configured root checkpoint not in catalog, root gate inactive",
				zap.String("root", e.opts.root))
			return
		}
		if e.checkpoints[i].IsMain() {
			e.root = e.opts.root
			return
		}
		// A root off the main branch would gate itself.
		e.log.Warn("configured root checkpoint is not on the main branch, inferring root",
			zap.String("root", e.opts.root), zap.String("branch", e.checkpoints[i].Branch))
	}

	for _, cp := range e.checkpoints {
		if cp.IsMain() && cp.Order == 0 {
			if e.root == "" {
				e.root = cp.ID
				continue
			}
			e.log.Warn("several main checkpoints with order 0, using the first declared",
				zap.String("root", e.root), zap.String("ignored", cp.ID))
		}
	}
}

func (e *Engine) resolveCanvasWidth() {
	e.canvasWidth = e.opts.canvasWidth
	if e.canvasWidth > 0 {
		return
	}
	for _, cp := range e.checkpoints {
		if cp.Position.Unit == types.UnitPixel && cp.Position.X > e.canvasWidth {
			e.canvasWidth = cp.Position.X
		}
	}
}

// Active reports whether the engine has a catalog to work with.
func (e *Engine) Active() bool {
	return len(e.checkpoints) > 0
}

// IsCompleted reports whether id is in the progress set.
func (e *Engine) IsCompleted(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.done[id]
}

// ComputeUnlocked reports whether the checkpoint may be completed, or
// already has been. Unknown ids are locked.
func (e *Engine) ComputeUnlocked(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.unlocked(id)
}

func (e *Engine) unlocked(id string) bool {
	i, ok := e.index[id]
	if !ok {
		return false
	}
	cp := e.checkpoints[i]

	pos := e.branchPos[id]
	prevCompleted := pos == 0 || e.done[e.branches[cp.Branch][pos-1]]

	rootDone := e.root == "" || e.done[e.root]
	requiresRoot := !cp.IsMain()

	return (prevCompleted || e.done[id]) && (!requiresRoot || rootDone)
}

// Status returns the derived status of a checkpoint.
func (e *Engine) Status(id string) Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status(id)
}

func (e *Engine) status(id string) Status {
	if _, ok := e.index[id]; ok && e.done[id] {
		return StatusCompleted
	}
	if e.unlocked(id) {
		return StatusUnlocked
	}
	return StatusLocked
}

// Complete marks id as completed. It is a no-op, returning false, when the
// checkpoint is unknown, already completed, or still locked. On success the
// progress set is persisted, the surface refreshed, and, with auto-scroll
// enabled, the next checkpoint of the same branch scrolled into view.
func (e *Engine) Complete(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.index[id]; !ok {
		e.log.Debug("ignoring completion of unknown checkpoint", zap.String("id", id))
		return false
	}
	if e.done[id] {
		e.log.Debug("ignoring completion of completed checkpoint", zap.String("id", id))
		return false
	}
	if !e.unlocked(id) {
		e.log.Debug("ignoring completion of locked checkpoint", zap.String("id", id))
		return false
	}

	e.done[id] = true
	e.progress = append(e.progress, id)
	e.save()
	e.refresh()

	if next, ok := e.next(id); ok && e.opts.autoScroll && e.opts.surface != nil {
		e.opts.surface.ScrollTo(next)
	}

	e.log.Info("checkpoint completed", zap.String("id", id), zap.Int("completed", len(e.progress)))
	return true
}

// Refresh pushes the full derived state onto the surface.
func (e *Engine) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.refresh()
}

// Next returns the checkpoint following id in its branch.
func (e *Engine) Next(id string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.next(id)
}

func (e *Engine) next(id string) (string, bool) {
	i, ok := e.index[id]
	if !ok {
		return "", false
	}
	branch := e.branches[e.checkpoints[i].Branch]
	pos := e.branchPos[id]
	if pos+1 >= len(branch) {
		return "", false
	}
	return branch[pos+1], true
}

// Root returns the root checkpoint id, if the root gate is active.
func (e *Engine) Root() (string, bool) {
	return e.root, e.root != ""
}

// Checkpoints returns the catalog in declaration order.
func (e *Engine) Checkpoints() []types.Checkpoint {
	out := make([]types.Checkpoint, len(e.checkpoints))
	copy(out, e.checkpoints)
	return out
}

// Branches returns the branch names, main first.
func (e *Engine) Branches() []string {
	out := make([]string, len(e.branchNames))
	copy(out, e.branchNames)
	return out
}

// Branch returns the ids of a branch in progression order.
func (e *Engine) Branch(name string) []string {
	ids := e.branches[name]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Progress returns the completed ids in completion order.
func (e *Engine) Progress() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.progress))
	copy(out, e.progress)
	return out
}
