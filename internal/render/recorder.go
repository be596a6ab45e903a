// Package render holds the render surfaces the roadmap engine writes to: an
// in-memory recorder that snapshots the board, and writers that turn a
// snapshot into a text table or an SVG document.
package render

import (
	"sync"

	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// Node is the presentation state of one checkpoint.
type Node struct {
	ID     string       `json:"id"`
	Locked bool         `json:"locked"`
	Button types.Button `json:"button"`
}

// Board is a snapshot of everything the engine has pushed to a surface.
type Board struct {
	Nodes        []Node  `json:"checkpoints"`
	GlowOffset   float64 `json:"glow_offset"`
	FogReveal    float64 `json:"fog_reveal"`
	ScrollTarget string  `json:"scroll_target,omitempty"`
}

// Node returns the node for id.
func (b Board) Node(id string) (Node, bool) {
	for _, n := range b.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Recorder is a Surface that remembers the latest value of every write.
// Nodes keep the order in which they were first written.
type Recorder struct {
	mu      sync.Mutex
	order   []string
	nodes   map[string]*Node
	glow    float64
	fog     float64
	scroll  string
	scrolls int
}

var _ types.Surface = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{nodes: make(map[string]*Node)}
}

func (r *Recorder) node(id string) *Node {
	n, ok := r.nodes[id]
	if !ok {
		n = &Node{ID: id}
		r.nodes[id] = n
		r.order = append(r.order, id)
	}
	return n
}

// SetLocked implements types.Surface.
func (r *Recorder) SetLocked(id string, locked bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.node(id).Locked = locked
}

// SetButton implements types.Surface.
func (r *Recorder) SetButton(id string, b types.Button) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.node(id).Button = b
}

// SetGlowOffset implements types.Surface.
func (r *Recorder) SetGlowOffset(pct float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.glow = pct
}

// SetFogReveal implements types.Surface.
func (r *Recorder) SetFogReveal(pct float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fog = pct
}

// ScrollTo implements types.Surface.
func (r *Recorder) ScrollTo(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scroll = id
	r.scrolls++
}

// Scrolls returns how many scroll requests were received.
func (r *Recorder) Scrolls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scrolls
}

// Board returns a snapshot of the recorded state.
func (r *Recorder) Board() Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := Board{
		Nodes:        make([]Node, 0, len(r.order)),
		GlowOffset:   r.glow,
		FogReveal:    r.fog,
		ScrollTarget: r.scroll,
	}
	for _, id := range r.order {
		b.Nodes = append(b.Nodes, *r.nodes[id])
	}
	return b
}
