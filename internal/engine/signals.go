package engine

import "github.com/mesh-intelligence/roadmap/pkg/types"

// Signals are the presentation values derived from overall progress.
type Signals struct {
	// GlowOffset is the furthest horizontal position reached by a completed
	// checkpoint, as a percentage of the canvas.
	GlowOffset float64 `json:"glow_offset"`

	// FogReveal is baseline + GlowOffset, clamped to [0, max].
	FogReveal float64 `json:"fog_reveal"`

	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Signals computes the current presentation signals.
func (e *Engine) Signals() Signals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.signals()
}

func (e *Engine) signals() Signals {
	s := Signals{Total: len(e.checkpoints)}
	for _, cp := range e.checkpoints {
		if !e.done[cp.ID] {
			continue
		}
		s.Completed++
		if x := e.percentX(cp.Position); x > s.GlowOffset {
			s.GlowOffset = x
		}
	}
	s.FogReveal = clamp(e.opts.fogBaseline+s.GlowOffset, 0, e.opts.fogMax)
	return s
}

// percentX maps a horizontal position onto 0-100.
func (e *Engine) percentX(p types.Position) float64 {
	switch p.Unit {
	case types.UnitPercent:
		return clamp(p.X, 0, 100)
	case types.UnitPixel:
		if e.canvasWidth <= 0 {
			return 0
		}
		return clamp(p.X/e.canvasWidth*100, 0, 100)
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
