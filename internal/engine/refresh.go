package engine

import "github.com/mesh-intelligence/roadmap/pkg/types"

// Completion button presentations.
var (
	ButtonCompleted = types.Button{Label: "Completed", Enabled: false, Opacity: 0.6}
	ButtonUnlocked  = types.Button{Label: "Mark as done", Enabled: true, Opacity: 1}
	ButtonLocked    = types.Button{Label: "Locked", Enabled: false, Opacity: 0.4}
)

// ButtonFor returns the completion button for a status.
func ButtonFor(s Status) types.Button {
	switch s {
	case StatusCompleted:
		return ButtonCompleted
	case StatusUnlocked:
		return ButtonUnlocked
	default:
		return ButtonLocked
	}
}

// refresh recomputes every checkpoint and both signals from scratch.
func (e *Engine) refresh() {
	surface := e.opts.surface
	if surface == nil || !e.Active() {
		return
	}
	for _, cp := range e.checkpoints {
		// Restored progress can hold a completed checkpoint whose root is
		// still open; it keeps its completed button but stays locked.
		surface.SetLocked(cp.ID, !e.unlocked(cp.ID))
		surface.SetButton(cp.ID, ButtonFor(e.status(cp.ID)))
	}
	s := e.signals()
	surface.SetGlowOffset(s.GlowOffset)
	surface.SetFogReveal(s.FogReveal)
}
