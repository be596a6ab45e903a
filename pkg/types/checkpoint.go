package types

import "strings"

// MainBranch is the branch a checkpoint belongs to when none is declared.
// Its order-0 checkpoint gates every other branch.
const MainBranch = "main"

// Position units.
const (
	UnitPercent = "%"
	UnitPixel   = "px"
)

// Position places a checkpoint on the render canvas. It is never consulted
// by lock derivation.
type Position struct {
	X    float64 `json:"x" yaml:"x"`
	Y    float64 `json:"y" yaml:"y"`
	Unit string  `json:"unit,omitempty" yaml:"unit,omitempty"` // UnitPercent or UnitPixel.
}

// IsZero reports whether no position was declared.
func (p Position) IsZero() bool {
	return p.X == 0 && p.Y == 0 && p.Unit == ""
}

// Checkpoint is a single unlockable node in the roadmap.
type Checkpoint struct {
	ID       string   `json:"id" yaml:"id"` // Unique across the catalog.
	Title    string   `json:"title,omitempty" yaml:"title,omitempty"`
	URL      string   `json:"url,omitempty" yaml:"url,omitempty"`
	Branch   string   `json:"branch" yaml:"branch"`     // Defaults to MainBranch.
	Order    int      `json:"order" yaml:"order"`       // Rank within the branch.
	Position Position `json:"position" yaml:"position"` // Rendering only.
}

// Normalize fills defaults: an empty branch becomes MainBranch and a declared
// position without a unit is taken as a percentage.
func (c Checkpoint) Normalize() Checkpoint {
	c.ID = strings.TrimSpace(c.ID)
	c.Branch = strings.TrimSpace(c.Branch)
	if c.Branch == "" {
		c.Branch = MainBranch
	}
	if c.Position.Unit == "" && (c.Position.X != 0 || c.Position.Y != 0) {
		c.Position.Unit = UnitPercent
	}
	return c
}

// IsMain reports whether the checkpoint sits on the main branch.
func (c Checkpoint) IsMain() bool {
	return c.Branch == MainBranch
}
