// Package layout places checkpoints on a horizontal canvas and draws a
// wavy path along each branch.
package layout

import (
	"fmt"
	"math"
	"strings"

	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// Params controls the geometry. Lengths are pixels, YPct and LaneGap are
// percentages of Height.
type Params struct {
	StepX   float64
	MarginX float64
	Height  float64
	YPct    float64
	LaneGap float64
}

// Default geometry.
const (
	DefaultStepX   = 420
	DefaultMarginX = 0
	DefaultHeight  = 600
	DefaultYPct    = 58
	DefaultLaneGap = 20

	trailingPad = 200 // room after the last slot
	segment     = 300 // path wave length
	amplitude   = 50  // path wave height
	pathEndGap  = 50  // path stops short of the right edge
)

// DefaultParams returns the default geometry.
func DefaultParams() Params {
	return Params{
		StepX:   DefaultStepX,
		MarginX: DefaultMarginX,
		Height:  DefaultHeight,
		YPct:    DefaultYPct,
		LaneGap: DefaultLaneGap,
	}
}

// Item is a placed checkpoint.
type Item struct {
	ID     string  `json:"id"`
	Title  string  `json:"title,omitempty"`
	Branch string  `json:"branch"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// Path is the SVG path data drawn under one branch.
type Path struct {
	Branch string `json:"branch"`
	D      string `json:"d"`
}

// Layout is the placed roadmap.
type Layout struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Items  []Item  `json:"items"`
	Paths  []Path  `json:"paths"`
}

// Item returns the placed item for id.
func (l Layout) Item(id string) (Item, bool) {
	for _, it := range l.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Place lays out normalized checkpoints. The main branch runs left to right
// from the margin. Every other branch starts one step after the first main
// checkpoint and runs on its own lane, alternating above and below the main
// row. Declared pixel positions are kept; everything else is placed.
func Place(cps []types.Checkpoint, p Params) Layout {
	names, groups := types.GroupBranches(cps)

	slots := 1
	lanes := make(map[string]float64, len(names))
	lane := 0
	for _, name := range names {
		n := len(groups[name])
		if name == types.MainBranch {
			lanes[name] = p.YPct
		} else {
			lane++
			n++
			lanes[name] = laneY(p, lane)
		}
		if n > slots {
			slots = n
		}
	}

	l := Layout{
		Width:  p.MarginX + float64(slots)*p.StepX + trailingPad,
		Height: p.Height,
	}

	for _, name := range names {
		start := 0
		if name != types.MainBranch {
			start = 1
		}
		y := p.Height * lanes[name] / 100
		for i, cp := range groups[name] {
			it := Item{
				ID:     cp.ID,
				Title:  cp.Title,
				Branch: name,
				X:      p.MarginX + float64(start+i)*p.StepX,
				Y:      y,
			}
			if cp.Position.Unit == types.UnitPixel {
				it.X, it.Y = cp.Position.X, cp.Position.Y
			} else if cp.Position.Unit == types.UnitPercent {
				it.X, it.Y = l.Width*cp.Position.X/100, p.Height*cp.Position.Y/100
			}
			l.Items = append(l.Items, it)
		}
		startX := 0.0
		if name != types.MainBranch {
			startX = p.MarginX + p.StepX
		}
		l.Paths = append(l.Paths, Path{Branch: name, D: wave(startX, y, l.Width)})
	}
	return l
}

// laneY returns the row of the n-th non-main branch, clamped to the canvas.
func laneY(p Params, n int) float64 {
	step := float64((n + 1) / 2)
	y := p.YPct - p.LaneGap*step
	if n%2 == 0 {
		y = p.YPct + p.LaneGap*step
	}
	return math.Max(5, math.Min(95, y))
}

// wave draws a smooth S-curve from startX to just short of width.
func wave(startX, y, width float64) string {
	iy := int(y)
	var b strings.Builder
	fmt.Fprintf(&b, "M %d %d", int(startX), iy)
	toggle := 1
	for x := startX; x < width-pathEndGap; x += segment {
		cx := int(x) + segment/2
		x2 := int(math.Min(width-pathEndGap, x+segment))
		fmt.Fprintf(&b, " S %d %d, %d %d", cx, iy-amplitude*toggle, x2, iy+amplitude*toggle)
		toggle = -toggle
	}
	return b.String()
}

// Apply returns cps with undeclared positions replaced by their placed pixel
// coordinates.
func (l Layout) Apply(cps []types.Checkpoint) []types.Checkpoint {
	out := make([]types.Checkpoint, len(cps))
	for i, cp := range cps {
		out[i] = cp
		if !cp.Position.IsZero() {
			continue
		}
		if it, ok := l.Item(cp.ID); ok {
			out[i].Position = types.Position{X: it.X, Y: it.Y, Unit: types.UnitPixel}
		}
	}
	return out
}
