package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roadmap/pkg/types"
)

func main3() []types.Checkpoint {
	return []types.Checkpoint{
		{ID: "a", Branch: types.MainBranch, Order: 0},
		{ID: "b", Branch: types.MainBranch, Order: 1},
		{ID: "c", Branch: types.MainBranch, Order: 2},
	}
}

func TestPlaceMainBranch(t *testing.T) {
	l := Place(main3(), DefaultParams())

	assert.Equal(t, 1460.0, l.Width, "3 slots of 420 plus trailing room")
	assert.Equal(t, 600.0, l.Height)
	require.Len(t, l.Items, 3)
	for i, it := range l.Items {
		assert.Equal(t, float64(i*420), it.X)
		assert.Equal(t, 348.0, it.Y)
	}

	require.Len(t, l.Paths, 1)
	assert.Equal(t, types.MainBranch, l.Paths[0].Branch)
	assert.Equal(t,
		"M 0 348 S 150 298, 300 398 S 450 398, 600 298 S 750 298, 900 398 S 1050 398, 1200 298 S 1350 298, 1410 398",
		l.Paths[0].D)
}

func TestPlaceEmpty(t *testing.T) {
	l := Place(nil, DefaultParams())
	assert.Equal(t, 620.0, l.Width, "an empty roadmap still reserves one slot")
	assert.Empty(t, l.Items)
	assert.Empty(t, l.Paths)
}

func TestPlaceSideBranches(t *testing.T) {
	cps := append(main3(),
		types.Checkpoint{ID: "up0", Branch: "alpha", Order: 0},
		types.Checkpoint{ID: "up1", Branch: "alpha", Order: 1},
		types.Checkpoint{ID: "up2", Branch: "alpha", Order: 2},
		types.Checkpoint{ID: "down0", Branch: "beta", Order: 0},
	)
	l := Place(cps, DefaultParams())

	assert.Equal(t, 4*420.0+200, l.Width, "side branch starts one slot in")

	up0, ok := l.Item("up0")
	require.True(t, ok)
	assert.Equal(t, 420.0, up0.X)
	assert.Equal(t, 600*38/100.0, up0.Y)

	up2, _ := l.Item("up2")
	assert.Equal(t, 3*420.0, up2.X)

	down0, _ := l.Item("down0")
	assert.Equal(t, 420.0, down0.X)
	assert.Equal(t, 600*78/100.0, down0.Y)

	require.Len(t, l.Paths, 3)
	assert.Equal(t, []string{types.MainBranch, "alpha", "beta"},
		[]string{l.Paths[0].Branch, l.Paths[1].Branch, l.Paths[2].Branch})
	assert.Contains(t, l.Paths[1].D, "M 420 228")
}

func TestPlaceKeepsDeclaredPositions(t *testing.T) {
	cps := []types.Checkpoint{
		{ID: "a", Branch: types.MainBranch, Position: types.Position{X: 50, Y: 60, Unit: types.UnitPixel}},
		{ID: "b", Branch: types.MainBranch, Order: 1, Position: types.Position{X: 50, Y: 50, Unit: types.UnitPercent}},
	}
	l := Place(cps, DefaultParams())

	a, _ := l.Item("a")
	assert.Equal(t, Item{ID: "a", Branch: types.MainBranch, X: 50, Y: 60}, a)

	b, _ := l.Item("b")
	assert.Equal(t, l.Width/2, b.X)
	assert.Equal(t, 300.0, b.Y)
}

func TestLaneY(t *testing.T) {
	p := DefaultParams()
	assert.Equal(t, 38.0, laneY(p, 1))
	assert.Equal(t, 78.0, laneY(p, 2))
	assert.Equal(t, 18.0, laneY(p, 3))
	assert.Equal(t, 95.0, laneY(p, 4), "clamped to the canvas")
}

func TestApply(t *testing.T) {
	cps := main3()
	cps[2].Position = types.Position{X: 90, Y: 50, Unit: types.UnitPercent}
	l := Place(cps, DefaultParams())

	out := l.Apply(cps)
	require.Len(t, out, 3)
	assert.Equal(t, types.Position{X: 420, Y: 348, Unit: types.UnitPixel}, out[1].Position)
	assert.Equal(t, cps[2].Position, out[2].Position, "declared positions are kept")
	assert.True(t, cps[1].Position.IsZero(), "input is not modified")
}
