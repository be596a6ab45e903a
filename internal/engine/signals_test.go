package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roadmap/internal/catalog"
	"github.com/mesh-intelligence/roadmap/internal/render"
	"github.com/mesh-intelligence/roadmap/pkg/types"
)

func pct(x float64) types.Position { return types.Position{X: x, Y: 58, Unit: types.UnitPercent} }
func px(x float64) types.Position { return types.Position{X: x, Y: 348, Unit: types.UnitPixel} }

func TestGlowOffsetPercent(t *testing.T) {
	cat := catalog.Static{
		{ID: "a", Order: 0, Position: pct(10)},
		{ID: "b", Order: 1, Position: pct(45)},
		{ID: "s", Branch: "side", Position: pct(30)},
	}
	e := New(cat, nil)

	s := e.Signals()
	assert.Equal(t, 0.0, s.GlowOffset)
	assert.Equal(t, 10.0, s.FogReveal, "baseline only")
	assert.Equal(t, 0, s.Completed)
	assert.Equal(t, 3, s.Total)

	require.True(t, e.Complete("a"))
	require.True(t, e.Complete("b"))
	require.True(t, e.Complete("s"))

	s = e.Signals()
	assert.Equal(t, 45.0, s.GlowOffset, "maximum x among completed checkpoints")
	assert.Equal(t, 55.0, s.FogReveal)
	assert.Equal(t, 3, s.Completed)
}

func TestGlowOffsetPixels(t *testing.T) {
	cat := catalog.Static{
		{ID: "a", Order: 0, Position: px(0)},
		{ID: "b", Order: 1, Position: px(420)},
		{ID: "c", Order: 2, Position: px(840)},
	}

	t.Run("canvas width from configuration", func(t *testing.T) {
		e := New(cat, nil, WithCanvasWidth(1680))
		require.True(t, e.Complete("a"))
		require.True(t, e.Complete("b"))
		assert.Equal(t, 25.0, e.Signals().GlowOffset)
	})

	t.Run("canvas width inferred from widest checkpoint", func(t *testing.T) {
		e := New(cat, nil)
		require.True(t, e.Complete("a"))
		require.True(t, e.Complete("b"))
		assert.Equal(t, 50.0, e.Signals().GlowOffset)
	})
}

func TestFogRevealClamps(t *testing.T) {
	cat := catalog.Static{
		{ID: "a", Order: 0, Position: pct(99)},
	}

	e := New(cat, nil)
	require.True(t, e.Complete("a"))
	assert.Equal(t, 95.0, e.Signals().FogReveal, "clamped to the default ceiling")

	e = New(cat, nil, WithFog(0, 60))
	require.True(t, e.Complete("a"))
	assert.Equal(t, 60.0, e.Signals().FogReveal)
}

func TestGlowOffsetIgnoresUnpositioned(t *testing.T) {
	e := New(catalog.Static{{ID: "a"}}, nil)
	require.True(t, e.Complete("a"))
	assert.Equal(t, 0.0, e.Signals().GlowOffset)
}

func TestSignalsReachSurface(t *testing.T) {
	rec := render.NewRecorder()
	e := New(catalog.Static{{ID: "a", Position: pct(40)}}, nil, WithSurface(rec))
	require.True(t, e.Complete("a"))

	b := rec.Board()
	assert.Equal(t, 40.0, b.GlowOffset)
	assert.Equal(t, 50.0, b.FogReveal)
}

func TestButtonFor(t *testing.T) {
	assert.Equal(t, ButtonCompleted, ButtonFor(StatusCompleted))
	assert.Equal(t, ButtonUnlocked, ButtonFor(StatusUnlocked))
	assert.Equal(t, ButtonLocked, ButtonFor(StatusLocked))
	assert.False(t, ButtonFor(StatusLocked).Enabled)
	assert.True(t, ButtonFor(StatusUnlocked).Enabled)
}
