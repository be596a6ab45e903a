package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/roadmap/internal/layout"
	"github.com/mesh-intelligence/roadmap/pkg/types"
)

var (
	open   = types.Button{Label: "Mark as done", Enabled: true, Opacity: 1}
	closed = types.Button{Label: "Locked", Enabled: false, Opacity: 0.4}
	done   = types.Button{Label: "Completed", Enabled: false, Opacity: 0.6}
)

func sampleBoard() Board {
	r := NewRecorder()
	r.SetLocked("a", false)
	r.SetButton("a", done)
	r.SetLocked("b", false)
	r.SetButton("b", open)
	r.SetLocked("c", true)
	r.SetButton("c", closed)
	r.SetGlowOffset(12.5)
	r.SetFogReveal(22.5)
	r.ScrollTo("b")
	return r.Board()
}

func TestRecorderKeepsFirstWriteOrderAndLatestValue(t *testing.T) {
	r := NewRecorder()
	r.SetLocked("b", true)
	r.SetLocked("a", true)
	r.SetLocked("b", false)
	r.SetButton("a", open)
	r.ScrollTo("a")
	r.ScrollTo("b")

	b := r.Board()
	require.Len(t, b.Nodes, 2)
	assert.Equal(t, "b", b.Nodes[0].ID)
	assert.False(t, b.Nodes[0].Locked)
	assert.Equal(t, open, b.Nodes[1].Button)
	assert.Equal(t, "b", b.ScrollTarget)
	assert.Equal(t, 2, r.Scrolls())
}

func TestBoardNode(t *testing.T) {
	b := sampleBoard()
	n, ok := b.Node("c")
	require.True(t, ok)
	assert.True(t, n.Locked)

	_, ok = b.Node("zzz")
	assert.False(t, ok)
}

func TestWriteText(t *testing.T) {
	cps := []types.Checkpoint{
		{ID: "a", Branch: "main", Title: "Intro"},
		{ID: "b", Branch: "main", Order: 1, Title: "Basics"},
		{ID: "c", Branch: "side", Title: "Extras"},
		{ID: "0193f7a2-5c1e-7d3a-9b1f-0a2b3c4d5e6f", Branch: "side", Order: 1},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, cps, sampleBoard()))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 7, "header, rule, three rows, blank, summary")
	assert.Regexp(t, `^a\s+main\s+0\s+done\s+Completed\s+Intro$`, lines[2])
	assert.Regexp(t, `^b\s+main\s+1\s+open\s+Mark as done\s+Basics$`, lines[3])
	assert.Regexp(t, `^c\s+side\s+0\s+locked\s+Locked\s+Extras$`, lines[4])
	assert.Equal(t, "Glow: 12.5%  Fog: 22.5%", lines[6])
}

func TestDisplayID(t *testing.T) {
	assert.Equal(t, "intro", displayID("intro"))
	assert.Equal(t, "0193f7a2", displayID("0193f7a2-5c1e-7d3a-9b1f-0a2b3c4d5e6f"))
}

func TestWriteSVG(t *testing.T) {
	cps := []types.Checkpoint{
		{ID: "a", Branch: "main", Title: "Intro & <basics>"},
		{ID: "b", Branch: "main", Order: 1},
		{ID: "c", Branch: "side"},
		{ID: "ghost", Branch: "main", Order: 2},
	}
	l := layout.Place(cps, layout.DefaultParams())

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, l, sampleBoard()))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.Contains(t, out, `style="--fog-reveal: 22.5%"`)
	assert.Contains(t, out, `data-scroll-target="b"`)
	assert.Contains(t, out, `<stop offset="12.5%"`)
	assert.Equal(t, 2, strings.Count(out, `class="branch-path"`))
	assert.Equal(t, 3, strings.Count(out, `<g class="checkpoint`), "items without a node are skipped")
	assert.Contains(t, out, `<g class="checkpoint locked" data-id="c" data-branch="side" transform="translate(420 228)">`)
	assert.Contains(t, out, `<g class="checkpoint" data-id="a" data-branch="main" transform="translate(0 348)">`)
	assert.Contains(t, out, "Intro &amp; &lt;basics&gt;")
	assert.Contains(t, out, `opacity="0.4" data-disabled="true">Locked</text>`)
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
}

func TestRecorderSatisfiesSurface(t *testing.T) {
	var s types.Surface = NewRecorder()
	s.SetFogReveal(1)
	assert.Equal(t, 1.0, s.(*Recorder).Board().FogReveal)
}
