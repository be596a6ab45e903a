package render

import (
	"io"
	"strconv"
	"text/template"

	"github.com/mesh-intelligence/roadmap/internal/layout"
)

// svgNode is a placed checkpoint with its presentation state.
type svgNode struct {
	layout.Item
	Node
}

type svgDoc struct {
	Layout     layout.Layout
	Nodes      []svgNode
	GlowOffset float64
	FogReveal  float64
	Scroll     string
}

var svgTemplate = template.Must(template.New("roadmap").Funcs(template.FuncMap{
	"f": formatFloat,
}).Parse(`<svg xmlns="http://www.w3.org/2000/svg" class="roadmap" width="{{f .Layout.Width}}" height="{{f .Layout.Height}}" viewBox="0 0 {{f .Layout.Width}} {{f .Layout.Height}}" style="--fog-reveal: {{f .FogReveal}}%"{{if .Scroll}} data-scroll-target="{{html .Scroll}}"{{end}}>
  <defs>
    <linearGradient id="roadmap-glow" x1="0%" y1="0%" x2="100%" y2="0%">
      <stop offset="{{f .GlowOffset}}%" stop-color="#ffd166" stop-opacity="1"/>
      <stop offset="{{f .GlowOffset}}%" stop-color="#3a3a4a" stop-opacity="0.6"/>
    </linearGradient>
  </defs>
{{- range .Layout.Paths}}
  <path class="branch-path" data-branch="{{html .Branch}}" d="{{.D}}" fill="none" stroke="url(#roadmap-glow)" stroke-width="6"/>
{{- end}}
{{- range .Nodes}}
  <g class="checkpoint{{if .Locked}} locked{{end}}" data-id="{{html .Item.ID}}" data-branch="{{html .Branch}}" transform="translate({{f .X}} {{f .Y}})">
    <circle r="18"/>
    <text y="-28" text-anchor="middle">{{html .Title}}</text>
    <text class="button" y="40" text-anchor="middle" opacity="{{f .Button.Opacity}}"{{if not .Button.Enabled}} data-disabled="true"{{end}}>{{html .Button.Label}}</text>
  </g>
{{- end}}
</svg>
`))

// WriteSVG renders the placed roadmap with the board's presentation state.
// Items without a node on the board are skipped.
func WriteSVG(w io.Writer, l layout.Layout, board Board) error {
	doc := svgDoc{
		Layout:     l,
		GlowOffset: board.GlowOffset,
		FogReveal:  board.FogReveal,
		Scroll:     board.ScrollTarget,
	}
	for _, it := range l.Items {
		n, ok := board.Node(it.ID)
		if !ok {
			continue
		}
		doc.Nodes = append(doc.Nodes, svgNode{Item: it, Node: n})
	}
	return svgTemplate.Execute(w, doc)
}

// formatFloat prints v without trailing zeros.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
