// Package catalog loads checkpoint catalogs declared in YAML or JSON files.
//
// A catalog file looks like:
//
//	root: intro
//	canvas_width: 1600
//	checkpoints:
//	  - id: intro
//	    title: Start here
//	    url: https://example.com/intro
//	  - id: basics
//	    order: 1
//	    x: 40
//	    y: 58
//	  - id: deep-dive
//	    branch: advanced
//	    x: 900
//	    y: 200
//	    unit: px
//
// Branch defaults to main, order to 0. Positions are optional.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/roadmap/pkg/types"
)

// ErrNoCheckpoints is returned when a catalog file declares no checkpoints.
var ErrNoCheckpoints = errors.New("catalog declares no checkpoints")

// entry is one checkpoint as written in a catalog file.
type entry struct {
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title"`
	URL    string  `yaml:"url"`
	Branch string  `yaml:"branch"`
	Order  int     `yaml:"order"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Unit   string  `yaml:"unit"`
}

// document is the top-level shape of a catalog file.
type document struct {
	Root        string  `yaml:"root"`
	CanvasWidth float64 `yaml:"canvas_width"`
	Checkpoints []entry `yaml:"checkpoints"`
}

// Catalog is a checkpoint list read from a file. It implements types.Catalog.
type Catalog struct {
	root        string
	canvasWidth float64
	checkpoints []types.Checkpoint
}

var _ types.Catalog = (*Catalog)(nil)

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog document. JSON input is accepted since it is
// valid YAML. Entries without an id are skipped.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	c := &Catalog{root: doc.Root, canvasWidth: doc.CanvasWidth}
	for _, e := range doc.Checkpoints {
		cp := types.Checkpoint{
			ID:       e.ID,
			Title:    e.Title,
			URL:      e.URL,
			Branch:   e.Branch,
			Order:    e.Order,
			Position: types.Position{X: e.X, Y: e.Y, Unit: e.Unit},
		}.Normalize()
		if cp.ID == "" {
			continue
		}
		c.checkpoints = append(c.checkpoints, cp)
	}
	if len(c.checkpoints) == 0 {
		return nil, ErrNoCheckpoints
	}
	return c, nil
}

// Checkpoints returns the declared checkpoints in file order.
func (c *Catalog) Checkpoints() ([]types.Checkpoint, error) {
	out := make([]types.Checkpoint, len(c.checkpoints))
	copy(out, c.checkpoints)
	return out, nil
}

// Root returns the root checkpoint declared in the file, if any.
func (c *Catalog) Root() string {
	return c.root
}

// CanvasWidth returns the declared canvas width, zero when absent.
func (c *Catalog) CanvasWidth() float64 {
	return c.canvasWidth
}

// Static is a fixed in-memory catalog.
type Static []types.Checkpoint

// Checkpoints returns the checkpoints as given.
func (s Static) Checkpoints() ([]types.Checkpoint, error) {
	out := make([]types.Checkpoint, len(s))
	copy(out, s)
	return out, nil
}
