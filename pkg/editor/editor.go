// Package editor translates pointer input into graph edits.
//
// A Controller owns the interaction state of one drawing surface: the current
// mode, the selected vertex and the edge that was under the pointer when it
// was last pressed. It is the only caller of the graph's mutating operations,
// and after every change it hands a fresh snapshot to its Renderer.
//
// Controller is not safe for concurrent use; callers serialize input events.
package editor

import (
	"log/slog"

	"github.com/ritzau/graphsketch/pkg/components"
	"github.com/ritzau/graphsketch/pkg/geometry"
	"github.com/ritzau/graphsketch/pkg/graph"
	"github.com/ritzau/graphsketch/pkg/logging"
	"github.com/ritzau/graphsketch/pkg/model"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultRadius is the radius given to vertices placed by a click
const DefaultRadius = 10.0

// Renderer draws snapshots of the editor
type Renderer interface {
	Draw(snap *model.Snapshot)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(snap *model.Snapshot)

// Draw calls f(snap)
func (f RendererFunc) Draw(snap *model.Snapshot) {
	f(snap)
}

// Pointer is one pointer event in surface coordinates.
type Pointer struct {
	Pos r2.Vec
	// Edge is the edge under the pointer as reported by the renderer's hit
	// canvas, 0 for none.
	Edge graph.EdgeID
	// Pressed is true while a button is held (drag).
	Pressed bool
}

// Settings are the live-tunable parts of the controller
type Settings struct {
	Radius    float64
	Tolerance float64
	HitShape  geometry.HitShape
}

// Option configures a Controller
type Option func(*Controller)

// WithSettings sets the initial settings
func WithSettings(s Settings) Option {
	return func(c *Controller) {
		c.applySettings(s)
	}
}

// Controller holds the mode and selection of one editor instance
type Controller struct {
	graph    *graph.Graph
	renderer Renderer

	mode      model.Mode
	selection graph.VertexID // 0 when nothing is selected
	pressEdge graph.EdgeID   // edge under the pointer at the last Down

	radius    float64
	tolerance float64
}

// New creates a controller in create mode. A nil renderer discards snapshots.
func New(g *graph.Graph, r Renderer, opts ...Option) *Controller {
	if r == nil {
		r = RendererFunc(func(*model.Snapshot) {})
	}
	c := &Controller{
		graph:    g,
		renderer: r,
		mode:     model.ModeCreate,
		radius:   DefaultRadius,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// log resolves the component logger per call so that output or format
// changes made after New still apply
func (c *Controller) log() *slog.Logger {
	return logging.New("editor")
}

// Graph returns the graph the controller edits
func (c *Controller) Graph() *graph.Graph {
	return c.graph
}

// Mode returns the current interaction mode
func (c *Controller) Mode() model.Mode {
	return c.mode
}

// SetMode switches between create and delete mode
func (c *Controller) SetMode(m model.Mode) {
	if m == c.mode {
		return
	}
	c.mode = m
	c.log().Info("mode changed", "mode", string(m))
	c.redraw()
}

// Selection returns the selected vertex, if any
func (c *Controller) Selection() (graph.VertexID, bool) {
	return c.selection, c.selection != 0
}

// Settings returns the current settings
func (c *Controller) Settings() Settings {
	return Settings{
		Radius:    c.radius,
		Tolerance: c.tolerance,
		HitShape:  c.graph.HitShape(),
	}
}

// ApplySettings replaces the live settings and redraws
func (c *Controller) ApplySettings(s Settings) {
	c.applySettings(s)
	c.log().Info("settings applied",
		"radius", c.radius,
		"tolerance", c.tolerance,
		"hitShape", c.graph.HitShape().String(),
	)
	c.redraw()
}

func (c *Controller) applySettings(s Settings) {
	if s.Radius > 0 {
		c.radius = s.Radius
	}
	if s.Tolerance >= 0 {
		c.tolerance = s.Tolerance
	}
	c.graph.SetHitShape(s.HitShape)
}

// Status returns the vertex, edge and component counts
func (c *Controller) Status() model.Status {
	return model.Status{
		Vertices:   c.graph.VertexCount(),
		Edges:      c.graph.EdgeCount(),
		Components: components.Count(c.graph),
	}
}

// Redraw hands the current snapshot to the renderer. Calling it repeatedly on
// an unchanged graph yields identical snapshots.
func (c *Controller) Redraw() {
	c.redraw()
}

func (c *Controller) redraw() {
	c.renderer.Draw(c.Snapshot())
}

// HitTest returns the vertex under pos using the current tolerance
func (c *Controller) HitTest(pos r2.Vec) (graph.VertexID, bool) {
	return c.graph.FindAt(pos, c.tolerance)
}
