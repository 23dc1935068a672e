package editor

import (
	"errors"

	"github.com/ritzau/graphsketch/pkg/graph"
	"gonum.org/v1/gonum/spatial/r2"
)

// PlaceVertex adds a vertex at pos. A non-positive radius uses the default.
func (c *Controller) PlaceVertex(pos r2.Vec, radius float64) graph.VertexID {
	if radius <= 0 {
		radius = c.radius
	}
	id := c.graph.AddVertex(pos, radius)
	c.log().Debug("vertex placed", "id", int64(id), "x", pos.X, "y", pos.Y)
	c.redraw()
	return id
}

// Connect adds an edge from -> to. A connect naming a dead vertex is dropped
// and reported as false.
func (c *Controller) Connect(from, to graph.VertexID) (graph.EdgeID, bool) {
	id, err := c.graph.AddEdge(from, to)
	if err != nil {
		if errors.Is(err, graph.ErrInvalidReference) {
			c.log().Debug("connect dropped", "from", int64(from), "to", int64(to), "error", err)
			return 0, false
		}
		c.log().Error("connect failed", "error", err)
		return 0, false
	}
	c.log().Debug("edge added", "id", int64(id), "from", int64(from), "to", int64(to))
	c.redraw()
	return id, true
}

// DeleteVertex removes the vertex together with its incident edges. The
// selection is cleared if it pointed at the vertex. Deleting a dead vertex is
// a no-op.
func (c *Controller) DeleteVertex(id graph.VertexID) bool {
	if !c.graph.HasVertex(id) {
		return false
	}
	removed := c.graph.DeleteVertex(id)
	if c.selection == id {
		c.selection = 0
	}
	c.log().Debug("vertex deleted", "id", int64(id), "edges", len(removed))
	c.redraw()
	return true
}

// DeleteEdge removes a single edge. Deleting a dead edge is a no-op.
func (c *Controller) DeleteEdge(id graph.EdgeID) bool {
	if !c.graph.RemoveEdge(id) {
		return false
	}
	if c.pressEdge == id {
		c.pressEdge = 0
	}
	c.log().Debug("edge deleted", "id", int64(id))
	c.redraw()
	return true
}

// Select marks id as the selected vertex, replacing any previous selection
func (c *Controller) Select(id graph.VertexID) bool {
	if !c.graph.HasVertex(id) {
		return false
	}
	c.unmarkSelection()
	c.selection = id
	c.graph.SetSelected(id, true)
	c.redraw()
	return true
}

// ClearSelection drops the selection
func (c *Controller) ClearSelection() {
	if c.selection == 0 {
		return
	}
	c.unmarkSelection()
	c.selection = 0
	c.redraw()
}

// unmarkSelection clears the selected flag but keeps the selection slot
func (c *Controller) unmarkSelection() {
	if c.selection != 0 {
		c.graph.SetSelected(c.selection, false)
	}
}

// selectionMarked reports whether the selected vertex still carries its flag
func (c *Controller) selectionMarked() bool {
	v, ok := c.graph.Vertex(c.selection)
	return ok && v.Selected
}
