package editor

import (
	"github.com/ritzau/graphsketch/pkg/model"
)

// outside reports whether a pointer lies left of or above the surface
func outside(p Pointer) bool {
	return p.Pos.X < 0 || p.Pos.Y < 0
}

// Down handles a button press.
//
// In create mode the current selection is unmarked. When the press hits a
// vertex, the previous selection (if any) is connected to it and the hit
// vertex becomes the selection; pressing the selected vertex again therefore
// adds a self-loop.
func (c *Controller) Down(p Pointer) {
	if outside(p) {
		return
	}
	target, hit := c.HitTest(p.Pos)
	c.pressEdge = 0
	if c.graph.HasEdge(p.Edge) {
		c.pressEdge = p.Edge
	}

	if c.mode != model.ModeCreate {
		return
	}

	c.unmarkSelection()
	if !hit {
		return
	}
	if c.selection != 0 {
		if _, err := c.graph.AddEdge(c.selection, target); err != nil {
			c.log().Debug("connect dropped", "from", int64(c.selection), "to", int64(target), "error", err)
		}
	}
	c.selection = target
	c.graph.SetSelected(target, true)
	c.redraw()
}

// Up handles a button release.
//
// In create mode a release with no selection and no edge under the press
// places a vertex; a selection that the press unmarked is dropped. In delete
// mode the vertex under the pointer is removed with its edges, or failing
// that the edge under the pointer.
func (c *Controller) Up(p Pointer) {
	if outside(p) {
		return
	}

	if c.mode == model.ModeCreate {
		if c.selection == 0 && c.pressEdge == 0 {
			id := c.graph.AddVertex(p.Pos, c.radius)
			c.log().Debug("vertex placed", "id", int64(id), "x", p.Pos.X, "y", p.Pos.Y)
		}
		if c.selection != 0 && !c.selectionMarked() {
			c.selection = 0
		}
		c.redraw()
		return
	}

	if target, hit := c.HitTest(p.Pos); hit {
		c.DeleteVertex(target)
		return
	}
	if p.Edge != 0 {
		c.DeleteEdge(p.Edge)
	}
}

// Move handles pointer motion. Dragging with a selected vertex moves it.
func (c *Controller) Move(p Pointer) {
	if c.selection == 0 || !p.Pressed {
		return
	}
	if c.graph.MoveVertex(c.selection, p.Pos) {
		c.redraw()
	}
}

// Click is a Down followed by an Up at the same position
func (c *Controller) Click(p Pointer) {
	c.Down(p)
	c.Up(p)
}
