package editor

import (
	"github.com/ritzau/graphsketch/pkg/model"
)

// Snapshot builds the renderer's view of the current state
func (c *Controller) Snapshot() *model.Snapshot {
	snap := model.NewSnapshot()
	snap.Mode = c.mode
	snap.Selection = int64(c.selection)
	snap.Status = c.Status()
	snap.Settings = model.Settings{
		Radius:    c.radius,
		Tolerance: c.tolerance,
		HitShape:  c.graph.HitShape().String(),
	}

	for _, v := range c.graph.Vertices() {
		snap.Vertices = append(snap.Vertices, model.Vertex{
			ID:       int64(v.ID),
			X:        v.Pos.X,
			Y:        v.Pos.Y,
			Radius:   v.Radius,
			Selected: v.Selected,
			Degree:   c.graph.Degree(v.ID),
		})
	}

	for _, e := range c.graph.Edges() {
		snap.Edges = append(snap.Edges, model.Edge{
			ID:       int64(e.ID),
			Number:   e.Number,
			From:     int64(e.From),
			To:       int64(e.To),
			MidX:     e.Midpoint.X,
			MidY:     e.Midpoint.Y,
			Loop:     e.IsLoop(),
			Parallel: c.graph.CountParallel(e.From, e.To),
		})
	}

	return snap
}
