package graph

import (
	"fmt"

	"github.com/ritzau/graphsketch/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

// AddVertex appends a new vertex with an empty incident-edge index
func (g *Graph) AddVertex(pos r2.Vec, radius float64) VertexID {
	g.lastVertex++
	v := &Vertex{
		ID:     g.lastVertex,
		Pos:    pos,
		Radius: radius,
	}
	g.vertices = append(g.vertices, v)
	g.vertexByID[v.ID] = v
	return v.ID
}

// AddEdge connects from and to. Both handles must be live; self-loops and
// parallel edges are accepted.
func (g *Graph) AddEdge(from, to VertexID) (EdgeID, error) {
	fromV, ok := g.vertexByID[from]
	if !ok {
		return 0, fmt.Errorf("edge source %d: %w", from, ErrInvalidReference)
	}
	toV, ok := g.vertexByID[to]
	if !ok {
		return 0, fmt.Errorf("edge target %d: %w", to, ErrInvalidReference)
	}

	number := 1
	if n := len(g.edges); n > 0 {
		number = g.edges[n-1].Number + 1
	}

	g.lastEdge++
	e := &Edge{
		ID:       g.lastEdge,
		Number:   number,
		From:     from,
		To:       to,
		Midpoint: geometry.Midpoint(fromV.Pos, toV.Pos),
	}
	g.edges = append(g.edges, e)
	g.edgeByID[e.ID] = e

	fromV.edges = append(fromV.edges, e.ID)
	if from != to || g.loops == LoopTwice {
		toV.edges = append(toV.edges, e.ID)
	}
	return e.ID, nil
}

// RemoveEdge deletes the edge from both endpoints' incident indexes and from
// the edge set. It returns false, doing nothing, if id is not live.
func (g *Graph) RemoveEdge(id EdgeID) bool {
	e, ok := g.edgeByID[id]
	if !ok {
		return false
	}

	if v, ok := g.vertexByID[e.From]; ok {
		v.edges = removeOne(v.edges, id)
	}
	if v, ok := g.vertexByID[e.To]; ok {
		v.edges = removeOne(v.edges, id)
	}

	delete(g.edgeByID, id)
	for i, other := range g.edges {
		if other.ID == id {
			g.edges = append(g.edges[:i], g.edges[i+1:]...)
			break
		}
	}
	return true
}

// RemoveVertex deletes the vertex only. Edges that reference it are left in
// place; callers that want the cascade should use DeleteVertex.
func (g *Graph) RemoveVertex(id VertexID) bool {
	if _, ok := g.vertexByID[id]; !ok {
		return false
	}
	delete(g.vertexByID, id)
	for i, v := range g.vertices {
		if v.ID == id {
			g.vertices = append(g.vertices[:i], g.vertices[i+1:]...)
			break
		}
	}
	return true
}

// DeleteVertex snapshots the vertex's incident edges, removes the vertex and
// then removes each snapshotted edge. It returns the removed edge handles.
func (g *Graph) DeleteVertex(id VertexID) []EdgeID {
	v, ok := g.vertexByID[id]
	if !ok {
		return nil
	}

	dying := make([]EdgeID, 0, len(v.edges))
	seen := make(map[EdgeID]bool, len(v.edges))
	for _, eid := range v.edges {
		if !seen[eid] {
			seen[eid] = true
			dying = append(dying, eid)
		}
	}

	g.RemoveVertex(id)

	removed := dying[:0]
	for _, eid := range dying {
		if g.RemoveEdge(eid) {
			removed = append(removed, eid)
		}
	}
	return removed
}

// MoveVertex places the vertex at pos and recomputes the midpoints of its
// incident edges.
func (g *Graph) MoveVertex(id VertexID, pos r2.Vec) bool {
	v, ok := g.vertexByID[id]
	if !ok {
		return false
	}
	v.Pos = pos
	for _, eid := range v.edges {
		e, ok := g.edgeByID[eid]
		if !ok {
			continue
		}
		from, okFrom := g.vertexByID[e.From]
		to, okTo := g.vertexByID[e.To]
		if okFrom && okTo {
			e.Midpoint = geometry.Midpoint(from.Pos, to.Pos)
		}
	}
	return true
}

// SetSelected sets the vertex's selection flag
func (g *Graph) SetSelected(id VertexID, selected bool) bool {
	v, ok := g.vertexByID[id]
	if !ok {
		return false
	}
	v.Selected = selected
	return true
}

func removeOne(ids []EdgeID, id EdgeID) []EdgeID {
	for i, other := range ids {
		if other == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
