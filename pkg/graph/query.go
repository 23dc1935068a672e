package graph

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// CountParallel returns the number of live edges whose unordered endpoint pair
// is {u, v}. Self-loops are only counted when u == v.
func (g *Graph) CountParallel(u, v VertexID) int {
	count := 0
	for _, e := range g.edges {
		if (e.From == u && e.To == v) || (e.From == v && e.To == u) {
			count++
		}
	}
	return count
}

// FindAt returns the first vertex, in insertion order, whose hit region
// contains pos. tolerance widens the region on every side.
func (g *Graph) FindAt(pos r2.Vec, tolerance float64) (VertexID, bool) {
	for _, v := range g.vertices {
		if v.Contains(pos, g.shape, tolerance) {
			return v.ID, true
		}
	}
	return 0, false
}

// IncidenceMatrix returns the vertex-by-edge incidence matrix, rows in vertex
// insertion order and columns in edge insertion order. An entry is 1 when the
// vertex is an endpoint of the edge. It returns nil when the graph has no
// vertices or no edges.
func (g *Graph) IncidenceMatrix() *mat.Dense {
	if len(g.vertices) == 0 || len(g.edges) == 0 {
		return nil
	}

	row := make(map[VertexID]int, len(g.vertices))
	for i, v := range g.vertices {
		row[v.ID] = i
	}

	m := mat.NewDense(len(g.vertices), len(g.edges), nil)
	for j, e := range g.edges {
		if i, ok := row[e.From]; ok {
			m.Set(i, j, 1)
		}
		if i, ok := row[e.To]; ok {
			m.Set(i, j, 1)
		}
	}
	return m
}
