package components

import (
	"github.com/ritzau/graphsketch/pkg/graph"
)

// Graph is the adjacency view the search needs. *graph.Graph satisfies it.
type Graph interface {
	// VertexIDs returns every vertex in a fixed order
	VertexIDs() []graph.VertexID
	// Neighbors returns the vertices across each incident edge
	Neighbors(id graph.VertexID) []graph.VertexID
}

// DFS labels every vertex with the index of its connected component
type DFS struct {
	graph     Graph
	visited   map[graph.VertexID]bool
	component map[graph.VertexID]int
	groups    [][]graph.VertexID
}

// NewDFS creates a new component search over g
func NewDFS(g Graph) *DFS {
	return &DFS{
		graph:     g,
		visited:   make(map[graph.VertexID]bool),
		component: make(map[graph.VertexID]int),
		groups:    make([][]graph.VertexID, 0),
	}
}

// Run visits every vertex and returns the components in discovery order.
// Each component lists its vertices in visit order.
func (d *DFS) Run() [][]graph.VertexID {
	for _, id := range d.graph.VertexIDs() {
		if !d.visited[id] {
			d.groups = append(d.groups, make([]graph.VertexID, 0, 1))
			d.visit(id, len(d.groups)-1)
		}
	}
	return d.groups
}

// ComponentOf returns the component index assigned to id by Run
func (d *DFS) ComponentOf(id graph.VertexID) (int, bool) {
	c, ok := d.component[id]
	return c, ok
}

// visit marks id and recurses into its unvisited neighbors
func (d *DFS) visit(id graph.VertexID, comp int) {
	d.visited[id] = true
	d.component[id] = comp
	d.groups[comp] = append(d.groups[comp], id)

	for _, next := range d.graph.Neighbors(id) {
		if !d.visited[next] {
			d.visit(next, comp)
		}
	}
}
