// Package components counts the connected components of the editor graph,
// treating every edge as undirected.
package components

import (
	"github.com/ritzau/graphsketch/pkg/graph"
)

// Count returns the number of connected components. An empty graph has 0.
func Count(g Graph) int {
	return len(NewDFS(g).Run())
}

// Groups returns the vertex sets of each connected component, in the order
// their first vertex appears in g.
func Groups(g Graph) [][]graph.VertexID {
	return NewDFS(g).Run()
}
