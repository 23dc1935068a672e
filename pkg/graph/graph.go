// Package graph is the editor's graph model.
//
// Vertices and edges live in two arenas owned by Graph and are addressed by
// opaque integer handles. A vertex keeps an ordered index of the handles of its
// incident edges; an edge keeps the handles of its two endpoints. Neither side
// owns the other, so removing a vertex does not remove its edges by itself
// (see DeleteVertex for the cascading form).
//
// Edges are undirected for adjacency purposes. From and To only record which
// way the user drew the edge. Self-loops and parallel edges are allowed.
//
// Graph is not safe for concurrent use.
package graph

import (
	"fmt"
	"strings"

	"github.com/ritzau/graphsketch/pkg/geometry"
	"gonum.org/v1/gonum/spatial/r2"
)

// VertexID is an opaque handle to a vertex. Handles are never reused, so a
// handle of a removed vertex stays invalid.
type VertexID int64

// EdgeID is an opaque handle to an edge. Handles are never reused.
type EdgeID int64

// LoopPolicy decides how many times a self-loop is recorded in its vertex's
// incident-edge index.
type LoopPolicy int

const (
	// LoopTwice records a self-loop once per endpoint, so a single loop
	// contributes 2 to the vertex degree.
	LoopTwice LoopPolicy = iota
	// LoopOnce records a self-loop a single time.
	LoopOnce
)

func (p LoopPolicy) String() string {
	if p == LoopOnce {
		return "once"
	}
	return "twice"
}

// ParseLoopPolicy maps a config value ("once" or "twice") to a LoopPolicy
func ParseLoopPolicy(s string) (LoopPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "twice", "2":
		return LoopTwice, nil
	case "once", "1":
		return LoopOnce, nil
	default:
		return LoopTwice, fmt.Errorf("unknown loop policy %q", s)
	}
}

// Vertex is a point on the drawing surface.
type Vertex struct {
	ID       VertexID
	Pos      r2.Vec
	Radius   float64
	Selected bool

	edges []EdgeID
}

// Contains reports whether p hits the vertex. The hit region is the given
// shape around Pos with half-size Radius+tolerance.
func (v *Vertex) Contains(p r2.Vec, shape geometry.HitShape, tolerance float64) bool {
	return shape.Contains(p, v.Pos, v.Radius+tolerance)
}

// Edge connects two vertices.
type Edge struct {
	ID EdgeID
	// Number is the user-visible edge number: one more than the highest live
	// number at creation time, or 1 in an empty edge set.
	Number   int
	From     VertexID
	To       VertexID
	Midpoint r2.Vec
}

// IsLoop reports whether the edge starts and ends at the same vertex
func (e *Edge) IsLoop() bool {
	return e.From == e.To
}

// Other returns the endpoint that is not v. For a self-loop it returns v.
func (e *Edge) Other(v VertexID) VertexID {
	if e.From != v {
		return e.From
	}
	return e.To
}

// Option configures a Graph
type Option func(*Graph)

// WithLoopPolicy sets how self-loops are recorded in the incident index
func WithLoopPolicy(p LoopPolicy) Option {
	return func(g *Graph) {
		g.loops = p
	}
}

// WithHitShape sets the region FindAt tests against
func WithHitShape(s geometry.HitShape) Option {
	return func(g *Graph) {
		g.shape = s
	}
}

// Graph owns the vertex and edge sets.
type Graph struct {
	vertices   []*Vertex // insertion order
	vertexByID map[VertexID]*Vertex
	edges      []*Edge // insertion order
	edgeByID   map[EdgeID]*Edge

	lastVertex VertexID
	lastEdge   EdgeID

	loops LoopPolicy
	shape geometry.HitShape
}

// New creates an empty graph
func New(opts ...Option) *Graph {
	g := &Graph{
		vertexByID: make(map[VertexID]*Vertex),
		edgeByID:   make(map[EdgeID]*Edge),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LoopPolicy returns the policy the graph was created with
func (g *Graph) LoopPolicy() LoopPolicy {
	return g.loops
}

// HitShape returns the region used by FindAt
func (g *Graph) HitShape() geometry.HitShape {
	return g.shape
}

// SetHitShape changes the region used by FindAt
func (g *Graph) SetHitShape(s geometry.HitShape) {
	g.shape = s
}

// VertexCount returns the number of live vertices
func (g *Graph) VertexCount() int {
	return len(g.vertices)
}

// EdgeCount returns the number of live edges
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// HasVertex reports whether id is a live vertex handle
func (g *Graph) HasVertex(id VertexID) bool {
	_, ok := g.vertexByID[id]
	return ok
}

// HasEdge reports whether id is a live edge handle
func (g *Graph) HasEdge(id EdgeID) bool {
	_, ok := g.edgeByID[id]
	return ok
}

// Vertex returns a copy of the vertex with the given handle
func (g *Graph) Vertex(id VertexID) (Vertex, bool) {
	v, ok := g.vertexByID[id]
	if !ok {
		return Vertex{}, false
	}
	return *v, true
}

// Edge returns a copy of the edge with the given handle
func (g *Graph) Edge(id EdgeID) (Edge, bool) {
	e, ok := g.edgeByID[id]
	if !ok {
		return Edge{}, false
	}
	return *e, true
}

// Vertices returns copies of all vertices in insertion order
func (g *Graph) Vertices() []Vertex {
	out := make([]Vertex, 0, len(g.vertices))
	for _, v := range g.vertices {
		out = append(out, *v)
	}
	return out
}

// VertexIDs returns all vertex handles in insertion order
func (g *Graph) VertexIDs() []VertexID {
	ids := make([]VertexID, 0, len(g.vertices))
	for _, v := range g.vertices {
		ids = append(ids, v.ID)
	}
	return ids
}

// Edges returns copies of all edges in insertion order
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, *e)
	}
	return out
}

// Incident returns the vertex's incident-edge index in insertion order.
// Under LoopTwice a self-loop appears twice.
func (g *Graph) Incident(id VertexID) []EdgeID {
	v, ok := g.vertexByID[id]
	if !ok {
		return nil
	}
	out := make([]EdgeID, len(v.edges))
	copy(out, v.edges)
	return out
}

// Degree returns the size of the vertex's incident-edge index
func (g *Graph) Degree(id VertexID) int {
	v, ok := g.vertexByID[id]
	if !ok {
		return 0
	}
	return len(v.edges)
}

// Neighbors returns, for every entry of the incident index, the endpoint that
// is not id. Self-loops yield id itself and parallel edges yield repeats.
func (g *Graph) Neighbors(id VertexID) []VertexID {
	v, ok := g.vertexByID[id]
	if !ok {
		return nil
	}
	adj := make([]VertexID, 0, len(v.edges))
	for _, eid := range v.edges {
		e, ok := g.edgeByID[eid]
		if !ok {
			continue
		}
		other := e.Other(id)
		if _, live := g.vertexByID[other]; !live {
			continue
		}
		adj = append(adj, other)
	}
	return adj
}
