package graph

import (
	"testing"

	"github.com/ritzau/graphsketch/pkg/geometry"
)

func TestFindAtBox(t *testing.T) {
	g := New()
	a := g.AddVertex(vec(0, 0), 10)

	id, ok := g.FindAt(vec(5, 5), 0)
	if !ok || id != a {
		t.Errorf("FindAt(5,5) = %d, %v; want %d, true", id, ok, a)
	}
	if _, ok := g.FindAt(vec(15, 15), 0); ok {
		t.Error("FindAt(15,15) should miss")
	}
	// Square corners hit under the box test
	if _, ok := g.FindAt(vec(9, -9), 0); !ok {
		t.Error("FindAt(9,-9) should hit the box corner")
	}
}

func TestFindAtCircle(t *testing.T) {
	g := New(WithHitShape(geometry.HitCircle))
	g.AddVertex(vec(0, 0), 10)

	if _, ok := g.FindAt(vec(5, 5), 0); !ok {
		t.Error("FindAt(5,5) should hit the circle")
	}
	if _, ok := g.FindAt(vec(9, 9), 0); ok {
		t.Error("FindAt(9,9) should miss the circle")
	}

	g.SetHitShape(geometry.HitBox)
	if _, ok := g.FindAt(vec(9, 9), 0); !ok {
		t.Error("FindAt(9,9) should hit after switching to box")
	}
}

func TestFindAtTolerance(t *testing.T) {
	g := New()
	g.AddVertex(vec(0, 0), 10)

	if _, ok := g.FindAt(vec(12, 0), 0); ok {
		t.Error("FindAt(12,0) should miss without tolerance")
	}
	if _, ok := g.FindAt(vec(12, 0), 5); !ok {
		t.Error("FindAt(12,0) should hit with tolerance 5")
	}
}

func TestFindAtInsertionOrder(t *testing.T) {
	g := New()
	first := g.AddVertex(vec(0, 0), 10)
	g.AddVertex(vec(4, 4), 10)

	id, ok := g.FindAt(vec(2, 2), 0)
	if !ok || id != first {
		t.Errorf("Expected first inserted vertex %d, got %d", first, id)
	}

	g.RemoveVertex(first)
	id, ok = g.FindAt(vec(2, 2), 0)
	if !ok || id == first {
		t.Errorf("Expected the remaining overlapping vertex, got %d, %v", id, ok)
	}
}

func TestIncidenceMatrix(t *testing.T) {
	g := New()
	if g.IncidenceMatrix() != nil {
		t.Error("Empty graph should have nil incidence matrix")
	}

	a := g.AddVertex(vec(0, 0), 10)
	b := g.AddVertex(vec(100, 0), 10)
	c := g.AddVertex(vec(200, 0), 10)
	if g.IncidenceMatrix() != nil {
		t.Error("Graph without edges should have nil incidence matrix")
	}

	g.AddEdge(a, b)
	g.AddEdge(b, c)
	g.AddEdge(c, c)

	m := g.IncidenceMatrix()
	rows, cols := m.Dims()
	if rows != 3 || cols != 3 {
		t.Fatalf("Expected 3x3 matrix, got %dx%d", rows, cols)
	}

	want := [][]float64{
		{1, 0, 0},
		{1, 1, 0},
		{0, 1, 1},
	}
	for i := range want {
		for j := range want[i] {
			if m.At(i, j) != want[i][j] {
				t.Errorf("m[%d][%d] = %v, want %v", i, j, m.At(i, j), want[i][j])
			}
		}
	}
}
