package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/ritzau/graphsketch/pkg/model"
)

func TestPrintReport(t *testing.T) {
	color.NoColor = true

	snap := model.NewSnapshot()
	snap.Mode = model.ModeCreate
	snap.Status = model.Status{Vertices: 3, Edges: 2, Components: 2}
	snap.Vertices = []model.Vertex{
		{ID: 1, X: 10, Y: 10, Radius: 10, Degree: 3, Selected: true},
		{ID: 2, X: 100, Y: 10, Radius: 10, Degree: 1},
		{ID: 3, X: 200, Y: 10, Radius: 10},
	}
	snap.Edges = []model.Edge{
		{ID: 1, Number: 1, From: 1, To: 2, Parallel: 1},
		{ID: 2, Number: 2, From: 1, To: 1, Loop: true, Parallel: 1},
	}

	var buf bytes.Buffer
	PrintReport(&buf, "test", snap)
	out := buf.String()

	for _, want := range []string{
		"graphsketch - test",
		"M = 3, N = 2, K = 2",
		"#1 at (10, 10) r=10 degree=3 [selected]",
		"#3 at (200, 10) r=10 degree=0 [isolated]",
		"e1: #1 - #2\n",
		"e2: #1 - #1 [loop]",
		"Graph has 2 components",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
}

func TestPrintReportEmpty(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	PrintReport(&buf, "empty", model.NewSnapshot())
	out := buf.String()

	if !strings.Contains(out, "M = 0, N = 0, K = 0") {
		t.Errorf("Expected empty status line:\n%s", out)
	}
	if strings.Contains(out, "VERTICES") || strings.Contains(out, "EDGES") {
		t.Errorf("Empty graph should not list sections:\n%s", out)
	}
	if !strings.Contains(out, "Graph is connected") {
		t.Errorf("Empty graph counts as connected:\n%s", out)
	}
}
