package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/ritzau/graphsketch/pkg/editor"
	"github.com/ritzau/graphsketch/pkg/graph"
	"github.com/ritzau/graphsketch/pkg/logging"
	"github.com/ritzau/graphsketch/pkg/model"
	"gonum.org/v1/gonum/spatial/r2"
)

var errBadRequest = errors.New("bad request")

// StatusResponse is the status counts plus the rendered status line
type StatusResponse struct {
	model.Status
	Line string `json:"line"`
}

// IncidenceResponse is the vertex-by-edge incidence matrix. Rows follow
// Vertices and columns follow Edges.
type IncidenceResponse struct {
	Vertices []int64     `json:"vertices"`
	Edges    []int64     `json:"edges"`
	Rows     [][]float64 `json:"rows"`
}

// VertexRequest places a vertex; a missing or zero radius uses the default
type VertexRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius,omitempty"`
}

// EdgeRequest connects two vertices
type EdgeRequest struct {
	From int64 `json:"from"`
	To   int64 `json:"to"`
}

// PointerRequest is one pointer event from the renderer
type PointerRequest struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Edge    int64   `json:"edge,omitempty"`
	Pressed bool    `json:"pressed,omitempty"`
}

// ModeRequest switches the editor mode
type ModeRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.Snapshot())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := s.editor.Status()
	s.mu.Unlock()

	writeJSON(w, r, http.StatusOK, StatusResponse{Status: status, Line: status.String()})
}

func (s *Server) handleIncidence(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	g := s.editor.Graph()
	resp := IncidenceResponse{
		Vertices: []int64{},
		Edges:    []int64{},
		Rows:     [][]float64{},
	}
	for _, id := range g.VertexIDs() {
		resp.Vertices = append(resp.Vertices, int64(id))
	}
	for _, e := range g.Edges() {
		resp.Edges = append(resp.Edges, int64(e.ID))
	}
	m := g.IncidenceMatrix()
	s.mu.Unlock()

	if m != nil {
		rows, _ := m.Dims()
		for i := 0; i < rows; i++ {
			resp.Rows = append(resp.Rows, m.RawRowView(i))
		}
	} else {
		// Keep the shape: one empty row per vertex
		for range resp.Vertices {
			resp.Rows = append(resp.Rows, []float64{})
		}
	}

	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleAddVertex(w http.ResponseWriter, r *http.Request) {
	var req VertexRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if req.X < 0 || req.Y < 0 || req.Radius < 0 {
		writeError(w, r, http.StatusBadRequest, fmt.Errorf("%w: negative coordinate or radius", errBadRequest))
		return
	}

	s.mu.Lock()
	id := s.editor.PlaceVertex(r2.Vec{X: req.X, Y: req.Y}, req.Radius)
	s.mu.Unlock()

	writeJSON(w, r, http.StatusCreated, map[string]int64{"id": int64(id)})
}

func (s *Server) handleDeleteVertex(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	removed := s.editor.DeleteVertex(graph.VertexID(id))
	s.mu.Unlock()

	logging.DebugContext(r.Context(), "Delete vertex", "id", id, "removed", removed)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	var req EdgeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	id, ok := s.editor.Connect(graph.VertexID(req.From), graph.VertexID(req.To))
	var number int
	if ok {
		e, _ := s.editor.Graph().Edge(id)
		number = e.Number
	}
	s.mu.Unlock()

	if !ok {
		writeError(w, r, http.StatusNotFound, fmt.Errorf("%w: %d -> %d", graph.ErrInvalidReference, req.From, req.To))
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]int64{"id": int64(id), "number": int64(number)})
}

func (s *Server) handleDeleteEdge(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	removed := s.editor.DeleteEdge(graph.EdgeID(id))
	s.mu.Unlock()

	logging.DebugContext(r.Context(), "Delete edge", "id", id, "removed", removed)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleParallel(w http.ResponseWriter, r *http.Request) {
	u, err := queryInt(r, "u")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	v, err := queryInt(r, "v")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	count := s.editor.Graph().CountParallel(graph.VertexID(u), graph.VertexID(v))
	s.mu.Unlock()

	writeJSON(w, r, http.StatusOK, map[string]int{"count": count})
}

func (s *Server) handleHit(w http.ResponseWriter, r *http.Request) {
	x, err := queryFloat(r, "x")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	y, err := queryFloat(r, "y")
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	var (
		vertex *model.Vertex
		found  bool
	)
	if id, ok := s.editor.HitTest(r2.Vec{X: x, Y: y}); ok {
		vertex, found = s.editor.Snapshot().FindVertex(int64(id))
	}
	s.mu.Unlock()

	if !found {
		writeError(w, r, http.StatusNotFound, fmt.Errorf("no vertex at (%g, %g)", x, y))
		return
	}
	writeJSON(w, r, http.StatusOK, vertex)
}

func (s *Server) handleMode(w http.ResponseWriter, r *http.Request) {
	var req ModeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	s.editor.SetMode(mode)
	s.mu.Unlock()

	writeJSON(w, r, http.StatusOK, ModeRequest{Mode: string(mode)})
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	var req PointerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	p := editor.Pointer{
		Pos:     r2.Vec{X: req.X, Y: req.Y},
		Edge:    graph.EdgeID(req.Edge),
		Pressed: req.Pressed,
	}

	action := mux.Vars(r)["action"]
	logging.TraceContext(r.Context(), "Pointer event", "action", action, "x", req.X, "y", req.Y, "edge", req.Edge)

	s.mu.Lock()
	switch action {
	case "down":
		s.editor.Down(p)
	case "up":
		s.editor.Up(p)
	case "move":
		s.editor.Move(p)
	case "click":
		s.editor.Click(p)
	}
	snap := s.editor.Snapshot()
	s.mu.Unlock()

	writeJSON(w, r, http.StatusOK, snap)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", errBadRequest, raw)
	}
	return id, nil
}

func queryInt(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", errBadRequest, name, raw)
	}
	return v, nil
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", errBadRequest, name, raw)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.WarnContext(r.Context(), "Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logging.DebugContext(r.Context(), "Request error", "status", status, "error", err)
	writeJSON(w, r, status, map[string]string{"error": err.Error()})
}
