package model

// Snapshot is the read-only view of the editor handed to renderers.
// It serves as the common data model for the HTTP API, the SSE stream and the
// console report.
type Snapshot struct {
	Vertices  []Vertex `json:"vertices"`
	Edges     []Edge   `json:"edges"`
	Status    Status   `json:"status"`
	Mode      Mode     `json:"mode"`
	Selection int64    `json:"selection,omitempty"` // Selected vertex ID, 0 when nothing is selected
	Settings  Settings `json:"settings"`
}

// Settings are the editor's live hit-test and placement settings
type Settings struct {
	Radius    float64 `json:"radius"`    // Radius given to placed vertices
	Tolerance float64 `json:"tolerance"` // Extra hit-test margin
	HitShape  string  `json:"hitShape"`  // "box" or "circle"
}

// Vertex is a vertex as drawn
type Vertex struct {
	ID       int64   `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Radius   float64 `json:"radius"`
	Selected bool    `json:"selected"`
	Degree   int     `json:"degree"` // Size of the incident-edge index
}

// Edge is an edge as drawn
type Edge struct {
	ID       int64   `json:"id"`
	Number   int     `json:"number"` // User-visible edge number
	From     int64   `json:"from"`
	To       int64   `json:"to"`
	MidX     float64 `json:"midX"`
	MidY     float64 `json:"midY"`
	Loop     bool    `json:"loop"`
	Parallel int     `json:"parallel"` // Edges sharing this edge's endpoint pair, itself included
}

// NewSnapshot creates an empty snapshot in create mode
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Vertices: make([]Vertex, 0),
		Edges:    make([]Edge, 0),
		Mode:     ModeCreate,
	}
}

// FindVertex returns the vertex with the given ID
func (s *Snapshot) FindVertex(id int64) (*Vertex, bool) {
	for i := range s.Vertices {
		if s.Vertices[i].ID == id {
			return &s.Vertices[i], true
		}
	}
	return nil, false
}
