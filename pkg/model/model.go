package model

import (
	"fmt"
	"strings"
)

// Mode is the editor's interaction mode
type Mode string

const (
	ModeCreate Mode = "create" // Clicks place vertices and connect them
	ModeDelete Mode = "delete" // Clicks remove the vertex or edge under the pointer
)

// ParseMode maps a user-supplied string to a Mode
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeCreate:
		return ModeCreate, nil
	case ModeDelete:
		return ModeDelete, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Status is the summary shown next to the drawing surface
type Status struct {
	Vertices   int `json:"vertices"`   // M
	Edges      int `json:"edges"`      // N
	Components int `json:"components"` // K
}

// String renders the status line, e.g. "M = 3, N = 2, K = 2"
func (s Status) String() string {
	return fmt.Sprintf("M = %d, N = %d, K = %d", s.Vertices, s.Edges, s.Components)
}
