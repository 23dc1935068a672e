// Package geometry holds the small amount of planar math the editor needs:
// edge midpoints and the containment tests used for vertex hit testing.
package geometry

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// HitShape selects the region around a vertex that counts as a hit
type HitShape int

const (
	// HitBox is the axis-aligned square of half-width radius around the center.
	// Vertices are drawn as circles, so the square's corners also register hits.
	HitBox HitShape = iota
	// HitCircle is the disc of the vertex radius.
	HitCircle
)

func (s HitShape) String() string {
	switch s {
	case HitBox:
		return "box"
	case HitCircle:
		return "circle"
	default:
		return fmt.Sprintf("HitShape(%d)", int(s))
	}
}

// ParseHitShape maps a config value ("box" or "circle") to a HitShape
func ParseHitShape(s string) (HitShape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "box", "square":
		return HitBox, nil
	case "circle", "disc":
		return HitCircle, nil
	default:
		return HitBox, fmt.Errorf("unknown hit shape %q", s)
	}
}

// Contains reports whether p lies strictly inside the shape centered at center
func (s HitShape) Contains(p, center r2.Vec, radius float64) bool {
	if s == HitCircle {
		return InCircle(p, center, radius)
	}
	return InBox(p, center, radius)
}

// Midpoint returns the arithmetic mean of a and b
func Midpoint(a, b r2.Vec) r2.Vec {
	return r2.Scale(0.5, r2.Add(a, b))
}

// InBox reports whether p is inside the open square
// (cx-half, cx+half) x (cy-half, cy+half).
func InBox(p, center r2.Vec, half float64) bool {
	return p.X > center.X-half &&
		p.Y > center.Y-half &&
		p.X < center.X+half &&
		p.Y < center.Y+half
}

// InCircle reports whether p is strictly closer than r to center
func InCircle(p, center r2.Vec, r float64) bool {
	return r2.Norm2(r2.Sub(p, center)) < r*r
}
