// Package geom provides the small amount of 2D geometry needed to read a
// building footprint: points, polygons, edge widths and corner convexity.
package geom

import (
	"math"

	"github.com/matzehuels/facadeplan/pkg/errors"
)

// Vec2 is a point or direction in the footprint plane.
type Vec2 struct {
	X, Y float64
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// Polygon is an ordered, implicitly closed loop of points.
type Polygon []Vec2

// Edge describes one wall face of a footprint.
//
// The face runs from its left corner (vertex i+1) to its right corner
// (vertex i) when viewed from outside the building.
type Edge struct {
	Index       int
	Left, Right Vec2
	Width       float64
	LeftConvex  bool
	RightConvex bool
}

// Looped returns the point at index i, wrapping in both directions.
func (p Polygon) Looped(i int) Vec2 {
	n := len(p)
	return p[((i%n)+n)%n]
}

// SignedArea returns the shoelace area; positive for counter-clockwise loops.
func (p Polygon) SignedArea() float64 {
	var sum float64
	for i := range p {
		a, b := p[i], p.Looped(i+1)
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Validate rejects polygons that cannot describe a footprint.
func (p Polygon) Validate() error {
	if len(p) < 3 {
		return errors.New(errors.ErrCodeInvalidFootprint, "footprint needs at least 3 points (got %d)", len(p))
	}
	for i, v := range p {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return errors.New(errors.ErrCodeInvalidFootprint, "point %d is not finite", i)
		}
	}
	if math.Abs(p.SignedArea()) < 1e-9 {
		return errors.New(errors.ErrCodeInvalidFootprint, "footprint has zero area")
	}
	return nil
}

// Edge returns wall face i together with the convexity of its two corners.
func (p Polygon) Edge(i int) Edge {
	b := p[i]
	bPrev := p.Looped(i - 1)
	a := p.Looped(i + 1)
	aNext := p.Looped(i + 2)

	winding := 1.0
	if p.SignedArea() < 0 {
		winding = -1
	}
	return Edge{
		Index:       i,
		Left:        a,
		Right:       b,
		Width:       b.Sub(a).Len(),
		LeftConvex:  isConvex(b, a, aNext, winding),
		RightConvex: isConvex(bPrev, b, a, winding),
	}
}

// isConvex reports whether the corner at cur, walking prev -> cur -> next,
// turns in the polygon's winding direction. Straight corners count as convex.
func isConvex(prev, cur, next Vec2, winding float64) bool {
	turn := cur.Sub(prev).Cross(next.Sub(cur))
	return turn*winding >= 0
}
