package physics

import (
	"math"
	"sort"
)

// Polygon is a closed outline in body-local coordinates.
type Polygon []Vector2D

// PolygonFrom builds a polygon from (x, y) pairs.
func PolygonFrom(points [][2]float64) Polygon {
	poly := make(Polygon, len(points))
	for i, p := range points {
		poly[i] = Vector2D{X: p[0], Y: p[1]}
	}
	return poly
}

// Scaled returns a copy of p with every vertex multiplied by factor.
func (p Polygon) Scaled(factor float64) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = v.Scale(factor)
	}
	return out
}

// Area returns the unsigned area enclosed by p (shoelace formula).
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	var sum float64
	for i := range p {
		a := p[i]
		b := p[(i+1)%len(p)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}

// BoundingRadius returns the distance from the local origin to the farthest
// vertex.
func (p Polygon) BoundingRadius() float64 {
	var r float64
	for _, v := range p {
		r = math.Max(r, v.Length())
	}
	return r
}

// ConvexHull returns the convex hull of p in counter-clockwise order using
// the monotone chain algorithm. Collinear points are dropped.
func (p Polygon) ConvexHull() Polygon {
	if len(p) < 3 {
		out := make(Polygon, len(p))
		copy(out, p)
		return out
	}

	pts := make(Polygon, len(p))
	copy(pts, p)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	cross := func(o, a, b Vector2D) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	hull := make(Polygon, 0, 2*len(pts))
	for _, pt := range pts {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], pt) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, pt)
	}
	lower := len(hull) + 1
	for i := len(pts) - 2; i >= 0; i-- {
		pt := pts[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], pt) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, pt)
	}
	return hull[:len(hull)-1]
}
