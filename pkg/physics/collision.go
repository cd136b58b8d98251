// pkg/physics/collision.go
package physics

// Circle is the bounding shape used for broadphase contact detection.
type Circle struct {
	Center Vector2D
	Radius float64
}

// Overlaps reports whether two circles touch or interpenetrate.
func (c Circle) Overlaps(other Circle) bool {
	r := c.Radius + other.Radius
	return c.Center.Sub(other.Center).LengthSquared() <= r*r
}

// Rect is an axis-aligned rectangle described by its center and size.
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// RectAround returns the smallest rect containing the circle.
func RectAround(c Circle) Rect {
	return Rect{Center: c.Center, Width: c.Radius * 2, Height: c.Radius * 2}
}

// Contains reports whether point lies inside r. The low edges are inclusive
// and the high edges exclusive.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// Intersects reports whether r and other share any area.
func (r Rect) Intersects(other Rect) bool {
	return !(other.Center.X-other.Width/2 > r.Center.X+r.Width/2 ||
		other.Center.X+other.Width/2 < r.Center.X-r.Width/2 ||
		other.Center.Y-other.Height/2 > r.Center.Y+r.Height/2 ||
		other.Center.Y+other.Height/2 < r.Center.Y-r.Height/2)
}

// QuadTree indexes body handles by position for area queries.
type QuadTree struct {
	Boundary  Rect
	Capacity  int
	Points    []Vector2D
	Handles   []Handle
	Divided   bool
	NorthWest *QuadTree
	NorthEast *QuadTree
	SouthWest *QuadTree
	SouthEast *QuadTree
}

// NewQuadTree creates an empty tree covering boundary. Nodes split once they
// hold more than capacity handles.
func NewQuadTree(boundary Rect, capacity int) *QuadTree {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2D, 0, capacity),
		Handles:  make([]Handle, 0, capacity),
	}
}

// Insert adds a handle at point. It returns false when point lies outside
// the tree's boundary.
func (qt *QuadTree) Insert(point Vector2D, h Handle) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if len(qt.Points) < qt.Capacity && !qt.Divided {
		qt.Points = append(qt.Points, point)
		qt.Handles = append(qt.Handles, h)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	if qt.NorthWest.Insert(point, h) ||
		qt.NorthEast.Insert(point, h) ||
		qt.SouthWest.Insert(point, h) ||
		qt.SouthEast.Insert(point, h) {
		return true
	}

	// Degenerate boundaries (zero size after many splits) keep the point here.
	qt.Points = append(qt.Points, point)
	qt.Handles = append(qt.Handles, h)
	return true
}

// Subdivide splits the node into four quadrants.
func (qt *QuadTree) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	qt.NorthWest = NewQuadTree(Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity)
	qt.NorthEast = NewQuadTree(Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity)
	qt.SouthWest = NewQuadTree(Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity)
	qt.SouthEast = NewQuadTree(Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity)
	qt.Divided = true
}

// Query returns the handles whose points lie inside area.
func (qt *QuadTree) Query(area Rect) []Handle {
	return qt.query(area, nil)
}

func (qt *QuadTree) query(area Rect, found []Handle) []Handle {
	if !qt.Boundary.Intersects(area) {
		return found
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			found = append(found, qt.Handles[i])
		}
	}

	if !qt.Divided {
		return found
	}

	found = qt.NorthWest.query(area, found)
	found = qt.NorthEast.query(area, found)
	found = qt.SouthWest.query(area, found)
	return qt.SouthEast.query(area, found)
}

// Clear empties the tree, keeping its boundary.
func (qt *QuadTree) Clear() {
	qt.Points = qt.Points[:0]
	qt.Handles = qt.Handles[:0]
	qt.Divided = false
	qt.NorthWest = nil
	qt.NorthEast = nil
	qt.SouthWest = nil
	qt.SouthEast = nil
}

// Len returns the number of handles stored in the tree.
func (qt *QuadTree) Len() int {
	n := len(qt.Handles)
	if qt.Divided {
		n += qt.NorthWest.Len() + qt.NorthEast.Len() + qt.SouthWest.Len() + qt.SouthEast.Len()
	}
	return n
}
