// pkg/physics/collision_test.go
package physics

import (
	"testing"
)

func TestCircle_Overlaps(t *testing.T) {
	tests := []struct {
		name     string
		circle1  Circle
		circle2  Circle
		expected bool
	}{
		{"touching", Circle{Center: Vector2D{}, Radius: 5}, Circle{Center: Vector2D{X: 10}, Radius: 5}, true},
		{"overlapping", Circle{Center: Vector2D{}, Radius: 5}, Circle{Center: Vector2D{X: 5}, Radius: 5}, true},
		{"apart", Circle{Center: Vector2D{}, Radius: 5}, Circle{Center: Vector2D{X: 15}, Radius: 5}, false},
		{"same_center", Circle{Center: Vector2D{}, Radius: 3}, Circle{Center: Vector2D{}, Radius: 2}, true},
		{"diagonal", Circle{Center: Vector2D{}, Radius: 5}, Circle{Center: Vector2D{X: 3, Y: 4}, Radius: 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.circle1.Overlaps(tt.circle2); got != tt.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestRect_ContainsAndIntersects(t *testing.T) {
	r := Rect{Center: Vector2D{}, Width: 10, Height: 10}

	if !r.Contains(Vector2D{X: -5, Y: -5}) {
		t.Error("low corner should be contained")
	}
	if r.Contains(Vector2D{X: 5, Y: 0}) {
		t.Error("high edge should be excluded")
	}
	if !r.Intersects(Rect{Center: Vector2D{X: 9}, Width: 10, Height: 2}) {
		t.Error("overlapping rects should intersect")
	}
	if r.Intersects(Rect{Center: Vector2D{X: 20}, Width: 2, Height: 2}) {
		t.Error("distant rects should not intersect")
	}
}

func TestQuadTree_InsertQuery(t *testing.T) {
	qt := NewQuadTree(Rect{Center: Vector2D{}, Width: 1000, Height: 1000}, 2)

	points := map[Handle]Vector2D{
		1: {X: -400, Y: -400},
		2: {X: -350, Y: -380},
		3: {X: 100, Y: 100},
		4: {X: 120, Y: 90},
		5: {X: 400, Y: 400},
	}
	for h, p := range points {
		if !qt.Insert(p, h) {
			t.Fatalf("Insert(%v) failed", p)
		}
	}
	if qt.Insert(Vector2D{X: 600}, 99) {
		t.Error("Insert outside boundary should fail")
	}
	if !qt.Divided {
		t.Error("tree should have subdivided past capacity")
	}
	if qt.Len() != len(points) {
		t.Errorf("Len() = %d, expected %d", qt.Len(), len(points))
	}

	found := qt.Query(Rect{Center: Vector2D{X: 110, Y: 95}, Width: 50, Height: 50})
	got := map[Handle]bool{}
	for _, h := range found {
		got[h] = true
	}
	if len(found) != 2 || !got[3] || !got[4] {
		t.Errorf("Query() = %v, expected handles 3 and 4", found)
	}

	qt.Clear()
	if qt.Len() != 0 || qt.Divided {
		t.Error("Clear() should empty the tree")
	}
}
