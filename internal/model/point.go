package model

import (
	"fmt"
	"math"
	"sort"
)

// Point is a node on the grid. X grows to the right, Y grows downward.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// P is a convenience constructor for Point
func P(x, y int) Point {
	return Point{X: x, Y: y}
}

// String returns the point as "(x, y)"
func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Add returns the point offset by (dx, dy)
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// DirectionTo returns the direction from p to other in whole degrees.
// The y axis is inverted so that "up" on the grid is positive: right is 0,
// up is 90, left is 180 and down is -90. Callers must not pass p itself.
func (p Point) DirectionTo(other Point) Direction {
	// Negating a zero dy would yield -0, and Atan2(-0, -1) is -π
	dx := float64(other.X - p.X)
	up := float64(p.Y - other.Y)
	return Direction(math.Round(math.Atan2(up, dx) * 180 / math.Pi))
}

// Octilinear reports whether b lies on one of the eight compass rays from a.
// Coincident points are not octilinear.
func Octilinear(a, b Point) bool {
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
	if dx == 0 && dy == 0 {
		return false
	}
	return dx == 0 || dy == 0 || dx == dy
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

// PointSet is an unordered set of points
type PointSet map[Point]struct{}

// NewPointSet builds a set from the given points
func NewPointSet(points ...Point) PointSet {
	s := make(PointSet, len(points))
	for _, p := range points {
		s[p] = struct{}{}
	}
	return s
}

// Add inserts p into the set
func (s PointSet) Add(p Point) {
	s[p] = struct{}{}
}

// Contains reports whether p is in the set
func (s PointSet) Contains(p Point) bool {
	_, ok := s[p]
	return ok
}

// Len returns the number of points in the set
func (s PointSet) Len() int {
	return len(s)
}

// Sorted returns the points in row-major order (by Y, then X)
func (s PointSet) Sorted() []Point {
	points := make([]Point, 0, len(s))
	for p := range s {
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
	return points
}
