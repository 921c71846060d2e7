package model

import (
	"encoding/json"
	"fmt"
)

// Polyline is an ordered run of unit-adjacent nodes.
// Both Line and Path satisfy it.
type Polyline interface {
	Nodes() []Point
}

// Line is an octilinear segment between two distinct nodes, together with
// every unit-step node between them
type Line struct {
	nodes []Point
}

// NewLine interpolates the nodes from start to end inclusive.
// It fails if the points coincide or are not octilinear to each other.
func NewLine(start, end Point) (Line, error) {
	if !Octilinear(start, end) {
		return Line{}, &InvalidLineError{Start: start, End: end}
	}

	dx, dy := end.X-start.X, end.Y-start.Y
	stepX, stepY := sign(dx), sign(dy)
	steps := max(abs(dx), abs(dy))

	nodes := make([]Point, steps+1)
	for i := 0; i <= steps; i++ {
		nodes[i] = start.Add(i*stepX, i*stepY)
	}
	return Line{nodes: nodes}, nil
}

// Start returns the first node of the line
func (l Line) Start() Point {
	return l.nodes[0]
}

// End returns the last node of the line
func (l Line) End() Point {
	return l.nodes[len(l.nodes)-1]
}

// Nodes returns a copy of the interpolated nodes, start first
func (l Line) Nodes() []Point {
	nodes := make([]Point, len(l.nodes))
	copy(nodes, l.nodes)
	return nodes
}

// Len returns the number of nodes on the line
func (l Line) Len() int {
	return len(l.nodes)
}

// Direction returns the bearing from start to end
func (l Line) Direction() Direction {
	return l.Start().DirectionTo(l.End())
}

// Segments returns the unit lines between consecutive nodes
func (l Line) Segments() []Line {
	return segments(l.nodes)
}

// IsZero returns true for the zero Line, which has no nodes
func (l Line) IsZero() bool {
	return len(l.nodes) == 0
}

// String returns the line as "[start, end]"
func (l Line) String() string {
	if l.IsZero() {
		return "[]"
	}
	return fmt.Sprintf("[%s, %s]", l.Start(), l.End())
}

type lineJSON struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// MarshalJSON encodes the endpoints only
func (l Line) MarshalJSON() ([]byte, error) {
	if l.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(lineJSON{Start: l.Start(), End: l.End()})
}

// UnmarshalJSON rebuilds the line from its endpoints
func (l *Line) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = Line{}
		return nil
	}
	var lj lineJSON
	if err := json.Unmarshal(data, &lj); err != nil {
		return err
	}
	built, err := NewLine(lj.Start, lj.End)
	if err != nil {
		return err
	}
	*l = built
	return nil
}

// segments splits a node run into unit lines
func segments(nodes []Point) []Line {
	if len(nodes) < 2 {
		return nil
	}
	result := make([]Line, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		result = append(result, Line{nodes: []Point{nodes[i-1], nodes[i]}})
	}
	return result
}
