package model

// Path is the single connected polyline both players build together
type Path struct {
	nodes []Point
}

// NewPath creates a path over the given nodes. The nodes are copied.
func NewPath(nodes ...Point) *Path {
	p := &Path{nodes: make([]Point, len(nodes))}
	copy(p.nodes, nodes)
	return p
}

// Nodes returns a copy of the path's nodes in order
func (p *Path) Nodes() []Point {
	nodes := make([]Point, len(p.nodes))
	copy(nodes, p.nodes)
	return nodes
}

// Len returns the number of nodes on the path
func (p *Path) Len() int {
	return len(p.nodes)
}

// IsEmpty returns true if no line has been added yet
func (p *Path) IsEmpty() bool {
	return len(p.nodes) == 0
}

// Start returns the first node, if any
func (p *Path) Start() (Point, bool) {
	if p.IsEmpty() {
		return Point{}, false
	}
	return p.nodes[0], true
}

// End returns the last node, if any
func (p *Path) End() (Point, bool) {
	if p.IsEmpty() {
		return Point{}, false
	}
	return p.nodes[len(p.nodes)-1], true
}

// Extrema returns the set of the path's two endpoints (empty for an empty path)
func (p *Path) Extrema() PointSet {
	s := make(PointSet, 2)
	if start, ok := p.Start(); ok {
		s.Add(start)
	}
	if end, ok := p.End(); ok {
		s.Add(end)
	}
	return s
}

// Segments returns the unit lines between consecutive nodes
func (p *Path) Segments() []Line {
	return segments(p.nodes)
}

// Extend joins other onto the path at the node other starts on.
//
// If other starts at the path's end, its remaining nodes are appended. If it
// starts at the path's start, it is reversed and prepended, so that other's
// last node becomes the new start. Any other join, including an empty
// polyline, fails and leaves the path unchanged.
func (p *Path) Extend(other Polyline) error {
	incoming := other.Nodes()
	if len(incoming) == 0 {
		return &PathDiscontinuityError{Segment: incoming, Path: p.Nodes()}
	}
	if p.IsEmpty() {
		p.nodes = incoming
		return nil
	}

	start, _ := p.Start()
	end, _ := p.End()

	switch incoming[0] {
	case end:
		p.nodes = append(p.nodes, incoming[1:]...)
	case start:
		reversed := make([]Point, 0, len(incoming)-1+len(p.nodes))
		for i := len(incoming) - 1; i > 0; i-- {
			reversed = append(reversed, incoming[i])
		}
		p.nodes = append(reversed, p.nodes...)
	default:
		return &PathDiscontinuityError{Segment: incoming, Path: p.Nodes()}
	}
	return nil
}

// Intersects reports whether other touches or crosses the path anywhere
// other than at the single node it legitimately attaches by.
func (p *Path) Intersects(other Polyline) bool {
	if p.IsEmpty() {
		return false
	}
	incoming := other.Nodes()
	if len(incoming) == 0 {
		return false
	}

	shared := NewPointSet(p.nodes...)
	if p.Extrema().Contains(incoming[0]) {
		delete(shared, incoming[0])
	}
	for _, n := range incoming {
		if shared.Contains(n) {
			return true
		}
	}

	candidate := segments(incoming)
	for _, a := range p.Segments() {
		for _, b := range candidate {
			if crosses(a, b) {
				return true
			}
		}
	}
	return false
}

// crosses reports whether two unit segments pass through each other without
// sharing a node. On the integer lattice this only happens when a and b are
// the two diagonals of the same unit cell.
func crosses(a, b Line) bool {
	if !a.Direction().IsDiagonal() || !b.Direction().IsDiagonal() {
		return false
	}
	if cellOf(a) != cellOf(b) {
		return false
	}
	// Same cell, so either the same diagonal (sharing both nodes) or the other one.
	as, ae := a.Start(), a.End()
	bs, be := b.Start(), b.End()
	return as != bs && as != be && ae != bs && ae != be
}

// cellOf returns the top-left corner of the unit cell a unit diagonal spans
func cellOf(l Line) Point {
	s, e := l.Start(), l.End()
	return Point{X: min(s.X, e.X), Y: min(s.Y, e.Y)}
}
