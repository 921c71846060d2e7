package model

import "sync"

// Grid bounds
const (
	DefaultGridSize = 4
	MinGridSize     = 2
	MaxGridSize     = 32
)

// Grid is the immutable square lattice of nodes a game is played on
type Grid struct {
	size  int
	nodes PointSet
}

// NewGrid creates a size x size grid starting at (0, 0)
func NewGrid(size int) *Grid {
	if size < 0 {
		size = 0
	}
	nodes := make(PointSet, size*size)
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			nodes.Add(Point{X: x, Y: y})
		}
	}
	return &Grid{size: size, nodes: nodes}
}

var (
	gridCacheMu sync.Mutex
	gridCache   = make(map[int]*Grid)
)

// GridOfSize returns a shared grid of the given size.
// Grids are never mutated, so one instance serves every game of that size.
func GridOfSize(size int) *Grid {
	gridCacheMu.Lock()
	defer gridCacheMu.Unlock()
	if g, ok := gridCache[size]; ok {
		return g
	}
	g := NewGrid(size)
	gridCache[size] = g
	return g
}

// Size returns the grid dimension
func (g *Grid) Size() int {
	return g.size
}

// Contains returns true if p is a node of the grid
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

// Nodes returns a copy of the grid's node set
func (g *Grid) Nodes() PointSet {
	nodes := make(PointSet, len(g.nodes))
	for p := range g.nodes {
		nodes.Add(p)
	}
	return nodes
}

// NodesOctilinearTo returns every grid node other than p that lies on one of
// the eight compass rays from p
func (g *Grid) NodesOctilinearTo(p Point) PointSet {
	result := make(PointSet)
	for dx := -g.size; dx <= g.size; dx++ {
		for dy := -g.size; dy <= g.size; dy++ {
			n := p.Add(dx, dy)
			if !g.Contains(n) || !Octilinear(p, n) {
				continue
			}
			result.Add(n)
		}
	}
	return result
}
