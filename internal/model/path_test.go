package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, start, end Point) Line {
	t.Helper()
	line, err := NewLine(start, end)
	require.NoError(t, err)
	return line
}

func TestPathEmpty(t *testing.T) {
	p := NewPath()

	assert.True(t, p.IsEmpty())
	assert.Equal(t, 0, p.Extrema().Len())
	_, ok := p.Start()
	assert.False(t, ok)
	assert.False(t, p.Intersects(mustLine(t, P(0, 0), P(1, 1))))
}

func TestPathExtend(t *testing.T) {
	p := NewPath()

	require.NoError(t, p.Extend(mustLine(t, P(0, 0), P(0, 2))))
	assert.Equal(t, []Point{P(0, 0), P(0, 1), P(0, 2)}, p.Nodes())

	// Joins at the end are appended
	require.NoError(t, p.Extend(mustLine(t, P(0, 2), P(2, 2))))
	assert.Equal(t, []Point{P(0, 0), P(0, 1), P(0, 2), P(1, 2), P(2, 2)}, p.Nodes())

	// Joins at the start are reversed and prepended
	require.NoError(t, p.Extend(mustLine(t, P(0, 0), P(2, 0))))
	assert.Equal(t, []Point{P(2, 0), P(1, 0), P(0, 0), P(0, 1), P(0, 2), P(1, 2), P(2, 2)}, p.Nodes())

	start, _ := p.Start()
	end, _ := p.End()
	assert.Equal(t, P(2, 0), start)
	assert.Equal(t, P(2, 2), end)
	assert.Equal(t, NewPointSet(P(2, 0), P(2, 2)), p.Extrema())

	for _, s := range p.Segments() {
		assert.Equal(t, 2, s.Len())
	}
}

func TestPathExtendDiscontinuity(t *testing.T) {
	p := NewPath(P(0, 0), P(0, 1), P(0, 2))
	before := p.Nodes()

	// Shares only the path's end by its own end, which is not a supported join
	err := p.Extend(mustLine(t, P(2, 2), P(0, 2)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPathDiscontinuity))

	var discErr *PathDiscontinuityError
	require.True(t, errors.As(err, &discErr))
	assert.Equal(t, before, discErr.Path)

	err = p.Extend(mustLine(t, P(3, 3), P(3, 1)))
	assert.ErrorIs(t, err, ErrPathDiscontinuity)

	assert.Equal(t, before, p.Nodes())
}

func TestPathExtendEmptyPolyline(t *testing.T) {
	p := NewPath(P(0, 0), P(0, 1))

	err := p.Extend(NewPath())
	assert.ErrorIs(t, err, ErrPathDiscontinuity)
	assert.Equal(t, []Point{P(0, 0), P(0, 1)}, p.Nodes())

	empty := NewPath()
	assert.ErrorIs(t, empty.Extend(NewPath()), ErrPathDiscontinuity)
	assert.True(t, empty.IsEmpty())
}

func TestPathIntersects(t *testing.T) {
	p := NewPath(P(0, 0), P(0, 1), P(0, 2))

	tests := []struct {
		name       string
		start, end Point
		want       bool
	}{
		{"attaches at end", P(0, 2), P(2, 2), false},
		{"attaches at start", P(0, 0), P(2, 0), false},
		{"starts mid path", P(0, 1), P(1, 1), true},
		{"ends on path", P(2, 0), P(0, 0), true},
		{"runs alongside path", P(1, 0), P(1, 2), false},
		{"closes a loop", P(0, 0), P(0, 2), true},
		{"ends mid path", P(1, 1), P(0, 1), true},
		{"disjoint", P(3, 0), P(3, 3), false},
		{"disjoint diagonal", P(2, 0), P(3, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Intersects(mustLine(t, tt.start, tt.end)))
		})
	}
}

func TestPathIntersectsDiagonalCrossing(t *testing.T) {
	p := NewPath(P(0, 0), P(1, 1))

	assert.True(t, p.Intersects(mustLine(t, P(1, 0), P(0, 1))))
	assert.True(t, p.Intersects(mustLine(t, P(0, 1), P(1, 0))))

	// Parallel diagonal in the neighbouring cell
	assert.False(t, p.Intersects(mustLine(t, P(1, 0), P(2, 1))))
	// Anti-diagonal in a different cell
	assert.False(t, p.Intersects(mustLine(t, P(2, 1), P(1, 2))))
}

func TestPathIntersectsLongDiagonalCrossing(t *testing.T) {
	p := NewPath(P(0, 0), P(1, 1), P(2, 2), P(3, 3))

	// Crosses the middle of the path between (1, 1) and (2, 2)
	assert.True(t, p.Intersects(mustLine(t, P(3, 0), P(0, 3))))
}
