package model

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used across the application
var (
	// Player errors: expected, the game stays playable
	ErrInvalidStartNode = errors.New("invalid start node")
	ErrInvalidEndNode   = errors.New("invalid end node")

	// Internal errors: should never happen once input is validated, the game fails
	ErrInvalidLine       = errors.New("invalid line")
	ErrPathDiscontinuity = errors.New("path discontinuity")
	ErrInvalidPath       = errors.New("invalid path")
	ErrUnknownState      = errors.New("unknown state")

	// Terminal games
	ErrGameOver   = errors.New("game is over")
	ErrGameFailed = errors.New("game has failed")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidGridSize = errors.New("invalid grid size")
	ErrUnknownStrategy = errors.New("unknown bot strategy")
	ErrNoLegalMoves    = errors.New("no legal moves")
)

// InvalidStartNodeError is returned when the submitted start node is not one
// of the currently valid choices
type InvalidStartNodeError struct {
	Node  Point
	Valid []Point
}

func (e *InvalidStartNodeError) Error() string {
	return fmt.Sprintf("start node %s not in %s", e.Node, formatPoints(e.Valid))
}

func (e *InvalidStartNodeError) Unwrap() error {
	return ErrInvalidStartNode
}

// InvalidEndNodeError is returned when the submitted end node cannot complete
// a line from the pending start node
type InvalidEndNodeError struct {
	Start Point
	Node  Point
	Valid []Point
}

func (e *InvalidEndNodeError) Error() string {
	return fmt.Sprintf("end node %s not in %s", e.Node, formatPoints(e.Valid))
}

func (e *InvalidEndNodeError) Unwrap() error {
	return ErrInvalidEndNode
}

// InvalidLineError is returned when a line's endpoints coincide or are not octilinear
type InvalidLineError struct {
	Start Point
	End   Point
}

func (e *InvalidLineError) Error() string {
	return fmt.Sprintf("invalid line: [%s, %s]", e.Start, e.End)
}

func (e *InvalidLineError) Unwrap() error {
	return ErrInvalidLine
}

// PathDiscontinuityError is returned when a segment does not start at either end of the path
type PathDiscontinuityError struct {
	Segment []Point
	Path    []Point
}

func (e *PathDiscontinuityError) Error() string {
	return fmt.Sprintf("segment %s is discontinuous with path %s", formatPoints(e.Segment), formatPoints(e.Path))
}

func (e *PathDiscontinuityError) Unwrap() error {
	return ErrPathDiscontinuity
}

// IsPlayerError returns true for errors caused by an invalid selection
func IsPlayerError(err error) bool {
	return errors.Is(err, ErrInvalidStartNode) || errors.Is(err, ErrInvalidEndNode)
}

func formatPoints(points []Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = p.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
