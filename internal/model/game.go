package model

import (
	"encoding/json"
	"fmt"
)

// Player numbers
const (
	PlayerOne = 1
	PlayerTwo = 2
)

// Game is the turn-validation state machine for a single game.
// A Game is not safe for concurrent use; callers serialize Submit per game.
type Game struct {
	state        State
	grid         *Grid
	path         *Path
	pendingStart *Point
	player       int
	winner       int
	turns        int
	newLine      Line
	errMsg       string
}

// NewGame creates a game on a size x size grid, awaiting player one's first start node
func NewGame(size int) *Game {
	return &Game{
		state:  StateInitialize,
		grid:   GridOfSize(size),
		path:   NewPath(),
		player: PlayerOne,
	}
}

// State returns the state after the most recent submission
func (g *Game) State() State {
	return g.state
}

// Player returns the player whose turn it is
func (g *Game) Player() int {
	return g.player
}

// Winner returns the player who drew the terminating line, or 0 if the game is not over
func (g *Game) Winner() int {
	return g.winner
}

// Turns returns the number of completed lines
func (g *Game) Turns() int {
	return g.turns
}

// GridSize returns the dimension of the game's grid
func (g *Game) GridSize() int {
	return g.grid.Size()
}

// Grid returns the game's grid
func (g *Game) Grid() *Grid {
	return g.grid
}

// Path returns a copy of the current path
func (g *Game) Path() *Path {
	return NewPath(g.path.nodes...)
}

// NewLine returns the line completed by the most recent submission, if it completed one
func (g *Game) NewLine() (Line, bool) {
	return g.newLine, !g.newLine.IsZero()
}

// PendingStart returns the accepted start node while awaiting an end node
func (g *Game) PendingStart() (Point, bool) {
	if g.pendingStart == nil {
		return Point{}, false
	}
	return *g.pendingStart, true
}

// ErrorMessage returns the failure message when the game is in StateError
func (g *Game) ErrorMessage() string {
	return g.errMsg
}

// IsTerminal returns true once the game accepts no more submissions
func (g *Game) IsTerminal() bool {
	return g.state.IsTerminal()
}

// Submit processes one selected node.
//
// Without a pending start the node is checked against ValidStartNodes, otherwise
// against ValidEndNodes of the pending start, and a valid end completes a line.
// Rejected selections move the game to the matching INVALID_* state and return an
// *InvalidStartNodeError or *InvalidEndNodeError; the game remains playable.
// Internal failures move the game to StateError and return the cause.
// Terminal games return ErrGameOver or ErrGameFailed and are left untouched.
func (g *Game) Submit(p Point) error {
	switch {
	case g.state == StateGameOver:
		return ErrGameOver
	case g.state == StateError:
		return ErrGameFailed
	case !g.state.IsValid():
		err := fmt.Errorf("%w: %d", ErrUnknownState, int(g.state))
		g.Fail(err.Error())
		return err
	}

	g.newLine = Line{}
	if g.pendingStart == nil {
		return g.submitStart(p)
	}
	return g.submitEnd(p)
}

func (g *Game) submitStart(p Point) error {
	valid := g.ValidStartNodes()
	if !valid.Contains(p) {
		g.state = StateInvalidStartNode
		g.pendingStart = nil
		return &InvalidStartNodeError{Node: p, Valid: valid.Sorted()}
	}

	start := p
	g.pendingStart = &start
	g.state = StateValidStartNode
	return nil
}

func (g *Game) submitEnd(p Point) error {
	start := *g.pendingStart
	g.pendingStart = nil

	valid := g.ValidEndNodes(start)
	if !valid.Contains(p) {
		g.state = StateInvalidEndNode
		return &InvalidEndNodeError{Start: start, Node: p, Valid: valid.Sorted()}
	}

	line, err := NewLine(start, p)
	if err != nil {
		g.Fail(err.Error())
		return err
	}
	if err := g.path.Extend(line); err != nil {
		g.Fail(err.Error())
		return err
	}

	g.newLine = line
	g.turns++
	if g.IsOver() {
		g.state = StateGameOver
		g.winner = g.player
	} else {
		g.state = StateValidEndNode
	}
	g.togglePlayer()
	return nil
}

func (g *Game) togglePlayer() {
	if g.player == PlayerOne {
		g.player = PlayerTwo
	} else {
		g.player = PlayerOne
	}
}

// ValidStartNodes returns every grid node before the first line, and the
// two ends of the path afterwards
func (g *Game) ValidStartNodes() PointSet {
	if g.path.IsEmpty() {
		return g.grid.Nodes()
	}
	return g.path.Extrema()
}

// ValidEndNodes returns the nodes a line from start may end on without
// touching or crossing the path. start itself is never included.
func (g *Game) ValidEndNodes(start Point) PointSet {
	result := make(PointSet)
	for n := range g.grid.NodesOctilinearTo(start) {
		line, err := NewLine(start, n)
		if err != nil {
			continue
		}
		if g.path.Intersects(line) {
			continue
		}
		result.Add(n)
	}
	return result
}

// IsOver reports whether neither end of a non-empty path can be extended
func (g *Game) IsOver() bool {
	start, ok := g.path.Start()
	if !ok {
		return false
	}
	end, _ := g.path.End()
	return g.ValidEndNodes(start).Len() == 0 && g.ValidEndNodes(end).Len() == 0
}

// Fail moves the game to StateError with the given message
func (g *Game) Fail(message string) {
	g.state = StateError
	g.errMsg = message
	g.pendingStart = nil
	g.newLine = Line{}
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	c := *g
	c.path = NewPath(g.path.nodes...)
	if g.pendingStart != nil {
		start := *g.pendingStart
		c.pendingStart = &start
	}
	return &c
}

type gameJSON struct {
	State        State   `json:"state"`
	GridSize     int     `json:"grid_size"`
	Player       int     `json:"player"`
	Winner       int     `json:"winner,omitempty"`
	Turns        int     `json:"turns"`
	Path         []Point `json:"path"`
	PendingStart *Point  `json:"pending_start,omitempty"`
	NewLine      Line    `json:"new_line"`
	Error        string  `json:"error,omitempty"`
}

// MarshalJSON encodes the full game for storage
func (g *Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(gameJSON{
		State:        g.state,
		GridSize:     g.grid.Size(),
		Player:       g.player,
		Winner:       g.winner,
		Turns:        g.turns,
		Path:         g.path.Nodes(),
		PendingStart: g.pendingStart,
		NewLine:      g.newLine,
		Error:        g.errMsg,
	})
}

// UnmarshalJSON decodes a stored game. The path is rebuilt one unit segment at
// a time so that a snapshot that could not have been played is rejected.
func (g *Game) UnmarshalJSON(data []byte) error {
	var gj gameJSON
	if err := json.Unmarshal(data, &gj); err != nil {
		return err
	}
	if gj.GridSize < MinGridSize || gj.GridSize > MaxGridSize {
		return fmt.Errorf("%w: %d", ErrInvalidGridSize, gj.GridSize)
	}
	if gj.Player != PlayerOne && gj.Player != PlayerTwo {
		return fmt.Errorf("invalid player: %d", gj.Player)
	}

	grid := GridOfSize(gj.GridSize)
	path, err := replayPath(grid, gj.Path)
	if err != nil {
		return err
	}
	if gj.PendingStart != nil && !grid.Contains(*gj.PendingStart) {
		return fmt.Errorf("%w: pending start %s outside grid", ErrInvalidPath, *gj.PendingStart)
	}

	*g = Game{
		state:        gj.State,
		grid:         grid,
		path:         path,
		pendingStart: gj.PendingStart,
		player:       gj.Player,
		winner:       gj.Winner,
		turns:        gj.Turns,
		newLine:      gj.NewLine,
		errMsg:       gj.Error,
	}
	return nil
}

func replayPath(grid *Grid, nodes []Point) (*Path, error) {
	path := NewPath()
	if len(nodes) == 0 {
		return path, nil
	}
	if len(nodes) == 1 {
		return nil, fmt.Errorf("%w: single node %s", ErrInvalidPath, nodes[0])
	}
	for _, n := range nodes {
		if !grid.Contains(n) {
			return nil, fmt.Errorf("%w: node %s outside grid", ErrInvalidPath, n)
		}
	}
	for i := 1; i < len(nodes); i++ {
		seg, err := NewLine(nodes[i-1], nodes[i])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPath, err)
		}
		if seg.Len() != 2 {
			return nil, fmt.Errorf("%w: %s is not a unit step", ErrInvalidPath, seg)
		}
		if path.Intersects(seg) {
			return nil, fmt.Errorf("%w: %s intersects the path", ErrInvalidPath, seg)
		}
		if err := path.Extend(seg); err != nil {
			return nil, err
		}
	}
	return path, nil
}
