package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to stdout
func NewOutput(format string) *Output {
	return &Output{format: format, w: os.Stdout}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Session:
		o.printSession(v)
	case MoveSet:
		o.printMoveSet(v)
	case History:
		o.printHistory(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Point response type
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Line response type
type Line struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// Message response type
type Message struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Session response type (matches API)
type Session struct {
	ID           string  `json:"id"`
	State        string  `json:"state"`
	Player       int     `json:"player"`
	Winner       int     `json:"winner,omitempty"`
	GridSize     int     `json:"grid_size"`
	Turns        int     `json:"turns"`
	Path         []Point `json:"path"`
	PendingStart *Point  `json:"pending_start,omitempty"`
	NewLine      *Line   `json:"new_line"`
	Error        string  `json:"error,omitempty"`
	Message      Message `json:"message"`
}

// Move response type
type Move struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// MoveSet response type
type MoveSet struct {
	Player      int     `json:"player"`
	StartNodes  []Point `json:"start_nodes"`
	PendingFrom *Point  `json:"pending_from,omitempty"`
	Moves       []Move  `json:"moves"`
}

// GameSummary response type
type GameSummary struct {
	SessionID   string    `json:"session_id"`
	GridSize    int       `json:"grid_size"`
	Winner      int       `json:"winner"`
	Turns       int       `json:"turns"`
	PathLength  int       `json:"path_length"`
	CompletedAt time.Time `json:"completed_at"`
}

// History response type
type History struct {
	Games []GameSummary `json:"games"`
}

// HealthResult is the health response plus client-side measurements
type HealthResult struct {
	Status    string `json:"status"`
	Server    string `json:"server,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

func (o *Output) printSession(s Session) {
	fmt.Fprintf(o.w, "Session: %s\n", s.ID)
	fmt.Fprintf(o.w, "State: %s\n", s.State)
	fmt.Fprintf(o.w, "Grid Size: %d\n", s.GridSize)
	fmt.Fprintf(o.w, "Turns: %d\n", s.Turns)
	if s.NewLine != nil {
		fmt.Fprintf(o.w, "New Line: %s -> %s\n", s.NewLine.Start, s.NewLine.End)
	}
	fmt.Fprintf(o.w, "\n%s\n%s\n\n", s.Message.Heading, s.Message.Body)
	fmt.Fprint(o.w, RenderGrid(s.GridSize, s.Path, s.PendingStart))
}

func (o *Output) printMoveSet(m MoveSet) {
	fmt.Fprintf(o.w, "Player: %d\n", m.Player)
	if m.PendingFrom != nil {
		fmt.Fprintf(o.w, "Selected: %s\n", *m.PendingFrom)
	} else {
		starts := make([]string, len(m.StartNodes))
		for i, p := range m.StartNodes {
			starts[i] = p.String()
		}
		fmt.Fprintf(o.w, "Start Nodes (%d): %s\n", len(m.StartNodes), strings.Join(starts, " "))
	}
	fmt.Fprintf(o.w, "Moves (%d):\n", len(m.Moves))
	for _, mv := range m.Moves {
		fmt.Fprintf(o.w, "  %s -> %s\n", mv.Start, mv.End)
	}
}

func (o *Output) printHistory(h History) {
	if len(h.Games) == 0 {
		fmt.Fprintln(o.w, "No completed games")
		return
	}
	for _, g := range h.Games {
		fmt.Fprintf(o.w, "%s  %s  %dx%d  Player %d won in %d turns\n",
			g.CompletedAt.Format("2006-01-02 15:04:05"), g.SessionID, g.GridSize, g.GridSize, g.Winner, g.Turns)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Server != "" {
		fmt.Fprintf(o.w, "Server: %s (%dms)\n", h.Server, h.LatencyMS)
	}
}

// RenderGrid draws the grid with the path over it. Nodes are '.', path nodes
// 'o', the pending start node '*', and each unit segment is drawn between its
// nodes as '-', '|', '\' or '/'.
func RenderGrid(size int, path []Point, pending *Point) string {
	if size <= 0 {
		return ""
	}

	dim := 2*size - 1
	canvas := make([][]byte, dim)
	for r := range canvas {
		canvas[r] = []byte(strings.Repeat(" ", dim))
		if r%2 == 0 {
			for c := 0; c < dim; c += 2 {
				canvas[r][c] = '.'
			}
		}
	}

	inGrid := func(p Point) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < size && p.Y < size
	}

	for i, p := range path {
		if !inGrid(p) {
			continue
		}
		canvas[2*p.Y][2*p.X] = 'o'
		if i == 0 || !inGrid(path[i-1]) {
			continue
		}
		prev := path[i-1]
		dx, dy := p.X-prev.X, p.Y-prev.Y
		if abs(dx) > 1 || abs(dy) > 1 {
			continue
		}
		var ch byte
		switch {
		case dy == 0:
			ch = '-'
		case dx == 0:
			ch = '|'
		case dx == dy:
			ch = '\\'
		default:
			ch = '/'
		}
		canvas[prev.Y+p.Y][prev.X+p.X] = ch
	}

	if pending != nil && inGrid(*pending) {
		canvas[2*pending.Y][2*pending.X] = '*'
	}

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
