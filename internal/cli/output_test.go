package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGrid(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		path    []Point
		pending *Point
		want    string
	}{
		{
			name: "empty grid",
			size: 2,
			want: ". .\n\n. .\n",
		},
		{
			name: "diagonal down right",
			size: 2,
			path: []Point{{0, 0}, {1, 1}},
			want: "o .\n \\\n. o\n",
		},
		{
			name: "every direction",
			size: 3,
			path: []Point{{0, 0}, {1, 0}, {1, 1}, {0, 2}},
			want: "o-o .\n  |\n. o .\n /\no . .\n",
		},
		{
			name:    "pending start",
			size:    2,
			pending: &Point{1, 0},
			want:    ". *\n\n. .\n",
		},
		{
			name: "points outside the grid are skipped",
			size: 2,
			path: []Point{{0, 0}, {5, 5}},
			want: "o .\n\n. .\n",
		},
		{
			name: "zero size",
			size: 0,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderGrid(tt.size, tt.path, tt.pending))
		})
	}
}

func TestOutput_PrintSessionText(t *testing.T) {
	var buf bytes.Buffer
	out := &Output{format: "text", w: &buf}

	out.Print(Session{
		ID:       "abc",
		State:    "VALID_END_NODE",
		Player:   2,
		GridSize: 2,
		Turns:    1,
		Path:     []Point{{0, 0}, {1, 1}},
		NewLine:  &Line{Start: Point{0, 0}, End: Point{1, 1}},
		Message:  Message{Heading: "Player 2", Body: "Awaiting Player 2's Move"},
	})

	text := buf.String()
	assert.Contains(t, text, "Session: abc")
	assert.Contains(t, text, "State: VALID_END_NODE")
	assert.Contains(t, text, "New Line: (0, 0) -> (1, 1)")
	assert.Contains(t, text, "Awaiting Player 2's Move")
	assert.Contains(t, text, "o .\n \\\n. o\n")
}

func TestOutput_PrintMoveSetText(t *testing.T) {
	var buf bytes.Buffer
	out := &Output{format: "text", w: &buf}

	out.Print(MoveSet{
		Player:     1,
		StartNodes: []Point{{0, 0}, {1, 1}},
		Moves:      []Move{{Start: Point{0, 0}, End: Point{1, 0}}},
	})

	text := buf.String()
	assert.Contains(t, text, "Start Nodes (2): (0, 0) (1, 1)")
	assert.Contains(t, text, "Moves (1):")
	assert.Contains(t, text, "(0, 0) -> (1, 0)")
}

func TestOutput_PrintHistoryEmpty(t *testing.T) {
	var buf bytes.Buffer
	out := &Output{format: "text", w: &buf}

	out.Print(History{})

	assert.Equal(t, "No completed games\n", buf.String())
}

func TestOutput_PrintJSON(t *testing.T) {
	var buf bytes.Buffer
	out := &Output{format: "json", w: &buf}

	out.Print(HealthResult{Status: "ok"})

	var got HealthResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
}
