package model

import "fmt"

// Move is one complete turn: a start node followed by an end node
type Move struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

func (m Move) String() string {
	return fmt.Sprintf("%s -> %s", m.Start, m.End)
}
