package request

import (
	"errors"

	"github.com/mcoot/octiline/internal/model"
)

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	GridSize int `json:"grid_size,omitempty"`
}

// ClickRequest is the request body for submitting a clicked node.
// Both coordinates are required, so they are pointers.
type ClickRequest struct {
	X *int `json:"x"`
	Y *int `json:"y"`
}

// Point validates the request and returns the clicked node
func (r ClickRequest) Point() (model.Point, error) {
	if r.X == nil || r.Y == nil {
		return model.Point{}, errors.New("x and y are required")
	}
	return model.P(*r.X, *r.Y), nil
}

// ReportErrorRequest is the request body for reporting a client-side failure
type ReportErrorRequest struct {
	Error string `json:"error"`
}

// BotTurnRequest is the request body for playing a bot turn
type BotTurnRequest struct {
	Strategy string `json:"strategy,omitempty"`
}
