package response

import (
	"fmt"

	"github.com/mcoot/octiline/internal/model"
)

const (
	awaitingMoveBody = "Awaiting Player %d's Move"
	selectEndBody    = "Select a second node to complete the line."
	invalidStartBody = "Invalid start position. You must start at either end of the path. Try again."
	invalidEndBody   = "Invalid end position. You must choose a neighboring node that does not intersect the path. Try again."
)

func playerMessage(body func(g *model.Game) string) func(g *model.Game) Message {
	return func(g *model.Game) Message {
		return Message{Heading: fmt.Sprintf("Player %d", g.Player()), Body: body(g)}
	}
}

func fixed(body string) func(*model.Game) string {
	return func(*model.Game) string { return body }
}

func awaitingMove(g *model.Game) string {
	return fmt.Sprintf(awaitingMoveBody, g.Player())
}

// messages is indexed by model.State
var messages = [...]func(g *model.Game) Message{
	model.StateInitialize:       playerMessage(awaitingMove),
	model.StateValidStartNode:   playerMessage(fixed(selectEndBody)),
	model.StateValidEndNode:     playerMessage(awaitingMove),
	model.StateGameOver:         func(g *model.Game) Message { return Message{Heading: "Game Over", Body: fmt.Sprintf("Player %d wins!", g.Winner())} },
	model.StateInvalidStartNode: playerMessage(fixed(invalidStartBody)),
	model.StateInvalidEndNode:   playerMessage(fixed(invalidEndBody)),
	model.StateError:            func(g *model.Game) Message { return Message{Heading: "Error", Body: g.ErrorMessage()} },
}

// MessageFor returns the status message for the game's current state
func MessageFor(g *model.Game) Message {
	state := g.State()
	if !state.IsValid() || int(state) >= len(messages) {
		return Message{Heading: "Error", Body: state.String()}
	}
	return messages[state](g)
}
