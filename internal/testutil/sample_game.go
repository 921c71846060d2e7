package testutil

import "github.com/mcoot/octiline/internal/model"

// SampleGameClicks plays a complete 4x4 game in nine turns, each a start node
// followed by an end node. The final line leaves only (1, 1) free, which
// neither end of the path can reach, so the game ends after the last click.
var SampleGameClicks = []model.Point{
	model.P(0, 0), model.P(0, 2),
	model.P(0, 0), model.P(1, 0),
	model.P(1, 0), model.P(3, 2),
	model.P(0, 2), model.P(2, 2),
	model.P(3, 2), model.P(3, 1),
	model.P(2, 2), model.P(3, 3),
	model.P(3, 3), model.P(0, 3),
	model.P(3, 1), model.P(3, 0),
	model.P(3, 0), model.P(2, 0),
}

// SampleGamePath is the path after every click of SampleGameClicks
var SampleGamePath = []model.Point{
	model.P(2, 0), model.P(3, 0), model.P(3, 1), model.P(3, 2), model.P(2, 1),
	model.P(1, 0), model.P(0, 0), model.P(0, 1), model.P(0, 2), model.P(1, 2),
	model.P(2, 2), model.P(3, 3), model.P(2, 3), model.P(1, 3), model.P(0, 3),
}

// SampleGameWinner drew the ninth and terminating line
const SampleGameWinner = model.PlayerOne

// PlayClicks submits each click in turn, stopping at the first error that is
// not a player error
func PlayClicks(game *model.Game, clicks []model.Point) error {
	for _, p := range clicks {
		if err := game.Submit(p); err != nil && !model.IsPlayerError(err) {
			return err
		}
	}
	return nil
}
