package bot

import (
	"github.com/mcoot/octiline/internal/dependencies/random"
	"github.com/mcoot/octiline/internal/model"
)

// RandomStrategy picks uniformly among the legal moves
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

// ChooseMove returns a random legal move
func (s *RandomStrategy) ChooseMove(game *model.Game) (model.Move, bool) {
	moves := LegalMoves(game)
	if len(moves) == 0 {
		return model.Move{}, false
	}
	return moves[s.random.Intn(len(moves))], true
}
