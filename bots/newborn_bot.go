package bots

import (
	"sort"

	"github.com/notnil/chess"
)

// NewbornBot plays the legal move that sorts first in UCI notation, so a game
// between two of them always goes the same way.
type NewbornBot struct{}

func NewNewbornBot() *NewbornBot {
	return &NewbornBot{}
}

func (b *NewbornBot) BestMove(game *chess.Game) *chess.Move {
	moves := append([]*chess.Move(nil), game.ValidMoves()...)
	if len(moves) == 0 {
		return nil
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i].String() < moves[j].String() })
	return moves[0]
}

func (b *NewbornBot) Name() string {
	return "Newborn"
}
