package bots

import (
	"math/rand"
	"sync"

	"github.com/notnil/chess"
)

type RandomBot struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomBot(seed int64) *RandomBot {
	return &RandomBot{rnd: rand.New(rand.NewSource(seed))}
}

func (b *RandomBot) BestMove(game *chess.Game) *chess.Move {
	b.mu.Lock()
	defer b.mu.Unlock()
	move, ok := Pick(b.rnd, game.ValidMoves())
	if !ok {
		return nil
	}
	return move
}

func (b *RandomBot) Name() string {
	return "Random Bot"
}

// Pick returns one element of moves, each with probability 1/len(moves).
// For an empty slice it returns the zero value and false.
func Pick[T any](r *rand.Rand, moves []T) (T, bool) {
	var none T
	if len(moves) == 0 {
		return none, false
	}
	return moves[r.Intn(len(moves))], true
}
