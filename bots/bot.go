// bot.go
package bots

import (
	"errors"
	"fmt"
	"time"

	"github.com/notnil/chess"
)

// ErrUnknownBot is returned by New for a name that has no bot behind it.
var ErrUnknownBot = errors.New("unknown bot")

// ChessBot picks the next move for the side to move. A nil move means there is
// nothing to play.
type ChessBot interface {
	BestMove(game *chess.Game) *chess.Move
	Name() string
}

// Names lists the bots New can build.
func Names() []string {
	return []string{"random", "newborn"}
}

// New builds a bot by name. A zero seed picks one from the clock.
func New(name string, seed int64) (ChessBot, error) {
	switch name {
	case "random":
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return NewRandomBot(seed), nil
	case "newborn":
		return NewNewbornBot(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBot, name)
	}
}
