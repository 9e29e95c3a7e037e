// Package match owns the one game of a battle and drives the two bots
// against each other.
package match

import (
	"errors"
	"fmt"
	"sync"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"chessBattle/bots"
)

type State int

const (
	Running State = iota
	Halted
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "running":
		*s = Running
	case "halted":
		*s = Halted
	default:
		return fmt.Errorf("unknown match state %q", b)
	}
	return nil
}

type Options struct {
	// Name labels the match in logs and views. Empty picks a petname.
	Name string
	// StartFEN is the starting position. Empty means the standard one.
	StartFEN string
	White    bots.ChessBot
	Black    bots.ChessBot
	// ClaimDraws ends the game as soon as a threefold repetition or the
	// fifty-move rule can be claimed.
	ClaimDraws bool
	// HaltOnGameOver moves the match to Halted once the game is over, which
	// also stops Run. Without it the loop keeps ticking and does nothing.
	HaltOnGameOver bool
	Logger         zerolog.Logger
}

// Match is the single owner of a chess game. Every mutation happens in Step,
// under mu, one move at a time.
type Match struct {
	mu             sync.RWMutex
	name           string
	game           *chess.Game
	white, black   bots.ChessBot
	claimDraws     bool
	haltOnGameOver bool
	state          State
	view           View
	subs           map[int]chan View
	nextSub        int
	log            zerolog.Logger
}

func New(opts Options) (*Match, error) {
	if opts.White == nil || opts.Black == nil {
		return nil, errors.New("match: both sides need a bot")
	}

	var gameOpts []func(*chess.Game)
	if opts.StartFEN != "" {
		fen, err := chess.FEN(opts.StartFEN)
		if err != nil {
			return nil, fmt.Errorf("match: start position: %w", err)
		}
		gameOpts = append(gameOpts, fen)
	}

	name := opts.Name
	if name == "" {
		name = petname.Generate(2, "-")
	}

	game := chess.NewGame(gameOpts...)
	game.AddTagPair("Event", name)
	game.AddTagPair("White", opts.White.Name())
	game.AddTagPair("Black", opts.Black.Name())

	m := &Match{
		name:           name,
		game:           game,
		white:          opts.White,
		black:          opts.Black,
		claimDraws:     opts.ClaimDraws,
		haltOnGameOver: opts.HaltOnGameOver,
		subs:           make(map[int]chan View),
		log:            opts.Logger.With().Str("match", name).Logger(),
	}
	m.settle()
	m.view = m.snapshot()
	return m, nil
}

func (m *Match) Name() string {
	return m.name
}

// Step plays at most one move and reports whether one was applied. Once the
// game is over it does nothing.
func (m *Match) Step() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.game.Outcome() != chess.NoOutcome {
		return false
	}

	bot := m.white
	if m.game.Position().Turn() == chess.Black {
		bot = m.black
	}
	move := bot.BestMove(m.game)
	if move == nil {
		m.log.Debug().Str("bot", bot.Name()).Msg("no move")
		return false
	}

	san := chess.AlgebraicNotation{}.Encode(m.game.Position(), move)
	if err := m.game.Move(move); err != nil {
		m.log.Error().Err(err).Str("bot", bot.Name()).Str("move", move.String()).Msg("move rejected")
		return false
	}
	m.log.Debug().
		Int("ply", len(m.game.Moves())).
		Str("bot", bot.Name()).
		Str("san", san).
		Msg("move applied")

	m.settle()
	m.view = m.snapshot()
	m.publish(m.view)
	return true
}

// settle claims draws when asked to and halts a finished game.
func (m *Match) settle() {
	if m.claimDraws && m.game.Outcome() == chess.NoOutcome {
		for _, method := range m.game.EligibleDraws() {
			if method != chess.ThreefoldRepetition && method != chess.FiftyMoveRule {
				continue
			}
			if err := m.game.Draw(method); err != nil {
				m.log.Error().Err(err).Stringer("method", method).Msg("draw claim failed")
				continue
			}
			break
		}
	}

	if m.game.Outcome() == chess.NoOutcome || m.state == Halted {
		return
	}
	m.log.Info().
		Str("outcome", string(m.game.Outcome())).
		Stringer("method", m.game.Method()).
		Int("ply", len(m.game.Moves())).
		Msg("game over")
	if m.haltOnGameOver {
		m.state = Halted
	}
}

// View returns the latest published snapshot.
func (m *Match) View() View {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view
}

func (m *Match) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// PGN returns the game so far with its tag pairs.
func (m *Match) PGN() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.game.String()
}

// Subscribe returns a channel that receives the current view and then every
// newer one. Slow readers only see the latest view. The cancel func closes
// the channel.
func (m *Match) Subscribe() (<-chan View, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan View, 1)
	ch <- m.view
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			delete(m.subs, id)
			close(ch)
		})
	}
}

// publish must be called with mu held.
func (m *Match) publish(v View) {
	for _, ch := range m.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- v
		}
	}
}
