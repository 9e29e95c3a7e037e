package match

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chessBattle/bots"
)

const (
	// 1. f3 e5 2. g4, Black mates with Qh4.
	foolsMateFEN = "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq g3 0 2"
	stalemateFEN = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
)

// scriptedBot cycles through fixed moves given in UCI form.
type scriptedBot struct {
	moves []string
	next  int
}

func (b *scriptedBot) BestMove(game *chess.Game) *chess.Move {
	want := b.moves[b.next%len(b.moves)]
	b.next++
	for _, m := range game.ValidMoves() {
		if m.String() == want {
			return m
		}
	}
	return nil
}

func (b *scriptedBot) Name() string { return "Scripted" }

func newMatch(t *testing.T, opts Options) *Match {
	t.Helper()
	if opts.White == nil {
		opts.White = bots.NewRandomBot(1)
	}
	if opts.Black == nil {
		opts.Black = bots.NewRandomBot(2)
	}
	if opts.Name == "" {
		opts.Name = "test-match"
	}
	opts.Logger = zerolog.Nop()
	m, err := New(opts)
	require.NoError(t, err)
	return m
}

func TestStartPosition(t *testing.T) {
	m := newMatch(t, Options{HaltOnGameOver: true})
	v := m.View()
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", v.FEN)
	assert.Equal(t, "White", v.Turn)
	assert.Empty(t, v.Moves)
	assert.Empty(t, v.Transcript)
	assert.Nil(t, v.LastMove)
	assert.Equal(t, Running, v.State)
	assert.False(t, v.Over())

	var opening []string
	game := chess.NewGame()
	for _, move := range game.ValidMoves() {
		opening = append(opening, chess.AlgebraicNotation{}.Encode(game.Position(), move))
	}
	require.Len(t, opening, 20)

	require.True(t, m.Step())
	v = m.View()
	assert.Equal(t, "Black", v.Turn)
	assert.Equal(t, 1, v.Ply)
	require.Len(t, v.Moves, 1)
	assert.Contains(t, opening, v.Moves[0])
	assert.Equal(t, []string{"1. " + v.Moves[0]}, v.Transcript)
	require.NotNil(t, v.LastMove)
	assert.NotEqual(t, v.LastMove.From, v.LastMove.To)

	require.True(t, m.Step())
	v = m.View()
	assert.Equal(t, "White", v.Turn)
	require.Len(t, v.Transcript, 1)
	assert.Equal(t, "1. "+v.Moves[0]+" "+v.Moves[1], v.Transcript[0])
}

func TestCheckmateStopsProgress(t *testing.T) {
	m := newMatch(t, Options{
		StartFEN:       foolsMateFEN,
		White:          bots.NewNewbornBot(),
		Black:          &scriptedBot{moves: []string{"d8h4"}},
		HaltOnGameOver: true,
	})

	require.True(t, m.Step())
	v := m.View()
	assert.Equal(t, []string{"Qh4#"}, v.Moves)
	assert.Equal(t, []string{"2... Qh4#"}, v.Transcript)
	assert.Equal(t, &Squares{From: "d8", To: "h4"}, v.LastMove)
	assert.Equal(t, "0-1", v.Outcome)
	assert.Equal(t, "Checkmate", v.Method)
	assert.Equal(t, Halted, v.State)
	assert.Equal(t, Halted, m.State())

	for i := 0; i < 3; i++ {
		assert.False(t, m.Step())
	}
	assert.Equal(t, v, m.View())
}

func TestStalemateBehavesLikeCheckmate(t *testing.T) {
	m := newMatch(t, Options{StartFEN: stalemateFEN, HaltOnGameOver: true})

	v := m.View()
	assert.Equal(t, "1/2-1/2", v.Outcome)
	assert.Equal(t, "Stalemate", v.Method)
	assert.Equal(t, Halted, v.State)

	assert.False(t, m.Step())
	assert.Equal(t, v, m.View())
	assert.Zero(t, m.View().Ply)
}

func TestGameOverWithoutHalt(t *testing.T) {
	m := newMatch(t, Options{StartFEN: stalemateFEN})

	assert.False(t, m.Step())
	assert.Equal(t, Running, m.State())
	assert.True(t, m.View().Over())
}

func TestClaimDraws(t *testing.T) {
	shuffle := func(claim bool) *Match {
		return newMatch(t, Options{
			White:          &scriptedBot{moves: []string{"g1f3", "f3g1"}},
			Black:          &scriptedBot{moves: []string{"g8f6", "f6g8"}},
			ClaimDraws:     claim,
			HaltOnGameOver: true,
		})
	}

	m := shuffle(true)
	for i := 0; i < 8; i++ {
		require.True(t, m.Step(), "ply %d", i+1)
	}
	v := m.View()
	assert.Equal(t, "1/2-1/2", v.Outcome)
	assert.Equal(t, "ThreefoldRepetition", v.Method)
	assert.Equal(t, Halted, v.State)
	assert.False(t, m.Step())

	m = shuffle(false)
	for i := 0; i < 8; i++ {
		require.True(t, m.Step())
	}
	assert.False(t, m.View().Over())
	assert.True(t, m.Step())
}

func TestViewIsIdempotent(t *testing.T) {
	m := newMatch(t, Options{})
	m.Step()
	m.Step()
	first := m.View()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.View())
	}
}

func TestRunHaltsOnGameOver(t *testing.T) {
	m := newMatch(t, Options{
		StartFEN:       foolsMateFEN,
		Black:          &scriptedBot{moves: []string{"d8h4"}},
		HaltOnGameOver: true,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, m.Run(ctx, time.Millisecond))
	assert.Equal(t, 1, m.View().Ply)
}

func TestRunCancelled(t *testing.T) {
	m := newMatch(t, Options{HaltOnGameOver: true})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- m.Run(ctx, time.Hour) }()
	cancel()

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Zero(t, m.View().Ply)
}

func TestSubscribe(t *testing.T) {
	m := newMatch(t, Options{})
	ch, cancel := m.Subscribe()

	v := <-ch
	assert.Zero(t, v.Ply)

	m.Step()
	m.Step()
	v = <-ch
	assert.Equal(t, 2, v.Ply, "slow readers get the latest view")

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	assert.True(t, m.Step())
}

func TestPGN(t *testing.T) {
	m := newMatch(t, Options{
		StartFEN:       foolsMateFEN,
		Black:          &scriptedBot{moves: []string{"d8h4"}},
		HaltOnGameOver: true,
	})
	m.Step()

	pgn := m.PGN()
	assert.Contains(t, pgn, `[Event "test-match"]`)
	assert.Contains(t, pgn, `[Black "Scripted"]`)
	assert.Contains(t, pgn, "Qh4#")
	assert.Contains(t, pgn, "0-1")
}

func TestNewErrors(t *testing.T) {
	_, err := New(Options{White: bots.NewNewbornBot()})
	assert.Error(t, err)

	_, err = New(Options{
		White:    bots.NewNewbornBot(),
		Black:    bots.NewNewbornBot(),
		StartFEN: "not a fen",
	})
	assert.Error(t, err)
}

func TestGeneratedName(t *testing.T) {
	m, err := New(Options{White: bots.NewNewbornBot(), Black: bots.NewNewbornBot(), Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.NotEmpty(t, m.Name())
	assert.Equal(t, m.Name(), m.View().Name)
}
