package match

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
)

type Squares struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// View is what renderers get to see of a match. It is a value: nothing in it
// changes after it is published.
type View struct {
	Name string `json:"name"`
	FEN  string `json:"fen"`
	// Moves holds every move played, in SAN.
	Moves []string `json:"moves"`
	// Transcript groups Moves by move number, one line each: "1. e4 e5".
	Transcript []string `json:"transcript"`
	LastMove   *Squares `json:"lastMove,omitempty"`
	Turn       string   `json:"turn"`
	Outcome    string   `json:"outcome"`
	Method     string   `json:"method,omitempty"`
	Ply        int      `json:"ply"`
	State      State    `json:"state"`
	Diagram    string   `json:"diagram"`
}

// Over reports whether the game has a result.
func (v View) Over() bool {
	return v.Outcome != "" && v.Outcome != string(chess.NoOutcome)
}

// Status is a one-line summary: whose turn it is, or how the game ended.
func (v View) Status() string {
	if !v.Over() {
		return v.Turn + " to move"
	}
	return fmt.Sprintf("Result: %s (%s)", v.Outcome, v.Method)
}

// Board rebuilds the position from FEN for renderers. It is nil for a zero View.
func (v View) Board() *chess.Board {
	fen, err := chess.FEN(v.FEN)
	if err != nil {
		return nil
	}
	return chess.NewGame(fen).Position().Board()
}

func (m *Match) snapshot() View {
	moves := m.game.Moves()
	positions := m.game.Positions()
	pos := m.game.Position()

	sans := make([]string, len(moves))
	for i, move := range moves {
		sans[i] = chess.AlgebraicNotation{}.Encode(positions[i], move)
	}

	start := positions[0]
	v := View{
		Name:       m.name,
		FEN:        pos.String(),
		Moves:      sans,
		Transcript: Transcript(sans, fullMoveNumber(start), start.Turn() == chess.Black),
		Turn:       pos.Turn().Name(),
		Outcome:    string(m.game.Outcome()),
		Ply:        len(moves),
		State:      m.state,
		Diagram:    pos.Board().Draw(),
	}
	if len(moves) > 0 {
		last := moves[len(moves)-1]
		v.LastMove = &Squares{From: last.S1().String(), To: last.S2().String()}
	}
	if v.Over() {
		v.Method = m.game.Method().String()
	}
	return v
}

// Transcript lays SAN moves out one move number per line, starting at
// moveNumber. blackFirst marks a game that starts with Black to move.
func Transcript(sans []string, moveNumber int, blackFirst bool) []string {
	lines := make([]string, 0, len(sans)/2+1)
	i := 0
	if blackFirst && len(sans) > 0 {
		lines = append(lines, fmt.Sprintf("%d... %s", moveNumber, sans[0]))
		i = 1
		moveNumber++
	}
	for ; i < len(sans); i += 2 {
		line := fmt.Sprintf("%d. %s", moveNumber, sans[i])
		if i+1 < len(sans) {
			line += " " + sans[i+1]
		}
		lines = append(lines, line)
		moveNumber++
	}
	return lines
}

// fullMoveNumber reads the last FEN field of pos.
func fullMoveNumber(pos *chess.Position) int {
	fields := strings.Fields(pos.String())
	if len(fields) < 6 {
		return 1
	}
	n, err := strconv.Atoi(fields[5])
	if err != nil || n < 1 {
		return 1
	}
	return n
}
