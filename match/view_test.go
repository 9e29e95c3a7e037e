package match

import (
	"encoding/json"
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscript(t *testing.T) {
	cases := []struct {
		name       string
		sans       []string
		moveNumber int
		blackFirst bool
		want       []string
	}{
		{"empty", nil, 1, false, []string{}},
		{"one ply", []string{"e4"}, 1, false, []string{"1. e4"}},
		{"full moves", []string{"e4", "e5", "Nf3", "Nc6"}, 1, false, []string{"1. e4 e5", "2. Nf3 Nc6"}},
		{"odd plies", []string{"e4", "e5", "Nf3"}, 1, false, []string{"1. e4 e5", "2. Nf3"}},
		{"black first", []string{"Qh4#"}, 2, true, []string{"2... Qh4#"}},
		{"black first then white", []string{"e5", "Nf3", "Nc6"}, 7, true, []string{"7... e5", "8. Nf3 Nc6"}},
		{"black first empty", nil, 3, true, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Transcript(tc.sans, tc.moveNumber, tc.blackFirst))
		})
	}
}

func TestViewJSON(t *testing.T) {
	m := newMatch(t, Options{StartFEN: foolsMateFEN, Black: &scriptedBot{moves: []string{"d8h4"}}, HaltOnGameOver: true})
	m.Step()

	data, err := json.Marshal(m.View())
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "halted", got["state"])
	assert.Equal(t, "0-1", got["outcome"])
	assert.Equal(t, map[string]interface{}{"from": "d8", "to": "h4"}, got["lastMove"])
}

func TestViewStatusAndBoard(t *testing.T) {
	m := newMatch(t, Options{StartFEN: stalemateFEN})
	v := m.View()
	assert.Equal(t, "Result: 1/2-1/2 (Stalemate)", v.Status())

	board := v.Board()
	require.NotNil(t, board)
	assert.Equal(t, chess.WhiteQueen, board.Piece(chess.F7))
	assert.Equal(t, chess.BlackKing, board.Piece(chess.H8))

	assert.Equal(t, "White to move", newMatch(t, Options{}).View().Status())
	assert.Nil(t, View{}.Board())
	assert.False(t, View{}.Over())
}
