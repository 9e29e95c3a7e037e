// Package game shows a match in an ebiten window: the board with the last
// move marked, a move history panel and a light/dark toggle.
package game

import (
	"context"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"chessBattle/match"
	"chessBattle/ui"
)

const (
	squareSize   = 64
	boardSize    = 8 * squareSize
	margin       = 24
	headerHeight = 80
	footerHeight = 48
	panelWidth   = 240
	lineHeight   = 18

	ScreenWidth  = margin + boardSize + margin + panelWidth + margin
	ScreenHeight = headerHeight + boardSize + footerHeight

	boardOffsetX = margin
	boardOffsetY = headerHeight
	panelX       = boardOffsetX + boardSize + margin
	historyTop   = boardOffsetY + 40
	historyRows  = (boardSize - 56) / lineHeight
)

var themeButton = image.Rect(ScreenWidth/2-70, 40, ScreenWidth/2+70, 68)

type Game struct {
	ctx     context.Context
	match   *match.Match
	view    match.View
	board   *chess.Board
	theme   ui.Theme
	history *ui.History
	glyphs  map[chess.Piece]*ebiten.Image
	log     zerolog.Logger
}

func NewGame(ctx context.Context, m *match.Match, theme ui.Theme, logger zerolog.Logger) *Game {
	g := &Game{
		ctx:     ctx,
		match:   m,
		theme:   theme,
		history: ui.NewHistory(historyRows),
		log:     logger,
	}
	g.loadGlyphs()
	g.refresh()
	return g
}

// refresh picks up a newer view, if any, and keeps the history panel on the
// latest line.
func (g *Game) refresh() {
	v := g.match.View()
	if v.Ply == g.view.Ply && v.State == g.view.State && v.Outcome == g.view.Outcome && v.FEN == g.view.FEN {
		return
	}
	g.view = v
	g.board = v.Board()
	g.history.SetLines(v.Transcript)
}

func (g *Game) toggleTheme() {
	g.theme = g.theme.Toggle()
	g.log.Debug().Stringer("theme", g.theme).Msg("theme toggled")
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.refresh()

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.toggleTheme()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if image.Pt(ebiten.CursorPosition()).In(themeButton) {
			g.toggleTheme()
		}
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.history.Scroll(wheelLines(dy))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		g.history.Scroll(-historyRows)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		g.history.Scroll(historyRows)
	}
	return nil
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, m *match.Match, theme ui.Theme, logger zerolog.Logger) error {
	g := NewGame(ctx, m, theme, logger)
	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("AI vs AI Chess Battle - " + m.Name())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

// wheelLines turns a wheel offset into history lines; wheel up scrolls back.
func wheelLines(dy float64) int {
	switch {
	case dy > 0:
		return -1
	case dy < 0:
		return 1
	default:
		return 0
	}
}

// squareAt maps a board cell, row 0 at the top, to a square. White sits at
// the bottom.
func squareAt(col, row int) chess.Square {
	return chess.NewSquare(chess.File(col), chess.Rank(7-row))
}

// cellOf is the inverse of squareAt.
func cellOf(sq chess.Square) (col, row int) {
	return int(sq.File()), 7 - int(sq.Rank())
}

// parseSquare resolves an algebraic name such as "e4".
func parseSquare(name string) (chess.Square, bool) {
	if len(name) != 2 || name[0] < 'a' || name[0] > 'h' || name[1] < '1' || name[1] > '8' {
		return chess.NoSquare, false
	}
	return chess.NewSquare(chess.File(name[0]-'a'), chess.Rank(name[1]-'1')), true
}
