package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/notnil/chess"
	"golang.org/x/image/font/basicfont"

	"chessBattle/ui"
)

const (
	glyphWidth  = 7
	glyphHeight = 13
	glyphAscent = 11
)

var face = basicfont.Face7x13

var allPieces = []chess.Piece{
	chess.WhiteKing, chess.WhiteQueen, chess.WhiteRook, chess.WhiteBishop, chess.WhiteKnight, chess.WhitePawn,
	chess.BlackKing, chess.BlackQueen, chess.BlackRook, chess.BlackBishop, chess.BlackKnight, chess.BlackPawn,
}

// loadGlyphs renders one letter per piece; Draw scales them onto the board.
func (g *Game) loadGlyphs() {
	g.glyphs = make(map[chess.Piece]*ebiten.Image, len(allPieces))
	for _, p := range allPieces {
		img := ebiten.NewImage(glyphWidth, glyphHeight)
		clr := color.Color(color.White)
		if p.Color() == chess.White {
			clr = color.Black
		}
		text.Draw(img, pieceLetter(p), face, 0, glyphAscent, clr)
		g.glyphs[p] = img
	}
}

func pieceLetter(p chess.Piece) string {
	return strings.ToUpper(p.Type().String())
}

func (g *Game) Draw(screen *ebiten.Image) {
	pal := g.theme.Palette()
	screen.Fill(pal.Background)

	g.drawHeader(screen, pal)
	g.drawBoard(screen, pal)
	g.drawHistory(screen, pal)
	g.drawFooter(screen, pal)
}

func (g *Game) drawHeader(screen *ebiten.Image, pal ui.Palette) {
	title := "AI vs AI Chess Battle"
	text.Draw(screen, title, face, (ScreenWidth-len(title)*glyphWidth)/2, 24, pal.Text)

	b := themeButton
	vector.DrawFilledRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), pal.Button, false)
	vector.StrokeRect(screen, float32(b.Min.X), float32(b.Min.Y), float32(b.Dx()), float32(b.Dy()), 1, pal.ButtonBorder, false)
	label := g.theme.ToggleLabel()
	text.Draw(screen, label, face, b.Min.X+(b.Dx()-len(label)*glyphWidth)/2, b.Min.Y+18, pal.Text)
}

func (g *Game) drawBoard(screen *ebiten.Image, pal ui.Palette) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			sq := squareAt(col, row)
			clr := pal.LightSquare
			if (int(sq.File())+int(sq.Rank()))%2 == 0 {
				clr = pal.DarkSquare
			}
			x, y := float32(boardOffsetX+col*squareSize), float32(boardOffsetY+row*squareSize)
			vector.DrawFilledRect(screen, x, y, squareSize, squareSize, clr, false)
		}
	}

	if last := g.view.LastMove; last != nil {
		for _, name := range []string{last.From, last.To} {
			if sq, ok := parseSquare(name); ok {
				cx, cy := squareCenter(sq)
				vector.DrawFilledCircle(screen, cx, cy, squareSize*0.36, pal.Highlight, true)
			}
		}
	}

	if g.board == nil {
		return
	}
	for sq, p := range g.board.SquareMap() {
		g.drawPiece(screen, pal, sq, p)
	}

	for i := 0; i < 8; i++ {
		file := string(rune('a' + i))
		rank := fmt.Sprint(8 - i)
		text.Draw(screen, file, face, boardOffsetX+i*squareSize+squareSize-10, boardOffsetY+boardSize-3, pal.MutedText)
		text.Draw(screen, rank, face, boardOffsetX+3, boardOffsetY+i*squareSize+glyphAscent+2, pal.MutedText)
	}
}

func (g *Game) drawPiece(screen *ebiten.Image, pal ui.Palette, sq chess.Square, p chess.Piece) {
	cx, cy := squareCenter(sq)
	radius := float32(squareSize) * 0.32
	fill, edge := pal.WhitePiece, pal.BlackPiece
	if p.Color() == chess.Black {
		fill, edge = pal.BlackPiece, pal.WhitePiece
	}
	vector.DrawFilledCircle(screen, cx, cy, radius, fill, true)
	vector.StrokeCircle(screen, cx, cy, radius, 2, edge, true)

	glyph := g.glyphs[p]
	if glyph == nil {
		return
	}
	scale := float64(squareSize) * 0.4 / glyphHeight
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(cx)-glyphWidth*scale/2, float64(cy)-glyphHeight*scale/2)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(glyph, op)
}

func (g *Game) drawHistory(screen *ebiten.Image, pal ui.Palette) {
	vector.DrawFilledRect(screen, panelX, boardOffsetY, panelWidth, boardSize, pal.Panel, false)
	text.Draw(screen, "Move History", face, panelX+12, boardOffsetY+24, pal.Text)

	if len(g.view.Transcript) == 0 {
		text.Draw(screen, "Waiting for moves...", face, panelX+12, historyTop+glyphAscent, pal.MutedText)
		return
	}
	for i, line := range g.history.Visible() {
		text.Draw(screen, line, face, panelX+12, historyTop+i*lineHeight+glyphAscent, pal.Text)
	}
	if !g.history.Following() {
		text.Draw(screen, "PgDn for latest", face, panelX+12, boardOffsetY+boardSize-8, pal.MutedText)
	}
}

func (g *Game) drawFooter(screen *ebiten.Image, pal ui.Palette) {
	y := boardOffsetY + boardSize + 20
	text.Draw(screen, g.view.Status(), face, margin, y, pal.Text)
	credit := "Built with Go, Ebitengine and notnil/chess"
	text.Draw(screen, credit, face, ScreenWidth-margin-len(credit)*glyphWidth, y+18, pal.MutedText)
}

func squareCenter(sq chess.Square) (float32, float32) {
	col, row := cellOf(sq)
	return float32(boardOffsetX + col*squareSize + squareSize/2),
		float32(boardOffsetY + row*squareSize + squareSize/2)
}
