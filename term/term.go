// Package term shows a match in the terminal with tview.
package term

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/notnil/chess"
	"github.com/rivo/tview"
	"github.com/rs/zerolog"

	"chessBattle/match"
	"chessBattle/ui"
)

const (
	numrows = 8
	numcols = 8
)

type Client struct {
	App     *tview.Application
	Board   *tview.Table
	History *tview.TextView
	Status  *tview.TextView
	Header  *tview.TextView
	Layout  *tview.Grid
	theme   ui.Theme
	last    match.View
	log     zerolog.Logger
}

func NewClient(theme ui.Theme, logger zerolog.Logger) *Client {
	cl := &Client{
		App:     tview.NewApplication(),
		Board:   tview.NewTable(),
		History: tview.NewTextView(),
		Status:  tview.NewTextView(),
		Header:  tview.NewTextView(),
		theme:   theme,
		log:     logger,
	}

	cl.Header.SetTextAlign(tview.AlignCenter)
	cl.History.SetScrollable(true)
	cl.History.SetBorder(true)
	cl.History.SetTitle(" Move History ")

	cl.Layout = tview.NewGrid().
		SetRows(2, numrows+1, 1, -1).
		SetColumns(-1, 4*(numcols+1), 26, -1).
		AddItem(cl.Header, 0, 0, 1, 4, 0, 0, false).
		AddItem(cl.Board, 1, 1, 1, 1, 0, 0, false).
		AddItem(cl.History, 1, 2, 2, 1, 0, 0, true).
		AddItem(cl.Status, 2, 1, 1, 1, 0, 0, false)

	cl.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch {
		case event.Key() == tcell.KeyEscape, event.Rune() == 'q':
			cl.App.Stop()
			return nil
		case event.Rune() == 't':
			cl.theme = cl.theme.Toggle()
			cl.log.Debug().Stringer("theme", cl.theme).Msg("theme toggled")
			cl.Render(cl.last)
			return nil
		}
		return event
	})
	return cl
}

// Render draws v. Outside of Run it must be called from the tview event loop.
func (cl *Client) Render(v match.View) {
	pal := cl.theme.Palette()
	bg, fg := tcellColor(pal.Background), tcellColor(pal.Text)
	for _, box := range []*tview.Box{cl.Layout.Box, cl.Board.Box, cl.History.Box, cl.Status.Box, cl.Header.Box} {
		box.SetBackgroundColor(bg)
	}
	cl.History.SetBackgroundColor(tcellColor(pal.Panel))
	for _, tv := range []*tview.TextView{cl.History, cl.Status, cl.Header} {
		tv.SetTextColor(fg)
	}

	cl.Header.SetText(fmt.Sprintf("AI vs AI Chess Battle  %s\n[t] %s   [q] quit", v.Name, cl.theme.ToggleLabel()))
	cl.renderTable(v, pal)
	if v.Ply != cl.last.Ply || cl.History.GetText(false) == "" {
		cl.History.SetText(historyText(v))
		cl.History.ScrollToEnd()
	}
	cl.Status.SetText(v.Status())
	cl.last = v
}

func (cl *Client) renderTable(v match.View, pal ui.Palette) {
	board := v.Board()
	var highlights map[chess.Square]bool
	if v.LastMove != nil {
		highlights = lastMoveSquares(v.LastMove)
	}

	for r := 0; r <= numrows; r++ {
		for f := 0; f <= numcols; f++ {
			if f == 0 && r != numrows {
				cell := tview.NewTableCell(chess.Rank(numrows - r - 1).String()).
					SetAlign(tview.AlignCenter).
					SetTextColor(tcellColor(pal.MutedText)).
					SetSelectable(false)
				cl.Board.SetCell(r, f, cell)
				continue
			}
			if r == numrows {
				label := ""
				if f > 0 {
					label = chess.File(f - 1).String()
				}
				cl.Board.SetCell(r, f, tview.NewTableCell(label).
					SetAlign(tview.AlignCenter).
					SetTextColor(tcellColor(pal.MutedText)).
					SetSelectable(false))
				continue
			}

			sq := posToSquare(r, f)
			glyph := " "
			if board != nil {
				if p := board.Piece(sq); p != chess.NoPiece {
					glyph = p.String()
				}
			}
			cell := tview.NewTableCell(" " + glyph + " ").
				SetAlign(tview.AlignCenter).
				SetTextColor(tcellColor(pal.BlackPiece)).
				SetBackgroundColor(tcellColor(squareToColor(sq, highlights, pal)))
			cl.Board.SetCell(r, f, cell)
		}
	}
}

// Run shows m until the user quits or ctx is done.
func Run(ctx context.Context, m *match.Match, theme ui.Theme, logger zerolog.Logger) error {
	cl := NewClient(theme, logger)
	views, cancel := m.Subscribe()
	defer cancel()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				cl.App.Stop()
				return
			case v, ok := <-views:
				if !ok {
					return
				}
				cl.App.QueueUpdateDraw(func() { cl.Render(v) })
			}
		}
	}()

	return cl.App.SetRoot(cl.Layout, true).SetFocus(cl.History).Run()
}

// posToSquare maps a table cell to a square, A1 bottom left. Column 0 holds
// the rank labels.
func posToSquare(row, col int) chess.Square {
	return chess.NewSquare(chess.File(col-1), chess.Rank(numrows-row-1))
}

func lastMoveSquares(last *match.Squares) map[chess.Square]bool {
	highlights := make(map[chess.Square]bool, 2)
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if name := sq.String(); name == last.From || name == last.To {
			highlights[sq] = true
		}
	}
	return highlights
}

func squareToColor(sq chess.Square, highlights map[chess.Square]bool, pal ui.Palette) color.RGBA {
	if highlights[sq] {
		return opaque(pal.Highlight)
	}
	if (int(sq.File())+int(sq.Rank()))%2 == 0 {
		return pal.DarkSquare
	}
	return pal.LightSquare
}

func historyText(v match.View) string {
	if len(v.Transcript) == 0 {
		return "Waiting for moves..."
	}
	return strings.Join(v.Transcript, "\n")
}

// opaque drops the alpha of a highlight colour; terminals can't blend.
func opaque(c color.RGBA) color.RGBA {
	c.A = 255
	return c
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
