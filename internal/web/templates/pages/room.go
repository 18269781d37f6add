package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/wordduel-go/internal/api/response"
	"github.com/mcoot/wordduel-go/internal/web/templates/layout"
)

// RoomData is the data for a spectator's view of one room. Room must be
// built without a viewer so no rack is present.
type RoomData struct {
	layout.PageData
	Room   response.Room
	Winner string
}

// Room renders the board, scores and move history of a room
func Room(data RoomData) templ.Component {
	return layout.Base(data.PageData, roomView(data))
}

func roomView(data RoomData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		room := data.Room
		w := layout.NewWriter(out)

		w.Raw(`<h2>Room <span class="room-id">`)
		w.Text(room.ID)
		w.Raw(`</span></h2><p class="phase">`)
		w.Text(room.Phase)
		w.Raw(`</p>`)
		if room.GameEnded {
			w.Raw(`<p class="result">`)
			if data.Winner != "" {
				w.Raw(`Winner: <span class="winner">`)
				w.Text(data.Winner)
				w.Raw(`</span>`)
			} else {
				w.Raw("Tied")
			}
			w.Textf(" (%s)", room.EndReason)
			w.Raw(`</p>`)
		}

		w.Raw(`<table class="scores">`)
		for _, p := range room.Players {
			class := "player"
			if p.ID == room.CurrentTurnPlayerID && !room.GameEnded {
				class += " current"
			}
			w.Raw(`<tr`)
			w.Attr("class", class)
			w.Attr("data-player-id", p.ID)
			w.Raw(`><td class="name">`)
			w.Text(p.Name)
			w.Raw(`</td><td class="score">`)
			w.Textf("%d", p.Score)
			w.Raw(`</td><td class="rack-size">`)
			w.Textf("%d tiles", p.RackSize)
			w.Raw(`</td></tr>`)
		}
		w.Raw(`</table>`)

		w.Component(ctx, board(room.Board))

		w.Raw(`<h3>Moves</h3><ol class="moves">`)
		for _, m := range room.MoveHistory {
			w.Raw(`<li class="move">`)
			for i, word := range m.Words {
				if i > 0 {
					w.Raw(", ")
				}
				w.Text(word.Word)
			}
			w.Textf(" for %d", m.TotalScore)
			if m.IsBingo {
				w.Raw(" (bingo)")
			}
			w.Raw(`</li>`)
		}
		w.Raw(`</ol>`)
		return w.Err()
	})
}

func board(rows [][]response.Cell) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := layout.NewWriter(out)
		w.Raw(`<table class="board">`)
		for _, row := range rows {
			w.Raw(`<tr>`)
			for _, cell := range row {
				switch {
				case cell.Letter != nil:
					class := "tile"
					if cell.Blank {
						class += " blank"
					}
					w.Raw(`<td`)
					w.Attr("class", class)
					w.Raw(`>`)
					w.Text(*cell.Letter)
					w.Raw(`</td>`)
				case cell.Premium != nil:
					w.Raw(`<td`)
					w.Attr("class", *cell.Premium)
					w.Raw(`></td>`)
				default:
					w.Raw(`<td></td>`)
				}
			}
			w.Raw(`</tr>`)
		}
		w.Raw(`</table>`)
		return w.Err()
	})
}
