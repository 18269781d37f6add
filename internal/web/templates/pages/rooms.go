package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/mcoot/wordduel-go/internal/api/response"
	"github.com/mcoot/wordduel-go/internal/web/templates/layout"
)

// RoomsData is the data for the room list
type RoomsData struct {
	layout.PageData
	Rooms []response.RoomSummary
}

// Rooms renders the list of live rooms
func Rooms(data RoomsData) templ.Component {
	return layout.Base(data.PageData, roomList(data.Rooms))
}

func roomList(rooms []response.RoomSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := layout.NewWriter(out)
		w.Raw(`<h2>Live rooms</h2>`)
		if len(rooms) == 0 {
			w.Raw(`<p class="empty">No rooms yet. Connect a client to /ws and send create_room.</p>`)
			return w.Err()
		}

		w.Raw(`<table class="rooms"><thead><tr><th>Room</th><th>Phase</th><th>Players</th><th>Moves</th><th>Bag</th><th>Mode</th></tr></thead><tbody>`)
		for _, room := range rooms {
			w.Raw(`<tr class="room"`)
			w.Attr("data-room-id", room.ID)
			w.Raw(`><td><a`)
			w.Href("/rooms/" + room.ID)
			w.Raw(`>`)
			w.Text(room.ID)
			w.Raw(`</a></td><td class="phase">`)
			w.Text(room.Phase)
			w.Raw(`</td><td class="players">`)
			for i, name := range room.Players {
				if i > 0 {
					w.Raw(", ")
				}
				w.Textf("%s (%d)", name, room.Scores[i])
			}
			w.Raw(`</td><td class="moves">`)
			w.Textf("%d", room.MovesPlayed)
			w.Raw(`</td><td class="bag">`)
			w.Textf("%d", room.BagCount)
			w.Raw(`</td><td class="mode">`)
			if room.Challenge {
				w.Raw("challenge")
			} else {
				w.Raw("direct")
			}
			w.Raw(`</td></tr>`)
		}
		w.Raw(`</tbody></table>`)
		return w.Err()
	})
}
