package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/wordduel-go/internal/api/response"
	"github.com/mcoot/wordduel-go/internal/ws"
)

const playHelp = `Commands:
  create <name> [time-limit-seconds] [direct|challenge]
  join <room> <name>
  place <row> <col> <across|down> <WORD>   lower-case letters are played as blanks
  swap <LETTERS>                           use _ for a blank
  accept | challenge
  skip | resign | ping
  quit`

func newPlayCmd() *cobra.Command {
	var linger time.Duration

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play over the WebSocket protocol",
		Long: `Connect to the game server and send one command per input line.
Server messages are printed as they arrive.

` + playHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd.InOrStdin(), NewOutput(cfg.Output, cmd.OutOrStdout()), linger)
		},
	}

	cmd.Flags().DurationVar(&linger, "linger", time.Second, "How long to keep printing server messages after input ends")

	return cmd
}

// session tracks the room the player is in
type session struct {
	mu     sync.Mutex
	roomID string
}

func (s *session) room() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomID
}

func (s *session) setRoom(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomID = id
}

func play(in io.Reader, out *Output, linger time.Duration) error {
	conn, _, err := websocket.DefaultDialer.Dial(cfg.WebSocketURL(), nil)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = conn.Close() }()

	var sess session
	done := make(chan struct{})

	go func() {
		defer close(done)
		for {
			var msg ws.ServerMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			if msg.Type == ws.TypeRoomUpdate && msg.Room != nil {
				sess.setRoom(msg.Room.ID)
			}
			out.Print(msg)
		}
	}()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "quit" {
			break
		}

		msg, err := parseCommand(line, sess.room())
		if err != nil {
			out.PrintError(err)
			continue
		}
		if msg.Type == ws.TypeJoinRoom {
			// Later lines can target the room before the update arrives
			sess.setRoom(msg.RoomID)
		}

		if cfg.Verbose {
			_, _ = fmt.Fprintf(os.Stderr, "-> %s\n", msg.Type)
		}

		if err := conn.WriteJSON(msg); err != nil {
			return fmt.Errorf("send failed: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	select {
	case <-done:
	case <-time.After(linger):
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return nil
}

var errNoRoom = errors.New("not in a room yet: create or join one first")

// parseCommand turns one input line into a protocol message for roomID
func parseCommand(line, roomID string) (ws.ClientMessage, error) {
	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	needRoom := func(msg ws.ClientMessage) (ws.ClientMessage, error) {
		if roomID == "" {
			return ws.ClientMessage{}, errNoRoom
		}
		msg.RoomID = roomID
		return msg, nil
	}

	switch name {
	case "create":
		return parseCreate(args)
	case "join":
		if len(args) < 1 {
			return ws.ClientMessage{}, errors.New("usage: join <room> <name>")
		}
		return ws.ClientMessage{
			Type:       ws.TypeJoinRoom,
			RoomID:     strings.ToUpper(args[0]),
			PlayerName: strings.Join(args[1:], " "),
		}, nil
	case "place":
		tiles, err := parsePlacement(args)
		if err != nil {
			return ws.ClientMessage{}, err
		}
		return needRoom(ws.ClientMessage{Type: ws.TypePlaceWord, Tiles: tiles})
	case "swap":
		if len(args) != 1 {
			return ws.ClientMessage{}, errors.New("usage: swap <LETTERS>")
		}
		var letters []string
		for _, r := range strings.ToUpper(args[0]) {
			letters = append(letters, string(r))
		}
		return needRoom(ws.ClientMessage{Type: ws.TypeSwapTiles, Letters: letters})
	case "accept", "challenge":
		return needRoom(ws.ClientMessage{Type: ws.TypeResolveChallenge, Action: name})
	case "skip":
		return needRoom(ws.ClientMessage{Type: ws.TypeSkipTurn})
	case "resign":
		return needRoom(ws.ClientMessage{Type: ws.TypeResignGame})
	case "ping":
		return ws.ClientMessage{Type: ws.TypePing}, nil
	default:
		return ws.ClientMessage{}, fmt.Errorf("unknown command %q\n%s", name, playHelp)
	}
}

func parseCreate(args []string) (ws.ClientMessage, error) {
	msg := ws.ClientMessage{Type: ws.TypeCreateRoom}
	if len(args) > 0 {
		msg.PlayerName = args[0]
	}
	if len(args) > 1 {
		seconds, err := strconv.Atoi(args[1])
		if err != nil || seconds < 0 {
			return ws.ClientMessage{}, fmt.Errorf("invalid time limit %q", args[1])
		}
		ms := int64(seconds) * 1000
		msg.TimeLimitMs = &ms
	}
	if len(args) > 2 {
		var challenge bool
		switch args[2] {
		case "challenge":
			challenge = true
		case "direct":
		default:
			return ws.ClientMessage{}, fmt.Errorf("invalid mode %q: want direct or challenge", args[2])
		}
		msg.ChallengeMode = &challenge
	}
	return msg, nil
}

// parsePlacement lays a word out from a start square. Lower-case letters
// become blanks.
func parsePlacement(args []string) ([]response.Tile, error) {
	if len(args) != 4 {
		return nil, errors.New("usage: place <row> <col> <across|down> <WORD>")
	}
	row, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid row %q", args[0])
	}
	col, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("invalid col %q", args[1])
	}

	var dRow, dCol int
	switch args[2] {
	case "across":
		dCol = 1
	case "down":
		dRow = 1
	default:
		return nil, fmt.Errorf("invalid direction %q: want across or down", args[2])
	}

	var tiles []response.Tile
	for i, r := range []rune(args[3]) {
		tiles = append(tiles, response.Tile{
			Letter: string(unicode.ToUpper(r)),
			Coord:  response.Coordinate{Row: row + i*dRow, Col: col + i*dCol},
			Blank:  unicode.IsLower(r),
		})
	}
	return tiles, nil
}
