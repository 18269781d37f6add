package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mcoot/wordduel-go/internal/api/response"
	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/ws"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer
}

// NewOutput creates a new Output formatter writing to w. Errors go to
// stderr.
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w, errW: os.Stderr}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errW, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		o.println(string(data))
	} else {
		o.println(msg)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) println(args ...any) {
	_, _ = fmt.Fprintln(o.w, args...)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Health:
		o.printHealth(v)
	case []response.RoomSummary:
		o.printRoomList(v)
	case response.Room:
		o.printRoom(v, nil)
	case response.WordLookup:
		o.printWordLookup(v)
	case ws.ServerMessage:
		o.printServerMessage(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printHealth(h response.Health) {
	o.printf("Status: %s\n", h.Status)
	o.printf("Rooms: %d\n", h.Rooms)
}

func (o *Output) printRoomList(rooms []response.RoomSummary) {
	if len(rooms) == 0 {
		o.println("No rooms")
		return
	}
	for _, r := range rooms {
		seats := make([]string, len(r.Players))
		for i, name := range r.Players {
			seats[i] = fmt.Sprintf("%s (%d)", name, r.Scores[i])
		}
		mode := "direct"
		if r.Challenge {
			mode = "challenge"
		}
		o.printf("%s  %-20s  %-9s  moves %-3d bag %-3d %s\n",
			r.ID, r.Phase, mode, r.MovesPlayed, r.BagCount, strings.Join(seats, ", "))
	}
}

func (o *Output) printWordLookup(w response.WordLookup) {
	if !w.Valid {
		o.printf("%s: not a valid word\n", w.Word)
		return
	}
	o.printf("%s: valid\n", w.Word)
	if w.Definition != "" {
		o.printf("  %s\n", w.Definition)
	}
}

func (o *Output) printServerMessage(m ws.ServerMessage) {
	switch m.Type {
	case ws.TypeConnected:
		o.printf("Connected as %s\n", m.ClientID)
	case ws.TypeRoomUpdate:
		if m.Room != nil {
			o.printRoom(*m.Room, m.You)
		}
	case ws.TypeError:
		if hint := errorHint(m.Error); hint != "" {
			o.printf("Error: %s (%s)\n", m.Error, hint)
		} else {
			o.printf("Error: %s\n", m.Error)
		}
	case ws.TypePong:
		o.printf("pong %d\n", m.T)
	default:
		o.printJSON(m)
	}
}

func (o *Output) printRoom(r response.Room, you *response.Player) {
	o.printf("Room: %s\n", r.ID)
	o.printf("Phase: %s\n", r.Phase)
	if r.ChallengeMode {
		o.println("Mode: challenge")
	} else {
		o.println("Mode: direct")
	}
	if r.TimeLimit > 0 {
		o.printf("Time Limit: %s\n", time.Duration(r.TimeLimit)*time.Millisecond)
	}

	o.printf("Players (%d):\n", len(r.Players))
	for _, p := range r.Players {
		marker := "  "
		if p.ID == r.CurrentTurnPlayerID && !r.GameEnded {
			marker = "> "
		}
		o.printf("  %s%s: %d points, %d tiles", marker, p.Name, p.Score, p.RackSize)
		if r.TimeLimit > 0 {
			o.printf(", %s left", time.Duration(p.TimeRemaining)*time.Millisecond)
		}
		if p.IsInOvertime {
			o.printf(" (overtime -%d)", p.TimePenalty)
		}
		o.println()
	}

	o.println()
	o.printBoard(r.Board)
	o.printf("\nBag: %d tiles (%d vowels, %d consonants)\n",
		r.BagCount, r.TileBagStats.VowelsRemaining, r.TileBagStats.ConsonantsRemaining)

	if n := len(r.MoveHistory); n > 0 {
		last := r.MoveHistory[n-1]
		words := make([]string, len(last.Words))
		for i, w := range last.Words {
			words[i] = fmt.Sprintf("%s (%d)", w.Word, w.Score)
		}
		o.printf("Last Move: %s for %d", strings.Join(words, ", "), last.TotalScore)
		if last.IsBingo {
			o.printf(" BINGO")
		}
		o.println()
	}

	if r.PendingMove != nil {
		o.printf("Pending: %s awaiting accept or challenge\n", r.PendingMove.PrimaryWord)
	}

	if r.GameEnded {
		o.printf("\nGame over (%s)\n", r.EndReason)
		if r.Winner != "" {
			o.printf("Winner: %s\n", playerName(r.Players, r.Winner))
		} else {
			o.println("Result: draw")
		}
		for _, p := range r.Players {
			if score, ok := r.FinalScores[p.ID]; ok {
				o.printf("  %s: %d\n", p.Name, score)
			}
		}
	}

	if you != nil && len(you.Rack) > 0 {
		o.printf("Your Rack: %s\n", strings.Join(you.Rack, " "))
	}
}

// premiumMarks shows empty premium squares
var premiumMarks = map[string]string{
	"TW":   "#",
	"DW":   "=",
	"TL":   "+",
	"DL":   "-",
	"STAR": "*",
}

func (o *Output) printBoard(board [][]response.Cell) {
	if len(board) == 0 {
		return
	}

	size := len(board)

	// Print column headers
	o.printf("    ")
	for col := 0; col < size; col++ {
		o.printf("%3d", col)
	}
	o.println()

	// Print top border
	o.printf("   +")
	for col := 0; col < size; col++ {
		o.printf("---")
	}
	o.println("+")

	// Print rows
	for row := 0; row < size; row++ {
		o.printf("%3d|", row)
		for col := 0; col < size; col++ {
			cell := board[row][col]
			switch {
			case cell.Letter != nil && cell.Blank:
				o.printf("  %s", strings.ToLower(*cell.Letter))
			case cell.Letter != nil:
				o.printf("  %s", *cell.Letter)
			case cell.Premium != nil:
				o.printf("  %s", premiumMarks[*cell.Premium])
			default:
				o.printf("  .")
			}
		}
		o.println(" |")
	}

	// Print bottom border
	o.printf("   +")
	for col := 0; col < size; col++ {
		o.printf("---")
	}
	o.println("+")
}

// errorHint explains the codes a player is most likely to hit
func errorHint(code string) string {
	err := model.ParseCode(code)
	switch {
	case errors.Is(err, model.ErrInsufficientLetters) && err.Letter != 0:
		return fmt.Sprintf("your rack has no %c", err.Letter)
	case errors.Is(err, model.ErrNotYourTurn):
		return "wait for your opponent to move"
	case errors.Is(err, model.ErrPendingMoveUnresolved):
		return "the last word must be accepted or challenged first"
	case errors.Is(err, model.ErrInvalidWords):
		return "a word formed is not in the dictionary"
	case errors.Is(err, model.ErrFirstMoveNotOnStar):
		return "the first word must cover 7 7"
	default:
		return ""
	}
}

func playerName(players []response.Player, id string) string {
	for _, p := range players {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}
