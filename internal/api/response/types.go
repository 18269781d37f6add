package response

import (
	"github.com/mcoot/wordduel-go/internal/model"
)

// Snapshots are shared by the WebSocket protocol and the REST API. Field
// names follow the wire protocol of the game clients.

// Coordinate is a board position
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Tile is a placed tile
type Tile struct {
	Letter string     `json:"letter"`
	Coord  Coordinate `json:"coord"`
	Blank  bool       `json:"blank,omitempty"`
}

// TileFromModel converts a model.PlacedTile
func TileFromModel(t model.PlacedTile) Tile {
	return Tile{
		Letter: string(t.Letter),
		Coord:  Coordinate{Row: t.Position.Row, Col: t.Position.Col},
		Blank:  t.Blank,
	}
}

// ToModel converts a wire tile. Anything but a single character becomes
// an invalid letter and is rejected by placement validation.
func (t Tile) ToModel() model.PlacedTile {
	var letter rune
	if runes := []rune(t.Letter); len(runes) == 1 {
		letter = runes[0]
	}
	return model.PlacedTile{
		Letter:   letter,
		Position: model.Position{Row: t.Coord.Row, Col: t.Coord.Col},
		Blank:    t.Blank,
	}
}

func tilesFromModel(tiles []model.PlacedTile) []Tile {
	result := make([]Tile, len(tiles))
	for i, t := range tiles {
		result[i] = TileFromModel(t)
	}
	return result
}

// Cell is one board square. Letter and Premium are null when absent.
type Cell struct {
	Letter  *string `json:"letter"`
	Blank   bool    `json:"blank,omitempty"`
	Premium *string `json:"premium"`
}

// BoardFromModel converts the board to rows of cells
func BoardFromModel(b *model.Board) [][]Cell {
	rows := make([][]Cell, model.BoardSize)
	for row := 0; row < model.BoardSize; row++ {
		rows[row] = make([]Cell, model.BoardSize)
		for col := 0; col < model.BoardSize; col++ {
			cell := b.Cells[row][col]
			var c Cell
			if cell.Letter != 0 {
				letter := string(cell.Letter)
				c.Letter = &letter
				c.Blank = cell.Blank
			}
			if cell.Premium != model.PremiumNone {
				premium := string(cell.Premium)
				c.Premium = &premium
			}
			rows[row][col] = c
		}
	}
	return rows
}

// Player is a seat as seen by one viewer. Only the viewer's own rack is
// included; everyone else's is reduced to its size.
type Player struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Rack          []string `json:"rack,omitempty"`
	RackSize      int      `json:"rackSize"`
	Score         int      `json:"score"`
	TimeRemaining int64    `json:"timeRemaining"` // Milliseconds
	TimePenalty   int      `json:"timePenalty"`
	IsInOvertime  bool     `json:"isInOvertime"`
}

// PlayerFromModel converts a model.Player, including the rack if showRack
func PlayerFromModel(p *model.Player, showRack bool) Player {
	player := Player{
		ID:            string(p.ID),
		Name:          p.Name,
		RackSize:      len(p.Rack),
		Score:         p.Score,
		TimeRemaining: p.TimeRemaining.Milliseconds(),
		TimePenalty:   p.TimePenalty,
		IsInOvertime:  p.IsInOvertime,
	}
	if showRack {
		player.Rack = LettersFromModel(p.Rack)
	}
	return player
}

// LettersFromModel converts runes to one-character strings
func LettersFromModel(letters []rune) []string {
	result := make([]string, len(letters))
	for i, l := range letters {
		result[i] = string(l)
	}
	return result
}

// LettersToModel converts one-character strings to runes. Longer strings
// are kept whole so they fail as a missing letter.
func LettersToModel(letters []string) []rune {
	result := make([]rune, 0, len(letters))
	for _, l := range letters {
		runes := []rune(l)
		if len(runes) == 1 {
			result = append(result, runes[0])
		} else {
			result = append(result, 0)
		}
	}
	return result
}

// WordScore is a word formed by a move
type WordScore struct {
	Word  string `json:"word"`
	Score int    `json:"score"`
	Valid bool   `json:"valid"`
}

// Move is a committed move
type Move struct {
	ID              string            `json:"id"`
	PlayerID        string            `json:"playerId"`
	Tiles           []Tile            `json:"tiles"`
	Words           []WordScore       `json:"words"`
	TotalScore      int               `json:"totalScore"`
	IsBingo         bool              `json:"isBingo"`
	Timestamp       int64             `json:"timestamp"` // Unix milliseconds
	WordDefinitions map[string]string `json:"wordDefinitions,omitempty"`
}

// MoveFromModel converts a model.Move
func MoveFromModel(m model.Move) Move {
	words := make([]WordScore, len(m.Words))
	for i, w := range m.Words {
		words[i] = WordScore{Word: w.Word, Score: w.Score, Valid: w.Valid}
	}
	return Move{
		ID:              string(m.ID),
		PlayerID:        string(m.PlayerID),
		Tiles:           tilesFromModel(m.Tiles),
		Words:           words,
		TotalScore:      m.TotalScore,
		IsBingo:         m.IsBingo,
		Timestamp:       m.Timestamp.UnixMilli(),
		WordDefinitions: m.WordDefinitions,
	}
}

// PendingMove is a placement awaiting accept or challenge
type PendingMove struct {
	ByPlayerID  string `json:"byPlayerId"`
	Tiles       []Tile `json:"tiles"`
	PrimaryWord string `json:"primaryWord"`
}

// TileBagStats summarises the remaining tiles
type TileBagStats struct {
	TotalRemaining      int `json:"totalRemaining"`
	VowelsRemaining     int `json:"vowelsRemaining"`
	ConsonantsRemaining int `json:"consonantsRemaining"`
}

// Room is a room snapshot as seen by one viewer. The bag's contents are
// never sent, only its size.
type Room struct {
	ID                     string         `json:"id"`
	Phase                  string         `json:"phase"`
	Players                []Player       `json:"players"`
	Board                  [][]Cell       `json:"board"`
	BagCount               int            `json:"bagCount"`
	CurrentTurnPlayerID    string         `json:"currentTurnPlayerId,omitempty"`
	ChallengeMode          bool           `json:"challengeMode"`
	PendingMove            *PendingMove   `json:"pendingMove,omitempty"`
	LastMoveBingo          bool           `json:"lastMoveBingo"`
	TileBagStats           TileBagStats   `json:"tileBagStats"`
	GameEnded              bool           `json:"gameEnded"`
	Winner                 string         `json:"winner,omitempty"`
	FinalScores            map[string]int `json:"finalScores,omitempty"`
	EndReason              string         `json:"endReason,omitempty"`
	MoveHistory            []Move         `json:"moveHistory"`
	TimeLimit              int64          `json:"timeLimit,omitempty"` // Milliseconds
	TimerActive            bool           `json:"timerActive"`
	CurrentPlayerStartTime int64          `json:"currentPlayerStartTime,omitempty"` // Unix milliseconds
	CreatedAt              int64          `json:"createdAt"`                        // Unix milliseconds
}

// RoomFromModel converts a room for viewer. An empty viewer sees no racks.
func RoomFromModel(r *model.Room, viewer model.PlayerID) Room {
	players := make([]Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = PlayerFromModel(p, viewer != "" && p.ID == viewer)
	}

	history := make([]Move, len(r.MoveHistory))
	for i, m := range r.MoveHistory {
		history[i] = MoveFromModel(m)
	}

	room := Room{
		ID:                  string(r.ID),
		Phase:               string(r.Phase()),
		Players:             players,
		Board:               BoardFromModel(r.Board),
		BagCount:            len(r.Bag),
		CurrentTurnPlayerID: string(r.CurrentTurn),
		ChallengeMode:       r.ChallengeMode,
		LastMoveBingo:       r.LastMoveBingo,
		TileBagStats: TileBagStats{
			TotalRemaining:      r.TileBagStats.TotalRemaining,
			VowelsRemaining:     r.TileBagStats.VowelsRemaining,
			ConsonantsRemaining: r.TileBagStats.ConsonantsRemaining,
		},
		GameEnded:   r.GameEnded,
		Winner:      string(r.Winner),
		EndReason:   string(r.EndReason),
		MoveHistory: history,
		TimeLimit:   r.TimeLimit.Milliseconds(),
		TimerActive: r.HasTimer(),
		CreatedAt:   r.CreatedAt.UnixMilli(),
	}

	if r.PendingMove != nil {
		room.PendingMove = &PendingMove{
			ByPlayerID:  string(r.PendingMove.ByPlayerID),
			Tiles:       tilesFromModel(r.PendingMove.Tiles),
			PrimaryWord: r.PendingMove.PrimaryWord,
		}
	}
	if r.FinalScores != nil {
		room.FinalScores = make(map[string]int, len(r.FinalScores))
		for id, score := range r.FinalScores {
			room.FinalScores[string(id)] = score
		}
	}
	if !r.TurnStartedAt.IsZero() {
		room.CurrentPlayerStartTime = r.TurnStartedAt.UnixMilli()
	}
	return room
}

// RoomSummary is a room as listed on the status page and by the API
type RoomSummary struct {
	ID          string   `json:"id"`
	Phase       string   `json:"phase"`
	Players     []string `json:"players"`
	Scores      []int    `json:"scores"`
	TileCount   int      `json:"tilesOnBoard"`
	BagCount    int      `json:"bagCount"`
	Challenge   bool     `json:"challengeMode"`
	TimeLimit   int64    `json:"timeLimit,omitempty"`
	MovesPlayed int      `json:"movesPlayed"`
	Winner      string   `json:"winner,omitempty"`
}

// RoomSummaryFromModel converts a room to its summary
func RoomSummaryFromModel(r *model.Room) RoomSummary {
	summary := RoomSummary{
		ID:          string(r.ID),
		Phase:       string(r.Phase()),
		Players:     make([]string, len(r.Players)),
		Scores:      make([]int, len(r.Players)),
		TileCount:   r.Board.TileCount(),
		BagCount:    len(r.Bag),
		Challenge:   r.ChallengeMode,
		TimeLimit:   r.TimeLimit.Milliseconds(),
		MovesPlayed: len(r.MoveHistory),
		Winner:      string(r.Winner),
	}
	for i, p := range r.Players {
		summary.Players[i] = p.Name
		summary.Scores[i] = p.Score
	}
	return summary
}

// Health is the health check response
type Health struct {
	Status string `json:"status"`
	Rooms  int    `json:"rooms"`
}

// WordLookup is the response for a dictionary lookup
type WordLookup struct {
	Word       string `json:"word"`
	Valid      bool   `json:"valid"`
	Definition string `json:"definition,omitempty"`
}
