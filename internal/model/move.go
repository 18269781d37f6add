package model

import "time"

// PlacedTile is one tile of a placement
type PlacedTile struct {
	Letter   rune // A-Z, the letter shown on the board
	Position Position
	Blank    bool // Set by the client to force a blank, or resolved by the rack check
}

// WordScore is a word formed by a move
type WordScore struct {
	Word  string
	Score int
	Valid bool
}

// MoveID identifies a committed move
type MoveID string

// Move is an immutable record of a committed placement
type Move struct {
	ID              MoveID
	PlayerID        PlayerID
	Tiles           []PlacedTile
	Words           []WordScore
	TotalScore      int // Including the bingo bonus
	IsBingo         bool
	Timestamp       time.Time
	WordDefinitions map[string]string // Only for valid words with a known definition
}

// PendingMove is a placement awaiting accept or challenge
type PendingMove struct {
	ByPlayerID   PlayerID
	Tiles        []PlacedTile
	PrimaryWord  string
	PreviousRack []rune // Rack before the tiles were consumed
	Drawn        []rune // Replacement tiles drawn from the bag, in draw order
}

// Clone returns a deep copy of the pending move
func (p *PendingMove) Clone() *PendingMove {
	if p == nil {
		return nil
	}
	c := *p
	c.Tiles = append([]PlacedTile(nil), p.Tiles...)
	c.PreviousRack = append([]rune(nil), p.PreviousRack...)
	c.Drawn = append([]rune(nil), p.Drawn...)
	return &c
}

// FormedWord is a run of two or more letters created by a placement,
// including letters already on the board
type FormedWord struct {
	Text  string
	Tiles []PlacedTile // Every letter of the word in reading order
}
