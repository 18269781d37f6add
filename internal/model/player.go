package model

import "time"

// PlayerID identifies a player. It is the id of the connection that
// created or joined the room.
type PlayerID string

// Player is a seat in a room
type Player struct {
	ID    PlayerID
	Name  string
	Rack  []rune // Up to RackSize tiles; Blank for blanks
	Score int

	// Timer state, only meaningful when the room has a time limit
	TimeRemaining time.Duration // May go negative in overtime
	TimePenalty   int           // Points charged for overtime
	IsInOvertime  bool
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	c := *p
	c.Rack = append([]rune(nil), p.Rack...)
	return &c
}
