package model

import (
	"maps"
	"time"
)

// RoomID is a short code players use to join a room
type RoomID string

// MaxPlayers is the number of seats in a room
const MaxPlayers = 2

// Phase is the turn-protocol state of a room, derived from its fields
type Phase string

const (
	PhaseWaitingForPlayers Phase = "waiting_for_players"           // Only the owner has joined
	PhaseAwaitingMove      Phase = "awaiting_move"                 // Current player may place, swap, skip or resign
	PhaseAwaitingChallenge Phase = "awaiting_challenge_resolution" // Non-mover must accept or challenge
	PhaseEnded             Phase = "ended"                         // Terminal
)

// EndReason records which termination condition ended the game
type EndReason string

const (
	EndReasonRackEmpty EndReason = "rack_empty"
	EndReasonBagEmpty  EndReason = "bag_empty"
	EndReasonResigned  EndReason = "resigned"
	EndReasonForfeit   EndReason = "forfeit"
)

// MaxTimeLimit is the longest per-player clock a room may be created with
const MaxTimeLimit = 24 * time.Hour

// RoomOptions are chosen by the owner at creation
type RoomOptions struct {
	TimeLimit     time.Duration // Zero disables the timer
	ChallengeMode bool
}

// Room is the authoritative state of one game
type Room struct {
	ID      RoomID
	Players []*Player // Ordered by join, at most MaxPlayers
	Board   *Board
	Bag     []rune // Stack; the end of the slice is the top

	CurrentTurn   PlayerID
	ChallengeMode bool
	PendingMove   *PendingMove // Only set in challenge mode while a move awaits resolution
	MoveHistory   []Move       // Most recent first
	LastMoveBingo bool
	TileBagStats  TileBagStats

	// End state
	GameEnded   bool
	Winner      PlayerID // Empty on a tie
	FinalScores map[PlayerID]int
	EndReason   EndReason

	// Timer
	TimeLimit     time.Duration
	TurnStartedAt time.Time // Zero while no clock is running

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Player returns the player with the given id, or nil
func (r *Room) Player(id PlayerID) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Opponent returns the other player in the room, or nil
func (r *Room) Opponent(id PlayerID) *Player {
	for _, p := range r.Players {
		if p.ID != id {
			return p
		}
	}
	return nil
}

// IsFull returns true once both seats are taken
func (r *Room) IsFull() bool {
	return len(r.Players) >= MaxPlayers
}

// HasTimer returns true if turns are clocked
func (r *Room) HasTimer() bool {
	return r.TimeLimit > 0
}

// Phase derives the current turn-protocol state
func (r *Room) Phase() Phase {
	switch {
	case r.GameEnded:
		return PhaseEnded
	case !r.IsFull():
		return PhaseWaitingForPlayers
	case r.PendingMove != nil:
		return PhaseAwaitingChallenge
	default:
		return PhaseAwaitingMove
	}
}

// TileCount returns the number of tiles across bag, racks and board. It
// equals TotalTiles for every room at every observation point.
func (r *Room) TileCount() int {
	total := len(r.Bag) + r.Board.TileCount()
	for _, p := range r.Players {
		total += len(p.Rack)
	}
	return total
}

// Clone returns a deep copy. Operations mutate a clone and publish it only
// on success, so a published room is never written again.
func (r *Room) Clone() *Room {
	c := *r
	c.Players = make([]*Player, len(r.Players))
	for i, p := range r.Players {
		c.Players[i] = p.Clone()
	}
	c.Board = r.Board.Clone()
	c.Bag = append([]rune(nil), r.Bag...)
	c.PendingMove = r.PendingMove.Clone()
	c.MoveHistory = append([]Move(nil), r.MoveHistory...)
	if r.FinalScores != nil {
		c.FinalScores = maps.Clone(r.FinalScores)
	}
	return &c
}
