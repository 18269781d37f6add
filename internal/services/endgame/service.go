package endgame

import (
	"time"

	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/services/scoring"
)

// Service detects and applies game termination
type Service struct {
	scoring *scoring.Service
}

// New creates a new EndGameService
func New(scoring *scoring.Service) *Service {
	return &Service{
		scoring: scoring,
	}
}

// Evaluate checks the rack-empty then bag-empty conditions and ends the
// game if either holds. It reports whether the game ended.
func (s *Service) Evaluate(room *model.Room) bool {
	if room.GameEnded || !room.IsFull() {
		return room.GameEnded
	}

	if len(room.Bag) == 0 {
		for _, p := range room.Players {
			if len(p.Rack) == 0 {
				s.finishOnEmptyRack(room, p)
				return true
			}
		}
		s.finish(room, leader(room.Players), model.EndReasonBagEmpty)
		return true
	}
	return false
}

// finishOnEmptyRack moves every other player's rack value to the player
// who went out
func (s *Service) finishOnEmptyRack(room *model.Room, winner *model.Player) {
	for _, p := range room.Players {
		if p.ID == winner.ID {
			continue
		}
		value := s.scoring.RackValue(p.Rack)
		p.Score -= value
		winner.Score += value
	}
	s.finish(room, winner.ID, model.EndReasonRackEmpty)
}

// Resign ends the game in the opponent's favour and moves the resigning
// player's rack value to the opponent
func (s *Service) Resign(room *model.Room, player *model.Player) error {
	opponent := room.Opponent(player.ID)
	if opponent == nil {
		return model.ErrNoOpponent
	}

	value := s.scoring.RackValue(player.Rack)
	player.Score -= value
	opponent.Score += value
	s.finish(room, opponent.ID, model.EndReasonResigned)
	return nil
}

// Forfeit ends the game after a player's clock ran out. The forfeiting
// player's accumulated time penalty comes off their final score.
func (s *Service) Forfeit(room *model.Room, player *model.Player) {
	opponent := room.Opponent(player.ID)
	var winner model.PlayerID
	if opponent != nil {
		winner = opponent.ID
	}
	player.Score -= player.TimePenalty
	s.finish(room, winner, model.EndReasonForfeit)
}

func (s *Service) finish(room *model.Room, winner model.PlayerID, reason model.EndReason) {
	room.GameEnded = true
	room.Winner = winner
	room.EndReason = reason
	room.PendingMove = nil
	room.TurnStartedAt = time.Time{}
	room.FinalScores = make(map[model.PlayerID]int, len(room.Players))
	for _, p := range room.Players {
		room.FinalScores[p.ID] = p.Score
	}
}

// leader returns the single highest scorer, or empty on a tie
func leader(players []*model.Player) model.PlayerID {
	var best *model.Player
	tied := false
	for _, p := range players {
		switch {
		case best == nil || p.Score > best.Score:
			best = p
			tied = false
		case p.Score == best.Score:
			tied = true
		}
	}
	if best == nil || tied {
		return ""
	}
	return best.ID
}

// Interface for dependency injection
type ServiceInterface interface {
	Evaluate(room *model.Room) bool
	Resign(room *model.Room, player *model.Player) error
	Forfeit(room *model.Room, player *model.Player)
}

var _ ServiceInterface = (*Service)(nil)
