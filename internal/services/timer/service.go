package timer

import (
	"time"

	"github.com/mcoot/wordduel-go/internal/dependencies/clock"
	"github.com/mcoot/wordduel-go/internal/model"
)

const (
	// OvertimePenalty is charged on entering overtime and for every full
	// minute spent in it
	OvertimePenalty = 10

	// ForfeitAfter is how far past zero a clock may run before forfeit
	ForfeitAfter = time.Minute
)

// Service runs the per-player turn clocks
type Service struct {
	clock clock.Clock
}

// New creates a new TimerService
func New(clock clock.Clock) *Service {
	return &Service{
		clock: clock,
	}
}

// StartTurn starts the clock for whoever holds the turn
func (s *Service) StartTurn(room *model.Room) {
	if !room.HasTimer() {
		return
	}
	room.TurnStartedAt = s.clock.Now()
}

// CloseTurn charges the time since the turn started to player and stops
// the clock. It reports whether the player has now forfeited.
func (s *Service) CloseTurn(room *model.Room, player *model.Player) bool {
	if !room.HasTimer() || room.TurnStartedAt.IsZero() {
		return false
	}

	elapsed := s.clock.Now().Sub(room.TurnStartedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	room.TurnStartedAt = time.Time{}

	player.TimeRemaining -= elapsed
	if player.TimeRemaining <= 0 {
		overtimeThisTurn := -player.TimeRemaining
		if !player.IsInOvertime {
			player.IsInOvertime = true
			player.TimePenalty += OvertimePenalty
		} else if overtimeThisTurn > elapsed {
			overtimeThisTurn = elapsed
		}
		player.TimePenalty += OvertimePenalty * int(overtimeThisTurn/time.Minute)
	}

	return s.IsForfeit(player)
}

// IsForfeit reports whether a player has run a full minute past zero
func (s *Service) IsForfeit(player *model.Player) bool {
	return player.IsInOvertime && player.TimeRemaining <= -ForfeitAfter
}

// Interface for dependency injection
type ServiceInterface interface {
	StartTurn(room *model.Room)
	CloseTurn(room *model.Room, player *model.Player) bool
	IsForfeit(player *model.Player) bool
}

var _ ServiceInterface = (*Service)(nil)
