package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordduel-go/internal/dependencies/mocks"
	"github.com/mcoot/wordduel-go/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
	room    *model.Room
	player  *model.Player
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.clock)
	s.player = &model.Player{ID: "p1", TimeRemaining: 3 * time.Minute}
	s.room = &model.Room{
		ID:        "ROOM01",
		Players:   []*model.Player{s.player},
		Board:     model.NewBoard(),
		TimeLimit: 3 * time.Minute,
	}
}

func (s *ServiceSuite) playTurn(d time.Duration) bool {
	s.service.StartTurn(s.room)
	s.clock.Advance(d)
	return s.service.CloseTurn(s.room, s.player)
}

func (s *ServiceSuite) TestStartTurnStampsClock() {
	s.service.StartTurn(s.room)
	s.Equal(s.clock.Now(), s.room.TurnStartedAt)
}

func (s *ServiceSuite) TestNoTimerIsNoop() {
	s.room.TimeLimit = 0
	s.False(s.playTurn(time.Hour))
	s.True(s.room.TurnStartedAt.IsZero())
	s.Equal(3*time.Minute, s.player.TimeRemaining)
}

func (s *ServiceSuite) TestCloseTurnSubtractsElapsed() {
	s.False(s.playTurn(40 * time.Second))
	s.Equal(140*time.Second, s.player.TimeRemaining)
	s.False(s.player.IsInOvertime)
	s.Zero(s.player.TimePenalty)
	s.True(s.room.TurnStartedAt.IsZero())
}

func (s *ServiceSuite) TestEnteringOvertimeChargesPenalty() {
	s.False(s.playTurn(3*time.Minute + 10*time.Second))
	s.True(s.player.IsInOvertime)
	s.Equal(-10*time.Second, s.player.TimeRemaining)
	s.Equal(10, s.player.TimePenalty)
}

func (s *ServiceSuite) TestReachingZeroExactlyEntersOvertime() {
	s.False(s.playTurn(3 * time.Minute))
	s.True(s.player.IsInOvertime)
	s.Equal(10, s.player.TimePenalty)
}

func (s *ServiceSuite) TestOvertimeAccumulatesAcrossTurns() {
	s.playTurn(3*time.Minute + 10*time.Second)
	s.False(s.playTurn(20 * time.Second))
	s.Equal(-30*time.Second, s.player.TimeRemaining)
	s.Equal(10, s.player.TimePenalty)
}

func (s *ServiceSuite) TestForfeitAfterFullMinuteOfOvertime() {
	s.True(s.playTurn(4 * time.Minute))
	s.True(s.service.IsForfeit(s.player))
	// Entry penalty plus one full minute
	s.Equal(20, s.player.TimePenalty)
}

func (s *ServiceSuite) TestJustUnderForfeitThreshold() {
	s.False(s.playTurn(4*time.Minute - time.Millisecond))
	s.False(s.service.IsForfeit(s.player))
}

func (s *ServiceSuite) TestCloseWithoutStartIsNoop() {
	s.False(s.service.CloseTurn(s.room, s.player))
	s.Equal(3*time.Minute, s.player.TimeRemaining)
}
