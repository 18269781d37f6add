package endgame

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/services/scoring"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	room    *model.Room
	alice   *model.Player
	bob     *model.Player
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(scoring.New())
	s.alice = &model.Player{ID: "alice", Rack: []rune("AB"), Score: 40}
	s.bob = &model.Player{ID: "bob", Rack: []rune("QZ_"), Score: 55}
	s.room = &model.Room{
		ID:          "ROOM01",
		Players:     []*model.Player{s.alice, s.bob},
		Board:       model.NewBoard(),
		Bag:         []rune("XYZ"),
		CurrentTurn: "alice",
	}
}

// Evaluate tests

func (s *ServiceSuite) TestEvaluateContinuesWhileBagHasTiles() {
	s.alice.Rack = nil
	s.False(s.service.Evaluate(s.room))
	s.False(s.room.GameEnded)
}

func (s *ServiceSuite) TestEvaluateRackEmptyTransfersRackValue() {
	s.room.Bag = nil
	s.alice.Rack = nil

	s.True(s.service.Evaluate(s.room))
	s.True(s.room.GameEnded)
	s.Equal(model.PlayerID("alice"), s.room.Winner)
	s.Equal(model.EndReasonRackEmpty, s.room.EndReason)
	// Q(10) + Z(10) + blank(0)
	s.Equal(60, s.alice.Score)
	s.Equal(35, s.bob.Score)
	s.Equal(map[model.PlayerID]int{"alice": 60, "bob": 35}, s.room.FinalScores)
}

func (s *ServiceSuite) TestEvaluateBagEmptyHighestScoreWins() {
	s.room.Bag = nil

	s.True(s.service.Evaluate(s.room))
	s.Equal(model.PlayerID("bob"), s.room.Winner)
	s.Equal(model.EndReasonBagEmpty, s.room.EndReason)
	s.Equal(map[model.PlayerID]int{"alice": 40, "bob": 55}, s.room.FinalScores)
}

func (s *ServiceSuite) TestEvaluateBagEmptyTieHasNoWinner() {
	s.room.Bag = nil
	s.alice.Score = 55

	s.True(s.service.Evaluate(s.room))
	s.Empty(s.room.Winner)
}

func (s *ServiceSuite) TestEvaluateWaitsForSecondPlayer() {
	s.room.Players = []*model.Player{s.alice}
	s.room.Bag = nil
	s.False(s.service.Evaluate(s.room))
}

// Resign tests

func (s *ServiceSuite) TestResignTransfersRackValueToOpponent() {
	err := s.service.Resign(s.room, s.bob)
	s.Require().NoError(err)

	s.True(s.room.GameEnded)
	s.Equal(model.PlayerID("alice"), s.room.Winner)
	s.Equal(model.EndReasonResigned, s.room.EndReason)
	s.Equal(60, s.alice.Score)
	s.Equal(35, s.bob.Score)
}

func (s *ServiceSuite) TestResignWithoutOpponent() {
	s.room.Players = []*model.Player{s.alice}
	s.ErrorIs(s.service.Resign(s.room, s.alice), model.ErrNoOpponent)
	s.False(s.room.GameEnded)
}

func (s *ServiceSuite) TestResignClearsPendingMove() {
	s.room.PendingMove = &model.PendingMove{ByPlayerID: "alice"}
	s.Require().NoError(s.service.Resign(s.room, s.alice))
	s.Nil(s.room.PendingMove)
}

// Forfeit tests

func (s *ServiceSuite) TestForfeitAppliesPenalty() {
	s.bob.TimePenalty = 20
	s.service.Forfeit(s.room, s.bob)

	s.True(s.room.GameEnded)
	s.Equal(model.PlayerID("alice"), s.room.Winner)
	s.Equal(model.EndReasonForfeit, s.room.EndReason)
	s.Equal(map[model.PlayerID]int{"alice": 40, "bob": 35}, s.room.FinalScores)
}
