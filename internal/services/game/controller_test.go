package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordduel-go/internal/dependencies/mocks"
	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/services/board"
	"github.com/mcoot/wordduel-go/internal/services/dictionary"
	"github.com/mcoot/wordduel-go/internal/services/endgame"
	"github.com/mcoot/wordduel-go/internal/services/registry"
	"github.com/mcoot/wordduel-go/internal/services/scoring"
	"github.com/mcoot/wordduel-go/internal/services/tilebag"
	"github.com/mcoot/wordduel-go/internal/services/timer"
	"github.com/mcoot/wordduel-go/internal/storage/memory"
	"github.com/mcoot/wordduel-go/internal/testutil"
)

const roomID = model.RoomID("ROOM01")

// definingSource is a word list that also knows one definition
type definingSource struct {
	*dictionary.WordListSource
}

func (d definingSource) Definition(ctx context.Context, word string) (string, error) {
	if word == "HELLO" {
		return "Used as a greeting", nil
	}
	return "", nil
}

type ControllerSuite struct {
	suite.Suite
	registry   *registry.Registry
	clock      *mocks.MockClock
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	logger := testutil.NopLogger()
	storage := memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.registry = registry.New(storage, s.clock, logger)

	words := dictionary.NewWordListSource(storage)
	words.LoadWords([]string{"hello", "cat", "at", "he", "retains"})
	dictService := dictionary.New(definingSource{words}, storage, dictionary.DefaultConfig(), logger)

	scoringService := scoring.New()
	tilebagService := tilebag.New(mocks.NewMockRandom())
	s.controller = NewController(
		s.registry,
		board.New(),
		scoringService,
		tilebagService,
		timer.New(s.clock),
		endgame.New(scoringService),
		dictService,
		s.clock,
		logger,
	)
	s.ctx = context.Background()
}

func (s *ControllerSuite) TearDownTest() {
	s.registry.Close()
}

// newRoom builds a started two-player room with alice to move
func (s *ControllerSuite) newRoom(aliceRack, bobRack, bag string) *model.Room {
	return &model.Room{
		ID: roomID,
		Players: []*model.Player{
			{ID: "alice", Name: "Alice", Rack: []rune(aliceRack)},
			{ID: "bob", Name: "Bob", Rack: []rune(bobRack)},
		},
		Board:       model.NewBoard(),
		Bag:         []rune(bag),
		CurrentTurn: "alice",
		MoveHistory: []model.Move{},
		CreatedAt:   s.clock.Now(),
		UpdatedAt:   s.clock.Now(),
	}
}

func (s *ControllerSuite) insert(room *model.Room) *model.Room {
	inserted, err := s.registry.Insert(s.ctx, room)
	s.Require().NoError(err)
	return inserted
}

func (s *ControllerSuite) current() *model.Room {
	room, err := s.registry.Get(s.ctx, roomID)
	s.Require().NoError(err)
	return room
}

func across(word string, row, col int) []model.PlacedTile {
	tiles := make([]model.PlacedTile, 0, len(word))
	for i, letter := range word {
		tiles = append(tiles, model.PlacedTile{Letter: letter, Position: model.Position{Row: row, Col: col + i}})
	}
	return tiles
}

// PlaceWord tests

func (s *ControllerSuite) TestPlaceWordScoresHello() {
	before := s.insert(s.newRoom("HELLOAB", "QZXJKVW", "AEIOURSTLN"))

	room, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 7, 6))
	s.Require().NoError(err)

	alice := room.Player("alice")
	s.Equal(16, alice.Score)
	s.Len(alice.Rack, model.RackSize)
	s.Equal([]rune("ABNLTSR"), alice.Rack)
	s.Len(room.Bag, 5)
	s.Equal(before.TileCount(), room.TileCount())
	s.Equal(model.PlayerID("bob"), room.CurrentTurn)
	s.False(room.LastMoveBingo)
	s.Equal(5, room.TileBagStats.TotalRemaining)

	s.Require().Len(room.MoveHistory, 1)
	move := room.MoveHistory[0]
	s.NotEmpty(move.ID)
	s.Equal(model.PlayerID("alice"), move.PlayerID)
	s.Equal([]model.WordScore{{Word: "HELLO", Score: 16, Valid: true}}, move.Words)
	s.Equal(16, move.TotalScore)
	s.False(move.IsBingo)
	s.Equal(s.clock.Now(), move.Timestamp)
	s.Equal(map[string]string{"HELLO": "Used as a greeting"}, move.WordDefinitions)
}

func (s *ControllerSuite) TestPlaceWordPremiumUnderLastLetter() {
	s.insert(s.newRoom("HELLOAB", "QZXJKVW", "AEIOURSTLN"))

	room, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 7, 7))
	s.Require().NoError(err)

	// O lands on the double letter at (7,11)
	s.Equal(18, room.Player("alice").Score)
}

func (s *ControllerSuite) TestPlaceWordAcceptsLowerCase() {
	s.insert(s.newRoom("HELLOAB", "QZXJKVW", "AEIOURSTLN"))

	room, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("hello", 7, 6))
	s.Require().NoError(err)
	s.Equal('H', room.Board.LetterAt(model.Position{Row: 7, Col: 6}))
}

func (s *ControllerSuite) TestPlaceWordBingo() {
	s.insert(s.newRoom("RETAINS", "QZXJKVW", "AEIOURSTLN"))

	room, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("RETAINS", 7, 4))
	s.Require().NoError(err)

	s.Equal(14+model.BingoBonus, room.Player("alice").Score)
	s.True(room.LastMoveBingo)
	s.True(room.MoveHistory[0].IsBingo)
}

func (s *ControllerSuite) TestPlaceWordBlankScoresZero() {
	s.insert(s.newRoom("CA_QZXJ", "QZXJKVW", "AEIOURSTLN"))

	room, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("CAT", 7, 6))
	s.Require().NoError(err)

	s.True(room.Board.CellAt(model.Position{Row: 7, Col: 8}).Blank)
	s.Equal(8, room.Player("alice").Score)
	s.True(room.MoveHistory[0].Tiles[2].Blank)
}

func (s *ControllerSuite) TestPlaceWordExplicitBlank() {
	s.insert(s.newRoom("CAT_QZX", "QZXJKVW", "AEIOURSTLN"))

	tiles := across("CAT", 7, 6)
	tiles[0].Blank = true
	room, err := s.controller.PlaceWord(s.ctx, roomID, "alice", tiles)
	s.Require().NoError(err)

	// The real C stays on the rack
	s.Contains(room.Player("alice").Rack, 'C')
	s.Equal(4, room.Player("alice").Score)
}

func (s *ControllerSuite) TestPlaceWordInvalidWordChangesNothing() {
	before := s.insert(s.newRoom("HELLOAB", "QZXJKVW", "AEIOURSTLN"))

	_, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("HLELO", 7, 6))
	s.ErrorIs(err, model.ErrInvalidWords)
	s.Same(before, s.current())
}

func (s *ControllerSuite) TestPlaceWordInsufficientLetters() {
	s.insert(s.newRoom("CATQZXJ", "QZXJKVW", "AEIOURSTLN"))

	_, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 7, 6))
	s.ErrorIs(err, model.ErrInsufficientLetters)
	s.Equal("insufficient_letters_H", err.Error())
	s.True(s.current().Board.IsEmpty())
}

func (s *ControllerSuite) TestPlaceWordLegalityBeforeLetters() {
	s.insert(s.newRoom("CATQZXJ", "QZXJKVW", "AEIOURSTLN"))

	_, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 3, 3))
	s.ErrorIs(err, model.ErrFirstMoveNotOnStar)
}

func (s *ControllerSuite) TestPlaceWordMustConnect() {
	room := s.newRoom("HELLOAB", "QZXJKVW", "AEIOURSTLN")
	_ = room.Board.Place(model.Center, 'A', false)
	_ = room.Board.Place(model.Position{Row: 7, Col: 8}, 'T', false)
	room.Bag = room.Bag[:len(room.Bag)-2]
	s.insert(room)

	_, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("H", 2, 2))
	s.ErrorIs(err, model.ErrMustConnectToExisting)

	_, err = s.controller.PlaceWord(s.ctx, roomID, "alice", across("HE", 2, 2))
	s.ErrorIs(err, model.ErrTilesNotAdjacent)
}

func (s *ControllerSuite) TestPlaceWordNotYourTurn() {
	s.insert(s.newRoom("HELLOAB", "HELLOAB", "AEIOURSTLN"))

	_, err := s.controller.PlaceWord(s.ctx, roomID, "bob", across("HELLO", 7, 6))
	s.ErrorIs(err, model.ErrNotYourTurn)
}

func (s *ControllerSuite) TestPlaceWordWaitingForSecondPlayer() {
	room := s.newRoom("HELLOAB", "", "AEIOURSTLN")
	room.Players = room.Players[:1]
	s.insert(room)

	_, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 7, 6))
	s.ErrorIs(err, model.ErrWaitingForSecondPlayer)
}

func (s *ControllerSuite) TestPlaceWordPlayerNotInRoom() {
	s.insert(s.newRoom("HELLOAB", "QZXJKVW", "AEIOURSTLN"))

	_, err := s.controller.PlaceWord(s.ctx, roomID, "mallory", across("HELLO", 7, 6))
	s.ErrorIs(err, model.ErrPlayerNotInRoom)
}

func (s *ControllerSuite) TestPlaceWordRoomNotFound() {
	_, err := s.controller.PlaceWord(s.ctx, "NOPE00", "alice", across("HELLO", 7, 6))
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *ControllerSuite) TestPlaceWordAfterGameEnded() {
	room := s.newRoom("HELLOAB", "QZXJKVW", "AEIOURSTLN")
	room.GameEnded = true
	s.insert(room)

	_, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 7, 6))
	s.ErrorIs(err, model.ErrGameEnded)
}

func (s *ControllerSuite) TestConcurrentPlacementsDoNotInterleave() {
	before := s.insert(s.newRoom("HELLOAB", "QZXJKVW", "AEIOURSTLN"))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 7, 6))
		}()
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			s.ErrorIs(err, model.ErrNotYourTurn)
			failures++
		}
	}
	s.Equal(1, failures)

	room := s.current()
	s.Equal(16, room.Player("alice").Score)
	s.Len(room.MoveHistory, 1)
	s.Equal(before.TileCount(), room.TileCount())
}

// Game end tests

func (s *ControllerSuite) TestRackEmptyEndsGame() {
	room := s.newRoom("CAT", "QZ", "")
	room.Players[1].Score = 40
	s.insert(room)

	room, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("CAT", 7, 6))
	s.Require().NoError(err)

	s.True(room.GameEnded)
	s.Equal(model.EndReasonRackEmpty, room.EndReason)
	s.Equal(model.PlayerID("alice"), room.Winner)
	s.Equal(10+20, room.Player("alice").Score)
	s.Equal(40-20, room.Player("bob").Score)
	s.Equal(map[model.PlayerID]int{"alice": 30, "bob": 20}, room.FinalScores)
	s.Equal(model.PhaseEnded, room.Phase())
}

func (s *ControllerSuite) TestBagEmptyEndsGameWithLeader() {
	room := s.newRoom("CATQ", "E", "")
	room.Players[1].Score = 50
	s.insert(room)

	room, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("CAT", 7, 6))
	s.Require().NoError(err)

	s.True(room.GameEnded)
	s.Equal(model.EndReasonBagEmpty, room.EndReason)
	s.Equal(model.PlayerID("bob"), room.Winner)
	s.Equal(10, room.Player("alice").Score)
	s.Equal(50, room.Player("bob").Score)
}

// SwapTiles tests

func (s *ControllerSuite) TestSwapTiles() {
	s.insert(s.newRoom("HELLOAB", "QZXJKVW", "ABCDEFGHIJ"))

	room, err := s.controller.SwapTiles(s.ctx, roomID, "alice", []rune("he"))
	s.Require().NoError(err)

	s.Equal([]rune("LLOABJI"), room.Player("alice").Rack)
	s.Equal([]rune("EHABCDEFGH"), room.Bag)
	s.Equal(model.PlayerID("bob"), room.CurrentTurn)
}

func (s *ControllerSuite) TestSwapRefusedBelowSeven() {
	before := s.insert(s.newRoom("HELLOAB", "QZXJKVW", "ABCDEF"))

	_, err := s.controller.SwapTiles(s.ctx, roomID, "alice", []rune("H"))
	s.ErrorIs(err, model.ErrBagBelowSeven)
	s.Same(before, s.current())
	s.Len(s.current().Bag, 6)
}

func (s *ControllerSuite) TestSwapMissingLetter() {
	s.insert(s.newRoom("HELLOAB", "QZXJKVW", "ABCDEFGHIJ"))

	_, err := s.controller.SwapTiles(s.ctx, roomID, "alice", []rune("Z"))
	s.ErrorIs(err, model.ErrMissingLetter)
}

func (s *ControllerSuite) TestSwapNoLetters() {
	s.insert(s.newRoom("HELLOAB", "QZXJKVW", "ABCDEFGHIJ"))

	_, err := s.controller.SwapTiles(s.ctx, roomID, "alice", nil)
	s.ErrorIs(err, model.ErrNoLettersToSwap)
}

// SkipTurn tests

func (s *ControllerSuite) TestSkipTurn() {
	s.insert(s.newRoom("HELLOAB", "QZXJKVW", "ABCDEFGHIJ"))

	room, err := s.controller.SkipTurn(s.ctx, roomID, "alice")
	s.Require().NoError(err)
	s.Equal(model.PlayerID("bob"), room.CurrentTurn)

	_, err = s.controller.SkipTurn(s.ctx, roomID, "alice")
	s.ErrorIs(err, model.ErrNotYourTurn)
}

// ResignGame tests

func (s *ControllerSuite) TestResignTransfersRack() {
	room := s.newRoom("QZ", "HELLOAB", "ABCDEFGHIJ")
	room.Players[0].Score = 10
	room.Players[1].Score = 30
	room.CurrentTurn = "bob"
	s.insert(room)

	room, err := s.controller.ResignGame(s.ctx, roomID, "alice")
	s.Require().NoError(err)

	s.True(room.GameEnded)
	s.Equal(model.EndReasonResigned, room.EndReason)
	s.Equal(model.PlayerID("bob"), room.Winner)
	s.Equal(-10, room.Player("alice").Score)
	s.Equal(50, room.Player("bob").Score)

	_, err = s.controller.ResignGame(s.ctx, roomID, "bob")
	s.ErrorIs(err, model.ErrGameEnded)
}

func (s *ControllerSuite) TestResignWaitingForSecondPlayer() {
	room := s.newRoom("QZ", "", "ABCDEFGHIJ")
	room.Players = room.Players[:1]
	s.insert(room)

	_, err := s.controller.ResignGame(s.ctx, roomID, "alice")
	s.ErrorIs(err, model.ErrWaitingForSecondPlayer)
}

// Timer tests

func (s *ControllerSuite) TestPlaceWordChargesClock() {
	room := s.newRoom("HELLOAB", "QZXJKVW", "AEIOURSTLN")
	room.TimeLimit = 3 * time.Minute
	room.Players[0].TimeRemaining = 3 * time.Minute
	room.Players[1].TimeRemaining = 3 * time.Minute
	room.TurnStartedAt = s.clock.Now()
	s.insert(room)

	s.clock.Advance(time.Minute)
	room, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 7, 6))
	s.Require().NoError(err)

	s.Equal(2*time.Minute, room.Player("alice").TimeRemaining)
	s.Equal(3*time.Minute, room.Player("bob").TimeRemaining)
	s.Equal(s.clock.Now(), room.TurnStartedAt)
}

func (s *ControllerSuite) TestFailedActionDoesNotStopClock() {
	room := s.newRoom("HELLOAB", "QZXJKVW", "AEIOURSTLN")
	room.TimeLimit = 3 * time.Minute
	room.Players[0].TimeRemaining = 3 * time.Minute
	room.TurnStartedAt = s.clock.Now()
	s.insert(room)

	s.clock.Advance(time.Minute)
	_, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("HLELO", 7, 6))
	s.Require().Error(err)

	room = s.current()
	s.Equal(3*time.Minute, room.Player("alice").TimeRemaining)
	s.Equal(s.clock.Now().Add(-time.Minute), room.TurnStartedAt)
}

func (s *ControllerSuite) TestForfeitOnTime() {
	room := s.newRoom("HELLOAB", "QZXJKVW", "AEIOURSTLN")
	room.TimeLimit = time.Minute
	room.Players[0].TimeRemaining = time.Minute
	room.Players[0].Score = 30
	room.Players[1].TimeRemaining = time.Minute
	room.TurnStartedAt = s.clock.Now()
	s.insert(room)

	s.clock.Advance(2*time.Minute + time.Second)
	room, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 7, 6))
	s.Require().NoError(err)

	alice := room.Player("alice")
	s.True(room.GameEnded)
	s.Equal(model.EndReasonForfeit, room.EndReason)
	s.Equal(model.PlayerID("bob"), room.Winner)
	s.True(alice.IsInOvertime)
	s.Equal(20, alice.TimePenalty)
	s.Equal(10, alice.Score)
	s.True(room.Board.IsEmpty(), "the move itself is not applied")
	s.Equal([]rune("HELLOAB"), alice.Rack)
}

// Challenge tests

func (s *ControllerSuite) insertChallengeRoom() *model.Room {
	room := s.newRoom("HELLOAB", "QZXJKVW", "ABCDEFGHIJ")
	room.ChallengeMode = true
	return s.insert(room)
}

func (s *ControllerSuite) TestChallengeModePlacementIsPending() {
	before := s.insertChallengeRoom()

	room, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 7, 6))
	s.Require().NoError(err)

	s.Equal(model.PhaseAwaitingChallenge, room.Phase())
	s.Require().NotNil(room.PendingMove)
	s.Equal(model.PlayerID("alice"), room.PendingMove.ByPlayerID)
	s.Equal("HELLO", room.PendingMove.PrimaryWord)
	s.Equal('H', room.Board.LetterAt(model.Position{Row: 7, Col: 6}))
	s.Equal(0, room.Player("alice").Score)
	s.Empty(room.MoveHistory)
	s.Len(room.Player("alice").Rack, model.RackSize)
	s.Equal(model.PlayerID("bob"), room.CurrentTurn)
	s.Equal(before.TileCount(), room.TileCount())
}

func (s *ControllerSuite) TestPendingMoveBlocksOtherActions() {
	s.insertChallengeRoom()
	_, _ = s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 7, 6))

	_, err := s.controller.PlaceWord(s.ctx, roomID, "bob", across("AT", 8, 7))
	s.ErrorIs(err, model.ErrPendingMoveUnresolved)

	_, err = s.controller.SwapTiles(s.ctx, roomID, "bob", []rune("Q"))
	s.ErrorIs(err, model.ErrPendingMoveUnresolved)

	_, err = s.controller.SkipTurn(s.ctx, roomID, "bob")
	s.ErrorIs(err, model.ErrPendingMoveUnresolved)

	_, err = s.controller.SkipTurn(s.ctx, roomID, "alice")
	s.ErrorIs(err, model.ErrNotYourTurn)

	_, err = s.controller.ResolveChallenge(s.ctx, roomID, "alice", ActionAccept)
	s.ErrorIs(err, model.ErrCannotResolveOwnMove)

	_, err = s.controller.ResolveChallenge(s.ctx, roomID, "bob", ChallengeAction("shrug"))
	s.ErrorIs(err, model.ErrInvalidChallenge)
}

func (s *ControllerSuite) TestAcceptValidMove() {
	s.insertChallengeRoom()
	_, _ = s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 7, 6))

	room, err := s.controller.ResolveChallenge(s.ctx, roomID, "bob", ActionAccept)
	s.Require().NoError(err)

	s.Nil(room.PendingMove)
	s.Equal(16, room.Player("alice").Score)
	s.Require().Len(room.MoveHistory, 1)
	s.Equal(model.PlayerID("alice"), room.MoveHistory[0].PlayerID)
	s.Equal(model.PlayerID("bob"), room.CurrentTurn)
	s.Equal(model.PhaseAwaitingMove, room.Phase())
}

func (s *ControllerSuite) TestFailedChallengeReturnsTurnToMover() {
	s.insertChallengeRoom()
	_, _ = s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLO", 7, 6))

	room, err := s.controller.ResolveChallenge(s.ctx, roomID, "bob", ActionChallenge)
	s.Require().NoError(err)

	s.Equal(16, room.Player("alice").Score)
	s.Len(room.MoveHistory, 1)
	s.Equal(model.PlayerID("alice"), room.CurrentTurn)
}

// insertPendingMove seats a challenge room where alice's word already waits
// on the board, having drawn JIHGF, so a word the dictionary no longer
// knows can reach the resolution
func (s *ControllerSuite) insertPendingMove(word string) *model.Room {
	room := s.newRoom("ABJIHGF", "QZXJKVW", "ABCDE")
	room.ChallengeMode = true
	room.CurrentTurn = "bob"

	tiles := across(word, 7, 6)
	for _, t := range tiles {
		s.Require().NoError(room.Board.Place(t.Position, t.Letter, false))
	}
	room.PendingMove = &model.PendingMove{
		ByPlayerID:   "alice",
		Tiles:        tiles,
		PrimaryWord:  word,
		PreviousRack: []rune("HELLOAB"),
		Drawn:        []rune("JIHGF"),
	}
	return s.insert(room)
}

func (s *ControllerSuite) TestChallengeModeRejectsInvalidWords() {
	before := s.insertChallengeRoom()

	_, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("HELLA", 7, 6))
	s.ErrorIs(err, model.ErrInvalidWords)

	room := s.current()
	s.Same(before, room)
	s.Nil(room.PendingMove)
	s.Equal(model.PhaseAwaitingMove, room.Phase())
	s.True(room.Board.IsEmpty())
	s.Equal(model.PlayerID("alice"), room.CurrentTurn)
}

func (s *ControllerSuite) TestSuccessfulChallengeTakesMoveBack() {
	before := s.insertPendingMove("HLELO")

	room, err := s.controller.ResolveChallenge(s.ctx, roomID, "bob", ActionChallenge)
	s.Require().NoError(err)

	s.True(room.Board.IsEmpty())
	s.Equal([]rune("HELLOAB"), room.Player("alice").Rack)
	s.Equal([]rune("ABCDEFGHIJ"), room.Bag)
	s.Equal(0, room.Player("alice").Score)
	s.Empty(room.MoveHistory)
	s.Nil(room.PendingMove)
	s.Equal(model.PlayerID("bob"), room.CurrentTurn)
	s.Equal(before.TileCount(), room.TileCount())
}

func (s *ControllerSuite) TestAcceptInvalidMoveTakesMoveBack() {
	s.insertPendingMove("HLELO")

	room, err := s.controller.ResolveChallenge(s.ctx, roomID, "bob", ActionAccept)
	s.Require().NoError(err)

	s.True(room.Board.IsEmpty())
	s.Equal([]rune("HELLOAB"), room.Player("alice").Rack)
	s.Equal(model.PlayerID("alice"), room.CurrentTurn)
}

func (s *ControllerSuite) TestAcceptedMoveCanEndGame() {
	room := s.newRoom("CAT", "QZ", "")
	room.ChallengeMode = true
	s.insert(room)

	room, err := s.controller.PlaceWord(s.ctx, roomID, "alice", across("CAT", 7, 6))
	s.Require().NoError(err)
	s.False(room.GameEnded, "evaluation waits for the resolution")

	room, err = s.controller.ResolveChallenge(s.ctx, roomID, "bob", ActionAccept)
	s.Require().NoError(err)
	s.True(room.GameEnded)
	s.Equal(model.EndReasonRackEmpty, room.EndReason)
	s.Equal(30, room.Player("alice").Score)
}

func (s *ControllerSuite) TestResolveChallengeDisabled() {
	s.insert(s.newRoom("HELLOAB", "QZXJKVW", "ABCDEFGHIJ"))

	_, err := s.controller.ResolveChallenge(s.ctx, roomID, "bob", ActionAccept)
	s.ErrorIs(err, model.ErrChallengeDisabled)
}

func (s *ControllerSuite) TestResolveWithoutPendingMove() {
	s.insertChallengeRoom()

	_, err := s.controller.ResolveChallenge(s.ctx, roomID, "bob", ActionAccept)
	s.ErrorIs(err, model.ErrNoPendingMove)
}
