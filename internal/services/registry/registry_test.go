package registry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordduel-go/internal/dependencies/mocks"
	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/storage/memory"
	"github.com/mcoot/wordduel-go/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	storage  *memory.Storage
	clock    *mocks.MockClock
	registry *Registry
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.registry = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *RegistrySuite) TearDownTest() {
	s.registry.Close()
}

func (s *RegistrySuite) newRoom(id model.RoomID) *model.Room {
	return &model.Room{
		ID:        id,
		Board:     model.NewBoard(),
		Players:   []*model.Player{{ID: "alice", Name: "Alice"}},
		CreatedAt: s.clock.Now(),
		UpdatedAt: s.clock.Now(),
	}
}

func (s *RegistrySuite) TestInsertAndGet() {
	inserted, err := s.registry.Insert(s.ctx, s.newRoom("ABC123"))
	s.Require().NoError(err)

	retrieved, err := s.registry.Get(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Same(inserted, retrieved)
}

func (s *RegistrySuite) TestInsertDoesNotKeepCallersRoom() {
	room := s.newRoom("ABC123")
	inserted, err := s.registry.Insert(s.ctx, room)
	s.Require().NoError(err)

	room.Players[0].Score = 99
	s.Equal(0, inserted.Players[0].Score)
}

func (s *RegistrySuite) TestInsertRejectsTakenID() {
	_, err := s.registry.Insert(s.ctx, s.newRoom("ABC123"))
	s.Require().NoError(err)

	_, err = s.registry.Insert(s.ctx, s.newRoom("ABC123"))
	s.ErrorIs(err, ErrRoomExists)
}

func (s *RegistrySuite) TestDoCommitsOnSuccess() {
	_, _ = s.registry.Insert(s.ctx, s.newRoom("ABC123"))
	s.clock.Advance(time.Minute)

	updated, err := s.registry.Do(s.ctx, "ABC123", func(room *model.Room) error {
		room.Players[0].Score = 12
		return nil
	})
	s.Require().NoError(err)
	s.Equal(12, updated.Players[0].Score)
	s.Equal(s.clock.Now(), updated.UpdatedAt)

	retrieved, _ := s.registry.Get(s.ctx, "ABC123")
	s.Same(updated, retrieved)
}

func (s *RegistrySuite) TestDoDiscardsOnError() {
	original, _ := s.registry.Insert(s.ctx, s.newRoom("ABC123"))

	_, err := s.registry.Do(s.ctx, "ABC123", func(room *model.Room) error {
		room.Players[0].Score = 12
		room.Bag = append(room.Bag, 'Q')
		return model.ErrNotYourTurn
	})
	s.ErrorIs(err, model.ErrNotYourTurn)

	retrieved, _ := s.registry.Get(s.ctx, "ABC123")
	s.Same(original, retrieved)
	s.Equal(0, retrieved.Players[0].Score)
	s.Empty(retrieved.Bag)
}

func (s *RegistrySuite) TestDoNeverMutatesPublishedRoom() {
	before, _ := s.registry.Insert(s.ctx, s.newRoom("ABC123"))

	_, err := s.registry.Do(s.ctx, "ABC123", func(room *model.Room) error {
		room.Players[0].Rack = []rune("CAT")
		return nil
	})
	s.Require().NoError(err)
	s.Empty(before.Players[0].Rack)
}

func (s *RegistrySuite) TestDoUnknownRoom() {
	_, err := s.registry.Do(s.ctx, "NOPE00", func(room *model.Room) error {
		s.Fail("should not run")
		return nil
	})
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *RegistrySuite) TestDoRecoversPanic() {
	_, _ = s.registry.Insert(s.ctx, s.newRoom("ABC123"))

	_, err := s.registry.Do(s.ctx, "ABC123", func(room *model.Room) error {
		panic("boom")
	})
	s.Require().Error(err)

	// The worker survives
	_, err = s.registry.Do(s.ctx, "ABC123", func(room *model.Room) error { return nil })
	s.NoError(err)
}

func (s *RegistrySuite) TestDoSkipsCancelledJob() {
	_, _ = s.registry.Insert(s.ctx, s.newRoom("ABC123"))

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	ran := false
	_, err := s.registry.Do(ctx, "ABC123", func(room *model.Room) error {
		ran = true
		return nil
	})
	s.ErrorIs(err, context.Canceled)
	s.False(ran)
}

func (s *RegistrySuite) TestConcurrentJobsAreSerialised() {
	_, _ = s.registry.Insert(s.ctx, s.newRoom("ABC123"))

	const n = 50
	var (
		wg       sync.WaitGroup
		inFlight int
		overlap  bool
		mu       sync.Mutex
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.registry.Do(s.ctx, "ABC123", func(room *model.Room) error {
				mu.Lock()
				inFlight++
				if inFlight > 1 {
					overlap = true
				}
				mu.Unlock()

				room.Players[0].Score++

				mu.Lock()
				inFlight--
				mu.Unlock()
				return nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.False(overlap)
	room, _ := s.registry.Get(s.ctx, "ABC123")
	s.Equal(n, room.Players[0].Score)
}

func (s *RegistrySuite) TestRoomsRunIndependently() {
	_, _ = s.registry.Insert(s.ctx, s.newRoom("ROOM01"))
	_, _ = s.registry.Insert(s.ctx, s.newRoom("ROOM02"))

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = s.registry.Do(s.ctx, "ROOM01", func(room *model.Room) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// ROOM02 is not held up by the blocked ROOM01 job
	_, err := s.registry.Do(s.ctx, "ROOM02", func(room *model.Room) error { return nil })
	s.NoError(err)
	close(release)
}

func (s *RegistrySuite) TestList() {
	_, _ = s.registry.Insert(s.ctx, s.newRoom("ROOM01"))
	s.clock.Advance(time.Second)
	_, _ = s.registry.Insert(s.ctx, s.newRoom("ROOM02"))

	rooms, err := s.registry.List(s.ctx)
	s.Require().NoError(err)
	s.Len(rooms, 2)
}

func (s *RegistrySuite) TestClosedRegistryRejectsJobs() {
	_, _ = s.registry.Insert(s.ctx, s.newRoom("ABC123"))
	s.registry.Close()

	_, err := s.registry.Do(s.ctx, "ABC123", func(room *model.Room) error { return nil })
	s.True(errors.Is(err, ErrClosed))
}

func (s *RegistrySuite) TestOnCommitSeesCommitsInOrder() {
	var (
		mu     sync.Mutex
		scores []int
	)
	s.registry.OnCommit(func(room *model.Room) {
		mu.Lock()
		defer mu.Unlock()
		scores = append(scores, room.Players[0].Score)
	})

	_, _ = s.registry.Insert(s.ctx, s.newRoom("ABC123"))
	for i := 0; i < 3; i++ {
		_, _ = s.registry.Do(s.ctx, "ABC123", func(room *model.Room) error {
			room.Players[0].Score++
			return nil
		})
	}
	_, _ = s.registry.Do(s.ctx, "ABC123", func(room *model.Room) error {
		return model.ErrNotYourTurn
	})

	mu.Lock()
	defer mu.Unlock()
	s.Equal([]int{0, 1, 2, 3}, scores)
}
