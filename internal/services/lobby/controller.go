package lobby

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/wordduel-go/internal/dependencies/clock"
	"github.com/mcoot/wordduel-go/internal/dependencies/random"
	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/services/registry"
	"github.com/mcoot/wordduel-go/internal/services/tilebag"
	"github.com/mcoot/wordduel-go/internal/services/timer"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes (avoid confusing chars)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	maxCodeAttempts = 16

	defaultPlayerName = "Player"
)

// ErrNoFreeRoomCode is returned when every generated code was taken
var ErrNoFreeRoomCode = errors.New("could not generate a free room code")

// Controller creates rooms and seats players
type Controller struct {
	registry *registry.Registry
	tilebag  *tilebag.Service
	timer    *timer.Service
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
}

// NewController creates a new LobbyController
func NewController(
	registry *registry.Registry,
	tilebag *tilebag.Service,
	timer *timer.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		registry: registry,
		tilebag:  tilebag,
		timer:    timer,
		clock:    clock,
		random:   random,
		logger:   logger,
	}
}

// CreateRoom opens a room with a fresh bag, seats the owner with a full
// rack and gives them the first turn
func (c *Controller) CreateRoom(ctx context.Context, ownerID model.PlayerID, name string, opts model.RoomOptions) (*model.Room, error) {
	now := c.clock.Now()

	owner := &model.Player{
		ID:            ownerID,
		Name:          displayName(name),
		Rack:          make([]rune, 0, model.RackSize),
		TimeRemaining: opts.TimeLimit,
	}

	room := &model.Room{
		Players:       []*model.Player{owner},
		Board:         model.NewBoard(),
		Bag:           c.tilebag.NewBag(),
		CurrentTurn:   ownerID,
		ChallengeMode: opts.ChallengeMode,
		MoveHistory:   []model.Move{},
		TimeLimit:     opts.TimeLimit,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	c.tilebag.Deal(room, owner)
	room.TileBagStats = c.tilebag.Stats(room)

	// Generate unique room code
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		room.ID = model.RoomID(c.random.String(RoomCodeLength, RoomCodeAlphabet))

		created, err := c.registry.Insert(ctx, room)
		if errors.Is(err, registry.ErrRoomExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("creating room: %w", err)
		}

		c.logger.Info("room created",
			slog.String("room_id", string(created.ID)),
			slog.String("player_id", string(ownerID)),
			slog.Bool("challenge_mode", created.ChallengeMode),
			slog.Duration("time_limit", created.TimeLimit),
		)
		return created, nil
	}
	return nil, ErrNoFreeRoomCode
}

// JoinRoom seats a second player. Joining a room you are already in
// changes nothing. The first turn clock starts once both seats are taken.
func (c *Controller) JoinRoom(ctx context.Context, id model.RoomID, playerID model.PlayerID, name string) (*model.Room, error) {
	joined := false

	room, err := c.registry.Do(ctx, id, func(room *model.Room) error {
		if room.Player(playerID) != nil {
			return nil
		}
		if room.IsFull() {
			return model.ErrRoomFull
		}

		player := &model.Player{
			ID:            playerID,
			Name:          displayName(name),
			Rack:          make([]rune, 0, model.RackSize),
			TimeRemaining: room.TimeLimit,
		}
		c.tilebag.Deal(room, player)
		room.Players = append(room.Players, player)
		room.TileBagStats = c.tilebag.Stats(room)

		if room.IsFull() {
			c.timer.StartTurn(room)
		}
		joined = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if joined {
		c.logger.Info("player joined room",
			slog.String("room_id", string(id)),
			slog.String("player_id", string(playerID)),
		)
	}
	return room, nil
}

// GetRoom retrieves a room by code
func (c *Controller) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	return c.registry.Get(ctx, id)
}

// ListRooms returns all live rooms, oldest first
func (c *Controller) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return c.registry.List(ctx)
}

func displayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultPlayerName
	}
	return name
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateRoom(ctx context.Context, ownerID model.PlayerID, name string, opts model.RoomOptions) (*model.Room, error)
	JoinRoom(ctx context.Context, id model.RoomID, playerID model.PlayerID, name string) (*model.Room, error)
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	ListRooms(ctx context.Context) ([]*model.Room, error)
}

var _ ControllerInterface = (*Controller)(nil)
