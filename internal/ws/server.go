package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/mcoot/wordduel-go/internal/api/response"
	"github.com/mcoot/wordduel-go/internal/dependencies/clock"
	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/services/game"
	"github.com/mcoot/wordduel-go/internal/services/lobby"
)

// Defaults apply to create_room messages that leave an option out
type Defaults struct {
	TimeLimit     time.Duration
	ChallengeMode bool
}

// Server speaks the game protocol over WebSocket. Room updates reach
// clients through the HubManager; Server only answers errors and pings
// directly.
type Server struct {
	lobby    lobby.ControllerInterface
	game     game.ControllerInterface
	hubs     *HubManager
	clock    clock.Clock
	defaults Defaults
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates a new Server
func NewServer(
	lobbyController lobby.ControllerInterface,
	gameController game.ControllerInterface,
	hubs *HubManager,
	clock clock.Clock,
	defaults Defaults,
	logger *slog.Logger,
) *Server {
	return &Server{
		lobby:    lobbyController,
		game:     gameController,
		hubs:     hubs,
		clock:    clock,
		defaults: defaults,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Browser clients are served from other origins
			},
		},
	}
}

// ServeHTTP upgrades the request and serves the connection until it closes
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("ws upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := NewClient(model.PlayerID(uuid.NewString()), conn, s.clock.Now(), s.logger)
	s.hubs.Clients().Add(client)
	go client.writePump()

	client.Send(ServerMessage{Type: TypeConnected, ClientID: string(client.ID())})
	client.logger.Info("ws client connected",
		slog.String("remote_addr", r.RemoteAddr),
		slog.Int("total_clients", s.hubs.Clients().Count()))

	ctx := r.Context()
	client.readPump(func(data []byte) {
		s.handle(ctx, client, data)
	})

	s.hubs.Clients().Remove(client)
	client.Close()
	client.logger.Info("ws client disconnected",
		slog.Duration("connection_duration", s.clock.Now().Sub(client.connectedAt)),
		slog.Int("total_clients", s.hubs.Clients().Count()))
}

// handle runs one client message. Successful room changes are broadcast
// by the hubs; failures go back to the sender only.
func (s *Server) handle(ctx context.Context, client *Client, data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		client.Send(errorMessage(model.ErrInvalidJSON))
		return
	}

	if msg.Type == TypePing {
		client.Send(ServerMessage{Type: TypePong, T: s.clock.Now().UnixMilli()})
		return
	}

	if err := s.dispatch(ctx, client.ID(), msg); err != nil {
		if !model.IsGameError(err) {
			client.logger.Error("ws message failed",
				slog.String("type", string(msg.Type)),
				slog.String("room_id", msg.RoomID),
				slog.String("error", err.Error()),
			)
		}
		client.Send(errorMessage(err))
	}
}

func (s *Server) dispatch(ctx context.Context, playerID model.PlayerID, msg ClientMessage) error {
	roomID := model.RoomID(msg.RoomID)

	var err error
	switch msg.Type {
	case TypeCreateRoom:
		var opts model.RoomOptions
		if opts, err = s.roomOptions(msg); err == nil {
			_, err = s.lobby.CreateRoom(ctx, playerID, msg.PlayerName, opts)
		}
	case TypeJoinRoom:
		_, err = s.lobby.JoinRoom(ctx, roomID, playerID, msg.PlayerName)
	case TypePlaceWord:
		tiles := make([]model.PlacedTile, len(msg.Tiles))
		for i, t := range msg.Tiles {
			tiles[i] = t.ToModel()
		}
		_, err = s.game.PlaceWord(ctx, roomID, playerID, tiles)
	case TypeSwapTiles:
		_, err = s.game.SwapTiles(ctx, roomID, playerID, response.LettersToModel(msg.Letters))
	case TypeResolveChallenge:
		_, err = s.game.ResolveChallenge(ctx, roomID, playerID, game.ChallengeAction(msg.Action))
	case TypeSkipTurn:
		_, err = s.game.SkipTurn(ctx, roomID, playerID)
	case TypeResignGame:
		_, err = s.game.ResignGame(ctx, roomID, playerID)
	default:
		err = model.ErrUnknownMessageType
	}
	return err
}

// roomOptions applies the client's choices over the server defaults. A
// time limit must be between zero, which disables the timer, and
// model.MaxTimeLimit.
func (s *Server) roomOptions(msg ClientMessage) (model.RoomOptions, error) {
	opts := model.RoomOptions{
		TimeLimit:     s.defaults.TimeLimit,
		ChallengeMode: s.defaults.ChallengeMode,
	}
	if msg.TimeLimitMs != nil {
		ms := *msg.TimeLimitMs
		if ms < 0 || ms > model.MaxTimeLimit.Milliseconds() {
			return opts, model.ErrInvalidTimeLimit
		}
		opts.TimeLimit = time.Duration(ms) * time.Millisecond
	}
	if msg.ChallengeMode != nil {
		opts.ChallengeMode = *msg.ChallengeMode
	}
	return opts, nil
}
