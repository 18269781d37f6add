package game

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mcoot/wordduel-go/internal/dependencies/clock"
	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/services/board"
	"github.com/mcoot/wordduel-go/internal/services/dictionary"
	"github.com/mcoot/wordduel-go/internal/services/endgame"
	"github.com/mcoot/wordduel-go/internal/services/registry"
	"github.com/mcoot/wordduel-go/internal/services/scoring"
	"github.com/mcoot/wordduel-go/internal/services/tilebag"
	"github.com/mcoot/wordduel-go/internal/services/timer"
)

// Controller runs the turn protocol of a room. Every action is a single
// registry job, so it either commits in full or leaves the room untouched.
type Controller struct {
	registry          *registry.Registry
	boardService      *board.Service
	scoringService    *scoring.Service
	tilebagService    *tilebag.Service
	timerService      *timer.Service
	endgameService    *endgame.Service
	dictionaryService *dictionary.Service
	clock             clock.Clock
	logger            *slog.Logger
}

// NewController creates a new GameController
func NewController(
	registry *registry.Registry,
	boardService *board.Service,
	scoringService *scoring.Service,
	tilebagService *tilebag.Service,
	timerService *timer.Service,
	endgameService *endgame.Service,
	dictionaryService *dictionary.Service,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		registry:          registry,
		boardService:      boardService,
		scoringService:    scoringService,
		tilebagService:    tilebagService,
		timerService:      timerService,
		endgameService:    endgameService,
		dictionaryService: dictionaryService,
		clock:             clock,
		logger:            logger,
	}
}

// PlaceWord places tiles from the player's rack. Every word the move forms
// must be in the dictionary. In direct mode the move is then scored and
// committed. In challenge mode it goes on the board unscored and waits for
// the opponent to accept or challenge it.
func (c *Controller) PlaceWord(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, tiles []model.PlacedTile) (*model.Room, error) {
	tiles = normalizeTiles(tiles)

	return c.registry.Do(ctx, roomID, func(room *model.Room) error {
		player, err := c.turnPlayer(room, playerID)
		if err != nil {
			return err
		}
		if c.closeTurn(room, player) {
			return nil
		}

		// All checks run before the board is touched
		if err := c.boardService.ValidatePlacement(room.Board, tiles); err != nil {
			return err
		}
		if err := c.boardService.ValidateWordFormation(room.Board, tiles); err != nil {
			return err
		}
		rack, resolved, err := consumeLetters(player.Rack, tiles)
		if err != nil {
			return err
		}
		words := board.ExtractWords(room.Board, resolved)
		score, valid := c.checkAndScore(ctx, words, len(resolved))
		if !valid {
			return model.ErrInvalidWords
		}

		if room.ChallengeMode {
			c.placeProvisional(room, player, resolved, rack, words)
			return nil
		}
		return c.placeDirect(ctx, room, player, resolved, rack, score)
	})
}

func (c *Controller) placeDirect(
	ctx context.Context,
	room *model.Room,
	player *model.Player,
	tiles []model.PlacedTile,
	rack []rune,
	score scoring.MoveScore,
) error {
	if err := placeTiles(room.Board, tiles); err != nil {
		return err
	}
	player.Rack = rack
	c.tilebagService.Deal(room, player)

	c.commitMove(ctx, room, player, tiles, score)

	c.logger.Info("word placed",
		slog.String("room_id", string(room.ID)),
		slog.String("player_id", string(player.ID)),
		slog.Int("score", score.Total),
		slog.Bool("bingo", score.IsBingo),
	)

	if c.endgameService.Evaluate(room) {
		c.logGameEnded(room)
		return nil
	}
	c.passTurn(room, player)
	return nil
}

func (c *Controller) placeProvisional(
	room *model.Room,
	player *model.Player,
	tiles []model.PlacedTile,
	rack []rune,
	words []model.FormedWord,
) {
	// Errors are ruled out by ValidatePlacement. The game end check waits
	// for the resolution, since the move may still be taken back.
	_ = placeTiles(room.Board, tiles)

	previous := append([]rune(nil), player.Rack...)
	player.Rack = rack
	drawn := c.tilebagService.Deal(room, player)

	primary := ""
	if len(words) > 0 {
		primary = words[0].Text
	}
	room.PendingMove = &model.PendingMove{
		ByPlayerID:   player.ID,
		Tiles:        tiles,
		PrimaryWord:  primary,
		PreviousRack: previous,
		Drawn:        drawn,
	}
	room.TileBagStats = c.tilebagService.Stats(room)

	c.logger.Info("word placed pending challenge",
		slog.String("room_id", string(room.ID)),
		slog.String("player_id", string(player.ID)),
		slog.String("word", primary),
	)

	c.passTurn(room, player)
}

// SwapTiles returns letters to the bag and draws the same number
func (c *Controller) SwapTiles(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, letters []rune) (*model.Room, error) {
	letters = normalizeLetters(letters)

	return c.registry.Do(ctx, roomID, func(room *model.Room) error {
		player, err := c.turnPlayer(room, playerID)
		if err != nil {
			return err
		}
		if c.closeTurn(room, player) {
			return nil
		}

		if err := c.tilebagService.Swap(room, player, letters); err != nil {
			return err
		}
		room.TileBagStats = c.tilebagService.Stats(room)

		c.logger.Info("tiles swapped",
			slog.String("room_id", string(room.ID)),
			slog.String("player_id", string(player.ID)),
			slog.Int("count", len(letters)),
		)

		if c.endgameService.Evaluate(room) {
			c.logGameEnded(room)
			return nil
		}
		c.passTurn(room, player)
		return nil
	})
}

// SkipTurn passes the turn without playing
func (c *Controller) SkipTurn(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Room, error) {
	return c.registry.Do(ctx, roomID, func(room *model.Room) error {
		player, err := c.turnPlayer(room, playerID)
		if err != nil {
			return err
		}
		if c.closeTurn(room, player) {
			return nil
		}

		c.logger.Info("turn skipped",
			slog.String("room_id", string(room.ID)),
			slog.String("player_id", string(player.ID)),
		)
		c.passTurn(room, player)
		return nil
	})
}

// ResignGame ends the game in the opponent's favour. It may be called on
// either player's turn.
func (c *Controller) ResignGame(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Room, error) {
	return c.registry.Do(ctx, roomID, func(room *model.Room) error {
		player, err := c.activePlayer(room, playerID)
		if err != nil {
			return err
		}
		if err := c.endgameService.Resign(room, player); err != nil {
			return err
		}
		room.TileBagStats = c.tilebagService.Stats(room)

		c.logger.Info("player resigned",
			slog.String("room_id", string(room.ID)),
			slog.String("player_id", string(player.ID)),
		)
		c.logGameEnded(room)
		return nil
	})
}

// activePlayer checks that the game is running and the player is in it
func (c *Controller) activePlayer(room *model.Room, playerID model.PlayerID) (*model.Player, error) {
	player := room.Player(playerID)
	if player == nil {
		return nil, model.ErrPlayerNotInRoom
	}
	if !room.IsFull() {
		return nil, model.ErrWaitingForSecondPlayer
	}
	if room.GameEnded {
		return nil, model.ErrGameEnded
	}
	return player, nil
}

// turnPlayer additionally checks that the player holds the turn and no
// move is waiting to be resolved
func (c *Controller) turnPlayer(room *model.Room, playerID model.PlayerID) (*model.Player, error) {
	player, err := c.activePlayer(room, playerID)
	if err != nil {
		return nil, err
	}
	if room.CurrentTurn != playerID {
		return nil, model.ErrNotYourTurn
	}
	if room.PendingMove != nil {
		return nil, model.ErrPendingMoveUnresolved
	}
	return player, nil
}

// closeTurn charges the player's clock. A forfeit ends the game and the
// action that triggered it is not applied.
func (c *Controller) closeTurn(room *model.Room, player *model.Player) bool {
	if !c.timerService.CloseTurn(room, player) {
		return false
	}

	c.endgameService.Forfeit(room, player)
	room.TileBagStats = c.tilebagService.Stats(room)

	c.logger.Info("player forfeited on time",
		slog.String("room_id", string(room.ID)),
		slog.String("player_id", string(player.ID)),
		slog.Int("time_penalty", player.TimePenalty),
	)
	c.logGameEnded(room)
	return true
}

// passTurn hands the turn to the other player and starts their clock
func (c *Controller) passTurn(room *model.Room, from *model.Player) {
	if opponent := room.Opponent(from.ID); opponent != nil {
		c.giveTurn(room, opponent.ID)
	}
}

func (c *Controller) giveTurn(room *model.Room, playerID model.PlayerID) {
	room.CurrentTurn = playerID
	c.timerService.StartTurn(room)
}

// checkAndScore validates every formed word concurrently and scores the
// move. Word validity is recorded on the returned scores.
func (c *Controller) checkAndScore(ctx context.Context, words []model.FormedWord, tilesPlaced int) (scoring.MoveScore, bool) {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	validity := c.dictionaryService.CheckWords(ctx, texts)

	score := c.scoringService.ScoreMove(words, tilesPlaced)
	allValid := true
	for i := range score.Words {
		score.Words[i].Valid = validity[score.Words[i].Word]
		if !score.Words[i].Valid {
			allValid = false
		}
	}
	return score, allValid
}

// commitMove awards the score and records the move with definitions for
// its words
func (c *Controller) commitMove(ctx context.Context, room *model.Room, player *model.Player, tiles []model.PlacedTile, score scoring.MoveScore) {
	texts := make([]string, 0, len(score.Words))
	for _, w := range score.Words {
		texts = append(texts, w.Word)
	}

	move := model.Move{
		ID:              model.MoveID(uuid.NewString()),
		PlayerID:        player.ID,
		Tiles:           tiles,
		Words:           score.Words,
		TotalScore:      score.Total,
		IsBingo:         score.IsBingo,
		Timestamp:       c.clock.Now(),
		WordDefinitions: c.dictionaryService.Definitions(ctx, texts),
	}

	player.Score += score.Total
	room.MoveHistory = append([]model.Move{move}, room.MoveHistory...)
	room.LastMoveBingo = score.IsBingo
	room.TileBagStats = c.tilebagService.Stats(room)
}

func (c *Controller) logGameEnded(room *model.Room) {
	c.logger.Info("game ended",
		slog.String("room_id", string(room.ID)),
		slog.String("reason", string(room.EndReason)),
		slog.String("winner", string(room.Winner)),
	)
}

func placeTiles(b *model.Board, tiles []model.PlacedTile) error {
	for _, t := range tiles {
		if err := b.Place(t.Position, t.Letter, t.Blank); err != nil {
			return err
		}
	}
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	PlaceWord(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, tiles []model.PlacedTile) (*model.Room, error)
	SwapTiles(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, letters []rune) (*model.Room, error)
	ResolveChallenge(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, action ChallengeAction) (*model.Room, error)
	SkipTurn(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Room, error)
	ResignGame(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (*model.Room, error)
}

var _ ControllerInterface = (*Controller)(nil)
