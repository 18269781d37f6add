package game

import (
	"context"
	"log/slog"

	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/services/board"
)

// ChallengeAction is the opponent's response to a pending move
type ChallengeAction string

const (
	ActionAccept    ChallengeAction = "accept"
	ActionChallenge ChallengeAction = "challenge"
)

// ResolveChallenge settles a pending move. The words are checked against
// the dictionary either way. A valid move is scored and recorded; after an
// accept the resolver keeps the turn, after a failed challenge the turn
// goes back to the mover. An invalid move is taken back off the board and
// the turn goes to the mover after an accept, or to the resolver after a
// successful challenge.
func (c *Controller) ResolveChallenge(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, action ChallengeAction) (*model.Room, error) {
	return c.registry.Do(ctx, roomID, func(room *model.Room) error {
		player, err := c.activePlayer(room, playerID)
		if err != nil {
			return err
		}
		if !room.ChallengeMode {
			return model.ErrChallengeDisabled
		}
		pending := room.PendingMove
		if pending == nil {
			return model.ErrNoPendingMove
		}
		if pending.ByPlayerID == playerID {
			return model.ErrCannotResolveOwnMove
		}
		if action != ActionAccept && action != ActionChallenge {
			return model.ErrInvalidChallenge
		}
		mover := room.Player(pending.ByPlayerID)
		if mover == nil {
			return model.ErrPlayerNotInRoom
		}

		if c.closeTurn(room, player) {
			return nil
		}

		words := board.ExtractWords(room.Board, pending.Tiles)
		score, valid := c.checkAndScore(ctx, words, len(pending.Tiles))

		logger := c.logger.With(
			slog.String("room_id", string(room.ID)),
			slog.String("player_id", string(playerID)),
			slog.String("action", string(action)),
			slog.String("word", pending.PrimaryWord),
		)

		room.PendingMove = nil
		if !valid {
			c.takeBack(room, mover, pending)
			logger.Info("pending move rejected")

			next := mover.ID
			if action == ActionChallenge {
				next = player.ID
			}
			c.giveTurn(room, next)
			return nil
		}

		c.commitMove(ctx, room, mover, pending.Tiles, score)
		logger.Info("pending move scored", slog.Int("score", score.Total))

		if c.endgameService.Evaluate(room) {
			c.logGameEnded(room)
			return nil
		}

		next := player.ID
		if action == ActionChallenge {
			next = mover.ID
		}
		c.giveTurn(room, next)
		return nil
	})
}

// takeBack lifts a pending move off the board, restores the mover's rack
// and returns the replacement tiles to the top of the bag
func (c *Controller) takeBack(room *model.Room, mover *model.Player, pending *model.PendingMove) {
	for _, t := range pending.Tiles {
		room.Board.Clear(t.Position)
	}
	mover.Rack = append([]rune(nil), pending.PreviousRack...)
	c.tilebagService.Return(room, pending.Drawn)
	room.TileBagStats = c.tilebagService.Stats(room)
}
