package board

import (
	"github.com/mcoot/wordduel-go/internal/model"
)

// Service checks placements against the board. It holds no state; the
// board is owned by the room being played.
type Service struct{}

// New creates a new BoardService
func New() *Service {
	return &Service{}
}

// ValidatePlacement runs the ordered legality checks on a proposed
// placement. The first failing check is returned and the board is not
// touched.
func (s *Service) ValidatePlacement(board *model.Board, tiles []model.PlacedTile) error {
	if len(tiles) == 0 {
		return model.ErrNoTilesPlaced
	}

	seen := make(map[model.Position]struct{}, len(tiles))
	for _, t := range tiles {
		if _, dup := seen[t.Position]; dup {
			return model.ErrDuplicatePositions
		}
		seen[t.Position] = struct{}{}
	}

	for _, t := range tiles {
		if !t.Position.InBounds() {
			return model.ErrTileOutOfBounds
		}
	}

	for _, t := range tiles {
		if board.IsOccupied(t.Position) {
			return model.ErrCellOccupied
		}
	}

	for _, t := range tiles {
		if err := ValidateLetter(t.Letter); err != nil {
			return err
		}
	}

	firstMove := board.IsEmpty()

	if len(tiles) > 1 && !IsConnected(board, tiles, firstMove) {
		return model.ErrTilesNotAdjacent
	}

	if firstMove {
		if !coversCenter(tiles) {
			return model.ErrFirstMoveNotOnStar
		}
		return nil
	}

	if !touchesExisting(board, tiles) {
		return model.ErrMustConnectToExisting
	}
	return nil
}

// ValidateWordFormation is the second pass: the placement must be
// connected and must form at least one word of two or more letters.
func (s *Service) ValidateWordFormation(board *model.Board, tiles []model.PlacedTile) error {
	if !IsConnected(board, tiles, board.IsEmpty()) {
		return model.ErrTilesNotConnected
	}

	words := ExtractWords(board, tiles)
	if len(words) == 0 {
		return model.ErrNoWordFormed
	}
	for _, w := range words {
		if len([]rune(w.Text)) < 2 {
			return model.ErrWordTooShort
		}
	}
	return nil
}

// ValidateLetter checks that a placed tile shows a letter A-Z
func ValidateLetter(letter rune) error {
	if !model.IsLetter(letter) {
		return model.ErrInvalidLetter
	}
	return nil
}

func coversCenter(tiles []model.PlacedTile) bool {
	for _, t := range tiles {
		if t.Position == model.Center {
			return true
		}
	}
	return false
}

func touchesExisting(board *model.Board, tiles []model.PlacedTile) bool {
	for _, t := range tiles {
		if board.HasOccupiedNeighbor(t.Position) {
			return true
		}
	}
	return false
}

// Interface for dependency injection
type ServiceInterface interface {
	ValidatePlacement(board *model.Board, tiles []model.PlacedTile) error
	ValidateWordFormation(board *model.Board, tiles []model.PlacedTile) error
}

var _ ServiceInterface = (*Service)(nil)
