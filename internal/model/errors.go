package model

import (
	"errors"
	"strings"
)

// ErrorCode is a stable, client-visible failure code
type ErrorCode string

// Room and player lookup
const (
	CodeRoomNotFound    ErrorCode = "room_not_found"
	CodePlayerNotInRoom ErrorCode = "player_not_in_room"
	CodeRoomFull        ErrorCode = "room_full"
)

// Turn and phase
const (
	CodeNotYourTurn            ErrorCode = "not_your_turn"
	CodeWaitingForSecondPlayer ErrorCode = "waiting_for_second_player"
	CodeGameEnded              ErrorCode = "game_ended"
	CodeNoPendingMove          ErrorCode = "no_pending_move"
	CodeCannotResolveOwnMove   ErrorCode = "cannot_resolve_own_move"
	CodeChallengeDisabled      ErrorCode = "challenge_disabled"
	CodePendingMoveUnresolved  ErrorCode = "pending_move_unresolved"
	CodeInvalidChallenge       ErrorCode = "invalid_challenge_action"
)

// Placement legality
const (
	CodeNoTilesPlaced         ErrorCode = "no_tiles_placed"
	CodeDuplicatePositions    ErrorCode = "duplicate_tile_positions"
	CodeTileOutOfBounds       ErrorCode = "tile_out_of_bounds"
	CodeCellOccupied          ErrorCode = "cell_already_occupied"
	CodeInvalidLetter         ErrorCode = "invalid_letter"
	CodeTilesNotAdjacent      ErrorCode = "tiles_must_be_adjacent"
	CodeTilesNotConnected     ErrorCode = "tiles_must_be_connected"
	CodeFirstMoveNotOnStar    ErrorCode = "first_move_must_touch_center_star"
	CodeMustConnectToExisting ErrorCode = "must_connect_to_existing_tiles"
)

// Word legality
const (
	CodeNoWordFormed ErrorCode = "must_form_at_least_one_word"
	CodeWordTooShort ErrorCode = "words_must_be_at_least_2_letters"
	CodeInvalidWords ErrorCode = "invalid_words_formed"
)

// Resources and terminal actions
const (
	CodeInsufficientLetters ErrorCode = "insufficient_letters"
	CodeBagBelowSeven       ErrorCode = "cannot_swap_when_bag_below_7"
	CodeNoLettersToSwap     ErrorCode = "no_letters_to_swap"
	CodeMissingLetter       ErrorCode = "missing_letter"
	CodeNoOpponent          ErrorCode = "no_opponent"
)

// Protocol
const (
	CodeUnknownMessageType ErrorCode = "unknown_message_type"
	CodeInvalidJSON        ErrorCode = "invalid_json"
	CodeInvalidTimeLimit   ErrorCode = "invalid_time_limit"
	CodeInternal           ErrorCode = "internal_error"
)

// GameError is a rejected action. Every code maps to exactly one sentinel
// below, except insufficient letters which also carries the missing letter.
type GameError struct {
	Code   ErrorCode
	Letter rune
}

func (e *GameError) Error() string {
	if e.Code == CodeInsufficientLetters && e.Letter != 0 {
		return string(e.Code) + "_" + string(e.Letter)
	}
	return string(e.Code)
}

// Is matches on code, so any insufficient-letters error matches
// ErrInsufficientLetters regardless of letter.
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	return ok && e.Code == t.Code
}

func newError(code ErrorCode) *GameError {
	return &GameError{Code: code}
}

var (
	ErrRoomNotFound    = newError(CodeRoomNotFound)
	ErrPlayerNotInRoom = newError(CodePlayerNotInRoom)
	ErrRoomFull        = newError(CodeRoomFull)

	ErrNotYourTurn            = newError(CodeNotYourTurn)
	ErrWaitingForSecondPlayer = newError(CodeWaitingForSecondPlayer)
	ErrGameEnded              = newError(CodeGameEnded)
	ErrNoPendingMove          = newError(CodeNoPendingMove)
	ErrCannotResolveOwnMove   = newError(CodeCannotResolveOwnMove)
	ErrChallengeDisabled      = newError(CodeChallengeDisabled)
	ErrPendingMoveUnresolved  = newError(CodePendingMoveUnresolved)
	ErrInvalidChallenge       = newError(CodeInvalidChallenge)

	ErrNoTilesPlaced         = newError(CodeNoTilesPlaced)
	ErrDuplicatePositions    = newError(CodeDuplicatePositions)
	ErrTileOutOfBounds       = newError(CodeTileOutOfBounds)
	ErrCellOccupied          = newError(CodeCellOccupied)
	ErrInvalidLetter         = newError(CodeInvalidLetter)
	ErrTilesNotAdjacent      = newError(CodeTilesNotAdjacent)
	ErrTilesNotConnected     = newError(CodeTilesNotConnected)
	ErrFirstMoveNotOnStar    = newError(CodeFirstMoveNotOnStar)
	ErrMustConnectToExisting = newError(CodeMustConnectToExisting)

	ErrNoWordFormed = newError(CodeNoWordFormed)
	ErrWordTooShort = newError(CodeWordTooShort)
	ErrInvalidWords = newError(CodeInvalidWords)

	ErrInsufficientLetters = newError(CodeInsufficientLetters)
	ErrBagBelowSeven       = newError(CodeBagBelowSeven)
	ErrNoLettersToSwap     = newError(CodeNoLettersToSwap)
	ErrMissingLetter       = newError(CodeMissingLetter)
	ErrNoOpponent          = newError(CodeNoOpponent)

	ErrUnknownMessageType = newError(CodeUnknownMessageType)
	ErrInvalidJSON        = newError(CodeInvalidJSON)
	ErrInvalidTimeLimit   = newError(CodeInvalidTimeLimit)
)

// Infrastructure errors; these never reach clients as codes
var (
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
	ErrDictionaryLookup    = errors.New("dictionary lookup failed")
)

// InsufficientLetters reports that the rack cannot supply the given letter
func InsufficientLetters(letter rune) *GameError {
	return &GameError{Code: CodeInsufficientLetters, Letter: letter}
}

// CodeOf returns the wire code for err, or internal_error for anything
// that is not a GameError.
func CodeOf(err error) string {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Error()
	}
	return string(CodeInternal)
}

// IsGameError reports whether err is a rejected action rather than an
// infrastructure failure
func IsGameError(err error) bool {
	var ge *GameError
	return errors.As(err, &ge)
}

// ParseCode reverses Error() for a wire code, used by clients
func ParseCode(code string) *GameError {
	prefix := string(CodeInsufficientLetters) + "_"
	if rest, ok := strings.CutPrefix(code, prefix); ok && len(rest) == 1 {
		return InsufficientLetters(rune(rest[0]))
	}
	return newError(ErrorCode(code))
}
