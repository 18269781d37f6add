package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/wordduel-go/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Error codes that only the HTTP API produces. Game errors use their own
// codes, the same ones the WebSocket protocol sends.
const (
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
	CodeInternalError  = string(model.CodeInternal)
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var ge *model.GameError
	if !errors.As(err, &ge) {
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
	return &httpError{statusOf(ge.Code), APIError{ge.Error(), messageOf(ge)}}
}

// statusOf maps a game error code to an HTTP status
func statusOf(code model.ErrorCode) int {
	switch code {
	case model.CodeRoomNotFound:
		return http.StatusNotFound
	case model.CodePlayerNotInRoom, model.CodeNotYourTurn, model.CodeCannotResolveOwnMove:
		return http.StatusForbidden
	case model.CodeRoomFull,
		model.CodeWaitingForSecondPlayer,
		model.CodeGameEnded,
		model.CodeNoPendingMove,
		model.CodeChallengeDisabled,
		model.CodePendingMoveUnresolved,
		model.CodeNoOpponent:
		return http.StatusConflict
	case model.CodeInvalidWords, model.CodeInsufficientLetters, model.CodeMissingLetter, model.CodeBagBelowSeven:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

var messages = map[model.ErrorCode]string{
	model.CodeRoomNotFound:           "Room not found",
	model.CodePlayerNotInRoom:        "Not a player in this room",
	model.CodeRoomFull:               "Room is full",
	model.CodeNotYourTurn:            "Not your turn",
	model.CodeWaitingForSecondPlayer: "Waiting for a second player",
	model.CodeGameEnded:              "Game has ended",
	model.CodeNoPendingMove:          "No move is awaiting resolution",
	model.CodeCannotResolveOwnMove:   "Cannot resolve your own move",
	model.CodeChallengeDisabled:      "Challenges are off in this room",
	model.CodePendingMoveUnresolved:  "A move is awaiting accept or challenge",
	model.CodeInvalidChallenge:       "Action must be accept or challenge",
	model.CodeNoTilesPlaced:          "No tiles placed",
	model.CodeDuplicatePositions:     "Two tiles on the same square",
	model.CodeTileOutOfBounds:        "Tile is off the board",
	model.CodeCellOccupied:           "Square is already occupied",
	model.CodeInvalidLetter:          "Letter must be A-Z",
	model.CodeTilesNotAdjacent:       "Tiles must be adjacent",
	model.CodeTilesNotConnected:      "Tiles must be connected",
	model.CodeFirstMoveNotOnStar:     "First move must cover the center star",
	model.CodeMustConnectToExisting:  "Move must connect to tiles on the board",
	model.CodeNoWordFormed:           "Move must form at least one word",
	model.CodeWordTooShort:           "Words must be at least 2 letters",
	model.CodeInvalidWords:           "Move forms words not in the dictionary",
	model.CodeInsufficientLetters:    "Rack does not hold the letters",
	model.CodeBagBelowSeven:          "Cannot swap with fewer than 7 tiles in the bag",
	model.CodeNoLettersToSwap:        "No letters to swap",
	model.CodeMissingLetter:          "Rack does not hold a letter to swap",
	model.CodeNoOpponent:             "No opponent",
	model.CodeUnknownMessageType:     "Unknown message type",
	model.CodeInvalidJSON:            "Malformed JSON",
	model.CodeInvalidTimeLimit:       "Time limit out of range",
}

func messageOf(ge *model.GameError) string {
	if msg, ok := messages[ge.Code]; ok {
		return msg
	}
	return ge.Error()
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewNotFoundError creates a not found error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
