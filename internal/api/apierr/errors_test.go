package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordduel-go/internal/model"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "room not found", err: model.ErrRoomNotFound, status: http.StatusNotFound, code: "room_not_found"},
		{name: "not your turn", err: model.ErrNotYourTurn, status: http.StatusForbidden, code: "not_your_turn"},
		{name: "game ended", err: model.ErrGameEnded, status: http.StatusConflict, code: "game_ended"},
		{name: "placement rule", err: model.ErrFirstMoveNotOnStar, status: http.StatusBadRequest, code: "first_move_must_touch_center_star"},
		{name: "invalid words", err: model.ErrInvalidWords, status: http.StatusUnprocessableEntity, code: "invalid_words_formed"},
		{name: "insufficient letter", err: model.InsufficientLetters('Q'), status: http.StatusUnprocessableEntity, code: "insufficient_letters_Q"},
		{name: "wrapped game error", err: fmt.Errorf("joining: %w", model.ErrRoomFull), status: http.StatusConflict, code: "room_full"},
		{name: "invalid request", err: NewInvalidRequestError("bad"), status: http.StatusBadRequest, code: CodeInvalidRequest},
		{name: "infrastructure", err: errors.New("connection refused"), status: http.StatusInternalServerError, code: CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestInfrastructureErrorsDoNotLeak(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("redis: connection refused"))

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Internal server error", resp.Error.Message)
}
