package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/mcoot/wordduel-go/internal/api/response"
	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/services/lobby"
	"github.com/mcoot/wordduel-go/internal/web/templates/layout"
	"github.com/mcoot/wordduel-go/internal/web/templates/pages"
)

// HomeHandler serves the read-only status pages
type HomeHandler struct {
	lobbyController lobby.ControllerInterface
	logger          *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(lobbyController lobby.ControllerInterface, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		lobbyController: lobbyController,
		logger:          logger,
	}
}

// Home lists the live rooms
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.lobbyController.ListRooms(r.Context())
	if err != nil {
		h.logger.Error("failed to list rooms", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pages.RoomsData{
		PageData: layout.PageData{Title: "Rooms"},
		Rooms:    make([]response.RoomSummary, len(rooms)),
	}
	for i, room := range rooms {
		data.Rooms[i] = response.RoomSummaryFromModel(room)
	}
	h.render(w, r, pages.Rooms(data))
}

// Room shows one room as a spectator would see it
func (h *HomeHandler) Room(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(mux.Vars(r)["id"])

	room, err := h.lobbyController.GetRoom(r.Context(), id)
	if err != nil {
		if model.IsGameError(err) {
			http.Error(w, "Room not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to get room", slog.String("room_id", string(id)), slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := pages.RoomData{
		PageData: layout.PageData{Title: "Room " + string(room.ID)},
		Room:     response.RoomFromModel(room, ""),
	}
	if winner := room.Player(room.Winner); winner != nil {
		data.Winner = winner.Name
	}
	h.render(w, r, pages.Room(data))
}

// render writes into a buffer first so a failed component never sends a
// partial page
func (h *HomeHandler) render(w http.ResponseWriter, r *http.Request, page templ.Component) {
	var buf bytes.Buffer
	if err := page.Render(r.Context(), &buf); err != nil {
		h.logger.Error("failed to render page", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
