package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordduel-go/internal/api/response"
	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/services/lobby"
)

// RoomHandler serves read-only room views. Playing happens over the
// WebSocket, so no rack is ever shown here.
type RoomHandler struct {
	lobbyController lobby.ControllerInterface
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(lobbyController lobby.ControllerInterface) *RoomHandler {
	return &RoomHandler{
		lobbyController: lobbyController,
	}
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.lobbyController.ListRooms(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	summaries := make([]response.RoomSummary, len(rooms))
	for i, room := range rooms {
		summaries[i] = response.RoomSummaryFromModel(room)
	}
	response.JSON(w, http.StatusOK, summaries)
}

// Get handles GET /api/v1/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.RoomID(mux.Vars(r)["id"])

	room, err := h.lobbyController.GetRoom(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(room, ""))
}

// Health handles GET /api/v1/health
func (h *RoomHandler) Health(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.lobbyController.ListRooms(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Rooms: len(rooms)})
}
