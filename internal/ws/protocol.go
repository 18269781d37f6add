package ws

import (
	"encoding/json"

	"github.com/mcoot/wordduel-go/internal/api/response"
	"github.com/mcoot/wordduel-go/internal/model"
)

// MessageType identifies a protocol message
type MessageType string

// Client to server
const (
	TypeCreateRoom       MessageType = "create_room"
	TypeJoinRoom         MessageType = "join_room"
	TypePlaceWord        MessageType = "place_word"
	TypeSwapTiles        MessageType = "swap_tiles"
	TypeResolveChallenge MessageType = "resolve_challenge"
	TypeSkipTurn         MessageType = "skip_turn"
	TypeResignGame       MessageType = "resign_game"
	TypePing             MessageType = "ping"
)

// Server to client
const (
	TypeConnected  MessageType = "connected"
	TypeRoomUpdate MessageType = "room_update"
	TypeError      MessageType = "error"
	TypePong       MessageType = "pong"
)

// ClientMessage is any message a client sends. Fields a type does not use
// are ignored.
type ClientMessage struct {
	Type          MessageType     `json:"type"`
	PlayerName    string          `json:"playerName,omitempty"`
	TimeLimitMs   *int64          `json:"timeLimitMs,omitempty"`
	ChallengeMode *bool           `json:"challengeMode,omitempty"`
	RoomID        string          `json:"roomId,omitempty"`
	Tiles         []response.Tile `json:"tiles,omitempty"`
	Letters       []string        `json:"letters,omitempty"`
	Action        string          `json:"action,omitempty"`
}

// ServerMessage is any message the server sends
type ServerMessage struct {
	Type     MessageType      `json:"type"`
	ClientID string           `json:"clientId,omitempty"`
	Room     *response.Room   `json:"room,omitempty"`
	You      *response.Player `json:"you,omitempty"`
	Error    string           `json:"error,omitempty"`
	T        int64            `json:"t,omitempty"`
}

// roomUpdate renders room as seen by viewer. You is nil for non-members.
func roomUpdate(room *model.Room, viewer model.PlayerID) ServerMessage {
	snapshot := response.RoomFromModel(room, viewer)
	msg := ServerMessage{Type: TypeRoomUpdate, Room: &snapshot}
	if p := room.Player(viewer); p != nil {
		you := response.PlayerFromModel(p, true)
		msg.You = &you
	}
	return msg
}

func errorMessage(err error) ServerMessage {
	return ServerMessage{Type: TypeError, Error: model.CodeOf(err)}
}

func encode(msg ServerMessage) ([]byte, error) {
	return json.Marshal(msg)
}
