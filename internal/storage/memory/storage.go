package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interfaces
type Storage struct {
	mu sync.RWMutex

	rooms           map[model.RoomID]*model.Room
	validity        map[string]bool
	definitions     map[string]string
	dictionaryWords []string
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		rooms:       make(map[model.RoomID]*model.Room),
		validity:    make(map[string]bool),
		definitions: make(map[string]string),
	}
}

// Ensure Storage implements the interfaces
var (
	_ storage.Storage         = (*Storage)(nil)
	_ storage.DictionaryCache = (*Storage)(nil)
)

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.ID] = room
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room, nil
}

// ListRooms returns rooms oldest first
func (s *Storage) ListRooms(ctx context.Context) ([]*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*model.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool {
		if rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].ID < rooms[j].ID
		}
		return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
	})
	return rooms, nil
}

func (s *Storage) RoomExists(ctx context.Context, id model.RoomID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[id]
	return ok, nil
}

// Dictionary operations

func (s *Storage) GetValidity(ctx context.Context, word string) (bool, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	valid, ok := s.validity[word]
	return valid, ok, nil
}

func (s *Storage) SaveValidity(ctx context.Context, word string, valid bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validity[word] = valid
	return nil
}

func (s *Storage) GetDefinition(ctx context.Context, word string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	definition, ok := s.definitions[word]
	return definition, ok, nil
}

func (s *Storage) SaveDefinition(ctx context.Context, word string, definition string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.definitions[word] = definition
	return nil
}

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}
