package storage

import (
	"context"

	"github.com/mcoot/wordduel-go/internal/model"
)

// Storage holds the live rooms of this process
type Storage interface {
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id model.RoomID) (*model.Room, error)
	ListRooms(ctx context.Context) ([]*model.Room, error)
	RoomExists(ctx context.Context, id model.RoomID) (bool, error)
}

// DictionaryCache keeps dictionary results keyed by upper-cased word. A
// cached negative is as final as a cached positive.
type DictionaryCache interface {
	// GetValidity returns found=false when the word has not been looked up
	GetValidity(ctx context.Context, word string) (valid bool, found bool, err error)
	SaveValidity(ctx context.Context, word string, valid bool) error

	// GetDefinition returns found=false when the word has not been looked
	// up. A found empty definition means none is known.
	GetDefinition(ctx context.Context, word string) (definition string, found bool, err error)
	SaveDefinition(ctx context.Context, word string, definition string) error

	// Word list for the local dictionary source
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
