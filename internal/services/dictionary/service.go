package dictionary

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/mcoot/wordduel-go/internal/storage"
)

// Source answers word lookups. Implementations honour ctx cancellation.
type Source interface {
	IsValid(ctx context.Context, word string) (bool, error)
	Definition(ctx context.Context, word string) (string, error)
}

// Config holds lookup timeouts
type Config struct {
	ValidityTimeout   time.Duration
	DefinitionTimeout time.Duration
}

// DefaultConfig returns the standard lookup timeouts
func DefaultConfig() Config {
	return Config{
		ValidityTimeout:   2500 * time.Millisecond,
		DefinitionTimeout: 3 * time.Second,
	}
}

// Service validates words and fetches definitions through a Source, with
// results cached by upper-cased word. A lookup that fails or times out is
// treated as invalid (or as having no definition) and cached that way.
type Service struct {
	source Source
	cache  storage.DictionaryCache
	cfg    Config
	logger *slog.Logger

	validity    singleflight.Group
	definitions singleflight.Group
}

// New creates a new DictionaryService
func New(source Source, cache storage.DictionaryCache, cfg Config, logger *slog.Logger) *Service {
	return &Service{
		source: source,
		cache:  cache,
		cfg:    cfg,
		logger: logger,
	}
}

func normalize(word string) string {
	return strings.ToUpper(strings.TrimSpace(word))
}

// IsValidWord reports whether word is a dictionary word. Words shorter
// than two letters are never valid.
func (s *Service) IsValidWord(ctx context.Context, word string) bool {
	key := normalize(word)
	if len([]rune(key)) < 2 {
		return false
	}

	if valid, found, err := s.cache.GetValidity(ctx, key); err != nil {
		s.logger.Warn("dictionary cache read failed",
			slog.String("word", key),
			slog.String("error", err.Error()),
		)
	} else if found {
		return valid
	}

	// Concurrent callers for the same word share one lookup
	result, _, _ := s.validity.Do(key, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ValidityTimeout)
		defer cancel()

		valid, err := s.source.IsValid(lookupCtx, key)
		if err != nil {
			s.logger.Warn("word lookup failed, treating as invalid",
				slog.String("word", key),
				slog.String("error", err.Error()),
			)
			valid = false
		}

		if err := s.cache.SaveValidity(context.WithoutCancel(ctx), key, valid); err != nil {
			s.logger.Warn("dictionary cache write failed",
				slog.String("word", key),
				slog.String("error", err.Error()),
			)
		}
		return valid, nil
	})
	return result.(bool)
}

// Definition returns the word's definition, or false if none is known
func (s *Service) Definition(ctx context.Context, word string) (string, bool) {
	key := normalize(word)
	if key == "" {
		return "", false
	}

	if definition, found, err := s.cache.GetDefinition(ctx, key); err != nil {
		s.logger.Warn("dictionary cache read failed",
			slog.String("word", key),
			slog.String("error", err.Error()),
		)
	} else if found {
		return definition, definition != ""
	}

	result, _, _ := s.definitions.Do(key, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.DefinitionTimeout)
		defer cancel()

		definition, err := s.source.Definition(lookupCtx, key)
		if err != nil {
			s.logger.Warn("definition lookup failed",
				slog.String("word", key),
				slog.String("error", err.Error()),
			)
			definition = ""
		}

		if err := s.cache.SaveDefinition(context.WithoutCancel(ctx), key, definition); err != nil {
			s.logger.Warn("dictionary cache write failed",
				slog.String("word", key),
				slog.String("error", err.Error()),
			)
		}
		return definition, nil
	})
	definition := result.(string)
	return definition, definition != ""
}

// CheckWords validates words concurrently and returns validity keyed by
// the words as given
func (s *Service) CheckWords(ctx context.Context, words []string) map[string]bool {
	results := make(map[string]bool, len(words))
	var mu sync.Mutex

	var g errgroup.Group
	for _, word := range words {
		g.Go(func() error {
			valid := s.IsValidWord(ctx, word)
			mu.Lock()
			results[word] = valid
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Definitions fetches definitions concurrently; words without a known
// definition are left out
func (s *Service) Definitions(ctx context.Context, words []string) map[string]string {
	results := make(map[string]string, len(words))
	var mu sync.Mutex

	var g errgroup.Group
	for _, word := range words {
		g.Go(func() error {
			if definition, ok := s.Definition(ctx, word); ok {
				mu.Lock()
				results[word] = definition
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Interface for dependency injection
type ServiceInterface interface {
	IsValidWord(ctx context.Context, word string) bool
	Definition(ctx context.Context, word string) (string, bool)
	CheckWords(ctx context.Context, words []string) map[string]bool
	Definitions(ctx context.Context, words []string) map[string]string
}

var _ ServiceInterface = (*Service)(nil)
