package dictionary

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/storage"
)

// WordListSource answers lookups from a local word list. It has no
// definitions.
type WordListSource struct {
	storage storage.DictionaryCache

	mu     sync.RWMutex
	words  map[string]struct{}
	loaded bool
}

// NewWordListSource creates an empty word list backed by storage
func NewWordListSource(storage storage.DictionaryCache) *WordListSource {
	return &WordListSource{
		storage: storage,
		words:   make(map[string]struct{}),
	}
}

var _ Source = (*WordListSource)(nil)

// LoadFromStorage loads dictionary words from storage
func (s *WordListSource) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	s.loadWords(words)
	return nil
}

// LoadFromFile loads dictionary words from a file (one word per line)
func (s *WordListSource) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" && !strings.HasPrefix(word, "#") {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// Save to storage so other instances can load without the file
	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}

	s.loadWords(words)
	return nil
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *WordListSource) LoadWords(words []string) {
	s.loadWords(words)
}

func (s *WordListSource) loadWords(words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	for _, word := range words {
		s.words[normalize(word)] = struct{}{}
	}
	s.loaded = true
}

// IsValid reports whether the word is in the list
func (s *WordListSource) IsValid(ctx context.Context, word string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false, model.ErrDictionaryNotLoaded
	}
	_, ok := s.words[normalize(word)]
	return ok, nil
}

// Definition always reports no definition
func (s *WordListSource) Definition(ctx context.Context, word string) (string, error) {
	return "", nil
}

// WordCount returns the number of words in the list
func (s *WordListSource) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}
