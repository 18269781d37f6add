package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mcoot/wordduel-go/internal/model"
)

// DefaultAPIURL is the public free dictionary API
const DefaultAPIURL = "https://api.dictionaryapi.dev/api/v2/entries/en/"

// APISource looks words up over HTTP. A 200 means the word exists, a 404
// that it does not; anything else is an error.
type APISource struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPISource creates a source rooted at baseURL
func NewAPISource(baseURL string, httpClient *http.Client) *APISource {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &APISource{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

var _ Source = (*APISource)(nil)

type apiEntry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
		} `json:"definitions"`
	} `json:"meanings"`
}

func (s *APISource) get(ctx context.Context, word string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+url.PathEscape(word), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return s.httpClient.Do(req)
}

// IsValid checks the word against the API
func (s *APISource) IsValid(ctx context.Context, word string) (bool, error) {
	resp, err := s.get(ctx, word)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("%w: status %d", model.ErrDictionaryLookup, resp.StatusCode)
	}
}

// Definition returns the first definition of the first meaning, or "" if
// the API has none
func (s *APISource) Definition(ctx context.Context, word string) (string, error) {
	resp, err := s.get(ctx, word)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return "", nil
	default:
		return "", fmt.Errorf("%w: status %d", model.ErrDictionaryLookup, resp.StatusCode)
	}

	var entries []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrDictionaryLookup, err)
	}
	if len(entries) == 0 || len(entries[0].Meanings) == 0 || len(entries[0].Meanings[0].Definitions) == 0 {
		return "", nil
	}
	return entries[0].Meanings[0].Definitions[0].Definition, nil
}
