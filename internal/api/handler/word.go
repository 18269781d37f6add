package handler

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordduel-go/internal/api/response"
	"github.com/mcoot/wordduel-go/internal/model"
	"github.com/mcoot/wordduel-go/internal/services/dictionary"
)

// WordHandler answers dictionary lookups
type WordHandler struct {
	dictionary dictionary.ServiceInterface
}

// NewWordHandler creates a new word handler
func NewWordHandler(dictionary dictionary.ServiceInterface) *WordHandler {
	return &WordHandler{
		dictionary: dictionary,
	}
}

// Get handles GET /api/v1/words/{word}
func (h *WordHandler) Get(w http.ResponseWriter, r *http.Request) {
	word := strings.ToUpper(mux.Vars(r)["word"])
	if utf8.RuneCountInString(word) > model.BoardSize {
		WriteError(w, NewInvalidRequestError("Word is longer than the board"))
		return
	}
	for _, letter := range word {
		if !model.IsLetter(letter) {
			WriteError(w, NewInvalidRequestError("Word must be letters A-Z"))
			return
		}
	}

	lookup := response.WordLookup{
		Word:  word,
		Valid: h.dictionary.IsValidWord(r.Context(), word),
	}
	if lookup.Valid {
		lookup.Definition, _ = h.dictionary.Definition(r.Context(), word)
	}
	response.JSON(w, http.StatusOK, lookup)
}
