package game

import (
	"unicode"

	"github.com/mcoot/wordduel-go/internal/model"
)

// normalizeTiles upper-cases the letters of a placement
func normalizeTiles(tiles []model.PlacedTile) []model.PlacedTile {
	result := make([]model.PlacedTile, len(tiles))
	for i, t := range tiles {
		t.Letter = unicode.ToUpper(t.Letter)
		result[i] = t
	}
	return result
}

// normalizeLetters upper-cases rack letters; blanks pass through
func normalizeLetters(letters []rune) []rune {
	result := make([]rune, len(letters))
	for i, l := range letters {
		result[i] = unicode.ToUpper(l)
	}
	return result
}

// consumeLetters takes the tiles of a placement out of a copy of rack.
// Tiles flagged as blank always use a blank. Other tiles use the exact
// letter while the rack has one and fall back to a blank after that. The
// returned tiles carry the blank flag actually used.
func consumeLetters(rack []rune, tiles []model.PlacedTile) ([]rune, []model.PlacedTile, error) {
	remaining := append([]rune(nil), rack...)
	resolved := append([]model.PlacedTile(nil), tiles...)

	take := func(letter rune) bool {
		for i, r := range remaining {
			if r == letter {
				remaining = append(remaining[:i], remaining[i+1:]...)
				return true
			}
		}
		return false
	}

	for _, t := range resolved {
		if t.Blank && !take(model.Blank) {
			return nil, nil, model.InsufficientLetters(t.Letter)
		}
	}

	// Exact letters before any blank substitution
	short := make([]bool, len(resolved))
	for i, t := range resolved {
		if !t.Blank && !take(t.Letter) {
			short[i] = true
		}
	}
	for i := range resolved {
		if !short[i] {
			continue
		}
		if !take(model.Blank) {
			return nil, nil, model.InsufficientLetters(resolved[i].Letter)
		}
		resolved[i].Blank = true
	}

	return remaining, resolved, nil
}
