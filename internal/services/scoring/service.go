package scoring

import (
	"github.com/mcoot/wordduel-go/internal/model"
)

// Service provides scoring for placements
type Service struct{}

// New creates a new ScoringService
func New() *Service {
	return &Service{}
}

// MoveScore is the scored result of a placement
type MoveScore struct {
	Words   []model.WordScore // In extraction order; Valid is left for the caller
	Total   int               // Sum of word scores plus the bingo bonus
	IsBingo bool
}

// ScoreWord sums letter points with letter premiums, then applies the
// product of the word premiums under the word. Blanks score 0. Premiums
// apply on every square of the word, so two words sharing a premium
// square both receive it.
func (s *Service) ScoreWord(word model.FormedWord) int {
	sum := 0
	multiplier := 1
	for _, t := range word.Tiles {
		premium := model.PremiumAt(t.Position)
		points := 0
		if !t.Blank {
			points = model.LetterPoints(t.Letter)
		}
		sum += points * premium.LetterMultiplier()
		multiplier *= premium.WordMultiplier()
	}
	return sum * multiplier
}

// ScoreMove scores every formed word and adds the bingo bonus when the
// whole rack was placed
func (s *Service) ScoreMove(words []model.FormedWord, tilesPlaced int) MoveScore {
	result := MoveScore{
		Words: make([]model.WordScore, 0, len(words)),
	}
	for _, w := range words {
		score := s.ScoreWord(w)
		result.Words = append(result.Words, model.WordScore{Word: w.Text, Score: score})
		result.Total += score
	}

	if tilesPlaced == model.RackSize {
		result.IsBingo = true
		result.Total += model.BingoBonus
	}
	return result
}

// RackValue returns the face value of the given tiles
func (s *Service) RackValue(rack []rune) int {
	total := 0
	for _, letter := range rack {
		total += model.LetterPoints(letter)
	}
	return total
}

// Interface for dependency injection
type ServiceInterface interface {
	ScoreWord(word model.FormedWord) int
	ScoreMove(words []model.FormedWord, tilesPlaced int) MoveScore
	RackValue(rack []rune) int
}

var _ ServiceInterface = (*Service)(nil)
