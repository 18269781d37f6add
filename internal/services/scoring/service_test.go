package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordduel-go/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

// Helper to lay a word out across a row
func across(text string, row, col int) model.FormedWord {
	word := model.FormedWord{Text: text}
	for i, letter := range text {
		word.Tiles = append(word.Tiles, model.PlacedTile{Letter: letter, Position: model.Position{Row: row, Col: col + i}})
	}
	return word
}

// ScoreWord tests

func (s *ServiceSuite) TestScoreWordDoubledByStar() {
	// H(4)+E+L+L+O = 8, the star doubles the word
	s.Equal(16, s.service.ScoreWord(across("HELLO", 7, 6)))
}

func (s *ServiceSuite) TestScoreWordDoubleLetter() {
	// O lands on the double letter at (7,11): (8+1) x2
	s.Equal(18, s.service.ScoreWord(across("HELLO", 7, 7)))
}

func (s *ServiceSuite) TestScoreWordTripleLetter() {
	// Z on (5,5): 10x3 + 1
	s.Equal(31, s.service.ScoreWord(across("ZA", 5, 5)))
}

func (s *ServiceSuite) TestScoreWordTripleWord() {
	// Q on (0,0): (10+1) x3
	s.Equal(33, s.service.ScoreWord(across("QI", 0, 0)))
}

func (s *ServiceSuite) TestScoreWordMultipliesWordPremiums() {
	// Spans TW (0,0) and TW (0,7), D on the double letter at (0,3)
	// 1+3+3+4+1+4+2+4 = 22, x9
	s.Equal(198, s.service.ScoreWord(across("ABCDEFGH", 0, 0)))
}

func (s *ServiceSuite) TestScoreWordBlankScoresZero() {
	word := across("HI", 7, 7)
	word.Tiles[1].Blank = true
	s.Equal(8, s.service.ScoreWord(word))

	word.Tiles[0].Blank = true
	s.Equal(0, s.service.ScoreWord(word))
}

func (s *ServiceSuite) TestScoreWordPlainSquares() {
	s.Equal(2, s.service.ScoreWord(across("AT", 4, 6)))
}

// ScoreMove tests

func (s *ServiceSuite) TestScoreMoveSumsWords() {
	words := []model.FormedWord{across("AT", 4, 6), across("QI", 0, 0)}
	result := s.service.ScoreMove(words, 2)

	s.Equal(35, result.Total)
	s.False(result.IsBingo)
	s.Require().Len(result.Words, 2)
	s.Equal(model.WordScore{Word: "AT", Score: 2}, result.Words[0])
	s.Equal(model.WordScore{Word: "QI", Score: 33}, result.Words[1])
}

func (s *ServiceSuite) TestScoreMoveBingoAtSevenTiles() {
	word := across("RETAINS", 4, 3)
	base := s.service.ScoreWord(word)

	result := s.service.ScoreMove([]model.FormedWord{word}, 7)
	s.True(result.IsBingo)
	s.Equal(base+50, result.Total)
}

func (s *ServiceSuite) TestScoreMoveNoBingoBelowSevenTiles() {
	for placed := 1; placed < 7; placed++ {
		word := across("RETAINS", 4, 3)
		result := s.service.ScoreMove([]model.FormedWord{word}, placed)
		s.False(result.IsBingo)
		s.Equal(s.service.ScoreWord(word), result.Total)
	}
}

// RackValue tests

func (s *ServiceSuite) TestRackValue() {
	s.Equal(0, s.service.RackValue(nil))
	s.Equal(21, s.service.RackValue([]rune{'Q', 'Z', model.Blank, 'A'}))
}
