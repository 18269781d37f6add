package tilebag

import (
	"github.com/mcoot/wordduel-go/internal/dependencies/random"
	"github.com/mcoot/wordduel-go/internal/model"
)

// Service manages the tile bag and player racks
type Service struct {
	random random.Random
}

// New creates a new TileBagService
func New(random random.Random) *Service {
	return &Service{
		random: random,
	}
}

// NewBag returns a shuffled full set of tiles
func (s *Service) NewBag() []rune {
	bag := make([]rune, 0, model.TotalTiles)
	for letter := 'A'; letter <= 'Z'; letter++ {
		for i := 0; i < model.Distribution[letter]; i++ {
			bag = append(bag, letter)
		}
	}
	for i := 0; i < model.Distribution[model.Blank]; i++ {
		bag = append(bag, model.Blank)
	}
	s.shuffle(bag)
	return bag
}

// Fisher-Yates from the end
func (s *Service) shuffle(bag []rune) {
	for i := len(bag) - 1; i > 0; i-- {
		j := s.random.Intn(i + 1)
		bag[i], bag[j] = bag[j], bag[i]
	}
}

// Draw removes up to n tiles from the top of the bag. It never fails;
// fewer tiles come back when the bag runs short.
func (s *Service) Draw(bag []rune, n int) (remaining []rune, drawn []rune) {
	if n > len(bag) {
		n = len(bag)
	}
	if n <= 0 {
		return bag, nil
	}
	drawn = make([]rune, 0, n)
	for i := 0; i < n; i++ {
		drawn = append(drawn, bag[len(bag)-1-i])
	}
	return bag[:len(bag)-n], drawn
}

// Deal fills the player's rack up to RackSize and returns the drawn tiles
func (s *Service) Deal(room *model.Room, player *model.Player) []rune {
	var drawn []rune
	room.Bag, drawn = s.Draw(room.Bag, model.RackSize-len(player.Rack))
	player.Rack = append(player.Rack, drawn...)
	return drawn
}

// Swap exchanges letters from the player's rack. The surrendered tiles go
// to the bottom of the bag so the same operation cannot draw them back.
func (s *Service) Swap(room *model.Room, player *model.Player, letters []rune) error {
	if len(room.Bag) < model.RackSize {
		return model.ErrBagBelowSeven
	}
	if len(letters) == 0 {
		return model.ErrNoLettersToSwap
	}

	rack, err := RemoveLetters(player.Rack, letters)
	if err != nil {
		return err
	}

	bag := make([]rune, 0, len(room.Bag)+len(letters))
	for i := len(letters) - 1; i >= 0; i-- {
		bag = append(bag, letters[i])
	}
	bag = append(bag, room.Bag...)

	var drawn []rune
	room.Bag, drawn = s.Draw(bag, len(letters))
	player.Rack = append(rack, drawn...)
	return nil
}

// Return pushes tiles back on top of the bag in reverse draw order, undoing
// a Draw that returned drawn
func (s *Service) Return(room *model.Room, drawn []rune) {
	for i := len(drawn) - 1; i >= 0; i-- {
		room.Bag = append(room.Bag, drawn[i])
	}
}

// Stats counts tiles left in the bag, and vowels and consonants across the
// bag, racks and board. Blanks are in neither count.
func (s *Service) Stats(room *model.Room) model.TileBagStats {
	stats := model.TileBagStats{TotalRemaining: len(room.Bag)}

	count := func(letters []rune) {
		for _, letter := range letters {
			switch {
			case letter == model.Blank:
			case model.IsVowel(letter):
				stats.VowelsRemaining++
			default:
				stats.ConsonantsRemaining++
			}
		}
	}

	count(room.Bag)
	for _, p := range room.Players {
		count(p.Rack)
	}
	count(room.Board.Letters())
	return stats
}

// RemoveLetters returns a copy of rack without one occurrence of each
// letter, or ErrMissingLetter if the rack does not hold them all
func RemoveLetters(rack []rune, letters []rune) ([]rune, error) {
	result := append([]rune(nil), rack...)
	for _, letter := range letters {
		idx := -1
		for i, r := range result {
			if r == letter {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, model.ErrMissingLetter
		}
		result = append(result[:idx], result[idx+1:]...)
	}
	return result, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	NewBag() []rune
	Draw(bag []rune, n int) (remaining []rune, drawn []rune)
	Deal(room *model.Room, player *model.Player) []rune
	Swap(room *model.Room, player *model.Player, letters []rune) error
	Return(room *model.Room, drawn []rune)
	Stats(room *model.Room) model.TileBagStats
}

var _ ServiceInterface = (*Service)(nil)
