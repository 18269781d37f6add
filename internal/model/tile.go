package model

// Blank is the rack and bag representation of a blank tile
const Blank rune = '_'

const (
	RackSize   = 7   // Tiles a rack is refilled to
	TotalTiles = 100 // Tiles in a full set
	BingoBonus = 50  // Bonus for placing a whole rack in one move
)

// Distribution is the standard English tile set
var Distribution = map[rune]int{
	'A': 9, 'B': 2, 'C': 2, 'D': 4, 'E': 12, 'F': 2, 'G': 3, 'H': 2, 'I': 9,
	'J': 1, 'K': 1, 'L': 4, 'M': 2, 'N': 6, 'O': 8, 'P': 2, 'Q': 1, 'R': 6,
	'S': 4, 'T': 6, 'U': 4, 'V': 2, 'W': 2, 'X': 1, 'Y': 2, 'Z': 1,
	Blank: 2,
}

var letterPoints = map[rune]int{
	'A': 1, 'B': 3, 'C': 3, 'D': 2, 'E': 1, 'F': 4, 'G': 2, 'H': 4, 'I': 1,
	'J': 8, 'K': 5, 'L': 1, 'M': 3, 'N': 1, 'O': 1, 'P': 3, 'Q': 10, 'R': 1,
	'S': 1, 'T': 1, 'U': 1, 'V': 4, 'W': 4, 'X': 8, 'Y': 4, 'Z': 10,
}

// LetterPoints returns the face value of a tile. Blanks and unknown runes
// score 0.
func LetterPoints(letter rune) int {
	return letterPoints[letter]
}

// IsLetter returns true for A-Z
func IsLetter(letter rune) bool {
	return letter >= 'A' && letter <= 'Z'
}

// IsVowel returns true for A, E, I, O and U
func IsVowel(letter rune) bool {
	switch letter {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	}
	return false
}

// TileBagStats summarises tile composition for display
type TileBagStats struct {
	TotalRemaining      int // Tiles left in the bag
	VowelsRemaining     int // Vowels across bag, racks and board
	ConsonantsRemaining int // Consonants across bag, racks and board
}
