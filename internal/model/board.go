package model

// BoardSize is the grid dimension
const BoardSize = 15

// Position identifies a cell on the board
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left
}

// Center is the star square every first move must cover
var Center = Position{Row: BoardSize / 2, Col: BoardSize / 2}

// InBounds returns true if the position is on the board
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Neighbors returns the in-bounds orthogonal neighbours of p
func (p Position) Neighbors() []Position {
	candidates := [4]Position{
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row + 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col + 1},
	}
	result := make([]Position, 0, 4)
	for _, c := range candidates {
		if c.InBounds() {
			result = append(result, c)
		}
	}
	return result
}

// Premium classifies a square's score multiplier
type Premium string

const (
	PremiumNone Premium = ""
	PremiumDL   Premium = "DL"
	PremiumTL   Premium = "TL"
	PremiumDW   Premium = "DW"
	PremiumTW   Premium = "TW"
	PremiumStar Premium = "STAR"
)

// LetterMultiplier returns the factor applied to a letter on this square
func (p Premium) LetterMultiplier() int {
	switch p {
	case PremiumDL:
		return 2
	case PremiumTL:
		return 3
	default:
		return 1
	}
}

// WordMultiplier returns the factor applied to a word covering this square.
// The centre star doubles the word.
func (p Premium) WordMultiplier() int {
	switch p {
	case PremiumDW, PremiumStar:
		return 2
	case PremiumTW:
		return 3
	default:
		return 1
	}
}

var premiumSquares = map[Premium][]Position{
	PremiumTW: {
		{0, 0}, {0, 7}, {0, 14},
		{7, 0}, {7, 14},
		{14, 0}, {14, 7}, {14, 14},
	},
	PremiumDW: {
		{1, 1}, {2, 2}, {3, 3}, {4, 4},
		{10, 10}, {11, 11}, {12, 12}, {13, 13},
		{1, 13}, {2, 12}, {3, 11}, {4, 10},
		{10, 4}, {11, 3}, {12, 2}, {13, 1},
	},
	PremiumTL: {
		{1, 5}, {1, 9},
		{5, 1}, {5, 5}, {5, 9}, {5, 13},
		{9, 1}, {9, 5}, {9, 9}, {9, 13},
		{13, 5}, {13, 9},
	},
	PremiumDL: {
		{0, 3}, {0, 11},
		{2, 6}, {2, 8},
		{3, 0}, {3, 7}, {3, 14},
		{6, 2}, {6, 6}, {6, 8}, {6, 12},
		{7, 3}, {7, 11},
		{8, 2}, {8, 6}, {8, 8}, {8, 12},
		{11, 0}, {11, 7}, {11, 14},
		{12, 6}, {12, 8},
		{14, 3}, {14, 11},
	},
}

// premiumLayout is the stamped grid, built once
var premiumLayout = func() [BoardSize][BoardSize]Premium {
	var layout [BoardSize][BoardSize]Premium
	for _, premium := range []Premium{PremiumTW, PremiumDW, PremiumTL, PremiumDL} {
		for _, pos := range premiumSquares[premium] {
			layout[pos.Row][pos.Col] = premium
		}
	}
	layout[Center.Row][Center.Col] = PremiumStar
	return layout
}()

// PremiumAt returns the premium of a square; it is the same for every board
func PremiumAt(pos Position) Premium {
	if !pos.InBounds() {
		return PremiumNone
	}
	return premiumLayout[pos.Row][pos.Col]
}

// Cell is one square of the board
type Cell struct {
	Letter  rune // 0 means empty
	Blank   bool // true when a blank tile stands for Letter
	Premium Premium
}

// Board is the shared 15x15 grid. The array layout makes a value copy a
// full clone.
type Board struct {
	Cells [BoardSize][BoardSize]Cell // Row-major: Cells[row][col]
}

// NewBoard creates an empty board with the premium layout stamped
func NewBoard() *Board {
	b := &Board{}
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			b.Cells[row][col].Premium = premiumLayout[row][col]
		}
	}
	return b
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// CellAt returns the cell at pos, or an empty cell when out of bounds
func (b *Board) CellAt(pos Position) Cell {
	if !pos.InBounds() {
		return Cell{}
	}
	return b.Cells[pos.Row][pos.Col]
}

// LetterAt returns the letter at pos, or 0 if empty
func (b *Board) LetterAt(pos Position) rune {
	return b.CellAt(pos).Letter
}

// IsOccupied returns true if pos holds a letter
func (b *Board) IsOccupied(pos Position) bool {
	return b.LetterAt(pos) != 0
}

// IsEmpty returns true if no letters have been placed; an empty board
// means the next move is the first move
func (b *Board) IsEmpty() bool {
	return b.TileCount() == 0
}

// TileCount returns the number of letters on the board
func (b *Board) TileCount() int {
	count := 0
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if b.Cells[row][col].Letter != 0 {
				count++
			}
		}
	}
	return count
}

// Letters returns every letter on the board, blanks reported as Blank
func (b *Board) Letters() []rune {
	var letters []rune
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			cell := b.Cells[row][col]
			switch {
			case cell.Letter == 0:
			case cell.Blank:
				letters = append(letters, Blank)
			default:
				letters = append(letters, cell.Letter)
			}
		}
	}
	return letters
}

// HasOccupiedNeighbor returns true if any orthogonal neighbour holds a letter
func (b *Board) HasOccupiedNeighbor(pos Position) bool {
	for _, n := range pos.Neighbors() {
		if b.IsOccupied(n) {
			return true
		}
	}
	return false
}

// Place writes a letter to an empty square
func (b *Board) Place(pos Position, letter rune, blank bool) error {
	if !pos.InBounds() {
		return ErrTileOutOfBounds
	}
	if b.IsOccupied(pos) {
		return ErrCellOccupied
	}
	b.Cells[pos.Row][pos.Col].Letter = letter
	b.Cells[pos.Row][pos.Col].Blank = blank
	return nil
}

// Clear empties a square. Only used to roll back a provisional move.
func (b *Board) Clear(pos Position) {
	if !pos.InBounds() {
		return
	}
	b.Cells[pos.Row][pos.Col].Letter = 0
	b.Cells[pos.Row][pos.Col].Blank = false
}
