package board

import (
	"strings"

	"github.com/mcoot/wordduel-go/internal/model"
)

// IsConnected reports whether a placement is 4-connected.
//
// On the first move the placed tiles must form one group among themselves.
// Later, a single tile must touch an existing letter, and several tiles
// must form one group over placed and existing letters with at least one
// placed tile touching an existing letter.
func IsConnected(board *model.Board, tiles []model.PlacedTile, firstMove bool) bool {
	if len(tiles) == 0 {
		return false
	}

	placed := make(map[model.Position]struct{}, len(tiles))
	for _, t := range tiles {
		placed[t.Position] = struct{}{}
	}

	if firstMove {
		return reachesAll(tiles, func(pos model.Position) bool {
			_, ok := placed[pos]
			return ok
		})
	}

	if len(tiles) == 1 {
		return board.HasOccupiedNeighbor(tiles[0].Position)
	}

	grouped := reachesAll(tiles, func(pos model.Position) bool {
		if _, ok := placed[pos]; ok {
			return true
		}
		return board.IsOccupied(pos)
	})
	return grouped && touchesExisting(board, tiles)
}

// reachesAll flood-fills from the first tile over squares accepted by
// filled and reports whether every placed tile was reached
func reachesAll(tiles []model.PlacedTile, filled func(model.Position) bool) bool {
	visited := map[model.Position]struct{}{}
	stack := []model.Position{tiles[0].Position}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[current]; ok {
			continue
		}
		visited[current] = struct{}{}
		for _, n := range current.Neighbors() {
			if _, ok := visited[n]; !ok && filled(n) {
				stack = append(stack, n)
			}
		}
	}

	for _, t := range tiles {
		if _, ok := visited[t.Position]; !ok {
			return false
		}
	}
	return true
}

// ExtractWords returns every run of two or more letters that contains a
// placed tile: one horizontal run per distinct row touched and one
// vertical run per distinct column touched, seeded from the first placed
// tile in that row or column.
func ExtractWords(board *model.Board, tiles []model.PlacedTile) []model.FormedWord {
	scratch := board.Clone()
	for _, t := range tiles {
		if t.Position.InBounds() && !scratch.IsOccupied(t.Position) {
			_ = scratch.Place(t.Position, t.Letter, t.Blank)
		}
	}

	var rowSeeds, colSeeds []model.Position
	seenRows := map[int]struct{}{}
	seenCols := map[int]struct{}{}
	for _, t := range tiles {
		if _, ok := seenRows[t.Position.Row]; !ok {
			seenRows[t.Position.Row] = struct{}{}
			rowSeeds = append(rowSeeds, t.Position)
		}
		if _, ok := seenCols[t.Position.Col]; !ok {
			seenCols[t.Position.Col] = struct{}{}
			colSeeds = append(colSeeds, t.Position)
		}
	}

	var words []model.FormedWord
	for _, seed := range rowSeeds {
		if w, ok := runThrough(scratch, seed, 0, 1); ok {
			words = append(words, w)
		}
	}
	for _, seed := range colSeeds {
		if w, ok := runThrough(scratch, seed, 1, 0); ok {
			words = append(words, w)
		}
	}
	return words
}

// runThrough walks back from seed while squares are occupied, then reads
// forward to collect the maximal run. Runs shorter than two are dropped.
func runThrough(board *model.Board, seed model.Position, dRow, dCol int) (model.FormedWord, bool) {
	pos := seed
	for {
		prev := model.Position{Row: pos.Row - dRow, Col: pos.Col - dCol}
		if !board.IsOccupied(prev) {
			break
		}
		pos = prev
	}

	var sb strings.Builder
	var letters []model.PlacedTile
	for board.IsOccupied(pos) {
		cell := board.CellAt(pos)
		sb.WriteRune(cell.Letter)
		letters = append(letters, model.PlacedTile{Letter: cell.Letter, Position: pos, Blank: cell.Blank})
		pos = model.Position{Row: pos.Row + dRow, Col: pos.Col + dCol}
	}

	if len(letters) < 2 {
		return model.FormedWord{}, false
	}
	return model.FormedWord{Text: sb.String(), Tiles: letters}, true
}
