package twisty

// Grid is a square matrix of cells, indexed [row][column].
type Grid[T any] [][]T

// Flatten returns the cells in row-major order.
func (g Grid[T]) Flatten() []T {
	out := make([]T, 0, len(g)*len(g))
	for _, row := range g {
		out = append(out, row...)
	}
	return out
}

// RotateGrid returns g turned a quarter turn. Clockwise, cell (i, j) of
// the result is g[n-1-j][i]; counter-clockwise it is g[j][n-1-i].
func RotateGrid[T any](g Grid[T], clockwise bool) Grid[T] {
	n := len(g)
	out := make(Grid[T], n)
	for i := 0; i < n; i++ {
		out[i] = make([]T, n)
		for j := 0; j < n; j++ {
			if clockwise {
				out[i][j] = g[n-1-j][i]
			} else {
				out[i][j] = g[j][n-1-i]
			}
		}
	}
	return out
}

// fill describes how a layer grid is populated as ids arrive in
// ascending order.
type fill uint8

const (
	fillForward  fill = iota // rows top-down, each row left to right
	fillMirrored             // rows top-down, each row right to left
	fillBottomUp             // rows bottom-up, each row left to right
)

// fillOrder keeps every layer's grid in the orientation its clockwise
// turn expects. R and B are seen mirrored relative to their opposite
// faces, D and E are seen from below.
var fillOrder = [LayerCount]fill{
	LayerU: fillForward,
	LayerD: fillBottomUp,
	LayerL: fillForward,
	LayerR: fillMirrored,
	LayerF: fillForward,
	LayerB: fillMirrored,
	LayerM: fillForward,
	LayerE: fillBottomUp,
	LayerS: fillForward,
}

// LayersOf returns the layers containing a piece at cell, in the fixed
// order R U B L D F M E S.
func LayersOf(cell Vec3) []Layer {
	var layers []Layer
	if cell.X > 0 {
		layers = append(layers, LayerR)
	}
	if cell.Y < 0 {
		layers = append(layers, LayerU)
	}
	if cell.Z < 0 {
		layers = append(layers, LayerB)
	}
	if cell.X < 0 {
		layers = append(layers, LayerL)
	}
	if cell.Y > 0 {
		layers = append(layers, LayerD)
	}
	if cell.Z > 0 {
		layers = append(layers, LayerF)
	}
	if cell.X == 0 {
		layers = append(layers, LayerM)
	}
	if cell.Y == 0 {
		layers = append(layers, LayerE)
	}
	if cell.Z == 0 {
		layers = append(layers, LayerS)
	}
	return layers
}

// PartitionLayers groups piece ids into the nine layer grids.
// Pieces must be ordered by ascending id, as NewPieces returns them.
func PartitionLayers(edge int, pieces []Piece) [LayerCount]Grid[int] {
	var layers [LayerCount]Grid[int]
	for l := range layers {
		layers[l] = make(Grid[int], edge)
		for row := range layers[l] {
			layers[l][row] = make([]int, 0, edge)
		}
	}

	for _, p := range pieces {
		for _, l := range LayersOf(p.Cell) {
			insert(layers[l], fillOrder[l], p.ID)
		}
	}

	return layers
}

// insert places id into the first row of g that still has room.
func insert(g Grid[int], order fill, id int) {
	n := len(g)
	for k := 0; k < n; k++ {
		row := k
		if order == fillBottomUp {
			row = n - 1 - k
		}
		if len(g[row]) == n {
			continue
		}
		if order == fillMirrored {
			g[row] = append([]int{id}, g[row]...)
		} else {
			g[row] = append(g[row], id)
		}
		return
	}
}
