package twisty

// LayerSize is the number of pieces in one layer.
const LayerSize = Edge * Edge

// Move is a precomputed quarter turn.
//
// Pieces lists the layer's ids row by row; Sources lists, at the same
// index, the piece whose stickers move into that position.
type Move struct {
	Notation Notation
	Layer    Layer
	Pieces   [LayerSize]int
	Sources  [LayerSize]int
	Axis     Axis
	Angle    int // signed degrees
}

// turn is the static axis and clockwise angle of each layer.
var turn = [LayerCount]struct {
	axis  Axis
	angle int
}{
	LayerU: {AxisY, -90},
	LayerD: {AxisY, 90},
	LayerL: {AxisX, -90},
	LayerR: {AxisX, 90},
	LayerF: {AxisZ, 90},
	LayerB: {AxisZ, -90},
	LayerM: {AxisX, -90},
	LayerE: {AxisY, 90},
	LayerS: {AxisZ, 90},
}

// MoveTable holds the 18 moves indexed by notation.
type MoveTable [NotationCount]Move

// BuildMoveTable rotates every layer grid both ways and pairs the result
// with the layer's axis and angle.
func BuildMoveTable(layers [LayerCount]Grid[int]) MoveTable {
	var table MoveTable
	for l := Layer(0); l < LayerCount; l++ {
		pieces := layers[l].Flatten()
		for _, clockwise := range []bool{true, false} {
			n := NotationOf(l, clockwise)
			m := Move{
				Notation: n,
				Layer:    l,
				Axis:     turn[l].axis,
				Angle:    turn[l].angle,
			}
			if !clockwise {
				m.Angle = -m.Angle
			}
			copy(m.Pieces[:], pieces)
			copy(m.Sources[:], RotateGrid(layers[l], clockwise).Flatten())
			table[n] = m
		}
	}
	return table
}

var (
	standardLayers = PartitionLayers(Edge, NewPieces(Edge, PieceSize, ClassicPalette))
	standardMoves  = BuildMoveTable(standardLayers)
)

// Layers returns the nine layer grids of the standard puzzle.
func Layers() [LayerCount]Grid[int] {
	var out [LayerCount]Grid[int]
	for l, g := range standardLayers {
		out[l] = make(Grid[int], len(g))
		for i, row := range g {
			out[l][i] = append([]int(nil), row...)
		}
	}
	return out
}

// MoveFor returns the precomputed move for n.
func MoveFor(n Notation) (Move, bool) {
	if !n.Valid() {
		return Move{}, false
	}
	return standardMoves[n], true
}

// Apply returns st with the move's layer turned. The core piece is
// never touched.
func (m Move) Apply(st State) State {
	out := st
	for i, id := range m.Pieces {
		if st[id].IsCore() {
			continue
		}
		out[id] = permute(m.Notation, st[id], st[m.Sources[i]])
	}
	return out
}
