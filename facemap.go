package twisty

import "fmt"

// faceUnused marks a face slot outside a permutation cycle.
const faceUnused Face = 0xFF

// facePermutation[n][f] is the face whose color lands on face f when
// a piece turns with notation n.
type facePermutation [FaceCount]Face

// clockwiseFaces lists the sticker cycle of every clockwise notation.
// The slice cycles equal the cycle of the face they follow minus that
// face's own slot.
var clockwiseFaces = [LayerCount]map[Face]Face{
	LayerU: {FaceFront: FaceRight, FaceTop: FaceTop, FaceRight: FaceBack, FaceBack: FaceLeft, FaceLeft: FaceFront},
	LayerD: {FaceFront: FaceLeft, FaceRight: FaceFront, FaceBack: FaceRight, FaceLeft: FaceBack, FaceBottom: FaceBottom},
	LayerL: {FaceFront: FaceTop, FaceTop: FaceBack, FaceBack: FaceBottom, FaceLeft: FaceLeft, FaceBottom: FaceFront},
	LayerR: {FaceFront: FaceBottom, FaceTop: FaceFront, FaceRight: FaceRight, FaceBack: FaceTop, FaceBottom: FaceBack},
	LayerF: {FaceFront: FaceFront, FaceTop: FaceLeft, FaceRight: FaceTop, FaceLeft: FaceBottom, FaceBottom: FaceRight},
	LayerB: {FaceTop: FaceRight, FaceRight: FaceBottom, FaceBack: FaceBack, FaceLeft: FaceTop, FaceBottom: FaceLeft},
	LayerM: {FaceFront: FaceTop, FaceTop: FaceBack, FaceBack: FaceBottom, FaceBottom: FaceFront},
	LayerE: {FaceFront: FaceLeft, FaceRight: FaceFront, FaceBack: FaceRight, FaceLeft: FaceBack},
	LayerS: {FaceTop: FaceLeft, FaceRight: FaceTop, FaceLeft: FaceBottom, FaceBottom: FaceRight},
}

var faceTable = buildFaceTable()

// buildFaceTable expands the clockwise cycles and derives each inverse
// by swapping source and target.
func buildFaceTable() [NotationCount]facePermutation {
	var table [NotationCount]facePermutation
	for l := Layer(0); l < LayerCount; l++ {
		cw, ccw := NotationOf(l, true), NotationOf(l, false)
		for f := range table[cw] {
			table[cw][f] = faceUnused
			table[ccw][f] = faceUnused
		}
		for target, source := range clockwiseFaces[l] {
			if table[ccw][source] != faceUnused {
				panic(fmt.Sprintf("twisty: face cycle of %v is not a bijection", l))
			}
			table[cw][target] = source
			table[ccw][source] = target
		}
	}
	return table
}

// FacePermutation returns, for notation n, the face each visible face
// takes its color from. Faces missing from the map keep no sticker for
// the pieces of that layer.
func FacePermutation(n Notation) map[Face]Face {
	if !n.Valid() {
		return nil
	}
	m := make(map[Face]Face, FaceCount)
	for f, src := range faceTable[n] {
		if src != faceUnused {
			m[Face(f)] = src
		}
	}
	return m
}

// permute returns the stickers of a piece after it turns with n, taking
// colors from source, the piece that moves into its place.
func permute(n Notation, target, source Stickers) Stickers {
	out := NoStickers
	perm := &faceTable[n]
	for f := Face(0); f < FaceCount; f++ {
		if !target.Visible(f) {
			continue
		}
		out[f] = source[perm[f]]
	}
	return out
}
