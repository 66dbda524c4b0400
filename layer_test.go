package twisty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionLayers(t *testing.T) {
	want := map[Layer]Grid[int]{
		LayerU: {{0, 1, 2}, {3, 4, 5}, {6, 7, 8}},
		LayerR: {{8, 5, 2}, {17, 14, 11}, {26, 23, 20}},
		LayerF: {{6, 7, 8}, {15, 16, 17}, {24, 25, 26}},
		LayerL: {{0, 3, 6}, {9, 12, 15}, {18, 21, 24}},
		LayerD: {{24, 25, 26}, {21, 22, 23}, {18, 19, 20}},
		LayerB: {{2, 1, 0}, {11, 10, 9}, {20, 19, 18}},
		LayerM: {{1, 4, 7}, {10, 13, 16}, {19, 22, 25}},
		LayerE: {{15, 16, 17}, {12, 13, 14}, {9, 10, 11}},
		LayerS: {{3, 4, 5}, {12, 13, 14}, {21, 22, 23}},
	}

	layers := Layers()
	for l, grid := range want {
		assert.Equal(t, grid, layers[l], "layer %v", l)
	}
}

func TestLayerMembershipMatchesCells(t *testing.T) {
	pieces := NewPieces(Edge, PieceSize, ClassicPalette)
	layers := Layers()

	member := func(l Layer, c Vec3) bool {
		switch l {
		case LayerR:
			return c.X == 1
		case LayerL:
			return c.X == -1
		case LayerM:
			return c.X == 0
		case LayerU:
			return c.Y == -1
		case LayerD:
			return c.Y == 1
		case LayerE:
			return c.Y == 0
		case LayerF:
			return c.Z == 1
		case LayerB:
			return c.Z == -1
		default:
			return c.Z == 0
		}
	}

	for l := Layer(0); l < LayerCount; l++ {
		ids := layers[l].Flatten()
		require.Len(t, ids, LayerSize)
		for _, id := range ids {
			assert.True(t, member(l, pieces[id].Cell), "piece %d in layer %v", id, l)
		}
	}
}

func TestPartitionIsDisjointPerAxis(t *testing.T) {
	layers := Layers()
	axes := [][]Layer{
		{LayerL, LayerM, LayerR},
		{LayerU, LayerE, LayerD},
		{LayerF, LayerS, LayerB},
	}

	for _, group := range axes {
		seen := map[int]Layer{}
		for _, l := range group {
			for _, id := range layers[l].Flatten() {
				prev, dup := seen[id]
				assert.False(t, dup, "piece %d in %v and %v", id, prev, l)
				seen[id] = l
			}
		}
		assert.Len(t, seen, PieceCount)
	}
}

func TestLayersOfOrder(t *testing.T) {
	assert.Equal(t, []Layer{LayerR, LayerU, LayerB}, LayersOf(Vec3{X: 1, Y: -1, Z: -1}))
	assert.Equal(t, []Layer{LayerM, LayerE, LayerS}, LayersOf(Vec3{}))
	assert.Equal(t, []Layer{LayerL, LayerF, LayerE}, LayersOf(Vec3{X: -1, Z: 1}))
}

func TestLayersReturnsCopy(t *testing.T) {
	layers := Layers()
	layers[LayerU][0][0] = 99
	assert.Equal(t, 0, Layers()[LayerU][0][0])
}

func TestRotateGrid(t *testing.T) {
	g := Grid[int]{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}

	assert.Equal(t, Grid[int]{{7, 4, 1}, {8, 5, 2}, {9, 6, 3}}, RotateGrid(g, true))
	assert.Equal(t, Grid[int]{{3, 6, 9}, {2, 5, 8}, {1, 4, 7}}, RotateGrid(g, false))
}

func TestRotateGridInverse(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5} {
		g := make(Grid[int], n)
		for i := range g {
			g[i] = make([]int, n)
			for j := range g[i] {
				g[i][j] = i*n + j
			}
		}

		assert.Equal(t, g, RotateGrid(RotateGrid(g, true), false), "n=%d", n)
		assert.Equal(t, g, RotateGrid(RotateGrid(g, false), true), "n=%d", n)

		full := g
		for i := 0; i < 4; i++ {
			full = RotateGrid(full, true)
		}
		assert.Equal(t, g, full, "n=%d four turns", n)
	}
}
