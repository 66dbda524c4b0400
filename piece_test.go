package twisty

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPiecesIDsFollowCells(t *testing.T) {
	pieces := NewPieces(Edge, PieceSize, ClassicPalette)
	require.Len(t, pieces, PieceCount)

	for i, p := range pieces {
		assert.Equal(t, i, p.ID, "pieces are ordered by id")
		want := 9*(p.Cell.Y+1) + 3*(p.Cell.Z+1) + (p.Cell.X + 1)
		assert.Equal(t, want, p.ID, "cell %+v", p.Cell)
		assert.Equal(t, float64(p.Cell.X)*PieceSize, p.Position.X)
	}
	assert.Equal(t, Vec3{}, pieces[CoreID].Cell)
	assert.True(t, pieces[CoreID].Stickers.IsCore())
}

func TestSolvedStickerCounts(t *testing.T) {
	counts := map[int]int{}
	for _, s := range SolvedState() {
		counts[len(s.Faces())]++
	}
	assert.Equal(t, map[int]int{0: 1, 1: 6, 2: 12, 3: 8}, counts)
}

func TestSolvedStickersFaceOutward(t *testing.T) {
	for _, p := range NewPieces(Edge, PieceSize, ClassicPalette) {
		for _, f := range p.Stickers.Faces() {
			d := f.Direction()
			outward := d.X*p.Cell.X + d.Y*p.Cell.Y + d.Z*p.Cell.Z
			assert.Equal(t, 1, outward, "piece %d face %v", p.ID, f)
			assert.Equal(t, Color(f), p.Stickers[f])
		}
	}
}

func TestVec3RotateFullTurn(t *testing.T) {
	v := Vec3{X: 1, Y: -1, Z: 0}
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		assert.Equal(t, v, v.Rotate(axis, 360))
		assert.Equal(t, v, v.Rotate(axis, 90).Rotate(axis, -90))
		assert.Equal(t, v.Rotate(axis, 270), v.Rotate(axis, -90))
	}
	assert.Equal(t, Vec3{X: 0, Y: 0, Z: -1}, Vec3{Y: -1}.Rotate(AxisX, 90))
}

func TestStateJSONRoundTrip(t *testing.T) {
	st := applyAll(SolvedState(), R, U, FPrime, M, E, S)

	data, err := json.Marshal(st)
	require.NoError(t, err)

	var got State
	require.NoError(t, json.Unmarshal(data, &got))
	if diff := cmp.Diff(st, got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestStateJSONShape(t *testing.T) {
	data, err := json.Marshal(SolvedState())
	require.NoError(t, err)

	var raw map[string]map[string]int
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, PieceCount)
	assert.Empty(t, raw["13"])
	assert.Equal(t, map[string]int{"1": 1, "3": 3, "4": 4}, raw["0"])
}

func TestStateUnmarshalRejectsBadLayouts(t *testing.T) {
	valid, err := json.Marshal(SolvedState())
	require.NoError(t, err)

	var m map[string]map[string]int
	require.NoError(t, json.Unmarshal(valid, &m))

	tests := []struct {
		name   string
		mutate func(map[string]map[string]int)
	}{
		{"missing piece", func(m map[string]map[string]int) { delete(m, "26") }},
		{"sticker on hidden face", func(m map[string]map[string]int) { m["0"]["0"] = 0 }},
		{"missing sticker", func(m map[string]map[string]int) { delete(m["0"], "1") }},
		{"color out of range", func(m map[string]map[string]int) { m["0"]["1"] = 9 }},
		{"bad face key", func(m map[string]map[string]int) { m["4"]["top"] = 1 }},
		{"color count off", func(m map[string]map[string]int) { m["0"]["1"] = m["0"]["4"] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cp map[string]map[string]int
			require.NoError(t, json.Unmarshal(valid, &cp))
			tt.mutate(cp)
			data, err := json.Marshal(cp)
			require.NoError(t, err)

			var st State
			err = json.Unmarshal(data, &st)
			assert.True(t, errors.Is(err, ErrInvalidState), "got %v", err)
		})
	}
}

// applyAll applies moves in order with the standard move table.
func applyAll(st State, moves ...Notation) State {
	for _, n := range moves {
		st = standardMoves[n].Apply(st)
	}
	return st
}
