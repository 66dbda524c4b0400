package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/twisty"
)

func TestFaceGridSolved(t *testing.T) {
	st := twisty.SolvedState()
	for f := twisty.Face(0); f < twisty.FaceCount; f++ {
		grid := faceGrid(st, f)
		for r, row := range grid {
			for c, color := range row {
				assert.Equal(t, twisty.Color(f), color, "face %v cell %d,%d", f, r, c)
			}
		}
	}
}

func TestFaceGridAfterR(t *testing.T) {
	m, ok := twisty.MoveFor(twisty.R)
	require.True(t, ok)
	st := m.Apply(twisty.SolvedState())

	front := faceGrid(st, twisty.FaceFront)
	top := faceGrid(st, twisty.FaceTop)
	for r := 0; r < twisty.Edge; r++ {
		assert.Equal(t, twisty.Color(twisty.FaceBottom), front[r][2], "front right column shows the bottom")
		assert.Equal(t, twisty.Color(twisty.FaceFront), front[r][0])
		assert.Equal(t, twisty.Color(twisty.FaceFront), top[r][2], "top right column shows the front")
		assert.Equal(t, twisty.Color(twisty.FaceTop), top[r][0])
	}
	right := faceGrid(st, twisty.FaceRight)
	for _, row := range right {
		for _, c := range row {
			assert.Equal(t, twisty.Color(twisty.FaceRight), c)
		}
	}
}

func TestRenderNetHasNineRows(t *testing.T) {
	out := renderNet(twisty.SolvedState(), twisty.SkinClassic)
	assert.Len(t, strings.Split(out, "\n"), 3*twisty.Edge)
}

func TestParseMoves(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []twisty.Notation
	}{
		{"separate args", []string{"R", "U'"}, []twisty.Notation{twisty.R, twisty.UPrime}},
		{"quoted sequence", []string{"R U R' U'"}, twisty.SexyMove},
		{"double turn", []string{"F2"}, []twisty.Notation{twisty.F, twisty.F}},
		{"inverse double turn", []string{"M2'"}, []twisty.Notation{twisty.MPrime, twisty.MPrime}},
		{"lower case", []string{"s e"}, []twisty.Notation{twisty.S, twisty.E}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMoves(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseMoves([]string{"R", "X"})
	assert.True(t, errors.Is(err, twisty.ErrInvalidNotation), "got %v", err)
}

func TestKeyNotation(t *testing.T) {
	tests := []struct {
		key  string
		want twisty.Notation
		ok   bool
	}{
		{"r", twisty.R, true},
		{"R", twisty.RPrime, true},
		{"m", twisty.M, true},
		{"E", twisty.EPrime, true},
		{"x", 0, false},
		{"tab", 0, false},
		{"'", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := keyNotation(tt.key)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
