package twisty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{90, 90},
		{360, 0},
		{-90, 270},
		{-270, 90},
		{725, 5},
		{-1e-15, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeHeading(tt.in), 1e-9, "heading %v", tt.in)
	}
}

func TestViewBucket(t *testing.T) {
	tests := []struct {
		heading float64
		flipped bool
		want    Bucket
	}{
		{0, false, BucketFront},
		{44.9, false, BucketFront},
		{45, false, Bucket45},
		{134.9, false, Bucket45},
		{135, false, Bucket135},
		{225, false, Bucket225},
		{314.9, false, Bucket225},
		{315, false, BucketFront},
		{-30, false, BucketFront},
		{0, true, Bucket315},
		{330, true, Bucket315},
		{90, true, Bucket45},
		{180, true, Bucket135},
		{270, true, Bucket225},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ViewBucket(tt.heading, tt.flipped), "heading %v flipped %v", tt.heading, tt.flipped)
	}
}

func TestRemapFrontIsIdentity(t *testing.T) {
	for _, n := range AllNotations() {
		assert.Equal(t, n, Remap(0, false, n))
		assert.Equal(t, n, Remap(20, false, n))
		assert.Equal(t, n, Remap(340, false, n))
	}
}

func TestRemap(t *testing.T) {
	tests := []struct {
		heading float64
		flipped bool
		in, out Notation
	}{
		{90, false, F, L},
		{90, false, FPrime, LPrime},
		{90, false, R, F},
		{90, false, M, SPrime},
		{90, false, MPrime, S},
		{90, false, U, U},
		{-270, false, F, L},
		{180, false, F, B},
		{180, false, LPrime, RPrime},
		{180, false, S, SPrime},
		{180, false, SPrime, S},
		{270, false, F, R},
		{270, false, S, MPrime},
		{270, false, E, E},
		{0, true, U, D},
		{0, true, DPrime, UPrime},
		{0, true, F, F},
		{0, true, M, MPrime},
		{0, true, EPrime, E},
		{90, true, F, R},
		{90, true, S, MPrime},
		{90, true, E, EPrime},
		{180, true, U, D},
		{180, true, L, L},
		{270, true, M, S},
		{270, true, MPrime, SPrime},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, Remap(tt.heading, tt.flipped, tt.in),
			"%v at %v flipped=%v", tt.in, tt.heading, tt.flipped)
	}
}

func TestRemapInverseEntriesAreDerived(t *testing.T) {
	for _, flipped := range []bool{false, true} {
		for _, heading := range []float64{0, 90, 180, 270} {
			for _, n := range AllNotations() {
				assert.Equal(t, Remap(heading, flipped, n).Inverse(), Remap(heading, flipped, n.Inverse()),
					"%v at %v flipped=%v", n, heading, flipped)
			}
		}
	}
}

func TestRemapIsPermutation(t *testing.T) {
	for _, flipped := range []bool{false, true} {
		for _, heading := range []float64{0, 90, 180, 270} {
			seen := map[Notation]bool{}
			for _, n := range AllNotations() {
				seen[Remap(heading, flipped, n)] = true
			}
			assert.Len(t, seen, NotationCount, "heading %v flipped=%v", heading, flipped)
		}
	}
}

func TestRemapInvalidPassesThrough(t *testing.T) {
	assert.Equal(t, Notation(NotationCount), Remap(90, false, NotationCount))
}
