package twisty

import (
	"fmt"
	"math"
	"strings"
)

// Bucket is a 90 degree window of camera headings around the vertical axis.
type Bucket uint8

const (
	BucketFront Bucket = iota // [315, 45), never remapped when upright
	Bucket45                  // [45, 135)
	Bucket135                 // [135, 225)
	Bucket225                 // [225, 315)
	Bucket315                 // [315, 45) while flipped

	bucketCount
)

func (b Bucket) String() string {
	switch b {
	case BucketFront:
		return "front"
	case Bucket45:
		return "45"
	case Bucket135:
		return "135"
	case Bucket225:
		return "225"
	case Bucket315:
		return "315"
	default:
		return "?"
	}
}

// NormalizeHeading maps any angle in degrees into [0, 360).
func NormalizeHeading(deg float64) float64 {
	a := math.Mod(math.Mod(deg, 360)+360, 360)
	if a == 360 {
		// math.Mod of a tiny negative angle rounds up to 360.
		return 0
	}
	return a
}

// ViewBucket classifies a camera heading.
func ViewBucket(heading float64, flipped bool) Bucket {
	a := NormalizeHeading(heading)
	switch {
	case a >= 45 && a < 135:
		return Bucket45
	case a >= 135 && a < 225:
		return Bucket135
	case a >= 225 && a < 315:
		return Bucket225
	case flipped:
		return Bucket315
	default:
		return BucketFront
	}
}

// remapTable maps requested notations to absolute ones for one bucket.
// Notations without a substitution map to themselves.
type remapTable [NotationCount]Notation

type remapEntry struct {
	from, to string
}

// Clockwise substitutions seen from an upright camera.
var uprightRemaps = map[Bucket][]remapEntry{
	Bucket45: {
		{"F", "L"}, {"L", "B"}, {"R", "F"}, {"B", "R"},
		{"S", "M"}, {"M", "S'"},
	},
	Bucket135: {
		{"F", "B"}, {"B", "F"}, {"L", "R"}, {"R", "L"},
		{"S", "S'"}, {"M", "M'"},
	},
	Bucket225: {
		{"F", "R"}, {"L", "F"}, {"R", "B"}, {"B", "L"},
		{"M", "S"}, {"S", "M'"},
	},
}

// Clockwise substitutions once the puzzle is flipped upside down. The
// vertical layers swap too, and E turns the other way.
var flippedRemaps = map[Bucket][]remapEntry{
	Bucket45: {
		{"F", "R"}, {"B", "L"}, {"R", "F"}, {"L", "B"},
		{"U", "D"}, {"D", "U"},
		{"S", "M'"}, {"M", "S'"}, {"E", "E'"},
	},
	Bucket135: {
		{"U", "D"}, {"D", "U"}, {"F", "B"}, {"B", "F"},
		{"S", "S'"}, {"E", "E'"},
	},
	Bucket225: {
		{"F", "L"}, {"B", "R"}, {"R", "B"}, {"L", "F"},
		{"U", "D"}, {"D", "U"},
		{"S", "M"}, {"M", "S"}, {"E", "E'"},
	},
	Bucket315: {
		{"U", "D"}, {"D", "U"}, {"L", "R"}, {"R", "L"},
		{"M", "M'"}, {"E", "E'"},
	},
}

var (
	uprightTables = buildRemapTables(uprightRemaps)
	flippedTables = buildRemapTables(flippedRemaps)
)

// buildRemapTables expands clockwise entries and derives the inverse entry
// of each by inverting both sides.
func buildRemapTables(src map[Bucket][]remapEntry) [bucketCount]*remapTable {
	var tables [bucketCount]*remapTable
	for bucket, entries := range src {
		t := &remapTable{}
		for n := range t {
			t[n] = Notation(n)
		}
		for _, e := range entries {
			from, to := mustParse(e.from), mustParse(e.to)
			if !from.Clockwise() {
				panic(fmt.Sprintf("twisty: remap key %s must be clockwise", e.from))
			}
			t[from] = to
			t[from.Inverse()] = to.Inverse()
		}
		tables[bucket] = t
	}
	return tables
}

func mustParse(s string) Notation {
	n, err := ParseNotation(s)
	if err != nil || strings.TrimSpace(s) != n.String() {
		panic(fmt.Sprintf("twisty: bad notation %q in remap table", s))
	}
	return n
}

// Remap converts a notation requested from the current camera view into
// the absolute notation the move table understands. Notations without a
// substitution in the heading's bucket pass through unchanged.
func Remap(heading float64, flipped bool, n Notation) Notation {
	if !n.Valid() {
		return n
	}
	tables := &uprightTables
	if flipped {
		tables = &flippedTables
	}
	t := tables[ViewBucket(heading, flipped)]
	if t == nil {
		return n
	}
	return t[n]
}
