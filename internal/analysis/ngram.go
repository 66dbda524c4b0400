package analysis

import (
	"sort"

	"github.com/SeamusWaldron/twisty"
)

// NGram represents a repeated move sequence.
type NGram struct {
	N           int               `json:"n"`
	Sequence    []twisty.Notation `json:"sequence"`
	Count       int               `json:"count"`
	Occurrences []int             `json:"occurrences,omitempty"` // start indexes
}

// NGramReport contains the results of n-gram mining.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"` // Keyed by n
}

// maxOccurrences caps the start indexes kept per n-gram.
const maxOccurrences = 10

// RollingHash implements Rabin-Karp rolling hash for efficient n-gram detection.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1) for removal
	window []twisty.Notation
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   31,
		n:      n,
		window: make([]twisty.Notation, 0, n),
	}

	rh.pow = 1
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}

	return rh
}

// Roll adds a move, dropping the oldest one once the window is full.
func (rh *RollingHash) Roll(m twisty.Notation) {
	token := uint64(m) + 1
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, m)
		rh.hash = rh.hash*rh.base + token
		return
	}

	old := uint64(rh.window[0]) + 1
	rh.hash = (rh.hash-old*rh.pow)*rh.base + token

	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = m
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []twisty.Notation {
	return append([]twisty.Notation(nil), rh.window...)
}

// Ready returns true if the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

// MineNGrams finds the top-K most repeated n-grams for each n in [minN, maxN].
// Only sequences seen at least twice are reported.
func MineNGrams(moves []twisty.Notation, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{
		TopNGrams: make(map[int][]NGram),
	}

	for n := max(minN, 1); n <= maxN && n <= len(moves); n++ {
		if ngrams := mineNGramsForN(moves, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}

	return report
}

func mineNGramsForN(moves []twisty.Notation, n, topK int) []NGram {
	// Buckets per hash; sequences sharing a hash are told apart by value.
	counts := make(map[uint64][]*NGram)
	rh := NewRollingHash(n)

	for i, m := range moves {
		rh.Roll(m)
		if !rh.Ready() {
			continue
		}
		start := i - n + 1

		var entry *NGram
		for _, e := range counts[rh.Hash()] {
			if slicesEqual(e.Sequence, rh.window) {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &NGram{N: n, Sequence: rh.Window()}
			counts[rh.Hash()] = append(counts[rh.Hash()], entry)
		}
		entry.Count++
		if len(entry.Occurrences) < maxOccurrences {
			entry.Occurrences = append(entry.Occurrences, start)
		}
	}

	var result []NGram
	for _, bucket := range counts {
		for _, e := range bucket {
			if e.Count >= 2 {
				result = append(result, *e)
			}
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Occurrences[0] < result[j].Occurrences[0]
	})

	if len(result) > topK {
		result = result[:topK]
	}
	return result
}

func slicesEqual(a, b []twisty.Notation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
