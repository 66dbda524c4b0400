// Package analysis computes statistics over recorded move sessions.
package analysis

import (
	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

// Summary contains statistics for one play session.
type Summary struct {
	SessionID         string         `json:"session_id"`
	TotalMoves        int            `json:"total_moves"`
	DurationMs        int64          `json:"duration_ms"`
	TPS               float64        `json:"tps"`
	AvgMoveDurationMs float64        `json:"avg_move_duration_ms"`
	LongestPauseMs    int64          `json:"longest_pause_ms"`
	Pauses            int            `json:"pauses"`
	Cancelled         int            `json:"cancelled"` // moves undone by the next move
	Remapped          int            `json:"remapped"`  // moves changed by the camera
	LayerCounts       map[string]int `json:"layer_counts"`
}

// PauseThresholdMs is the gap between moves counted as a pause.
const PauseThresholdMs = 1500

// PauseInfo represents a pause between two moves.
type PauseInfo struct {
	AfterMoveIndex int   `json:"after_move_index"`
	DurationMs     int64 `json:"duration_ms"`
	TsMs           int64 `json:"ts_ms"`
}

// Summarize computes the statistics of a session's moves.
func Summarize(sessionID string, records []storage.MoveRecord) Summary {
	s := Summary{
		SessionID:   sessionID,
		TotalMoves:  len(records),
		LayerCounts: make(map[string]int),
	}
	if len(records) == 0 {
		return s
	}

	s.DurationMs = records[len(records)-1].TsMs - records[0].TsMs
	s.TPS = CalculateTPS(len(records), s.DurationMs)
	s.AvgMoveDurationMs = CalculateAvgMoveDuration(records)
	s.LongestPauseMs = FindLongestPause(records)
	s.Pauses = len(AnalyzePauses(records, PauseThresholdMs))

	moves := storage.Notations(records)
	s.Cancelled = CountCancellations(moves)
	for _, m := range moves {
		s.LayerCounts[m.Layer().String()]++
	}
	for _, r := range records {
		if r.Requested != r.Applied {
			s.Remapped++
		}
	}
	return s
}

// AnalyzePauses finds every gap of at least thresholdMs between moves.
func AnalyzePauses(records []storage.MoveRecord, thresholdMs int64) []PauseInfo {
	var pauses []PauseInfo

	for i := 1; i < len(records); i++ {
		gap := records[i].TsMs - records[i-1].TsMs
		if gap >= thresholdMs {
			pauses = append(pauses, PauseInfo{
				AfterMoveIndex: i - 1,
				DurationMs:     gap,
				TsMs:           records[i-1].TsMs,
			})
		}
	}

	return pauses
}

// CalculateTPS calculates turns per second.
func CalculateTPS(moves int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(moves) / (float64(durationMs) / 1000.0)
}

// CalculateAvgMoveDuration calculates the average time between moves.
func CalculateAvgMoveDuration(records []storage.MoveRecord) float64 {
	if len(records) < 2 {
		return 0
	}

	totalGap := records[len(records)-1].TsMs - records[0].TsMs
	return float64(totalGap) / float64(len(records)-1)
}

// FindLongestPause finds the longest gap between moves.
func FindLongestPause(records []storage.MoveRecord) int64 {
	var longest int64
	for i := 1; i < len(records); i++ {
		if gap := records[i].TsMs - records[i-1].TsMs; gap > longest {
			longest = gap
		}
	}
	return longest
}

// CountCancellations returns how many moves are undone by an inverse
// turn, counting nested pairs such as R U U' R'.
func CountCancellations(moves []twisty.Notation) int {
	var stack []twisty.Notation
	cancelled := 0
	for _, m := range moves {
		if n := len(stack); n > 0 && stack[n-1] == m.Inverse() {
			stack = stack[:n-1]
			cancelled += 2
			continue
		}
		stack = append(stack, m)
	}
	return cancelled
}
