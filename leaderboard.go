package main

import (
	"sort"
)

// InsertScore returns a new leaderboard with score added, sorted descending
// and capped at MaxScores. Equal scores keep their existing order.
func InsertScore(scores []float64, score float64) []float64 {
	leaderboard := make([]float64, 0, len(scores)+1)
	leaderboard = append(leaderboard, scores...)
	leaderboard = append(leaderboard, score)

	sort.SliceStable(leaderboard[:], func(i, j int) bool {
		return leaderboard[i] > leaderboard[j]
	})

	if len(leaderboard) > MaxScores {
		leaderboard = leaderboard[:MaxScores]
	}

	return leaderboard
}
