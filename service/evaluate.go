package service

import "math"

// EvaluationParams are the scoring policy knobs. The reference policy awards
// up to 1000 points for rank 1 on a board of 20+ entries, decaying by a
// factor of 3 every 25 ranks; smaller boards award proportionally less so
// trivial leaderboards cannot be farmed.
type EvaluationParams struct {
	MaxAward      int
	FullBoardSize int
	DecayBase     int
	DecayScale    int
}

// DefaultEvaluationParams returns the reference scoring policy
func DefaultEvaluationParams() EvaluationParams {
	return EvaluationParams{
		MaxAward:      1000,
		FullBoardSize: 20,
		DecayBase:     3,
		DecayScale:    25,
	}
}

// Evaluate maps a 1-based rank and the leaderboard's total entry count to a
// point value. Pure and deterministic; monotonically non-increasing in rank
// for a fixed total. Rank and total must come from the same fetch snapshot.
func (p EvaluationParams) Evaluate(rank, totalEntries int) int64 {
	board := totalEntries
	if board > p.FullBoardSize {
		board = p.FullBoardSize
	}

	base := float64(p.MaxAward) * float64(board) / float64(p.FullBoardSize)
	decay := math.Pow(float64(p.DecayBase), -float64(rank-1)/float64(p.DecayScale))

	return int64(math.Floor(base * decay))
}
