package models

// Player aggregates one ranked participant across every level they appear on.
// EvaluationSum is the exact running sum of the evaluations of the player's
// currently stored entries; Evaluation is derived from it with the player
// floor applied.
type Player struct {
	PlayerID      string  `db:"player_id"`
	EntryCount    int     `db:"entry_count"`
	EvaluationSum int64   `db:"evaluation_sum"`
	Evaluation    int64   `db:"evaluation"`
	DisplayName   *string `db:"display_name"`
}
