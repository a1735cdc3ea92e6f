package models

// Level is one leaderboard, identified by its derived leaderboard name.
// EntryCount is maintained incrementally with each entry insert;
// EvaluationSum is only written by the deferred batch recompute, because it
// depends on the settled evaluation of every player on the level.
type Level struct {
	LevelID       string  `db:"level_id"`
	EntryCount    int     `db:"entry_count"`
	EvaluationSum int64   `db:"evaluation_sum"`
	Evaluation    int64   `db:"evaluation"`
	FileID        *string `db:"file_id"`
	DisplayName   *string `db:"display_name"`
}

// FileIDOfficial marks levels that came from the official list rather than
// the workshop catalog.
const FileIDOfficial = "official"
