package models

// LeaderboardEntry is one player's ranked result on one level. A player has
// at most one live entry per level; RawScore, Rank and Evaluation are always
// written together from a single fetch snapshot.
type LeaderboardEntry struct {
	LevelID    string `db:"level_id"`
	PlayerID   string `db:"player_id"`
	RawScore   int64  `db:"raw_score"`
	Rank       int    `db:"rank"`
	Evaluation int64  `db:"evaluation"`
}

// RankedEntry is the fetch unit returned by the leaderboard source, already
// ordered best-to-worst. Rank is positional and assigned at ingestion time.
type RankedEntry struct {
	PlayerID string
	RawScore int64
}
