package repository

import (
	"context"
	"fmt"

	"evaluator/database"
	"evaluator/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryable abstracts over *pgxpool.Pool and pgx.Tx so the same repository
// runs standalone or inside a transaction
type queryable interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ScoreRepository is the single write path for players, levels and
// leaderboard entries. Player aggregates are maintained incrementally here,
// in the same transaction as the entry write; level evaluation sums are only
// touched by RecomputeAllLevelSums.
type ScoreRepository struct {
	q           queryable
	playerFloor int
	levelFloor  int
}

// NewScoreRepository creates a score repository backed by the connection pool
func NewScoreRepository(db *database.DB, playerFloor, levelFloor int) *ScoreRepository {
	return &ScoreRepository{q: db.Pool, playerFloor: playerFloor, levelFloor: levelFloor}
}

// NewScoreRepositoryWithTx creates a score repository scoped to a transaction
func NewScoreRepositoryWithTx(tx pgx.Tx, playerFloor, levelFloor int) *ScoreRepository {
	return &ScoreRepository{q: tx, playerFloor: playerFloor, levelFloor: levelFloor}
}

// UpsertPlayer creates the player row if absent, otherwise updates only the
// cached display name (last write wins). Aggregate columns are never touched.
func (r *ScoreRepository) UpsertPlayer(ctx context.Context, playerID, displayName string) error {
	query := `
		INSERT INTO players (player_id, display_name)
		VALUES ($1, NULLIF($2, ''))
		ON CONFLICT (player_id) DO UPDATE SET display_name = EXCLUDED.display_name
	`

	if _, err := r.q.Exec(ctx, query, playerID, displayName); err != nil {
		return fmt.Errorf("failed to upsert player %s: %w", playerID, err)
	}

	return nil
}

// UpsertLevel creates the level row if absent. Existing rows are left alone.
func (r *ScoreRepository) UpsertLevel(ctx context.Context, levelID string) error {
	query := `
		INSERT INTO levels (level_id)
		VALUES ($1)
		ON CONFLICT (level_id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, levelID); err != nil {
		return fmt.Errorf("failed to upsert level %s: %w", levelID, err)
	}

	return nil
}

// SetLevelCatalogInfo overwrites the level's catalog id and display name
// unconditionally. Unknown levels are a silent no-op.
func (r *ScoreRepository) SetLevelCatalogInfo(ctx context.Context, levelID, fileID, displayName string) error {
	query := `
		UPDATE levels
		SET file_id = $2, display_name = $3
		WHERE level_id = $1
	`

	if _, err := r.q.Exec(ctx, query, levelID, fileID, displayName); err != nil {
		return fmt.Errorf("failed to set catalog info for level %s: %w", levelID, err)
	}

	return nil
}

// UpsertEntry creates or replaces the single entry for (levelID, playerID)
// and keeps the player and level aggregates in sync within the same
// transaction.
//
// On create: player entry_count and evaluation_sum grow, the derived player
// evaluation is recomputed in the same statement, and the level entry_count
// grows. On replace, only an evaluation change adjusts the player sum (by the
// delta); raw_score, rank and evaluation are always rewritten together.
func (r *ScoreRepository) UpsertEntry(ctx context.Context, levelID, playerID string, rawScore int64, rank int, evaluation int64) error {
	var prior int64
	err := r.q.QueryRow(ctx,
		`SELECT evaluation FROM leaderboard_entries WHERE level_id = $1 AND player_id = $2`,
		levelID, playerID,
	).Scan(&prior)

	switch {
	case err == pgx.ErrNoRows:
		return r.insertEntry(ctx, levelID, playerID, rawScore, rank, evaluation)
	case err != nil:
		return fmt.Errorf("failed to read entry (%s, %s): %w", levelID, playerID, err)
	}

	replace := `
		UPDATE leaderboard_entries
		SET raw_score = $3, rank = $4, evaluation = $5
		WHERE level_id = $1 AND player_id = $2
	`
	if _, err := r.q.Exec(ctx, replace, levelID, playerID, rawScore, rank, evaluation); err != nil {
		return fmt.Errorf("failed to replace entry (%s, %s): %w", levelID, playerID, err)
	}

	if evaluation == prior {
		return nil
	}

	// Sum update and derived evaluation land in one statement so no reader
	// observes a new sum with a stale evaluation.
	adjust := `
		UPDATE players
		SET evaluation_sum = evaluation_sum + $2,
		    evaluation = (evaluation_sum + $2) / GREATEST(entry_count, $3)
		WHERE player_id = $1
	`
	if _, err := r.q.Exec(ctx, adjust, playerID, evaluation-prior, r.playerFloor); err != nil {
		return fmt.Errorf("failed to adjust aggregates for player %s: %w", playerID, err)
	}

	return nil
}

func (r *ScoreRepository) insertEntry(ctx context.Context, levelID, playerID string, rawScore int64, rank int, evaluation int64) error {
	insert := `
		INSERT INTO leaderboard_entries (level_id, player_id, raw_score, rank, evaluation)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.q.Exec(ctx, insert, levelID, playerID, rawScore, rank, evaluation); err != nil {
		return fmt.Errorf("failed to insert entry (%s, %s): %w", levelID, playerID, err)
	}

	player := `
		UPDATE players
		SET entry_count = entry_count + 1,
		    evaluation_sum = evaluation_sum + $2,
		    evaluation = (evaluation_sum + $2) / GREATEST(entry_count + 1, $3)
		WHERE player_id = $1
	`
	if _, err := r.q.Exec(ctx, player, playerID, evaluation, r.playerFloor); err != nil {
		return fmt.Errorf("failed to grow aggregates for player %s: %w", playerID, err)
	}

	level := `
		UPDATE levels
		SET entry_count = entry_count + 1
		WHERE level_id = $1
	`
	if _, err := r.q.Exec(ctx, level, levelID); err != nil {
		return fmt.Errorf("failed to grow entry count for level %s: %w", levelID, err)
	}

	return nil
}

// DeleteEntry removes the entry for (levelID, playerID) and rolls its
// contribution out of the player and level aggregates. Missing entries are a
// no-op.
func (r *ScoreRepository) DeleteEntry(ctx context.Context, levelID, playerID string) error {
	var evaluation int64
	err := r.q.QueryRow(ctx,
		`DELETE FROM leaderboard_entries WHERE level_id = $1 AND player_id = $2 RETURNING evaluation`,
		levelID, playerID,
	).Scan(&evaluation)

	switch {
	case err == pgx.ErrNoRows:
		return nil
	case err != nil:
		return fmt.Errorf("failed to delete entry (%s, %s): %w", levelID, playerID, err)
	}

	player := `
		UPDATE players
		SET entry_count = entry_count - 1,
		    evaluation_sum = evaluation_sum - $2,
		    evaluation = (evaluation_sum - $2) / GREATEST(entry_count - 1, $3)
		WHERE player_id = $1
	`
	if _, err := r.q.Exec(ctx, player, playerID, evaluation, r.playerFloor); err != nil {
		return fmt.Errorf("failed to shrink aggregates for player %s: %w", playerID, err)
	}

	level := `
		UPDATE levels
		SET entry_count = entry_count - 1
		WHERE level_id = $1
	`
	if _, err := r.q.Exec(ctx, level, levelID); err != nil {
		return fmt.Errorf("failed to shrink entry count for level %s: %w", levelID, err)
	}

	return nil
}

// PruneEntries deletes the level's entries for players absent from the given
// snapshot, rolling each removed evaluation out of the aggregates. Combined
// with UpsertEntry rewriting the snapshot's own ranks, this restores the
// contiguous 1..entry_count rank range after a leaderboard shrinks between
// refreshes.
func (r *ScoreRepository) PruneEntries(ctx context.Context, levelID string, keep []string) error {
	rows, err := r.q.Query(ctx,
		`SELECT player_id FROM leaderboard_entries WHERE level_id = $1 AND NOT (player_id = ANY($2))`,
		levelID, keep,
	)
	if err != nil {
		return fmt.Errorf("failed to find stale entries for level %s: %w", levelID, err)
	}

	var stale []string
	for rows.Next() {
		var playerID string
		if err := rows.Scan(&playerID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan stale entry: %w", err)
		}
		stale = append(stale, playerID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate stale entries: %w", err)
	}

	for _, playerID := range stale {
		if err := r.DeleteEntry(ctx, levelID, playerID); err != nil {
			return err
		}
	}

	return nil
}

// RecomputeAllLevelSums sets every level's evaluation_sum to the sum of the
// current player evaluations of its entry holders, then re-derives the level
// evaluation with the level floor applied. This is the deferred batch step:
// it runs once, after every player aggregate has settled, and is idempotent.
func (r *ScoreRepository) RecomputeAllLevelSums(ctx context.Context) error {
	sums := `
		UPDATE levels l
		SET evaluation_sum = COALESCE((
			SELECT SUM(p.evaluation)
			FROM leaderboard_entries e
			JOIN players p ON p.player_id = e.player_id
			WHERE e.level_id = l.level_id
		), 0)
	`
	if _, err := r.q.Exec(ctx, sums); err != nil {
		return fmt.Errorf("failed to recompute level evaluation sums: %w", err)
	}

	derived := `
		UPDATE levels
		SET evaluation = evaluation_sum / GREATEST(entry_count, $1)
	`
	if _, err := r.q.Exec(ctx, derived, r.levelFloor); err != nil {
		return fmt.Errorf("failed to recompute level evaluations: %w", err)
	}

	return nil
}

// GetPlayer retrieves a player by id, or nil if absent
func (r *ScoreRepository) GetPlayer(ctx context.Context, playerID string) (*models.Player, error) {
	query := `
		SELECT player_id, entry_count, evaluation_sum, evaluation, display_name
		FROM players
		WHERE player_id = $1
	`

	var player models.Player
	err := r.q.QueryRow(ctx, query, playerID).Scan(
		&player.PlayerID,
		&player.EntryCount,
		&player.EvaluationSum,
		&player.Evaluation,
		&player.DisplayName,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %s: %w", playerID, err)
	}

	return &player, nil
}

// GetLevel retrieves a level by id, or nil if absent
func (r *ScoreRepository) GetLevel(ctx context.Context, levelID string) (*models.Level, error) {
	query := `
		SELECT level_id, entry_count, evaluation_sum, evaluation, file_id, display_name
		FROM levels
		WHERE level_id = $1
	`

	var level models.Level
	err := r.q.QueryRow(ctx, query, levelID).Scan(
		&level.LevelID,
		&level.EntryCount,
		&level.EvaluationSum,
		&level.Evaluation,
		&level.FileID,
		&level.DisplayName,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get level %s: %w", levelID, err)
	}

	return &level, nil
}

// GetEntriesForLevel returns a level's entries ordered by rank
func (r *ScoreRepository) GetEntriesForLevel(ctx context.Context, levelID string) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT level_id, player_id, raw_score, rank, evaluation
		FROM leaderboard_entries
		WHERE level_id = $1
		ORDER BY rank
	`

	rows, err := r.q.Query(ctx, query, levelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries for level %s: %w", levelID, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetEntriesForPlayer returns every entry a player holds across all levels
func (r *ScoreRepository) GetEntriesForPlayer(ctx context.Context, playerID string) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT level_id, player_id, raw_score, rank, evaluation
		FROM leaderboard_entries
		WHERE player_id = $1
		ORDER BY level_id
	`

	rows, err := r.q.Query(ctx, query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entries for player %s: %w", playerID, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*models.LeaderboardEntry, error) {
	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(
			&entry.LevelID,
			&entry.PlayerID,
			&entry.RawScore,
			&entry.Rank,
			&entry.Evaluation,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}
