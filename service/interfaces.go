package service

import (
	"context"
	"errors"

	"evaluator/models"

	"github.com/jackc/pgx/v5"
)

// ErrLeaderboardNotFound is returned by a LeaderboardSource when the derived
// leaderboard name has no leaderboard behind it. It is a normal outcome for
// workshop candidates and is skipped, not retried.
var ErrLeaderboardNotFound = errors.New("leaderboard not found")

// ScoreStore defines the storage operations used during a crawl. All writes
// issued through one ScoreStore instance belong to one transaction.
type ScoreStore interface {
	// UpsertPlayer creates the player if absent, otherwise refreshes only the
	// cached display name
	UpsertPlayer(ctx context.Context, playerID, displayName string) error

	// UpsertLevel creates the level if absent
	UpsertLevel(ctx context.Context, levelID string) error

	// SetLevelCatalogInfo overwrites the level's catalog id and display name
	SetLevelCatalogInfo(ctx context.Context, levelID, fileID, displayName string) error

	// UpsertEntry creates or replaces the entry for (levelID, playerID),
	// keeping player and level aggregates in sync
	UpsertEntry(ctx context.Context, levelID, playerID string, rawScore int64, rank int, evaluation int64) error

	// PruneEntries removes the level's entries whose player is absent from
	// the given snapshot, keeping aggregates in sync
	PruneEntries(ctx context.Context, levelID string, keepPlayerIDs []string) error

	// RecomputeAllLevelSums performs the deferred batch recompute of every
	// level's evaluation sum from the settled player evaluations
	RecomputeAllLevelSums(ctx context.Context) error
}

// StoreFactory builds a transaction-scoped ScoreStore
type StoreFactory func(tx pgx.Tx) ScoreStore

// TxRunner runs a function inside one database transaction, rolling back on
// error. *database.DB satisfies this; tests substitute a pass-through.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// LeaderboardSource fetches the full rank-ordered entry sequence for a
// leaderboard name, or reports ErrLeaderboardNotFound. Transient transport
// failures are retried internally; what comes back here is final.
type LeaderboardSource interface {
	FetchEntries(ctx context.Context, leaderboardName string) ([]models.RankedEntry, error)
}

// DiscoverySource pages through the workshop listing. ok is false once the
// source has signalled genuine exhaustion; the empty-page probing budget is
// internal to the source.
type DiscoverySource interface {
	NextPage(ctx context.Context) (ids []string, ok bool, err error)
}

// CatalogSource resolves catalog details for a batch of workshop candidates.
// Records missing creator or filename come back as-is and are excluded by the
// orchestrator.
type CatalogSource interface {
	GetDetails(ctx context.Context, ids []string) ([]*models.LevelDetails, error)
}

// NameSource resolves a player's display name. Best effort: failures yield an
// empty string and never abort ingestion.
type NameSource interface {
	DisplayName(ctx context.Context, playerID string) string
}
