package service

import (
	"context"

	"evaluator/models"
)

// LeaderboardRef identifies one leaderboard to ingest: the derived name plus
// the catalog metadata recorded alongside it.
type LeaderboardRef struct {
	LevelID     string
	FileID      string
	DisplayName string
}

// Ingester writes one fetched leaderboard snapshot into a ScoreStore. The
// store is passed per call so each ingestion joins whatever transaction the
// orchestrator has open.
type Ingester struct {
	names  NameSource
	params EvaluationParams
}

// NewIngester creates an ingester with the given name source and scoring
// policy
func NewIngester(names NameSource, params EvaluationParams) *Ingester {
	return &Ingester{names: names, params: params}
}

// Ingest walks the rank-ordered entries, assigning rank positionally, and
// upserts player, level and entry rows. The source's ordering is trusted.
// Stored entries whose player dropped off the board since the last refresh
// are pruned afterwards, so ranks stay contiguous 1..entry_count even when
// the leaderboard shrank. An empty sequence still registers the level so its
// catalog info is recorded. Any store error aborts the whole leaderboard and
// propagates.
func (i *Ingester) Ingest(ctx context.Context, store ScoreStore, ref LeaderboardRef, entries []models.RankedEntry) error {
	if err := store.UpsertLevel(ctx, ref.LevelID); err != nil {
		return err
	}

	total := len(entries)
	keep := make([]string, 0, total)
	for idx, entry := range entries {
		rank := idx + 1

		name := i.names.DisplayName(ctx, entry.PlayerID)
		if err := store.UpsertPlayer(ctx, entry.PlayerID, name); err != nil {
			return err
		}

		evaluation := i.params.Evaluate(rank, total)
		if err := store.UpsertEntry(ctx, ref.LevelID, entry.PlayerID, entry.RawScore, rank, evaluation); err != nil {
			return err
		}

		keep = append(keep, entry.PlayerID)
	}

	if err := store.PruneEntries(ctx, ref.LevelID, keep); err != nil {
		return err
	}

	return store.SetLevelCatalogInfo(ctx, ref.LevelID, ref.FileID, ref.DisplayName)
}
