package service

import (
	"context"
	"errors"
	"fmt"

	"evaluator/models"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// RunConfig is the crawl configuration surface of the orchestrator.
type RunConfig struct {
	OfficialsFile   string
	WorkshopEnabled bool
	MaxLevels       int // 0 = unlimited
	MaxPages        int
	GameModeID      int
}

// Orchestrator drives one full crawl: the official list, then workshop
// discovery paging, then the deferred level-aggregate recompute. Each phase's
// work is batched into transactions: one for the official list, one per
// workshop page, one for the recompute.
type Orchestrator struct {
	db           TxRunner
	storeFactory StoreFactory
	leaderboards LeaderboardSource
	discovery    DiscoverySource
	catalog      CatalogSource
	ingester     *Ingester
	cfg          RunConfig

	ingested int
}

// NewOrchestrator wires the orchestrator's collaborators
func NewOrchestrator(
	db TxRunner,
	storeFactory StoreFactory,
	leaderboards LeaderboardSource,
	discovery DiscoverySource,
	catalog CatalogSource,
	ingester *Ingester,
	cfg RunConfig,
) *Orchestrator {
	return &Orchestrator{
		db:           db,
		storeFactory: storeFactory,
		leaderboards: leaderboards,
		discovery:    discovery,
		catalog:      catalog,
		ingester:     ingester,
		cfg:          cfg,
	}
}

// Run executes the crawl once. Transport and storage errors are fatal; the
// only early exits are the configured page and level caps.
func (o *Orchestrator) Run(ctx context.Context) error {
	if err := o.runOfficials(ctx); err != nil {
		return err
	}

	if err := o.runWorkshopPaging(ctx); err != nil {
		return err
	}

	return o.runFinalRecompute(ctx)
}

// runOfficials ingests the fixed official-levels list, if one was supplied,
// in a single transaction. A missing or malformed list skips the phase.
func (o *Orchestrator) runOfficials(ctx context.Context) error {
	if o.cfg.OfficialsFile == "" || o.levelCapReached() {
		return nil
	}

	officials, err := ReadOfficialLevels(o.cfg.OfficialsFile)
	if err != nil {
		log.WithError(err).Warn("Skipping official levels")
		return nil
	}

	log.WithField("count", len(officials)).Info("Ingesting official levels")

	return o.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		store := o.storeFactory(tx)
		for _, filename := range officials {
			if o.levelCapReached() {
				break
			}

			ref := LeaderboardRef{
				LevelID:     OfficialLeaderboardName(filename, o.cfg.GameModeID),
				FileID:      models.FileIDOfficial,
				DisplayName: filename,
			}
			if err := o.ingestOne(ctx, store, ref); err != nil {
				return err
			}
		}
		return nil
	})
}

// runWorkshopPaging walks discovery pages, one transaction per page, until
// the source is exhausted or a cap is reached.
func (o *Orchestrator) runWorkshopPaging(ctx context.Context) error {
	if !o.cfg.WorkshopEnabled {
		return nil
	}

	for page := 0; page < o.cfg.MaxPages && !o.levelCapReached(); page++ {
		ids, ok, err := o.discovery.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch workshop page: %w", err)
		}
		if !ok {
			log.WithField("pages", page).Info("Workshop listing exhausted")
			return nil
		}

		log.WithFields(log.Fields{
			"page":       page + 1,
			"candidates": len(ids),
		}).Info("Processing workshop page")

		details, err := o.catalog.GetDetails(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to resolve catalog details: %w", err)
		}

		err = o.db.WithTransaction(ctx, func(tx pgx.Tx) error {
			store := o.storeFactory(tx)
			for _, detail := range details {
				if o.levelCapReached() {
					break
				}
				if !detail.Ingestable() {
					continue
				}

				filename := LevelFilenameNoExt(*detail.Filename)
				displayName := filename
				if detail.Title != nil {
					displayName = *detail.Title
				}

				ref := LeaderboardRef{
					LevelID:     WorkshopLeaderboardName(filename, o.cfg.GameModeID, *detail.Creator),
					FileID:      detail.PublishedFileID,
					DisplayName: displayName,
				}
				if err := o.ingestOne(ctx, store, ref); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// ingestOne fetches and ingests a single leaderboard inside the caller's
// transaction. A not-found leaderboard is logged and skipped; everything else
// propagates and rolls the transaction back.
func (o *Orchestrator) ingestOne(ctx context.Context, store ScoreStore, ref LeaderboardRef) error {
	entries, err := o.leaderboards.FetchEntries(ctx, ref.LevelID)
	if errors.Is(err, ErrLeaderboardNotFound) {
		log.WithFields(log.Fields{
			"leaderboard": ref.LevelID,
			"level":       ref.DisplayName,
		}).Info("No leaderboard for level, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch leaderboard %s: %w", ref.LevelID, err)
	}

	log.WithFields(log.Fields{
		"leaderboard": ref.LevelID,
		"level":       ref.DisplayName,
		"entries":     len(entries),
	}).Info("Updating leaderboard")

	if err := o.ingester.Ingest(ctx, store, ref, entries); err != nil {
		return err
	}

	o.ingested++
	return nil
}

// runFinalRecompute settles the level aggregates in one transaction, after
// every player aggregate has stopped changing.
func (o *Orchestrator) runFinalRecompute(ctx context.Context) error {
	log.Info("Recomputing level evaluation sums")

	err := o.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		return o.storeFactory(tx).RecomputeAllLevelSums(ctx)
	})
	if err != nil {
		return err
	}

	log.WithField("levels_ingested", o.ingested).Info("Crawl complete")
	return nil
}

func (o *Orchestrator) levelCapReached() bool {
	return o.cfg.MaxLevels > 0 && o.ingested >= o.cfg.MaxLevels
}
