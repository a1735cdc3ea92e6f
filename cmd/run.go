package cmd

import (
	"context"
	"fmt"

	"evaluator/config"
	"evaluator/database"
	"evaluator/repository"
	"evaluator/service"
	"evaluator/steam"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// Run executes one full crawl and exits.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	log.Info("Starting leaderboard evaluation run")

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	storeFactory := func(tx pgx.Tx) service.ScoreStore {
		return repository.NewScoreRepositoryWithTx(tx, cfg.PlayerFloor, cfg.LevelFloor)
	}

	fetchRetry := steam.RetryPolicy{
		Interval: cfg.FetchRetryInterval,
		Budget:   cfg.FetchRetryBudget,
	}
	pageProbe := steam.ProbePolicy{
		Interval: cfg.PageProbeInterval,
		Attempts: cfg.PageProbeAttempts,
	}

	leaderboards := steam.NewLeaderboardClient(cfg.LeaderboardBaseURL, fetchRetry)
	discovery := steam.NewWorkshopBrowser(cfg.CommunityBaseURL, cfg.AppID, pageProbe)
	catalog := steam.NewFileDetailsClient(cfg.WebAPIBaseURL, fetchRetry)
	names := steam.NewNameResolver(cfg.WebAPIBaseURL, cfg.WebAPIKey)

	ingester := service.NewIngester(names, service.EvaluationParams{
		MaxAward:      cfg.MaxAward,
		FullBoardSize: cfg.FullBoardSize,
		DecayBase:     cfg.DecayBase,
		DecayScale:    cfg.DecayScale,
	})

	orchestrator := service.NewOrchestrator(
		db,
		storeFactory,
		leaderboards,
		discovery,
		catalog,
		ingester,
		service.RunConfig{
			OfficialsFile:   cfg.OfficialsFile,
			WorkshopEnabled: cfg.WorkshopEnabled,
			MaxLevels:       cfg.MaxLevels,
			MaxPages:        cfg.MaxPages,
			GameModeID:      cfg.GameModeID,
		},
	)

	return orchestrator.Run(ctx)
}
