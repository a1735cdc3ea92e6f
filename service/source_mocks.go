package service

import (
	"context"

	"evaluator/models"

	"github.com/stretchr/testify/mock"
)

// MockScoreStore is a mock implementation of ScoreStore
type MockScoreStore struct {
	mock.Mock
}

func (m *MockScoreStore) UpsertPlayer(ctx context.Context, playerID, displayName string) error {
	args := m.Called(ctx, playerID, displayName)
	return args.Error(0)
}

func (m *MockScoreStore) UpsertLevel(ctx context.Context, levelID string) error {
	args := m.Called(ctx, levelID)
	return args.Error(0)
}

func (m *MockScoreStore) SetLevelCatalogInfo(ctx context.Context, levelID, fileID, displayName string) error {
	args := m.Called(ctx, levelID, fileID, displayName)
	return args.Error(0)
}

func (m *MockScoreStore) UpsertEntry(ctx context.Context, levelID, playerID string, rawScore int64, rank int, evaluation int64) error {
	args := m.Called(ctx, levelID, playerID, rawScore, rank, evaluation)
	return args.Error(0)
}

func (m *MockScoreStore) PruneEntries(ctx context.Context, levelID string, keepPlayerIDs []string) error {
	args := m.Called(ctx, levelID, keepPlayerIDs)
	return args.Error(0)
}

func (m *MockScoreStore) RecomputeAllLevelSums(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockLeaderboardSource is a mock implementation of LeaderboardSource
type MockLeaderboardSource struct {
	mock.Mock
}

func (m *MockLeaderboardSource) FetchEntries(ctx context.Context, leaderboardName string) ([]models.RankedEntry, error) {
	args := m.Called(ctx, leaderboardName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RankedEntry), args.Error(1)
}

// MockDiscoverySource is a mock implementation of DiscoverySource
type MockDiscoverySource struct {
	mock.Mock
}

func (m *MockDiscoverySource) NextPage(ctx context.Context) ([]string, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]string), args.Bool(1), args.Error(2)
}

// MockCatalogSource is a mock implementation of CatalogSource
type MockCatalogSource struct {
	mock.Mock
}

func (m *MockCatalogSource) GetDetails(ctx context.Context, ids []string) ([]*models.LevelDetails, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LevelDetails), args.Error(1)
}

// MockNameSource is a mock implementation of NameSource
type MockNameSource struct {
	mock.Mock
}

func (m *MockNameSource) DisplayName(ctx context.Context, playerID string) string {
	args := m.Called(ctx, playerID)
	return args.String(0)
}
