package service

import (
	"fmt"
	"strings"
)

// LeaderboardNameSuffix is appended to every derived leaderboard name.
const LeaderboardNameSuffix = "stable"

// LevelFilenameNoExt strips the level container extension from a catalog
// filename
func LevelFilenameNoExt(filename string) string {
	return strings.TrimSuffix(filename, ".bytes")
}

// OfficialLeaderboardName derives the leaderboard name for a first-party
// level: <file>_<mode>_stable
func OfficialLeaderboardName(filenameNoExt string, gameModeID int) string {
	return fmt.Sprintf("%s_%d_%s", filenameNoExt, gameModeID, LeaderboardNameSuffix)
}

// WorkshopLeaderboardName derives the leaderboard name for a
// community-sourced level: <file>_<mode>_<creator>_stable
func WorkshopLeaderboardName(filenameNoExt string, gameModeID int, creatorID string) string {
	return fmt.Sprintf("%s_%d_%s_%s", filenameNoExt, gameModeID, creatorID, LeaderboardNameSuffix)
}
