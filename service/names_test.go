package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFilenameNoExt(t *testing.T) {
	assert.Equal(t, "broken_symmetry", LevelFilenameNoExt("broken_symmetry.bytes"))
	assert.Equal(t, "already_bare", LevelFilenameNoExt("already_bare"))
	assert.Equal(t, "dotted.name", LevelFilenameNoExt("dotted.name.bytes"))
}

func TestOfficialLeaderboardName(t *testing.T) {
	assert.Equal(t, "broken_symmetry_1_stable", OfficialLeaderboardName("broken_symmetry", 1))
	assert.Equal(t, "cove_2_stable", OfficialLeaderboardName("cove", 2))
}

func TestWorkshopLeaderboardName(t *testing.T) {
	assert.Equal(t,
		"neon_thicket_1_76561198012345678_stable",
		WorkshopLeaderboardName("neon_thicket", 1, "76561198012345678"),
	)
}
