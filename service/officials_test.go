package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOfficialsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "officials.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadOfficialLevels(t *testing.T) {
	t.Run("parses a list of base filenames", func(t *testing.T) {
		path := writeOfficialsFile(t, `["broken_symmetry", "cove", "chroma"]`)

		levels, err := ReadOfficialLevels(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"broken_symmetry", "cove", "chroma"}, levels)
	})

	t.Run("empty list is valid", func(t *testing.T) {
		path := writeOfficialsFile(t, `[]`)

		levels, err := ReadOfficialLevels(path)
		require.NoError(t, err)
		assert.Empty(t, levels)
	})

	t.Run("malformed json is reported", func(t *testing.T) {
		path := writeOfficialsFile(t, `{"not": "a list"}`)

		_, err := ReadOfficialLevels(path)
		assert.Error(t, err)
	})

	t.Run("missing file is reported", func(t *testing.T) {
		_, err := ReadOfficialLevels(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}
