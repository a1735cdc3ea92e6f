package service

import (
	"encoding/json"
	"fmt"
	"os"
)

// ReadOfficialLevels parses the official-levels list: a JSON array of level
// base filenames. Callers treat a failure here as "no officials phase", not
// as a fatal error.
func ReadOfficialLevels(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read official levels list %s: %w", path, err)
	}

	var levels []string
	if err := json.Unmarshal(data, &levels); err != nil {
		return nil, fmt.Errorf("failed to parse official levels list %s: %w", path, err)
	}

	return levels, nil
}
