package litetable

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	sheetDir = ".litetable-sheet"
)

// GetSheetDir returns the path to the node's data directory in the user's home directory.
func GetSheetDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, sheetDir), nil
}
