package wal

import (
	"bufio"
	"encoding/json"
	"errors"
	"github.com/rs/zerolog/log"
	"os"
)

// maxLineSize bounds a single journaled update.
const maxLineSize = 16 << 20

// Load replays every entry of the WAL file in write order. Malformed lines are skipped.
func (m *Manager) Load(apply func(e *Entry) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, err := os.Open(m.filePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var replayed, skipped int
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			log.Warn().Err(err).Msg("skipping malformed WAL entry")
			skipped++
			continue
		}

		if err := apply(&entry); err != nil {
			return err
		}
		replayed++
	}

	log.Debug().Int("replayed", replayed).Int("skipped", skipped).Msg("WAL loaded")
	return scanner.Err()
}
