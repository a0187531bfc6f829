package replica

import (
	"fmt"
	"github.com/litetable/litetable-sheet/internal/wal"
	"github.com/rs/zerolog/log"
	"github.com/sanity-io/litter"
)

// Start rebuilds the table from the journal. Replayed updates are not handed to sinks.
func (m *Manager) Start() error {
	if m.journal == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var replayed int
	err := m.journal.Load(func(e *wal.Entry) error {
		m.clock.Observe(e.Update.Version.Timestamp)
		if err := m.table.Apply(e.Update); err != nil {
			return fmt.Errorf("failed to replay update from %s: %w", e.Origin, err)
		}
		replayed++
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Msgf("replica %s restored %d updates from the journal", m.id, replayed)
	if e := log.Debug(); e.Enabled() {
		e.Msg(litter.Sdump(m.table.Snapshot()))
	}
	return nil
}

// Stop closes the journal.
func (m *Manager) Stop() error {
	if m.journal == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.journal.Close(); err != nil {
		return fmt.Errorf("failed to close journal: %w", err)
	}
	return nil
}
