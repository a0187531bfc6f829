package replica

import (
	"github.com/litetable/litetable-sheet/internal/table"
	"github.com/litetable/litetable-sheet/internal/wal"
	"github.com/rs/zerolog/log"
	"time"
)

// InsertRows inserts rows before the row at index.
func (m *Manager) InsertRows(index int, rows []table.Row) error {
	return m.local(func(t *table.Table) error {
		if err := t.InsertRows(index, rows); err != nil {
			return newError(err, "insert %d rows at %d", len(rows), index)
		}
		return nil
	})
}

// InsertColumns inserts count empty columns before the column at index.
func (m *Manager) InsertColumns(index, count int) error {
	return m.local(func(t *table.Table) error {
		if err := t.InsertColumns(index, count); err != nil {
			return newError(err, "insert %d columns at %d", count, index)
		}
		return nil
	})
}

// DeleteRows deletes up to length rows starting at index.
func (m *Manager) DeleteRows(index, length int) error {
	return m.local(func(t *table.Table) error {
		if err := t.DeleteRows(index, length); err != nil {
			return newError(err, "delete %d rows at %d", length, index)
		}
		return nil
	})
}

// DeleteColumns deletes up to length columns starting at index.
func (m *Manager) DeleteColumns(index, length int) error {
	return m.local(func(t *table.Table) error {
		if err := t.DeleteColumns(index, length); err != nil {
			return newError(err, "delete %d columns at %d", length, index)
		}
		return nil
	})
}

// UpdateCells writes a block of values whose upper left cell is (row, col).
func (m *Manager) UpdateCells(row, col int, values []table.Row) error {
	return m.local(func(t *table.Table) error {
		if err := t.UpdateCells(row, col, values); err != nil {
			return newError(err, "update cells at %d,%d", row, col)
		}
		return nil
	})
}

// local runs a table mutation and publishes the updates it produced.
func (m *Manager) local(mutate func(t *table.Table) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pending = m.pending[:0]
	if err := mutate(m.table); err != nil {
		return err
	}

	var journalErr error
	for _, u := range m.pending {
		// The table already holds the update; a journal failure only costs durability.
		if err := m.record(u); err != nil && journalErr == nil {
			journalErr = err
		}
		m.emit(u)
	}
	m.pending = m.pending[:0]

	return journalErr
}

// Apply merges updates received from other replicas and returns how many were applied.
// Updates are journaled before they touch the table.
func (m *Manager) Apply(updates []table.Update) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, u := range updates {
		if u.Op == nil {
			return i, newError(ErrInvalidUpdate, "update %d from %s has no operation", i, u.Version.Origin)
		}
		if err := m.record(u); err != nil {
			return i, err
		}

		m.clock.Observe(u.Version.Timestamp)
		if err := m.table.Apply(u); err != nil {
			return i, newError(ErrInvalidUpdate, "update %d from %s: %v", i, u.Version.Origin, err)
		}
		m.emit(u)

		log.Debug().
			Str("origin", u.Version.Origin).
			Int64("timestamp", u.Version.Timestamp).
			Str("operation", u.Kind().String()).
			Msg("applied remote update")
	}

	return len(updates), nil
}

func (m *Manager) record(u table.Update) error {
	if m.journal == nil {
		return nil
	}

	entry := &wal.Entry{
		Update:    u,
		Origin:    u.Version.Origin,
		Timestamp: time.Now(),
	}
	if err := m.journal.Apply(entry); err != nil {
		log.Error().Err(err).Msg("failed to journal update")
		return newError(errJournal, "%v", err)
	}
	return nil
}

func (m *Manager) emit(u table.Update) {
	for _, s := range m.sinks {
		s.Emit(u)
	}
}
