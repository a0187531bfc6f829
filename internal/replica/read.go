package replica

import (
	"github.com/litetable/litetable-sheet/internal/table"
)

// View selects the rectangle spanned by the cells from and to, both inclusive, and returns
// its current content.
func (m *Manager) View(from, to table.Position) ([]table.Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sel, err := m.table.Select(from, to)
	if err != nil {
		return nil, newError(err, "select %d,%d to %d,%d", from.Row, from.Col, to.Row, to.Col)
	}
	return m.table.View(sel), nil
}

// Snapshot copies the full table state.
func (m *Manager) Snapshot() table.State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.table.Snapshot()
}
