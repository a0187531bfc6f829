package table

import (
	"fmt"
	"github.com/litetable/litetable-sheet/internal/litetable"
	"github.com/litetable/litetable-sheet/internal/position"
	"slices"
)

// rejected marks a column of an UpsertRows update that lost against a newer tombstone.
const rejected = -1

// mark is what the table keeps per alive row or column: the newest upsert that named the key
// and the newest delete the key survived.
//
// A key stays alive while written is above every delete seen for it. Every cell version is at
// least the cleared version of its row and of its column.
type mark struct {
	written litetable.Version
	cleared *litetable.Version
}

func (m mark) touch(v *litetable.Version) mark {
	if litetable.IsHigher(v, &m.written) {
		m.written = *v
	}
	return m
}

func (m mark) clear(v *litetable.Version) mark {
	m.cleared = litetable.MaxVersion(m.cleared, v)
	return m
}

// Apply merges an update into the table. Applying the same update twice, or a set of
// updates in any order, yields the same state. The only error is an update without a known
// operation.
func (t *Table) Apply(u Update) error {
	v := u.Version

	switch op := u.Op.(type) {
	case UpsertColumns:
		t.upsertColumns(op.Columns, &v)
	case UpsertRows:
		t.upsertRows(op.Columns, op.Rows, &v)
	case DeleteRows:
		t.deleteRows(op.Rows, &v)
	case DeleteColumns:
		t.deleteColumns(op.Columns, &v)
	default:
		return fmt.Errorf("%w: %T", ErrUnknownOperation, u.Op)
	}
	return nil
}

// upsertColumns makes sure every column in keys exists and returns the index of each key,
// or rejected for keys whose tombstone is at least as new as v.
func (t *Table) upsertColumns(keys []position.Key, v *litetable.Version) []int {
	for _, key := range keys {
		l := t.columns.Lookup(key)
		switch {
		case l.Found:
			t.columns.SetValue(l.Index, t.columns.ValueAt(l.Index).touch(v))
			continue
		case l.Tombstoned() && !litetable.IsHigher(v, l.Tombstone):
			continue
		}

		m := mark{written: *v, cleared: t.columns.Resurrect(key)}
		t.columns.Insert(l.Index, key, m)
		for r := range t.body {
			seed := litetable.MaxVersion(m.cleared, t.rows.ValueAt(r).cleared)
			t.body[r] = slices.Insert(t.body[r], l.Index, nil)
			t.versions[r] = slices.Insert(t.versions[r], l.Index, seed)
		}
	}

	// Resolved after all inserts, which may shift earlier indexes.
	indexes := make([]int, len(keys))
	for i, key := range keys {
		l := t.columns.Lookup(key)
		if !l.Found {
			indexes[i] = rejected
			continue
		}
		indexes[i] = l.Index
	}
	return indexes
}

// upsertRows writes the row entries. Only columns that receive at least one cell are upserted;
// a column listed without a cell neither keeps nor revives a deleted column.
func (t *Table) upsertRows(columns []position.Key, rows []RowEntry, v *litetable.Version) {
	width := 0
	for _, entry := range rows {
		width = max(width, len(entry.Value))
	}
	written := columns[:min(width, len(columns))]

	indexes := t.upsertColumns(written, v)

	for _, entry := range rows {
		l := t.rows.Lookup(entry.Key)

		var (
			row      Row
			versions []*litetable.Version
		)
		switch {
		case l.Found:
			t.rows.SetValue(l.Index, t.rows.ValueAt(l.Index).touch(v))
			row, versions = t.body[l.Index], t.versions[l.Index]
		case l.Tombstoned() && !litetable.IsHigher(v, l.Tombstone):
			continue
		default:
			m := mark{written: *v, cleared: t.rows.Resurrect(entry.Key)}
			row = make(Row, t.columns.Len())
			versions = make([]*litetable.Version, t.columns.Len())
			for c := range versions {
				versions[c] = litetable.MaxVersion(m.cleared, t.columns.ValueAt(c).cleared)
			}

			t.rows.Insert(l.Index, entry.Key, m)
			t.body = slices.Insert(t.body, l.Index, row)
			t.versions = slices.Insert(t.versions, l.Index, versions)
		}

		for i, value := range entry.Value {
			if i >= len(indexes) || indexes[i] == rejected {
				continue
			}
			c := indexes[i]
			if litetable.IsHigher(v, versions[c]) {
				row[c] = value
				versions[c] = v
			}
		}
	}
}

// deleteRows clears every cell older than v in the listed rows. A row named by an upsert
// newer than v survives with its newer cells; any other row is removed and tombstoned.
func (t *Table) deleteRows(keys []position.Key, v *litetable.Version) {
	for _, key := range keys {
		l := t.rows.Lookup(key)
		if !l.Found {
			t.rows.Tombstone(key, *v)
			continue
		}

		m := t.rows.ValueAt(l.Index)
		if litetable.IsHigher(&m.written, v) {
			row, versions := t.body[l.Index], t.versions[l.Index]
			for c := range row {
				if litetable.IsHigher(v, versions[c]) {
					row[c] = nil
					versions[c] = v
				}
			}
			t.rows.SetValue(l.Index, m.clear(v))
			continue
		}

		t.rows.Remove(l.Index)
		t.body = slices.Delete(t.body, l.Index, l.Index+1)
		t.versions = slices.Delete(t.versions, l.Index, l.Index+1)
		t.rows.Tombstone(key, *litetable.MaxVersion(v, m.cleared))
	}
}

// deleteColumns is deleteRows along the other axis.
func (t *Table) deleteColumns(keys []position.Key, v *litetable.Version) {
	for _, key := range keys {
		l := t.columns.Lookup(key)
		if !l.Found {
			t.columns.Tombstone(key, *v)
			continue
		}

		c := l.Index
		m := t.columns.ValueAt(c)
		if litetable.IsHigher(&m.written, v) {
			for r := range t.body {
				if litetable.IsHigher(v, t.versions[r][c]) {
					t.body[r][c] = nil
					t.versions[r][c] = v
				}
			}
			t.columns.SetValue(c, m.clear(v))
			continue
		}

		t.columns.Remove(c)
		for r := range t.body {
			t.body[r] = slices.Delete(t.body[r], c, c+1)
			t.versions[r] = slices.Delete(t.versions[r], c, c+1)
		}
		t.columns.Tombstone(key, *litetable.MaxVersion(v, m.cleared))
	}
}
