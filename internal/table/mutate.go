package table

import (
	"github.com/litetable/litetable-sheet/internal/litetable"
	"github.com/litetable/litetable-sheet/internal/position"
)

// InsertRows inserts rows before the row at index; index equal to the row count appends.
// Rows wider than the table add columns after the last one.
func (t *Table) InsertRows(index int, rows []Row) error {
	if index < 0 || index > t.rows.Len() {
		return ErrOutOfBounds
	}
	if len(rows) == 0 {
		return nil
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	columns := t.columns.Keys()
	for len(columns) < width {
		columns = append(columns, position.Generate(t.replicaHash, lastKey(columns), nil))
	}

	entries := make([]RowEntry, len(rows))
	left, right := t.rows.Neighbors(index)
	for i, row := range rows {
		key := position.Generate(t.replicaHash, left, right)
		entries[i] = RowEntry{Key: key, Value: row}
		left = key
	}

	t.commit(UpsertRows{Columns: columns, Rows: entries})
	return nil
}

// InsertColumns inserts count empty columns before the column at index.
func (t *Table) InsertColumns(index, count int) error {
	if index < 0 || index > t.columns.Len() {
		return ErrOutOfBounds
	}
	if count <= 0 {
		return nil
	}

	keys := make([]position.Key, count)
	left, right := t.columns.Neighbors(index)
	for i := range keys {
		keys[i] = position.Generate(t.replicaHash, left, right)
		left = keys[i]
	}

	t.commit(UpsertColumns{Columns: keys})
	return nil
}

// DeleteRows deletes up to length rows starting at index.
func (t *Table) DeleteRows(index, length int) error {
	keys, err := span(t.rows.Keys(), index, length)
	if err != nil || len(keys) == 0 {
		return err
	}

	t.commit(DeleteRows{Rows: keys})
	return nil
}

// DeleteColumns deletes up to length columns starting at index.
func (t *Table) DeleteColumns(index, length int) error {
	keys, err := span(t.columns.Keys(), index, length)
	if err != nil || len(keys) == 0 {
		return err
	}

	t.commit(DeleteColumns{Columns: keys})
	return nil
}

// UpdateCells writes values as a block whose upper left cell is (row, col). Rows and columns
// past the current extents are appended after the last existing ones.
func (t *Table) UpdateCells(row, col int, values []Row) error {
	if row < 0 || col < 0 {
		return ErrOutOfBounds
	}
	if len(values) == 0 {
		return nil
	}

	width := 0
	for _, v := range values {
		width = max(width, len(v))
	}
	if width == 0 {
		return nil
	}

	columns := make([]position.Key, 0, width)
	last := lastKey(t.columns.Keys())
	for i := range width {
		if col+i < t.columns.Len() {
			columns = append(columns, t.columns.KeyAt(col+i))
			continue
		}
		last = position.Generate(t.replicaHash, last, nil)
		columns = append(columns, last)
	}

	entries := make([]RowEntry, len(values))
	lastRow := lastKey(t.rows.Keys())
	for i, v := range values {
		if row+i < t.rows.Len() {
			entries[i] = RowEntry{Key: t.rows.KeyAt(row + i), Value: v}
			continue
		}
		lastRow = position.Generate(t.replicaHash, lastRow, nil)
		entries[i] = RowEntry{Key: lastRow, Value: v}
	}

	t.commit(UpsertRows{Columns: columns, Rows: entries})
	return nil
}

// commit stamps op with the next local version, applies it and hands it to the sink.
func (t *Table) commit(op Operation) {
	u := Update{
		Version: litetable.Version{Timestamp: t.clock(), Origin: t.replicaID},
		Op:      op,
	}
	// Locally built operations are always one of the known kinds.
	_ = t.Apply(u)
	t.sink(u)
}

func span(keys []position.Key, index, length int) ([]position.Key, error) {
	if index < 0 || index >= len(keys) {
		return nil, ErrOutOfBounds
	}
	if length <= 0 {
		return nil, nil
	}
	end := min(len(keys), index+length)
	return keys[index:end], nil
}

func lastKey(keys []position.Key) position.Key {
	if len(keys) == 0 {
		return nil
	}
	return keys[len(keys)-1]
}
