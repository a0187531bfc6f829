package table

import (
	"github.com/litetable/litetable-sheet/internal/litetable"
	"github.com/litetable/litetable-sheet/internal/position"
)

// Row is one row of cell values. A nil cell is empty.
type Row = []any

// RowEntry carries the cells of a row together with the row's position key.
type RowEntry struct {
	Key   position.Key `json:"key"`
	Value Row          `json:"value"`
}

// Update is the record exchanged between replicas: one operation stamped with the version
// of the replica that produced it. Updates are immutable once built.
type Update struct {
	Version litetable.Version
	Op      Operation
}

// Kind returns the operation kind, or OperationUnknown for an empty update.
func (u Update) Kind() litetable.Operation {
	if u.Op == nil {
		return litetable.OperationUnknown
	}
	return u.Op.Kind()
}

// Operation is the closed set of changes an Update can carry: UpsertColumns, UpsertRows,
// DeleteRows and DeleteColumns.
type Operation interface {
	Kind() litetable.Operation
	isOperation()
}

// UpsertColumns makes sure every listed column exists.
type UpsertColumns struct {
	Columns []position.Key `json:"columns"`
}

// UpsertRows creates or updates rows. Value[i] of each row belongs to Columns[i].
type UpsertRows struct {
	Columns []position.Key `json:"columns"`
	Rows    []RowEntry     `json:"rows"`
}

// DeleteRows removes rows, keeping any row that still holds newer cells.
type DeleteRows struct {
	Rows []position.Key `json:"rows"`
}

// DeleteColumns removes columns, keeping any column that still holds newer cells.
type DeleteColumns struct {
	Columns []position.Key `json:"columns"`
}

func (UpsertColumns) Kind() litetable.Operation { return litetable.OperationUpsertColumns }
func (UpsertRows) Kind() litetable.Operation    { return litetable.OperationUpsertRows }
func (DeleteRows) Kind() litetable.Operation    { return litetable.OperationDeleteRows }
func (DeleteColumns) Kind() litetable.Operation { return litetable.OperationDeleteColumns }

func (UpsertColumns) isOperation() {}
func (UpsertRows) isOperation()    {}
func (DeleteRows) isOperation()    {}
func (DeleteColumns) isOperation() {}
