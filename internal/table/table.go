// Package table implements the replicated two-dimensional table.
//
// A Table holds ordered row and column indexes, the cell body and one version per cell.
// Local mutations are turned into Updates, applied locally and handed to a sink; remote
// Updates go through Apply. Apply is commutative and idempotent, so replicas that have seen
// the same set of updates, in any order and with any duplication, hold the same state.
package table

import (
	"errors"
	"github.com/litetable/litetable-sheet/internal/clock"
	"github.com/litetable/litetable-sheet/internal/litetable"
	"github.com/litetable/litetable-sheet/internal/lseq"
	"github.com/litetable/litetable-sheet/internal/position"
)

type Config struct {
	// ReplicaID identifies this replica. It is the version origin and feeds the key hash.
	ReplicaID string
	// Clock stamps local updates. Defaults to a private hybrid logical clock.
	Clock clock.Func
	// Sink receives every update produced by a local mutation, after it was applied.
	Sink func(Update)
}

func (c *Config) validate() error {
	var errGrp []error

	if c.ReplicaID == "" {
		errGrp = append(errGrp, errors.New("replica id is required"))
	}

	return errors.Join(errGrp...)
}

// Table is one replica of the shared table. It is not safe for concurrent use.
type Table struct {
	replicaID   string
	replicaHash uint32
	clock       clock.Func
	sink        func(Update)

	rows     *lseq.Index[mark]
	columns  *lseq.Index[mark]
	body     []Row
	versions [][]*litetable.Version
}

// New creates an empty table.
func New(cfg *Config) (*Table, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	t := &Table{
		replicaID:   cfg.ReplicaID,
		replicaHash: position.HashReplica(cfg.ReplicaID),
		clock:       cfg.Clock,
		sink:        cfg.Sink,
		rows:        lseq.New[mark](),
		columns:     lseq.New[mark](),
	}

	if t.clock == nil {
		t.clock = clock.New(nil).Next
	}
	if t.sink == nil {
		t.sink = func(Update) {}
	}

	return t, nil
}

// ReplicaID returns the id this table stamps its updates with.
func (t *Table) ReplicaID() string {
	return t.replicaID
}

// Rows returns the alive row keys in order.
func (t *Table) Rows() []position.Key {
	return t.rows.Keys()
}

// Columns returns the alive column keys in order.
func (t *Table) Columns() []position.Key {
	return t.columns.Keys()
}

// Body returns a copy of the cell values, one Row per alive row.
func (t *Table) Body() []Row {
	out := make([]Row, len(t.body))
	for i, row := range t.body {
		out[i] = make(Row, len(row))
		copy(out[i], row)
	}
	return out
}

// Versions returns a copy of the per-cell versions. Cells never written hold nil.
func (t *Table) Versions() [][]*litetable.Version {
	out := make([][]*litetable.Version, len(t.versions))
	for i, row := range t.versions {
		out[i] = make([]*litetable.Version, len(row))
		copy(out[i], row)
	}
	return out
}

// Cell returns the value at row, col.
func (t *Table) Cell(row, col int) (any, error) {
	if row < 0 || row >= len(t.body) || col < 0 || col >= t.columns.Len() {
		return nil, ErrOutOfBounds
	}
	return t.body[row][col], nil
}

// State is a point-in-time copy of a table, tombstones included.
type State struct {
	Rows             []position.Key                  `json:"rows"`
	Columns          []position.Key                  `json:"columns"`
	Body             []Row                           `json:"body"`
	Versions         [][]*litetable.Version          `json:"versions"`
	RowTombstones    []lseq.Entry[litetable.Version] `json:"rowTombstones"`
	ColumnTombstones []lseq.Entry[litetable.Version] `json:"columnTombstones"`
}

// Snapshot copies the full table state.
func (t *Table) Snapshot() State {
	return State{
		Rows:             t.rows.Keys(),
		Columns:          t.columns.Keys(),
		Body:             t.Body(),
		Versions:         t.Versions(),
		RowTombstones:    t.rows.Tombstones(),
		ColumnTombstones: t.columns.Tombstones(),
	}
}
