package table

import (
	"encoding/json"
	"github.com/litetable/litetable-sheet/internal/position"
	"github.com/stretchr/testify/require"
	"testing"
)

// counter is a deterministic clock shared by the replicas of a test.
type counter struct {
	n int64
}

func (c *counter) next() int64 {
	c.n++
	return c.n
}

// later stamps versions that sort after everything c hands out.
func (c *counter) later() int64 {
	return c.next() + 10000
}

// recorder keeps the updates a table emitted.
type recorder struct {
	updates []Update
}

func (r *recorder) sink(u Update) {
	r.updates = append(r.updates, u)
}

func (r *recorder) last() Update {
	return r.updates[len(r.updates)-1]
}

func newTable(t *testing.T, id string, clk func() int64, sink func(Update)) *Table {
	t.Helper()
	tbl, err := New(&Config{ReplicaID: id, Clock: clk, Sink: sink})
	require.NoError(t, err)
	return tbl
}

// newSyncedPair returns two replicas that deliver every local update to each other at once.
func newSyncedPair(t *testing.T) (a, b *Table) {
	t.Helper()
	c := &counter{}
	a = newTable(t, "A", c.next, func(u Update) { require.NoError(t, b.Apply(u)) })
	b = newTable(t, "B", c.next, func(u Update) { require.NoError(t, a.Apply(u)) })
	return a, b
}

// newConcurrentPair returns two replicas that only record their updates. B always stamps
// later versions than A, so B wins every conflict.
func newConcurrentPair(t *testing.T) (a, b *Table, ra, rb *recorder) {
	t.Helper()
	c := &counter{}
	ra, rb = &recorder{}, &recorder{}
	a = newTable(t, "A", c.next, ra.sink)
	b = newTable(t, "B", c.later, rb.sink)
	return a, b, ra, rb
}

func rows(cells ...Row) []Row {
	return cells
}

func mustKey(t *testing.T, raw string) position.Key {
	t.Helper()
	var key position.Key
	require.NoError(t, json.Unmarshal([]byte(raw), &key))
	return key
}
