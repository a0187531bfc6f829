// Package replica runs one table replica inside a node. It serializes access to the table,
// journals every applied update and hands it to the node's sinks.
package replica

import (
	"errors"
	"fmt"
	"github.com/litetable/litetable-sheet/internal/clock"
	"github.com/litetable/litetable-sheet/internal/table"
	"github.com/litetable/litetable-sheet/internal/wal"
	"sync"
)

//go:generate mockgen -destination=manager_mock.go -package=replica -source=manager.go

type journal interface {
	Apply(e *wal.Entry) error
	Load(apply func(e *wal.Entry) error) error
	Close() error
}

// Sink receives every update the replica applied, local or remote, in apply order.
type Sink interface {
	Emit(u table.Update)
}

type Config struct {
	ReplicaID string
	// Journal is optional. Without one the table only lives in memory.
	Journal journal
	Sinks   []Sink
}

func (c *Config) validate() error {
	var errGrp []error
	if c.ReplicaID == "" {
		errGrp = append(errGrp, errors.New("replica id cannot be empty"))
	}
	for i, s := range c.Sinks {
		if s == nil {
			errGrp = append(errGrp, fmt.Errorf("sink %d cannot be nil", i))
		}
	}
	return errors.Join(errGrp...)
}

type Manager struct {
	mu      sync.Mutex
	id      string
	clock   *clock.Clock
	table   *table.Table
	journal journal
	sinks   []Sink

	// pending collects the updates of the local mutation in flight.
	pending []table.Update
}

// New creates a replica manager around an empty table.
func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	m := &Manager{
		id:      cfg.ReplicaID,
		clock:   clock.New(nil),
		journal: cfg.Journal,
		sinks:   cfg.Sinks,
	}

	tbl, err := table.New(&table.Config{
		ReplicaID: cfg.ReplicaID,
		Clock:     m.clock.Next,
		Sink: func(u table.Update) {
			m.pending = append(m.pending, u)
		},
	})
	if err != nil {
		return nil, err
	}
	m.table = tbl

	return m, nil
}

// AddSink registers another sink. Sinks added after Start only see later updates.
func (m *Manager) AddSink(s Sink) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sinks = append(m.sinks, s)
}

// ReplicaID returns the id this replica stamps its updates with.
func (m *Manager) ReplicaID() string {
	return m.id
}

func (m *Manager) Name() string {
	return "Replica Manager"
}
