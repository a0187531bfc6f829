package wal

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/litetable/litetable-sheet/internal/table"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	defaultWalDirectory = "wal"
	defaultWALFile      = "wal.log"
)

// Entry is one journaled update together with the replica that handed it to this node.
type Entry struct {
	Update    table.Update `json:"update"`
	Origin    string       `json:"origin"`
	Timestamp time.Time    `json:"timestamp"`
}

type Manager struct {
	mu         sync.RWMutex
	walFile    *os.File
	path       string
	syncWrites bool
}

type Config struct {
	// Path where the WAL directory will be saved
	Path string
	// Sync flushes every entry to disk before Apply returns.
	Sync bool
}

func (c *Config) validate() error {
	var errGrp []error
	if c.Path == "" {
		errGrp = append(errGrp, errors.New("home directory cannot be empty"))
	}
	return errors.Join(errGrp...)
}

func New(cfg *Config) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	walPath := filepath.Join(cfg.Path, defaultWalDirectory, defaultWALFile)
	if err := os.MkdirAll(filepath.Dir(walPath), 0750); err != nil {
		return nil, fmt.Errorf("failed to create WAL directory: %w", err)
	}

	file, err := os.OpenFile(walPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0640)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAL file: %w", err)
	}

	return &Manager{
		walFile:    file,
		path:       walPath,
		syncWrites: cfg.Sync,
	}, nil
}

// Apply appends the entry to the WAL file as one JSON line.
//
// Every update a node applies, local or remote, goes through here first, so replaying the
// file on start rebuilds the same table. Apply is idempotent on the table side, which makes
// duplicated lines harmless.
func (m *Manager) Apply(e *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	jsonData, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	if _, err = m.walFile.Write(append(jsonData, '\n')); err != nil {
		return fmt.Errorf("failed to write to WAL: %w", err)
	}
	if m.syncWrites {
		if err = m.walFile.Sync(); err != nil {
			return fmt.Errorf("failed to sync WAL: %w", err)
		}
	}

	return nil
}

// Close flushes and closes the WAL file.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.walFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync WAL: %w", err)
	}
	return m.walFile.Close()
}

// filePath returns the location of the WAL file
func (m *Manager) filePath() string {
	return m.path
}
