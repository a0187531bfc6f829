package wal

import (
	"encoding/json"
	"errors"
	"github.com/litetable/litetable-sheet/internal/litetable"
	"github.com/litetable/litetable-sheet/internal/position"
	"github.com/litetable/litetable-sheet/internal/table"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

func testEntry(ts int64) *Entry {
	return &Entry{
		Update: table.Update{
			Version: litetable.Version{Timestamp: ts, Origin: "A"},
			Op:      table.DeleteRows{Rows: []position.Key{{{Seq: 1, Hash: 7}}}},
		},
		Origin:    "A",
		Timestamp: time.Now(),
	}
}

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("Invalid config", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{}

		got, err := New(cfg)
		require.Error(t, err)
		require.Nil(t, got)
	})

	t.Run("Valid config", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Path: t.TempDir(),
		}
		got, err := New(cfg)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NoError(t, got.Close())
	})
}

func TestManager_Apply(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	m, err := New(&Config{Path: t.TempDir(), Sync: true})
	req.NoError(err)
	defer m.Close()

	entry := testEntry(42)
	req.NoError(m.Apply(entry))

	content, err := os.ReadFile(m.filePath())
	req.NoError(err)
	req.NotEmpty(content)
	req.Equal(byte('\n'), content[len(content)-1])

	var entryRead Entry
	req.NoError(json.Unmarshal(content, &entryRead))
	req.Equal(entry.Update, entryRead.Update)
	req.Equal(entry.Origin, entryRead.Origin)
	req.Equal(entry.Timestamp.Unix(), entryRead.Timestamp.Unix())
}

func TestManager_Load(t *testing.T) {
	t.Parallel()

	t.Run("replays entries in order", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		m, err := New(&Config{Path: t.TempDir()})
		req.NoError(err)
		defer m.Close()

		for ts := int64(1); ts <= 3; ts++ {
			req.NoError(m.Apply(testEntry(ts)))
		}
		// A torn write at the tail must not stop the replay.
		_, err = m.walFile.Write([]byte("{\"update\":\n"))
		req.NoError(err)

		var got []int64
		req.NoError(m.Load(func(e *Entry) error {
			got = append(got, e.Update.Version.Timestamp)
			return nil
		}))
		req.Equal([]int64{1, 2, 3}, got)
	})

	t.Run("stops on apply error", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		m, err := New(&Config{Path: t.TempDir()})
		req.NoError(err)
		defer m.Close()
		req.NoError(m.Apply(testEntry(1)))

		boom := errors.New("boom")
		req.ErrorIs(m.Load(func(*Entry) error { return boom }), boom)
	})

	t.Run("missing file is empty", func(t *testing.T) {
		t.Parallel()
		req := require.New(t)

		m, err := New(&Config{Path: t.TempDir()})
		req.NoError(err)
		req.NoError(m.Close())
		req.NoError(os.Remove(m.filePath()))

		req.NoError(m.Load(func(*Entry) error {
			t.Fatal("unexpected entry")
			return nil
		}))
	})
}
