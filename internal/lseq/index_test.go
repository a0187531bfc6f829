package lseq

import (
	"github.com/litetable/litetable-sheet/internal/litetable"
	"github.com/litetable/litetable-sheet/internal/position"
	"github.com/stretchr/testify/require"
	"math/rand"
	"testing"
)

func key(seqs ...uint32) position.Key {
	k := make(position.Key, len(seqs))
	for i, s := range seqs {
		k[i] = position.Digit{Seq: s}
	}
	return k
}

// assertOrdered checks every adjacent pair of alive keys is strictly increasing and that each
// key is found where it sits.
func assertOrdered[V any](t *testing.T, x *Index[V]) {
	t.Helper()
	for i := 0; i < x.Len(); i++ {
		l := x.Lookup(x.KeyAt(i))
		require.True(t, l.Found)
		require.Equal(t, i, l.Index)
		if i > 0 {
			require.Negative(t, position.Compare(x.KeyAt(i-1), x.KeyAt(i)))
		}
	}
}

func TestIndex_Lookup(t *testing.T) {
	t.Parallel()
	x := New[string]()
	x.Insert(0, key(1), "a")
	x.Insert(1, key(3), "c")
	x.Tombstone(key(2), litetable.Version{Timestamp: 7, Origin: "A"})

	tests := map[string]struct {
		key        position.Key
		index      int
		found      bool
		tombstoned bool
	}{
		"alive first":          {key: key(1), index: 0, found: true},
		"alive last":           {key: key(3), index: 1, found: true},
		"tombstoned in middle": {key: key(2), index: 1, tombstoned: true},
		"unknown before all":   {key: key(0), index: 0},
		"unknown after all":    {key: key(4), index: 2},
		"unknown deeper key":   {key: key(1, 5), index: 1},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			got := x.Lookup(tc.key)
			req.Equal(tc.index, got.Index)
			req.Equal(tc.found, got.Found)
			req.Equal(tc.tombstoned, got.Tombstoned())
			if tc.tombstoned {
				req.Equal(litetable.Version{Timestamp: 7, Origin: "A"}, *got.Tombstone)
			}
		})
	}
}

func TestIndex_Neighbors(t *testing.T) {
	req := require.New(t)
	x := New[struct{}]()

	left, right := x.Neighbors(0)
	req.Nil(left)
	req.Nil(right)

	x.Insert(0, key(1), struct{}{})
	x.Insert(1, key(2), struct{}{})

	left, right = x.Neighbors(0)
	req.Nil(left)
	req.Equal(key(1), right)

	left, right = x.Neighbors(1)
	req.Equal(key(1), left)
	req.Equal(key(2), right)

	left, right = x.Neighbors(2)
	req.Equal(key(2), left)
	req.Nil(right)
}

func TestIndex_InsertRemove(t *testing.T) {
	t.Parallel()
	req := require.New(t)
	rng := rand.New(rand.NewSource(7))
	x := New[int]()

	for i := 0; i < 500; i++ {
		pos := rng.Intn(x.Len() + 1)
		left, right := x.Neighbors(pos)
		k := position.Generate(uint32(rng.Intn(4)), left, right)

		l := x.Lookup(k)
		req.False(l.Found)
		req.Equal(pos, l.Index)
		x.Insert(l.Index, k, i)
	}
	assertOrdered(t, x)

	for x.Len() > 10 {
		x.Remove(rng.Intn(x.Len()))
	}
	assertOrdered(t, x)
	req.Len(x.Keys(), 10)
}

func TestIndex_Tombstone(t *testing.T) {
	req := require.New(t)
	x := New[struct{}]()
	low := litetable.Version{Timestamp: 1, Origin: "B"}
	high := litetable.Version{Timestamp: 2, Origin: "A"}

	x.Tombstone(key(5), low)
	x.Tombstone(key(5), high)
	x.Tombstone(key(5), low) // older delete arriving late must not lower the version
	x.Tombstone(key(1), low)

	got := x.Tombstones()
	req.Len(got, 2)
	req.Equal(key(1), got[0].Key)
	req.Equal(key(5), got[1].Key)
	req.Equal(high, got[1].Value)

	// returned tombstones are copies
	got[1].Value.Timestamp = 100
	req.Equal(high, *x.Lookup(key(5)).Tombstone)
}

func TestIndex_Resurrect(t *testing.T) {
	req := require.New(t)
	x := New[struct{}]()
	v := litetable.Version{Timestamp: 3, Origin: "A"}

	req.Nil(x.Resurrect(key(9)))

	x.Tombstone(key(9), v)
	got := x.Resurrect(key(9))
	req.NotNil(got)
	req.Equal(v, *got)

	l := x.Lookup(key(9))
	req.False(l.Found)
	req.False(l.Tombstoned())
	req.Empty(x.Tombstones())
}
