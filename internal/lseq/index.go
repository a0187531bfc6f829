// Package lseq holds the ordered index behind each table dimension: a sorted slice of alive
// entries plus a sorted slice of tombstones, both keyed by position.Key.
//
// Searches are binary; inserts and removals shift the backing slice. That is enough for the
// table sizes this node serves, and callers only depend on the methods below, so a balanced
// tree can replace the slices without touching them.
package lseq

import (
	"github.com/litetable/litetable-sheet/internal/litetable"
	"github.com/litetable/litetable-sheet/internal/position"
	"sort"
)

// Entry pairs a position key with a value.
type Entry[V any] struct {
	Key   position.Key `json:"key"`
	Value V            `json:"value"`
}

// Lookup is the result of searching an Index for a key.
//
// When Found is true the key is alive at Index. Otherwise Index is where the key would be
// inserted, and Tombstone holds the deletion version if the key was deleted before.
type Lookup struct {
	Index     int
	Found     bool
	Tombstone *litetable.Version
}

// Tombstoned reports whether the key is known to be deleted.
func (l Lookup) Tombstoned() bool {
	return !l.Found && l.Tombstone != nil
}

// Index is an ordered collection of alive entries and tombstones. A key is either alive or
// tombstoned, never both.
type Index[V any] struct {
	entries    []Entry[V]
	tombstones []Entry[litetable.Version]
}

// New returns an empty Index.
func New[V any]() *Index[V] {
	return &Index[V]{}
}

// Len returns the number of alive entries.
func (x *Index[V]) Len() int {
	return len(x.entries)
}

// KeyAt returns the key of the alive entry at i.
func (x *Index[V]) KeyAt(i int) position.Key {
	return x.entries[i].Key
}

// ValueAt returns the value of the alive entry at i.
func (x *Index[V]) ValueAt(i int) V {
	return x.entries[i].Value
}

// SetValue replaces the value of the alive entry at i.
func (x *Index[V]) SetValue(i int, value V) {
	x.entries[i].Value = value
}

// Keys returns the alive keys in order.
func (x *Index[V]) Keys() []position.Key {
	keys := make([]position.Key, len(x.entries))
	for i, e := range x.entries {
		keys[i] = e.Key
	}
	return keys
}

// Tombstones returns a copy of the tombstone entries in key order.
func (x *Index[V]) Tombstones() []Entry[litetable.Version] {
	out := make([]Entry[litetable.Version], len(x.tombstones))
	copy(out, x.tombstones)
	return out
}

// Lookup finds key among the alive entries, falling back to the tombstones.
func (x *Index[V]) Lookup(key position.Key) Lookup {
	i, found := search(x.entries, key)
	if found {
		return Lookup{Index: i, Found: true}
	}

	res := Lookup{Index: i}
	if t, ok := search(x.tombstones, key); ok {
		v := x.tombstones[t].Value
		res.Tombstone = &v
	}
	return res
}

// Neighbors returns the keys around the insertion point index: the alive key before it and
// the alive key at it. Either is nil when index sits at that end of the index.
func (x *Index[V]) Neighbors(index int) (left, right position.Key) {
	if index > 0 && index <= len(x.entries) {
		left = x.entries[index-1].Key
	}
	if index >= 0 && index < len(x.entries) {
		right = x.entries[index].Key
	}
	return left, right
}

// Insert places an alive entry at index. The caller must have obtained index from Lookup.
func (x *Index[V]) Insert(index int, key position.Key, value V) {
	x.entries = append(x.entries, Entry[V]{})
	copy(x.entries[index+1:], x.entries[index:])
	x.entries[index] = Entry[V]{Key: key, Value: value}
}

// Remove drops the alive entry at index. It does not record a tombstone.
func (x *Index[V]) Remove(index int) {
	x.entries = append(x.entries[:index], x.entries[index+1:]...)
}

// Tombstone records that key was deleted at version, keeping the highest version seen.
func (x *Index[V]) Tombstone(key position.Key, version litetable.Version) {
	i, found := search(x.tombstones, key)
	if found {
		if litetable.IsHigher(&version, &x.tombstones[i].Value) {
			x.tombstones[i].Value = version
		}
		return
	}

	x.tombstones = append(x.tombstones, Entry[litetable.Version]{})
	copy(x.tombstones[i+1:], x.tombstones[i:])
	x.tombstones[i] = Entry[litetable.Version]{Key: key, Value: version}
}

// Resurrect forgets the tombstone of key, if any, and returns its version. It is called when
// a newer insert brings the key back to life.
func (x *Index[V]) Resurrect(key position.Key) *litetable.Version {
	i, found := search(x.tombstones, key)
	if !found {
		return nil
	}
	v := x.tombstones[i].Value
	x.tombstones = append(x.tombstones[:i], x.tombstones[i+1:]...)
	return &v
}

// search returns the position of key in entries, or the index it would be inserted at.
func search[V any](entries []Entry[V], key position.Key) (int, bool) {
	i := sort.Search(len(entries), func(i int) bool {
		return position.Compare(entries[i].Key, key) >= 0
	})
	return i, i < len(entries) && position.Compare(entries[i].Key, key) == 0
}
