// Package position implements the dense, totally ordered position keys that identify rows
// and columns independently of their current index.
//
// A Key is a sequence of digits. Each digit carries a counter (Seq) and the hash of the
// replica that generated it, so two replicas generating between the same neighbours never
// produce the same key.
package position

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

// Digit is one level of a Key.
type Digit struct {
	Seq  uint32
	Hash uint32
}

// Compare orders digits by counter, then by replica hash.
func (d Digit) Compare(o Digit) int {
	switch {
	case d.Seq < o.Seq:
		return -1
	case d.Seq > o.Seq:
		return 1
	case d.Hash < o.Hash:
		return -1
	case d.Hash > o.Hash:
		return 1
	default:
		return 0
	}
}

// Uint64 packs the digit into its wire form: counter in the high 32 bits, hash in the low 32.
func (d Digit) Uint64() uint64 {
	return uint64(d.Seq)<<32 | uint64(d.Hash)
}

// DigitFromUint64 unpacks a wire digit.
func DigitFromUint64(v uint64) Digit {
	return Digit{Seq: uint32(v >> 32), Hash: uint32(v)}
}

var maxDigit = Digit{Seq: math.MaxUint32, Hash: math.MaxUint32}

// Key is an immutable position key. A nil Key passed as a boundary means "open".
type Key []Digit

// Compare orders keys digit by digit; when one key is a prefix of the other the shorter one
// is smaller.
func Compare(a, b Key) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if c := a[i].Compare(b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Equal reports whether both keys hold the same digits.
func (k Key) Equal(o Key) bool {
	return Compare(k, o) == 0
}

// String renders the key as colon separated "seq.hash" digits.
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, d := range k {
		parts[i] = fmt.Sprintf("%d.%08x", d.Seq, d.Hash)
	}
	return strings.Join(parts, ":")
}

// MarshalJSON encodes the key as an array of packed digits.
func (k Key) MarshalJSON() ([]byte, error) {
	packed := make([]uint64, len(k))
	for i, d := range k {
		packed[i] = d.Uint64()
	}
	return json.Marshal(packed)
}

// UnmarshalJSON decodes an array of packed digits. A key ending in a zero counter is rejected:
// nothing fits between it and its prefix, and Generate never ends a key that way.
func (k *Key) UnmarshalJSON(data []byte) error {
	var packed []uint64
	if err := json.Unmarshal(data, &packed); err != nil {
		return fmt.Errorf("invalid position key: %w", err)
	}
	if len(packed) == 0 {
		return fmt.Errorf("invalid position key: empty")
	}
	if last := DigitFromUint64(packed[len(packed)-1]); last.Seq == 0 {
		return fmt.Errorf("invalid position key: last digit %d has a zero counter", packed[len(packed)-1])
	}

	out := make(Key, len(packed))
	for i, v := range packed {
		out[i] = DigitFromUint64(v)
	}
	*k = out
	return nil
}

// HashReplica returns the 32-bit FNV-1a hash of a replica identifier. It seeds the tie-break
// half of every digit the replica generates.
func HashReplica(id string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return h.Sum32()
}
