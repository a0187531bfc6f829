package litetable

import (
	"strings"
)

// Version stamps an update, a cell write or a tombstone.
//
// Versions are totally ordered: a higher Timestamp wins, and on equal timestamps the
// lexicographically larger Origin wins.
type Version struct {
	Timestamp int64  `json:"timestamp"`
	Origin    string `json:"origin"`
}

// Compare orders two versions. A nil version is lower than any real version and two nil
// versions compare equal.
func Compare(a, b *Version) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if a.Timestamp != b.Timestamp {
		if a.Timestamp > b.Timestamp {
			return 1
		}
		return -1
	}
	return strings.Compare(a.Origin, b.Origin)
}

// IsHigher reports whether a strictly dominates b. Absence never wins: IsHigher(nil, x) is
// always false, including when x is nil.
func IsHigher(a, b *Version) bool {
	if a == nil {
		return false
	}
	return Compare(a, b) > 0
}

// MaxVersion returns the higher of the two versions.
func MaxVersion(a, b *Version) *Version {
	if IsHigher(b, a) {
		return b
	}
	return a
}

// Operation names the kind of change carried by an update record.
type Operation int

const (
	OperationUnknown Operation = iota
	OperationUpsertColumns
	OperationUpsertRows
	OperationDeleteRows
	OperationDeleteColumns
)

func (o Operation) String() string {
	switch o {
	case OperationUpsertColumns:
		return "upsertColumns"
	case OperationUpsertRows:
		return "upsertRows"
	case OperationDeleteRows:
		return "deleteRows"
	case OperationDeleteColumns:
		return "deleteColumns"
	default:
		return "unknown"
	}
}
