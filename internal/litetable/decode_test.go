package litetable

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Operation
	}{
		// Valid names
		{
			name:     "upsert columns",
			input:    "upsertColumns",
			expected: OperationUpsertColumns,
		},
		{
			name:     "upsert rows",
			input:    "upsertRows",
			expected: OperationUpsertRows,
		},
		{
			name:     "delete rows",
			input:    "deleteRows",
			expected: OperationDeleteRows,
		},
		{
			name:     "delete columns",
			input:    "deleteColumns",
			expected: OperationDeleteColumns,
		},

		// Invalid names
		{
			name:     "empty name",
			input:    "",
			expected: OperationUnknown,
		},
		{
			name:     "too short",
			input:    "upsert",
			expected: OperationUnknown,
		},
		{
			name:     "case sensitivity",
			input:    "UpsertRows",
			expected: OperationUnknown,
		},
		{
			name:     "unknown operation with valid prefix",
			input:    "deleteCells",
			expected: OperationUnknown,
		},
		{
			name:     "trailing whitespace",
			input:    "deleteRows ",
			expected: OperationUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.input)

			require.Equalf(t, tt.expected, got, "Expected operation type does not match")
			if got != OperationUnknown {
				require.Equal(t, tt.input, got.String())
			}
		})
	}
}
