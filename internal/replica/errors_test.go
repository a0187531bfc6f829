package replica

import (
	"errors"
	"github.com/litetable/litetable-sheet/internal/table"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_newError(t *testing.T) {
	req := require.New(t)

	t.Run("test error wrapping", func(t *testing.T) {
		err := newError(ErrInvalidUpdate, "")
		req.NotNil(err)
		req.Implements((*error)(nil), err)

		req.Equal(ErrInvalidUpdate, err.err)
		req.True(errors.Is(err, ErrInvalidUpdate))
		req.Equal("invalid update", err.Error())
	})

	t.Run("test error wrapping with context", func(t *testing.T) {
		err := newError(table.ErrOutOfBounds, "insert rows at %d", 7)
		req.NotNil(err)

		req.True(errors.Is(err, table.ErrOutOfBounds))
		req.Equal("index out of bounds: insert rows at 7", err.Error())
	})
}
