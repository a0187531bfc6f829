package table

import (
	"github.com/stretchr/testify/require"
	"testing"
)

func TestTable_SelectBasic(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	a, b := newSyncedPair(t)
	req.NoError(a.InsertRows(0, rows(
		Row{"a1", "b1", "c1", "d1"},
		Row{"a2", "b2", "c2", "d2"},
		Row{"a3", "b3", "c3", "d3"},
	)))

	sel, err := b.Select(Position{Row: 0, Col: 2}, Position{Row: 2, Col: 3})
	req.NoError(err)
	req.Equal(rows(
		Row{"c1", "d1"},
		Row{"c2", "d2"},
		Row{"c3", "d3"},
	), b.View(sel))

	// Corners may be given in any order.
	swapped, err := b.Select(Position{Row: 2, Col: 2}, Position{Row: 0, Col: 3})
	req.NoError(err)
	req.Equal(b.View(sel), b.View(swapped))

	upperLeft, lowerRight := b.Materialize(sel)
	req.Equal(Position{Row: 0, Col: 2}, upperLeft)
	req.Equal(Position{Row: 3, Col: 4}, lowerRight)
}

func TestTable_SelectFollowsInsertedColumn(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	a, b, ra, _ := newConcurrentPair(t)
	req.NoError(a.InsertRows(0, rows(
		Row{"a1", "b1", "c1", "d1"},
		Row{"a2", "b2", "c2", "d2"},
		Row{"a3", "b3", "c3", "d3"},
	)))
	req.NoError(b.Apply(ra.last()))

	sel, err := b.Select(Position{Row: 0, Col: 2}, Position{Row: 2, Col: 3})
	req.NoError(err)
	req.Equal(rows(Row{"c1", "d1"}, Row{"c2", "d2"}, Row{"c3", "d3"}), b.View(sel))

	req.NoError(a.InsertColumns(3, 1))
	req.Equal(rows(
		Row{"a1", "b1", "c1", nil, "d1"},
		Row{"a2", "b2", "c2", nil, "d2"},
		Row{"a3", "b3", "c3", nil, "d3"},
	), a.Body())
	req.NoError(b.Apply(ra.last()))

	view := b.View(sel)
	req.Equal(rows(
		Row{"c1", nil, "d1"},
		Row{"c2", nil, "d2"},
		Row{"c3", nil, "d3"},
	), view)
	req.Equal(view, a.View(sel))
}

func TestTable_SelectFollowsInsertedRow(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	a, b, ra, _ := newConcurrentPair(t)
	req.NoError(a.InsertRows(0, rows(
		Row{"a1", "b1", "c1", "d1"},
		Row{"a2", "b2", "c2", "d2"},
		Row{"a4", "b4", "c4", "d4"},
	)))
	req.NoError(b.Apply(ra.last()))

	sel, err := b.Select(Position{Row: 0, Col: 2}, Position{Row: 2, Col: 3})
	req.NoError(err)
	req.Equal(rows(Row{"c1", "d1"}, Row{"c2", "d2"}, Row{"c4", "d4"}), b.View(sel))

	req.NoError(a.InsertRows(2, rows(Row{"a3", "b3", "c3", "d3"})))
	req.NoError(b.Apply(ra.last()))

	view := b.View(sel)
	req.Equal(rows(
		Row{"c1", "d1"},
		Row{"c2", "d2"},
		Row{"c3", "d3"},
		Row{"c4", "d4"},
	), view)
	req.Equal(view, a.View(sel))
}

func TestTable_SelectShrinksOnDelete(t *testing.T) {
	t.Parallel()
	req := require.New(t)

	a, b := newSyncedPair(t)
	req.NoError(a.InsertRows(0, rows(
		Row{"a1", "b1", "c1"},
		Row{"a2", "b2", "c2"},
		Row{"a3", "b3", "c3"},
	)))

	sel, err := b.Select(Position{Row: 0, Col: 0}, Position{Row: 2, Col: 2})
	req.NoError(err)

	req.NoError(a.DeleteRows(1, 1))
	req.NoError(a.DeleteColumns(0, 1))
	req.Equal(rows(Row{"b1", "c1"}, Row{"b3", "c3"}), b.View(sel))
}

func TestTable_SelectOutOfBounds(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		a, b Position
	}{
		"negative row":        {a: Position{Row: -1, Col: 0}, b: Position{Row: 1, Col: 1}},
		"negative column":     {a: Position{Row: 0, Col: -1}, b: Position{Row: 1, Col: 1}},
		"row past the end":    {a: Position{Row: 0, Col: 0}, b: Position{Row: 2, Col: 1}},
		"column past the end": {a: Position{Row: 0, Col: 0}, b: Position{Row: 1, Col: 2}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := require.New(t)

			tbl := newTable(t, "A", nil, nil)
			req.NoError(tbl.InsertRows(0, rows(Row{"a1", "b1"}, Row{"a2", "b2"})))

			sel, err := tbl.Select(tc.a, tc.b)
			req.ErrorIs(err, ErrOutOfBounds)
			req.Nil(sel)
		})
	}
}
