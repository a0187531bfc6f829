package table

import (
	"github.com/litetable/litetable-sheet/internal/position"
)

// Position addresses a cell by row and column index.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Anchor is a point between rows and columns, expressed as position keys so it stays put
// while rows and columns are inserted or deleted around it.
type Anchor struct {
	Row position.Key `json:"row"`
	Col position.Key `json:"col"`
}

// Selection is a rectangular area bounded by two anchors. Rows and columns inserted inside
// the area, locally or by another replica, become part of it.
type Selection struct {
	Corner1 Anchor `json:"corner1"`
	Corner2 Anchor `json:"corner2"`
}

// Select anchors the rectangle spanned by the cells a and b, both inclusive.
func (t *Table) Select(a, b Position) (*Selection, error) {
	upperLeft, lowerRight := normalize(a, b)
	if upperLeft.Row < 0 || upperLeft.Col < 0 ||
		lowerRight.Row >= t.rows.Len() || lowerRight.Col >= t.columns.Len() {
		return nil, ErrOutOfBounds
	}

	return &Selection{
		Corner1: Anchor{
			Row: t.anchor(t.rows.Neighbors(upperLeft.Row)),
			Col: t.anchor(t.columns.Neighbors(upperLeft.Col)),
		},
		Corner2: Anchor{
			Row: t.anchor(t.rows.Neighbors(lowerRight.Row + 1)),
			Col: t.anchor(t.columns.Neighbors(lowerRight.Col + 1)),
		},
	}, nil
}

// Materialize resolves a selection against the current table. upperLeft is inclusive and
// lowerRight exclusive.
func (t *Table) Materialize(sel *Selection) (upperLeft, lowerRight Position) {
	a := Position{
		Row: t.rows.Lookup(sel.Corner1.Row).Index,
		Col: t.columns.Lookup(sel.Corner1.Col).Index,
	}
	b := Position{
		Row: t.rows.Lookup(sel.Corner2.Row).Index,
		Col: t.columns.Lookup(sel.Corner2.Col).Index,
	}
	return normalize(a, b)
}

// View copies the cells currently covered by sel.
func (t *Table) View(sel *Selection) []Row {
	upperLeft, lowerRight := t.Materialize(sel)

	view := make([]Row, 0, lowerRight.Row-upperLeft.Row)
	for r := upperLeft.Row; r < lowerRight.Row; r++ {
		view = append(view, append(Row(nil), t.body[r][upperLeft.Col:lowerRight.Col]...))
	}
	return view
}

func (t *Table) anchor(left, right position.Key) position.Key {
	return position.Generate(t.replicaHash, left, right)
}

func normalize(a, b Position) (upperLeft, lowerRight Position) {
	upperLeft = Position{Row: min(a.Row, b.Row), Col: min(a.Col, b.Col)}
	lowerRight = Position{Row: max(a.Row, b.Row), Col: max(a.Col, b.Col)}
	return upperLeft, lowerRight
}
