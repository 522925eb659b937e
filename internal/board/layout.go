package board

import "github.com/robalobadob/memory/apps/go-server/internal/card"

// Layout supplies board geometry. Origin is where cards spawn off-board;
// Position is the target slot of card i.
type Layout interface {
	Origin() card.Position
	Position(i int) card.Position
}

// GridLayout places cards row-major on a grid centred on (0,0), one unit apart
// scaled by CellWidth/CellHeight. Cards spawn below the board.
type GridLayout struct {
	Rows       int
	Columns    int
	CellWidth  float64
	CellHeight float64
}

// NewGridLayout returns a unit-cell grid for rows x columns.
func NewGridLayout(rows, columns int) GridLayout {
	return GridLayout{Rows: rows, Columns: columns, CellWidth: 1, CellHeight: 1.2}
}

func (g GridLayout) Origin() card.Position {
	return card.Position{X: 0, Y: -float64(g.Rows) * g.CellHeight}
}

func (g GridLayout) Position(i int) card.Position {
	row, col := i/g.Columns, i%g.Columns
	return card.Position{
		X: (float64(col) - float64(g.Columns-1)/2) * g.CellWidth,
		Y: (float64(g.Rows-1)/2 - float64(row)) * g.CellHeight,
	}
}
