package maze

// Cell values of the grid.
const (
	Wall = true
	Open = false
)

// CellPosition is a grid coordinate. X is the column and Y the row.
type CellPosition struct {
	X int // Column index of the cell
	Y int // Row index of the cell
}

// clamp keeps v inside [lo, hi].
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// clampInterior moves p inside the carvable interior [1, size-2] on both axes.
func clampInterior(p CellPosition, size int) CellPosition {
	return CellPosition{
		X: clamp(p.X, 1, size-2),
		Y: clamp(p.Y, 1, size-2),
	}
}
