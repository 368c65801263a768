// Package hexgrid builds finite pointy-top hexagonal tilings.
//
// # Overview
//
// A [Grid] is a rectangular block of hexagonal cells laid out in offset
// coordinates: cells are stored row by row, and every odd row is shifted
// right by half a cell width. Each [Cell] carries its center, its six
// vertices and the indices of its neighbours.
//
//	g := hexgrid.Build(10, 10, 12, vec.Vec2{X: 30, Y: 40})
//	for _, c := range g.Cells {
//	    fmt.Println(c.Index, c.Position, c.Neighbors)
//	}
//
// # Geometry
//
// For a cell scale r (center to vertex distance), cells are
// 2·r·cos30° wide and rows advance by 3·r·sin30°. Vertices are listed in a
// fixed rotational order starting from the top vertex, so walking
// Vertices[0..5] and back to Vertices[0] traces the outline the same way
// for every cell.
//
// # Adjacency
//
// Each cell links to its horizontal neighbours and to the two diagonal
// neighbours above and below. Which diagonal column is used depends on row
// parity: even rows link to the upper/lower-left cells, odd rows to the
// upper/lower-right cells. Links are appended from each cell's own side
// only; because every cell is visited, the relation ends up symmetric.
//
// # Preconditions
//
// [Build] panics on zero or negative dimensions or a non-positive scale.
// A grid is immutable once built and safe to share between readers.
package hexgrid
