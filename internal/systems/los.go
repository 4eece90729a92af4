package systems

import (
	"arena-server/internal/domain"
)

// HasLineOfSightTiles проверяет прямую видимость между тайлами по
// алгоритму Брезенхема. Стартовый тайл не проверяется на препятствия,
// все остальные тайлы линии, включая конечный, проверяются.
// Тайлы вне сетки считаются блокирующими.
func HasLineOfSightTiles(grid *domain.Grid, from, to domain.TileCoord) bool {
	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	first := true
	for {
		if !first {
			if !grid.InBounds(x0, y0) {
				return false
			}
			if _, occupied := grid.Occupants[domain.TileCoord{X: x0, Y: y0}]; occupied {
				return false
			}
		}
		first = false

		if x0 == x1 && y0 == y1 {
			return true
		}

		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// HasLineOfSight - видимость между мировыми позициями.
// Позиции сводятся к тайлам, дальше работает тайловый Брезенхем.
func HasLineOfSight(grid *domain.Grid, from, to domain.Vec3) bool {
	return HasLineOfSightTiles(grid, grid.WorldToTile(from), grid.WorldToTile(to))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
