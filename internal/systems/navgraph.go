package systems

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"
)

var cardinalDirs = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var diagonalDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// NavGraph - смежность проходимых тайлов, производная от сетки.
// Generation запоминает поколение сетки, из которого граф собран.
type NavGraph struct {
	Nodes map[domain.TileCoord][]domain.TileCoord

	// Diagonal включает восьмисвязность (со стоимостями 10/14 в A*).
	// Срезание углов исключено: диагональ закрыта, если занята любая
	// из двух общих кардинальных клеток.
	Diagonal bool

	Generation uint64
}

func NewNavGraph(diagonal bool) *NavGraph {
	return &NavGraph{
		Nodes:    make(map[domain.TileCoord][]domain.TileCoord),
		Diagonal: diagonal,
	}
}

// Regenerate полностью перестраивает граф: очистка и повторное заполнение.
// Вызывается при загрузке карты и после каждой успешной постройки или
// разрушения. Инкрементальных обновлений нет - карты маленькие,
// корректность важнее скорости.
func (ng *NavGraph) Regenerate(grid *domain.Grid) {
	clear(ng.Nodes)

	for t := range grid.Tiles {
		if _, occupied := grid.Occupants[t]; occupied {
			continue
		}

		var neighbors []domain.TileCoord

		for _, d := range cardinalDirs {
			n := domain.TileCoord{X: t.X + d[0], Y: t.Y + d[1]}
			if grid.IsWalkable(n) {
				neighbors = append(neighbors, n)
			}
		}

		if ng.Diagonal {
			for _, d := range diagonalDirs {
				n := domain.TileCoord{X: t.X + d[0], Y: t.Y + d[1]}
				if !grid.IsWalkable(n) {
					continue
				}
				// Обе общие кардинальные клетки должны быть свободны
				sideA := domain.TileCoord{X: t.X + d[0], Y: t.Y}
				sideB := domain.TileCoord{X: t.X, Y: t.Y + d[1]}
				if grid.IsWalkable(sideA) && grid.IsWalkable(sideB) {
					neighbors = append(neighbors, n)
				}
			}
		}

		ng.Nodes[t] = neighbors
	}

	ng.Generation = grid.Generation

	logger.Log.WithField("nodes", len(ng.Nodes)).Debug("NavGraph regenerated")
}

// Contains проверяет, входит ли тайл в граф (проходим ли он)
func (ng *NavGraph) Contains(t domain.TileCoord) bool {
	_, ok := ng.Nodes[t]
	return ok
}
