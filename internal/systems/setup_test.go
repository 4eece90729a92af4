package systems

import (
	"os"
	"testing"

	"arena-server/internal/domain"
	"arena-server/pkg/logger"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	os.Exit(m.Run())
}

// emptyGrid создает пустую сетку NxN со стандартным размером тайла
func emptyGrid(n int) *domain.Grid {
	return domain.NewGrid(n, n, domain.TileSize)
}

// gridWithWalls создает сетку NxN со стенами на указанных тайлах
func gridWithWalls(n int, walls []domain.TileCoord) *domain.Grid {
	g := emptyGrid(n)
	for _, t := range walls {
		g.SetOccupant(t, domain.NewWall())
	}
	return g
}

// navFor строит четырехсвязный навграф по сетке
func navFor(g *domain.Grid) *NavGraph {
	ng := NewNavGraph(false)
	ng.Regenerate(g)
	return ng
}
