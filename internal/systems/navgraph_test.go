package systems

import (
	"testing"

	"arena-server/internal/domain"
)

func TestNavGraphNodesMatchWalkableTiles(t *testing.T) {
	g := gridWithWalls(5, []domain.TileCoord{
		{X: 2, Y: 2}, {X: 0, Y: 4}, {X: 4, Y: 0},
	})
	ng := navFor(g)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			tile := domain.TileCoord{X: x, Y: y}
			if g.IsWalkable(tile) != ng.Contains(tile) {
				t.Errorf("Tile %v: walkable=%v, in graph=%v", tile, g.IsWalkable(tile), ng.Contains(tile))
			}
		}
	}
	if ng.Generation != g.Generation {
		t.Errorf("Graph generation %d lags grid %d", ng.Generation, g.Generation)
	}
}

func TestNavGraphEdgesAreSymmetric(t *testing.T) {
	g := gridWithWalls(6, []domain.TileCoord{
		{X: 1, Y: 1}, {X: 3, Y: 2}, {X: 4, Y: 4},
	})

	for _, diagonal := range []bool{false, true} {
		ng := NewNavGraph(diagonal)
		ng.Regenerate(g)

		for tile, neighbors := range ng.Nodes {
			for _, n := range neighbors {
				if !ng.Contains(n) {
					t.Fatalf("Edge %v->%v leads to missing node (diagonal=%v)", tile, n, diagonal)
				}
				back := false
				for _, rev := range ng.Nodes[n] {
					if rev == tile {
						back = true
						break
					}
				}
				if !back {
					t.Errorf("Edge %v->%v has no reverse (diagonal=%v)", tile, n, diagonal)
				}
			}
		}
	}
}

func TestNavGraphCardinalDegree(t *testing.T) {
	g := emptyGrid(4)
	ng := navFor(g)

	tests := []struct {
		name string
		tile domain.TileCoord
		want int
	}{
		{"corner", domain.TileCoord{X: 0, Y: 0}, 2},
		{"edge", domain.TileCoord{X: 1, Y: 0}, 3},
		{"interior", domain.TileCoord{X: 1, Y: 1}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(ng.Nodes[tt.tile]); got != tt.want {
				t.Errorf("Degree of %v = %d, want %d", tt.tile, got, tt.want)
			}
		})
	}
}

func TestNavGraphDiagonalCornerCutExcluded(t *testing.T) {
	// Стены по обе стороны диагонали: ребро (1,1)-(2,2) недопустимо
	g := gridWithWalls(4, []domain.TileCoord{{X: 2, Y: 1}, {X: 1, Y: 2}})
	ng := NewNavGraph(true)
	ng.Regenerate(g)

	for _, n := range ng.Nodes[domain.TileCoord{X: 1, Y: 1}] {
		if n == (domain.TileCoord{X: 2, Y: 2}) {
			t.Fatal("Diagonal edge through blocked corner must be excluded")
		}
	}

	// Одной свободной стороны недостаточно
	g2 := gridWithWalls(4, []domain.TileCoord{{X: 2, Y: 1}})
	ng2 := NewNavGraph(true)
	ng2.Regenerate(g2)
	for _, n := range ng2.Nodes[domain.TileCoord{X: 1, Y: 1}] {
		if n == (domain.TileCoord{X: 2, Y: 2}) {
			t.Fatal("Diagonal edge with one blocked side must be excluded")
		}
	}
}

func TestNavGraphRegenerateDropsStaleNodes(t *testing.T) {
	g := emptyGrid(3)
	ng := navFor(g)

	tile := domain.TileCoord{X: 1, Y: 1}
	if !ng.Contains(tile) {
		t.Fatal("Tile must start walkable")
	}

	g.SetOccupant(tile, domain.NewWall())
	ng.Regenerate(g)

	if ng.Contains(tile) {
		t.Error("Occupied tile must leave the graph")
	}
	for from, neighbors := range ng.Nodes {
		for _, n := range neighbors {
			if n == tile {
				t.Errorf("Stale edge %v->%v survived regeneration", from, tile)
			}
		}
	}
}
