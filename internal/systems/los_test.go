package systems

import (
	"testing"

	"arena-server/internal/domain"
)

func TestLineOfSightBlockedByOccupant(t *testing.T) {
	g := gridWithWalls(5, []domain.TileCoord{{X: 2, Y: 2}})

	// Горизонтальная линия через (2,2)
	from := g.TileToWorld(domain.TileCoord{X: 0, Y: 2})
	to := g.TileToWorld(domain.TileCoord{X: 4, Y: 2})
	if HasLineOfSight(g, from, to) {
		t.Error("LOS through occupied (2,2) must be blocked")
	}

	// Диагональ (0,0)-(4,4) растеризуется через (2,2)
	from = g.TileToWorld(domain.TileCoord{X: 0, Y: 0})
	to = g.TileToWorld(domain.TileCoord{X: 4, Y: 4})
	if HasLineOfSight(g, from, to) {
		t.Error("Diagonal LOS passing through (2,2) must be blocked")
	}
}

func TestLineOfSightClear(t *testing.T) {
	g := gridWithWalls(5, []domain.TileCoord{{X: 2, Y: 2}})

	// Линия (0,0)-(4,0) не задевает (2,2)
	from := g.TileToWorld(domain.TileCoord{X: 0, Y: 0})
	to := g.TileToWorld(domain.TileCoord{X: 4, Y: 0})
	if !HasLineOfSight(g, from, to) {
		t.Error("Clear row must have LOS")
	}
}

func TestLineOfSightSkipsStartTile(t *testing.T) {
	// Наблюдатель стоит на тайле с постройкой (например турель под ним):
	// собственный тайл не блокирует обзор
	g := gridWithWalls(5, []domain.TileCoord{{X: 0, Y: 0}})

	if !HasLineOfSightTiles(g, domain.TileCoord{X: 0, Y: 0}, domain.TileCoord{X: 3, Y: 0}) {
		t.Error("Start tile must not block LOS")
	}
	// Но занятый конечный тайл блокирует
	if HasLineOfSightTiles(g, domain.TileCoord{X: 3, Y: 0}, domain.TileCoord{X: 0, Y: 0}) {
		t.Error("Occupied goal tile must block LOS")
	}
}

func TestLineOfSightSymmetry(t *testing.T) {
	g := gridWithWalls(7, []domain.TileCoord{
		{X: 3, Y: 2}, {X: 1, Y: 5}, {X: 4, Y: 4},
	})

	// Симметрия на свободных конечных точках
	pairs := []struct{ a, b domain.TileCoord }{
		{domain.TileCoord{X: 0, Y: 0}, domain.TileCoord{X: 6, Y: 6}},
		{domain.TileCoord{X: 0, Y: 6}, domain.TileCoord{X: 6, Y: 0}},
		{domain.TileCoord{X: 2, Y: 1}, domain.TileCoord{X: 5, Y: 5}},
		{domain.TileCoord{X: 0, Y: 2}, domain.TileCoord{X: 6, Y: 2}},
	}
	for _, p := range pairs {
		ab := HasLineOfSightTiles(g, p.a, p.b)
		ba := HasLineOfSightTiles(g, p.b, p.a)
		if ab != ba {
			t.Errorf("LOS %v<->%v asymmetric: %v vs %v", p.a, p.b, ab, ba)
		}
	}
}

func TestLineOfSightOutOfBounds(t *testing.T) {
	g := emptyGrid(3)
	if HasLineOfSightTiles(g, domain.TileCoord{X: 0, Y: 0}, domain.TileCoord{X: 5, Y: 0}) {
		t.Error("LOS leaving the grid must be blocked")
	}
}

func TestWorldToTileConversion(t *testing.T) {
	g := emptyGrid(5)

	tests := []struct {
		name string
		pos  domain.Vec3
		want domain.TileCoord
	}{
		{"tile center", g.TileToWorld(domain.TileCoord{X: 2, Y: 3}), domain.TileCoord{X: 2, Y: 3}},
		{"tile edge maps left", domain.Vec3{X: domain.TileSize, Z: domain.TileSize * 0.5}, domain.TileCoord{X: 0, Y: 0}},
		{"just past half tile", domain.Vec3{X: domain.TileSize * 1.6, Z: domain.TileSize * 0.6}, domain.TileCoord{X: 1, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.WorldToTile(tt.pos); got != tt.want {
				t.Errorf("WorldToTile(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}
