package domain

import "testing"

func TestWorldTileRoundTrip(t *testing.T) {
	g := NewGrid(10, 10, TileSize)

	for _, tile := range []TileCoord{{X: 0, Y: 0}, {X: 3, Y: 7}, {X: 9, Y: 9}} {
		if got := g.WorldToTile(g.TileToWorld(tile)); got != tile {
			t.Errorf("Round trip %v -> %v", tile, got)
		}
	}
}

func TestWorldToTileBoundaries(t *testing.T) {
	g := NewGrid(10, 10, TileSize)

	tests := []struct {
		name string
		pos  Vec3
		want TileCoord
	}{
		{"tile center", Vec3{X: 1.5 * TileSize, Z: 1.5 * TileSize}, TileCoord{X: 1, Y: 1}},
		{"left edge belongs to previous tile", Vec3{X: 2 * TileSize, Z: 2.5 * TileSize}, TileCoord{X: 1, Y: 2}},
		{"just past half tile", Vec3{X: 2.51 * TileSize, Z: 2.51 * TileSize}, TileCoord{X: 2, Y: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.WorldToTile(tt.pos); got != tt.want {
				t.Errorf("WorldToTile(%v) = %v, want %v", tt.pos, got, tt.want)
			}
		})
	}
}

func TestGridOccupantsAndGeneration(t *testing.T) {
	g := NewGrid(5, 5, TileSize)
	tile := TileCoord{X: 2, Y: 2}

	if g.Generation != 0 {
		t.Fatalf("Fresh grid generation = %d", g.Generation)
	}

	if !g.SetOccupant(tile, NewObstacle()) {
		t.Fatal("First placement must succeed")
	}
	if g.Generation != 1 {
		t.Errorf("Generation after placement = %d, want 1", g.Generation)
	}
	if g.IsWalkable(tile) {
		t.Error("Occupied tile reported walkable")
	}

	// Повторная постройка на занятый тайл - тихий отказ без мутации
	if g.SetOccupant(tile, NewWall()) {
		t.Error("Second placement on same tile must fail")
	}
	if g.Generation != 1 {
		t.Errorf("Failed placement bumped generation to %d", g.Generation)
	}
	if g.OccupantAt(tile).Type != StructureObstacle {
		t.Error("Failed placement replaced the occupant")
	}

	removed := g.RemoveOccupant(tile)
	if removed == nil || removed.Type != StructureObstacle {
		t.Errorf("Removed = %+v", removed)
	}
	if g.Generation != 2 || !g.IsWalkable(tile) {
		t.Errorf("After removal: generation=%d walkable=%v", g.Generation, g.IsWalkable(tile))
	}

	// Снятие с пустого тайла не трогает поколение
	if g.RemoveOccupant(tile) != nil || g.Generation != 2 {
		t.Error("Removing from empty tile must be a no-op")
	}
}

func TestSetOccupantOutOfBounds(t *testing.T) {
	g := NewGrid(3, 3, TileSize)
	for _, tile := range []TileCoord{{X: -1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 3}} {
		if g.SetOccupant(tile, NewWall()) {
			t.Errorf("Placement at %v must fail", tile)
		}
	}
	if g.Generation != 0 {
		t.Errorf("Out-of-bounds placements bumped generation to %d", g.Generation)
	}
}

func TestClampTile(t *testing.T) {
	g := NewGrid(4, 6, TileSize)

	tests := []struct {
		in, want TileCoord
	}{
		{TileCoord{X: -5, Y: -5}, TileCoord{X: 0, Y: 0}},
		{TileCoord{X: 10, Y: 10}, TileCoord{X: 3, Y: 5}},
		{TileCoord{X: 2, Y: 3}, TileCoord{X: 2, Y: 3}},
	}
	for _, tt := range tests {
		if got := g.ClampTile(tt.in); got != tt.want {
			t.Errorf("ClampTile(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestManhattanTo(t *testing.T) {
	a := TileCoord{X: 2, Y: 3}
	b := TileCoord{X: 5, Y: 1}
	if d := a.ManhattanTo(b); d != 5 {
		t.Errorf("Manhattan = %d, want 5", d)
	}
	if d := b.ManhattanTo(a); d != 5 {
		t.Errorf("Manhattan must be symmetric, got %d", d)
	}
}
