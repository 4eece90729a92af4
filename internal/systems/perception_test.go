package systems

import (
	"testing"

	"arena-server/internal/domain"
)

func perceptionWorld() (*domain.Grid, *domain.AreaMap, *NavGraph) {
	// Стена делит поле 7x7 вертикально, проход на y=6
	g := gridWithWalls(7, []domain.TileCoord{
		{X: 3, Y: 0}, {X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 3, Y: 4}, {X: 3, Y: 5},
	})
	areas := domain.NewAreaMap([]domain.Area{
		domain.NewArea("West", 0, 0, 2, 6),
		domain.NewArea("East", 4, 0, 6, 6),
	})
	return g, areas, navFor(g)
}

func TestPerceptionVisibilityAndNearestEnemy(t *testing.T) {
	g, areas, ng := perceptionWorld()

	self := testActor("bot", domain.RoleScripted, domain.TileCoord{X: 1, Y: 1}, g)
	friend := testActor("friend", domain.RoleUser, domain.TileCoord{X: 1, Y: 3}, g)
	nearEnemy := testActor("enemy-a", domain.RoleHostile, domain.TileCoord{X: 2, Y: 1}, g)
	hidden := testActor("enemy-b", domain.RoleHostile, domain.TileCoord{X: 5, Y: 1}, g)
	dead := testActor("enemy-c", domain.RoleHostile, domain.TileCoord{X: 0, Y: 0}, g)
	dead.Hp.Current = 0

	all := []*domain.Actor{self, friend, nearEnemy, hidden, dead}
	Perception(self, all, g, areas, ng, 1.0)

	snap := &self.Status
	if len(snap.VisibleActors) != 2 {
		t.Fatalf("VisibleActors = %v, want friend and enemy-a", snap.VisibleActors)
	}
	// Отсортированы по ID
	if snap.VisibleActors[0] != "enemy-a" || snap.VisibleActors[1] != "friend" {
		t.Errorf("VisibleActors order = %v", snap.VisibleActors)
	}

	if snap.NearestEnemyPos == nil {
		t.Fatal("Nearest enemy must be set")
	}
	if *snap.NearestEnemyPos != nearEnemy.Pos {
		t.Errorf("NearestEnemyPos = %v, want %v", *snap.NearestEnemyPos, nearEnemy.Pos)
	}
	if snap.NearestEnemyDist != self.Pos.DistanceTo(nearEnemy.Pos) {
		t.Errorf("NearestEnemyDist = %v", snap.NearestEnemyDist)
	}
}

func TestPerceptionAreaEnteredEvent(t *testing.T) {
	g, areas, ng := perceptionWorld()
	self := testActor("bot", domain.RoleScripted, domain.TileCoord{X: 1, Y: 1}, g)

	events := Perception(self, []*domain.Actor{self}, g, areas, ng, 1.0)
	if len(events) != 1 || events[0].Type != domain.EventAreaEntered || events[0].Area != "West" {
		t.Fatalf("Expected AreaEntered(West), got %v", events)
	}

	// Без смены зоны событие не повторяется
	events = Perception(self, []*domain.Actor{self}, g, areas, ng, 2.0)
	if len(events) != 0 {
		t.Errorf("Repeat tick in same area must not emit, got %v", events)
	}

	// Переход в другую зону
	self.Pos = g.TileToWorld(domain.TileCoord{X: 5, Y: 1})
	events = Perception(self, []*domain.Actor{self}, g, areas, ng, 3.0)
	if len(events) != 1 || events[0].Area != "East" {
		t.Errorf("Expected AreaEntered(East), got %v", events)
	}
}

func TestPerceptionAreaDistances(t *testing.T) {
	g, areas, ng := perceptionWorld()
	self := testActor("bot", domain.RoleScripted, domain.TileCoord{X: 1, Y: 1}, g)

	Perception(self, []*domain.Actor{self}, g, areas, ng, 0)
	snap := &self.Status

	// Центр West (1,3): 2 шага от (1,1)
	if d, ok := snap.AreaDistances["West"]; !ok || d != 2 {
		t.Errorf("Distance to West = %v (%v)", d, ok)
	}
	// Центр East (5,3) достижим только через проход на y=6
	if d, ok := snap.AreaDistances["East"]; !ok || d <= 6 {
		t.Errorf("Distance to East = %v (%v), want detour longer than 6", d, ok)
	}

	// Прямой видимости на центр East нет, на центр West есть
	visible := map[domain.AreaID]bool{}
	for _, id := range snap.VisibleAreas {
		visible[id] = true
	}
	if !visible["West"] || visible["East"] {
		t.Errorf("VisibleAreas = %v, want West only", snap.VisibleAreas)
	}
}

func TestPerceptionUnknownArea(t *testing.T) {
	g, areas, ng := perceptionWorld()
	// Тайл (3,6) не принадлежит ни West, ни East
	self := testActor("bot", domain.RoleScripted, domain.TileCoord{X: 3, Y: 6}, g)

	events := Perception(self, []*domain.Actor{self}, g, areas, ng, 0)
	if self.Status.CurrentAreaID != domain.AreaUnknown {
		t.Errorf("Area = %v, want Unknown", self.Status.CurrentAreaID)
	}
	// Для Unknown событие не эмитится
	if len(events) != 0 {
		t.Errorf("Unknown area must not emit AreaEntered, got %v", events)
	}
}
