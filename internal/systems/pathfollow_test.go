package systems

import (
	"math"
	"testing"

	"arena-server/internal/domain"
)

func TestRepathOnlyWhenDirty(t *testing.T) {
	g := emptyGrid(6)
	ng := navFor(g)
	actor := testActor("bot", domain.RoleScripted, domain.TileCoord{X: 0, Y: 0}, g)

	// Без цели перепрокладка не выполняется
	Repath(actor, ng, g)
	if actor.Follower.Path != nil {
		t.Fatal("No target, no path")
	}

	actor.Target.Assign(domain.TileCoord{X: 3, Y: 0})
	Repath(actor, ng, g)
	if actor.Target.Dirty {
		t.Error("Repath must clear the dirty flag")
	}
	if len(actor.Follower.Path) != 4 {
		t.Fatalf("Path = %v, want 4 nodes", actor.Follower.Path)
	}

	// Чистая цель не трогает текущий путь
	actor.Follower.Index = 2
	Repath(actor, ng, g)
	if actor.Follower.Index != 2 {
		t.Error("Clean target must not reset the follower")
	}
}

func TestRepathUnreachableLeavesNoPath(t *testing.T) {
	// Цель замурована стенами
	g := gridWithWalls(6, []domain.TileCoord{
		{X: 3, Y: 3}, {X: 5, Y: 3}, {X: 4, Y: 2}, {X: 4, Y: 4},
	})
	ng := navFor(g)
	actor := testActor("bot", domain.RoleScripted, domain.TileCoord{X: 0, Y: 0}, g)

	actor.Target.Assign(domain.TileCoord{X: 4, Y: 3})
	Repath(actor, ng, g)

	if !actor.Follower.Done() {
		t.Error("Unreachable goal must leave an empty follower")
	}
	if actor.Target.Dirty {
		t.Error("Dirty flag clears even on failure")
	}
	// Цель остается: правила могут переписать ее позже
	if !actor.Target.Set {
		t.Error("Target must survive a failed repath")
	}
}

func TestFollowPathWritesLocalIntent(t *testing.T) {
	g := emptyGrid(6)
	actor := testActor("bot", domain.RoleScripted, domain.TileCoord{X: 1, Y: 1}, g)
	actor.Follower.Reset([]domain.TileCoord{{X: 1, Y: 1}, {X: 2, Y: 1}})

	FollowPath(actor, g)

	// Актер стоит на первом узле: узел сразу пройден, курс на восток
	if actor.Follower.Index != 1 {
		t.Errorf("Index = %d, want 1", actor.Follower.Index)
	}
	in := actor.Movement.InputDirection
	if math.Abs(in.X-1) > 1e-9 || math.Abs(in.Z) > 1e-9 {
		t.Errorf("InputDirection = %v, want +X", in)
	}
}

func TestFollowPathIgnoresActorHeight(t *testing.T) {
	g := emptyGrid(6)
	actor := testActor("bot", domain.RoleScripted, domain.TileCoord{X: 1, Y: 1}, g)
	actor.Pos.Y = 1.5
	actor.Follower.Reset([]domain.TileCoord{{X: 1, Y: 1}, {X: 2, Y: 1}})

	FollowPath(actor, g)

	// Узлы пути лежат на полу, актер приподнят. Расстояние до узла
	// меряется в плоскости, иначе узел под ногами недостижим.
	if actor.Follower.Index != 1 {
		t.Fatalf("Index = %d, want 1", actor.Follower.Index)
	}
	in := actor.Movement.InputDirection
	if math.Abs(in.X-1) > 1e-9 || math.Abs(in.Z) > 1e-9 {
		t.Errorf("InputDirection = %v, want +X", in)
	}
	if in.Y != 0 {
		t.Errorf("Vertical intent = %v, want 0", in.Y)
	}
}

func TestFollowPathAccountsForYaw(t *testing.T) {
	g := emptyGrid(6)
	actor := testActor("bot", domain.RoleScripted, domain.TileCoord{X: 1, Y: 1}, g)
	actor.Yaw = math.Pi / 2
	actor.Follower.Reset([]domain.TileCoord{{X: 2, Y: 1}})

	FollowPath(actor, g)

	// Мировой курс +X в локальной системе повернутого актера - это +Z
	in := actor.Movement.InputDirection
	if math.Abs(in.Z-1) > 1e-9 || math.Abs(in.X) > 1e-9 {
		t.Errorf("InputDirection = %v, want local +Z", in)
	}
	// Проверка согласованности: обратный поворот дает мировой +X
	world := in.RotateY(actor.Yaw)
	if math.Abs(world.X-1) > 1e-9 {
		t.Errorf("World direction = %v", world)
	}
}

func TestFollowPathStopsAtEnd(t *testing.T) {
	g := emptyGrid(6)
	actor := testActor("bot", domain.RoleScripted, domain.TileCoord{X: 2, Y: 2}, g)
	actor.Follower.Reset([]domain.TileCoord{{X: 2, Y: 2}})
	actor.Movement.InputDirection = domain.Vec3{X: 1}

	FollowPath(actor, g)

	if !actor.Follower.Done() {
		t.Error("Path consisting of the current tile must complete")
	}
	if actor.Movement.InputDirection != (domain.Vec3{}) {
		t.Errorf("Intent must clear at the end: %v", actor.Movement.InputDirection)
	}
}
