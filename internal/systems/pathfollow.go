package systems

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"
)

// Repath пересчитывает путь актёра, если его цель помечена грязной.
// Недостижимая цель оставляет актёра без пути: следование бездействует,
// цель сохраняется до следующей перезаписи движком правил.
func Repath(actor *domain.Actor, ng *NavGraph, grid *domain.Grid) {
	tgt := &actor.Target
	if !tgt.Set || !tgt.Dirty {
		return
	}
	tgt.Dirty = false

	start := actor.Tile(grid)
	path := FindPath(ng, start, tgt.Tile)
	actor.Follower.Reset(path)

	if path == nil {
		logger.Log.WithFields(map[string]interface{}{
			"actor": actor.ID,
			"from":  start,
			"to":    tgt.Tile,
		}).Debug("Path not found")
	}
}

// FollowPath пишет намерение движения к следующему узлу пути.
// Узел считается достигнутым в радиусе PathNodeReachDistance.
// Узлы лежат на уровне пола, актёр - на высоте своего коллайдера,
// поэтому расстояние меряется в плоскости XZ. Намерение задаётся
// в локальной системе актёра, мировое направление предварительно
// поворачивается на -yaw.
func FollowPath(actor *domain.Actor, grid *domain.Grid) {
	f := &actor.Follower
	if f.Done() {
		actor.Movement.InputDirection = domain.Vec3{}
		return
	}

	node := grid.TileToWorld(f.Path[f.Index])
	node.Y = actor.Pos.Y
	for actor.Pos.DistanceTo(node) < domain.PathNodeReachDistance {
		f.Index++
		if f.Done() {
			actor.Movement.InputDirection = domain.Vec3{}
			return
		}
		node = grid.TileToWorld(f.Path[f.Index])
		node.Y = actor.Pos.Y
	}

	world := node.Sub(actor.Pos)
	world.Y = 0
	actor.Movement.InputDirection = world.Normalize().RotateY(-actor.Yaw)
}
