package systems

import (
	"math"

	"arena-server/internal/domain"
)

// Movement продвигает актёра за тик: поворот, разгон/торможение,
// разрешение столкновений по осям.
//
// Входное направление задано в локальной системе актёра и поворачивается
// на текущий yaw. Скорость интерполируется к целевой с разными темпами
// для разгона и торможения и зануляется около нуля, чтобы актёр не полз
// вечно на остаточной скорости.
func Movement(actor *domain.Actor, grid *domain.Grid, dt float64) {
	mv := &actor.Movement

	actor.Yaw += mv.RotationDelta
	mv.RotationDelta = 0

	var target domain.Vec3
	if mv.InputDirection.LengthSquared() > 0 {
		dir := mv.InputDirection.Normalize().RotateY(actor.Yaw)
		target = dir.Scale(domain.PlayerSpeed)
	}

	rate := domain.Acceleration
	if target.LengthSquared() < mv.Velocity.LengthSquared() {
		rate = domain.Deceleration
	}

	delta := target.Sub(mv.Velocity)
	step := rate * dt
	if delta.Length() <= step {
		mv.Velocity = target
	} else {
		mv.Velocity = mv.Velocity.Add(delta.Normalize().Scale(step))
	}

	if mv.Velocity.Length() > domain.PlayerSpeed {
		mv.Velocity = mv.Velocity.Normalize().Scale(domain.PlayerSpeed)
	}
	if target.LengthSquared() == 0 && mv.Velocity.Length() < domain.VelocityEpsilon {
		mv.Velocity = domain.Vec3{}
	}

	dx := mv.Velocity.X * dt
	dz := mv.Velocity.Z * dt
	if dx == 0 && dz == 0 {
		return
	}

	// Разрешение по осям: каждая ось проверяется независимо,
	// заблокированная ось гасит свою компоненту скорости.
	if dx != 0 {
		trial := actor.Pos
		trial.X += dx
		if collides(trial, grid) {
			mv.Velocity.X = 0
		} else {
			actor.Pos.X = trial.X
		}
	}
	if dz != 0 {
		trial := actor.Pos
		trial.Z += dz
		if collides(trial, grid) {
			mv.Velocity.Z = 0
		} else {
			actor.Pos.Z = trial.Z
		}
	}
}

// collides проверяет пересечение AABB актёра в позиции pos с любым
// занятым тайлом. Достаточно обойти тайлы в радиусе одной клетки
// от позиции: полуразмер препятствия не превышает половины тайла.
func collides(pos domain.Vec3, grid *domain.Grid) bool {
	actorHalf := domain.PlayerSize * 0.5

	center := grid.WorldToTile(pos)
	for ty := center.Y - 1; ty <= center.Y+1; ty++ {
		for tx := center.X - 1; tx <= center.X+1; tx++ {
			t := domain.TileCoord{X: tx, Y: ty}
			occ, ok := grid.Occupants[t]
			if !ok {
				continue
			}
			occHalf := grid.TileSize * 0.5 * occ.ColliderScale
			occCenter := grid.TileToWorld(t)
			if math.Abs(pos.X-occCenter.X) < actorHalf+occHalf &&
				math.Abs(pos.Z-occCenter.Z) < actorHalf+occHalf {
				return true
			}
		}
	}
	return false
}
