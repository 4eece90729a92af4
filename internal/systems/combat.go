package systems

import (
	"sort"

	"arena-server/internal/domain"
	"arena-server/pkg/logger"
)

// CombatResult - итог шага турелей за тик
type CombatResult struct {
	Events     []domain.Event
	Eliminated []domain.ActorID
	UserKilled bool
}

// Combat обходит все турели и применяет урон. Порядок обхода
// детерминирован: тайлы турелей сортируются по (Y, X).
//
// Турель стреляет не чаще раза в TurretCooldown секунд по ближайшей
// живой цели в радиусе TurretRange внутри конуса 90 градусов
// (скалярное произведение с направлением турели выше TurretConeDot).
// Владелец турели целью не считается.
func Combat(actors []*domain.Actor, grid *domain.Grid, now float64) CombatResult {
	var res CombatResult

	var turretTiles []domain.TileCoord
	for t, occ := range grid.Occupants {
		if occ.Turret != nil {
			turretTiles = append(turretTiles, t)
		}
	}
	sort.Slice(turretTiles, func(i, j int) bool {
		if turretTiles[i].Y != turretTiles[j].Y {
			return turretTiles[i].Y < turretTiles[j].Y
		}
		return turretTiles[i].X < turretTiles[j].X
	})

	for _, tile := range turretTiles {
		turret := grid.Occupants[tile].Turret
		if !turret.IsReady(now) {
			continue
		}

		origin := grid.TileToWorld(tile)
		aim := turret.Direction.ToVec()

		var target *domain.Actor
		bestDist := 0.0
		for _, a := range actors {
			if a.ID == turret.Owner || !a.Hp.IsAlive() {
				continue
			}
			to := a.Pos.Sub(origin)
			to.Y = 0
			d := to.Length()
			if d > domain.TurretRange || d == 0 {
				continue
			}
			if to.Normalize().Dot(aim) <= domain.TurretConeDot {
				continue
			}
			if target == nil || d < bestDist {
				target = a
				bestDist = d
			}
		}
		if target == nil {
			continue
		}

		turret.Shot(now)
		died := target.Hp.TakeDamage(domain.TurretDamage)
		target.Status.LastHitTime = now

		logger.Log.WithFields(map[string]interface{}{
			"turret": tile,
			"owner":  turret.Owner,
			"target": target.ID,
			"hp":     target.Hp.Current,
		}).Info("Turret fired")

		res.Events = append(res.Events,
			domain.NewDamageDealt(turret.Owner, target.ID, domain.TurretDamage, now))

		if died {
			res.Events = append(res.Events, domain.NewPlayerEliminated(target.ID, turret.Owner, now))
			res.Eliminated = append(res.Eliminated, target.ID)
			if target.Role == domain.RoleUser {
				res.UserKilled = true
			}
		}
	}

	return res
}
