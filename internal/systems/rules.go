package systems

import (
	"strings"

	"arena-server/internal/domain"
	"arena-server/internal/rules"
	"arena-server/pkg/logger"
)

// EvalCondition - чистая функция от условия и состояния актёра.
// Неизвестные типы условий и операнды вычисляются в false и никогда
// не роняют тик.
func EvalCondition(c *rules.Condition, snap *domain.PerceptionSnapshot, hp domain.Hp, inv domain.Inventory, now float64) bool {
	switch c.Type {
	case rules.CondTrue:
		return true
	case rules.CondIsEnemyVisible:
		return snap.NearestEnemyPos != nil
	case rules.CondIsHealthLow:
		return hp.Current <= c.Threshold
	case rules.CondInArea:
		return string(snap.CurrentAreaID) == c.Area
	case rules.CondHasItem:
		switch strings.ToLower(c.Item) {
		case "obstacle":
			return inv.Obstacles >= c.Count
		case "turret":
			return inv.Turrets >= c.Count
		default:
			return false
		}
	case rules.CondIsUnderAttack:
		return snap.LastHitTime >= 0 && now-snap.LastHitTime <= domain.UnderAttackWindow
	case rules.CondAnd:
		for i := range c.Conditions {
			if !EvalCondition(&c.Conditions[i], snap, hp, inv, now) {
				return false
			}
		}
		return len(c.Conditions) > 0
	case rules.CondOr:
		for i := range c.Conditions {
			if EvalCondition(&c.Conditions[i], snap, hp, inv, now) {
				return true
			}
		}
		return false
	case rules.CondNot:
		if c.Condition == nil {
			return false
		}
		return !EvalCondition(c.Condition, snap, hp, inv, now)
	default:
		return false
	}
}

// RunRules прогоняет набор правил скриптового актёра: условия
// проверяются в порядке убывания приоритета, исполняется первое
// совпавшее действие, не больше одного за тик.
// Возвращает события тика и, возможно, запрос постройки.
func RunRules(
	actor *domain.Actor,
	rs *rules.RuleSet,
	grid *domain.Grid,
	areas *domain.AreaMap,
	now float64,
) ([]domain.Event, *BuildRequest) {
	if rs == nil {
		return nil, nil
	}

	for _, r := range rs.Sorted() {
		if !EvalCondition(&r.Condition, &actor.Status, actor.Hp, actor.Inventory, now) {
			continue
		}

		events := []domain.Event{domain.NewAiDecision(actor.ID, r.Name, now)}
		req := applyAction(actor, &r.Action, grid, areas)

		logger.Log.WithFields(map[string]interface{}{
			"actor":  actor.ID,
			"rule":   r.Name,
			"action": r.Action.Type,
		}).Debug("Rule matched")

		return events, req
	}

	return nil, nil
}

// applyAction исполняет действие совпавшего правила. Записи цели
// идемпотентны: совпадающая координата не трогает флаг грязности.
func applyAction(actor *domain.Actor, a *rules.Action, grid *domain.Grid, areas *domain.AreaMap) *BuildRequest {
	switch a.Type {
	case rules.ActionMoveToArea:
		if center, ok := areas.GetCenter(domain.AreaID(a.Area)); ok {
			actor.Target.Assign(center)
		}

	case rules.ActionChaseEnemy:
		if actor.Status.NearestEnemyPos != nil {
			actor.Target.Assign(grid.WorldToTile(*actor.Status.NearestEnemyPos))
		}

	case rules.ActionFlee:
		if actor.Status.NearestEnemyPos != nil {
			self := actor.Tile(grid)
			enemy := grid.WorldToTile(*actor.Status.NearestEnemyPos)
			away := domain.TileCoord{
				X: self.X + (self.X - enemy.X),
				Y: self.Y + (self.Y - enemy.Y),
			}
			actor.Target.Assign(grid.ClampTile(away))
		}

	case rules.ActionBuild:
		kind := domain.ParseStructureType(a.Structure)
		if kind == domain.StructureUnknown {
			logger.Log.WithField("structure", a.Structure).Debug("Build rule with unknown structure kind")
			return nil
		}
		dir := buildDirection(actor, a.Direction)
		return &BuildRequest{
			Actor:     actor.ID,
			Tile:      actor.Tile(grid),
			Kind:      kind,
			Direction: dir,
		}

	case rules.ActionIdle:
		// Намеренно ничего
	}

	return nil
}

// buildDirection выбирает направление турели: явное из правила, иначе
// доминирующая кардинальная ось вектора к ближайшему врагу, иначе юг.
func buildDirection(actor *domain.Actor, explicit string) domain.Direction {
	if explicit != "" {
		return domain.ParseDirection(explicit)
	}
	if actor.Status.NearestEnemyPos != nil {
		to := actor.Status.NearestEnemyPos.Sub(actor.Pos)
		return domain.DirectionFromVec(to)
	}
	return domain.South
}
