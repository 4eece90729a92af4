package systems

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"
)

// BuildRequest - отложенное намерение постройки, обрабатываемое
// на фиксированном шаге конвейера тика
type BuildRequest struct {
	Actor      domain.ActorID
	Tile       domain.TileCoord
	Kind       domain.StructureType
	Direction  domain.Direction
	UserDriven bool
}

// DestroyRequest - намерение разрушить занятую клетку
type DestroyRequest struct {
	Actor domain.ActorID
	Tile  domain.TileCoord
}

// ProcessBuild выполняет постройку. Нарушенные предусловия приводят
// к тихому отказу со строкой в журнале отладки: симуляция никогда
// не падает на ошибках пользовательского уровня.
//
// При успехе: списание из инвентаря, вставка в occupants, полная
// перестройка навграфа и пометка целей всех скриптовых актёров
// грязными, чтобы их пути пересчитались на следующем шаге.
func ProcessBuild(
	req BuildRequest,
	builder *domain.Actor,
	actors []*domain.Actor,
	grid *domain.Grid,
	ng *NavGraph,
	now float64,
) (domain.Event, bool) {
	log := logger.Log.WithFields(map[string]interface{}{
		"actor": req.Actor,
		"tile":  req.Tile,
		"kind":  req.Kind.String(),
	})

	if !grid.InBounds(req.Tile.X, req.Tile.Y) {
		log.Debug("Build refused: tile out of bounds")
		return domain.Event{}, false
	}
	if _, occupied := grid.Occupants[req.Tile]; occupied {
		log.Debug("Build refused: tile occupied")
		return domain.Event{}, false
	}
	if req.UserDriven {
		for _, a := range actors {
			if a.ID != req.Actor && a.Hp.IsAlive() && a.Tile(grid) == req.Tile {
				log.Debug("Build refused: tile blocked by actor")
				return domain.Event{}, false
			}
		}
	}
	if !builder.Inventory.Spend(req.Kind) {
		log.Debug("Build refused: insufficient inventory")
		return domain.Event{}, false
	}

	var s *domain.Structure
	switch req.Kind {
	case domain.StructureTurret:
		s = domain.NewTurret(req.Actor, req.Direction, now)
	default:
		s = domain.NewObstacle()
	}

	if !grid.SetOccupant(req.Tile, s) {
		// Предусловия уже проверены, сюда попадать не должны
		refund(&builder.Inventory, req.Kind)
		log.Warn("Build refused by grid after precondition checks")
		return domain.Event{}, false
	}

	ng.Regenerate(grid)
	markDestinationsDirty(actors)

	log.Info("Structure built")
	return domain.NewStructureBuilt(req.Actor, req.Kind, req.Tile, now), true
}

// ProcessDestroy убирает любого обитателя клетки. Стены и постройки
// не различаются: удаляется всё, что есть.
func ProcessDestroy(
	req DestroyRequest,
	actors []*domain.Actor,
	grid *domain.Grid,
	ng *NavGraph,
	now float64,
) (domain.Event, bool) {
	occ, ok := grid.Occupants[req.Tile]
	if !ok {
		logger.Log.WithFields(map[string]interface{}{
			"actor": req.Actor,
			"tile":  req.Tile,
		}).Debug("Destroy refused: tile empty")
		return domain.Event{}, false
	}

	grid.RemoveOccupant(req.Tile)
	ng.Regenerate(grid)
	markDestinationsDirty(actors)

	logger.Log.WithFields(map[string]interface{}{
		"actor": req.Actor,
		"tile":  req.Tile,
		"kind":  occ.Type.String(),
	}).Info("Structure destroyed")
	return domain.NewStructureDestroyed(req.Actor, occ.Type, req.Tile, now), true
}

func refund(inv *domain.Inventory, kind domain.StructureType) {
	switch kind {
	case domain.StructureObstacle:
		inv.Obstacles++
	case domain.StructureTurret:
		inv.Turrets++
	}
}

// markDestinationsDirty помечает цели скриптовых актёров грязными,
// даже если значение цели не менялось: геометрия сетки стала другой
func markDestinationsDirty(actors []*domain.Actor) {
	for _, a := range actors {
		if a.Role.IsScripted() && a.Target.Set {
			a.Target.MarkDirty()
		}
	}
}
