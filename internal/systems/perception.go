package systems

import (
	"sort"

	"arena-server/internal/domain"
)

// Perception пересчитывает снимок восприятия актёра: видимых актёров,
// ближайшего врага, текущую зону и оценку удалённости зон.
// Возвращает события, порождённые пересчётом (сейчас - смена зоны).
func Perception(
	actor *domain.Actor,
	others []*domain.Actor,
	grid *domain.Grid,
	areas *domain.AreaMap,
	ng *NavGraph,
	now float64,
) []domain.Event {
	var events []domain.Event
	snap := &actor.Status

	snap.VisibleActors = snap.VisibleActors[:0]
	snap.NearestEnemyPos = nil
	snap.NearestEnemyDist = -1

	for _, other := range others {
		if other.ID == actor.ID || !other.Hp.IsAlive() {
			continue
		}
		if !HasLineOfSight(grid, actor.Pos, other.Pos) {
			continue
		}
		snap.VisibleActors = append(snap.VisibleActors, other.ID)

		if actor.IsEnemyOf(other) {
			d := actor.Pos.DistanceTo(other.Pos)
			if snap.NearestEnemyPos == nil || d < snap.NearestEnemyDist {
				pos := other.Pos
				snap.NearestEnemyPos = &pos
				snap.NearestEnemyDist = d
			}
		}
	}

	// Детерминированный порядок видимых актёров
	sort.Slice(snap.VisibleActors, func(i, j int) bool {
		return snap.VisibleActors[i] < snap.VisibleActors[j]
	})

	tile := actor.Tile(grid)
	areaID := areas.GetAreaID(tile.X, tile.Y)
	if areaID != snap.CurrentAreaID {
		snap.CurrentAreaID = areaID
		if areaID != domain.AreaUnknown {
			events = append(events, domain.NewAreaEntered(actor.ID, areaID, now))
		}
	}

	// Удалённость зон: длина пути до центра каждой зоны.
	// Недостижимые зоны в карту не попадают.
	if snap.AreaDistances == nil {
		snap.AreaDistances = make(map[domain.AreaID]int)
	}
	clear(snap.AreaDistances)
	snap.VisibleAreas = snap.VisibleAreas[:0]

	for i := range areas.Areas {
		area := &areas.Areas[i]
		if n := PathLength(ng, tile, area.Center); n >= 0 {
			snap.AreaDistances[area.ID] = n
		}
		if HasLineOfSightTiles(grid, tile, area.Center) {
			snap.VisibleAreas = append(snap.VisibleAreas, area.ID)
		}
	}

	return events
}
