package systems

import (
	"sort"

	"arena-server/internal/domain"
	"arena-server/pkg/logger"
)

// Collectibles продвигает таймеры спавнеров и подбирает ресурсы.
// Спавнер - единственный источник истины о предмете: предмет
// появляется только при таймере <= 0 и отсутствии живого предмета
// на тайле, подбор сразу взводит таймер возрождения.
//
// Подбирает первый по порядку (Y, X) актёр, стоящий на тайле спавнера.
func Collectibles(
	spawners []*domain.Spawner,
	actors []*domain.Actor,
	grid *domain.Grid,
	respawnTime float64,
	dt, now float64,
) []domain.Event {
	var events []domain.Event

	byTile := make(map[domain.TileCoord][]*domain.Actor)
	for _, a := range actors {
		if a.Hp.IsAlive() {
			t := a.Tile(grid)
			byTile[t] = append(byTile[t], a)
		}
	}
	for _, group := range byTile {
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })
	}

	for _, sp := range spawners {
		sp.Step(dt)
		if !sp.HasCollectible {
			continue
		}

		candidates := byTile[sp.Tile]
		if len(candidates) == 0 {
			continue
		}
		picker := candidates[0]

		picker.Inventory.Grant(sp.Kind)
		sp.Collect(respawnTime)

		logger.Log.WithFields(map[string]interface{}{
			"actor": picker.ID,
			"kind":  sp.Kind.String(),
			"tile":  sp.Tile,
		}).Info("Item collected")

		events = append(events, domain.NewItemCollected(picker.ID, sp.Kind, sp.Tile, now))
	}

	return events
}
