// Пакет content загружает арену: текстовую раскладку, таблицу зон
// и стартовые наборы правил. Данные декларативны, симуляция их
// только читает.
package content

import (
	"strings"

	"arena-server/internal/domain"
	"arena-server/pkg/logger"
)

// ParseLayout разбирает текстовую раскладку арены.
// Один символ на тайл, строки сверху вниз (+Y), символы слева направо (+X):
//
//	. пол
//	X стена (неразрушаемая, непрозрачная)
//	O препятствие (разрушаемое, непрозрачное)
//	T спавнер ресурса турели
//	B спавнер ресурса препятствия
//
// Неизвестные символы трактуются как пол. Ширина берется по первой
// строке; рваные строки за контрактом не закреплены, хвосты короткой
// строки остаются полом.
func ParseLayout(layout string, tileSize float64) (*domain.Grid, []*domain.Spawner) {
	lines := strings.Split(strings.TrimSpace(layout), "\n")
	height := len(lines)
	width := 0
	if height > 0 {
		width = len(lines[0])
	}

	grid := domain.NewGrid(width, height, tileSize)
	var spawners []*domain.Spawner

	for y, line := range lines {
		for x, ch := range line {
			if x >= width {
				break
			}
			t := domain.TileCoord{X: x, Y: y}
			switch ch {
			case 'X':
				grid.SetOccupant(t, domain.NewWall())
			case 'O':
				grid.SetOccupant(t, domain.NewObstacle())
			case 'T':
				spawners = append(spawners, &domain.Spawner{
					Kind: domain.CollectibleTurret,
					Tile: t,
				})
			case 'B':
				spawners = append(spawners, &domain.Spawner{
					Kind: domain.CollectibleObstacle,
					Tile: t,
				})
			}
		}
	}

	logger.Log.WithFields(map[string]interface{}{
		"width":    width,
		"height":   height,
		"walls":    len(grid.Occupants),
		"spawners": len(spawners),
	}).Info("Arena layout parsed")

	return grid, spawners
}
