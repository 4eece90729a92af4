package content

import (
	"os"

	"gopkg.in/yaml.v3"

	"arena-server/internal/domain"
)

// DefaultLayout - встроенная арена 40x27.
// . пол, X стена, O препятствие, T ресурс турели, B ресурс препятствия
const DefaultLayout = `
XXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX
X........X.............................X
X...T....X.............................X
X........X.............................X
X...XXXXXX.......XXXXXXXXXXXXXX....XXXXX
X...XXXXXX.......XXXXXXXXXXXXXX....XXXXX
X......................................X
X......................................X
X......................................X
X......................................X
X......................................X
X......................................X
X...XXXXXXXXXXXX...XXXX...XXXXXXXXXXXX.X
X...XXXXXXXXXXXX...XXXX...XXXXXXXXXXXX.X
X..................XXXX................X
X..................XXXX................X
X......................................X
X......................................X
X......................................X
X......................................X
X...XXXXXX.......XXXXXXXXXXXXXX....XXXXX
X...XXXXXX.......XXXXXXXXXXXXXX....XXXXX
X......................................X
X.............................X........X
X.............................X....T...X
X.............................X........X
XXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX
`

// ArenaDescription - полное декларативное описание арены.
// Порядок зон значим: get_area_id возвращает первую подходящую.
type ArenaDescription struct {
	Layout string      `yaml:"layout"`
	Areas  []AreaEntry `yaml:"areas"`
	Spawns SpawnPoints `yaml:"spawns"`

	// RespawnTime - задержка возрождения ресурса после подбора, секунды
	RespawnTime float64 `yaml:"respawnTime"`
}

// AreaEntry - строка таблицы зон
type AreaEntry struct {
	ID   string `yaml:"id"`
	MinX int    `yaml:"minX"`
	MinY int    `yaml:"minY"`
	MaxX int    `yaml:"maxX"`
	MaxY int    `yaml:"maxY"`
}

// SpawnPoints - стартовые мировые позиции актеров
type SpawnPoints struct {
	Player domain.Vec3 `yaml:"player"`
	AI     domain.Vec3 `yaml:"ai"`
	Enemy  domain.Vec3 `yaml:"enemy"`
}

// DefaultArena возвращает встроенное описание арены
func DefaultArena() ArenaDescription {
	return ArenaDescription{
		Layout: DefaultLayout,
		Areas: []AreaEntry{
			{ID: "UserBase", MinX: 0, MinY: 0, MaxX: 10, MaxY: 10},
			{ID: "EnemyBase", MinX: 30, MinY: 0, MaxX: 39, MaxY: 10},
			{ID: "CenterArena", MinX: 11, MinY: 0, MaxX: 29, MaxY: 27},
			{ID: "NorthCorridor", MinX: 0, MinY: 11, MaxX: 39, MaxY: 27},
		},
		Spawns: SpawnPoints{
			Player: domain.Vec3{X: 18, Y: 1.5, Z: 10},
			AI:     domain.Vec3{X: 26, Y: 1.5, Z: 10},
			Enemy:  domain.Vec3{X: 142, Y: 1.5, Z: 10},
		},
		RespawnTime: 30.0,
	}
}

// LoadArenaFile читает описание арены из YAML файла.
// Незаполненные секции дополняются встроенными значениями.
func LoadArenaFile(path string) (ArenaDescription, error) {
	desc := DefaultArena()

	data, err := os.ReadFile(path)
	if err != nil {
		return desc, err
	}
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return desc, err
	}
	if desc.RespawnTime <= 0 {
		desc.RespawnTime = 30.0
	}
	return desc, nil
}

// BuildAreaMap собирает карту зон из таблицы с вычислением связности:
// соседями считаются зоны с касающимися или пересекающимися
// прямоугольниками, видимыми - зоны с прямой видимостью между центрами.
func (d ArenaDescription) BuildAreaMap() *domain.AreaMap {
	areas := make([]domain.Area, 0, len(d.Areas))
	for _, e := range d.Areas {
		areas = append(areas, domain.NewArea(domain.AreaID(e.ID), e.MinX, e.MinY, e.MaxX, e.MaxY))
	}

	for i := range areas {
		for j := range areas {
			if i == j {
				continue
			}
			if rectsTouch(&areas[i], &areas[j]) {
				areas[i].Neighbors = append(areas[i].Neighbors, areas[j].ID)
			}
		}
	}

	return domain.NewAreaMap(areas)
}

// rectsTouch: прямоугольники пересекаются или примыкают вплотную
func rectsTouch(a, b *domain.Area) bool {
	return a.MinX <= b.MaxX+1 && b.MinX <= a.MaxX+1 &&
		a.MinY <= b.MaxY+1 && b.MinY <= a.MaxY+1
}
