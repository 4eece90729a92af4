package domain

// AreaID - имя зоны арены ("UserBase", "CenterArena"...)
type AreaID string

// AreaUnknown возвращается, когда точка не принадлежит ни одной зоне
const AreaUnknown AreaID = "Unknown"

// Area - именованный прямоугольник в координатах тайлов (включительно).
// Neighbors и VisibleAreas заполняются единожды после загрузки карты
// (связность по путям и видимость между центрами).
type Area struct {
	ID   AreaID `json:"id"`
	MinX int    `json:"minX"`
	MinY int    `json:"minY"`
	MaxX int    `json:"maxX"`
	MaxY int    `json:"maxY"`

	Center       TileCoord `json:"center"`
	Neighbors    []AreaID  `json:"neighbors,omitempty"`
	VisibleAreas []AreaID  `json:"visibleAreas,omitempty"`
}

// NewArea создает зону с вычисленным центром (середина прямоугольника)
func NewArea(id AreaID, minX, minY, maxX, maxY int) Area {
	return Area{
		ID:   id,
		MinX: minX,
		MinY: minY,
		MaxX: maxX,
		MaxY: maxY,
		Center: TileCoord{
			X: (minX + maxX) / 2,
			Y: (minY + maxY) / 2,
		},
	}
}

// Contains - попадание точки в прямоугольник (границы включительно)
func (a *Area) Contains(x, y int) bool {
	return x >= a.MinX && x <= a.MaxX && y >= a.MinY && y <= a.MaxY
}

// AreaMap - таблица зон. Порядок объявления определяет приоритет поиска.
type AreaMap struct {
	Areas []Area
}

func NewAreaMap(areas []Area) *AreaMap {
	return &AreaMap{Areas: areas}
}

// GetAreaID возвращает первую (в порядке объявления) зону, содержащую точку
func (m *AreaMap) GetAreaID(x, y int) AreaID {
	for i := range m.Areas {
		if m.Areas[i].Contains(x, y) {
			return m.Areas[i].ID
		}
	}
	return AreaUnknown
}

// GetCenter возвращает центр зоны по ID
func (m *AreaMap) GetCenter(id AreaID) (TileCoord, bool) {
	for i := range m.Areas {
		if m.Areas[i].ID == id {
			return m.Areas[i].Center, true
		}
	}
	return TileCoord{}, false
}

// Get возвращает зону по ID (nil, если не найдена)
func (m *AreaMap) Get(id AreaID) *Area {
	for i := range m.Areas {
		if m.Areas[i].ID == id {
			return &m.Areas[i]
		}
	}
	return nil
}
