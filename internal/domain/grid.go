package domain

import "math"

// TileCoord - координата тайла на сетке
type TileCoord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ManhattanTo возвращает манхэттенское расстояние до другого тайла
func (t TileCoord) ManhattanTo(other TileCoord) int {
	dx := t.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := t.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Grid - прямоугольная сетка арены.
//
// Tiles заполняется при загрузке и не меняется. Occupants мутируют
// постройки/разрушения; каждая мутация инкрементирует Generation,
// чтобы потребители (нав-граф, перцепция) могли дешево заметить изменение.
type Grid struct {
	Width    int
	Height   int
	TileSize float64

	Tiles     map[TileCoord]bool
	Occupants map[TileCoord]*Structure

	Generation uint64
}

func NewGrid(width, height int, tileSize float64) *Grid {
	g := &Grid{
		Width:     width,
		Height:    height,
		TileSize:  tileSize,
		Tiles:     make(map[TileCoord]bool, width*height),
		Occupants: make(map[TileCoord]*Structure),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Tiles[TileCoord{X: x, Y: y}] = true
		}
	}
	return g
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// IsWalkable: тайл проходим, если он в границах и не занят постройкой
func (g *Grid) IsWalkable(t TileCoord) bool {
	if !g.InBounds(t.X, t.Y) {
		return false
	}
	_, occupied := g.Occupants[t]
	return !occupied
}

// OccupantAt возвращает постройку на тайле (nil, если тайл свободен)
func (g *Grid) OccupantAt(t TileCoord) *Structure {
	return g.Occupants[t]
}

// SetOccupant ставит постройку на тайл. Возвращает false, если тайл
// вне границ или уже занят (тихий отказ по контракту симуляции).
func (g *Grid) SetOccupant(t TileCoord, s *Structure) bool {
	if !g.InBounds(t.X, t.Y) {
		return false
	}
	if _, occupied := g.Occupants[t]; occupied {
		return false
	}
	g.Occupants[t] = s
	g.Generation++
	return true
}

// RemoveOccupant снимает постройку с тайла
func (g *Grid) RemoveOccupant(t TileCoord) *Structure {
	s, ok := g.Occupants[t]
	if !ok {
		return nil
	}
	delete(g.Occupants, t)
	g.Generation++
	return s
}

// TileToWorld возвращает мировую позицию центра тайла: (x+0.5, 0, y+0.5)*size
func (g *Grid) TileToWorld(t TileCoord) Vec3 {
	return Vec3{
		X: float64(t.X)*g.TileSize + g.TileSize*0.5,
		Y: 0,
		Z: float64(t.Y)*g.TileSize + g.TileSize*0.5,
	}
}

// WorldToTile переводит мировую точку в координату тайла:
// floor после сдвига на полтайла. Обратная операция к TileToWorld.
func (g *Grid) WorldToTile(p Vec3) TileCoord {
	return TileCoord{
		X: int(math.Floor((p.X - g.TileSize*0.5) / g.TileSize)),
		Y: int(math.Floor((p.Z - g.TileSize*0.5) / g.TileSize)),
	}
}

// ClampTile ограничивает координату границами сетки
func (g *Grid) ClampTile(t TileCoord) TileCoord {
	if t.X < 0 {
		t.X = 0
	}
	if t.X > g.Width-1 {
		t.X = g.Width - 1
	}
	if t.Y < 0 {
		t.Y = 0
	}
	if t.Y > g.Height-1 {
		t.Y = g.Height - 1
	}
	return t
}
