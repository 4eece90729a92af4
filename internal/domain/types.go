package domain

import "strings"

// ActorID - стабильный идентификатор актора
type ActorID string

// Role определяет, кто управляет актором
type Role uint8

const (
	RoleUser Role = iota // Живой игрок (ввод извне)
	RoleScripted         // Скриптовый AI (дружественный)
	RoleHostile          // Скриптовый AI (враждебный)
)

var roleToString = map[Role]string{
	RoleUser:     "USER",
	RoleScripted: "SCRIPTED",
	RoleHostile:  "HOSTILE",
}

func (r Role) String() string {
	if s, ok := roleToString[r]; ok {
		return s
	}
	return "UNKNOWN"
}

// IsScripted возвращает true для акторов, которыми управляет движок правил
func (r Role) IsScripted() bool {
	return r == RoleScripted || r == RoleHostile
}

// GameState - состояние матча. Переход Playing -> GameOver терминален:
// после него боевые и двигательные системы не выполняются.
type GameState uint8

const (
	StatePlaying GameState = iota
	StateGameOver
)

var stateToString = map[GameState]string{
	StatePlaying:  "Playing",
	StateGameOver: "GameOver",
}

func (s GameState) String() string {
	if v, ok := stateToString[s]; ok {
		return v
	}
	return "UNKNOWN"
}

// StructureType - тип занимающей тайл постройки
type StructureType uint8

const (
	StructureUnknown StructureType = iota
	StructureObstacle
	StructureWall
	StructureTurret
)

// Маппинг для конвертации JSON -> Domain
var structureStringToType = map[string]StructureType{
	"OBSTACLE": StructureObstacle,
	"WALL":     StructureWall,
	"TURRET":   StructureTurret,
}

// Маппинг для логов Domain -> String
var structureTypeToString = map[StructureType]string{
	StructureObstacle: "Obstacle",
	StructureWall:     "Wall",
	StructureTurret:   "Turret",
}

// ParseStructureType конвертирует строку из JSON в StructureType
func ParseStructureType(s string) StructureType {
	// Нечувствительность к регистру для надежности
	if val, ok := structureStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return StructureUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf и журнала)
func (t StructureType) String() string {
	if val, ok := structureTypeToString[t]; ok {
		return val
	}
	return "UNKNOWN"
}

func (t StructureType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *StructureType) UnmarshalJSON(data []byte) error {
	*t = ParseStructureType(strings.Trim(string(data), `"`))
	return nil
}

// CollectibleType - вид собираемого ресурса
type CollectibleType uint8

const (
	CollectibleObstacle CollectibleType = iota
	CollectibleTurret
)

var collectibleToString = map[CollectibleType]string{
	CollectibleObstacle: "Obstacle",
	CollectibleTurret:   "Turret",
}

func (c CollectibleType) String() string {
	if val, ok := collectibleToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

func (c CollectibleType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// Direction - кардинальное направление турели
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

var directionStringToDir = map[string]Direction{
	"NORTH": North,
	"EAST":  East,
	"SOUTH": South,
	"WEST":  West,
}

var directionToString = map[Direction]string{
	North: "North",
	East:  "East",
	South: "South",
	West:  "West",
}

// ParseDirection конвертирует строку ("North"...) в Direction.
// Неизвестные значения трактуются как South (дефолт турели без цели).
func ParseDirection(s string) Direction {
	if val, ok := directionStringToDir[strings.ToUpper(s)]; ok {
		return val
	}
	return South
}

func (d Direction) String() string {
	if val, ok := directionToString[d]; ok {
		return val
	}
	return "UNKNOWN"
}

func (d Direction) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Direction) UnmarshalJSON(data []byte) error {
	*d = ParseDirection(strings.Trim(string(data), `"`))
	return nil
}

// ToVec возвращает единичный мировой вектор направления.
// Север смотрит в -Z, юг в +Z (экранная ориентация сверху-вниз).
func (d Direction) ToVec() Vec3 {
	switch d {
	case North:
		return Vec3{Z: -1}
	case East:
		return Vec3{X: 1}
	case South:
		return Vec3{Z: 1}
	default:
		return Vec3{X: -1}
	}
}

// DirectionFromVec выбирает доминирующую кардинальную ось вектора.
// Используется при выводе направления турели из взгляда или вектора к врагу.
func DirectionFromVec(v Vec3) Direction {
	absX := v.X
	if absX < 0 {
		absX = -absX
	}
	absZ := v.Z
	if absZ < 0 {
		absZ = -absZ
	}

	if absX > absZ {
		if v.X > 0 {
			return East
		}
		return West
	}
	if v.Z > 0 {
		return South
	}
	return North
}
