package domain

// Hp - очки здоровья
type Hp struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

func NewHp(max int) Hp {
	return Hp{Current: max, Max: max}
}

func (h Hp) IsAlive() bool {
	return h.Current > 0
}

// TakeDamage наносит урон. Возвращает true, если актор погиб от этого удара.
func (h *Hp) TakeDamage(amount int) bool {
	if h.Current <= 0 {
		return false
	}
	if amount < 0 {
		amount = 0
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		return true
	}
	return false
}

// Inventory - запас строительных ресурсов. Счетчики неотрицательны.
type Inventory struct {
	Obstacles int `json:"obstacles"`
	Turrets   int `json:"turrets"`
}

// Spend списывает одну единицу ресурса под постройку.
// Возвращает false при нехватке (запрос тихо отклоняется).
func (inv *Inventory) Spend(kind StructureType) bool {
	switch kind {
	case StructureObstacle:
		if inv.Obstacles < 1 {
			return false
		}
		inv.Obstacles--
		return true
	case StructureTurret:
		if inv.Turrets < 1 {
			return false
		}
		inv.Turrets--
		return true
	default:
		return false
	}
}

// Grant добавляет собранный ресурс
func (inv *Inventory) Grant(kind CollectibleType) {
	switch kind {
	case CollectibleObstacle:
		inv.Obstacles++
	case CollectibleTurret:
		inv.Turrets++
	}
}

// MovementState - контроллер движения актора.
// InputDirection в локальных координатах (вперед = +Z до поворота),
// Velocity в мировых. Пишется вводом или следованием по пути,
// читается системой движения.
type MovementState struct {
	InputDirection Vec3
	RotationDelta  float64 // Радианы за тик
	Velocity       Vec3    // Текущая мировая скорость
}

// TargetDestination - целевой тайл для поиска пути.
// Dirty - явный флаг изменения: постройки помечают его даже при
// неизменных координатах, чтобы форсировать перепрокладку пути.
type TargetDestination struct {
	Tile  TileCoord
	Set   bool
	Dirty bool
}

// Assign - идемпотентная запись цели: совпадающая координата не трогает
// флаг, чтобы не провоцировать лишние перерасчеты пути.
func (t *TargetDestination) Assign(tile TileCoord) {
	if t.Set && t.Tile == tile {
		return
	}
	t.Tile = tile
	t.Set = true
	t.Dirty = true
}

// MarkDirty форсирует перепрокладку даже при неизменной цели
func (t *TargetDestination) MarkDirty() {
	if t.Set {
		t.Dirty = true
	}
}

// PathFollower - текущий путь и индекс следующего узла
type PathFollower struct {
	Path  []TileCoord
	Index int
}

func (p *PathFollower) Done() bool {
	return p.Index >= len(p.Path)
}

func (p *PathFollower) Reset(path []TileCoord) {
	p.Path = path
	p.Index = 0
}

// PerceptionSnapshot - взгляд актора на мир, обновляется каждый тик.
// Чистый вход для движка правил.
type PerceptionSnapshot struct {
	VisibleActors    []ActorID         `json:"visibleActors"`
	NearestEnemyPos  *Vec3             `json:"nearestEnemyPos,omitempty"`
	NearestEnemyDist float64           `json:"nearestEnemyDist,omitempty"`
	CurrentAreaID    AreaID            `json:"currentAreaId"`
	AreaDistances    map[AreaID]int    `json:"areaDistances"`
	VisibleAreas     []AreaID          `json:"visibleAreas"`

	// LastHitTime - время последнего полученного урона (секунды симуляции).
	// Отрицательное значение = урона еще не было.
	LastHitTime float64 `json:"lastHitTime"`
}

// Actor - любая сущность с позицией и здоровьем: пользователь,
// скриптовый союзник, скриптовый враг.
type Actor struct {
	ID   ActorID
	Name string
	Role Role

	Pos Vec3    // Мировая позиция (Y фиксирован)
	Yaw float64 // Поворот вокруг вертикальной оси, радианы

	Movement  MovementState
	Inventory Inventory
	Hp        Hp

	Status PerceptionSnapshot

	// Навигация присутствует только у скриптовых акторов
	Target   TargetDestination
	Follower PathFollower
}

// NewActor создает актора на мировой позиции со свежей перцепцией
func NewActor(id ActorID, name string, role Role, pos Vec3, hp int) *Actor {
	return &Actor{
		ID:   id,
		Name: name,
		Role: role,
		Pos:  pos,
		Hp:   NewHp(hp),
		Status: PerceptionSnapshot{
			CurrentAreaID: AreaUnknown,
			LastHitTime:   -1,
		},
	}
}

// Tile возвращает тайл, на котором стоит актор
func (a *Actor) Tile(g *Grid) TileCoord {
	return g.WorldToTile(a.Pos)
}

// IsEnemyOf: противники - акторы противоположных лагерей.
// Враждебные AI воюют со всеми, кто не враждебен, и наоборот.
func (a *Actor) IsEnemyOf(other *Actor) bool {
	if a.ID == other.ID {
		return false
	}
	return (a.Role == RoleHostile) != (other.Role == RoleHostile)
}
