package domain

// Structure - занимающая тайл постройка (стена, препятствие, турель).
// Занятый тайл непроходим и непрозрачен для линии видимости.
type Structure struct {
	Type StructureType

	// ColliderScale масштабирует AABB относительно полного тайла.
	// Стены и препятствия занимают тайл целиком, турель уже.
	ColliderScale float64

	// Turret присутствует только у построек типа StructureTurret
	Turret *Turret
}

// Turret - боевой компонент постройки
type Turret struct {
	Owner     ActorID
	Direction Direction
	LastShot  float64 // Время последнего выстрела (секунды симуляции)
}

// IsReady проверяет, прошел ли кулдаун
func (t *Turret) IsReady(now float64) bool {
	return now-t.LastShot >= TurretCooldown
}

// Shot фиксирует выстрел
func (t *Turret) Shot(now float64) {
	t.LastShot = now
}

// NewWall создает стену. Разрушение стен идет через общий путь destroy,
// от препятствия стена отличается только типом.
func NewWall() *Structure {
	return &Structure{Type: StructureWall, ColliderScale: 1.0}
}

func NewObstacle() *Structure {
	return &Structure{Type: StructureObstacle, ColliderScale: 1.0}
}

// NewTurret создает турель. LastShot = now - кулдаун: свежепостроенная
// турель может выстрелить немедленно.
func NewTurret(owner ActorID, dir Direction, now float64) *Structure {
	return &Structure{
		Type:          StructureTurret,
		ColliderScale: 0.7,
		Turret: &Turret{
			Owner:     owner,
			Direction: dir,
			LastShot:  now - TurretCooldown,
		},
	}
}

// Spawner - точка возрождения ресурса. Сам спавнер и есть единственный
// источник истины о коллекционном предмете: HasCollectible описывает,
// лежит ли предмет на тайле прямо сейчас.
type Spawner struct {
	Kind CollectibleType
	Tile TileCoord

	// Timer <= 0 и отсутствие живого предмета => предмет появляется.
	// Начальное значение 0: первый предмет лежит с самого старта.
	Timer          float64
	HasCollectible bool
}

// Step продвигает таймер и возвращает true, если предмет появился
func (s *Spawner) Step(dt float64) bool {
	if s.HasCollectible {
		return false
	}
	s.Timer -= dt
	if s.Timer <= 0 {
		s.HasCollectible = true
		return true
	}
	return false
}

// Collect забирает предмет и взводит таймер возрождения
func (s *Spawner) Collect(respawnTime float64) {
	s.HasCollectible = false
	s.Timer = respawnTime
}
