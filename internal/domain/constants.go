package domain

// Геометрия арены
const (
	TileSize   = 4.0 // Мировой размер одного тайла
	PlayerSize = 1.0 // Сторона AABB-куба актора
)

// Кинематика (единицы в секунду)
const (
	PlayerSpeed  = 20.0 // Максимальная скорость
	Acceleration = 10.0 // Набор скорости
	Deceleration = 30.0 // Торможение (резче разгона)

	// Скорость ниже этого порога при нулевом вводе обнуляется,
	// чтобы актор не "полз" бесконечно.
	VelocityEpsilon = 0.1
)

// Турели
const (
	TurretCooldown = 4.0   // Секунд между выстрелами
	TurretRange    = 15.0  // Дальность в мировых единицах
	TurretConeDot  = 0.707 // cos(45°): конус наведения 90° суммарно
	TurretDamage   = 1     // HP за выстрел
)

// Следование по пути
const (
	// Узел пути считается достигнутым на этой дистанции от его центра.
	PathNodeReachDistance = 0.5
)

// Восприятие
const (
	// Урон, полученный в этом окне (секунды), держит IsUnderAttack в true.
	UnderAttackWindow = 3.0
)
