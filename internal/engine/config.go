package engine

import (
	"os"

	"gopkg.in/yaml.v3"

	"arena-server/pkg/logger"
)

// Config хранит параметры запуска симуляции
type Config struct {
	// TickRate - частота симуляции, тиков в секунду
	TickRate float64 `yaml:"tickRate"`

	// FlushInterval - период сброса журнала матча наблюдателям, секунды
	FlushInterval float64 `yaml:"flushInterval"`

	// DiagonalNav включает восьмисвязный навграф
	DiagonalNav bool `yaml:"diagonalNav"`

	// ArenaFile - путь к YAML описанию арены; пусто = встроенная арена
	ArenaFile string `yaml:"arenaFile"`

	// Стартовые запасы строительных ресурсов
	StartObstacles int `yaml:"startObstacles"`
	StartTurrets   int `yaml:"startTurrets"`

	// Здоровье актеров на старте
	PlayerHp int `yaml:"playerHp"`
	BotHp    int `yaml:"botHp"`
	EnemyHp  int `yaml:"enemyHp"`

	// MatchLogDir - каталог выгрузки журналов матча; пусто = не писать
	MatchLogDir string `yaml:"matchLogDir"`

	// ArchiveLogs включает сжатый JSONL архив событий
	ArchiveLogs bool `yaml:"archiveLogs"`
}

// NewConfig создает конфиг по умолчанию
func NewConfig() Config {
	return Config{
		TickRate:       30,
		FlushInterval:  10,
		DiagonalNav:    false,
		StartObstacles: 6,
		StartTurrets:   4,
		PlayerHp:       3,
		BotHp:          3,
		EnemyHp:        3,
		MatchLogDir:    "logs",
		ArchiveLogs:    false,
	}
}

// LoadConfig читает конфиг из YAML файла поверх значений по умолчанию.
// Отсутствующий файл не ошибка: работаем на дефолтах.
func LoadConfig(path string) Config {
	cfg := NewConfig()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Log.WithError(err).WithField("path", path).Warn("Config file not read, using defaults")
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Log.WithError(err).WithField("path", path).Warn("Config file not parsed, using defaults")
		return NewConfig()
	}

	if cfg.TickRate <= 0 {
		cfg.TickRate = 30
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 10
	}

	logger.Log.WithField("path", path).Info("Config loaded")
	return cfg
}
