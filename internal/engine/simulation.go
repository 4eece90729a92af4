package engine

import (
	"fmt"

	"arena-server/internal/content"
	"arena-server/internal/domain"
	"arena-server/internal/rules"
	"arena-server/internal/systems"
	"arena-server/pkg/logger"
)

// InputFrame - кадр пользовательского ввода, один на тик.
// Адаптеры ввода пишут кадры в очередь, симуляция забирает
// последний на старте тика.
type InputFrame struct {
	MoveX        float64           `json:"moveX"`
	MoveY        float64           `json:"moveY"`
	YawDelta     float64           `json:"yawDelta"`
	BuildKind    string            `json:"buildKind,omitempty"`
	BuildRequest bool              `json:"buildRequest,omitempty"`
	Destroy      bool              `json:"destroyRequest,omitempty"`
	AimTile      *domain.TileCoord `json:"aimTile,omitempty"`
}

// Observer получает снимки состояния между тиками.
// Реализации не должны блокировать тик.
type Observer interface {
	OnPlayerStatus(actor domain.ActorID, snap domain.PerceptionSnapshot)
	OnMatchLog(events []domain.Event)
	OnGameState(state domain.GameState)
}

type ruleSwap struct {
	actor domain.ActorID
	rs    *rules.RuleSet
}

// Simulation владеет всем состоянием матча. Однопоточная, кооперативная:
// каждый тик выполняет фиксированный конвейер систем до конца, внешние
// запросы (ввод, смена правил) применяются строго между тиками.
type Simulation struct {
	cfg  Config
	desc content.ArenaDescription

	Grid     *domain.Grid
	Areas    *domain.AreaMap
	Nav      *systems.NavGraph
	Actors   []*domain.Actor
	Spawners []*domain.Spawner
	Journal  *domain.MatchLog

	ruleSets map[domain.ActorID]*rules.RuleSet
	userID   domain.ActorID

	State domain.GameState
	Now   float64

	pendingBuilds   []systems.BuildRequest
	pendingDestroys []systems.DestroyRequest
	pendingSwaps    []ruleSwap
	pendingInput    *InputFrame

	observers []Observer
	lastFlush float64
	flushedTo int
}

// NewSimulation собирает матч: арена, зоны, навграф, актеры, правила
func NewSimulation(cfg Config) (*Simulation, error) {
	desc := content.DefaultArena()
	if cfg.ArenaFile != "" {
		loaded, err := content.LoadArenaFile(cfg.ArenaFile)
		if err != nil {
			logger.Log.WithError(err).Warn("Arena file not loaded, using builtin arena")
		} else {
			desc = loaded
		}
	}

	grid, spawners := content.ParseLayout(desc.Layout, domain.TileSize)
	if grid.Width == 0 || grid.Height == 0 {
		return nil, fmt.Errorf("arena layout is empty")
	}

	areas := desc.BuildAreaMap()
	fillAreaVisibility(areas, grid)

	nav := systems.NewNavGraph(cfg.DiagonalNav)
	nav.Regenerate(grid)

	sim := &Simulation{
		cfg:      cfg,
		desc:     desc,
		Grid:     grid,
		Areas:    areas,
		Nav:      nav,
		Spawners: spawners,
		Journal:  domain.NewMatchLog(),
		ruleSets: make(map[domain.ActorID]*rules.RuleSet),
		State:    domain.StatePlaying,
	}

	sim.spawnActors()
	return sim, nil
}

func (s *Simulation) spawnActors() {
	inv := domain.Inventory{Obstacles: s.cfg.StartObstacles, Turrets: s.cfg.StartTurrets}

	user := domain.NewActor("player", "Player", domain.RoleUser, s.desc.Spawns.Player, s.cfg.PlayerHp)
	user.Inventory = inv
	s.userID = user.ID

	bot := domain.NewActor("bot-1", "Companion", domain.RoleScripted, s.desc.Spawns.AI, s.cfg.BotHp)
	bot.Inventory = inv
	s.ruleSets[bot.ID] = content.DefaultRuleSet()

	enemy := domain.NewActor("enemy-1", "Raider", domain.RoleHostile, s.desc.Spawns.Enemy, s.cfg.EnemyHp)
	enemy.Inventory = inv
	s.ruleSets[enemy.ID] = content.TurretOnlyRuleSet()

	s.Actors = []*domain.Actor{user, bot, enemy}

	logger.Log.WithField("actors", len(s.Actors)).Info("Actors spawned")
}

// fillAreaVisibility заполняет VisibleAreas зон по прямой видимости
// между центрами. Считается один раз: зоны статичны, а стартовая
// геометрия стен доминирует над временными постройками.
func fillAreaVisibility(areas *domain.AreaMap, grid *domain.Grid) {
	for i := range areas.Areas {
		for j := range areas.Areas {
			if i == j {
				continue
			}
			if systems.HasLineOfSightTiles(grid, areas.Areas[i].Center, areas.Areas[j].Center) {
				areas.Areas[i].VisibleAreas = append(areas.Areas[i].VisibleAreas, areas.Areas[j].ID)
			}
		}
	}
}

// PushInput ставит кадр ввода в очередь (заменяя предыдущий: симуляции
// нужен только последний кадр). Вызывается между тиками.
func (s *Simulation) PushInput(frame InputFrame) {
	s.pendingInput = &frame
}

// SwapRuleSet атомарно заменяет набор правил актера между тиками
func (s *Simulation) SwapRuleSet(actor domain.ActorID, rs *rules.RuleSet) {
	s.pendingSwaps = append(s.pendingSwaps, ruleSwap{actor: actor, rs: rs})
}

// AddObserver регистрирует наблюдателя состояния
func (s *Simulation) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// User возвращает пользовательского актера
func (s *Simulation) User() *domain.Actor {
	return s.actorByID(s.userID)
}

func (s *Simulation) actorByID(id domain.ActorID) *domain.Actor {
	for _, a := range s.Actors {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Tick выполняет один шаг симуляции. Порядок систем фиксирован:
// ввод, правила, перепрокладка путей, следование, движение, восприятие,
// ресурсы, постройки, бой, журнал. GameOver терминален: мир замирает,
// наблюдатели продолжают получать журнал.
func (s *Simulation) Tick(dt float64) {
	s.applySwaps()

	if s.State == domain.StateGameOver {
		s.Now += dt
		s.flushJournal(false)
		return
	}

	s.Now += dt
	var events []domain.Event

	// 1. Ввод пользователя
	s.applyInput()

	// 2. Движок правил для скриптовых актеров
	for _, a := range s.Actors {
		if !a.Role.IsScripted() || !a.Hp.IsAlive() {
			continue
		}
		ev, build := systems.RunRules(a, s.ruleSets[a.ID], s.Grid, s.Areas, s.Now)
		events = append(events, ev...)
		if build != nil {
			s.pendingBuilds = append(s.pendingBuilds, *build)
		}
	}

	// 3-4. Перепрокладка путей и следование
	for _, a := range s.Actors {
		if !a.Role.IsScripted() || !a.Hp.IsAlive() {
			continue
		}
		systems.Repath(a, s.Nav, s.Grid)
		systems.FollowPath(a, s.Grid)
	}

	// 5. Движение
	for _, a := range s.Actors {
		if a.Hp.IsAlive() {
			systems.Movement(a, s.Grid, dt)
		}
	}

	// 6. Восприятие
	for _, a := range s.Actors {
		if !a.Hp.IsAlive() {
			continue
		}
		ev := systems.Perception(a, s.Actors, s.Grid, s.Areas, s.Nav, s.Now)
		events = append(events, ev...)
	}

	// Спавнеры и подбор ресурсов
	events = append(events,
		systems.Collectibles(s.Spawners, s.Actors, s.Grid, s.desc.RespawnTime, dt, s.Now)...)

	// 7. Постройки и разрушения
	events = append(events, s.drainIntents()...)

	// 8. Бой турелей
	combat := systems.Combat(s.Actors, s.Grid, s.Now)
	events = append(events, combat.Events...)
	s.removeEliminated(combat.Eliminated)
	if combat.UserKilled {
		s.State = domain.StateGameOver
		logger.Log.Info("Game over: user eliminated")
		for _, o := range s.observers {
			o.OnGameState(s.State)
		}
	}

	// 9. Журнал
	s.Journal.AddAll(events)
	s.publishStatus()
	s.flushJournal(false)
}

func (s *Simulation) applySwaps() {
	for _, swap := range s.pendingSwaps {
		if s.actorByID(swap.actor) == nil {
			logger.Log.WithField("actor", swap.actor).Debug("Rule swap for unknown actor ignored")
			continue
		}
		s.ruleSets[swap.actor] = swap.rs
		logger.Log.WithFields(map[string]interface{}{
			"actor": swap.actor,
			"rules": len(swap.rs.Rules),
		}).Info("Rule set swapped")
	}
	s.pendingSwaps = s.pendingSwaps[:0]
}

// applyInput переносит последний кадр ввода в пользовательского актера
func (s *Simulation) applyInput() {
	frame := s.pendingInput
	s.pendingInput = nil
	if frame == nil {
		return
	}
	user := s.User()
	if user == nil || !user.Hp.IsAlive() {
		return
	}

	user.Movement.InputDirection = domain.Vec3{X: frame.MoveX, Z: frame.MoveY}
	user.Movement.RotationDelta = frame.YawDelta

	aim := user.Tile(s.Grid)
	if frame.AimTile != nil {
		aim = *frame.AimTile
	}

	if frame.BuildRequest {
		kind := domain.ParseStructureType(frame.BuildKind)
		if kind == domain.StructureUnknown {
			kind = domain.StructureObstacle
		}
		dir := domain.DirectionFromVec(domain.Vec3{X: 0, Z: 1}.RotateY(user.Yaw))
		s.pendingBuilds = append(s.pendingBuilds, systems.BuildRequest{
			Actor:      user.ID,
			Tile:       aim,
			Kind:       kind,
			Direction:  dir,
			UserDriven: true,
		})
	}
	if frame.Destroy {
		s.pendingDestroys = append(s.pendingDestroys, systems.DestroyRequest{
			Actor: user.ID,
			Tile:  aim,
		})
	}
}

// drainIntents обрабатывает отложенные постройки и разрушения.
// Запрос, ставший невалидным с момента постановки, тихо отклоняется.
func (s *Simulation) drainIntents() []domain.Event {
	var events []domain.Event

	for _, req := range s.pendingBuilds {
		builder := s.actorByID(req.Actor)
		if builder == nil || !builder.Hp.IsAlive() {
			continue
		}
		if ev, ok := systems.ProcessBuild(req, builder, s.Actors, s.Grid, s.Nav, s.Now); ok {
			events = append(events, ev)
		}
	}
	s.pendingBuilds = s.pendingBuilds[:0]

	for _, req := range s.pendingDestroys {
		if ev, ok := systems.ProcessDestroy(req, s.Actors, s.Grid, s.Nav, s.Now); ok {
			events = append(events, ev)
		}
	}
	s.pendingDestroys = s.pendingDestroys[:0]

	return events
}

// removeEliminated убирает погибших ботов из мира.
// Пользовательский актер остается: его гибель оканчивает матч.
func (s *Simulation) removeEliminated(ids []domain.ActorID) {
	for _, id := range ids {
		if id == s.userID {
			continue
		}
		for i, a := range s.Actors {
			if a.ID == id {
				s.Actors = append(s.Actors[:i], s.Actors[i+1:]...)
				delete(s.ruleSets, id)
				break
			}
		}
	}
}

func (s *Simulation) publishStatus() {
	if len(s.observers) == 0 {
		return
	}
	user := s.User()
	if user == nil {
		return
	}
	for _, o := range s.observers {
		o.OnPlayerStatus(user.ID, user.Status)
	}
}

// flushJournal выталкивает накопленные события наблюдателям раз в
// FlushInterval секунд симуляции (или немедленно при force)
func (s *Simulation) flushJournal(force bool) {
	if !force && s.Now-s.lastFlush < s.cfg.FlushInterval {
		return
	}
	s.lastFlush = s.Now

	fresh := s.Journal.Since(s.flushedTo)
	if len(fresh) == 0 {
		return
	}
	s.flushedTo = s.Journal.Len()

	for _, o := range s.observers {
		o.OnMatchLog(fresh)
	}
}

// FlushNow форсирует сброс журнала (остановка сервера, тесты)
func (s *Simulation) FlushNow() {
	s.flushJournal(true)
}
