package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"arena-server/internal/domain"
	"arena-server/internal/rules"
	"arena-server/pkg/logger"
)

// ruleSwapCommand - внешняя команда смены правил актера
type ruleSwapCommand struct {
	Actor domain.ActorID
	Rules *rules.RuleSet
}

// Service оборачивает симуляцию в горутину реального времени.
// Все состояние принадлежит циклу: внешний мир общается только через
// каналы, команды применяются строго между тиками.
type Service struct {
	Sim *Simulation
	cfg Config

	inputChan chan InputFrame
	rulesChan chan ruleSwapCommand
	stateChan chan domain.GameState
}

func NewService(cfg Config) (*Service, error) {
	sim, err := NewSimulation(cfg)
	if err != nil {
		return nil, err
	}
	return &Service{
		Sim:       sim,
		cfg:       cfg,
		inputChan: make(chan InputFrame, 64),
		rulesChan: make(chan ruleSwapCommand, 16),
		stateChan: make(chan domain.GameState, 4),
	}, nil
}

// SubmitInput отправляет кадр ввода в цикл симуляции.
// Переполненная очередь роняет кадр: свежий ввод важнее старого.
func (s *Service) SubmitInput(frame InputFrame) {
	select {
	case s.inputChan <- frame:
	default:
		logger.Log.Debug("Input frame dropped: queue full")
	}
}

// SubmitRuleSet отправляет новый набор правил для актера
func (s *Service) SubmitRuleSet(actor domain.ActorID, rs *rules.RuleSet) {
	select {
	case s.rulesChan <- ruleSwapCommand{Actor: actor, Rules: rs}:
	default:
		logger.Log.WithField("actor", actor).Warn("Rule set dropped: queue full")
	}
}

// GameStates возвращает канал переходов состояния матча
func (s *Service) GameStates() <-chan domain.GameState {
	return s.stateChan
}

// AddObserver регистрирует наблюдателя. Вызывать до Run.
func (s *Service) AddObserver(o Observer) {
	s.Sim.AddObserver(o)
}

// Run крутит цикл симуляции до отмены контекста.
// Тик фиксированной длительности 1/TickRate; дрейф стенных часов
// не накапливается, dt симуляции всегда номинален, что сохраняет
// воспроизводимость при одинаковом вводе.
func (s *Service) Run(ctx context.Context) {
	dt := 1.0 / s.cfg.TickRate
	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	s.Sim.AddObserver(stateRelay{ch: s.stateChan})

	logger.Log.WithFields(logrus.Fields{
		"tickRate": s.cfg.TickRate,
		"actors":   len(s.Sim.Actors),
	}).Info("Simulation loop started")

	for {
		select {
		case <-ctx.Done():
			s.Sim.FlushNow()
			logger.Log.Info("Simulation loop stopped")
			return

		case frame := <-s.inputChan:
			s.Sim.PushInput(frame)

		case cmd := <-s.rulesChan:
			s.Sim.SwapRuleSet(cmd.Actor, cmd.Rules)

		case <-ticker.C:
			s.Sim.Tick(dt)
		}
	}
}

// stateRelay транслирует переходы состояния в канал сервиса
type stateRelay struct {
	ch chan domain.GameState
}

func (r stateRelay) OnPlayerStatus(domain.ActorID, domain.PerceptionSnapshot) {}
func (r stateRelay) OnMatchLog([]domain.Event)                               {}

func (r stateRelay) OnGameState(state domain.GameState) {
	select {
	case r.ch <- state:
	default:
	}
}
