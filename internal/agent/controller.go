package agent

import (
	"arena-server/internal/content"
	"arena-server/internal/domain"
	"arena-server/internal/engine"
	"arena-server/internal/network"
	"arena-server/internal/rules"
	"arena-server/pkg/api"
	"arena-server/pkg/logger"
)

// Controller представляет собой "Тренера-компьютера" (Headless Agent).
// Этот код является примером ВНЕШНЕГО контроллера, который подключается
// к серверу так же, как обычный наблюдатель: получает снимки состояния
// из хаба и в ответ присылает новые наборы правил для дружественного бота.
//
// Жизненный цикл:
//  1. NewController -> Регистрация в хабе, получение личного канала (Inbox).
//  2. Run -> Запуск в отдельной горутине, слушает свой Inbox.
//  3. На каждом снимке состояния оценивает обстановку и при смене
//     режима отправляет боту другой набор правил.
type Controller struct {
	BotID   domain.ActorID
	Service *engine.Service
	Hub     *network.Broadcaster
	Inbox   chan api.ServerMessage

	mode string
}

func NewController(botID domain.ActorID, service *engine.Service, hub *network.Broadcaster) *Controller {
	return &Controller{
		BotID:   botID,
		Service: service,
		Hub:     hub,
		// Контроллер регистрируется в хабе как обычный клиент
		Inbox: hub.Register("agent-" + string(botID)),
	}
}

// Run запускает цикл жизни контроллера. Должен быть запущен в горутине.
func (c *Controller) Run() {
	defer c.Hub.Unregister("agent-" + string(c.BotID))

	for msg := range c.Inbox {
		if msg.Type != api.MsgUpdatePlayerStatus || msg.Status == nil {
			continue
		}
		c.react(msg.Status)
	}
	logger.Log.WithField("bot", c.BotID).Info("Agent controller shut down")
}

// react выбирает режим поведения бота по состоянию пользователя:
// при критическом здоровье бот уходит в защиту, иначе действует
// по штатным правилам. Набор правил меняется только на переходе режима.
func (c *Controller) react(status *api.PlayerStatusView) {
	mode := "default"
	if status.Hp.Current*3 <= status.Hp.Max {
		mode = "guard"
	}
	if mode == c.mode {
		return
	}
	c.mode = mode

	var rs *rules.RuleSet
	if mode == "guard" {
		rs = guardRuleSet(status.Perception.CurrentAreaID)
	} else {
		rs = content.DefaultRuleSet()
	}

	logger.Log.WithFields(map[string]interface{}{
		"bot":  c.BotID,
		"mode": mode,
	}).Info("Agent switching bot behavior")
	c.Service.SubmitRuleSet(c.BotID, rs)
}

// guardRuleSet заставляет бота держаться рядом с пользователем
// и строить препятствия под обстрелом
func guardRuleSet(area domain.AreaID) *rules.RuleSet {
	guardArea := string(area)
	if guardArea == string(domain.AreaUnknown) || guardArea == "" {
		guardArea = "UserBase"
	}
	return &rules.RuleSet{
		Rules: []rules.Rule{
			{
				Name:     "FortifyUnderFire",
				Priority: 100,
				Condition: rules.Condition{Type: rules.CondAnd, Conditions: []rules.Condition{
					{Type: rules.CondIsUnderAttack},
					{Type: rules.CondHasItem, Item: "obstacle", Count: 1},
				}},
				Action: rules.Action{Type: rules.ActionBuild, Structure: "Obstacle"},
			},
			{
				Name:      "GuardUser",
				Priority:  10,
				Condition: rules.Condition{Type: rules.CondTrue},
				Action:    rules.Action{Type: rules.ActionMoveToArea, Area: guardArea},
			},
		},
	}
}
