package server

import (
	"arena-server/internal/domain"
	"arena-server/internal/engine"
	"arena-server/internal/network"
	"arena-server/pkg/api"
)

// Relay транслирует снимки симуляции в рассылку Hub.
// Вызывается из горутины цикла симуляции, поэтому читать мир здесь
// безопасно, но блокировать нельзя: Hub роняет сообщения молча.
type Relay struct {
	Sim *engine.Simulation
	Hub *network.Broadcaster
}

func NewRelay(sim *engine.Simulation, hub *network.Broadcaster) *Relay {
	return &Relay{Sim: sim, Hub: hub}
}

func (r *Relay) OnPlayerStatus(actor domain.ActorID, snap domain.PerceptionSnapshot) {
	user := r.Sim.User()
	if user == nil {
		return
	}
	r.Hub.Broadcast(api.ServerMessage{
		Type: api.MsgUpdatePlayerStatus,
		Time: r.Sim.Now,
		Status: &api.PlayerStatusView{
			Actor:      string(actor),
			Perception: snap,
			Hp:         user.Hp,
			Inventory:  user.Inventory,
			Pos:        user.Pos,
		},
	})
}

func (r *Relay) OnMatchLog(events []domain.Event) {
	r.Hub.Broadcast(api.ServerMessage{
		Type:   api.MsgPushMatchLog,
		Time:   r.Sim.Now,
		Events: events,
	})
}

func (r *Relay) OnGameState(state domain.GameState) {
	r.Hub.Broadcast(api.ServerMessage{
		Type:  api.MsgGameState,
		Time:  r.Sim.Now,
		State: state.String(),
	})
}
