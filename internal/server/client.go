package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"arena-server/internal/domain"
	"arena-server/internal/engine"
	"arena-server/internal/network"
	"arena-server/internal/rules"
	"arena-server/pkg/api"
	"arena-server/pkg/logger"
	"arena-server/pkg/utils"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16384
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и циклом симуляции
type Client struct {
	Service *engine.Service
	Hub     *network.Broadcaster
	Conn    *websocket.Conn
	Send    chan api.ServerMessage
	ID      string
}

func NewClient(service *engine.Service, hub *network.Broadcaster, conn *websocket.Conn) *Client {
	return &Client{
		Service: service,
		Hub:     hub,
		Conn:    conn,
		Send:    make(chan api.ServerMessage, 256),
		ID:      utils.GenerateID(),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
		logger.Log.WithField("client_id", c.ID).Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// Подписка на обновления симуляции
	updates := c.Hub.Register(c.ID)
	go func() {
		for msg := range updates {
			c.Send <- msg
		}
		close(c.Send)
	}()

	logger.Log.WithField("client_id", c.ID).Info("Client connected")

	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		c.dispatch(cmd)
	}
}

// dispatch разбирает команду клиента и передает ее в симуляцию.
// Невалидные команды логируются и отбрасываются, соединение живет дальше.
func (c *Client) dispatch(cmd api.ClientCommand) {
	switch cmd.Action {
	case api.MsgInput:
		var p api.InputPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			logger.Log.WithError(err).Debug("Input payload not parsed")
			return
		}
		if err := p.Validate(); err != nil {
			logger.Log.WithError(err).Debug("Input payload rejected")
			return
		}

		frame := engine.InputFrame{
			MoveX:        p.MoveX,
			MoveY:        p.MoveY,
			YawDelta:     p.YawDelta,
			BuildKind:    p.BuildKind,
			BuildRequest: p.BuildRequest,
			Destroy:      p.Destroy,
		}
		if p.AimX != nil && p.AimY != nil {
			frame.AimTile = &domain.TileCoord{X: *p.AimX, Y: *p.AimY}
		}
		c.Service.SubmitInput(frame)

	case api.MsgUpdateRuleSet:
		var p api.RuleSetPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			logger.Log.WithError(err).Debug("Rule set payload not parsed")
			return
		}
		if err := p.Validate(); err != nil {
			logger.Log.WithError(err).Debug("Rule set payload rejected")
			return
		}

		rs, err := rules.Parse(p.Rules)
		if err != nil {
			logger.Log.WithError(err).WithField("actor", p.Actor).Warn("Rule set document invalid")
			return
		}

		logger.Log.WithFields(logrus.Fields{
			"client_id": c.ID,
			"actor":     p.Actor,
			"rules":     len(rs.Rules),
		}).Info("Rule set accepted")
		c.Service.SubmitRuleSet(domain.ActorID(p.Actor), rs)

	default:
		logger.Log.WithField("action", cmd.Action).Debug("Unknown client action")
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
