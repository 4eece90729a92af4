package api

import (
	"encoding/json"

	"arena-server/internal/domain"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы исходящих сообщений
const (
	MsgUpdatePlayerStatus = "UPDATE_PLAYER_STATUS"
	MsgPushMatchLog       = "PUSH_MATCH_LOG"
	MsgGameState          = "GAME_STATE"
)

// ServerMessage это корневой объект, который сервер отправляет клиенту.
// Заполнено ровно одно из полей полезной нагрузки, какое - определяет Type.
type ServerMessage struct {
	Type string `json:"type"`

	// Time - время симуляции в секундах на момент отправки
	Time float64 `json:"time"`

	// Status - снимок восприятия пользовательского актера
	// (для MsgUpdatePlayerStatus)
	Status *PlayerStatusView `json:"status,omitempty"`

	// Events - новые события журнала с прошлого сброса
	// (для MsgPushMatchLog)
	Events []domain.Event `json:"events,omitempty"`

	// State - "Playing" | "GameOver" (для MsgGameState)
	State string `json:"state,omitempty"`
}

// PlayerStatusView это DTO снимка восприятия плюс открытые показатели актера
type PlayerStatusView struct {
	Actor      string                    `json:"actor"`
	Perception domain.PerceptionSnapshot `json:"perception"`
	Hp         domain.Hp                 `json:"hp"`
	Inventory  domain.Inventory          `json:"inventory"`
	Pos        domain.Vec3               `json:"pos"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// Типы входящих сообщений
const (
	MsgInput         = "INPUT"
	MsgUpdateRuleSet = "UPDATE_RULESET"
)

// ClientCommand это корневой объект для всех сообщений от клиента к серверу
type ClientCommand struct {
	// Action название действия: INPUT или UPDATE_RULESET
	Action string `json:"action"`

	// Payload JSON-объект с данными. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// InputPayload - кадр пользовательского ввода
type InputPayload struct {
	MoveX        float64 `json:"moveX"`
	MoveY        float64 `json:"moveY"`
	YawDelta     float64 `json:"yawDelta"`
	BuildKind    string  `json:"buildKind,omitempty"`
	BuildRequest bool    `json:"buildRequest,omitempty"`
	Destroy      bool    `json:"destroyRequest,omitempty"`

	// AimTile - целевой тайл постройки или разрушения;
	// по умолчанию тайл самого актера
	AimX *int `json:"aimX,omitempty"`
	AimY *int `json:"aimY,omitempty"`
}

// RuleSetPayload - замена набора правил скриптового актера.
// Rules валидируется схемой до применения.
type RuleSetPayload struct {
	Actor string          `json:"actor"`
	Rules json.RawMessage `json:"rules"`
}
