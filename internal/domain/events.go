package domain

import (
	"strings"
	"sync"
)

// EventType - внутренний числовой идентификатор события журнала
type EventType uint8

const (
	EventUnknown EventType = iota
	EventAreaEntered
	EventStructureBuilt
	EventStructureDestroyed
	EventItemCollected
	EventDamageDealt
	EventPlayerEliminated
	EventAiDecision
)

// Маппинг для конвертации JSON -> Domain
var eventStringToType = map[string]EventType{
	"AREA_ENTERED":        EventAreaEntered,
	"STRUCTURE_BUILT":     EventStructureBuilt,
	"STRUCTURE_DESTROYED": EventStructureDestroyed,
	"ITEM_COLLECTED":      EventItemCollected,
	"DAMAGE_DEALT":        EventDamageDealt,
	"PLAYER_ELIMINATED":   EventPlayerEliminated,
	"AI_DECISION":         EventAiDecision,
}

// Маппинг для логов Domain -> String
var eventTypeToString = map[EventType]string{
	EventAreaEntered:        "AREA_ENTERED",
	EventStructureBuilt:     "STRUCTURE_BUILT",
	EventStructureDestroyed: "STRUCTURE_DESTROYED",
	EventItemCollected:      "ITEM_COLLECTED",
	EventDamageDealt:        "DAMAGE_DEALT",
	EventPlayerEliminated:   "PLAYER_ELIMINATED",
	EventAiDecision:         "AI_DECISION",
}

// ParseEventType конвертирует строку из JSON в EventType
func ParseEventType(s string) EventType {
	if val, ok := eventStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

func (e EventType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + e.String() + `"`), nil
}

func (e *EventType) UnmarshalJSON(data []byte) error {
	*e = ParseEventType(strings.Trim(string(data), `"`))
	return nil
}

// Event - одна запись журнала матча. Плоская структура с omitempty:
// каждая разновидность заполняет только свои поля.
type Event struct {
	Type EventType `json:"type"`
	Time float64   `json:"time"` // Секунды симуляции

	Actor  ActorID `json:"actor,omitempty"`  // Кто действовал / пострадал
	Source ActorID `json:"source,omitempty"` // Атакующий / владелец / разрушитель

	Area      AreaID     `json:"area,omitempty"`
	Tile      *TileCoord `json:"tile,omitempty"`
	Structure string     `json:"structure,omitempty"`
	Item      string     `json:"item,omitempty"`
	Amount    int        `json:"amount,omitempty"`
	Rule      string     `json:"rule,omitempty"`
}

// Конструкторы событий: единообразные точки эмиссии для систем

func NewAreaEntered(actor ActorID, area AreaID, now float64) Event {
	return Event{Type: EventAreaEntered, Time: now, Actor: actor, Area: area}
}

func NewStructureBuilt(actor ActorID, st StructureType, tile TileCoord, now float64) Event {
	return Event{Type: EventStructureBuilt, Time: now, Actor: actor, Structure: st.String(), Tile: &tile}
}

func NewStructureDestroyed(destroyer ActorID, st StructureType, tile TileCoord, now float64) Event {
	return Event{Type: EventStructureDestroyed, Time: now, Source: destroyer, Structure: st.String(), Tile: &tile}
}

func NewItemCollected(actor ActorID, kind CollectibleType, tile TileCoord, now float64) Event {
	return Event{Type: EventItemCollected, Time: now, Actor: actor, Item: kind.String(), Tile: &tile}
}

func NewDamageDealt(attacker, victim ActorID, amount int, now float64) Event {
	return Event{Type: EventDamageDealt, Time: now, Source: attacker, Actor: victim, Amount: amount}
}

func NewPlayerEliminated(victim, killer ActorID, now float64) Event {
	return Event{Type: EventPlayerEliminated, Time: now, Actor: victim, Source: killer}
}

func NewAiDecision(actor ActorID, rule string, now float64) Event {
	return Event{Type: EventAiDecision, Time: now, Actor: actor, Rule: rule}
}

// MatchLog - журнал матча, только добавление.
// Пишет его поток симуляции; наблюдатели читают копии срезов,
// поэтому чтение из других горутин закрыто мьютексом.
type MatchLog struct {
	mu     sync.RWMutex
	events []Event
}

func NewMatchLog() *MatchLog {
	return &MatchLog{events: make([]Event, 0, 64)}
}

func (m *MatchLog) Add(e Event) {
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
}

func (m *MatchLog) AddAll(events []Event) {
	if len(events) == 0 {
		return
	}
	m.mu.Lock()
	m.events = append(m.events, events...)
	m.mu.Unlock()
}

func (m *MatchLog) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

// Since возвращает копию событий начиная с индекса (для инкрементальной
// рассылки наблюдателям)
func (m *MatchLog) Since(index int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if index < 0 || index >= len(m.events) {
		return nil
	}
	out := make([]Event, len(m.events)-index)
	copy(out, m.events[index:])
	return out
}

// Snapshot возвращает копию всего журнала
func (m *MatchLog) Snapshot() []Event {
	return m.Since(0)
}
