// Package rules описывает внешний документ набора правил AI:
// приоритетный список пар (условие, действие). Пакет намеренно не зависит
// от домена - это формат авторинга, зоны и типы построек здесь строки.
package rules

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Типы условий
const (
	CondTrue           = "True"
	CondIsEnemyVisible = "IsEnemyVisible"
	CondIsHealthLow    = "IsHealthLow"
	CondInArea         = "InArea"
	CondHasItem        = "HasItem"
	CondIsUnderAttack  = "IsUnderAttack"
	CondAnd            = "And"
	CondOr             = "Or"
	CondNot            = "Not"
)

// Типы действий
const (
	ActionMoveToArea = "MoveToArea"
	ActionChaseEnemy = "ChaseEnemy"
	ActionFlee       = "Flee"
	ActionBuild      = "Build"
	ActionIdle       = "Idle"
)

// Condition - узел алгебры условий. Примитивы и композиты лежат в одной
// структуре; какие поля значимы, определяет Type.
type Condition struct {
	Type string `json:"type"`

	// IsHealthLow
	Threshold int `json:"threshold,omitempty"`

	// InArea
	Area string `json:"area,omitempty"`

	// HasItem: "obstacle" | "turret"; неизвестные виды вычисляются в false
	Item  string `json:"item,omitempty"`
	Count int    `json:"count,omitempty"`

	// And / Or
	Conditions []Condition `json:"conditions,omitempty"`

	// Not
	Condition *Condition `json:"condition,omitempty"`
}

// Action - действие правила
type Action struct {
	Type string `json:"type"`

	// MoveToArea
	Area string `json:"area,omitempty"`

	// Build
	Structure string `json:"structure,omitempty"` // "Obstacle" | "Turret"
	Direction string `json:"direction,omitempty"` // "North".."West", опционально
}

// Rule - именованное правило с приоритетом
type Rule struct {
	Name      string    `json:"name"`
	Priority  int       `json:"priority"`
	Condition Condition `json:"condition"`
	Action    Action    `json:"action"`
}

// RuleSet - документ целиком
type RuleSet struct {
	Rules []Rule `json:"rules"`
}

// Sorted возвращает стабильную копию правил по убыванию приоритета.
// Равные приоритеты сохраняют порядок объявления - от этого зависит
// детерминизм выбора правила.
func (rs *RuleSet) Sorted() []Rule {
	out := make([]Rule, len(rs.Rules))
	copy(out, rs.Rules)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})
	return out
}

// Parse валидирует сырой JSON по схеме и декодирует документ.
// Невалидный документ отклоняется целиком - частичных наборов не бывает.
func Parse(raw []byte) (*RuleSet, error) {
	if err := ValidateDocument(raw); err != nil {
		return nil, fmt.Errorf("ruleset rejected by schema: %w", err)
	}
	var rs RuleSet
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("ruleset decode: %w", err)
	}
	return &rs, nil
}
