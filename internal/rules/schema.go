package rules

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Схема внешнего документа правил. Компилируется один раз при загрузке
// пакета; UpdateRuleSet с невалидным документом отклоняется до того,
// как что-либо коснется симуляции.
const ruleSetSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["rules"],
  "properties": {
    "rules": {
      "type": "array",
      "items": { "$ref": "#/$defs/rule" }
    }
  },
  "$defs": {
    "rule": {
      "type": "object",
      "required": ["name", "priority", "condition", "action"],
      "properties": {
        "name": { "type": "string", "minLength": 1 },
        "priority": { "type": "integer" },
        "condition": { "$ref": "#/$defs/condition" },
        "action": { "$ref": "#/$defs/action" }
      }
    },
    "condition": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {
          "enum": ["True", "IsEnemyVisible", "IsHealthLow", "InArea",
                   "HasItem", "IsUnderAttack", "And", "Or", "Not"]
        },
        "threshold": { "type": "integer", "minimum": 0 },
        "area": { "type": "string" },
        "item": { "type": "string" },
        "count": { "type": "integer", "minimum": 0 },
        "conditions": {
          "type": "array",
          "items": { "$ref": "#/$defs/condition" }
        },
        "condition": { "$ref": "#/$defs/condition" }
      },
      "allOf": [
        {
          "if": { "properties": { "type": { "const": "Not" } } },
          "then": { "required": ["condition"] }
        },
        {
          "if": { "properties": { "type": { "enum": ["And", "Or"] } } },
          "then": { "required": ["conditions"] }
        }
      ]
    },
    "action": {
      "type": "object",
      "required": ["type"],
      "properties": {
        "type": {
          "enum": ["MoveToArea", "ChaseEnemy", "Flee", "Build", "Idle"]
        },
        "area": { "type": "string" },
        "structure": { "enum": ["Obstacle", "Turret"] },
        "direction": { "enum": ["North", "East", "South", "West"] }
      },
      "allOf": [
        {
          "if": { "properties": { "type": { "const": "MoveToArea" } } },
          "then": { "required": ["area"] }
        },
        {
          "if": { "properties": { "type": { "const": "Build" } } },
          "then": { "required": ["structure"] }
        }
      ]
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("ruleset.schema.json", ruleSetSchema)

// ValidateDocument проверяет сырой документ по схеме
func ValidateDocument(raw []byte) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("not a JSON document: %w", err)
	}
	return compiledSchema.Validate(doc)
}
