package content

import (
	"os"

	"arena-server/internal/rules"
	"arena-server/pkg/logger"
)

// DefaultRuleSet - штатное поведение дружественного бота:
// бежать при низком здоровье, преследовать видимого врага,
// иначе патрулировать центр арены.
func DefaultRuleSet() *rules.RuleSet {
	return &rules.RuleSet{
		Rules: []rules.Rule{
			{
				Name:      "FleeLowHealth",
				Priority:  100,
				Condition: rules.Condition{Type: rules.CondIsHealthLow, Threshold: 1},
				Action:    rules.Action{Type: rules.ActionFlee},
			},
			{
				Name:      "ChaseEnemy",
				Priority:  50,
				Condition: rules.Condition{Type: rules.CondIsEnemyVisible},
				Action:    rules.Action{Type: rules.ActionChaseEnemy},
			},
			{
				Name:      "PatrolCenter",
				Priority:  10,
				Condition: rules.Condition{Type: rules.CondTrue},
				Action:    rules.Action{Type: rules.ActionMoveToArea, Area: "CenterArena"},
			},
		},
	}
}

// TurretOnlyRuleSet - поведение враждебного бота: ставит турель,
// когда враг на виду и ресурс есть, отступает под обстрелом,
// остальное время держит позицию.
func TurretOnlyRuleSet() *rules.RuleSet {
	return &rules.RuleSet{
		Rules: []rules.Rule{
			{
				Name:     "BuildTurretOnSight",
				Priority: 100,
				Condition: rules.Condition{Type: rules.CondAnd, Conditions: []rules.Condition{
					{Type: rules.CondIsEnemyVisible},
					{Type: rules.CondHasItem, Item: "turret", Count: 1},
				}},
				Action: rules.Action{Type: rules.ActionBuild, Structure: "Turret"},
			},
			{
				Name:      "RetreatUnderFire",
				Priority:  50,
				Condition: rules.Condition{Type: rules.CondIsUnderAttack},
				Action:    rules.Action{Type: rules.ActionFlee},
			},
			{
				Name:      "HoldPosition",
				Priority:  10,
				Condition: rules.Condition{Type: rules.CondTrue},
				Action:    rules.Action{Type: rules.ActionIdle},
			},
		},
	}
}

// LoadRuleSetFile читает и валидирует набор правил из JSON файла
func LoadRuleSetFile(path string) (*rules.RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rs, err := rules.Parse(data)
	if err != nil {
		return nil, err
	}
	logger.Log.WithFields(map[string]interface{}{
		"path":  path,
		"rules": len(rs.Rules),
	}).Info("Rule set loaded")
	return rs, nil
}
