package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p InputPayload) Validate() error {
	if p.MoveX < -1 || p.MoveX > 1 || p.MoveY < -1 || p.MoveY > 1 {
		return errors.New("move axis out of range")
	}
	if (p.AimX == nil) != (p.AimY == nil) {
		return errors.New("aim tile requires both coordinates")
	}
	return nil
}

func (p RuleSetPayload) Validate() error {
	if p.Actor == "" {
		return errors.New("actor is required")
	}
	if len(p.Rules) == 0 {
		return errors.New("rules document is required")
	}
	return nil
}
