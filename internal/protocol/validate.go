package protocol

import "math"

// ValidateCommand performs the structural checks for one authored command.
// The engine assumes every command that passes here is well-formed.
func ValidateCommand(c CommandMsg) error {
	if c.Type != TypeCommand {
		return errf(ErrProtoBadRequest, "type %q", c.Type)
	}
	if c.ProtocolVersion != Version {
		return errf(ErrProtoBadRequest, "protocol_version %q", c.ProtocolVersion)
	}

	switch c.Op {
	case OpAddSprite:
		if !IsSpriteKind(c.Kind) {
			return errf(ErrBadSpriteKind, "kind %q", c.Kind)
		}
	case OpRemoveSprite:
		if c.SpriteID == "" {
			return errf(ErrMissingField, "sprite_id required for %s", c.Op)
		}
	case OpAppendAction:
		if c.SpriteID == "" {
			return errf(ErrMissingField, "sprite_id required for %s", c.Op)
		}
		if c.Action == nil {
			return errf(ErrMissingField, "action required for %s", c.Op)
		}
		return validateAction(*c.Action)
	case OpRemoveAction:
		if c.SpriteID == "" || c.ActionID == "" {
			return errf(ErrMissingField, "sprite_id and action_id required for %s", c.Op)
		}
	case OpSelect:
		// Empty sprite_id clears the selection.
	case OpResize:
		if !finite(c.Width) || !finite(c.Height) || c.Width <= 0 || c.Height <= 0 {
			return errf(ErrBadValue, "resize %vx%v", c.Width, c.Height)
		}
	case OpPlay, OpStop, OpReset:
		// No payload.
	default:
		return errf(ErrBadOp, "op %q", c.Op)
	}
	return nil
}

func validateAction(a ActionSpec) error {
	if !IsActionKind(a.Kind) {
		return errf(ErrBadActionKind, "action kind %q", a.Kind)
	}
	if !finite(a.Amount) || !finite(a.X) || !finite(a.Y) || !finite(a.Seconds) {
		return errf(ErrBadValue, "non-finite numeric field in %s", a.Kind)
	}
	switch a.Kind {
	case ActionSay:
		if a.Seconds < 0 {
			return errf(ErrBadValue, "say seconds %v", a.Seconds)
		}
	case ActionMoveSteps:
		if a.Repeat < 0 {
			return errf(ErrBadValue, "repeat %d", a.Repeat)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
