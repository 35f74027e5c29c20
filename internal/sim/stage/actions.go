package stage

import "spritelab.dev/internal/protocol"

type ActionKind string

const (
	ActionMoveSteps ActionKind = protocol.ActionMoveSteps
	ActionMoveX     ActionKind = protocol.ActionMoveX
	ActionMoveY     ActionKind = protocol.ActionMoveY
	ActionTurn      ActionKind = protocol.ActionTurn
	ActionGoTo      ActionKind = protocol.ActionGoTo
	ActionGoRandom  ActionKind = protocol.ActionGoRandom
	ActionSay       ActionKind = protocol.ActionSay
	ActionGrow      ActionKind = protocol.ActionGrow
)

// ActionBlock is one queued instruction in a sprite's program. Blocks are
// validated at the protocol boundary; the engine trusts them. Only the
// fields relevant to Kind are meaningful.
type ActionBlock struct {
	ID     string
	Kind   ActionKind
	Amount float64

	X, Y float64 // GO_TO target

	Text    string  // SAY
	Seconds float64 // SAY duration; 0 means the tuned default

	Repeat int // MOVE_STEPS multiplier; 0 and 1 mean once
}

func blockFromSpec(id string, spec protocol.ActionSpec) ActionBlock {
	return ActionBlock{
		ID:      id,
		Kind:    ActionKind(spec.Kind),
		Amount:  spec.Amount,
		X:       spec.X,
		Y:       spec.Y,
		Text:    spec.Text,
		Seconds: spec.Seconds,
		Repeat:  spec.Repeat,
	}
}
