package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeHello   = "HELLO"
	TypeWelcome = "WELCOME"
	TypeCommand = "COMMAND"
	TypeState   = "STATE"
)

// Command ops (editor -> stage).
const (
	OpAddSprite    = "ADD_SPRITE"
	OpRemoveSprite = "REMOVE_SPRITE"
	OpAppendAction = "APPEND_ACTION"
	OpRemoveAction = "REMOVE_ACTION"
	OpSelect       = "SELECT"
	OpResize       = "RESIZE"
	OpPlay         = "PLAY"
	OpStop         = "STOP"
	OpReset        = "RESET"
)

// Sprite kinds. Kind affects only how the editor draws a sprite, never its
// physics.
const (
	KindCat   = "CAT"
	KindDog   = "DOG"
	KindBall  = "BALL"
	KindHuman = "HUMAN"
)

// Action kinds.
const (
	ActionMoveSteps = "MOVE_STEPS"
	ActionMoveX     = "MOVE_X"
	ActionMoveY     = "MOVE_Y"
	ActionTurn      = "TURN"
	ActionGoTo      = "GO_TO"
	ActionGoRandom  = "GO_RANDOM"
	ActionSay       = "SAY"
	ActionGrow      = "GROW"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

func IsSpriteKind(k string) bool {
	switch k {
	case KindCat, KindDog, KindBall, KindHuman:
		return true
	}
	return false
}

func IsActionKind(k string) bool {
	switch k {
	case ActionMoveSteps, ActionMoveX, ActionMoveY, ActionTurn,
		ActionGoTo, ActionGoRandom, ActionSay, ActionGrow:
		return true
	}
	return false
}
