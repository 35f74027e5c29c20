package stage

import "spritelab.dev/internal/protocol"

// Kind selects the icon the editor draws for a sprite. It never affects
// physics.
type Kind string

const (
	KindCat   Kind = protocol.KindCat
	KindDog   Kind = protocol.KindDog
	KindBall  Kind = protocol.KindBall
	KindHuman Kind = protocol.KindHuman
)

func validKind(k Kind) bool {
	return protocol.IsSpriteKind(string(k))
}

// Sprite is one placed character. All fields are owned by the stage loop
// goroutine; the rest of the process only ever sees SpriteView copies.
type Sprite struct {
	ID   string
	Kind Kind

	X, Y  float64
	Dir   float64 // degrees, kept in [0, 360)
	Scale float64 // never below the tuned floor

	VX, VY    float64
	Animating bool // gates the continuous stepper

	Saying string // transient, cleared by a scheduled event
}

func (s *Sprite) view() protocol.SpriteView {
	return protocol.SpriteView{
		ID:     s.ID,
		Kind:   string(s.Kind),
		X:      s.X,
		Y:      s.Y,
		Dir:    s.Dir,
		Scale:  s.Scale,
		Saying: s.Saying,
	}
}
