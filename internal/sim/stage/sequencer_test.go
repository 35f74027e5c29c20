package stage

import (
	"math"
	"testing"
	"time"
)

// The canonical cadence: [TURN 90, TURN 90] fires at t+1 and t+2, and the
// sprite comes to rest one interval after the last action.
func TestSequencer_Ordering(t *testing.T) {
	st := newTestStage(t)
	s := placeSprite(st, KindCat, 240, 180)
	st.programs[s.ID] = []ActionBlock{
		{ID: "a-001", Kind: ActionTurn, Amount: 90},
		{ID: "a-002", Kind: ActionTurn, Amount: 90},
	}

	st.play(t0)
	st.advance(t0, 0.016)
	if s.Dir != 0 {
		t.Fatalf("direction changed at trigger time: %v", s.Dir)
	}

	st.advance(t0.Add(1*time.Second), 0.016)
	if s.Dir != 90 {
		t.Fatalf("direction after 1 unit = %v, want 90", s.Dir)
	}
	if !s.Animating {
		t.Fatalf("sprite not animating after first firing")
	}

	st.advance(t0.Add(2*time.Second), 0.016)
	if s.Dir != 180 {
		t.Fatalf("direction after 2 units = %v, want 180", s.Dir)
	}

	st.advance(t0.Add(3*time.Second), 0.016)
	if s.Animating {
		t.Fatalf("sprite still animating after rest event")
	}
	if s.VX != 0 || s.VY != 0 {
		t.Fatalf("velocity not zeroed at rest: (%v,%v)", s.VX, s.VY)
	}
}

func TestSequencer_MoveXThenStepperMoves(t *testing.T) {
	st := newTestStage(t)
	s := placeSprite(st, KindCat, 100, 100)
	st.programs[s.ID] = []ActionBlock{{ID: "a-001", Kind: ActionMoveX, Amount: 100}}

	st.play(t0)
	st.advance(t0.Add(1*time.Second), 0.5) // fires MOVE_X, then steps this tick

	if s.VX != 100 {
		t.Fatalf("VX = %v, want 100", s.VX)
	}
	if s.X != 150 {
		t.Fatalf("X = %v, want 150 (moved by velocity, not by the action)", s.X)
	}
}

func TestSequencer_MoveStepsUsesHeading(t *testing.T) {
	st := newTestStage(t)
	s := placeSprite(st, KindCat, 240, 180)
	s.Dir = 90 // facing right
	st.programs[s.ID] = []ActionBlock{{ID: "a-001", Kind: ActionMoveSteps, Amount: 100}}

	st.play(t0)
	st.advance(t0.Add(1*time.Second), 0)

	if math.Abs(s.VX-100) > 1e-9 || math.Abs(s.VY) > 1e-9 {
		t.Fatalf("velocity = (%v,%v), want (100,0)", s.VX, s.VY)
	}
}

func TestSequencer_MoveStepsRepeatMultiplies(t *testing.T) {
	st := newTestStage(t)
	s := placeSprite(st, KindCat, 240, 180)
	s.Dir = 180 // facing down
	st.programs[s.ID] = []ActionBlock{{ID: "a-001", Kind: ActionMoveSteps, Amount: 20, Repeat: 3}}

	st.play(t0)
	st.advance(t0.Add(1*time.Second), 0)

	if math.Abs(s.VY-60) > 1e-9 {
		t.Fatalf("VY = %v, want 60", s.VY)
	}
}

func TestSequencer_TurnWrapsNonNegative(t *testing.T) {
	st := newTestStage(t)
	s := placeSprite(st, KindCat, 240, 180)
	s.Dir = 350

	st.applyAction(s, ActionBlock{Kind: ActionTurn, Amount: 20}, t0)
	if s.Dir != 10 {
		t.Fatalf("350+20 -> %v, want 10", s.Dir)
	}
	st.applyAction(s, ActionBlock{Kind: ActionTurn, Amount: -40}, t0)
	if s.Dir != 330 {
		t.Fatalf("10-40 -> %v, want 330", s.Dir)
	}
}

func TestSequencer_GoToClampsToStage(t *testing.T) {
	st := newTestStage(t)
	s := placeSprite(st, KindCat, 100, 100)

	st.applyAction(s, ActionBlock{Kind: ActionGoTo, X: 9000, Y: -50}, t0)

	if s.X != st.width || s.Y != 0 {
		t.Fatalf("jump landed at (%v,%v), want clamped (%v,0)", s.X, s.Y, st.width)
	}
}

func TestSequencer_GoRandomStaysInterior(t *testing.T) {
	st := newTestStage(t)
	s := placeSprite(st, KindCat, 100, 100)
	m := st.cfg.SpawnMargin

	for i := 0; i < 50; i++ {
		st.applyAction(s, ActionBlock{Kind: ActionGoRandom}, t0)
		if s.X < m || s.X > st.width-m || s.Y < m || s.Y > st.height-m {
			t.Fatalf("random jump %d left the interior: (%v,%v)", i, s.X, s.Y)
		}
	}
}

// Spec scale-floor property: eleven -0.1 steps from 1.0 end at the floor,
// never at zero or below.
func TestSequencer_GrowFloor(t *testing.T) {
	st := newTestStage(t)
	s := placeSprite(st, KindCat, 240, 180)

	for i := 0; i < 11; i++ {
		st.applyAction(s, ActionBlock{Kind: ActionGrow, Amount: -0.1}, t0)
		if s.Scale < st.cfg.ScaleFloor {
			t.Fatalf("step %d: scale %v dropped below floor %v", i, s.Scale, st.cfg.ScaleFloor)
		}
	}
	if math.Abs(s.Scale-st.cfg.ScaleFloor) > 1e-9 {
		t.Fatalf("final scale = %v, want floor %v", s.Scale, st.cfg.ScaleFloor)
	}
}

func TestSequencer_SayFallbackAndClear(t *testing.T) {
	st := newTestStage(t)
	s := placeSprite(st, KindCat, 240, 180)
	st.programs[s.ID] = []ActionBlock{{ID: "a-001", Kind: ActionSay}}

	st.play(t0)
	st.advance(t0.Add(1*time.Second), 0.016)
	if s.Saying != st.cfg.Greeting {
		t.Fatalf("saying = %q, want greeting fallback %q", s.Saying, st.cfg.Greeting)
	}

	// Default duration is SaySeconds; still visible before it elapses.
	st.advance(t0.Add(2*time.Second), 0.016)
	if s.Saying == "" {
		t.Fatalf("saying cleared before its duration")
	}
	st.advance(t0.Add(3100*time.Millisecond), 0.016)
	if s.Saying != "" {
		t.Fatalf("saying %q not cleared after duration", s.Saying)
	}
}

func TestSequencer_SayAuthoredTextAndDuration(t *testing.T) {
	st := newTestStage(t)
	s := placeSprite(st, KindCat, 240, 180)

	st.applyAction(s, ActionBlock{Kind: ActionSay, Text: "hi!", Seconds: 0.5}, t0)
	if s.Saying != "hi!" {
		t.Fatalf("saying = %q", s.Saying)
	}

	st.advance(t0.Add(600*time.Millisecond), 0.016)
	if s.Saying != "" {
		t.Fatalf("authored say not cleared after 0.5s")
	}
}

func TestSequencer_DeletedSpriteEventIsNoop(t *testing.T) {
	st := newTestStage(t)
	s := placeSprite(st, KindCat, 240, 180)
	st.programs[s.ID] = []ActionBlock{{ID: "a-001", Kind: ActionMoveX, Amount: 100}}

	st.play(t0)
	st.removeSprite(s.ID)

	// Pending events for the deleted id fire into nothing.
	st.advance(t0.Add(1*time.Second), 0.016)
	st.advance(t0.Add(2*time.Second), 0.016)
	if len(st.sprites) != 0 {
		t.Fatalf("sprite resurrected")
	}
}

// Editing a queue during playback re-anchors the whole schedule at the edit
// time; events from the old pass must not fire.
func TestSequencer_QueueEditReanchors(t *testing.T) {
	st := newTestStage(t)
	s := placeSprite(st, KindCat, 240, 180)
	st.programs[s.ID] = []ActionBlock{{ID: "a-001", Kind: ActionTurn, Amount: 90}}

	st.play(t0)
	tEdit := t0.Add(500 * time.Millisecond)
	if !st.appendAction(s.ID, ActionBlock{ID: "a-002", Kind: ActionTurn, Amount: 90}, tEdit) {
		t.Fatalf("append failed")
	}

	// The original t0+1s firing was dropped by the re-anchor.
	st.advance(t0.Add(1200*time.Millisecond), 0.016)
	if s.Dir != 0 {
		t.Fatalf("direction = %v before the re-anchored firing", s.Dir)
	}

	st.advance(tEdit.Add(1*time.Second), 0.016)
	if s.Dir != 90 {
		t.Fatalf("direction = %v, want 90 one interval after the edit", s.Dir)
	}
	st.advance(tEdit.Add(2*time.Second), 0.016)
	if s.Dir != 180 {
		t.Fatalf("direction = %v, want 180 two intervals after the edit", s.Dir)
	}
}
