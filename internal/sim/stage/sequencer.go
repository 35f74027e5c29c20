package stage

import (
	"math"
	"time"

	"spritelab.dev/internal/sim/geom"
)

// schedulePrograms reads every sprite's queue once and schedules its blocks
// at the fixed cadence: block i fires (i+1) intervals after the anchor, and
// one rest event one further interval after the last block brings the
// sprite back to rest.
func (st *Stage) schedulePrograms(anchor time.Time) {
	interval := st.actionInterval()
	for _, s := range st.sprites {
		prog := st.programs[s.ID]
		if len(prog) == 0 {
			continue
		}
		for i, block := range prog {
			st.sched.schedule(anchor.Add(time.Duration(i+1)*interval), s.ID, effectAction, block)
		}
		st.sched.schedule(anchor.Add(time.Duration(len(prog)+1)*interval), s.ID, effectRest, ActionBlock{})
	}
}

// reanchorPrograms re-runs the scheduling pass after a queue edit during
// playback. Pending action and rest events are dropped and every program is
// rescheduled from the edit time; collision say-clears stay live.
func (st *Stage) reanchorPrograms(now time.Time) {
	st.sched.dropProgramEvents()
	st.schedulePrograms(now)
}

// applyEvent dispatches one due event. A sprite deleted while the event was
// pending makes it a no-op.
func (st *Stage) applyEvent(ev event, now time.Time) {
	s := st.spriteByID(ev.spriteID)
	if s == nil {
		return
	}
	switch ev.kind {
	case effectClearSay:
		s.Saying = ""
	case effectRest:
		s.VX, s.VY = 0, 0
		s.Animating = false
	case effectAction:
		st.applyAction(s, ev.block, now)
	}
}

func (st *Stage) applyAction(s *Sprite, b ActionBlock, now time.Time) {
	// Every firing marks the sprite as animating so the stepper moves it.
	s.Animating = true

	switch b.Kind {
	case ActionMoveX:
		s.VX = b.Amount
	case ActionMoveY:
		s.VY = b.Amount
	case ActionMoveSteps:
		mag := b.Amount
		if b.Repeat > 1 {
			mag *= float64(b.Repeat)
		}
		s.VX, s.VY = geom.HeadingVector(mag, s.Dir)
	case ActionTurn:
		s.Dir = geom.NormalizeDegrees(s.Dir + b.Amount)
	case ActionGoTo:
		s.X = geom.Clamp(b.X, 0, st.width)
		s.Y = geom.Clamp(b.Y, 0, st.height)
	case ActionGoRandom:
		s.X, s.Y = st.interiorPoint()
	case ActionGrow:
		s.Scale = math.Max(st.cfg.ScaleFloor, s.Scale+b.Amount)
	case ActionSay:
		text := b.Text
		if text == "" {
			text = st.cfg.Greeting
		}
		s.Saying = text
		secs := b.Seconds
		if secs <= 0 {
			secs = st.cfg.SaySeconds
		}
		clearAt := now.Add(time.Duration(secs * float64(time.Second)))
		st.sched.schedule(clearAt, s.ID, effectClearSay, ActionBlock{})
	}
}
