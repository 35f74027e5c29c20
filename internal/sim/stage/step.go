package stage

import (
	"time"

	"spritelab.dev/internal/sim/geom"
)

// advance runs one simulation tick: due events fire first, then the
// continuous stepper, then the collision resolver, so the resolver always
// sees this tick's positions.
func (st *Stage) advance(now time.Time, dt float64) {
	st.frame++
	st.counters.Frames.Add(1)

	for {
		ev, ok := st.sched.popDue(now)
		if !ok {
			break
		}
		st.applyEvent(ev, now)
		st.counters.EventsFired.Add(1)
	}

	if !st.playing {
		return
	}
	st.stepSprites(dt)
	st.resolveCollisions(now)
}

// stepSprites integrates position from velocity for animating sprites,
// reflecting velocity on whichever axis crosses a wall. Position is clamped
// to the stage rectangle whether or not a bounce happened.
func (st *Stage) stepSprites(dt float64) {
	for _, s := range st.sprites {
		if !s.Animating {
			continue
		}
		nx := s.X + s.VX*dt
		ny := s.Y + s.VY*dt
		if nx <= 0 || nx >= st.width {
			s.VX = -s.VX
		}
		if ny <= 0 || ny >= st.height {
			s.VY = -s.VY
		}
		s.X = geom.Clamp(nx, 0, st.width)
		s.Y = geom.Clamp(ny, 0, st.height)
	}
}
