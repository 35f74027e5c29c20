package stage

import (
	"time"

	"spritelab.dev/internal/sim/geom"
)

// resolveCollisions scans every unordered sprite pair in ascending index
// order and resolves overlaps one pair at a time. Later pairs observe the
// already-updated state of earlier ones, so a sprite overlapping two others
// in the same frame resolves order-dependently. Known limitation, kept.
func (st *Stage) resolveCollisions(now time.Time) {
	for i := 0; i < len(st.sprites); i++ {
		for j := i + 1; j < len(st.sprites); j++ {
			a := st.sprites[i]
			b := st.sprites[j]
			sideA := st.cfg.BaseSize * a.Scale
			sideB := st.cfg.BaseSize * b.Scale
			if !geom.SquaresOverlap(a.X, a.Y, sideA, b.X, b.Y, sideB) {
				continue
			}
			st.counters.Collisions.Add(1)

			// Full velocity exchange, not a physical reflection.
			a.VX, b.VX = b.VX, a.VX
			a.VY, b.VY = b.VY, a.VY

			adx, ady, bdx, bdy := geom.Separate(a.X, a.Y, b.X, b.Y, (sideA+sideB)/2)
			a.X = geom.Clamp(a.X+adx, 0, st.width)
			a.Y = geom.Clamp(a.Y+ady, 0, st.height)
			b.X = geom.Clamp(b.X+bdx, 0, st.width)
			b.Y = geom.Clamp(b.Y+bdy, 0, st.height)

			a.Saying = st.cfg.CollisionTextA
			b.Saying = st.cfg.CollisionTextB
			clearAt := now.Add(st.sayClearDelay())
			st.sched.schedule(clearAt, a.ID, effectClearSay, ActionBlock{})
			st.sched.schedule(clearAt, b.ID, effectClearSay, ActionBlock{})

			// The pair's remaining programs exchange ownership. In-flight
			// scheduled actions captured at trigger time are unaffected.
			st.programs[a.ID], st.programs[b.ID] = st.programs[b.ID], st.programs[a.ID]
		}
	}
}
