package stage

import "time"

// Playback transitions. Stopping must cancel every scheduled event so no
// stale mutation lands after the user sees playback end; with the single
// event queue that is one clear.

func (st *Stage) play(now time.Time) {
	if st.playing {
		return
	}
	st.playing = true
	st.schedulePrograms(now)
	st.logger.Printf("playback started, %d sprites, %d scheduled events", len(st.sprites), st.sched.pending())
}

func (st *Stage) stopPlayback() {
	if !st.playing {
		return
	}
	st.playing = false
	st.sched.clear()
	st.logger.Printf("playback stopped")
}

// reset forces Stopped and empties everything: sprites, programs,
// selection, and the event queue.
func (st *Stage) reset() {
	st.playing = false
	st.sched.clear()
	st.sprites = nil
	st.programs = make(map[string][]ActionBlock)
	st.selected = ""
	st.logger.Printf("stage reset")
}
