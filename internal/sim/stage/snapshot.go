package stage

import (
	"encoding/json"

	"spritelab.dev/internal/protocol"
)

// stateMsg builds the read-only render snapshot for the current frame.
func (st *Stage) stateMsg() protocol.StateMsg {
	sprites := make([]protocol.SpriteView, 0, len(st.sprites))
	for _, s := range st.sprites {
		sprites = append(sprites, s.view())
	}
	return protocol.StateMsg{
		Type:            protocol.TypeState,
		ProtocolVersion: protocol.Version,
		Frame:           st.frame,
		Playing:         st.playing,
		Selected:        st.selected,
		Sprites:         sprites,
	}
}

// broadcastState sends the frame snapshot to every watcher and the trace
// sink. Slow watchers drop frames rather than stalling the loop.
func (st *Stage) broadcastState(applied []CommandEnvelope) {
	msg := st.stateMsg()

	if st.frameLog != nil {
		rec := FrameRecord{Frame: msg.Frame, Playing: msg.Playing, Sprites: msg.Sprites}
		for _, env := range applied {
			rec.Commands = append(rec.Commands, env.Cmd)
		}
		if err := st.frameLog.WriteFrame(rec); err != nil {
			st.logger.Printf("trace write: %v", err)
		}
	}

	if len(st.watchers) == 0 {
		return
	}
	b, err := json.Marshal(msg)
	if err != nil {
		st.logger.Printf("marshal state: %v", err)
		return
	}
	for _, out := range st.watchers {
		sendLatest(out, b)
	}
}

// sendLatest delivers b without blocking, dropping one queued message to
// make room if the channel is full.
func sendLatest(ch chan []byte, b []byte) {
	select {
	case ch <- b:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- b:
	default:
	}
}
