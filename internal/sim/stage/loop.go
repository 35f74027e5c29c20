package stage

import (
	"context"
	"fmt"
	"time"

	"spritelab.dev/internal/protocol"
)

// CommandEnvelope is one validated editor command queued for the next tick
// boundary.
type CommandEnvelope struct {
	SessionID string
	Cmd       protocol.CommandMsg
}

// WatchRequest registers a state-stream subscriber (an editor session).
type WatchRequest struct {
	ClientName string
	Out        chan []byte
	Resp       chan WatchResponse
}

type WatchResponse struct {
	SessionID string
	Params    protocol.StageParams
}

func (st *Stage) Inbox() chan<- CommandEnvelope { return st.commands }
func (st *Stage) Watch() chan<- WatchRequest    { return st.watch }
func (st *Stage) Unwatch() chan<- string        { return st.unwatch }

// Shutdown ends the run loop. Distinct from the STOP command, which only
// halts playback.
func (st *Stage) Shutdown() { close(st.stop) }

// Run drives the stage until the context ends or Shutdown is called.
// Commands are batched and applied at tick boundaries so a whole tick sees
// one consistent store.
func (st *Stage) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(st.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pending []CommandEnvelope
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-st.stop:
			return nil
		case req := <-st.watch:
			st.handleWatch(req)
		case id := <-st.unwatch:
			delete(st.watchers, id)
		case env := <-st.commands:
			pending = append(pending, env)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt <= 0 {
				dt = 1 / float64(st.cfg.TickRateHz)
			}
			last = now

			applied := pending[:0:0]
			for _, env := range pending {
				if st.applyCommand(env, now) {
					applied = append(applied, env)
				}
			}
			pending = pending[:0]

			st.advance(now, dt)
			st.broadcastState(applied)
		}
	}
}

func (st *Stage) handleWatch(req WatchRequest) {
	st.nextWatcherNum++
	id := fmt.Sprintf("w-%d", st.nextWatcherNum)
	if req.Out != nil {
		st.watchers[id] = req.Out
	}
	if req.Resp != nil {
		req.Resp <- WatchResponse{SessionID: id, Params: st.Params()}
	}
	st.logger.Printf("session %s joined (%s)", id, req.ClientName)
}

// applyCommand applies one command at the tick boundary. Commands that
// reference missing sprites are dropped; a still-pending command racing a
// deletion is expected, not an error.
func (st *Stage) applyCommand(env CommandEnvelope, now time.Time) bool {
	cmd := env.Cmd
	ok := true
	switch cmd.Op {
	case protocol.OpAddSprite:
		if validKind(Kind(cmd.Kind)) {
			st.addSprite(Kind(cmd.Kind))
		} else {
			ok = false
		}
	case protocol.OpRemoveSprite:
		st.removeSprite(cmd.SpriteID)
	case protocol.OpAppendAction:
		ok = st.appendAction(cmd.SpriteID, blockFromSpec(st.newBlockID(), *cmd.Action), now)
	case protocol.OpRemoveAction:
		ok = st.removeAction(cmd.SpriteID, cmd.ActionID, now)
	case protocol.OpSelect:
		ok = st.selectSprite(cmd.SpriteID)
	case protocol.OpResize:
		st.resize(cmd.Width, cmd.Height)
	case protocol.OpPlay:
		st.play(now)
	case protocol.OpStop:
		st.stopPlayback()
	case protocol.OpReset:
		st.reset()
	default:
		ok = false
	}

	if !ok {
		st.counters.CommandsDropped.Add(1)
		st.logger.Printf("dropped %s from %s (sprite %q)", cmd.Op, env.SessionID, cmd.SpriteID)
		return false
	}
	st.counters.CommandsApplied.Add(1)
	return true
}
