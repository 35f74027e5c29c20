package stage

import (
	"fmt"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"spritelab.dev/internal/protocol"
	"spritelab.dev/internal/sim/tuning"
)

// Stage is the authoritative simulation state: the sprite store, the
// per-sprite action queues, the playback flag, and the event schedule.
// All state must be accessed only from the stage loop goroutine; other
// goroutines talk to it through the channels in loop.go.
type Stage struct {
	cfg    tuning.Tuning
	logger *log.Logger

	// Stage bounds. Mutable via the RESIZE command and read at each tick,
	// never cached by the stepper.
	width, height float64

	// Ascending slice order is the deterministic pair-evaluation order for
	// the collision resolver.
	sprites  []*Sprite
	programs map[string][]ActionBlock
	selected string

	playing bool
	sched   scheduler

	rng   *rand.Rand
	frame uint64

	nextSpriteNum uint64
	nextBlockNum  uint64

	counters Counters
	frameLog FrameLogger

	commands chan CommandEnvelope
	watch    chan WatchRequest
	unwatch  chan string
	stop     chan struct{}

	watchers       map[string]chan []byte
	nextWatcherNum uint64
}

// Counters are the only stage state readable from other goroutines.
type Counters struct {
	Frames          atomic.Uint64
	EventsFired     atomic.Uint64
	Collisions      atomic.Uint64
	CommandsApplied atomic.Uint64
	CommandsDropped atomic.Uint64
}

type CountersSnapshot struct {
	Frames          uint64 `json:"frames"`
	EventsFired     uint64 `json:"events_fired"`
	Collisions      uint64 `json:"collisions"`
	CommandsApplied uint64 `json:"commands_applied"`
	CommandsDropped uint64 `json:"commands_dropped"`
}

func (c *Counters) Snapshot() CountersSnapshot {
	return CountersSnapshot{
		Frames:          c.Frames.Load(),
		EventsFired:     c.EventsFired.Load(),
		Collisions:      c.Collisions.Load(),
		CommandsApplied: c.CommandsApplied.Load(),
		CommandsDropped: c.CommandsDropped.Load(),
	}
}

// FrameRecord is one trace entry: the commands applied at a tick boundary
// and the render snapshot the tick produced.
type FrameRecord struct {
	Frame    uint64                `json:"frame"`
	Playing  bool                  `json:"playing"`
	Commands []protocol.CommandMsg `json:"commands,omitempty"`
	Sprites  []protocol.SpriteView `json:"sprites"`
}

// FrameLogger receives every frame record. Implemented in internal/trace.
type FrameLogger interface {
	WriteFrame(FrameRecord) error
}

func New(cfg tuning.Tuning, seed int64, logger *log.Logger) *Stage {
	if logger == nil {
		logger = log.Default()
	}
	return &Stage{
		cfg:      cfg,
		logger:   logger,
		width:    cfg.StageWidth,
		height:   cfg.StageHeight,
		programs: make(map[string][]ActionBlock),
		rng:      rand.New(rand.NewSource(seed)),
		commands: make(chan CommandEnvelope, 64),
		watch:    make(chan WatchRequest),
		unwatch:  make(chan string),
		stop:     make(chan struct{}),
		watchers: make(map[string]chan []byte),
	}
}

// SetFrameLogger attaches a trace sink. Must be called before Run.
func (st *Stage) SetFrameLogger(l FrameLogger) { st.frameLog = l }

func (st *Stage) Counters() *Counters { return &st.counters }

func (st *Stage) Params() protocol.StageParams {
	return protocol.StageParams{
		Width:            st.width,
		Height:           st.height,
		TickRateHz:       st.cfg.TickRateHz,
		BaseSize:         st.cfg.BaseSize,
		ScaleFloor:       st.cfg.ScaleFloor,
		ActionIntervalMs: st.cfg.ActionIntervalMs,
		SayClearMs:       st.cfg.SayClearMs,
	}
}

func (st *Stage) actionInterval() time.Duration {
	return time.Duration(st.cfg.ActionIntervalMs) * time.Millisecond
}

func (st *Stage) sayClearDelay() time.Duration {
	return time.Duration(st.cfg.SayClearMs) * time.Millisecond
}

func (st *Stage) spriteByID(id string) *Sprite {
	for _, s := range st.sprites {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// interiorPoint picks a uniformly random point inside the spawn margin.
// Shared by sprite creation and the GO_RANDOM action.
func (st *Stage) interiorPoint() (float64, float64) {
	m := st.cfg.SpawnMargin
	w := st.width - 2*m
	h := st.height - 2*m
	if w <= 0 || h <= 0 {
		return st.width / 2, st.height / 2
	}
	return m + st.rng.Float64()*w, m + st.rng.Float64()*h
}

func (st *Stage) addSprite(kind Kind) *Sprite {
	st.nextSpriteNum++
	x, y := st.interiorPoint()
	s := &Sprite{
		ID:    fmt.Sprintf("s-%03d", st.nextSpriteNum),
		Kind:  kind,
		X:     x,
		Y:     y,
		Scale: 1,
	}
	st.sprites = append(st.sprites, s)
	st.programs[s.ID] = nil
	return s
}

// removeSprite deletes a sprite, its program, and any selection pointing at
// it. Events still scheduled for the id become no-ops when they fire.
func (st *Stage) removeSprite(id string) {
	for i, s := range st.sprites {
		if s.ID != id {
			continue
		}
		st.sprites = append(st.sprites[:i], st.sprites[i+1:]...)
		delete(st.programs, id)
		if st.selected == id {
			st.selected = ""
		}
		return
	}
}

func (st *Stage) appendAction(spriteID string, block ActionBlock, now time.Time) bool {
	if st.spriteByID(spriteID) == nil {
		return false
	}
	st.programs[spriteID] = append(st.programs[spriteID], block)
	if st.playing {
		st.reanchorPrograms(now)
	}
	return true
}

func (st *Stage) removeAction(spriteID, blockID string, now time.Time) bool {
	prog := st.programs[spriteID]
	for i, b := range prog {
		if b.ID != blockID {
			continue
		}
		st.programs[spriteID] = append(prog[:i], prog[i+1:]...)
		if st.playing {
			st.reanchorPrograms(now)
		}
		return true
	}
	return false
}

func (st *Stage) selectSprite(id string) bool {
	if id == "" {
		st.selected = ""
		return true
	}
	if st.spriteByID(id) == nil {
		return false
	}
	st.selected = id
	return true
}

// resize updates the stage bounds and clamps every sprite back inside.
func (st *Stage) resize(w, h float64) {
	st.width = w
	st.height = h
	for _, s := range st.sprites {
		if s.X > w {
			s.X = w
		}
		if s.Y > h {
			s.Y = h
		}
	}
}

func (st *Stage) newBlockID() string {
	st.nextBlockNum++
	return fmt.Sprintf("a-%03d", st.nextBlockNum)
}
