package stage

import (
	"container/heap"
	"time"
)

// The stage runs every piece of deferred work (sequencer firings, the
// post-sequence rest, collision say-clears) through one priority queue of
// events instead of parallel timer registries. Cancellation on stop or
// reset is then a single clear of the queue.

type effectKind int

const (
	effectAction effectKind = iota
	effectRest
	effectClearSay
)

type event struct {
	at       time.Time
	seq      uint64 // schedule order, breaks ties at equal fire times
	spriteID string
	kind     effectKind
	block    ActionBlock // effectAction only
}

type eventHeap []event

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if h[i].at.Equal(h[j].at) {
		return h[i].seq < h[j].seq
	}
	return h[i].at.Before(h[j].at)
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) { *h = append(*h, x.(event)) }

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	ev := old[n-1]
	*h = old[:n-1]
	return ev
}

type scheduler struct {
	heap eventHeap
	seq  uint64
}

func (sc *scheduler) schedule(at time.Time, spriteID string, kind effectKind, block ActionBlock) {
	sc.seq++
	heap.Push(&sc.heap, event{at: at, seq: sc.seq, spriteID: spriteID, kind: kind, block: block})
}

// popDue removes and returns the earliest event not after now.
func (sc *scheduler) popDue(now time.Time) (event, bool) {
	if len(sc.heap) == 0 || sc.heap[0].at.After(now) {
		return event{}, false
	}
	return heap.Pop(&sc.heap).(event), true
}

// clear drops every pending event. This is the whole cancellation story for
// a stop or reset: nothing scheduled before the transition can fire after it.
func (sc *scheduler) clear() {
	sc.heap = sc.heap[:0]
}

// dropProgramEvents removes pending action and rest events, keeping
// collision say-clears alive. Used when the sequencer re-anchors after a
// queue edit during playback.
func (sc *scheduler) dropProgramEvents() {
	kept := sc.heap[:0]
	for _, ev := range sc.heap {
		if ev.kind == effectClearSay {
			kept = append(kept, ev)
		}
	}
	sc.heap = kept
	heap.Init(&sc.heap)
}

func (sc *scheduler) pending() int { return len(sc.heap) }
