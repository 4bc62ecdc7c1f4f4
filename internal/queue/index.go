// Package queue - index.go
// Two-level ordered index: track name -> (queue ID -> queue).
// Not synchronized; every method is called under the Manager mutex.
package queue

import "github.com/google/uuid"

type trackQueues struct {
	order []uuid.UUID
	byID  map[uuid.UUID]*RaceQueue
}

type index struct {
	tracks  []string
	byTrack map[string]*trackQueues
}

func newIndex() *index {
	return &index{byTrack: make(map[string]*trackQueues)}
}

func (ix *index) len() int {
	n := 0
	for _, tq := range ix.byTrack {
		n += len(tq.order)
	}
	return n
}

func (ix *index) get(track string, id uuid.UUID) (*RaceQueue, bool) {
	tq, ok := ix.byTrack[track]
	if !ok {
		return nil, false
	}
	q, ok := tq.byID[id]
	return q, ok
}

// put inserts q under its own track/ID. Replacing an existing entry keeps
// its position.
func (ix *index) put(q *RaceQueue) {
	tq, ok := ix.byTrack[q.Track()]
	if !ok {
		tq = &trackQueues{byID: make(map[uuid.UUID]*RaceQueue)}
		ix.byTrack[q.Track()] = tq
		ix.tracks = append(ix.tracks, q.Track())
	}
	if _, exists := tq.byID[q.ID()]; !exists {
		tq.order = append(tq.order, q.ID())
	}
	tq.byID[q.ID()] = q
}

// remove unindexes the entry and drops the track once it has no queues.
func (ix *index) remove(track string, id uuid.UUID) (*RaceQueue, bool) {
	tq, ok := ix.byTrack[track]
	if !ok {
		return nil, false
	}
	q, ok := tq.byID[id]
	if !ok {
		return nil, false
	}
	delete(tq.byID, id)
	for i, qid := range tq.order {
		if qid == id {
			tq.order = append(tq.order[:i], tq.order[i+1:]...)
			break
		}
	}
	if len(tq.order) == 0 {
		ix.dropTrack(track)
	}
	return q, true
}

func (ix *index) dropTrack(track string) {
	delete(ix.byTrack, track)
	for i, t := range ix.tracks {
		if t == track {
			ix.tracks = append(ix.tracks[:i], ix.tracks[i+1:]...)
			return
		}
	}
}

// trackQueues returns the queues of one track in insertion order, filtered by
// keep when it is non-nil. The result is a fresh slice.
func (ix *index) trackQueues(track string, keep func(*RaceQueue) bool) []*RaceQueue {
	tq, ok := ix.byTrack[track]
	if !ok {
		return []*RaceQueue{}
	}
	out := make([]*RaceQueue, 0, len(tq.order))
	for _, id := range tq.order {
		q := tq.byID[id]
		if keep == nil || keep(q) {
			out = append(out, q)
		}
	}
	return out
}

// all walks tracks then queues, both in insertion order.
func (ix *index) all(keep func(*RaceQueue) bool) []*RaceQueue {
	out := make([]*RaceQueue, 0, ix.len())
	for _, t := range ix.tracks {
		out = append(out, ix.trackQueues(t, keep)...)
	}
	return out
}

// first returns the first queue of track accepted by keep.
func (ix *index) first(track string, keep func(*RaceQueue) bool) (*RaceQueue, bool) {
	tq, ok := ix.byTrack[track]
	if !ok {
		return nil, false
	}
	for _, id := range tq.order {
		if q := tq.byID[id]; keep(q) {
			return q, true
		}
	}
	return nil, false
}

func (ix *index) trackNames() []string {
	return append([]string{}, ix.tracks...)
}

func (ix *index) reset() {
	ix.tracks = nil
	ix.byTrack = make(map[string]*trackQueues)
}
