// Package matchmaking drives players through the race queues: it finds or
// creates a queue on join, arms a start countdown once a queue has enough
// players, and hands full or counted-down queues to a new race.
package matchmaking

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"

	"github.com/jose-valero/kart-queue-bot/internal/domain/events"
	"github.com/jose-valero/kart-queue-bot/internal/lifecycle"
	"github.com/jose-valero/kart-queue-bot/internal/queue"
	"github.com/jose-valero/kart-queue-bot/internal/race"
	"github.com/jose-valero/kart-queue-bot/internal/track"
	"github.com/jose-valero/kart-queue-bot/pkg/logger"
)

type Config struct {
	RaceLimit       int       // races allowed at once
	StartDelayTicks int       // countdown once a queue reaches its track's minimum
	DefaultMode     race.Mode // mode for queues created by an Auto join
}

type Service struct {
	mu         sync.Mutex
	queues     *queue.Manager
	catalog    *track.Catalog
	exec       lifecycle.Executor
	cfg        Config
	races      *Races
	countdowns map[uuid.UUID]*lifecycle.Timer
	now        func() time.Time
}

// New wires the service. exec receives countdown completions and must not run
// them inline; a nil exec falls back to starting ready queues on the
// following Tick.
func New(qm *queue.Manager, cat *track.Catalog, exec lifecycle.Executor, cfg Config) *Service {
	if exec == nil {
		exec = lifecycle.NewDeferred()
	}
	if cfg.RaceLimit <= 0 {
		cfg.RaceLimit = 1
	}
	if cfg.StartDelayTicks < 0 {
		cfg.StartDelayTicks = 0
	}
	if !cfg.DefaultMode.Concrete() {
		cfg.DefaultMode = race.Standard
	}
	return &Service{
		queues:     qm,
		catalog:    cat,
		exec:       exec,
		cfg:        cfg,
		races:      NewRaces(),
		countdowns: make(map[uuid.UUID]*lifecycle.Timer),
		now:        time.Now,
	}
}

func (s *Service) Queues() *queue.Manager  { return s.queues }
func (s *Service) Races() *Races           { return s.races }
func (s *Service) Catalog() *track.Catalog { return s.catalog }

// Join puts p in the first queue on trackName matching mode that has room,
// creating one when none does. A player waits in one queue at a time.
func (s *Service) Join(trackName string, mode race.Mode, p queue.Player) (*queue.RaceQueue, error) {
	tr, ok := s.catalog.Lookup(trackName)
	if !ok {
		return nil, ErrUnknownTrack
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, queued := s.queues.Locate(p.ID); queued {
		return nil, queue.ErrAlreadyIn
	}

	var target *queue.RaceQueue
	for _, q := range s.queues.TrackQueuesByMode(tr.Name, mode) {
		if q.Open() {
			target = q
			break
		}
	}
	if target == nil {
		q, err := s.newQueue(tr, mode)
		if err != nil {
			return nil, err
		}
		target = q
	}

	if err := target.Add(p); err != nil {
		return nil, err
	}
	logger.Infof("[queue] %s joined %s/%s (%d/%d)", p.Username, tr.Name, target.Mode(), target.Len(), target.Limit())
	return target, nil
}

// caller must hold s.mu
func (s *Service) newQueue(tr track.Track, mode race.Mode) (*queue.RaceQueue, error) {
	if mode == race.Auto {
		mode = s.cfg.DefaultMode
	}
	limit := tr.Limit
	if mode == race.TimeTrial {
		limit = 1
	}
	q, err := queue.NewRaceQueue(tr.Name, mode, limit)
	if err != nil {
		return nil, err
	}
	if err := s.queues.Register(q); err != nil {
		return nil, err
	}
	return q, nil
}

// Leave takes the player out of whatever queue they wait in. An emptied
// queue is torn down; otherwise later queues of the same track and mode are
// compacted forward.
func (s *Service) Leave(playerID string) (*queue.RaceQueue, error) {
	var cancelled *events.QueueCancelled

	s.mu.Lock()
	q, ok := s.queues.Locate(playerID)
	if !ok {
		s.mu.Unlock()
		return nil, queue.ErrNotIn
	}
	q.Remove(playerID)
	if q.Len() == 0 {
		s.queues.Remove(q)
		delete(s.countdowns, q.ID())
		cancelled = &events.QueueCancelled{QueueID: q.ID().String(), Track: q.Track(), Reason: "empty"}
	} else {
		s.queues.Compact(q.Track(), q.Mode())
	}
	s.mu.Unlock()

	if cancelled != nil {
		events.Publish(*cancelled)
	}
	return q, nil
}

// Kick is Leave on behalf of an admin.
func (s *Service) Kick(playerID string) (*queue.RaceQueue, error) {
	return s.Leave(playerID)
}

// Cancel tears down one queue. Unknown queues are ignored.
func (s *Service) Cancel(trackName string, id uuid.UUID) bool {
	s.mu.Lock()
	q, removed := s.queues.QueueByID(trackName, id)
	if removed {
		s.queues.Remove(q)
	}
	delete(s.countdowns, id)
	s.mu.Unlock()

	if removed {
		events.Publish(events.QueueCancelled{QueueID: id.String(), Track: trackName, Reason: "cancelled"})
	}
	return removed
}

// CancelTrack tears down every queue on a track and returns how many went.
func (s *Service) CancelTrack(trackName string) int {
	if tr, ok := s.catalog.Lookup(trackName); ok {
		trackName = tr.Name
	}
	n := 0
	for _, q := range s.queues.TrackQueues(trackName) {
		if s.Cancel(q.Track(), q.ID()) {
			n++
		}
	}
	return n
}

// ClearAll drops every queue and countdown. Races in progress are kept.
func (s *Service) ClearAll() {
	s.mu.Lock()
	s.queues.Clear()
	s.countdowns = make(map[uuid.UUID]*lifecycle.Timer)
	s.mu.Unlock()
}

// Finish closes an active race.
func (s *Service) Finish(raceID string) (Race, error) {
	rc, ok := s.races.Remove(raceID)
	if !ok {
		return Race{}, ErrRaceNotFound
	}
	events.Publish(events.RaceFinished{RaceID: rc.ID, Track: rc.Track})
	logger.Infof("[race] %s finished on %s", rc.ID, rc.Track)
	return rc, nil
}

// Countdown returns the ticks left before q starts, if a countdown is armed.
func (s *Service) Countdown(id uuid.UUID) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cd, ok := s.countdowns[id]
	if !ok {
		return 0, false
	}
	return cd.Expiry(), true
}

// Tick advances every queue by one step: full queues start right away,
// queues at their track's minimum count down, and queues below it disarm.
// It returns the races started during this tick.
func (s *Service) Tick() []Race {
	var started []Race

	s.mu.Lock()
	live := make(map[uuid.UUID]bool)
	for _, q := range s.queues.AllQueues() {
		live[q.ID()] = true
		cd := s.countdowns[q.ID()]
		n := q.Len()

		switch {
		case n >= q.Limit():
			if rc, ok := s.startLocked(q); ok {
				started = append(started, rc)
			}
		case n >= s.minPlayers(q):
			if cd == nil {
				cd = s.arm(q)
			}
			if cd.State() != lifecycle.Removed {
				cd.DecrementExpiry()
				continue
			}
			// counted down but held back by the race limit
			if rc, ok := s.startLocked(q); ok {
				started = append(started, rc)
			}
		default:
			delete(s.countdowns, q.ID())
		}
	}
	for id := range s.countdowns {
		if !live[id] {
			delete(s.countdowns, id)
		}
	}
	s.mu.Unlock()

	for _, rc := range started {
		s.announce(rc)
	}
	return started
}

// caller must hold s.mu
func (s *Service) arm(q *queue.RaceQueue) *lifecycle.Timer {
	trackName, id := q.Track(), q.ID()
	cd := lifecycle.NewTimer(s.exec,
		lifecycle.WithExpiry(s.cfg.StartDelayTicks+1),
		lifecycle.WithRelease(func() { s.startQueue(trackName, id) }),
	)
	s.countdowns[id] = cd
	logger.Debugf("[queue] countdown armed for %s on %s (%d ticks)", id, trackName, s.cfg.StartDelayTicks)
	return cd
}

func (s *Service) minPlayers(q *queue.RaceQueue) int {
	if tr, ok := s.catalog.Lookup(q.Track()); ok {
		return tr.MinPlayers
	}
	return q.Limit()
}

// startQueue runs on the deferred context when a countdown expires.
func (s *Service) startQueue(trackName string, id uuid.UUID) {
	s.mu.Lock()
	q, ok := s.queues.QueueByID(trackName, id)
	var rc Race
	if ok && q.Len() >= s.minPlayers(q) {
		rc, ok = s.startLocked(q)
	} else {
		ok = false
	}
	s.mu.Unlock()

	if ok {
		s.announce(rc)
	}
}

// startLocked moves q's players into a new race unless the race limit is
// reached, in which case q keeps waiting. Caller must hold s.mu.
func (s *Service) startLocked(q *queue.RaceQueue) (Race, bool) {
	if q.Len() == 0 {
		return Race{}, false
	}
	if s.races.Count() >= s.cfg.RaceLimit {
		return Race{}, false
	}
	rc := Race{
		ID:      ksuid.New().String(),
		Track:   q.Track(),
		Mode:    q.Mode(),
		Players: q.Players(),
		Started: s.now(),
	}
	s.races.Put(rc)
	s.queues.Remove(q)
	delete(s.countdowns, q.ID())
	return rc, true
}

func (s *Service) announce(rc Race) {
	names := make([]string, 0, len(rc.Players))
	for _, p := range rc.Players {
		names = append(names, p.Username)
	}
	logger.Infof("[race] %s started on %s (%s) with %d players", rc.ID, rc.Track, rc.Mode, len(names))
	events.Publish(events.RaceStarted{
		RaceID:  rc.ID,
		Track:   rc.Track,
		Mode:    string(rc.Mode),
		Players: names,
		At:      rc.Started,
	})
}
