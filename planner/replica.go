package planner

import (
	"sort"
	"sync"

	"mappa/models"
)

// Store is the local replica of every poi visible to this client. The flat
// map is the single source of truth; pool and per-day views are always derived
// from it, never maintained as separate lists.
type Store struct {
	mu   sync.RWMutex
	pois map[string]*models.Poi
	days map[string]models.PlanDay
	subs []func()
}

func NewStore() *Store {
	return &Store{
		pois: make(map[string]*models.Poi),
		days: make(map[string]models.PlanDay),
	}
}

// Subscribe registers fn to run after every mutation. Used by the presence
// layer to clear hover highlights that point at deleted pois.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

// SetDays replaces the known plan-day containers, as fetched over REST.
func (s *Store) SetDays(days []models.PlanDay) {
	s.mu.Lock()
	s.days = make(map[string]models.PlanDay, len(days))
	for _, d := range days {
		s.days[d.PlanDayID] = d
	}
	s.mu.Unlock()
}

func (s *Store) hasDay(id string) bool {
	s.mu.RLock()
	_, ok := s.days[id]
	s.mu.RUnlock()
	return ok
}

// Get returns a single poi by id.
func (s *Store) Get(id string) (models.Poi, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pois[id]
	if !ok {
		return models.Poi{}, false
	}
	return *p, true
}

// Marked returns the unassigned pool, sorted by sequence.
func (s *Store) Marked() []models.Poi {
	return s.byContainer(models.StatusMarked, "")
}

// ForDay returns the pois scheduled on one plan day, sorted by sequence.
func (s *Store) ForDay(dayID string) []models.Poi {
	return s.byContainer(models.StatusScheduled, dayID)
}

func (s *Store) byContainer(status models.PoiStatus, dayID string) []models.Poi {
	s.mu.RLock()
	out := make([]models.Poi, 0)
	for _, p := range s.pois {
		if p.Status == status && p.PlanDayID == dayID {
			out = append(out, *p)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Sequence != out[j].Sequence {
			return out[i].Sequence < out[j].Sequence
		}
		return out[i].PoiID < out[j].PoiID
	})
	return out
}

// All returns every poi in the replica, in no particular order.
func (s *Store) All() []models.Poi {
	s.mu.RLock()
	out := make([]models.Poi, 0, len(s.pois))
	for _, p := range s.pois {
		out = append(out, *p)
	}
	s.mu.RUnlock()
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pois)
}

// ReplaceAll swaps the whole collection for a server snapshot. Unconfirmed
// optimistic entries are discarded along with everything else; the snapshot is
// the system's only full-consistency checkpoint.
func (s *Store) ReplaceAll(pois []models.Poi) {
	s.mu.Lock()
	s.pois = make(map[string]*models.Poi, len(pois))
	for i := range pois {
		p := pois[i]
		p.IsPersisted = true
		s.pois[p.PoiID] = &p
	}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) put(p models.Poi) {
	s.mu.Lock()
	s.pois[p.PoiID] = &p
	s.mu.Unlock()
	s.notify()
}

func (s *Store) remove(id string) bool {
	s.mu.Lock()
	_, ok := s.pois[id]
	delete(s.pois, id)
	s.mu.Unlock()
	if ok {
		s.notify()
	}
	return ok
}

// swap replaces a provisional entry with the authoritative record, keeping a
// single entry under the permanent id.
func (s *Store) swap(provisionalID string, p models.Poi) {
	s.mu.Lock()
	delete(s.pois, provisionalID)
	p.IsPersisted = true
	s.pois[p.PoiID] = &p
	s.mu.Unlock()
	s.notify()
}

// setContainer retags a poi into another container with the given sequence.
func (s *Store) setContainer(id string, status models.PoiStatus, dayID string, seq int) bool {
	s.mu.Lock()
	p, ok := s.pois[id]
	if ok {
		p.Status = status
		p.PlanDayID = dayID
		p.Sequence = seq
	}
	s.mu.Unlock()
	if ok {
		s.notify()
	}
	return ok
}

// nextSequence returns an append position for a container.
func (s *Store) nextSequence(status models.PoiStatus, dayID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, p := range s.pois {
		if p.Status == status && p.PlanDayID == dayID {
			n++
		}
	}
	return n
}

// applyOrder rewrites sequence = index for every listed id whose current
// container matches; ids elsewhere (or unknown) are left untouched. An empty
// dayID addresses the pool.
func (s *Store) applyOrder(dayID string, orderedIDs []string) {
	status := models.StatusMarked
	if dayID != "" {
		status = models.StatusScheduled
	}

	s.mu.Lock()
	for i, id := range orderedIDs {
		p, ok := s.pois[id]
		if !ok {
			continue
		}
		if p.Status != status || p.PlanDayID != dayID {
			continue
		}
		p.Sequence = i
	}
	s.mu.Unlock()
	s.notify()
}
