package planner

import (
	"reflect"
	"testing"

	"mappa/models"
	"mappa/protocol"
)

func TestProvisionalSwapRoundTrip(t *testing.T) {
	s, _, d := newTestDispatcher()
	rc := NewReconciler(s)

	provisional := d.Mark(models.PoiDescriptor{PlaceName: "Louvre"})

	confirmed := models.Poi{
		PoiID:     "q1",
		Status:    models.StatusMarked,
		PlaceName: "Louvre",
		Sequence:  0,
	}
	rc.Apply(protocol.Event{
		Kind:          protocol.KindMarked,
		Poi:           &confirmed,
		ProvisionalID: provisional,
	})

	if _, ok := s.Get(provisional); ok {
		t.Fatal("provisional entry must be gone after reconciliation")
	}
	p, ok := s.Get("q1")
	if !ok {
		t.Fatal("permanent entry missing")
	}
	if !p.IsPersisted {
		t.Fatal("reconciled entry must be persisted")
	}
	if s.Len() != 1 {
		t.Fatalf("expected exactly one entry, got %d", s.Len())
	}
}

func TestMarkedIdempotent(t *testing.T) {
	s := NewStore()
	rc := NewReconciler(s)

	poi := models.Poi{PoiID: "q1", Status: models.StatusMarked, Sequence: 0}
	ev := protocol.Event{Kind: protocol.KindMarked, Poi: &poi}

	rc.Apply(ev)
	once := s.All()
	rc.Apply(ev)
	twice := s.All()

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("duplicate marked changed state: %+v vs %+v", once, twice)
	}
}

func TestUnmarkedMissingIsNoop(t *testing.T) {
	s := NewStore()
	rc := NewReconciler(s)
	s.put(models.Poi{PoiID: "a", Status: models.StatusMarked})

	rc.Apply(protocol.Event{Kind: protocol.KindUnmarked, PoiID: "nope"})
	if s.Len() != 1 {
		t.Fatal("unknown unmarked must not touch other entries")
	}

	rc.Apply(protocol.Event{Kind: protocol.KindUnmarked, PoiID: "a"})
	rc.Apply(protocol.Event{Kind: protocol.KindUnmarked, PoiID: "a"}) // duplicate
	if s.Len() != 0 {
		t.Fatal("unmarked must remove the entry")
	}
}

func TestScheduleNotificationsIdempotent(t *testing.T) {
	s := NewStore()
	rc := NewReconciler(s)
	s.put(models.Poi{PoiID: "a", Status: models.StatusMarked, Sequence: 0})

	add := protocol.Event{Kind: protocol.KindScheduleAdded, PoiID: "a", PlanDayID: "d1"}
	rc.Apply(add)
	first, _ := s.Get("a")
	rc.Apply(add)
	second, _ := s.Get("a")

	if first != second {
		t.Fatalf("duplicate scheduleAdded changed state: %+v vs %+v", first, second)
	}
	if second.Status != models.StatusScheduled || second.PlanDayID != "d1" {
		t.Fatalf("unexpected state after scheduleAdded: %+v", second)
	}

	rc.Apply(protocol.Event{Kind: protocol.KindScheduleRemoved, PoiID: "a"})
	back, _ := s.Get("a")
	if back.Status != models.StatusMarked || back.PlanDayID != "" {
		t.Fatalf("unexpected state after scheduleRemoved: %+v", back)
	}
}

func TestReorderedIdempotent(t *testing.T) {
	s := NewStore()
	rc := NewReconciler(s)
	for i, id := range []string{"a", "b", "c"} {
		s.put(models.Poi{PoiID: id, Status: models.StatusMarked, Sequence: i})
	}

	ev := protocol.Event{Kind: protocol.KindReordered, OrderedIDs: []string{"c", "a", "b"}}
	rc.Apply(ev)
	once := s.Marked()
	rc.Apply(ev)
	twice := s.Marked()

	if !reflect.DeepEqual(once, twice) {
		t.Fatal("duplicate reordered changed state")
	}
	if once[0].PoiID != "c" || once[1].PoiID != "a" || once[2].PoiID != "b" {
		t.Fatalf("unexpected order: %+v", once)
	}
}

func TestReorderedSkipsOtherContainers(t *testing.T) {
	s := NewStore()
	rc := NewReconciler(s)
	s.put(models.Poi{PoiID: "a", Status: models.StatusMarked, Sequence: 0})
	s.put(models.Poi{PoiID: "x", Status: models.StatusScheduled, PlanDayID: "d1", Sequence: 5})

	rc.Apply(protocol.Event{Kind: protocol.KindReordered, OrderedIDs: []string{"x", "a"}})

	x, _ := s.Get("x")
	if x.Sequence != 5 {
		t.Fatal("reordered must not touch ids outside the container")
	}
	a, _ := s.Get("a")
	if a.Sequence != 1 {
		t.Fatalf("pool member must take its list index, got %d", a.Sequence)
	}
}

func TestSyncDiscardsOptimisticState(t *testing.T) {
	s, _, d := newTestDispatcher()
	rc := NewReconciler(s)

	d.Mark(models.PoiDescriptor{PlaceName: "optimistic"})
	rc.Apply(protocol.Event{Kind: protocol.KindSync, Pois: []models.Poi{}})

	if s.Len() != 0 {
		t.Fatal("empty sync snapshot must clear every entry")
	}
}
