package planner

import (
	"testing"

	"mappa/models"
)

func poolPoi(id string, seq int) models.Poi {
	return models.Poi{PoiID: id, Status: models.StatusMarked, Sequence: seq, PlaceName: "p-" + id}
}

func dayPoi(id, dayID string, seq int) models.Poi {
	return models.Poi{PoiID: id, Status: models.StatusScheduled, PlanDayID: dayID, Sequence: seq}
}

func TestDerivedViews(t *testing.T) {
	s := NewStore()
	s.put(poolPoi("a", 1))
	s.put(poolPoi("b", 0))
	s.put(dayPoi("c", "d1", 0))
	s.put(dayPoi("d", "d2", 0))

	pool := s.Marked()
	if len(pool) != 2 || pool[0].PoiID != "b" || pool[1].PoiID != "a" {
		t.Fatalf("unexpected pool view: %+v", pool)
	}

	d1 := s.ForDay("d1")
	if len(d1) != 1 || d1[0].PoiID != "c" {
		t.Fatalf("unexpected day view: %+v", d1)
	}

	if _, ok := s.Get("d"); !ok {
		t.Fatal("expected poi d to be present")
	}
}

func TestSingleContainerInvariant(t *testing.T) {
	s := NewStore()
	s.put(poolPoi("x", 0))

	s.setContainer("x", models.StatusScheduled, "d1", 0)

	if len(s.Marked()) != 0 {
		t.Fatal("poi still counted in pool after scheduling")
	}
	if len(s.ForDay("d1")) != 1 {
		t.Fatal("poi not counted in day after scheduling")
	}
}

func TestReplaceAllEmptyClears(t *testing.T) {
	s := NewStore()
	s.put(poolPoi("a", 0))
	s.put(models.Poi{PoiID: "tmp-1", Status: models.StatusMarked, Sequence: 1}) // optimistic

	s.ReplaceAll(nil)

	if s.Len() != 0 {
		t.Fatalf("expected empty store after empty snapshot, got %d entries", s.Len())
	}
}

func TestReplaceAllMarksPersisted(t *testing.T) {
	s := NewStore()
	s.ReplaceAll([]models.Poi{poolPoi("a", 0)})

	p, ok := s.Get("a")
	if !ok || !p.IsPersisted {
		t.Fatalf("snapshot entries must be persisted, got %+v", p)
	}
}

func TestSubscribersRunOnMutation(t *testing.T) {
	s := NewStore()
	calls := 0
	s.Subscribe(func() { calls++ })

	s.put(poolPoi("a", 0))
	s.remove("a")
	s.remove("a") // missing id must not notify

	if calls != 2 {
		t.Fatalf("expected 2 notifications, got %d", calls)
	}
}
