package planner

import (
	"testing"

	"mappa/models"
	"mappa/protocol"
)

func newMoveFixture() (*Store, *captureEmitter, *Dispatcher) {
	s, em, d := newTestDispatcher()
	s.SetDays([]models.PlanDay{{PlanDayID: "d1"}, {PlanDayID: "d2"}})
	s.put(models.Poi{PoiID: "x", Status: models.StatusMarked, Sequence: 0})
	return s, em, d
}

func TestCrossContainerMove(t *testing.T) {
	s, em, d := newMoveFixture()

	d.MovePoi("x", PoolContainer, "d1", nil)
	d.MovePoi("x", "d1", "d2", nil)

	p, _ := s.Get("x")
	if p.Status != models.StatusScheduled || p.PlanDayID != "d2" {
		t.Fatalf("unexpected state after moves: %+v", p)
	}
	if len(s.Marked()) != 0 {
		t.Fatal("poi still in pool after scheduling")
	}
	if len(s.ForDay("d1")) != 0 {
		t.Fatal("poi still in d1 after moving on")
	}
	if len(s.ForDay("d2")) != 1 {
		t.Fatal("poi missing from d2")
	}

	// pool -> d1 emits only addSchedule, d1 -> d2 emits remove then add
	kinds := []protocol.Kind{}
	for _, ev := range em.events {
		kinds = append(kinds, ev.Kind)
	}
	want := []protocol.Kind{protocol.KindAddSchedule, protocol.KindRemoveSchedule, protocol.KindAddSchedule}
	if len(kinds) != len(want) {
		t.Fatalf("unexpected command stream: %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("command %d: want %s, got %s", i, want[i], kinds[i])
		}
	}
}

func TestMoveBackToPoolEmitsOnlyRemoval(t *testing.T) {
	s, em, d := newMoveFixture()
	s.setContainer("x", models.StatusScheduled, "d1", 0)
	em.events = nil

	d.MovePoi("x", "d1", PoolContainer, nil)

	p, _ := s.Get("x")
	if p.Status != models.StatusMarked || p.PlanDayID != "" {
		t.Fatalf("unexpected state after move to pool: %+v", p)
	}
	if len(em.events) != 1 || em.events[0].Kind != protocol.KindRemoveSchedule {
		t.Fatalf("pool target must emit only the removal: %+v", em.events)
	}
}

func TestUnknownContainerDiscardsGesture(t *testing.T) {
	s, em, d := newMoveFixture()

	d.MovePoi("x", PoolContainer, "ghost-day", nil)

	p, _ := s.Get("x")
	if p.Status != models.StatusMarked {
		t.Fatal("discarded gesture must not mutate")
	}
	if len(em.events) != 0 {
		t.Fatal("discarded gesture must not emit")
	}
}

func TestRecommendedTargetRejected(t *testing.T) {
	s, em, d := newMoveFixture()

	d.MovePoi("x", PoolContainer, RecommendedContainer, nil)

	p, _ := s.Get("x")
	if p.Status != models.StatusMarked || len(em.events) != 0 {
		t.Fatal("recommendations must not receive drops")
	}
}

func TestSameContainerDelegatesToReorder(t *testing.T) {
	s, em, d := newMoveFixture()
	s.put(models.Poi{PoiID: "y", Status: models.StatusMarked, Sequence: 1})

	d.MovePoi("x", PoolContainer, PoolContainer, []string{"y", "x"})

	if len(em.events) != 1 || em.events[0].Kind != protocol.KindReorder {
		t.Fatalf("same-container move must reorder: %+v", em.events)
	}
	y, _ := s.Get("y")
	x, _ := s.Get("x")
	if y.Sequence != 0 || x.Sequence != 1 {
		t.Fatalf("unexpected sequences: y=%d x=%d", y.Sequence, x.Sequence)
	}
}
