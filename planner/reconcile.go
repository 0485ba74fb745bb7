package planner

import (
	"log"

	"mappa/models"
	"mappa/protocol"
)

// Reconciler folds authoritative notifications into the replica. Every merge
// is idempotent: the channel is at-least-once and a duplicate or late
// notification must never corrupt state or raise an error.
type Reconciler struct {
	store *Store
}

func NewReconciler(store *Store) *Reconciler {
	return &Reconciler{store: store}
}

func (rc *Reconciler) Apply(ev protocol.Event) {
	switch ev.Kind {
	case protocol.KindSync:
		// Full snapshot on (re)join. Replaces everything, optimistic
		// entries included.
		rc.store.ReplaceAll(ev.Pois)

	case protocol.KindMarked:
		rc.applyMarked(ev)

	case protocol.KindUnmarked:
		// Missing id is a no-op, not an error.
		rc.store.remove(ev.PoiID)

	case protocol.KindScheduleAdded:
		rc.retag(ev.PoiID, models.StatusScheduled, ev.PlanDayID)

	case protocol.KindScheduleRemoved:
		rc.retag(ev.PoiID, models.StatusMarked, "")

	case protocol.KindReordered:
		rc.store.applyOrder(ev.PlanDayID, ev.OrderedIDs)

	default:
		log.Println("unhandled notification kind:", ev.Kind)
	}
}

// retag moves a poi into another container at an appended position. Already
// being there makes it a duplicate delivery and the sequence stays put.
func (rc *Reconciler) retag(poiID string, status models.PoiStatus, dayID string) {
	p, ok := rc.store.Get(poiID)
	if !ok {
		log.Println("schedule notification for unknown poi:", poiID)
		return
	}
	if p.Status == status && p.PlanDayID == dayID {
		return
	}
	seq := rc.store.nextSequence(status, dayID)
	rc.store.setContainer(poiID, status, dayID, seq)
}

func (rc *Reconciler) applyMarked(ev protocol.Event) {
	if ev.Poi == nil {
		log.Println("marked notification without poi payload")
		return
	}

	// Our own optimistic entry: swap the provisional identity for the
	// permanent one in place.
	if ev.ProvisionalID != "" {
		if _, ok := rc.store.Get(ev.ProvisionalID); ok {
			rc.store.swap(ev.ProvisionalID, *ev.Poi)
			return
		}
	}

	// A peer created it, or a duplicate delivery: insert if absent,
	// overwrite if already reconciled.
	p := *ev.Poi
	p.IsPersisted = true
	rc.store.put(p)
}
