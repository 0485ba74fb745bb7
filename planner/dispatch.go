package planner

import (
	"log"

	"mappa/models"
	"mappa/protocol"
	"mappa/utils"
)

// Emitter puts a command on the workspace channel. Emission is fire and
// forget: a command is never retried or revoked once sent.
type Emitter interface {
	Emit(ev protocol.Event) error
}

// Dispatcher exposes the imperative operations behind the planning UI. Each
// one mutates the replica optimistically where that is safe and emits the
// matching command for the server to confirm.
type Dispatcher struct {
	store       *Store
	emitter     Emitter
	workspaceID string
	actorID     string
}

func NewDispatcher(store *Store, emitter Emitter, workspaceID, actorID string) *Dispatcher {
	return &Dispatcher{
		store:       store,
		emitter:     emitter,
		workspaceID: workspaceID,
		actorID:     actorID,
	}
}

func (d *Dispatcher) emit(ev protocol.Event) {
	ev.WorkspaceID = d.workspaceID
	ev.ActorID = d.actorID
	if err := d.emitter.Emit(ev); err != nil {
		log.Println("emit failed:", ev.Kind, err)
	}
}

// Mark inserts an optimistic poi under a provisional id and emits the mark
// command tagged with that id so the server echo can be reconciled against it.
// Returns the provisional id, or "" when no actor is authenticated.
func (d *Dispatcher) Mark(desc models.PoiDescriptor) string {
	if d.actorID == "" {
		log.Println("mark dropped: no authenticated actor")
		return ""
	}

	poi := models.Poi{
		PoiID:        "tmp-" + utils.GetUUID(),
		WorkspaceID:  d.workspaceID,
		CreatedBy:    d.actorID,
		Latitude:     desc.Latitude,
		Longitude:    desc.Longitude,
		Address:      desc.Address,
		PlaceName:    desc.PlaceName,
		CategoryName: desc.CategoryName,
		Status:       models.StatusMarked,
		Sequence:     d.store.nextSequence(models.StatusMarked, ""),
		IsPersisted:  false,
	}
	d.store.put(poi)

	d.emit(protocol.Event{
		Kind:          protocol.KindMark,
		Poi:           &poi,
		ProvisionalID: poi.PoiID,
	})
	return poi.PoiID
}

// Unmark emits the removal command. The entry is deliberately not removed
// optimistically: it disappears only when the unmarked notification comes
// back, so a rejected command never leaves a hole in the list.
func (d *Dispatcher) Unmark(poiID string) {
	if d.actorID == "" {
		log.Println("unmark dropped: no authenticated actor")
		return
	}
	d.emit(protocol.Event{Kind: protocol.KindUnmark, PoiID: poiID})
}

func (d *Dispatcher) AddSchedule(poiID, dayID string) {
	if d.actorID == "" {
		log.Println("addSchedule dropped: no authenticated actor")
		return
	}
	d.emit(protocol.Event{Kind: protocol.KindAddSchedule, PoiID: poiID, PlanDayID: dayID})
}

func (d *Dispatcher) RemoveSchedule(poiID, dayID string) {
	if d.actorID == "" {
		log.Println("removeSchedule dropped: no authenticated actor")
		return
	}
	d.emit(protocol.Event{Kind: protocol.KindRemoveSchedule, PoiID: poiID, PlanDayID: dayID})
}

// ReorderDay applies a complete new ordering for one day, rewriting sequence
// 0..n-1 locally, then emits the full ordered id list. Sending the whole list
// keeps server-side application a trivial replace.
func (d *Dispatcher) ReorderDay(dayID string, orderedIDs []string) {
	if d.actorID == "" {
		log.Println("reorder dropped: no authenticated actor")
		return
	}
	d.store.applyOrder(dayID, orderedIDs)
	d.emit(protocol.Event{Kind: protocol.KindReorder, PlanDayID: dayID, OrderedIDs: orderedIDs})
}

// ReorderMarked is ReorderDay for the unassigned pool.
func (d *Dispatcher) ReorderMarked(orderedIDs []string) {
	if d.actorID == "" {
		log.Println("reorder dropped: no authenticated actor")
		return
	}
	d.store.applyOrder("", orderedIDs)
	d.emit(protocol.Event{Kind: protocol.KindReorder, OrderedIDs: orderedIDs})
}

// AdoptSuggestion clones a recommended poi's descriptive payload into a brand
// new poi with fresh identity, marked and optionally scheduled onto a day. The
// recommended record itself is never touched.
func (d *Dispatcher) AdoptSuggestion(rec models.Poi, dayID string) string {
	if rec.Status != models.StatusRecommended {
		log.Println("adopt dropped: poi is not a recommendation:", rec.PoiID)
		return ""
	}

	provisionalID := d.Mark(models.PoiDescriptor{
		Latitude:     rec.Latitude,
		Longitude:    rec.Longitude,
		Address:      rec.Address,
		PlaceName:    rec.PlaceName,
		CategoryName: rec.CategoryName,
	})
	if provisionalID == "" {
		return ""
	}
	if dayID != "" {
		d.AddSchedule(provisionalID, dayID)
	}
	return provisionalID
}
