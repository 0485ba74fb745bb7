package planner

import (
	"log"

	"mappa/models"
	"mappa/protocol"
)

// Container identifiers as reported by drag/drop gestures. A plan day is
// addressed by its own id; these two are virtual.
const (
	PoolContainer        = "pool"
	RecommendedContainer = "recommended"
)

// resolveContainer maps a gesture container id to its plan-day id ("" for the
// pool). Unknown ids fail resolution.
func (d *Dispatcher) resolveContainer(containerID string) (dayID string, ok bool) {
	if containerID == PoolContainer {
		return "", true
	}
	if d.store.hasDay(containerID) {
		return containerID, true
	}
	return "", false
}

// MovePoi handles a drop gesture: the moved poi, the source and target
// containers, and the complete ordering of the target after the drop.
//
// Same container: a pure reorder. Different containers: the poi is retagged
// optimistically onto the target (appended), then a removeSchedule for a day
// source and an addSchedule for a day target are emitted. The two commands are
// independent; each is idempotent server-side, so no atomicity is needed.
func (d *Dispatcher) MovePoi(poiID, sourceID, targetID string, orderedIDs []string) {
	if d.actorID == "" {
		log.Println("move dropped: no authenticated actor")
		return
	}
	if targetID == RecommendedContainer {
		log.Println("drop rejected: recommendations cannot receive pois")
		return
	}

	srcDay, ok := d.resolveContainer(sourceID)
	if !ok {
		log.Println("drop discarded: unknown source container:", sourceID)
		return
	}
	tgtDay, ok := d.resolveContainer(targetID)
	if !ok {
		log.Println("drop discarded: unknown target container:", targetID)
		return
	}

	if _, ok := d.store.Get(poiID); !ok {
		log.Println("drop discarded: unknown poi:", poiID)
		return
	}

	if srcDay == tgtDay {
		if tgtDay == "" {
			d.ReorderMarked(orderedIDs)
		} else {
			d.ReorderDay(tgtDay, orderedIDs)
		}
		return
	}

	status := models.StatusMarked
	if tgtDay != "" {
		status = models.StatusScheduled
	}
	seq := d.store.nextSequence(status, tgtDay)
	d.store.setContainer(poiID, status, tgtDay, seq)

	if srcDay != "" {
		d.emit(protocol.Event{Kind: protocol.KindRemoveSchedule, PoiID: poiID, PlanDayID: srcDay})
	}
	if tgtDay != "" {
		d.emit(protocol.Event{Kind: protocol.KindAddSchedule, PoiID: poiID, PlanDayID: tgtDay})
	}
}
