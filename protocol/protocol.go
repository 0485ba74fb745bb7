package protocol

import (
	"encoding/json"

	"mappa/models"
)

// Kind is the closed set of message kinds on the workspace channel. Lower-case
// verbs are commands (client → server); past-tense kinds are notifications
// fanned out by the server to every room member, including the sender.
type Kind string

const (
	KindJoin  Kind = "join"
	KindLeave Kind = "leave"
	KindSync  Kind = "sync"

	KindMark   Kind = "mark"
	KindMarked Kind = "marked"

	KindUnmark   Kind = "unmark"
	KindUnmarked Kind = "unmarked"

	KindAddSchedule   Kind = "addSchedule"
	KindScheduleAdded Kind = "scheduleAdded"

	KindRemoveSchedule  Kind = "removeSchedule"
	KindScheduleRemoved Kind = "scheduleRemoved"

	KindReorder   Kind = "reorder"
	KindReordered Kind = "reordered"

	KindCursorMove  Kind = "cursorMove"
	KindCursorMoved Kind = "cursorMoved"

	KindHoverPoi   Kind = "hoverPoi"
	KindPoiHovered Kind = "poiHovered"

	KindMapClick   Kind = "mapClick"
	KindMapClicked Kind = "mapClicked"
)

// IsPresence reports whether a notification kind carries ephemeral presence
// state. Senders suppress their own echo for these: the effect was already
// applied locally for zero-latency feedback.
func (k Kind) IsPresence() bool {
	switch k {
	case KindCursorMoved, KindPoiHovered, KindMapClicked:
		return true
	}
	return false
}

// Event is the single wire envelope. Fields are populated per kind; unused
// ones marshal away. One flat struct keeps the channel payload trivial to
// decode on every peer.
type Event struct {
	Kind        Kind   `json:"kind"`
	WorkspaceID string `json:"workspaceid,omitempty"`
	ActorID     string `json:"actorid,omitempty"`

	// mark / marked / sync
	Poi           *models.Poi  `json:"poi,omitempty"`
	Pois          []models.Poi `json:"pois,omitempty"`
	ProvisionalID string       `json:"provisionalid,omitempty"`

	// unmark / schedule / reorder
	PoiID     string `json:"poiid,omitempty"`
	PlanDayID string `json:"plandayid,omitempty"`
	// Full ordered id list for one container; empty PlanDayID means the pool.
	OrderedIDs []string `json:"orderedids,omitempty"`

	// presence
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	EffectID string  `json:"effectid,omitempty"`
	Name     string  `json:"name,omitempty"`
	Color    string  `json:"color,omitempty"`
	Avatar   string  `json:"avatar,omitempty"`
}

func Decode(data []byte) (Event, error) {
	var ev Event
	err := json.Unmarshal(data, &ev)
	return ev, err
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}
