package protocol

import (
	"testing"

	"mappa/models"
)

func TestDecodeRoundTrip(t *testing.T) {
	ev := Event{
		Kind:          KindMarked,
		WorkspaceID:   "w1",
		ActorID:       "u1",
		ProvisionalID: "tmp-1",
		Poi:           &models.Poi{PoiID: "q1", PlaceName: "Louvre", Status: models.StatusMarked},
	}

	data, err := ev.Marshal()
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != KindMarked || got.ProvisionalID != "tmp-1" {
		t.Fatalf("unexpected decode: %+v", got)
	}
	if got.Poi == nil || got.Poi.PoiID != "q1" {
		t.Fatalf("poi payload lost: %+v", got.Poi)
	}
}

func TestPresenceKinds(t *testing.T) {
	for _, k := range []Kind{KindCursorMoved, KindPoiHovered, KindMapClicked} {
		if !k.IsPresence() {
			t.Fatalf("%s should be a presence kind", k)
		}
	}
	for _, k := range []Kind{KindMarked, KindSync, KindCursorMove, KindReordered} {
		if k.IsPresence() {
			t.Fatalf("%s should not be a presence kind", k)
		}
	}
}
