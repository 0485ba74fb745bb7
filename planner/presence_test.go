package planner

import (
	"testing"
	"time"

	"mappa/models"
	"mappa/protocol"
)

func newTestPresence() (*Store, *captureEmitter, *Presence) {
	s := NewStore()
	em := &captureEmitter{}
	p := NewPresence(s, em, models.UserPresence{UserID: "u1", Name: "Ana", Color: "#f00"})
	return s, em, p
}

func TestClickEffectExpires(t *testing.T) {
	_, _, p := newTestPresence()

	before := time.Now()
	p.ClickMap(10, 20)
	effects := p.Effects()
	if len(effects) != 1 {
		t.Fatal("click effect missing right after click")
	}
	if e := effects[0]; e.Expiry.Before(before) || e.Expiry.After(before.Add(2*ClickEffectTTL)) {
		t.Fatalf("effect expiry not set around now+TTL: %v", e.Expiry)
	}

	time.Sleep(ClickEffectTTL + 100*time.Millisecond)
	if len(p.Effects()) != 0 {
		t.Fatal("click effect still present after TTL")
	}
}

func TestOwnPresenceEchoIgnored(t *testing.T) {
	_, _, p := newTestPresence()

	p.Apply(protocol.Event{Kind: protocol.KindCursorMoved, ActorID: "u1", X: 1, Y: 2})
	if len(p.Cursors()) != 0 {
		t.Fatal("own cursor echo must be ignored")
	}

	p.Apply(protocol.Event{Kind: protocol.KindMapClicked, ActorID: "u1", EffectID: "e1"})
	if len(p.Effects()) != 0 {
		t.Fatal("own click echo must be ignored")
	}
}

func TestPeerCursorLifecycle(t *testing.T) {
	_, _, p := newTestPresence()

	p.Apply(protocol.Event{Kind: protocol.KindCursorMoved, ActorID: "u2", X: 1, Y: 2, Name: "Bo"})
	p.Apply(protocol.Event{Kind: protocol.KindCursorMoved, ActorID: "u2", X: 3, Y: 4, Name: "Bo"})

	cursors := p.Cursors()
	if len(cursors) != 1 {
		t.Fatalf("expected one peer cursor, got %d", len(cursors))
	}
	if c := cursors["u2"]; c.X != 3 || c.Y != 4 {
		t.Fatalf("cursor not overwritten: %+v", c)
	}

	p.Drop("u2")
	if len(p.Cursors()) != 0 {
		t.Fatal("departed peer cursor must be dropped")
	}
}

func TestHoverReplacesPrevious(t *testing.T) {
	_, em, p := newTestPresence()

	p.HoverPoi("a")
	p.HoverPoi("b")

	hovers := p.Hovers()
	if hovers["u1"] != "b" {
		t.Fatalf("new hover must replace the previous one: %+v", hovers)
	}
	if len(em.events) != 2 {
		t.Fatalf("each hover must emit, got %d events", len(em.events))
	}

	p.HoverPoi("")
	if len(p.Hovers()) != 0 {
		t.Fatal("empty hover must clear the highlight")
	}
}

func TestStaleHoverClearedOnStoreChange(t *testing.T) {
	s, _, p := newTestPresence()
	s.put(models.Poi{PoiID: "a", Status: models.StatusMarked})

	p.Apply(protocol.Event{Kind: protocol.KindPoiHovered, ActorID: "u2", PoiID: "a"})
	if p.Hovers()["u2"] != "a" {
		t.Fatal("peer hover not applied")
	}

	// concurrent deletion elsewhere
	s.remove("a")

	if len(p.Hovers()) != 0 {
		t.Fatal("hover on a deleted poi must be cleared reactively")
	}
}

func TestPresenceWithoutActorIsNoop(t *testing.T) {
	s := NewStore()
	em := &captureEmitter{}
	p := NewPresence(s, em, models.UserPresence{})

	p.MoveCursor(1, 2)
	p.ClickMap(3, 4)
	p.HoverPoi("a")

	if len(em.events) != 0 {
		t.Fatal("presence commands without an actor must not emit")
	}
	if len(p.Effects()) != 0 {
		t.Fatal("click without an actor must not register a local effect")
	}
	if len(p.Hovers()) != 0 {
		t.Fatal("hover without an actor must not register locally")
	}
}
