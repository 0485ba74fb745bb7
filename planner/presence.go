package planner

import (
	"log"
	"sync"
	"time"

	"mappa/models"
	"mappa/protocol"
	"mappa/utils"
)

// ClickEffectTTL is how long a map-click pulse stays visible.
const ClickEffectTTL = time.Second

// Presence tracks the ephemeral multi-user state of a room: peer cursors, at
// most one hover highlight per user, and self-expiring click effects. None of
// it is persisted anywhere.
type Presence struct {
	mu      sync.Mutex
	self    models.UserPresence
	emitter Emitter

	cursors map[string]models.UserPresence
	hovers  map[string]string // userID -> poiID
	effects map[string]models.ClickEffect
}

func NewPresence(store *Store, emitter Emitter, self models.UserPresence) *Presence {
	p := &Presence{
		self:    self,
		emitter: emitter,
		cursors: make(map[string]models.UserPresence),
		hovers:  make(map[string]string),
		effects: make(map[string]models.ClickEffect),
	}
	// A hover pointing at a poi that a peer just deleted must not linger.
	store.Subscribe(func() { p.pruneHovers(store) })
	return p
}

func (p *Presence) emit(ev protocol.Event) {
	ev.ActorID = p.self.UserID
	if err := p.emitter.Emit(ev); err != nil {
		log.Println("presence emit failed:", ev.Kind, err)
	}
}

// MoveCursor broadcasts the pointer position. Throttling is the caller's
// responsibility; every call emits.
func (p *Presence) MoveCursor(x, y float64) {
	if p.self.UserID == "" {
		log.Println("cursor move dropped: no authenticated actor")
		return
	}
	p.emit(protocol.Event{
		Kind:   protocol.KindCursorMove,
		X:      x,
		Y:      y,
		Name:   p.self.Name,
		Color:  p.self.Color,
		Avatar: p.self.Avatar,
	})
}

// HoverPoi highlights a poi for this user, locally first for zero-latency
// feedback. An empty id clears the highlight.
func (p *Presence) HoverPoi(poiID string) {
	if p.self.UserID == "" {
		log.Println("hover dropped: no authenticated actor")
		return
	}
	p.mu.Lock()
	if poiID == "" {
		delete(p.hovers, p.self.UserID)
	} else {
		p.hovers[p.self.UserID] = poiID
	}
	p.mu.Unlock()

	p.emit(protocol.Event{Kind: protocol.KindHoverPoi, PoiID: poiID})
}

// ClickMap creates a local click pulse with its own expiry timer and
// broadcasts it to the room.
func (p *Presence) ClickMap(x, y float64) {
	if p.self.UserID == "" {
		log.Println("map click dropped: no authenticated actor")
		return
	}
	effect := models.ClickEffect{
		EffectID: utils.GetUUID(),
		UserID:   p.self.UserID,
		X:        x,
		Y:        y,
	}
	p.addEffect(effect)

	p.emit(protocol.Event{
		Kind:     protocol.KindMapClick,
		EffectID: effect.EffectID,
		X:        x,
		Y:        y,
	})
}

func (p *Presence) addEffect(effect models.ClickEffect) {
	effect.Expiry = time.Now().Add(ClickEffectTTL)

	p.mu.Lock()
	p.effects[effect.EffectID] = effect
	p.mu.Unlock()

	time.AfterFunc(ClickEffectTTL, func() {
		p.mu.Lock()
		delete(p.effects, effect.EffectID)
		p.mu.Unlock()
	})
}

// Apply folds a peer's presence notification in. Our own echo is skipped: the
// effect was already applied locally when the command went out.
func (p *Presence) Apply(ev protocol.Event) {
	if ev.ActorID == "" || ev.ActorID == p.self.UserID {
		return
	}

	switch ev.Kind {
	case protocol.KindCursorMoved:
		p.mu.Lock()
		p.cursors[ev.ActorID] = models.UserPresence{
			UserID:   ev.ActorID,
			Name:     ev.Name,
			Color:    ev.Color,
			Avatar:   ev.Avatar,
			X:        ev.X,
			Y:        ev.Y,
			LastSeen: time.Now(),
		}
		p.mu.Unlock()

	case protocol.KindPoiHovered:
		p.mu.Lock()
		if ev.PoiID == "" {
			delete(p.hovers, ev.ActorID)
		} else {
			p.hovers[ev.ActorID] = ev.PoiID
		}
		p.mu.Unlock()

	case protocol.KindMapClicked:
		p.addEffect(models.ClickEffect{
			EffectID: ev.EffectID,
			UserID:   ev.ActorID,
			X:        ev.X,
			Y:        ev.Y,
		})
	}
}

// Drop forgets everything about a departed peer.
func (p *Presence) Drop(userID string) {
	p.mu.Lock()
	delete(p.cursors, userID)
	delete(p.hovers, userID)
	p.mu.Unlock()
}

func (p *Presence) pruneHovers(store *Store) {
	p.mu.Lock()
	for userID, poiID := range p.hovers {
		if _, ok := store.Get(poiID); !ok {
			delete(p.hovers, userID)
		}
	}
	p.mu.Unlock()
}

// Cursors returns a copy of the peer cursor map for rendering.
func (p *Presence) Cursors() map[string]models.UserPresence {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]models.UserPresence, len(p.cursors))
	for k, v := range p.cursors {
		out[k] = v
	}
	return out
}

// Hovers returns userID -> hovered poiID.
func (p *Presence) Hovers() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]string, len(p.hovers))
	for k, v := range p.hovers {
		out[k] = v
	}
	return out
}

// Effects returns the live click pulses.
func (p *Presence) Effects() []models.ClickEffect {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.ClickEffect, 0, len(p.effects))
	for _, e := range p.effects {
		out = append(out, e)
	}
	return out
}
