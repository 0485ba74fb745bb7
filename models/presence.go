package models

import "time"

// UserPresence is ephemeral per-peer state, never persisted. It is created on
// the first presence event from a peer, overwritten on every subsequent one and
// dropped when the peer leaves the room.
type UserPresence struct {
	UserID   string    `json:"userid"`
	Name     string    `json:"name,omitempty"`
	Color    string    `json:"color,omitempty"`
	Avatar   string    `json:"avatar,omitempty"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	LastSeen time.Time `json:"last_seen"`
}

// ClickEffect is a transient pulse at a map coordinate. It removes itself after
// a fixed TTL; effects from several users may coexist.
type ClickEffect struct {
	EffectID string    `json:"effectid"`
	UserID   string    `json:"userid"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Expiry   time.Time `json:"expiry"`
}
