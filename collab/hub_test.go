package collab

import (
	"testing"
	"time"

	"mappa/protocol"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send: make(chan []byte, 10),
		Room: "w1",
	}

	hub.Register(client)

	ev := protocol.Event{Kind: protocol.KindUnmarked, WorkspaceID: "w1", PoiID: "p1"}
	data, _ := ev.Marshal()
	hub.Broadcast("w1", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for broadcast")
	}

	hub.Unregister(client)
}

func TestHubStopUnblocksLateClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	c := &Client{Send: make(chan []byte, 1), Room: "w1"}
	done := make(chan struct{})
	go func() {
		if hub.Register(c) {
			t.Error("registration must fail after the hub stopped")
		}
		hub.Unregister(c)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("register/unregister against a stopped hub must not block")
	}
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 10), Room: "w1"}
	b := &Client{Send: make(chan []byte, 10), Room: "w2"}
	hub.Register(a)
	hub.Register(b)

	hub.Broadcast("w1", []byte("hello"))

	select {
	case <-a.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for room member")
	}

	select {
	case msg := <-b.Send:
		t.Fatalf("other room received %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
