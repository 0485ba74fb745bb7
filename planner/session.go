package planner

import (
	"log"
	"net/url"
	"sync"

	"mappa/models"
	"mappa/protocol"

	"github.com/gorilla/websocket"
)

// Session is one client's connection to a workspace room. It owns the replica,
// the dispatcher, the reconciler and the presence state, and feeds inbound
// notifications into them from a single read loop — all replica mutations
// happen inside event-handler turns, so no further coordination is needed.
type Session struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	workspaceID string
	self        models.UserPresence

	store      *Store
	dispatcher *Dispatcher
	reconciler *Reconciler
	presence   *Presence

	done chan struct{}
}

// Dial connects to a workspace room. rawURL is the server's websocket
// endpoint (e.g. ws://host/ws/workspace/<id>); the JWT rides in the token
// query parameter. The server answers the join with a full sync snapshot.
func Dial(rawURL, token, workspaceID string, self models.UserPresence) (*Session, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}

	s := &Session{
		conn:        conn,
		workspaceID: workspaceID,
		self:        self,
		store:       NewStore(),
		done:        make(chan struct{}),
	}
	s.dispatcher = NewDispatcher(s.store, s, workspaceID, self.UserID)
	s.reconciler = NewReconciler(s.store)
	s.presence = NewPresence(s.store, s, self)

	if err := s.Emit(protocol.Event{Kind: protocol.KindJoin, WorkspaceID: workspaceID, ActorID: self.UserID}); err != nil {
		conn.Close()
		return nil, err
	}

	go s.readLoop()
	return s, nil
}

func (s *Session) Store() *Store           { return s.store }
func (s *Session) Dispatcher() *Dispatcher { return s.dispatcher }
func (s *Session) Presence() *Presence     { return s.presence }

// Done closes when the read loop exits.
func (s *Session) Done() <-chan struct{} { return s.done }

// Emit serializes writes onto the single connection.
func (s *Session) Emit(ev protocol.Event) error {
	if ev.WorkspaceID == "" {
		ev.WorkspaceID = s.workspaceID
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(ev)
}

func (s *Session) readLoop() {
	defer close(s.done)
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			log.Println("room read closed:", err)
			return
		}

		ev, err := protocol.Decode(raw)
		if err != nil {
			log.Println("invalid event payload:", err)
			continue
		}
		s.route(ev)
	}
}

func (s *Session) route(ev protocol.Event) {
	switch {
	case ev.Kind.IsPresence():
		s.presence.Apply(ev)
	case ev.Kind == protocol.KindLeave:
		s.presence.Drop(ev.ActorID)
	default:
		s.reconciler.Apply(ev)
	}
}

// Close announces the departure and drops the connection.
func (s *Session) Close() error {
	s.Emit(protocol.Event{Kind: protocol.KindLeave, ActorID: s.self.UserID})
	return s.conn.Close()
}
