package collab

import (
	"log"
	"net/http"
	"time"

	"mappa/middleware"
	"mappa/protocol"
	"mappa/rdx"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

const presenceTTL = 30 * time.Second

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// ServeWS upgrades a client into a workspace room. The JWT rides in the token
// query parameter because browsers cannot set headers on websocket upgrades.
func ServeWS(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		workspaceID := ps.ByName("workspaceid")

		claims, err := middleware.ValidateRawToken(r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}

		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			Room:   workspaceID,
			UserID: claims.UserID,
		}

		if !hub.Register(client) {
			conn.Close()
			return
		}
		log.Println("room join:", workspaceID, claims.UserID)

		// ping ticker keeps intermediaries from dropping idle rooms
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
						return
					}
				case <-hub.quit:
					return
				}
			}
		}()

		go writePump(client)
		go readPump(client, hub)
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.Unregister(c)
		c.Conn.Close()
		log.Println("room leave:", c.Room, c.UserID)
		// tell the room so peers can drop this user's presence
		fanOut(hub, c.Room, protocol.Event{
			Kind:        protocol.KindLeave,
			WorkspaceID: c.Room,
			ActorID:     c.UserID,
		})
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		ev, err := protocol.Decode(raw)
		if err != nil {
			log.Printf("invalid payload from %s: %v", c.UserID, err)
			continue
		}
		// never trust the client-supplied identity
		ev.ActorID = c.UserID
		ev.WorkspaceID = c.Room

		handleCommand(hub, c, ev)
	}
}

func handleCommand(hub *Hub, c *Client, ev protocol.Event) {
	switch ev.Kind {
	case protocol.KindJoin:
		// a joiner gets the one full-consistency checkpoint: the snapshot
		pois, err := Snapshot(c.Room)
		if err != nil {
			log.Println("snapshot failed:", err)
			return
		}
		sendTo(c, protocol.Event{Kind: protocol.KindSync, WorkspaceID: c.Room, Pois: pois})

	case protocol.KindLeave:
		c.Conn.Close()

	case protocol.KindMark:
		if ev.Poi == nil {
			log.Printf("mark without poi payload from %s", c.UserID)
			return
		}
		poi, err := CreatePoi(c.Room, c.UserID, *ev.Poi)
		if err != nil {
			log.Println("mark persist failed:", err)
			return
		}
		fanOut(hub, c.Room, protocol.Event{
			Kind:          protocol.KindMarked,
			WorkspaceID:   c.Room,
			ActorID:       c.UserID,
			Poi:           &poi,
			ProvisionalID: ev.ProvisionalID,
		})

	case protocol.KindUnmark:
		if err := DeletePoi(c.Room, ev.PoiID); err != nil {
			log.Println("unmark persist failed:", err)
			return
		}
		fanOut(hub, c.Room, protocol.Event{
			Kind:        protocol.KindUnmarked,
			WorkspaceID: c.Room,
			ActorID:     c.UserID,
			PoiID:       ev.PoiID,
		})

	case protocol.KindAddSchedule:
		if err := SetSchedule(c.Room, ev.PoiID, ev.PlanDayID); err != nil {
			log.Println("addSchedule persist failed:", err)
			return
		}
		fanOut(hub, c.Room, protocol.Event{
			Kind:        protocol.KindScheduleAdded,
			WorkspaceID: c.Room,
			ActorID:     c.UserID,
			PoiID:       ev.PoiID,
			PlanDayID:   ev.PlanDayID,
		})

	case protocol.KindRemoveSchedule:
		if err := ClearSchedule(c.Room, ev.PoiID); err != nil {
			log.Println("removeSchedule persist failed:", err)
			return
		}
		fanOut(hub, c.Room, protocol.Event{
			Kind:        protocol.KindScheduleRemoved,
			WorkspaceID: c.Room,
			ActorID:     c.UserID,
			PoiID:       ev.PoiID,
			PlanDayID:   ev.PlanDayID,
		})

	case protocol.KindReorder:
		if err := Reorder(c.Room, ev.PlanDayID, ev.OrderedIDs); err != nil {
			log.Println("reorder persist failed:", err)
			return
		}
		fanOut(hub, c.Room, protocol.Event{
			Kind:        protocol.KindReordered,
			WorkspaceID: c.Room,
			ActorID:     c.UserID,
			PlanDayID:   ev.PlanDayID,
			OrderedIDs:  ev.OrderedIDs,
		})

	case protocol.KindCursorMove, protocol.KindHoverPoi, protocol.KindMapClick:
		rdx.MarkSeen(c.Room, c.UserID, presenceTTL)
		ev.Kind = presenceNotification(ev.Kind)
		fanOut(hub, c.Room, ev)

	default:
		log.Printf("unknown command kind from %s: %s", c.UserID, ev.Kind)
	}
}

func presenceNotification(k protocol.Kind) protocol.Kind {
	switch k {
	case protocol.KindCursorMove:
		return protocol.KindCursorMoved
	case protocol.KindHoverPoi:
		return protocol.KindPoiHovered
	default:
		return protocol.KindMapClicked
	}
}

func sendTo(c *Client, ev protocol.Event) {
	data, err := ev.Marshal()
	if err != nil {
		log.Println("marshal:", err)
		return
	}
	select {
	case c.Send <- data:
	default:
		log.Println("send buffer full, dropping event for", c.UserID)
	}
}
