package collab

import (
	"context"
	"encoding/json"
	"log"

	"mappa/protocol"
	"mappa/rdx"
	"mappa/utils"
)

// Multiple server nodes can host members of the same workspace room. Every
// notification is published on a Redis channel as well; each node relays
// messages from other nodes into its local hub. Messages carry the origin
// node id so a node never re-applies its own publication.

const bridgeChannel = "workspace-events"

var nodeID = utils.GetUUID()

type bridgeEnvelope struct {
	Node string `json:"node"`
	Room string `json:"room"`
	Data []byte `json:"data"`
}

// fanOut delivers a notification to the local room and to peers via Redis.
func fanOut(hub *Hub, room string, ev protocol.Event) {
	data, err := ev.Marshal()
	if err != nil {
		log.Println("marshal:", err)
		return
	}
	hub.Broadcast(room, data)
	publish(room, data)
}

func publish(room string, data []byte) {
	env := bridgeEnvelope{Node: nodeID, Room: room, Data: data}
	payload, err := json.Marshal(env)
	if err != nil {
		log.Println("bridge marshal:", err)
		return
	}
	if err := rdx.Conn.Publish(context.Background(), bridgeChannel, payload).Err(); err != nil {
		log.Println("bridge publish:", err)
	}
}

// StartBridge relays room events published by other nodes into the local hub.
// Runs until the subscription drops.
func StartBridge(hub *Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, bridgeChannel)
	ch := sub.Channel()

	log.Println("room bridge listening on", bridgeChannel)

	for msg := range ch {
		var env bridgeEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			log.Println("bridge decode:", err)
			continue
		}
		if env.Node == nodeID {
			continue
		}
		hub.Broadcast(env.Room, env.Data)
	}
}
