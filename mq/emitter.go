package mq

import (
	"context"
	"encoding/json"
	"log"

	"fjwuems/db"
	"fjwuems/models"
	"fjwuems/rdx"

	"go.mongodb.org/mongo-driver/bson"
)

const eventsChannel = "ems-events"

// Index represents an indexing-related message to be emitted.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
}

// Emit publishes indexing events to Redis instead of running them inline.
func Emit(eventName string, content Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", eventName, err)
	}
}

// StartIndexingWorker keeps the Redis title-suggestion hash in sync with
// the events collection. Runs for the lifetime of the process.
func StartIndexingWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[IndexingWorker] Listening for indexing events...")

	for msg := range ch {
		var evt Index
		if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
			log.Printf("[IndexingWorker] Failed to parse event: %v", err)
			continue
		}
		if evt.EntityType != "event" {
			continue
		}

		switch evt.Method {
		case "POST", "PUT":
			var ev models.Event
			if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": evt.EntityId}).Decode(&ev); err != nil {
				log.Printf("[IndexingWorker] Event %s not found: %v", evt.EntityId, err)
				continue
			}
			if err := rdx.RdxHset("suggest:events", ev.EventID, ev.Title); err != nil {
				log.Printf("[IndexingWorker] Failed to index %s: %v", ev.EventID, err)
			}
		case "DELETE":
			if _, err := rdx.RdxHdel("suggest:events", evt.EntityId); err != nil {
				log.Printf("[IndexingWorker] Failed to drop %s: %v", evt.EntityId, err)
			}
		}
	}
}
