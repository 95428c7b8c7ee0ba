package live

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"

	"fjwuems/db"
	"fjwuems/models"
)

// PushCounters reads the event's current counters and broadcasts them
// to live watchers. Failures are logged and ignored so interaction
// writes never fail because of the live channel.
func PushCounters(ctx context.Context, action, eventID string) {
	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		log.Printf("counter broadcast fetch failed for %s: %v", eventID, err)
		return
	}
	Broadcast(CounterUpdate{
		Action:         action,
		EventID:        eventID,
		LikesCount:     event.LikesCount,
		AttendeesCount: event.AttendeesCount,
		CommentsCount:  event.CommentsCount,
		SharesCount:    event.SharesCount,
	})
}
