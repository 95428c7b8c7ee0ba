package events

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"fjwuems/db"
	"fjwuems/models"
	"fjwuems/utils"
)

// GetEvent returns one event by its id.
func GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")

	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, event)
}

// GetEventsCount returns the total number of events.
func GetEventsCount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	count, err := db.EventsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB query failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"count": count})
}
