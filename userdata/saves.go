package userdata

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fjwuems/db"
	"fjwuems/globals"
	"fjwuems/models"
	"fjwuems/utils"
)

// snapshotOf copies the event's display fields. The copy is what the
// user's lists render from afterwards; it is never refreshed when the
// event is edited.
func snapshotOf(e *models.Event, userID string) models.EventSnapshot {
	return models.EventSnapshot{
		EventID:       e.EventID,
		UserID:        userID,
		EventTitle:    e.Title,
		EventImage:    e.PosterURL,
		Venue:         e.Venue,
		Campus:        e.Campus,
		DateTime:      e.DateTime,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		OrganizerName: e.OrganizerName,
		CreatedAt:     time.Now(),
	}
}

// ToggleSave saves or unsaves an event for the caller. Saving writes a
// snapshot of the event as it looks right now.
func ToggleSave(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := bson.M{"eventId": eventID, "userid": userID}

	err := db.SavedPostsCollection.FindOne(ctx, filter).Err()
	switch {
	case err == nil:
		if _, err := db.SavedPostsCollection.DeleteOne(ctx, filter); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "DB delete failed")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"saved": false})

	case err == mongo.ErrNoDocuments:
		var event models.Event
		if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Event not found")
			return
		}
		if _, err := db.SavedPostsCollection.InsertOne(ctx, snapshotOf(&event, userID)); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"saved": true})

	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "DB query failed")
	}
}

// ListSaved returns the caller's saved events, newest save first.
func ListSaved(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := db.SavedPostsCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB query failed")
		return
	}
	defer cur.Close(ctx)

	saved := []models.EventSnapshot{}
	if err := cur.All(ctx, &saved); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, saved)
}
