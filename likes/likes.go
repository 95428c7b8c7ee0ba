package likes

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"fjwuems/db"
	"fjwuems/globals"
	"fjwuems/live"
	"fjwuems/models"
	"fjwuems/utils"
)

// applyToggle gives the new liked state and the counter delta for one
// toggle, from whether a marker currently exists. Two toggles in a row
// always produce deltas that cancel out.
func applyToggle(markerExists bool) (liked bool, delta int64) {
	if markerExists {
		return false, -1
	}
	return true, 1
}

// ToggleLike flips the caller's like on an event. The marker document
// and the counter live in different collections and are written
// separately, so a failure between the two leaves the count out of
// sync with the markers.
func ToggleLike(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := bson.M{"eventid": eventID, "userid": userID}

	var existing models.Like
	err := db.LikesCollection.FindOne(ctx, filter).Decode(&existing)

	var markerExists bool
	switch {
	case err == nil:
		markerExists = true
	case err == mongo.ErrNoDocuments:
		markerExists = false
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "DB query failed")
		return
	}

	liked, delta := applyToggle(markerExists)

	if markerExists {
		if _, err := db.LikesCollection.DeleteOne(ctx, filter); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "DB delete failed")
			return
		}
	} else {
		like := models.Like{
			EventID:   eventID,
			UserID:    userID,
			CreatedAt: time.Now(),
		}
		if _, err := db.LikesCollection.InsertOne(ctx, like); err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
			return
		}
	}

	if _, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID},
		bson.M{"$inc": bson.M{"likesCount": delta}},
	); err != nil {
		log.Printf("like counter update failed for %s: %v", eventID, err)
	}

	live.PushCounters(ctx, "like", eventID)

	var event models.Event
	count := int64(0)
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err == nil {
		count = event.LikesCount
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"liked":      liked,
		"likesCount": count,
	})
}

// GetLikeStatus reports whether the caller has liked the event.
func GetLikeStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	err := db.LikesCollection.FindOne(ctx, bson.M{"eventid": eventID, "userid": userID}).Err()
	switch err {
	case nil:
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"liked": true})
	case mongo.ErrNoDocuments:
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"liked": false})
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "DB query failed")
	}
}
