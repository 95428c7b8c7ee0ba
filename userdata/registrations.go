package userdata

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fjwuems/db"
	"fjwuems/globals"
	"fjwuems/live"
	"fjwuems/models"
	"fjwuems/utils"
)

// Register records an RSVP for the caller: an attendee marker, a
// counter bump and a snapshot in the caller's registrations. There is
// no duplicate check, so registering twice inserts two markers and
// bumps the counter twice.
func Register(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	attendee := models.Attendee{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if _, err := db.AttendeesCollection.InsertOne(ctx, attendee); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}

	if _, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID},
		bson.M{"$inc": bson.M{"attendeesCount": 1}},
	); err != nil {
		log.Printf("attendee counter increment failed for %s: %v", eventID, err)
	}

	if _, err := db.RegistrationsCollection.InsertOne(ctx, snapshotOf(&event, userID)); err != nil {
		log.Printf("registration snapshot insert failed for %s: %v", eventID, err)
	}

	live.PushCounters(ctx, "rsvp", eventID)

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"registered": true})
}

// ListRegistrations returns the caller's registrations, newest first.
func ListRegistrations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := db.RegistrationsCollection.Find(ctx, bson.M{"userid": userID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB query failed")
		return
	}
	defer cur.Close(ctx)

	registrations := []models.EventSnapshot{}
	if err := cur.All(ctx, &registrations); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, registrations)
}

// RecordShare bumps the event's share counter. Shares are counted,
// not attributed, so no marker document is written.
func RecordShare(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")

	res, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID},
		bson.M{"$inc": bson.M{"sharesCount": 1}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB update failed")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	live.PushCounters(ctx, "share", eventID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"shared": true})
}
