package events

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"fjwuems/db"
	"fjwuems/filemgr"
	"fjwuems/globals"
	"fjwuems/models"
	"fjwuems/mq"
	"fjwuems/utils"
)

// EditEvent updates an event. Only the creator may edit. Snapshots
// taken by saves and registrations are not touched, so lists rendered
// from them keep showing the old values.
func EditEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")
	if eventID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing event ID")
		return
	}

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var existing models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&existing); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	if existing.CreatedBy != userID {
		log.Printf("User %s attempted to edit event %s they did not create", userID, eventID)
		utils.RespondWithError(w, http.StatusForbidden, "Unauthorized to edit this event")
		return
	}

	updateFields, err := updateEventFields(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if r.MultipartForm != nil && r.MultipartForm.File["poster"] != nil {
		path, err := filemgr.SaveFormFile(r.MultipartForm, "poster", filemgr.EntityEvent, filemgr.PicPoster)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		updateFields["posterURL"] = path
	}

	if len(updateFields) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "No fields to update")
		return
	}
	updateFields["updated_at"] = time.Now().UTC()

	if _, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID},
		bson.M{"$set": updateFields},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB update failed")
		return
	}

	go mq.Emit("event-edited", mq.Index{EntityType: "event", Method: "PUT", EntityId: eventID})

	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&existing); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Fetch failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, existing)
}

// DeleteEvent removes an event and its interaction markers. Only the
// creator may delete. Saved and registration snapshots are left in
// place; users keep entries pointing at an event that no longer
// exists.
func DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
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
	if event.CreatedBy != userID {
		log.Printf("User %s attempted to delete event %s they did not create", userID, eventID)
		utils.RespondWithError(w, http.StatusForbidden, "Unauthorized to delete this event")
		return
	}

	if _, err := db.EventsCollection.DeleteOne(ctx, bson.M{"eventid": eventID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error deleting event")
		return
	}

	if err := deleteRelatedData(ctx, eventID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	go mq.Emit("event-deleted", mq.Index{EntityType: "event", Method: "DELETE", EntityId: eventID})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Event deleted successfully"})
}
