package comments

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fjwuems/db"
	"fjwuems/globals"
	"fjwuems/live"
	"fjwuems/models"
	"fjwuems/utils"
)

// CreateComment adds a comment to an event and bumps its comment
// counter. The counter is a separate write, so a failed increment
// leaves the comment in place with a stale count.
func CreateComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(body.Content) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment cannot be empty")
		return
	}

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	comment := models.Comment{
		EventID:   eventID,
		CreatedBy: userID,
		Content:   body.Content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	res, err := db.CommentsCollection.InsertOne(ctx, comment)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}
	comment.ID = res.InsertedID.(primitive.ObjectID).Hex()

	if _, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": eventID},
		bson.M{"$inc": bson.M{"commentsCount": 1}},
	); err != nil {
		log.Printf("comment counter increment failed for %s: %v", eventID, err)
	}

	live.PushCounters(ctx, "comment", eventID)

	utils.RespondWithJSON(w, http.StatusCreated, comment)
}

// GetComments lists an event's comments, newest first.
func GetComments(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := db.CommentsCollection.Find(ctx, bson.M{"eventid": eventID}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB query failed")
		return
	}
	defer cur.Close(ctx)

	comments := []models.Comment{}
	if err := cur.All(ctx, &comments); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, comments)
}

// UpdateComment edits a comment. Only the author may edit.
func UpdateComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	commentID := ps.ByName("commentid")
	objID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(body.Content) == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Comment cannot be empty")
		return
	}

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var existing models.Comment
	err = db.CommentsCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}
	if existing.CreatedBy != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	update := bson.M{
		"$set": bson.M{
			"content":    body.Content,
			"updated_at": time.Now(),
		},
	}
	if _, err := db.CommentsCollection.UpdateByID(ctx, objID, update); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB update failed")
		return
	}

	err = db.CommentsCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Fetch failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, existing)
}

// DeleteComment removes a comment. Only the author may delete. The
// event's commentsCount is decremented best effort.
func DeleteComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	commentID := ps.ByName("commentid")
	objID, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var existing models.Comment
	err = db.CommentsCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Comment not found")
		return
	}
	if existing.CreatedBy != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if _, err := db.CommentsCollection.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB delete failed")
		return
	}

	if _, err := db.EventsCollection.UpdateOne(ctx,
		bson.M{"eventid": existing.EventID},
		bson.M{"$inc": bson.M{"commentsCount": -1}},
	); err != nil {
		log.Printf("comment counter decrement failed for %s: %v", existing.EventID, err)
	}

	live.PushCounters(ctx, "comment", existing.EventID)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"deleted": true})
}
