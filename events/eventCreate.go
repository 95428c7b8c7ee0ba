package events

import (
	"context"
	"encoding/json"
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

// CreateEvent creates an event from multipart form data. The "event"
// field carries the JSON payload; "poster" optionally carries an
// image. Only society accounts with a complete profile may create
// events, and every new event starts pending approval.
func CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var creator models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&creator); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if creator.Role != models.RoleManager {
		utils.RespondWithError(w, http.StatusForbidden, "Only society accounts can create events")
		return
	}
	if !creator.ProfileComplete {
		utils.RespondWithError(w, http.StatusForbidden, "Complete your society profile before creating events")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	eventJSON := r.FormValue("event")
	if eventJSON == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing event data")
		return
	}

	var event models.Event
	if err := json.Unmarshal([]byte(eventJSON), &event); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if event.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}

	// Tags may also arrive as a comma-separated form field.
	if len(event.Tags) == 0 {
		event.Tags = utils.SplitTags(r.FormValue("tags"))
	}

	event.EventID = utils.GenerateID(14)
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": event.EventID}).Err(); err == nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Event ID collision, try again")
		return
	}

	// Open events need no registration at all.
	if event.IsOpenEvent {
		event.IsRegistrationRequired = false
		event.RegistrationLink = ""
		event.RegistrationFee = 0
		event.RegistrationDeadline = models.FlexDate{}
	}

	event.CreatedBy = userID
	event.OrganizerID = userID
	event.OrganizerName = creator.OrganizerName
	event.OrganizerDepartment = creator.Department
	event.OrganizerEmail = creator.ContactEmail
	event.OrganizerContact = creator.ContactPhone
	event.OrganizerLogo = creator.Logo

	if event.Status == "" {
		event.Status = "Published"
	}
	event.ApprovalStatus = "pending"
	event.LikesCount = 0
	event.AttendeesCount = 0
	event.CommentsCount = 0
	event.SharesCount = 0
	event.CreatedAt = time.Now().UTC()
	event.UpdatedAt = event.CreatedAt

	if r.MultipartForm != nil && r.MultipartForm.File["poster"] != nil {
		path, err := filemgr.SaveFormFile(r.MultipartForm, "poster", filemgr.EntityEvent, filemgr.PicPoster)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		event.PosterURL = path
	}

	if _, err := db.EventsCollection.InsertOne(ctx, event); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB insert failed")
		return
	}

	go mq.Emit("event-created", mq.Index{EntityType: "event", Method: "POST", EntityId: event.EventID})

	utils.RespondWithJSON(w, http.StatusCreated, event)
}
