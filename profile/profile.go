package profile

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"fjwuems/db"
	"fjwuems/filemgr"
	"fjwuems/globals"
	"fjwuems/models"
	"fjwuems/mq"
	"fjwuems/rdx"
	"fjwuems/utils"
)

const profileCacheTTL = 10 * time.Minute

func cacheKey(userID string) string { return "profile:" + userID }

// GetProfile returns the caller's profile. Reads go through a short
// lived Redis cache that updates invalidate.
func GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if cached, err := rdx.RdxGet(cacheKey(userID)); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	resp := user.Profile()
	if data, err := json.Marshal(resp); err == nil {
		if err := rdx.SetWithExpiry(cacheKey(userID), string(data), profileCacheTTL); err != nil {
			log.Printf("profile cache write failed for %s: %v", userID, err)
		}
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// managerProfileComplete reports whether a society profile has the
// fields event creation requires.
func managerProfileComplete(u *models.User) bool {
	return strings.TrimSpace(u.OrganizerName) != "" &&
		strings.TrimSpace(u.SocietyCategory) != "" &&
		strings.TrimSpace(u.ContactEmail) != ""
}

// UpdateProfile applies role specific profile fields. Managers get
// profileComplete recomputed on every update; students are always
// complete.
func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Name            *string `json:"name"`
		Department      *string `json:"department"`
		Semester        *string `json:"semester"`
		RollNumber      *string `json:"rollNumber"`
		OrganizerName   *string `json:"organizerName"`
		SocietyCategory *string `json:"societyCategory"`
		ContactEmail    *string `json:"contactEmail"`
		ContactPhone    *string `json:"contactPhone"`
		About           *string `json:"about"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	updates := bson.M{"updated_at": time.Now()}
	set := func(field string, val *string) {
		if val != nil {
			updates[field] = strings.TrimSpace(*val)
		}
	}
	set("name", body.Name)

	switch user.Role {
	case models.RoleStudent:
		set("department", body.Department)
		set("semester", body.Semester)
		set("rollNumber", body.RollNumber)
	case models.RoleManager:
		set("department", body.Department)
		set("organizerName", body.OrganizerName)
		set("societyCategory", body.SocietyCategory)
		set("contactEmail", body.ContactEmail)
		set("contactPhone", body.ContactPhone)
		set("about", body.About)
	}

	if user.Role == models.RoleManager {
		if v, ok := updates["organizerName"].(string); ok {
			user.OrganizerName = v
		}
		if v, ok := updates["societyCategory"].(string); ok {
			user.SocietyCategory = v
		}
		if v, ok := updates["contactEmail"].(string); ok {
			user.ContactEmail = v
		}
		updates["profileComplete"] = managerProfileComplete(&user)
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": updates},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB update failed")
		return
	}

	if _, err := rdx.RdxDel(cacheKey(userID)); err != nil {
		log.Printf("profile cache invalidate failed for %s: %v", userID, err)
	}

	go mq.Emit("profile-edited", mq.Index{EntityType: "profile", Method: "PUT", EntityId: userID})

	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Fetch failed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user.Profile())
}

// UploadLogo stores a society logo image and records its path on the
// manager's profile.
func UploadLogo(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	if user.Role != models.RoleManager {
		utils.RespondWithError(w, http.StatusForbidden, "Only society accounts have a logo")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form")
		return
	}

	path, err := filemgr.SaveFormFile(r.MultipartForm, "logo", filemgr.EntityUser, filemgr.PicLogo)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{"$set": bson.M{"logo": path, "updated_at": time.Now()}},
	); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB update failed")
		return
	}

	if _, err := rdx.RdxDel(cacheKey(userID)); err != nil {
		log.Printf("profile cache invalidate failed for %s: %v", userID, err)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"logo": path})
}
