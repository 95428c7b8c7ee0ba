package societies

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fjwuems/db"
	"fjwuems/feed"
	"fjwuems/models"
	"fjwuems/utils"
)

// ListSocieties returns every society account for the directory
// screen. The docs go through ProfileResponse so credential fields
// stay out of the payload.
func ListSocieties(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "organizerName", Value: 1}})
	cur, err := db.UserCollection.Find(ctx, bson.M{"role": models.RoleManager}, opts)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB query failed")
		return
	}
	defer cur.Close(ctx)

	var managers []models.User
	if err := cur.All(ctx, &managers); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode failed")
		return
	}

	societies := make([]models.ProfileResponse, 0, len(managers))
	for i := range managers {
		societies = append(societies, managers[i].Profile())
	}

	utils.RespondWithJSON(w, http.StatusOK, societies)
}

// GetSociety returns one society's public profile together with the
// events it created, for the society page any student can open.
func GetSociety(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	societyID := ps.ByName("societyid")

	var manager models.User
	err := db.UserCollection.FindOne(ctx, bson.M{
		"userid": societyID,
		"role":   models.RoleManager,
	}).Decode(&manager)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Society not found")
		return
	}

	all, err := feed.FetchAll(ctx)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "DB query failed")
		return
	}
	events := feed.Filter(all, feed.Query{
		Mode:   feed.ModeManagerEvents,
		UserID: societyID,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"society": manager.Profile(),
		"events":  events,
	})
}
