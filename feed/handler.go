package feed

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"fjwuems/db"
	"fjwuems/globals"
	"fjwuems/models"
	"fjwuems/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetFeed fetches the whole events collection newest-first and filters
// it in memory. The storage layer only gives us equality filters and a
// single sort key, so every other predicate is applied client side.
// A failed read degrades to an empty feed rather than an error page.
func GetFeed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	q := queryFromRequest(r)

	events, err := FetchAll(ctx)
	if err != nil {
		log.Printf("feed: failed to fetch events: %v", err)
		utils.RespondWithJSON(w, http.StatusOK, []models.Event{})
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, Filter(events, q))
}

// FetchAll returns every event ordered by creation time descending.
// Filtering never reorders, so this is also the final display order.
func FetchAll(ctx context.Context) ([]models.Event, error) {
	sortOrder := bson.D{{Key: "created_at", Value: -1}}
	cursor, err := db.EventsCollection.Find(ctx, bson.M{}, options.Find().SetSort(sortOrder))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []models.Event{}
	}
	return events, nil
}

func queryFromRequest(r *http.Request) Query {
	params := r.URL.Query()

	q := Query{
		Mode:        Mode(params.Get("mode")),
		Search:      params.Get("search"),
		Departments: splitMulti(params.Get("departments")),
		Types:       splitMulti(params.Get("types")),
		Categories:  splitMulti(params.Get("categories")),
		Location:    params.Get("location"),
		From:        params.Get("from"),
		To:          params.Get("to"),
		Status:      params.Get("status"),
	}
	if q.Mode == "" {
		q.Mode = ModeAll
	}
	if uid, ok := r.Context().Value(globals.UserIDKey).(string); ok {
		q.UserID = uid
	}
	return q
}

func splitMulti(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
