package events

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"fjwuems/db"
	"fjwuems/feed"
	"fjwuems/models"
	"fjwuems/utils"
)

const defaultEventDuration = 2 * time.Hour

// GetCalendar serves the event as an .ics file so users can add it to
// their own calendar. Events without a resolvable date cannot be
// exported.
func GetCalendar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	eventID := ps.ByName("eventid")

	var event models.Event
	if err := db.EventsCollection.FindOne(ctx, bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	ms, state := feed.StartMillis(&event)
	if state != models.DateKnown {
		utils.RespondWithError(w, http.StatusUnprocessableEntity, "Event has no usable date")
		return
	}

	start := time.UnixMilli(ms).UTC()
	duration := defaultEventDuration
	if event.DurationMinutes > 0 {
		duration = time.Duration(event.DurationMinutes) * time.Minute
	}
	end := start.Add(duration)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	ve := cal.AddEvent(event.EventID + "@fjwuems")
	ve.SetCreatedTime(event.CreatedAt)
	ve.SetDtStampTime(time.Now().UTC())
	ve.SetStartAt(start)
	ve.SetEndAt(end)
	ve.SetSummary(event.Title)
	if event.Description != "" {
		ve.SetDescription(event.Description)
	}
	location := event.Venue
	if event.Campus != "" {
		if location != "" {
			location += ", "
		}
		location += event.Campus
	}
	if location != "" {
		ve.SetLocation(location)
	}
	if event.OrganizerName != "" {
		ve.SetOrganizer(event.OrganizerEmail, ical.WithCN(event.OrganizerName))
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", event.EventID+".ics"))
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, cal.Serialize())
}
