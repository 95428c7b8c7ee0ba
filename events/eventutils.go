package events

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"fjwuems/db"
	"fjwuems/models"
)

// updateEventFields extracts the editable fields from the multipart
// "event" payload. Only fields present in the JSON land in the update.
func updateEventFields(r *http.Request) (bson.M, error) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		return nil, fmt.Errorf("unable to parse form: %v", err)
	}

	eventJSON := r.FormValue("event")
	if eventJSON == "" {
		return bson.M{}, nil
	}

	var eventData struct {
		Title                  *string          `json:"title"`
		Description            *string          `json:"description"`
		EventCategory          *string          `json:"eventCategory"`
		EventType              *string          `json:"eventType"`
		EventDate              *models.FlexDate `json:"eventDate"`
		StartTime              *string          `json:"startTime"`
		EndTime                *string          `json:"endTime"`
		DateTime               *string          `json:"dateTime"`
		Venue                  *string          `json:"venue"`
		Campus                 *string          `json:"campus"`
		LocationLink           *string          `json:"locationLink"`
		IsRegistrationRequired *bool            `json:"isRegistrationRequired"`
		IsOpenEvent            *bool            `json:"isOpenEvent"`
		RegistrationLink       *string          `json:"registrationLink"`
		RegistrationFee        *float64         `json:"registrationFee"`
		RegistrationDeadline   *models.FlexDate `json:"registrationDeadline"`
		MaxParticipants        *int             `json:"maxParticipants"`
		Status                 *string          `json:"status"`
		BrochureLink           *string          `json:"brochureLink"`
		Tags                   []string         `json:"tags"`
		Visibility             *string          `json:"visibility"`
	}
	if err := json.Unmarshal([]byte(eventJSON), &eventData); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %v", err)
	}

	updateFields := bson.M{}
	put := func(key string, val interface{}) { updateFields[key] = val }

	if eventData.Title != nil {
		if *eventData.Title == "" {
			return nil, fmt.Errorf("title cannot be empty")
		}
		put("title", *eventData.Title)
	}
	if eventData.Description != nil {
		put("description", *eventData.Description)
	}
	if eventData.EventCategory != nil {
		put("eventCategory", *eventData.EventCategory)
	}
	if eventData.EventType != nil {
		put("eventType", *eventData.EventType)
	}
	if eventData.EventDate != nil {
		put("eventDate", *eventData.EventDate)
	}
	if eventData.StartTime != nil {
		put("startTime", *eventData.StartTime)
	}
	if eventData.EndTime != nil {
		put("endTime", *eventData.EndTime)
	}
	if eventData.DateTime != nil {
		put("dateTime", *eventData.DateTime)
	}
	if eventData.Venue != nil {
		put("venue", *eventData.Venue)
	}
	if eventData.Campus != nil {
		put("campus", *eventData.Campus)
	}
	if eventData.LocationLink != nil {
		put("locationLink", *eventData.LocationLink)
	}
	if eventData.IsRegistrationRequired != nil {
		put("isRegistrationRequired", *eventData.IsRegistrationRequired)
	}
	if eventData.IsOpenEvent != nil {
		put("isOpenEvent", *eventData.IsOpenEvent)
	}
	if eventData.RegistrationLink != nil {
		put("registrationLink", *eventData.RegistrationLink)
	}
	if eventData.RegistrationFee != nil {
		put("registrationFee", *eventData.RegistrationFee)
	}
	if eventData.RegistrationDeadline != nil {
		put("registrationDeadline", *eventData.RegistrationDeadline)
	}
	if eventData.MaxParticipants != nil {
		put("maxParticipants", *eventData.MaxParticipants)
	}
	if eventData.Status != nil {
		put("status", *eventData.Status)
	}
	if eventData.BrochureLink != nil {
		put("brochureLink", *eventData.BrochureLink)
	}
	if eventData.Tags != nil {
		put("tags", eventData.Tags)
	}
	if eventData.Visibility != nil {
		put("visibility", *eventData.Visibility)
	}

	return updateFields, nil
}

// deleteRelatedData clears interaction markers once the event is gone.
// Saved and registration snapshots are intentionally left alone.
func deleteRelatedData(ctx context.Context, eventID string) error {
	if _, err := db.LikesCollection.DeleteMany(ctx, bson.M{"eventid": eventID}); err != nil {
		return fmt.Errorf("error deleting related likes")
	}
	if _, err := db.CommentsCollection.DeleteMany(ctx, bson.M{"eventid": eventID}); err != nil {
		return fmt.Errorf("error deleting related comments")
	}
	if _, err := db.AttendeesCollection.DeleteMany(ctx, bson.M{"eventid": eventID}); err != nil {
		return fmt.Errorf("error deleting related attendees")
	}
	return nil
}
