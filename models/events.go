package models

import "time"

type Event struct {
	EventID       string `json:"eventid" bson:"eventid"`
	Title         string `json:"title" bson:"title"`
	Description   string `json:"description" bson:"description"`
	EventCategory string `json:"eventCategory" bson:"eventCategory"`
	EventType     string `json:"eventType" bson:"eventType"` // Online | Offline | Hybrid

	// Schedule. EventDate plus StartTime/EndTime is the current shape;
	// DateTime and StartDate/EndDate are older writes still present in the
	// collection. The feed derives one canonical instant from whichever is
	// set (see feed.StartMillis).
	EventDate       FlexDate `json:"eventDate" bson:"eventDate"`
	StartTime       string   `json:"startTime,omitempty" bson:"startTime,omitempty"` // HH:MM
	EndTime         string   `json:"endTime,omitempty" bson:"endTime,omitempty"`
	DurationMinutes int      `json:"duration,omitempty" bson:"duration,omitempty"`
	DateTime        string   `json:"dateTime,omitempty" bson:"dateTime,omitempty"` // combined ISO convenience field
	StartDate       FlexDate `json:"startDate" bson:"startDate"`
	EndDate         FlexDate `json:"endDate" bson:"endDate"`

	Venue        string `json:"venue" bson:"venue"`
	Campus       string `json:"campus" bson:"campus"`
	LocationLink string `json:"locationLink,omitempty" bson:"locationLink,omitempty"`

	OrganizerID         string `json:"organizerId" bson:"organizerId"`
	OrganizerName       string `json:"organizerName" bson:"organizerName"`
	OrganizerDepartment string `json:"organizerDepartment" bson:"organizerDepartment"`
	OrganizerEmail      string `json:"organizerEmail,omitempty" bson:"organizerEmail,omitempty"`
	OrganizerContact    string `json:"organizerContact,omitempty" bson:"organizerContact,omitempty"`
	OrganizerLogo       string `json:"organizerLogo,omitempty" bson:"organizerLogo,omitempty"`

	IsRegistrationRequired bool     `json:"isRegistrationRequired" bson:"isRegistrationRequired"`
	IsOpenEvent            bool     `json:"isOpenEvent" bson:"isOpenEvent"`
	RegistrationLink       string   `json:"registrationLink,omitempty" bson:"registrationLink,omitempty"`
	RegistrationFee        float64  `json:"registrationFee" bson:"registrationFee"`
	RegistrationDeadline   FlexDate `json:"registrationDeadline" bson:"registrationDeadline"`
	MaxParticipants        int      `json:"maxParticipants,omitempty" bson:"maxParticipants,omitempty"`

	Status         string `json:"status" bson:"status"`                 // Published | Draft | Cancelled
	ApprovalStatus string `json:"approvalStatus" bson:"approvalStatus"` // pending | approved | rejected

	PosterURL    string   `json:"posterURL,omitempty" bson:"posterURL,omitempty"`
	BrochureLink string   `json:"brochureLink,omitempty" bson:"brochureLink,omitempty"`
	Tags         []string `json:"tags,omitempty" bson:"tags,omitempty"`
	Visibility   string   `json:"visibility,omitempty" bson:"visibility,omitempty"`

	// Denormalized counters, maintained with independent $inc writes.
	// They can drift from the true marker counts; there is no
	// reconciliation job.
	LikesCount     int64 `json:"likesCount" bson:"likesCount"`
	AttendeesCount int64 `json:"attendeesCount" bson:"attendeesCount"`
	CommentsCount  int64 `json:"commentsCount" bson:"commentsCount"`
	SharesCount    int64 `json:"sharesCount" bson:"sharesCount"`

	CreatedBy string    `json:"createdBy" bson:"createdBy"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Like marks one (event, user) pair. Presence is the liked state; the
// event's likesCount is kept separately.
type Like struct {
	EventID   string    `json:"eventid" bson:"eventid"`
	UserID    string    `json:"userid" bson:"userid"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Attendee is one RSVP. Nothing prevents the same user from appearing
// more than once.
type Attendee struct {
	EventID   string    `json:"eventid" bson:"eventid"`
	UserID    string    `json:"userid" bson:"userid"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type Comment struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	EventID   string    `json:"eventid" bson:"eventid"`
	CreatedBy string    `json:"createdBy" bson:"createdBy"`
	Content   string    `json:"content" bson:"content"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// EventSnapshot is the denormalized copy of an event's display fields
// written into a user's saved posts or registrations. It is captured at
// save/registration time and never refreshed when the source event is
// edited.
type EventSnapshot struct {
	EventID       string    `json:"eventId" bson:"eventId"`
	UserID        string    `json:"userid" bson:"userid"`
	EventTitle    string    `json:"eventTitle" bson:"eventTitle"`
	EventImage    string    `json:"eventImage,omitempty" bson:"eventImage,omitempty"`
	Venue         string    `json:"venue,omitempty" bson:"venue,omitempty"`
	Campus        string    `json:"campus,omitempty" bson:"campus,omitempty"`
	DateTime      string    `json:"dateTime,omitempty" bson:"dateTime,omitempty"`
	StartTime     string    `json:"startTime,omitempty" bson:"startTime,omitempty"`
	EndTime       string    `json:"endTime,omitempty" bson:"endTime,omitempty"`
	OrganizerName string    `json:"organizerName,omitempty" bson:"organizerName,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
