package models

import "time"

const (
	RoleStudent = "student"
	RoleManager = "manager"
)

type User struct {
	UserID    string `json:"userid" bson:"userid"`
	Email     string `json:"email" bson:"email"`
	Password  string `json:"-" bson:"password"`
	Name      string `json:"name" bson:"name"`
	FirstName string `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Role      string `json:"role" bson:"role"` // student | manager

	// Department is academic for students and the hosting department for
	// societies; the search department facet matches against it.
	Department string `json:"department,omitempty" bson:"department,omitempty"`

	// Student fields
	Semester   string `json:"semester,omitempty" bson:"semester,omitempty"`
	RollNumber string `json:"rollNumber,omitempty" bson:"rollNumber,omitempty"`

	// Manager (society) fields
	OrganizerName   string `json:"organizerName,omitempty" bson:"organizerName,omitempty"`
	SocietyCategory string `json:"societyCategory,omitempty" bson:"societyCategory,omitempty"`
	Logo            string `json:"logo,omitempty" bson:"logo,omitempty"`
	ContactEmail    string `json:"contactEmail,omitempty" bson:"contactEmail,omitempty"`
	ContactPhone    string `json:"contactPhone,omitempty" bson:"contactPhone,omitempty"`
	About           string `json:"about,omitempty" bson:"about,omitempty"`

	// A manager cannot create events until this is true.
	ProfileComplete bool `json:"profileComplete" bson:"profileComplete"`

	EmailVerified bool      `json:"email_verified" bson:"email_verified"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"last_login" bson:"last_login"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

// ProfileResponse trims the user doc for API responses so credential
// fields never leave the server. It doubles as the public society
// profile shape.
type ProfileResponse struct {
	UserID          string    `json:"userid"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	Department      string    `json:"department,omitempty"`
	Semester        string    `json:"semester,omitempty"`
	RollNumber      string    `json:"rollNumber,omitempty"`
	OrganizerName   string    `json:"organizerName,omitempty"`
	SocietyCategory string    `json:"societyCategory,omitempty"`
	Logo            string    `json:"logo,omitempty"`
	ContactEmail    string    `json:"contactEmail,omitempty"`
	ContactPhone    string    `json:"contactPhone,omitempty"`
	About           string    `json:"about,omitempty"`
	ProfileComplete bool      `json:"profileComplete"`
	LastLogin       time.Time `json:"last_login"`
}

// Profile converts the stored doc into its API shape. Password and
// refresh token fields have no counterpart in ProfileResponse, so they
// cannot leak through here.
func (u *User) Profile() ProfileResponse {
	return ProfileResponse{
		UserID:          u.UserID,
		Email:           u.Email,
		Name:            u.Name,
		Role:            u.Role,
		Department:      u.Department,
		Semester:        u.Semester,
		RollNumber:      u.RollNumber,
		OrganizerName:   u.OrganizerName,
		SocietyCategory: u.SocietyCategory,
		Logo:            u.Logo,
		ContactEmail:    u.ContactEmail,
		ContactPhone:    u.ContactPhone,
		About:           u.About,
		ProfileComplete: u.ProfileComplete,
		LastLogin:       u.LastLogin,
	}
}
