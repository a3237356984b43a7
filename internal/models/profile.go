package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the health profile shown in the app's profile panel and used
// as context for the AI assistant. Optional fields are pointers so a partial
// update never clobbers values the client did not send.
type Profile struct {
	UserID           uuid.UUID `json:"user_id"`
	FullName         *string   `json:"full_name"`
	Age              *int      `json:"age"`
	Gender           *string   `json:"gender"`
	BloodGroup       *string   `json:"blood_group"`
	Phone            *string   `json:"phone"`
	EmergencyContact *string   `json:"emergency_contact"`
	EmergencyEmail   *string   `json:"emergency_email"`
	Village          *string   `json:"village"`
	District         *string   `json:"district"`
	State            *string   `json:"state"`
	Conditions       *string   `json:"conditions"`
	Allergies        *string   `json:"allergies"`
	ProfileCompleted bool      `json:"profile_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SaveProfileRequest carries the same optional-field semantics: only fields
// present in the JSON body are written.
type SaveProfileRequest struct {
	FullName         *string `json:"full_name"`
	Age              *int    `json:"age"`
	Gender           *string `json:"gender"`
	BloodGroup       *string `json:"blood_group"`
	Phone            *string `json:"phone"`
	EmergencyContact *string `json:"emergency_contact"`
	EmergencyEmail   *string `json:"emergency_email"`
	Village          *string `json:"village"`
	District         *string `json:"district"`
	State            *string `json:"state"`
	Conditions       *string `json:"conditions"`
	Allergies        *string `json:"allergies"`
}
