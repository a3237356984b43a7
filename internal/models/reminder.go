package models

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a recurring medicine reminder. TimeOfDay is minutes after
// midnight in the user's local day; Days is a bitmask Sunday=1<<0..Saturday=1<<6
// (0 means every day).
type Reminder struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Medicine    string     `json:"medicine"`
	Dosage      string     `json:"dosage"`
	TimeOfDay   int        `json:"time_of_day"`
	Days        int        `json:"days"`
	Active      bool       `json:"active"`
	LastFiredAt *time.Time `json:"last_fired_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CreateReminderRequest struct {
	Medicine  string `json:"medicine"`
	Dosage    string `json:"dosage"`
	TimeOfDay int    `json:"time_of_day"`
	Days      int    `json:"days"`
}

type UpdateReminderRequest struct {
	Medicine  *string `json:"medicine"`
	Dosage    *string `json:"dosage"`
	TimeOfDay *int    `json:"time_of_day"`
	Days      *int    `json:"days"`
	Active    *bool   `json:"active"`
}

// ReminderAlert is the websocket payload pushed when a reminder fires.
type ReminderAlert struct {
	ReminderID uuid.UUID `json:"reminder_id"`
	Medicine   string    `json:"medicine"`
	Dosage     string    `json:"dosage"`
	FiredAt    time.Time `json:"fired_at"`
}
