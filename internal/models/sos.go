package models

import (
	"time"

	"github.com/google/uuid"
)

// SOSEvent records one emergency button press.
type SOSEvent struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// SOSRequest carries the press location. Coordinates are pointers so a body
// that omits them is distinguishable from a genuine 0,0 fix and can be
// rejected instead of recorded.
type SOSRequest struct {
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
	Note string   `json:"note"`
}

// SOSResponse gives the caller everything needed to act immediately: the
// national emergency number plus the closest facilities.
type SOSResponse struct {
	EventID         uuid.UUID  `json:"event_id"`
	EmergencyNumber string     `json:"emergency_number"`
	Hospitals       []Hospital `json:"hospitals"`
}
