package models

// Hospital is one medical facility returned by the nearby lookup.
type Hospital struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Type    string  `json:"type"` // "hospital" | "clinic" | "doctors"
}

type HospitalsResponse struct {
	Count     int        `json:"count"`
	Hospitals []Hospital `json:"hospitals"`
}
