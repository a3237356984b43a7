package models

import (
	"time"

	"github.com/google/uuid"
)

// HealthLog is one self-reported pregnancy health entry. Values are kept as
// entered ("-" when skipped) because rural clinics report BP and sugar in
// mixed formats.
type HealthLog struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Date       string    `json:"date"` // dd/mm/yyyy, matching the client
	Weight     string    `json:"weight"`
	BP         string    `json:"bp"`
	Sugar      string    `json:"sugar"`
	Hemoglobin string    `json:"hb"`
	CreatedAt  time.Time `json:"created_at"`
}

type LogHealthRequest struct {
	Weight     string `json:"weight"`
	BP         string `json:"bp"`
	Sugar      string `json:"sugar"`
	Hemoglobin string `json:"hb"`
}

// FetalGrowth describes expected fetal development for a gestational week.
type FetalGrowth struct {
	SizeComparison string   `json:"size_comparison"`
	LengthCM       float64  `json:"length_cm"`
	WeightG        float64  `json:"weight_g"`
	Development    []string `json:"development"`
	Checkups       []string `json:"checkups"`
}

// PregnancyProfile is the stored tracker state; everything else is derived
// from the last menstrual period date at read time.
type PregnancyProfile struct {
	UserID    uuid.UUID `json:"user_id"`
	LMPDate   time.Time `json:"lmp_date"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SetPregnancyRequest struct {
	LMPDate string `json:"lmp_date"` // YYYY-MM-DD
}

// PregnancyStatus is the derived tracker view returned to the client.
type PregnancyStatus struct {
	Week            int         `json:"week"`
	Month           int         `json:"month"`
	Trimester       int         `json:"trimester"`
	DueDate         string      `json:"due_date"` // YYYY-MM-DD
	ProgressPercent float64     `json:"progress_percent"`
	Growth          FetalGrowth `json:"growth"`
}

// PatientSnapshot is the structured context a caller can attach to a
// pregnancy chat request instead of a pre-rendered text block.
type PatientSnapshot struct {
	Week       int         `json:"week,omitempty"`
	Trimester  int         `json:"trimester,omitempty"`
	DueDate    string      `json:"due_date,omitempty"`
	FetalSize  string      `json:"fetal_size,omitempty"`
	FetalCM    float64     `json:"fetal_length_cm,omitempty"`
	FetalG     float64     `json:"fetal_weight_g,omitempty"`
	Name       string      `json:"name,omitempty"`
	Age        int         `json:"age,omitempty"`
	BloodGroup string      `json:"blood_group,omitempty"`
	Conditions string      `json:"conditions,omitempty"`
	HealthLogs []HealthLog `json:"health_logs,omitempty"`
}
