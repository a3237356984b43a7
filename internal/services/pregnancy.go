package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"lifepulse-backend/internal/models"
	"lifepulse-backend/internal/repository"
)

const (
	fullTermWeeks    = 40
	gestationDays    = 280
	maxRecentLogs    = 5
	defaultLogsLimit = 5
)

// Expected fetal development at milestone weeks. Lookup falls back to the
// closest earlier milestone, mirroring how antenatal charts are read.
var fetalGrowthTable = []struct {
	week   int
	growth models.FetalGrowth
}{
	{4, models.FetalGrowth{SizeComparison: "a poppy seed", LengthCM: 0.2, WeightG: 0.5,
		Development: []string{"The embryo implants and the neural tube begins to form."}}},
	{8, models.FetalGrowth{SizeComparison: "a kidney bean", LengthCM: 1.6, WeightG: 1,
		Development: []string{"Major organs are forming; the heart beats steadily."}}},
	{13, models.FetalGrowth{SizeComparison: "a lemon", LengthCM: 7.5, WeightG: 23,
		Development: []string{"Baby can move and swallow. Skeletal system and sex organs are forming rapidly."}}},
	{14, models.FetalGrowth{SizeComparison: "a peach", LengthCM: 8.7, WeightG: 43,
		Development: []string{"Baby's neck is getting longer, and the head is more erect."}}},
	{18, models.FetalGrowth{SizeComparison: "a bell pepper", LengthCM: 14.2, WeightG: 190,
		Development: []string{"Ears are in place; baby may start to hear sounds."}}},
	{22, models.FetalGrowth{SizeComparison: "a papaya", LengthCM: 27.8, WeightG: 430,
		Development: []string{"Senses develop quickly; the grip reflex appears."}}},
	{27, models.FetalGrowth{SizeComparison: "a cauliflower", LengthCM: 36.6, WeightG: 875,
		Development: []string{"Lungs practice breathing movements; regular sleep cycles begin."}}},
	{32, models.FetalGrowth{SizeComparison: "a squash", LengthCM: 42.4, WeightG: 1700,
		Development: []string{"Bones fully formed but soft; rapid weight gain starts."}}},
	{36, models.FetalGrowth{SizeComparison: "a head of romaine lettuce", LengthCM: 47.4, WeightG: 2600,
		Development: []string{"Baby settles head-down; lungs are nearly mature."}}},
	{40, models.FetalGrowth{SizeComparison: "a small pumpkin", LengthCM: 51.2, WeightG: 3400,
		Development: []string{"Full term. Baby is ready for birth."}}},
}

// Checkups recommended per trimester, shown alongside growth data.
var trimesterCheckups = map[int][]string{
	1: {"First antenatal registration", "Dating ultrasound scan", "Blood group & hemoglobin test", "Folic acid supplementation"},
	2: {"Anatomy scan (18–20 weeks)", "Glucose tolerance test", "Blood pressure monitoring", "Iron level check"},
	3: {"Growth scan", "Weekly blood pressure checks", "Birth preparedness counselling", "Hospital delivery planning"},
}

type PregnancyService struct {
	pregnancyRepo *repository.PregnancyRepo
	profileRepo   *repository.ProfileRepo
}

func NewPregnancyService(pregnancyRepo *repository.PregnancyRepo, profileRepo *repository.ProfileRepo) *PregnancyService {
	return &PregnancyService{
		pregnancyRepo: pregnancyRepo,
		profileRepo:   profileRepo,
	}
}

// SetLMP stores the last-menstrual-period date and returns the derived
// tracker status.
func (s *PregnancyService) SetLMP(ctx context.Context, userID uuid.UUID, lmpStr string) (*models.PregnancyStatus, error) {
	lmp, err := time.Parse("2006-01-02", lmpStr)
	if err != nil {
		return nil, &ValidationError{Message: "lmp_date must be YYYY-MM-DD"}
	}
	now := time.Now().UTC()
	if lmp.After(now) {
		return nil, &ValidationError{Message: "lmp_date cannot be in the future"}
	}
	if now.Sub(lmp) > 310*24*time.Hour {
		return nil, &ValidationError{Message: "lmp_date is too far in the past for an active pregnancy"}
	}

	if err := s.pregnancyRepo.UpsertProfile(ctx, userID, lmp); err != nil {
		return nil, err
	}

	status := ComputeStatus(lmp, now)
	return &status, nil
}

// Status derives the current tracker view from the stored LMP date.
func (s *PregnancyService) Status(ctx context.Context, userID uuid.UUID) (*models.PregnancyStatus, error) {
	profile, err := s.pregnancyRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, &NotFoundError{Message: "Pregnancy tracker is not set up"}
	}

	status := ComputeStatus(profile.LMPDate, time.Now().UTC())
	return &status, nil
}

// AddLog records a health entry; at least one metric must be present.
func (s *PregnancyService) AddLog(ctx context.Context, userID uuid.UUID, req models.LogHealthRequest) (*models.HealthLog, error) {
	if strings.TrimSpace(req.Weight) == "" && strings.TrimSpace(req.BP) == "" &&
		strings.TrimSpace(req.Sugar) == "" && strings.TrimSpace(req.Hemoglobin) == "" {
		return nil, &ValidationError{Message: "Please enter at least one metric"}
	}

	log := models.HealthLog{
		ID:         uuid.New(),
		UserID:     userID,
		Date:       time.Now().UTC().Format("02/01/2006"),
		Weight:     orPlaceholder(req.Weight),
		BP:         orPlaceholder(req.BP),
		Sugar:      orPlaceholder(req.Sugar),
		Hemoglobin: orPlaceholder(req.Hemoglobin),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.pregnancyRepo.InsertLog(ctx, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// Logs returns recent entries, newest first.
func (s *PregnancyService) Logs(ctx context.Context, userID uuid.UUID, limit int) ([]models.HealthLog, error) {
	if limit <= 0 {
		limit = defaultLogsLimit
	}
	return s.pregnancyRepo.ListLogs(ctx, userID, limit)
}

// Snapshot gathers the structured patient context used to personalize
// pregnancy chat answers. Logs come back in chronological order so the
// context assembler applies its own newest-first rule.
func (s *PregnancyService) Snapshot(ctx context.Context, userID uuid.UUID) (*models.PatientSnapshot, error) {
	snap := &models.PatientSnapshot{}

	if profile, err := s.pregnancyRepo.GetProfile(ctx, userID); err == nil && profile != nil {
		status := ComputeStatus(profile.LMPDate, time.Now().UTC())
		snap.Week = status.Week
		snap.Trimester = status.Trimester
		snap.DueDate = status.DueDate
		snap.FetalSize = status.Growth.SizeComparison
		snap.FetalCM = status.Growth.LengthCM
		snap.FetalG = status.Growth.WeightG
	}

	logs, err := s.pregnancyRepo.ListLogs(ctx, userID, maxRecentLogs)
	if err == nil {
		// ListLogs is newest first; reverse into chronological order.
		for i := len(logs) - 1; i >= 0; i-- {
			snap.HealthLogs = append(snap.HealthLogs, logs[i])
		}
	}

	if profile, err := s.profileRepo.Get(ctx, userID); err == nil && profile != nil {
		if profile.FullName != nil {
			snap.Name = *profile.FullName
		}
		if profile.Age != nil {
			snap.Age = *profile.Age
		}
		if profile.BloodGroup != nil {
			snap.BloodGroup = *profile.BloodGroup
		}
		if profile.Conditions != nil {
			snap.Conditions = *profile.Conditions
		}
	}

	return snap, nil
}

// ComputeStatus derives week, month, trimester, due date and fetal growth
// from the LMP date. Week counting matches the client: day 0 is week 1.
func ComputeStatus(lmp, now time.Time) models.PregnancyStatus {
	days := int(now.Sub(lmp).Hours() / 24)
	if days < 0 {
		days = 0
	}

	week := days/7 + 1
	if week > fullTermWeeks {
		week = fullTermWeeks
	}

	month := week/4 + 1
	if month > 9 {
		month = 9
	}

	trimester := 1
	if week > 13 {
		trimester = 2
	}
	if week > 27 {
		trimester = 3
	}

	progress := float64(week) / float64(fullTermWeeks) * 100
	if progress > 100 {
		progress = 100
	}

	growth := growthForWeek(week)
	growth.Checkups = trimesterCheckups[trimester]

	return models.PregnancyStatus{
		Week:            week,
		Month:           month,
		Trimester:       trimester,
		DueDate:         lmp.AddDate(0, 0, gestationDays).Format("2006-01-02"),
		ProgressPercent: progress,
		Growth:          growth,
	}
}

func growthForWeek(week int) models.FetalGrowth {
	growth := fetalGrowthTable[0].growth
	for _, entry := range fetalGrowthTable {
		if entry.week > week {
			break
		}
		growth = entry.growth
	}
	return growth
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
