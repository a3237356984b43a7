package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"lifepulse-backend/internal/models"
	"lifepulse-backend/internal/repository"
)

// Indian national medical emergency helpline.
const emergencyNumber = "108"

const sosHospitalRadius = 10000

type SOSService struct {
	sosRepo     *repository.SosRepo
	profileRepo *repository.ProfileRepo
	hospitals   *HospitalService
	email       *EmailService
	redis       *redis.Client
}

func NewSOSService(
	sosRepo *repository.SosRepo,
	profileRepo *repository.ProfileRepo,
	hospitals *HospitalService,
	email *EmailService,
	redisClient *redis.Client,
) *SOSService {
	return &SOSService{
		sosRepo:     sosRepo,
		profileRepo: profileRepo,
		hospitals:   hospitals,
		email:       email,
		redis:       redisClient,
	}
}

// Trigger records the SOS press and fans out: an acknowledgement to the
// user's own devices over pub/sub, an alert email to the emergency contact,
// and a list of the nearest facilities in the response. The facility lookup
// and email are best-effort; the event record and helpline number never
// depend on them.
func (s *SOSService) Trigger(ctx context.Context, userID uuid.UUID, req models.SOSRequest) (*models.SOSResponse, error) {
	if req.Lat == nil || req.Lon == nil {
		return nil, &ValidationError{Message: "Valid latitude and longitude are required"}
	}
	lat, lon := *req.Lat, *req.Lon
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, &ValidationError{Message: "Valid latitude and longitude are required"}
	}

	event := models.SOSEvent{
		ID:        uuid.New(),
		UserID:    userID,
		Lat:       lat,
		Lon:       lon,
		Note:      req.Note,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.sosRepo.Insert(ctx, &event); err != nil {
		return nil, err
	}

	s.publish(ctx, userID, models.WSMessage{
		Type: "sos_ack",
		Payload: map[string]interface{}{
			"event_id":         event.ID,
			"emergency_number": emergencyNumber,
		},
	})

	go s.notifyEmergencyContact(userID, event)

	hospitals, err := s.hospitals.FindNearby(ctx, lat, lon, sosHospitalRadius)
	if err != nil {
		log.Printf("SOS hospital lookup failed for user %s: %v", userID, err)
		hospitals = nil
	}

	return &models.SOSResponse{
		EventID:         event.ID,
		EmergencyNumber: emergencyNumber,
		Hospitals:       hospitals,
	}, nil
}

func (s *SOSService) History(ctx context.Context, userID uuid.UUID) ([]models.SOSEvent, error) {
	return s.sosRepo.ListByUser(ctx, userID)
}

func (s *SOSService) notifyEmergencyContact(userID uuid.UUID, event models.SOSEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	profile, err := s.profileRepo.Get(ctx, userID)
	if err != nil || profile == nil || profile.EmergencyEmail == nil || *profile.EmergencyEmail == "" {
		return
	}

	name := "A LifePulse user"
	if profile.FullName != nil && *profile.FullName != "" {
		name = *profile.FullName
	}

	if err := s.email.SendSOSAlert(*profile.EmergencyEmail, name, event.Lat, event.Lon, event.Note); err != nil {
		log.Printf("Failed to send SOS alert email for user %s: %v", userID, err)
	}
}

func (s *SOSService) publish(ctx context.Context, userID uuid.UUID, msg models.WSMessage) {
	data, _ := json.Marshal(msg)
	s.redis.Publish(ctx, fmt.Sprintf("user_updates:%s", userID.String()), string(data))
}
