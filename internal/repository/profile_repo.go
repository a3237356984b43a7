package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lifepulse-backend/internal/models"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// Upsert merges the request into the stored profile. Fields the client did
// not send arrive as nil and COALESCE keeps the existing value, so a partial
// save never wipes earlier answers.
func (r *ProfileRepo) Upsert(ctx context.Context, userID uuid.UUID, req models.SaveProfileRequest) error {
	query := `
		INSERT INTO profiles (
			user_id, full_name, age, gender, blood_group, phone,
			emergency_contact, emergency_email, village, district, state,
			conditions, allergies, profile_completed, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, TRUE, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			full_name         = COALESCE(EXCLUDED.full_name, profiles.full_name),
			age               = COALESCE(EXCLUDED.age, profiles.age),
			gender            = COALESCE(EXCLUDED.gender, profiles.gender),
			blood_group       = COALESCE(EXCLUDED.blood_group, profiles.blood_group),
			phone             = COALESCE(EXCLUDED.phone, profiles.phone),
			emergency_contact = COALESCE(EXCLUDED.emergency_contact, profiles.emergency_contact),
			emergency_email   = COALESCE(EXCLUDED.emergency_email, profiles.emergency_email),
			village           = COALESCE(EXCLUDED.village, profiles.village),
			district          = COALESCE(EXCLUDED.district, profiles.district),
			state             = COALESCE(EXCLUDED.state, profiles.state),
			conditions        = COALESCE(EXCLUDED.conditions, profiles.conditions),
			allergies         = COALESCE(EXCLUDED.allergies, profiles.allergies),
			profile_completed = TRUE,
			updated_at        = NOW()`

	_, err := r.pool.Exec(ctx, query,
		userID, req.FullName, req.Age, req.Gender, req.BloodGroup, req.Phone,
		req.EmergencyContact, req.EmergencyEmail, req.Village, req.District, req.State,
		req.Conditions, req.Allergies,
	)
	return err
}

// Get returns nil without error when no profile exists yet.
func (r *ProfileRepo) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile := &models.Profile{}
	query := `
		SELECT user_id, full_name, age, gender, blood_group, phone,
			emergency_contact, emergency_email, village, district, state,
			conditions, allergies, profile_completed, created_at, updated_at
		FROM profiles WHERE user_id = $1`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID, &profile.FullName, &profile.Age, &profile.Gender,
		&profile.BloodGroup, &profile.Phone, &profile.EmergencyContact,
		&profile.EmergencyEmail, &profile.Village, &profile.District,
		&profile.State, &profile.Conditions, &profile.Allergies,
		&profile.ProfileCompleted, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}
