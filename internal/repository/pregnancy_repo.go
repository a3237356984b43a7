package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lifepulse-backend/internal/models"
)

type PregnancyRepo struct {
	pool *pgxpool.Pool
}

func NewPregnancyRepo(pool *pgxpool.Pool) *PregnancyRepo {
	return &PregnancyRepo{pool: pool}
}

func (r *PregnancyRepo) UpsertProfile(ctx context.Context, userID uuid.UUID, lmp time.Time) error {
	query := `
		INSERT INTO pregnancy_profiles (user_id, lmp_date, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET lmp_date = EXCLUDED.lmp_date, updated_at = NOW()`

	_, err := r.pool.Exec(ctx, query, userID, lmp)
	return err
}

// GetProfile returns nil without error when the tracker is not set up.
func (r *PregnancyRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*models.PregnancyProfile, error) {
	profile := &models.PregnancyProfile{}
	query := `SELECT user_id, lmp_date, updated_at FROM pregnancy_profiles WHERE user_id = $1`

	err := r.pool.QueryRow(ctx, query, userID).Scan(&profile.UserID, &profile.LMPDate, &profile.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (r *PregnancyRepo) InsertLog(ctx context.Context, log *models.HealthLog) error {
	query := `
		INSERT INTO pregnancy_logs (id, user_id, log_date, weight, bp, sugar, hb, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		log.ID, log.UserID, log.Date, log.Weight, log.BP, log.Sugar, log.Hemoglobin, log.CreatedAt,
	)
	return err
}

// ListLogs returns entries newest first.
func (r *PregnancyRepo) ListLogs(ctx context.Context, userID uuid.UUID, limit int) ([]models.HealthLog, error) {
	query := `
		SELECT id, user_id, log_date, weight, bp, sugar, hb, created_at
		FROM pregnancy_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.HealthLog
	for rows.Next() {
		var l models.HealthLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Date, &l.Weight, &l.BP, &l.Sugar, &l.Hemoglobin, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
