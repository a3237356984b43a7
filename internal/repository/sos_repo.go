package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"lifepulse-backend/internal/models"
)

type SosRepo struct {
	pool *pgxpool.Pool
}

func NewSosRepo(pool *pgxpool.Pool) *SosRepo {
	return &SosRepo{pool: pool}
}

func (r *SosRepo) Insert(ctx context.Context, event *models.SOSEvent) error {
	query := `
		INSERT INTO sos_events (id, user_id, lat, lon, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		event.ID, event.UserID, event.Lat, event.Lon, event.Note, event.CreatedAt,
	)
	return err
}

func (r *SosRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SOSEvent, error) {
	query := `
		SELECT id, user_id, lat, lon, note, created_at
		FROM sos_events WHERE user_id = $1 ORDER BY created_at DESC LIMIT 50`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.SOSEvent
	for rows.Next() {
		var e models.SOSEvent
		if err := rows.Scan(&e.ID, &e.UserID, &e.Lat, &e.Lon, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
