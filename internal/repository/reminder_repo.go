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

type ReminderRepo struct {
	pool *pgxpool.Pool
}

func NewReminderRepo(pool *pgxpool.Pool) *ReminderRepo {
	return &ReminderRepo{pool: pool}
}

func (r *ReminderRepo) Create(ctx context.Context, rem *models.Reminder) error {
	query := `
		INSERT INTO reminders (id, user_id, medicine, dosage, time_of_day, days, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING created_at`

	rem.ID = uuid.New()
	rem.Active = true

	return r.pool.QueryRow(ctx, query,
		rem.ID, rem.UserID, rem.Medicine, rem.Dosage, rem.TimeOfDay, rem.Days,
	).Scan(&rem.CreatedAt)
}

func (r *ReminderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Reminder, error) {
	rem := &models.Reminder{}
	query := `
		SELECT id, user_id, medicine, dosage, time_of_day, days, active, last_fired_at, created_at
		FROM reminders WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rem.ID, &rem.UserID, &rem.Medicine, &rem.Dosage, &rem.TimeOfDay,
		&rem.Days, &rem.Active, &rem.LastFiredAt, &rem.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rem, nil
}

func (r *ReminderRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Reminder, error) {
	query := `
		SELECT id, user_id, medicine, dosage, time_of_day, days, active, last_fired_at, created_at
		FROM reminders WHERE user_id = $1 ORDER BY time_of_day ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var rem models.Reminder
		if err := rows.Scan(
			&rem.ID, &rem.UserID, &rem.Medicine, &rem.Dosage, &rem.TimeOfDay,
			&rem.Days, &rem.Active, &rem.LastFiredAt, &rem.CreatedAt,
		); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *ReminderRepo) Update(ctx context.Context, rem *models.Reminder) error {
	query := `
		UPDATE reminders
		SET medicine = $2, dosage = $3, time_of_day = $4, days = $5, active = $6
		WHERE id = $1`

	_, err := r.pool.Exec(ctx, query,
		rem.ID, rem.Medicine, rem.Dosage, rem.TimeOfDay, rem.Days, rem.Active,
	)
	return err
}

func (r *ReminderRepo) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM reminders WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListDue returns active reminders scheduled at the given minute-of-day that
// have not already fired in the last hour, for the dispatcher to deliver.
func (r *ReminderRepo) ListDue(ctx context.Context, minuteOfDay int, now time.Time) ([]models.Reminder, error) {
	query := `
		SELECT id, user_id, medicine, dosage, time_of_day, days, active, last_fired_at, created_at
		FROM reminders
		WHERE active = TRUE
		  AND time_of_day = $1
		  AND (last_fired_at IS NULL OR last_fired_at < $2)`

	rows, err := r.pool.Query(ctx, query, minuteOfDay, now.Add(-time.Hour))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var rem models.Reminder
		if err := rows.Scan(
			&rem.ID, &rem.UserID, &rem.Medicine, &rem.Dosage, &rem.TimeOfDay,
			&rem.Days, &rem.Active, &rem.LastFiredAt, &rem.CreatedAt,
		); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *ReminderRepo) MarkFired(ctx context.Context, id uuid.UUID, at time.Time) error {
	_, err := r.pool.Exec(ctx, "UPDATE reminders SET last_fired_at = $2 WHERE id = $1", id, at)
	return err
}
