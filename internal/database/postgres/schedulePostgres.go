package repository

import (
	"context"
	"database/sql"
	"fmt"

	"medreminder/internal/entity"
)

type scheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *entity.Schedule) error {
	query := `
		INSERT INTO schedules (id, user_id, name, dosage, time_at, time_raw, "interval", created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		schedule.ID,
		schedule.UserID,
		schedule.Name,
		schedule.Dosage,
		schedule.TimeAt,
		schedule.TimeRaw,
		schedule.Interval,
		schedule.CreatedAt,
		schedule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %v", err)
	}

	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*entity.Schedule, error) {
	query := `
		SELECT id, user_id, name, dosage, time_at, time_raw, "interval", created_at, updated_at
		FROM schedules
		WHERE id = $1
	`

	schedule, err := scanSchedule(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %v", err)
	}

	return schedule, nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM schedules WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrScheduleNotFound
	}

	return nil
}

// GetAll returns the full schedule set. The tick orchestrator performs a
// full-collection read on every tick, mirroring how the reminder data is
// actually shaped: small per-deployment sets, no pagination needed.
func (r *scheduleRepository) GetAll(ctx context.Context) ([]*entity.Schedule, error) {
	query := `
		SELECT id, user_id, name, dosage, time_at, time_raw, "interval", created_at, updated_at
		FROM schedules
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all schedules: %w", err)
	}
	defer rows.Close()

	return collectSchedules(rows)
}

func (r *scheduleRepository) GetByUserID(ctx context.Context, userID string) ([]*entity.Schedule, error) {
	query := `
		SELECT id, user_id, name, dosage, time_at, time_raw, "interval", created_at, updated_at
		FROM schedules
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user schedules: %w", err)
	}
	defer rows.Close()

	return collectSchedules(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*entity.Schedule, error) {
	var schedule entity.Schedule
	var timeAt sql.NullTime
	var timeRaw sql.NullString

	err := row.Scan(
		&schedule.ID,
		&schedule.UserID,
		&schedule.Name,
		&schedule.Dosage,
		&timeAt,
		&timeRaw,
		&schedule.Interval,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if timeAt.Valid {
		t := timeAt.Time
		schedule.TimeAt = &t
	}
	schedule.TimeRaw = timeRaw.String

	return &schedule, nil
}

func collectSchedules(rows *sql.Rows) ([]*entity.Schedule, error) {
	var schedules []*entity.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedules: %w", err)
	}

	return schedules, nil
}
